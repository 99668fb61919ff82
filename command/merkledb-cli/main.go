// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/merkledb/configuration"
	"github.com/bitmark-inc/merkledb/fault"
	"github.com/bitmark-inc/merkledb/ledger"
	"github.com/bitmark-inc/merkledb/record"
	"github.com/bitmark-inc/merkledb/storage"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	db      *storage.Database
	engine  *ledger.Engine[*record.State]
	verbose bool
	e       io.Writer
	w       io.Writer
}

// leaf selection shared by the read and write commands
var idFlag = cli.StringFlag{
	Name:  "id, i",
	Value: "",
	Usage: "*leaf `ID`",
}

var stateFlags = []cli.Flag{
	idFlag,
	cli.Uint64Flag{
		Name:  "account, a",
		Value: 0,
		Usage: " account `NUMBER`",
	},
	cli.Uint64Flag{
		Name:  "token, t",
		Value: 0,
		Usage: " token `NUMBER`",
	},
	cli.Uint64Flag{
		Name:  "balance, b",
		Value: 0,
		Usage: " balance `AMOUNT`",
	},
	cli.Uint64Flag{
		Name:  "nonce, n",
		Value: 0,
		Usage: " nonce `NUMBER`",
	},
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "merkledb-cli"
	app.Usage = "inspect and update a persistent merkle state tree"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "merkledb.conf",
			Usage: " configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "root",
			Usage:  "display tree shape and committed root",
			Action: runRoot,
		},
		{
			Name:      "get",
			Usage:     "display the committed state of a leaf",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runGet,
		},
		{
			Name:      "proof",
			Usage:     "display a leaf state with its witness",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runProof,
		},
		{
			Name:      "verify",
			Usage:     "check a leaf witness against the committed root",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{idFlag},
			Action:    runVerify,
		},
		{
			Name:      "vacant",
			Usage:     "find the first unoccupied subtree",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "depth, d",
					Value: 0,
					Usage: "*subtree `DEPTH`",
				},
			},
			Action: runVacant,
		},
		{
			Name:      "create",
			Usage:     "create a leaf state and commit",
			ArgsUsage: "\n   (* = required)",
			Flags:     stateFlags,
			Action:    runCreate,
		},
		{
			Name:      "update",
			Usage:     "overwrite a leaf state and commit",
			ArgsUsage: "\n   (* = required)",
			Flags:     stateFlags,
			Action:    runUpdate,
		},
		{
			Name:      "insert",
			Usage:     "insert a JSON list of states into a vacant subtree and commit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*`FILE` holding a JSON array of states",
				},
			},
			Action: runInsert,
		},
		{
			Name:  "version",
			Usage: "display merkledb-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and open the ledger
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		file, err := checkConfigFile(c.GlobalString("config-file"))
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		conf, err := configuration.Read(file)
		if nil != err {
			return err
		}

		if err := logger.Initialise(conf.LoggerConfiguration()); nil != err {
			return err
		}
		if err := fault.Initialise(); nil != err {
			return err
		}

		db, err := storage.Open(conf.Database.Name, storage.ReadWrite)
		if nil != err {
			return err
		}

		// set before the engine so that After can close the database
		m := &metadata{
			file:    file,
			config:  conf,
			db:      db,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		m.engine, err = openLedger(conf, db)
		return err
	}

	// release the database and flush logs
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.verbose {
			fmt.Fprintf(m.e, "closing database: %s\n", m.config.Database.Name)
		}
		m.db.Close()
		fault.Finalise()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// build the engine from the ledger section and reload the committed leaves
func openLedger(conf *configuration.Configuration, db *storage.Database) (*ledger.Engine[*record.State], error) {

	h, empty, err := conf.Ledger.Resolve()
	if nil != err {
		return nil, err
	}

	log := logger.New("ledger")

	engine, err := ledger.New(log, ledger.Config[*record.State]{
		Depth:       conf.Ledger.Depth,
		Hasher:      h,
		EmptyLeaf:   empty,
		Namespace:   conf.Ledger.Namespace,
		Persistence: db,
		Decode:      record.Decode,
	})
	if nil != err {
		return nil, err
	}

	n, err := engine.Recover()
	if nil != err {
		return nil, err
	}
	log.Infof("recovered: %d leaves  root: %s", n, engine.Root())

	return engine, nil
}
