// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/merkledb/record"
	"github.com/bitmark-inc/merkledb/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1 = "\033[1;36m"
	keyColour2 = "\033[1;31m"
	valColour1 = "\033[1;33m"
	valColour2 = "\033[1;34m"
	endColour  = "\033[0m"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "early", HasArg: getoptions.NO_ARGUMENT, Short: 'e'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "decode", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "last", HasArg: getoptions.NO_ARGUMENT, Short: 'L'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {
		// print all available tags
		fmt.Printf(" tags:\n")
		for _, tag := range poolTags() {
			fmt.Printf("       %s\n", tag)
		}
		return
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--count=N] [--last] [--decode] --file=FILE tag [--list] [key-prefix]", program)
	}

	// stop if prefix no longer matches
	earlyStop := len(options["early"]) > 0

	colour := len(options["colour"]) > 0
	ascii := len(options["ascii"]) > 0
	decode := len(options["decode"]) > 0
	last := len(options["last"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	tag := arguments[0]
	if verbose {
		fmt.Printf("read tag: %s from file: %q\n", tag, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 1 {
		prefix, err = hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "merkledb-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// start of main processing
	db, err := storage.Open(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer db.Close()

	p := findPool(db, tag)
	if nil == p {
		exitwithstatus.Message("%s: no pool corresponding to: %q", program, tag)
	}

	data, err := fetchElements(p, prefix, count, last)
	if nil != err {
		exitwithstatus.Message("%s: error on fetch: %s", program, err)
	}

	dump(os.Stdout, data, dumpOptions{
		prefix:    prefix,
		earlyStop: earlyStop,
		colour:    colour,
		ascii:     ascii,
		decode:    decode && p == db.Leaves(),
	})
}

// tag → pool name for every pool, from the prefix struct tags
func poolTags() []string {
	field, _ := reflect.TypeOf((*storage.Database)(nil)).Elem().FieldByName("Pool")
	poolType := field.Type

	tags := make([]string, 0, poolType.NumField())
	for i := 0; i < poolType.NumField(); i += 1 {
		fieldInfo := poolType.Field(i)
		tags = append(tags, fmt.Sprintf("%s → %s", fieldInfo.Tag.Get("prefix"), fieldInfo.Name))
	}
	return tags
}

// scan each pool to locate tag
func findPool(db *storage.Database, tag string) *storage.PoolHandle {
	if 1 != len(tag) {
		return nil
	}
	for _, pool := range db.Pools() {
		if tag[0] == pool.Prefix() {
			return pool
		}
	}
	return nil
}

// the last element, or up to count elements from the key prefix
func fetchElements(p *storage.PoolHandle, prefix []byte, count int, last bool) ([]storage.Element, error) {
	if last {
		e, found, err := p.LastElement()
		if nil != err || !found {
			return nil, err
		}
		return []storage.Element{e}, nil
	}

	cursor := p.NewFetchCursor()
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}
	return cursor.Fetch(count)
}

type dumpOptions struct {
	prefix    []byte
	earlyStop bool // stop if prefix no longer matches
	colour    bool
	ascii     bool
	decode    bool // values are packed account states
}

func dump(w io.Writer, data []storage.Element, options dumpOptions) {
	l := len(options.prefix)

	ck1 := ""
	ck2 := ""
	cv1 := ""
	cv2 := ""
	ce := ""
	if options.colour {
		ck1 = keyColour1
		ck2 = keyColour2
		cv1 = valColour1
		cv2 = valColour2
		ce = endColour
	}
print_loop:
	for i, e := range data {
		if options.earlyStop && (len(e.Key) < l || !bytes.Equal(options.prefix, e.Key[:l])) {
			fmt.Fprintf(w, "*** early stop\n")
			break print_loop
		}

		fmt.Fprintf(w, "%d: %sKey: %s%x%s\n", i, ck1, ck2, e.Key, ce)
		if options.ascii {
			prefix := fmt.Sprintf("%d: %sVal: %s", i, cv1, cv2)
			suffix := ce
			hexDump(w, prefix, suffix, e.Value)

		} else {
			fmt.Fprintf(w, "%d: %sVal: %s%x%s\n", i, cv1, cv2, e.Value, ce)
		}

		if options.decode {
			s, err := decodeState(e.Value)
			if nil != err {
				fmt.Fprintf(w, "%d: %sRecord: %serror: %s%s\n", i, cv1, cv2, err, ce)
				continue print_loop
			}
			fmt.Fprintf(w, "%d: %sRecord: %s%s%s\n", i, cv1, cv2, s, ce)
		}
	}
}

// packed account state as JSON
func decodeState(value []byte) (string, error) {
	s, err := record.Unpack(value)
	if nil != err {
		return "", err
	}
	b, err := json.Marshal(s)
	if nil != err {
		return "", err
	}
	return string(b), nil
}

// dump hex data on stdout
func hexDump(w io.Writer, prefix string, suffix string, data []byte) {
	address := 0
	const bytesPerLine = 32
	for i := 0; i < len(data); i += bytesPerLine {
		fmt.Fprintf(w, "%s%04x  ", prefix, address)
		address += bytesPerLine
		for j := 0; j < bytesPerLine; j += 1 {
			if bytesPerLine/2 == j {
				fmt.Fprintf(w, " ")
			}
			if i+j < len(data) {
				fmt.Fprintf(w, "%02x ", data[i+j])
			} else {
				fmt.Fprintf(w, "   ")
			}
		}
		fmt.Fprintf(w, " |")
	ascii_loop:
		for j := 0; j < bytesPerLine; j += 1 {
			if i+j < len(data) {
				c := data[i+j]
				if c < 32 || c >= 127 {
					c = '.'
				}
				fmt.Fprintf(w, "%c", c)

			} else {
				break ascii_loop
			}
		}
		fmt.Fprintf(w, "|%s\n", suffix)
	}
}
