// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/merkledb/merkle"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the config file

	defaultDepth     = 32
	defaultHasher    = merkle.SHA3Name
	defaultNamespace = "state"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "merkledb.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "merkledb.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LedgerType - shape of the merkle tree
//
// an empty EmptyLeaf is the all-zero digest
type LedgerType struct {
	Depth     int    `gluamapper:"depth" json:"depth"`
	Hasher    string `gluamapper:"hasher" json:"hasher"`
	EmptyLeaf string `gluamapper:"empty_leaf" json:"empty_leaf"`
	Namespace string `gluamapper:"namespace" json:"namespace"`
}

// DatabaseType - location of the LevelDB database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// LoggerType - log file rotation and levels
type LoggerType struct {
	Directory string            `gluamapper:"directory" json:"directory"`
	File      string            `gluamapper:"file" json:"file"`
	Size      int               `gluamapper:"size" json:"size"`
	Count     int               `gluamapper:"count" json:"count"`
	Console   bool              `gluamapper:"console" json:"console"`
	Levels    map[string]string `gluamapper:"levels" json:"levels"`
}

// Configuration - everything read from the configuration file
type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	Ledger        LedgerType   `gluamapper:"ledger" json:"ledger"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	Logging       LoggerType   `gluamapper:"logging" json:"logging"`
}

// Read - read, decode and verify the configuration
//
// relative paths are resolved against the data directory, which is
// itself relative to the configuration file, and the database and log
// directories are created
func Read(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,

		Ledger: LedgerType{
			Depth:     defaultDepth,
			Hasher:    defaultHasher,
			Namespace: defaultNamespace,
		},

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		// the mapper merges into this map so it must not be shared
		Logging: LoggerType{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				"main":            "info",
				"ledger":          "info",
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if _, _, err := options.Ledger.Resolve(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = ensureAbsolute(dataDirectory, options.DataDirectory)
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must not contain path separator
	// then add the correct directory prefix, file item is first and corresponding directory is second
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			*f[0] = ensureAbsolute(*f[1], *f[0])
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// the logger joins its own directory and file
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	// create directories if they do not already exist
	for _, d := range []string{options.Database.Directory, options.Logging.Directory} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// Resolve - the hasher and empty leaf digest named by the ledger section
func (l LedgerType) Resolve() (merkle.Hasher, merkle.Digest, error) {
	if l.Depth < 0 || l.Depth > merkle.MaximumDepth {
		return nil, merkle.Digest{}, fmt.Errorf("Ledger: depth: %d is not in range 0..%d", l.Depth, merkle.MaximumDepth)
	}
	if "" == l.Namespace {
		return nil, merkle.Digest{}, fmt.Errorf("Ledger: namespace must not be empty")
	}

	h, err := merkle.HasherByName(l.Hasher)
	if nil != err {
		return nil, merkle.Digest{}, fmt.Errorf("Ledger: hasher: %q  error: %s", l.Hasher, err)
	}

	empty := merkle.Digest{}
	if s := strings.TrimSpace(l.EmptyLeaf); "" != s {
		empty, err = merkle.DigestFromHex(s)
		if nil != err {
			return nil, merkle.Digest{}, fmt.Errorf("Ledger: empty_leaf: %q  error: %s", l.EmptyLeaf, err)
		}
	}
	return h, empty, nil
}

// LoggerConfiguration - the logging section in the logger's own form
func (c *Configuration) LoggerConfiguration() logger.Configuration {
	return logger.Configuration{
		Directory: c.Logging.Directory,
		File:      c.Logging.File,
		Size:      c.Logging.Size,
		Count:     c.Logging.Count,
		Console:   c.Logging.Console,
		Levels:    c.Logging.Levels,
	}
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
