// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/configuration"
	"github.com/bitmark-inc/obligationd/coordinator"
	"github.com/bitmark-inc/obligationd/network"
	"github.com/bitmark-inc/obligationd/notary"
	"github.com/bitmark-inc/obligationd/responder"
	"github.com/bitmark-inc/obligationd/rpc/listeners"
	"github.com/bitmark-inc/obligationd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultSigningKeyFile = "obligationd.sign"

	defaultLevelDBDirectory = "data"
	defaultCacheDirectory   = "cache"

	defaultPartiesFile   = "parties.json"
	defaultReservoirFile = "reservoir.cache"

	defaultLogDirectory = "log"
	defaultLogFile      = "obligationd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - directory and file prefix for the databases
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the main configuration as read from the Lua file
//
// the CURVE keys and the TLS certificate pair are inline values,
// normally pulled in with read_file; the signing key is the name of
// the file holding the identity account seed
type Configuration struct {
	DataDirectory  string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile        string       `gluamapper:"pidfile" json:"pidfile"`
	Network        string       `gluamapper:"network" json:"network"`
	Parties        string       `gluamapper:"parties" json:"parties"`
	PartiesFile    string       `gluamapper:"parties_file" json:"parties_file"`
	CacheDirectory string       `gluamapper:"cache_directory" json:"cache_directory"`
	Database       DatabaseType `gluamapper:"database" json:"database"`

	ReservoirFile string `gluamapper:"reservoir_file" json:"reservoir_file"`

	PublicKey  string `gluamapper:"public_key" json:"public_key"`
	PrivateKey string `gluamapper:"private_key" json:"private_key"`
	SigningKey string `gluamapper:"signing_key" json:"signing_key"`

	ClientRPC   listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Responder   responder.Configuration    `gluamapper:"responder" json:"responder"`
	Coordinator coordinator.Configuration  `gluamapper:"coordinator" json:"coordinator"`
	Notary      notary.Configuration       `gluamapper:"notary" json:"notary"`

	Logging logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:  defaultDataDirectory,
		PidFile:        "", // no PidFile by default
		Network:        network.Live,
		PartiesFile:    defaultPartiesFile,
		CacheDirectory: defaultCacheDirectory,
		ReservoirFile:  defaultReservoirFile,
		SigningKey:     defaultSigningKeyFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.Network = strings.ToLower(options.Network)
	if !network.Valid(options.Network) {
		return nil, fmt.Errorf("network: %q is not supported", options.Network)
	}

	// the database prefix defaults to the network name so two
	// networks can never share a database by accident
	if "" == options.Database.Name {
		options.Database.Name = options.Network
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PartiesFile,
		&options.ReservoirFile,
		&options.Database.Directory,
		&options.SigningKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.CacheDirectory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
