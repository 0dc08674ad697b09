package main

import (
	"errors"

	"github.com/ltcsuite/ltcd/chaincfg"
)

const defaultLogLevel = "info"

// config defines the global options shared by all commands.
type config struct {
	TestNet4       bool   `long:"testnet" description:"Use the test network"`
	RegressionTest bool   `long:"regtest" description:"Use the regression test network"`
	SimNet         bool   `long:"simnet" description:"Use the simulation test network"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	DBPath         string `long:"db" description:"Payment database path; scan records found payments when set"`
}

var (
	cfg = config{
		DebugLevel: defaultLogLevel,
	}

	// activeNet is the network selected by the global options.
	activeNet = &chaincfg.MainNetParams
)

// loadConfig validates the parsed global options and applies them.
func loadConfig() error {
	numNets := 0
	if cfg.TestNet4 {
		numNets++
		activeNet = &chaincfg.TestNet4Params
	}
	if cfg.RegressionTest {
		numNets++
		activeNet = &chaincfg.RegressionNetParams
	}
	if cfg.SimNet {
		numNets++
		activeNet = &chaincfg.SimNetParams
	}
	if numNets > 1 {
		return errors.New("the testnet, regtest and simnet params " +
			"can't be used together -- choose one of the three")
	}

	return setLogLevels(cfg.DebugLevel)
}
