package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/ltcsuite/ltcstealth/stealth"
	"github.com/ltcsuite/ltcstealth/stealth/paymentdb"
	"github.com/ltcsuite/ltcstealth/stealthwatch"
)

// backendLog is the logging backend used to create all subsystem loggers.
// Output goes to stderr so command results on stdout stay parseable.
var backendLog = btclog.NewBackend(os.Stderr)

var (
	stlhLog = backendLog.Logger("STLH")
	pdbLog  = backendLog.Logger("PDB")
	wtchLog = backendLog.Logger("WTCH")
)

// Initialize package-global logger variables.
func init() {
	stealth.UseLogger(stlhLog)
	paymentdb.UseLogger(pdbLog)
	stealthwatch.UseLogger(wtchLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"STLH": stlhLog,
	"PDB":  pdbLog,
	"WTCH": wtchLog,
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.  It returns an error for an unknown level.
func setLogLevels(logLevel string) error {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return fmt.Errorf("invalid debug level %q", logLevel)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}
