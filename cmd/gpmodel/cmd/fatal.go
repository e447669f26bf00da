package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/oneconcern/gpmodel/pkg/dlogger"
	"go.uber.org/zap"
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// infoLogger wraps informative messages to os.Stderr without cluttering the reports on os.Stdout.
	infoLogger = log.New(os.Stderr, "", 0)
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

// newLogger builds the logger of a command. Logs go to stderr, leaving stdout to reports.
func newLogger() (*zap.Logger, error) {
	opts := []dlogger.Option{dlogger.OutputPaths("stderr")}
	if gpmodelFlags.root.logConsole {
		opts = append(opts, dlogger.Console())
	}
	return dlogger.GetLogger(gpmodelFlags.root.logLevel, opts...)
}
