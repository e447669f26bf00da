package cmd

import (
	"github.com/spf13/cobra"
)

type flagsT struct {
	root struct {
		logLevel   string
		logConsole bool
		output     string
		metrics    metricsFlags
	}
	run struct {
		guarded         bool
		continueOnError bool
		readOnly        bool
	}
}

var gpmodelFlags = flagsT{}

func addLogLevelFlag(cmd *cobra.Command) string {
	logLevel := "loglevel"
	if cmd != nil {
		cmd.PersistentFlags().StringVar(&gpmodelFlags.root.logLevel, logLevel, "", "The logging level: debug, info, warn, error or none")
	}
	return logLevel
}

func addLogConsoleFlag(cmd *cobra.Command) string {
	logConsole := "log-console"
	if cmd != nil {
		cmd.PersistentFlags().BoolVar(&gpmodelFlags.root.logConsole, logConsole, false, "Write logs in a human readable format instead of JSON")
	}
	return logConsole
}

func addOutputFlag(cmd *cobra.Command) string {
	output := "output"
	if cmd != nil {
		cmd.PersistentFlags().StringVarP(&gpmodelFlags.root.output, output, "o", "", "The format of reports: table, json or yaml")
	}
	return output
}

func addMetricsFlag(cmd *cobra.Command) string {
	m := "metrics"
	if cmd != nil {
		cmd.PersistentFlags().BoolVar(&gpmodelFlags.root.metrics.enabled, m, false, "Toggle metrics collection, exported to the logs")
	}
	return m
}

func addGuardedFlag(cmd *cobra.Command) string {
	guarded := "guarded"
	if cmd != nil {
		cmd.Flags().BoolVar(&gpmodelFlags.run.guarded, guarded, false, "Run all edits within one notification guard, reporting one consolidated change set")
	}
	return guarded
}

func addContinueOnErrorFlag(cmd *cobra.Command) string {
	continueOnError := "continue-on-error"
	if cmd != nil {
		cmd.Flags().BoolVar(&gpmodelFlags.run.continueOnError, continueOnError, false, "Run the remaining edits after a failed edit")
	}
	return continueOnError
}

func addReadOnlyFlag(cmd *cobra.Command) string {
	readOnly := "read-only"
	if cmd != nil {
		cmd.Flags().BoolVar(&gpmodelFlags.run.readOnly, readOnly, false, "Make the model read-only once built: all edits are rejected")
	}
	return readOnly
}
