package cmd

import (
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// the names of fields are kept the same as the serialized names, for viper
	LogLevel string `json:"loglevel" yaml:"loglevel"` // Log level
	Output   string `json:"output" yaml:"output"`     // Format of reports
	Metrics  bool   `json:"metrics" yaml:"metrics"`   // Toggle metrics
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setFlags fills the flags left unset with the configuration
func (c *CLIConfig) setFlags(flags *flagsT) {
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.root.output == "" {
		flags.root.output = c.Output
	}
	if !flags.root.metrics.enabled {
		flags.root.metrics.enabled = c.Metrics
	}
}
