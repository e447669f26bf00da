// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gpmodel",
	Short: "gpmodel edits revisioned feature models",
	Long: `gpmodel edits revisioned feature models.

Feature collections and the edits to apply to them are described by YAML scripts.
Every edit produces a new snapshot of the whole model, sharing all unchanged parts
with the former snapshot. The outcome of each edit, along with the features it changed,
is reported as a table, JSON or YAML.
`,
	SilenceUsage: true,
}

var config *CLIConfig

// appFs is the file system scripts and config files are read from
var appFs = afero.NewOsFs()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevelFlag(rootCmd)
	addLogConsoleFlag(rootCmd)
	addMetricsFlag(rootCmd)
	addOutputFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetFs(appFs)
	viper.SetDefault("loglevel", "error")
	viper.SetDefault("output", formatTable)
	viper.SetDefault("metrics", false)
	if os.Getenv("GPMODEL_CONFIG") != "" {
		// Use config file from the env.
		viper.SetConfigFile(os.Getenv("GPMODEL_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.gpmodel")
		viper.SetConfigName("gpmodel")
	}

	viper.SetEnvPrefix("gpmodel")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
		return
	}
	config.setFlags(&gpmodelFlags)
}
