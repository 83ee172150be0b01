// Package cmd provides the command-line interface for the deployer.
//
// Configuration is loaded from multiple sources with clear precedence:
//  1. Command-line flags (--config, --root, --target) - highest priority
//  2. Individual environment variables with the NITRO_ prefix
//  3. Configuration file (.nitro-deployer.yml) - lowest priority
//
// The registry access token is additionally read from FRONTIFY_ACCESS_TOKEN
// when sync.access_token is not set.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/merkle-open/nitro-frontify-deployer/internal/config"
	"github.com/merkle-open/nitro-frontify-deployer/internal/deployer"
	"github.com/merkle-open/nitro-frontify-deployer/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nitro-frontify-deployer",
	Short: "Validate, build and sync nitro components to a Frontify pattern library",
	Long: `nitro-frontify-deployer discovers a tree of UI component definitions,
validates each against a schema, renders the example templates to static
markup and syncs the resulting pattern packages to a Frontify registry.

Quick Start:
  nitro-frontify-deployer validate        Validate all component metadata
  nitro-frontify-deployer build           Build pattern.json + HTML output
  nitro-frontify-deployer deploy          Validate, build and sync
  nitro-frontify-deployer clean           Remove the target directory
  nitro-frontify-deployer watch           Rebuild on component changes`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .nitro-deployer.yml)")
	rootCmd.PersistentFlags().String("root", "", "component root directory")
	rootCmd.PersistentFlags().String("target", "", "build target directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = viper.BindPFlag(f.Name, f)
	})
}

// initConfig initializes viper with flag, environment and file sources.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".nitro-deployer")
	}

	viper.SetEnvPrefix("NITRO")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newDeployer loads the configuration and assembles the pipeline shared by
// all subcommands.
func newDeployer() (*deployer.Deployer, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.ToOptions()
	if err != nil {
		return nil, nil, err
	}

	log := logging.NewLogger(&logging.Config{
		Level: logging.ParseLevel(viper.GetString("log-level")),
	})

	d, err := deployer.New(opts, deployer.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}

	return d, log, nil
}
