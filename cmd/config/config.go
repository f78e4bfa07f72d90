// Package config initializes viper-backed configuration and constructs the
// dashboard service the commands operate on.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grovetools/dash/pkg/dashboard"
	"github.com/grovetools/dash/pkg/kvstore"
)

var cfgFile string

// RegisterFlags attaches the shared config flag to the root command.
func RegisterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/dash/config.yml)")
}

// InitConfig wires viper: config file, environment and defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "dash")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DASH")

	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "dash"))

	// Missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// NewLogger builds the command logger: stderr, quiet unless asked.
func NewLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// InitService opens the persistent store and loads the dashboard for the
// persisted session (or the anonymous dataset).
func InitService(log *logrus.Logger) (*dashboard.Service, error) {
	dataDir := viper.GetString("data_dir")

	store, err := kvstore.OpenSQLite(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return dashboard.New(store, log), nil
}
