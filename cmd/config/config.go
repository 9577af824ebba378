package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-routes/pkg/service"
)

var (
	cfgFile string
	verbose bool
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "routes")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ROUTES")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("endpoint_cache_size", 512)
	viper.SetDefault("folder_name", "newFolder")
	viper.SetDefault("output", "tree")

	if err := viper.ReadInConfig(); err == nil {
		NewLogger().WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
	}
}

// NewLogger returns a stderr logger at the configured level. --verbose
// forces debug output.
func NewLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	return logrus.NewEntry(logger)
}

// ServiceConfig builds the project store configuration from viper.
func ServiceConfig() *service.Config {
	return &service.Config{
		FolderName:        viper.GetString("folder_name"),
		EndpointCacheSize: viper.GetInt("endpoint_cache_size"),
	}
}

// InitService creates a project store holding the default project.
func InitService(opts ...service.Option) (*service.Service, error) {
	return service.New(ServiceConfig(), NewLogger(), opts...)
}

// Output is the configured default output format, "tree" or "json".
func Output() string {
	return viper.GetString("output")
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/routes/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
