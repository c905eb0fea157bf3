package main

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tinygo.org/x/tinyb"
	"tinygo.org/x/tinyb/internal/config"
)

// loadConfig reads the --config file and applies the global flags on top of
// it. --log-level, --adapter and --no-discover take precedence over the file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if _, err := config.ParseLevel(level); err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}
	if adapter, _ := cmd.Flags().GetString("adapter"); adapter != "" {
		cfg.Adapter = adapter
	}
	if noDiscover, _ := cmd.Flags().GetBool("no-discover"); noDiscover {
		cfg.Discover = false
	}
	return cfg, nil
}

// configureLogger loads the configuration and installs its logger and poll
// interval in the tinyb package.
func configureLogger(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	logger := cfg.NewLogger()
	tinyb.SetLogger(logger.WithField("pkg", "tinyb"))
	tinyb.PollInterval = cfg.PollInterval
	color.NoColor = color.NoColor || !cfg.Color
	return cfg, logger, nil
}
