// Package common holds the flags shared by the arcscan subcommands: the
// config file and the logging setup.
package common

import (
	"log/slog"

	"github.com/flarebyte/arcscan/internal/config"
	"github.com/flarebyte/arcscan/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags are bound once per subcommand.
type Flags struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// Register adds the shared flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (.cue)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&f.LogFormat, "log-format", "text", "Log format: text, json")
}

// Resolve loads the config file (or the defaults) and configures logging to
// the command's stderr. Explicit log flags win over the config file.
func (f *Flags) Resolve(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		cfg = loaded
	}
	level, format := cfg.Log.Level, cfg.Log.Format
	if cmd.Flags().Changed("log-level") {
		level = f.LogLevel
	}
	if cmd.Flags().Changed("log-format") {
		format = f.LogFormat
	}
	logger, err := logging.Setup(level, format, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
