// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package cli implements the commands of the qformat tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/avdva/qformat"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	Profile    string

	// Logger is built in PersistentPreRunE unless already set.
	Logger *zap.Logger
	// Config is loaded from ConfigPath in PersistentPreRunE unless already set.
	Config *Config
}

// NewRootCommand creates the root command for the qformat tool.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qformat",
		Short: "Quantize numbers to binary fixed-point formats",
		Long: `qformat quantizes real numbers to Q-format registers with a selectable
rounding method (HALF_UP, HALF_EVEN, TRUNC, ...) and overflow method (WRAP, SAT, ERROR).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Logger == nil {
				logger, err := newLogger(opts.Verbose)
				if err != nil {
					return fmt.Errorf("creating logger: %w", err)
				}
				opts.Logger = logger
			}
			qformat.SetLogger(opts.Logger)
			if opts.Config == nil {
				cfg, err := LoadConfig(opts.ConfigPath)
				if err != nil {
					return err
				}
				opts.Config = cfg
				if opts.ConfigPath != "" {
					opts.Logger.Debug("config loaded", zap.String("path", opts.ConfigPath), zap.Int("profiles", len(cfg.Profiles)))
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML file with named profiles")
	cmd.PersistentFlags().StringVarP(&opts.Profile, "profile", "p", "", "profile from the config file")

	cmd.AddCommand(NewQuantizeCommand(opts))
	cmd.AddCommand(NewRangeCommand(opts))
	cmd.AddCommand(NewMethodsCommand(opts))

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
