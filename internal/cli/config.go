// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/avdva/qformat"
)

// Config is the content of a config file:
//
//	profiles:
//	  adc:
//	    format: sQ4.5
//	    overflow: SAT
//	  acc:
//	    format: sQ7.5
//	    rounding: TRUNC
type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is a named quantizer. Unset fields fall back to flags and defaults.
type Profile struct {
	Format   *qformat.Format   `yaml:"format"`
	Rounding *qformat.Rounding `yaml:"rounding"`
	Overflow *qformat.Overflow `yaml:"overflow"`
}

// LoadConfig reads a config file. An empty path returns an empty config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data. Unknown fields are errors.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// quantizerFlags are the flags that select a quantizer.
// With formatOnly set, only --format is registered and the methods come from the profile or defaults.
type quantizerFlags struct {
	format     string
	rounding   string
	overflow   string
	formatOnly bool
}

func (qf *quantizerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&qf.format, "format", "f", "", `fixed-point format, like "sQ4.2" or "uQ8.0"`)
	if qf.formatOnly {
		return
	}
	cmd.Flags().StringVarP(&qf.rounding, "rounding", "r", qformat.HalfUp.String(), "rounding method")
	cmd.Flags().StringVarP(&qf.overflow, "overflow", "o", qformat.Wrap.String(), "overflow method")
}

// resolve builds a quantizer from the selected profile, overridden by explicitly set flags.
func (qf *quantizerFlags) resolve(cmd *cobra.Command, opts *RootOptions) (qformat.Quantizer, error) {
	var q qformat.Quantizer
	var haveFormat bool
	if opts.Profile != "" {
		var p Profile
		var ok bool
		if opts.Config != nil {
			p, ok = opts.Config.Profiles[opts.Profile]
		}
		if !ok {
			return q, fmt.Errorf("unknown profile %q", opts.Profile)
		}
		if p.Format != nil {
			q.Format, haveFormat = *p.Format, true
		}
		if p.Rounding != nil {
			q.Rounding = *p.Rounding
		}
		if p.Overflow != nil {
			q.Overflow = *p.Overflow
		}
	}
	var err error
	if cmd.Flags().Changed("format") || !haveFormat {
		if qf.format == "" {
			return q, fmt.Errorf("no format: use --format or a profile")
		}
		if q.Format, err = qformat.ParseFormat(qf.format); err != nil {
			return q, err
		}
	}
	if qf.formatOnly {
		return q, q.Validate()
	}
	if cmd.Flags().Changed("rounding") || opts.Profile == "" {
		if q.Rounding, err = qformat.ParseRounding(qf.rounding); err != nil {
			return q, err
		}
	}
	if cmd.Flags().Changed("overflow") || opts.Profile == "" {
		if q.Overflow, err = qformat.ParseOverflow(qf.overflow); err != nil {
			return q, err
		}
	}
	return q, q.Validate()
}
