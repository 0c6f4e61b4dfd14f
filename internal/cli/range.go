// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avdva/qformat"
)

// NewRangeCommand creates the range command.
func NewRangeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &quantizerFlags{formatOnly: true}
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Print the geometry of a fixed-point format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.resolve(cmd, rootOpts)
			if err != nil {
				return err
			}
			return printRange(cmd, q.Format)
		},
	}
	opts.register(cmd)
	return cmd
}

func printRange(cmd *cobra.Command, f qformat.Format) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
	rows := [][2]string{
		{"format", f.String()},
		{"bits", strconv.Itoa(f.TotalBits())},
		{"min", formatFloat(f.Min())},
		{"max", formatFloat(f.Max())},
		{"resolution", formatFloat(f.Resolution())},
		{"min code", f.MinCode().String()},
		{"max code", f.MaxCode().String()},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	return w.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
