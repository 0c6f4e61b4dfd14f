// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avdva/qformat"
)

var roundingDocs = map[qformat.Rounding]string{
	qformat.HalfUp:   "nearest, ties toward +inf (default)",
	qformat.HalfDown: "nearest, ties toward -inf",
	qformat.HalfEven: "nearest, ties to even",
	qformat.HalfZero: "nearest, ties toward zero",
	qformat.HalfAway: "nearest, ties away from zero",
	qformat.Trunc:    "toward -inf (drop low bits)",
	qformat.Ceil:     "toward +inf",
	qformat.ToZero:   "toward zero",
	qformat.Away:     "away from zero",
}

var overflowDocs = map[qformat.Overflow]string{
	qformat.Wrap:  "two's complement wraparound (default)",
	qformat.Sat:   "clamp to the range",
	qformat.Error: "fail on overflow",
}

// NewMethodsCommand creates the methods command.
func NewMethodsCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List rounding and overflow methods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "rounding:")
			for _, r := range qformat.Roundings() {
				fmt.Fprintf(out, "  %-10s%s\n", r, roundingDocs[r])
			}
			fmt.Fprintln(out, "overflow:")
			for _, o := range qformat.Overflows() {
				fmt.Fprintf(out, "  %-10s%s\n", o, overflowDocs[o])
			}
		},
	}
}
