// Copyright 2020 Aleksandr Demakin. All rights reserved.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avdva/qformat"
)

type quantizeOptions struct {
	quantizerFlags
	bits    bool
	exact   bool
	workers int
}

// NewQuantizeCommand creates the quantize command.
func NewQuantizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &quantizeOptions{}
	cmd := &cobra.Command{
		Use:   "quantize [values...]",
		Short: "Quantize values to a fixed-point format",
		Long: `Quantize values given as arguments, or read from stdin one per line.
Empty lines and lines starting with '#' are skipped.

Prints one quantized value per line. With --bits the two's complement
register contents are printed after each value.`,
		Example: `  qformat quantize -f sQ4.2 -o sat 3.14 8
  seq 0 0.1 1 | qformat quantize -f uQ1.3 -r half_even`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantize(cmd, rootOpts, opts, args)
		},
	}
	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.bits, "bits", false, "print register bits")
	cmd.Flags().BoolVar(&opts.exact, "exact", false, "print exact decimal values")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "number of goroutines, 0 means GOMAXPROCS")
	return cmd
}

func runQuantize(cmd *cobra.Command, rootOpts *RootOptions, opts *quantizeOptions, args []string) error {
	q, err := opts.resolve(cmd, rootOpts)
	if err != nil {
		return err
	}
	xs, err := parseValues(args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if xs, err = readValues(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	rootOpts.Logger.Debug("quantizing", zap.Stringer("quantizer", q), zap.Int("values", len(xs)))

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	if opts.bits || opts.exact {
		for i, x := range xs {
			v, err := q.Code(x)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			writeValue(w, v, opts.bits, opts.exact)
		}
		return nil
	}
	res, err := qformat.QuantizeSliceParallel(cmd.Context(), q, xs, opts.workers)
	if err != nil {
		return err
	}
	for _, v := range res {
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		w.WriteByte('\n')
	}
	return nil
}

func writeValue(w *bufio.Writer, v qformat.Value, bits, exact bool) {
	if exact {
		w.WriteString(v.String())
	} else {
		w.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	}
	if bits {
		w.WriteByte(' ')
		w.WriteString(v.Bits())
	}
	w.WriteByte('\n')
}

func parseValues(args []string) ([]float64, error) {
	xs := make([]float64, 0, len(args))
	for _, arg := range args {
		x, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", arg, err)
		}
		xs = append(xs, x)
	}
	return xs, nil
}

func readValues(r io.Reader) ([]float64, error) {
	var xs []float64
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad value %q: %w", line, s, err)
		}
		xs = append(xs, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading values: %w", err)
	}
	return xs, nil
}
