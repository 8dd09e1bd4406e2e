// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/seojungmin/machine/lib/workload"
)

// newGenTraceCommand returns the gen-trace subcommand, which writes a
// synthetic Zipf-distributed trace file in the "op fork block" format
// lib/trace.Reader consumes — useful for exercising `run` without a
// real production trace on hand.
func newGenTraceCommand() *cobra.Command {
	var (
		outFlag   string
		countFlag uint
		maxFlag   uint64
		seedFlag  uint64
		skewFlag  float64
	)

	cmd := &cobra.Command{
		Use:   "gen-trace",
		Short: "Generate a synthetic Zipf-distributed trace file",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&outFlag, "out", "trace.txt", "path to write the generated trace to")
	cmd.Flags().UintVar(&countFlag, "count", 10000, "number of accesses to generate")
	cmd.Flags().Uint64Var(&maxFlag, "max-block", 1023, "largest global block id to generate (fork is always 0)")
	cmd.Flags().Uint64Var(&seedFlag, "seed", 1, "seed for the Zipf generator")
	cmd.Flags().Float64Var(&skewFlag, "skew", 1.2, "Zipf skew parameter s (> 1, larger means more skew toward low block ids)")

	cmd.RunE = withRuntime(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		f, err := os.Create(outFlag)
		if err != nil {
			return err
		}
		defer f.Close()

		w := bufio.NewWriter(f)
		accesses := workload.GenerateTrace(seedFlag, int(countFlag), maxFlag, skewFlag)
		for _, a := range accesses {
			op := byte('r')
			if a.Write {
				op = 'w'
			}
			if _, err := fmt.Fprintf(w, "%c 0 %d\n", op, a.Block); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}

		dlog.Infof(ctx, "wrote %d accesses to %s", len(accesses), outFlag)
		return nil
	})
	return cmd
}
