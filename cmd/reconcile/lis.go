package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func lisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lis N...",
		Short: "Print a longest increasing subsequence",
		Long: `Print the positions and values of one longest strictly increasing
subsequence of the given integers. Negative values are skipped, the same
way the reconciler skips new nodes in its source array.

Examples:
  reconcile lis 4 2 3 1 5
  reconcile lis -- 2 -1 0 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq := make([]int, len(args))
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return errors.Newf(errors.CategoryConfig, "argument %d: %q is not an integer", i+1, arg)
				}
				seq[i] = n
			}

			positions := vdom.LongestIncreasingSubsequence(seq)
			values := make([]int, len(positions))
			for i, p := range positions {
				values[i] = seq[p]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "length:    %d\n", len(positions))
			fmt.Fprintf(out, "positions: %v\n", positions)
			fmt.Fprintf(out, "values:    %v\n", values)
			return nil
		},
	}
}
