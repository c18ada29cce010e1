package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	sortNumeric bool
	sortReverse bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [files...]",
	Short: "Sort lines of files (or stdin) in place",
	Long: `Reads each file (or stdin when none are given), sorts the lines with
the bounds-checked sorting engine, and prints the result. Files are
processed concurrently; output keeps the argument order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		order := lineOrder{Numeric: sortNumeric, Reverse: sortReverse}

		if len(args) == 0 {
			lines, err := readLines(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := sortLines(lines, order); err != nil {
				return err
			}
			printLines(cmd, lines)
			return nil
		}

		results := make([][]string, len(args))
		g, _ := errgroup.WithContext(cmd.Context())
		for i, path := range args {
			i, path := i, path
			g.Go(func() error {
				lines, err := readFileLines(path)
				if err != nil {
					return err
				}
				if err := sortLines(lines, order); err != nil {
					return fmt.Errorf("sort %s: %w", path, err)
				}
				results[i] = lines
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, lines := range results {
			logger.Debug("sorted file", zap.String("path", args[i]), zap.Int("lines", len(lines)))
			printLines(cmd, lines)
		}
		return nil
	},
}

func printLines(cmd *cobra.Command, lines []string) {
	out := cmd.OutOrStdout()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

func init() {
	sortCmd.Flags().BoolVarP(&sortNumeric, "numeric", "n", false, "compare lines as numbers")
	sortCmd.Flags().BoolVarP(&sortReverse, "reverse", "r", false, "reverse the ordering")
	rootCmd.AddCommand(sortCmd)
}
