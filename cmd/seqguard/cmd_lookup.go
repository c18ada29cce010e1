package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	lookupNumeric  bool
	lookupFoldCase bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <key> [file]",
	Short: "Binary-search lines for a key",
	Long: `Reads the file (or stdin), sorts the lines, and binary-searches them
for the key. Prints the matching line; exits nonzero when the key is
absent. A miss is a normal outcome, not a constraint violation.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		path := ""
		if len(args) == 2 {
			path = args[1]
		}

		lines, err := linesOrStdin(path)
		if err != nil {
			return err
		}

		order := lineOrder{Numeric: lookupNumeric, FoldCase: lookupFoldCase}
		if err := sortLines(lines, order); err != nil {
			return err
		}

		p := lookupLine(key, lines, order)
		if p == nil {
			logger.Debug("lookup miss", zap.String("key", key), zap.Int("lines", len(lines)))
			return fmt.Errorf("%q not found", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), *p)
		return nil
	},
}

func init() {
	lookupCmd.Flags().BoolVarP(&lookupNumeric, "numeric", "n", false, "compare lines as numbers")
	lookupCmd.Flags().BoolVar(&lookupFoldCase, "fold-case", false, "case-insensitive comparison")
	rootCmd.AddCommand(lookupCmd)
}
