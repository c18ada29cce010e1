package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seqguard/pkg/token"
)

var (
	tokensDelims string
	tokensFile   string
	tokensFollow bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [string]",
	Short: "Split input into tokens",
	Long: `Splits the argument (or a file with --file) on the configured
delimiter set, one token per output line. Consecutive delimiters yield
no empty tokens. With --follow the file is watched and re-split on every
write until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delims := tokensDelims
		if delims == "" {
			delims = cfg.Tokens.Delimiters
		}

		switch {
		case tokensFollow:
			if tokensFile == "" {
				return fmt.Errorf("--follow requires --file")
			}
			return followTokens(cmd, tokensFile, delims)
		case tokensFile != "":
			return emitFileTokens(cmd, tokensFile, delims)
		case len(args) == 1:
			return emitTokens(cmd, []byte(args[0]), delims)
		default:
			return fmt.Errorf("need a string argument or --file")
		}
	},
}

// emitTokens terminates a copy of src and prints each token. The library
// splits NUL-terminated buffers, so command input gets its terminator
// appended here.
func emitTokens(cmd *cobra.Command, src []byte, delims string) error {
	buf := append(append([]byte(nil), src...), token.Terminator)
	toks, err := token.Collect(buf, delims)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, tok := range toks {
		fmt.Fprintln(out, string(tok))
	}
	logger.Debug("tokenized", zap.Int("tokens", len(toks)))
	return nil
}

func emitFileTokens(cmd *cobra.Command, path, delims string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data = []byte(strings.TrimRight(string(data), "\n"))
	return emitTokens(cmd, data, delims)
}

// followTokens re-tokenizes the file whenever it changes.
func followTokens(cmd *cobra.Command, path, delims string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	if err := emitFileTokens(cmd, path, delims); err != nil {
		return err
	}

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("input changed", zap.String("path", path), zap.String("op", ev.Op.String()))
			if err := emitFileTokens(cmd, path, delims); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensDelims, "delimiters", "d", "", "delimiter byte set (default from config)")
	tokensCmd.Flags().StringVarP(&tokensFile, "file", "f", "", "read input from a file")
	tokensCmd.Flags().BoolVar(&tokensFollow, "follow", false, "watch --file and re-split on changes")
	rootCmd.AddCommand(tokensCmd)
}
