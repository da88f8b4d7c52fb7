package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reviewdiff/logger"
	"reviewdiff/patch"
	"reviewdiff/text"
)

var rootCmd = &cobra.Command{
	Use:   "reviewdiff",
	Short: "Compute and inspect structured diffs",
	Long: `reviewdiff computes structured diffs between two text files, or parses
unified-diff text, and renders them side-by-side with word-level highlights
and collapsed unchanged regions.`,
	SilenceUsage: true,
}

var diffCmd = &cobra.Command{
	Use:   "diff <old-file> <new-file>",
	Short: "Diff two files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		oldText, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading old file: %w", err)
		}
		newText, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("reading new file: %w", err)
		}

		defer logger.Trace("diff")()
		fd := text.ComputeFileDiffContext(string(oldText), string(newText), args[1], cfg.ContextLines)
		renderFileDiff(cmd.OutOrStdout(), fd, cfg)
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [patch-file]",
	Short: "Parse unified-diff text and render it",
	Long:  "Parse reads git-style or bare unified-diff text from the given file, or from stdin when the argument is omitted or \"-\".",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		var diffText []byte
		if len(args) == 0 || args[0] == "-" {
			diffText, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
		} else {
			diffText, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading patch file: %w", err)
			}
		}

		defer logger.Trace("parse")()
		files := patch.Parse(string(diffText))
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to display")
			return nil
		}
		out := cmd.OutOrStdout()
		for i, fd := range files {
			if i > 0 {
				fmt.Fprintln(out)
			}
			renderFileDiff(out, fd, cfg)
		}
		return nil
	},
}

// setup merges the config file with flags and initializes logging.
func setup(cmd *cobra.Command) (Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("context") {
		cfg.ContextLines, _ = cmd.Flags().GetInt("context")
	}
	if cmd.Flags().Changed("unified") {
		unified, _ := cmd.Flags().GetBool("unified")
		cfg.SideBySide = !unified
	}
	if cmd.Flags().Changed("no-collapse") {
		noCollapse, _ := cmd.Flags().GetBool("no-collapse")
		cfg.Collapse = !noCollapse
	}
	if cmd.Flags().Changed("color") {
		cfg.Color, _ = cmd.Flags().GetString("color")
	}

	switch cfg.Color {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}

	if cfg.LogFile != "" {
		if _, err := logger.Init(cfg.LogFile, logger.ParseLevel(cfg.LogLevel)); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func main() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(parseCmd)

	rootCmd.PersistentFlags().String("config", "", "path to config file (TOML)")
	rootCmd.PersistentFlags().Int("context", 3, "context lines around changes")
	rootCmd.PersistentFlags().Bool("unified", false, "render unified output instead of side-by-side")
	rootCmd.PersistentFlags().Bool("no-collapse", false, "never collapse unchanged regions")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
