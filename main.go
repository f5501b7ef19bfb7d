package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tidysweep/internal/cleaner"
	"tidysweep/internal/config"
	"tidysweep/internal/log"
	"tidysweep/internal/picker"
	"tidysweep/internal/scanner"
	"tidysweep/internal/utils"
)

var (
	flagConfig   string
	flagAllFiles bool
	flagAbsolute bool
	flagDryRun   bool
	flagDebug    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tidysweep",
		Short: "Interactive disk cleanup for your terminal",
		Long: `tidysweep scans for caches, logs, temp files and other removable
items, lets you pick what goes in a two-pane terminal interface, and
reports how much space was freed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/tidysweep/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "verbose logging")
	rootCmd.Flags().BoolVar(&flagAllFiles, "all-files", false, "per-file selection for every category")
	rootCmd.Flags().BoolVar(&flagAbsolute, "absolute-paths", false, "show absolute paths instead of ~-relative")
	rootCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "report what would be removed without deleting")

	rootCmd.AddCommand(newListCmd())
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	return config.Load()
}

func run() error {
	if err := log.Setup(flagDebug); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	cfg.AllFiles = flagAllFiles
	cfg.DryRun = flagDryRun
	if flagAbsolute {
		cfg.UI.AbsolutePaths = true
	}

	categories, err := config.Categories()
	if err != nil {
		return err
	}

	m := picker.New(cfg, scanner.New(cfg, categories), cleaner.Clean)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	fm, ok := final.(*picker.Model)
	if !ok || !fm.Confirmed() {
		return nil
	}
	report := fm.Report()
	verb := "freed"
	if cfg.DryRun {
		verb = "would free"
	}
	fmt.Printf("%s %s across %d items\n", verb, utils.FormatSize(report.FreedSpace), report.CleanedItems)
	if report.FailedItems > 0 {
		fmt.Printf("%d items could not be removed (see log)\n", report.FailedItems)
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the configured categories without scanning",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := config.Categories()
			if err != nil {
				return err
			}
			fmt.Printf("%-16s %-24s %-10s %s\n", "ID", "NAME", "SAFETY", "MODE")
			for _, cat := range categories {
				mode := "whole category"
				if cat.SupportsFiles {
					mode = "per-file"
				}
				fmt.Printf("%-16s %-24s %-10s %s\n", cat.ID, cat.Name, cat.Safety, mode)
			}
			return nil
		},
	}
}
