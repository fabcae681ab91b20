package cmd

import (
	"fmt"
	"os"
	"strings"

	"finsight/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	dataDir := cfg.General.DataDir
	if dataDir == "" {
		dataDir = flagDataDir
	}
	lookback := cfg.General.DefaultLookback

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Folder holding actuals.csv, budget.csv, fx.csv, cash.csv").
				Value(&dataDir).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return fmt.Errorf("data directory is required")
					}
					if fi, err := os.Stat(s); err != nil || !fi.IsDir() {
						return fmt.Errorf("%s is not a directory", s)
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("Default trend window").
				Description("Used when a question doesn't name one").
				Options(
					huh.NewOption("3 months", 3),
					huh.NewOption("6 months", 6),
					huh.NewOption("12 months", 12),
				).
				Value(&lookback),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.DataDir = strings.TrimSpace(dataDir)
	cfg.General.DefaultLookback = lookback

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `finsight setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
