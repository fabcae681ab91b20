package cmd

import (
	"fmt"
	"strings"

	"finsight/internal/cli"
	"finsight/internal/config"
	"finsight/internal/metrics"
	"finsight/internal/model"
	"finsight/internal/planner"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a finance question",
	Args:  cobra.ArbitraryArgs,
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		printSamples("Ask a finance question, for example:")
		return nil
	}

	cfg, _ := config.Load()
	intent := planner.ClassifyWithDefault(question, cfg.General.DefaultLookback)
	if intent.Kind == model.IntentUnknown {
		printSamples("I don't understand that yet. Try questions like:")
		return nil
	}

	data, err := loadData()
	if err != nil {
		return err
	}

	result, err := metrics.Run(intent, data)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderResult(result))
	return nil
}

func printSamples(lead string) {
	fmt.Println()
	fmt.Printf("  %s\n\n", lead)
	for _, q := range planner.SampleQuestions {
		fmt.Printf("    • %s\n", q)
	}
	fmt.Println()
}
