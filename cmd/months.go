package cmd

import (
	"fmt"
	"sort"

	"finsight/internal/cli"

	"github.com/spf13/cobra"
)

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List months present in each dataset",
	RunE:  runMonths,
}

func init() {
	rootCmd.AddCommand(monthsCmd)
}

func runMonths(_ *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}

	actuals := make(map[string]bool)
	for _, r := range data.Actuals {
		actuals[r.Month] = true
	}
	budget := make(map[string]bool)
	for _, r := range data.Budget {
		budget[r.Month] = true
	}
	fx := make(map[string]bool)
	for _, r := range data.Fx {
		fx[r.Month] = true
	}
	cash := make(map[string]bool)
	for _, c := range data.Cash {
		cash[c.Month] = true
	}

	all := make(map[string]bool)
	for _, set := range []map[string]bool{actuals, budget, fx, cash} {
		for m := range set {
			all[m] = true
		}
	}
	months := make([]string, 0, len(all))
	for m := range all {
		months = append(months, m)
	}
	sort.Strings(months)

	mark := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "—"
	}

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{m, mark(actuals[m]), mark(budget[m]), mark(fx[m]), mark(cash[m])})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Actuals", "Budget", "FX", "Cash"},
		Rows:    rows,
	}))
	return nil
}
