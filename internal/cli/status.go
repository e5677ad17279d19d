package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report workspace context health",
	Long: `Scan the context and goals directories and report per-file freshness,
stale and placeholder files, and which product primitives have
substantive coverage.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Inventory == nil {
			return fmt.Errorf("engine not initialized")
		}

		inv, err := Inventory.Inventory()
		if err != nil {
			return fmt.Errorf("scanning workspace: %w", err)
		}

		if Config != nil {
			fmt.Printf("Workspace: %s (%s)\n", Config.WorkspaceName, WorkspaceRoot)
			fmt.Printf("Search:    %s provider\n\n", Config.SearchProvider)
		} else {
			fmt.Printf("Workspace: %s\n\n", WorkspaceRoot)
		}

		if len(inv.Freshness) == 0 {
			fmt.Println("No context files found. Run through goals/ and context/ setup first.")
		}
		for _, f := range inv.Freshness {
			flags := ""
			if f.Stale {
				flags += " stale"
			}
			if f.Placeholder {
				flags += " placeholder"
			}
			fmt.Printf("  %-40s %s%s\n", f.RelativePath, f.ModifiedAt.Format("2006-01-02"), flags)
		}

		fmt.Printf("\nPrimitive coverage: %d/%d\n", len(inv.Covered), len(inv.Covered)+len(inv.Missing))
		for _, p := range inv.Missing {
			fmt.Printf("  missing: %s\n", p)
		}

		if MetricsCalc != nil {
			since := time.Now().UTC().AddDate(0, 0, -7)
			if metrics, err := MetricsCalc.Calculate(since); err == nil && metrics.EventCount > 0 {
				fmt.Printf("\nLast 7 days: %d briefings, %d context bundles, %d memory searches\n",
					metrics.BriefingsAssembled, metrics.ContextsAssembled, metrics.MemorySearches)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
