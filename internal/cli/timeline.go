package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/arete-cli/arete/internal/observability"
	"github.com/arete-cli/arete/pkg/models"
	"github.com/spf13/cobra"
)

var (
	timelineFrom string
	timelineTo   string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <query>",
	Short: "Extract the dated history of a topic",
	Long: `Collect dated memory entries and meeting notes matching a topic,
newest first, with the themes that recur across them.

Examples:
  arete timeline onboarding
  arete timeline pricing --from 2026-01-01 --to 2026-03-31`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Timeline == nil {
			return fmt.Errorf("engine not initialized")
		}
		query := strings.Join(args, " ")

		var dateRange *models.DateRange
		if timelineFrom != "" || timelineTo != "" {
			for _, d := range []string{timelineFrom, timelineTo} {
				if d == "" {
					continue
				}
				if _, err := time.Parse("2006-01-02", d); err != nil {
					return fmt.Errorf("invalid date %q: use YYYY-MM-DD", d)
				}
			}
			dateRange = &models.DateRange{Start: timelineFrom, End: timelineTo}
		}

		tl, err := Timeline.GetTimeline(query, dateRange)
		if err != nil {
			return fmt.Errorf("extracting timeline for %q: %w", query, err)
		}

		_ = EventLog.Record(observability.EventTimelineExtracted, query, map[string]any{
			"items": len(tl.Items),
		})

		if len(tl.Items) == 0 {
			fmt.Printf("No dated activity for %q.\n", query)
			return nil
		}

		fmt.Printf("Timeline for %q (%s to %s):\n\n", query, tl.DateRange.Start, tl.DateRange.End)
		for _, item := range tl.Items {
			fmt.Printf("  %s  [%s]  %s  (%s)\n", item.Date, item.Type, item.Title, item.Source)
		}
		if len(tl.Themes) > 0 {
			fmt.Printf("\nThemes: %s\n", strings.Join(tl.Themes, ", "))
		}
		return nil
	},
}

func init() {
	timelineCmd.Flags().StringVar(&timelineFrom, "from", "", "inclusive start date (YYYY-MM-DD)")
	timelineCmd.Flags().StringVar(&timelineTo, "to", "", "inclusive end date (YYYY-MM-DD)")
	rootCmd.AddCommand(timelineCmd)
}
