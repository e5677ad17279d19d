package cli

import (
	"fmt"
	"strings"

	"github.com/arete-cli/arete/internal/core"
	"github.com/arete-cli/arete/internal/observability"
	"github.com/arete-cli/arete/pkg/models"
	"github.com/spf13/cobra"
)

var (
	memoryTypes []string
	memoryLimit int
)

var memoryCmd = &cobra.Command{
	Use:   "memory <query>",
	Short: "Search decisions, learnings, and observations",
	Long: `Search the workspace memory: dated decision records, learnings, and
agent observations. Title matches rank above body matches and recent
entries get a small boost.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Memory == nil {
			return fmt.Errorf("engine not initialized")
		}
		query := strings.Join(args, " ")

		var types []models.MemoryItemType
		for _, t := range memoryTypes {
			types = append(types, models.MemoryItemType(strings.ToLower(t)))
		}

		result, err := Memory.Search(query, core.MemorySearchOptions{Types: types, Limit: memoryLimit})
		if err != nil {
			return fmt.Errorf("searching memory for %q: %w", query, err)
		}

		_ = EventLog.Record(observability.EventMemorySearched, query, map[string]any{
			"total": result.Total,
		})

		if result.Total == 0 {
			fmt.Printf("No memory matches for %q.\n", query)
			return nil
		}
		fmt.Printf("%d match(es) for %q:\n\n", result.Total, query)
		for _, r := range result.Results {
			header := string(r.Type)
			if r.Date != "" {
				header += " " + r.Date
			}
			fmt.Printf("[%s] %s\n", header, r.Relevance)
			fmt.Printf("%s\n\n", indent(r.Content, "  "))
		}
		return nil
	},
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func init() {
	memoryCmd.Flags().StringSliceVar(&memoryTypes, "types", nil, "restrict to memory types: decisions, learnings, observations")
	memoryCmd.Flags().IntVar(&memoryLimit, "limit", 0, "maximum number of results (default 10)")
	rootCmd.AddCommand(memoryCmd)
}
