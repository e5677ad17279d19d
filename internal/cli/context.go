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
	contextPrimitives []string
	contextMaxFiles   int
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Assemble a context bundle for a task",
	Long: `Assemble a relevance-ranked bundle of workspace files for a task,
organized by the five product primitives (Problem, User, Solution,
Market, Risk), with coverage gaps and a confidence grade.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Assembler == nil {
			return fmt.Errorf("engine not initialized")
		}
		query := strings.Join(args, " ")

		bundle, err := Assembler.Assemble(cmd.Context(), query, core.AssembleOptions{
			Primitives: parsePrimitives(contextPrimitives),
			MaxFiles:   contextMaxFiles,
		})
		if err != nil {
			return fmt.Errorf("assembling context for %q: %w", query, err)
		}

		_ = EventLog.Record(observability.EventContextAssembled, query, map[string]any{
			"confidence": string(bundle.Confidence),
			"files":      len(bundle.Files),
			"gaps":       len(bundle.Gaps),
		})

		printBundle(bundle)
		return nil
	},
}

func printBundle(bundle *models.ContextBundle) {
	fmt.Printf("Context for: %s\n", bundle.Query)
	fmt.Printf("Confidence:  %s\n\n", bundle.Confidence)

	if len(bundle.Files) == 0 {
		fmt.Println("No relevant files found.")
	}
	for _, f := range bundle.Files {
		tag := ""
		if f.Primitive != "" {
			tag = fmt.Sprintf(" [%s]", f.Primitive)
		}
		fmt.Printf("  %.2f  %s%s\n", f.RelevanceScore, f.RelativePath, tag)
	}

	if len(bundle.TemporalSignals) > 0 {
		fmt.Println("\nRecent activity:")
		for _, s := range bundle.TemporalSignals {
			fmt.Printf("  - %s\n", s)
		}
	}

	if len(bundle.Gaps) > 0 {
		fmt.Println("\nGaps:")
		for _, g := range bundle.Gaps {
			fmt.Printf("  - %s: %s (%s)\n", g.Primitive, g.Description, g.Suggestion)
		}
	}
}

func parsePrimitives(names []string) []models.Primitive {
	var primitives []models.Primitive
	for _, n := range names {
		for _, p := range models.AllPrimitives {
			if strings.EqualFold(n, string(p)) {
				primitives = append(primitives, p)
			}
		}
	}
	return primitives
}

func init() {
	contextCmd.Flags().StringSliceVar(&contextPrimitives, "primitives", nil, "restrict to a subset of Problem, User, Solution, Market, Risk")
	contextCmd.Flags().IntVar(&contextMaxFiles, "max-files", 0, "maximum number of files in the bundle")
	rootCmd.AddCommand(contextCmd)
}
