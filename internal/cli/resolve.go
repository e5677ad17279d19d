package cli

import (
	"fmt"
	"strings"

	"github.com/arete-cli/arete/internal/observability"
	"github.com/arete-cli/arete/pkg/models"
	"github.com/spf13/cobra"
)

var (
	resolveType          string
	resolveLimit         int
	resolveAll           bool
	resolveRelationships bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <reference>",
	Short: "Resolve a fuzzy reference to a workspace entity",
	Long: `Resolve a name, slug, email, or title fragment to the people,
meetings, or projects it most likely refers to.

Examples:
  arete resolve "jane"
  arete resolve "jane@acme.com" --type person
  arete resolve "search discovery" --type project --all`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resolver == nil {
			return fmt.Errorf("engine not initialized")
		}
		reference := strings.Join(args, " ")

		entityType := models.EntityAny
		if resolveType != "" {
			entityType = models.EntityType(strings.ToLower(resolveType))
			switch entityType {
			case models.EntityPerson, models.EntityMeeting, models.EntityProject, models.EntityAny:
			default:
				return fmt.Errorf("invalid type %q: must be one of person, meeting, project, any", resolveType)
			}
		}

		limit := resolveLimit
		if !resolveAll {
			limit = 1
		}
		matches, err := Resolver.ResolveAll(reference, entityType, limit)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", reference, err)
		}
		if len(matches) == 0 {
			fmt.Printf("No match for %q.\n", reference)
			return nil
		}

		_ = EventLog.Record(observability.EventEntityResolved, reference, map[string]any{
			"type":    string(entityType),
			"matches": len(matches),
		})

		for _, m := range matches {
			fmt.Printf("%-8s %-30s score %.0f  %s\n", m.Type, m.Name, m.Score, m.Path)
		}

		if resolveRelationships {
			rels, err := Mentions.GetRelationships(matches[0])
			if err != nil {
				return fmt.Errorf("extracting relationships for %q: %w", matches[0].Name, err)
			}
			if len(rels) == 0 {
				fmt.Println("\nNo relationships found.")
				return nil
			}
			fmt.Println("\nRelationships:")
			for _, r := range rels {
				fmt.Printf("  %-13s %s -> %s (%s)\n", r.Type, r.From, r.To, r.ToType)
			}
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveType, "type", "", "entity type: person, meeting, project, or any")
	resolveCmd.Flags().IntVar(&resolveLimit, "limit", 0, "maximum candidates with --all (default 5)")
	resolveCmd.Flags().BoolVar(&resolveAll, "all", false, "show all candidates instead of the best match")
	resolveCmd.Flags().BoolVar(&resolveRelationships, "relationships", false, "show relationships for the best match")
	rootCmd.AddCommand(resolveCmd)
}
