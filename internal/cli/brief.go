package cli

import (
	"fmt"
	"strings"

	"github.com/arete-cli/arete/internal/core"
	"github.com/arete-cli/arete/internal/observability"
	"github.com/arete-cli/arete/internal/storage"
	"github.com/spf13/cobra"
)

var (
	briefPrimitives []string
	briefSkill      string
)

var briefCmd = &cobra.Command{
	Use:   "brief <task>",
	Short: "Assemble a full task briefing",
	Long: `Build a briefing for a task: the context bundle, relevant memory,
entities resolved from the task text, and their relationships, rendered
as markdown.

When no --skill is given the task is routed against the installed
skills and the best match, if any, is attached to the briefing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Synthesizer == nil {
			return fmt.Errorf("engine not initialized")
		}
		task := strings.Join(args, " ")

		skill := briefSkill
		if skill == "" {
			if candidates, err := storage.LoadSkills(Paths); err == nil {
				if routed := core.RouteToSkill(task, candidates); routed != nil {
					skill = routed.Skill
				}
			}
		}

		briefing, err := Synthesizer.AssembleBriefing(cmd.Context(), task, core.BriefingOptions{
			Primitives: parsePrimitives(briefPrimitives),
			Skill:      skill,
		})
		if err != nil {
			return fmt.Errorf("assembling briefing for %q: %w", task, err)
		}

		_ = EventLog.Record(observability.EventBriefingAssembled, task, map[string]any{
			"confidence": string(briefing.Confidence),
			"entities":   len(briefing.Entities),
			"skill":      skill,
		})

		fmt.Print(briefing.Markdown)
		return nil
	},
}

func init() {
	briefCmd.Flags().StringSliceVar(&briefPrimitives, "primitives", nil, "restrict to a subset of Problem, User, Solution, Market, Risk")
	briefCmd.Flags().StringVar(&briefSkill, "skill", "", "skill name to attach to the briefing")
	rootCmd.AddCommand(briefCmd)
}
