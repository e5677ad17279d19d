// Package cli implements the arete command-line interface over the
// workspace intelligence engine.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "arete",
	Short: "Areté - workspace intelligence for product work",
	Long: `Areté turns a markdown workspace (context, goals, projects, people,
meetings, memory) into task-ready intelligence: it resolves fuzzy entity
references, assembles relevance-ranked context organized by the five
product primitives, searches past decisions and learnings, extracts
topic timelines, and synthesizes full task briefings.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arete %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
