// Command arete is the workspace intelligence CLI. It resolves entity
// references, assembles primitive-organized context bundles, searches
// memory, extracts timelines, and synthesizes task briefings from a
// markdown workspace.
package main

import (
	"fmt"
	"os"

	"github.com/arete-cli/arete/internal"
	"github.com/arete-cli/arete/internal/cli"
)

// Version information, injected at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	app, err := internal.NewApp(internal.ResolveWorkspaceRoot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "arete: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "arete: %v\n", err)
		os.Exit(1)
	}
}
