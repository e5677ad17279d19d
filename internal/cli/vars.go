package cli

import (
	"github.com/arete-cli/arete/internal/core"
	"github.com/arete-cli/arete/internal/observability"
	"github.com/arete-cli/arete/internal/storage"
)

// Engine service instances, set during app initialization in app.go.
var (
	WorkspaceRoot string
	Paths         storage.WorkspacePaths
	Config        *core.Config
	Store         storage.WorkspaceStore

	Resolver    core.Resolver
	Assembler   core.Assembler
	Memory      core.MemorySearcher
	Timeline    core.TimelineEngine
	Mentions    core.MentionExtractor
	Synthesizer core.Synthesizer
	Inventory   core.InventoryTaker

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
