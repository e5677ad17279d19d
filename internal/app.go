// Package internal provides the App struct that wires all components of the
// Areté intelligence engine together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"

	"github.com/arete-cli/arete/internal/cli"
	"github.com/arete-cli/arete/internal/core"
	"github.com/arete-cli/arete/internal/observability"
	"github.com/arete-cli/arete/internal/search"
	"github.com/arete-cli/arete/internal/storage"
)

// App holds all service dependencies for the intelligence engine.
type App struct {
	WorkspaceRoot string
	Paths         storage.WorkspacePaths

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *core.Config

	// Storage layer
	Store storage.WorkspaceStore

	// Search
	Searcher search.Provider

	// Core services
	Resolver    core.Resolver
	Assembler   core.Assembler
	Memory      core.MemorySearcher
	Timeline    core.TimelineEngine
	Mentions    core.MentionExtractor
	Synthesizer core.Synthesizer
	Inventory   core.InventoryTaker

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all engine components rooted at workspaceRoot,
// the directory containing arete.yaml.
func NewApp(workspaceRoot string) (*App, error) {
	app := &App{
		WorkspaceRoot: workspaceRoot,
		Paths:         storage.NewWorkspacePaths(workspaceRoot),
	}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(workspaceRoot)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Store = storage.NewWorkspaceStore(app.Paths)

	// --- Search ---
	app.Searcher, err = search.NewProvider(cfg.SearchProvider, app.Store, app.Paths)
	if err != nil {
		// Non-fatal: an unbuildable index degrades to token overlap.
		app.Searcher = search.NewFallbackProvider(app.Store)
	}

	// --- Observability ---
	eventLogPath := filepath.Join(workspaceRoot, ".arete", "events.jsonl")
	if err := os.MkdirAll(filepath.Dir(eventLogPath), 0o755); err == nil {
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			app.EventLog = observability.NopEventLog()
		}
	} else {
		app.EventLog = observability.NopEventLog()
	}
	app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)

	// --- Core services ---
	app.Resolver = core.NewResolver(app.Store)
	app.Timeline = core.NewTimelineEngine(app.Store)
	app.Assembler = core.NewAssembler(app.Store, app.Searcher, app.Timeline, core.AssembleOptions{
		MaxFiles: cfg.MaxFiles,
		MinScore: cfg.MinScore,
	})
	app.Memory = core.NewMemorySearcher(app.Store)
	app.Mentions = core.NewMentionExtractor(app.Store)
	app.Synthesizer = core.NewSynthesizer(app.Assembler, app.Memory, app.Resolver, app.Mentions)
	app.Inventory = core.NewInventoryTaker(app.Store, cfg.StaleAfter)

	// --- Wire CLI package-level variables ---
	cli.WorkspaceRoot = workspaceRoot
	cli.Paths = app.Paths
	cli.Config = cfg
	cli.Store = app.Store
	cli.Resolver = app.Resolver
	cli.Assembler = app.Assembler
	cli.Memory = app.Memory
	cli.Timeline = app.Timeline
	cli.Mentions = app.Mentions
	cli.Synthesizer = app.Synthesizer
	cli.Inventory = app.Inventory
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App: the event log file handle and
// the search index, if one is open.
func (a *App) Close() error {
	if a.Searcher != nil {
		_ = a.Searcher.Close()
	}
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveWorkspaceRoot determines the workspace root. It checks the
// ARETE_HOME env var, then walks up from the current directory looking
// for arete.yaml, falling back to the current directory.
func ResolveWorkspaceRoot() string {
	if home := os.Getenv("ARETE_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, err := storage.FindWorkspaceRoot(cwd); err == nil {
		return root
	}
	return cwd
}
