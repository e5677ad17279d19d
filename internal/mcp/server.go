// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the workspace intelligence engine as MCP tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/arete-cli/arete/internal/core"
	"github.com/arete-cli/arete/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the engine services and exposes them as MCP tools.
type Server struct {
	server      *gomcp.Server
	resolver    core.Resolver
	assembler   core.Assembler
	memory      core.MemorySearcher
	timeline    core.TimelineEngine
	synthesizer core.Synthesizer
}

// NewServer creates an MCP server over the given engine services.
func NewServer(resolver core.Resolver, assembler core.Assembler, memory core.MemorySearcher, timeline core.TimelineEngine, synthesizer core.Synthesizer, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		resolver:    resolver,
		assembler:   assembler,
		memory:      memory,
		timeline:    timeline,
		synthesizer: synthesizer,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "arete", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client
// disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type resolveEntityInput struct {
	Reference string `json:"reference" jsonschema:"required,the entity reference to resolve (a name, slug, email, or meeting/project title fragment)"`
	Type      string `json:"type,omitempty" jsonschema:"entity type to search (person, meeting, project, any). Defaults to any."`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of candidates to return. Defaults to 5."`
}

type entityOutput struct {
	Type  string         `json:"type"`
	Path  string         `json:"path"`
	Name  string         `json:"name"`
	Slug  string         `json:"slug"`
	Score float64        `json:"score"`
	Meta  map[string]any `json:"metadata,omitempty"`
}

type resolveEntityOutput struct {
	Matches []entityOutput `json:"matches"`
	Count   int            `json:"count"`
}

type getContextInput struct {
	Query      string   `json:"query" jsonschema:"required,the task or question to assemble context for"`
	Primitives []string `json:"primitives,omitempty" jsonschema:"subset of Problem, User, Solution, Market, Risk. Defaults to all five."`
	MaxFiles   int      `json:"max_files,omitempty" jsonschema:"maximum number of files in the bundle. Defaults to 15."`
}

type contextFileOutput struct {
	RelativePath   string  `json:"relative_path"`
	Primitive      string  `json:"primitive,omitempty"`
	Category       string  `json:"category"`
	Summary        string  `json:"summary"`
	RelevanceScore float64 `json:"relevance_score"`
}

type contextGapOutput struct {
	Primitive   string `json:"primitive"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

type getContextOutput struct {
	Query           string              `json:"query"`
	Files           []contextFileOutput `json:"files"`
	Gaps            []contextGapOutput  `json:"gaps,omitempty"`
	Confidence      string              `json:"confidence"`
	TemporalSignals []string            `json:"temporal_signals,omitempty"`
}

type searchMemoryInput struct {
	Query string   `json:"query" jsonschema:"required,free-text query over decisions, learnings, and observations"`
	Types []string `json:"types,omitempty" jsonschema:"restrict to memory types (decisions, learnings, observations)"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results. Defaults to 10."`
}

type memoryResultOutput struct {
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	Type      string  `json:"type"`
	Date      string  `json:"date,omitempty"`
	Relevance string  `json:"relevance"`
	Score     float64 `json:"score"`
}

type searchMemoryOutput struct {
	Results []memoryResultOutput `json:"results"`
	Total   int                  `json:"total"`
}

type assembleBriefingInput struct {
	Task       string   `json:"task" jsonschema:"required,the task to brief for"`
	Primitives []string `json:"primitives,omitempty" jsonschema:"subset of Problem, User, Solution, Market, Risk. Defaults to all five."`
	Skill      string   `json:"skill,omitempty" jsonschema:"name of the skill the briefing supports"`
}

type assembleBriefingOutput struct {
	Task       string `json:"task"`
	Confidence string `json:"confidence"`
	Markdown   string `json:"markdown"`
	Entities   int    `json:"entities"`
	Gaps       int    `json:"gaps"`
}

type getTimelineInput struct {
	Query string `json:"query" jsonschema:"required,topic to extract a timeline for"`
	From  string `json:"from,omitempty" jsonschema:"inclusive ISO start date (YYYY-MM-DD)"`
	To    string `json:"to,omitempty" jsonschema:"inclusive ISO end date (YYYY-MM-DD)"`
}

type timelineItemOutput struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	Source string `json:"source"`
	Title  string `json:"title"`
}

type getTimelineOutput struct {
	Items     []timelineItemOutput `json:"items"`
	Themes    []string             `json:"themes,omitempty"`
	DateStart string               `json:"date_start,omitempty"`
	DateEnd   string               `json:"date_end,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "resolve_entity",
		Description: "Resolve a fuzzy reference (name, email, slug, or title fragment) to workspace entities: people, meetings, or projects.",
	}, s.handleResolveEntity)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_context",
		Description: "Assemble a relevance-ranked context bundle for a task, organized by the five product primitives, with coverage gaps.",
	}, s.handleGetContext)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "search_memory",
		Description: "Search past decisions, learnings, and observations recorded in workspace memory.",
	}, s.handleSearchMemory)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "assemble_briefing",
		Description: "Build a full task briefing: context bundle, relevant memory, resolved entities, and their relationships, rendered as markdown.",
	}, s.handleAssembleBriefing)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_timeline",
		Description: "Extract the dated history of a topic from memory entries and meeting notes, newest first, with recurring themes.",
	}, s.handleGetTimeline)
}

// --- Tool handlers ---

func (s *Server) handleResolveEntity(_ context.Context, _ *gomcp.CallToolRequest, input resolveEntityInput) (*gomcp.CallToolResult, resolveEntityOutput, error) {
	if input.Reference == "" {
		return errorResult("reference is required"), resolveEntityOutput{}, nil
	}

	entityType := models.EntityAny
	if input.Type != "" {
		entityType = models.EntityType(input.Type)
		switch entityType {
		case models.EntityPerson, models.EntityMeeting, models.EntityProject, models.EntityAny:
		default:
			return errorResult(fmt.Sprintf("invalid type %q: must be one of person, meeting, project, any", input.Type)), resolveEntityOutput{}, nil
		}
	}

	matches, err := s.resolver.ResolveAll(input.Reference, entityType, input.Limit)
	if err != nil {
		return errorResult(fmt.Sprintf("resolving %s: %s", input.Reference, err)), resolveEntityOutput{}, nil
	}

	out := resolveEntityOutput{
		Matches: make([]entityOutput, len(matches)),
		Count:   len(matches),
	}
	for i, m := range matches {
		out.Matches[i] = entityOutput{
			Type:  string(m.Type),
			Path:  m.Path,
			Name:  m.Name,
			Slug:  m.Slug,
			Score: m.Score,
			Meta:  m.Metadata,
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetContext(ctx context.Context, _ *gomcp.CallToolRequest, input getContextInput) (*gomcp.CallToolResult, getContextOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), getContextOutput{}, nil
	}

	bundle, err := s.assembler.Assemble(ctx, input.Query, core.AssembleOptions{
		Primitives: toPrimitives(input.Primitives),
		MaxFiles:   input.MaxFiles,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("assembling context for %q: %s", input.Query, err)), getContextOutput{}, nil
	}

	out := getContextOutput{
		Query:           bundle.Query,
		Confidence:      string(bundle.Confidence),
		TemporalSignals: bundle.TemporalSignals,
	}
	for _, f := range bundle.Files {
		out.Files = append(out.Files, contextFileOutput{
			RelativePath:   f.RelativePath,
			Primitive:      string(f.Primitive),
			Category:       string(f.Category),
			Summary:        f.Summary,
			RelevanceScore: f.RelevanceScore,
		})
	}
	for _, g := range bundle.Gaps {
		out.Gaps = append(out.Gaps, contextGapOutput{
			Primitive:   string(g.Primitive),
			Description: g.Description,
			Suggestion:  g.Suggestion,
		})
	}
	return nil, out, nil
}

func (s *Server) handleSearchMemory(_ context.Context, _ *gomcp.CallToolRequest, input searchMemoryInput) (*gomcp.CallToolResult, searchMemoryOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), searchMemoryOutput{}, nil
	}

	var types []models.MemoryItemType
	for _, t := range input.Types {
		types = append(types, models.MemoryItemType(t))
	}

	result, err := s.memory.Search(input.Query, core.MemorySearchOptions{Types: types, Limit: input.Limit})
	if err != nil {
		return errorResult(fmt.Sprintf("searching memory for %q: %s", input.Query, err)), searchMemoryOutput{}, nil
	}

	out := searchMemoryOutput{Total: result.Total}
	for _, r := range result.Results {
		out.Results = append(out.Results, memoryResultOutput{
			Content:   r.Content,
			Source:    r.Source,
			Type:      string(r.Type),
			Date:      r.Date,
			Relevance: r.Relevance,
			Score:     r.Score,
		})
	}
	return nil, out, nil
}

func (s *Server) handleAssembleBriefing(ctx context.Context, _ *gomcp.CallToolRequest, input assembleBriefingInput) (*gomcp.CallToolResult, assembleBriefingOutput, error) {
	if input.Task == "" {
		return errorResult("task is required"), assembleBriefingOutput{}, nil
	}

	briefing, err := s.synthesizer.AssembleBriefing(ctx, input.Task, core.BriefingOptions{
		Primitives: toPrimitives(input.Primitives),
		Skill:      input.Skill,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("assembling briefing for %q: %s", input.Task, err)), assembleBriefingOutput{}, nil
	}

	out := assembleBriefingOutput{
		Task:       briefing.Task,
		Confidence: string(briefing.Confidence),
		Markdown:   briefing.Markdown,
		Entities:   len(briefing.Entities),
		Gaps:       len(briefing.Context.Gaps),
	}
	return nil, out, nil
}

func (s *Server) handleGetTimeline(_ context.Context, _ *gomcp.CallToolRequest, input getTimelineInput) (*gomcp.CallToolResult, getTimelineOutput, error) {
	if input.Query == "" {
		return errorResult("query is required"), getTimelineOutput{}, nil
	}

	var dateRange *models.DateRange
	if input.From != "" || input.To != "" {
		if input.From != "" {
			if _, err := time.Parse("2006-01-02", input.From); err != nil {
				return errorResult(fmt.Sprintf("invalid from date %q: use YYYY-MM-DD", input.From)), getTimelineOutput{}, nil
			}
		}
		if input.To != "" {
			if _, err := time.Parse("2006-01-02", input.To); err != nil {
				return errorResult(fmt.Sprintf("invalid to date %q: use YYYY-MM-DD", input.To)), getTimelineOutput{}, nil
			}
		}
		dateRange = &models.DateRange{Start: input.From, End: input.To}
	}

	tl, err := s.timeline.GetTimeline(input.Query, dateRange)
	if err != nil {
		return errorResult(fmt.Sprintf("extracting timeline for %q: %s", input.Query, err)), getTimelineOutput{}, nil
	}

	out := getTimelineOutput{
		Themes:    tl.Themes,
		DateStart: tl.DateRange.Start,
		DateEnd:   tl.DateRange.End,
	}
	for _, item := range tl.Items {
		out.Items = append(out.Items, timelineItemOutput{
			Type:   string(item.Type),
			Date:   item.Date,
			Source: item.Source,
			Title:  item.Title,
		})
	}
	return nil, out, nil
}

// --- Helpers ---

func toPrimitives(names []string) []models.Primitive {
	var primitives []models.Primitive
	for _, n := range names {
		primitives = append(primitives, models.Primitive(n))
	}
	return primitives
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
