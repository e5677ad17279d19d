package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arete-cli/arete/internal/search"
	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// Assembly defaults. Static hits carry a fixed relevance so discovered
// files can outrank them only when the index is very confident.
const (
	DefaultMaxFiles = 15
	DefaultMinScore = 0.3
	staticScore     = 0.5
)

// anchorFiles are always included when present, regardless of query.
var anchorFiles = []string{"goals/strategy.md", "goals/quarter.md"}

// primitiveSources maps each primitive to its canonical context document.
var primitiveSources = map[models.Primitive]string{
	models.PrimitiveProblem:  "context/business-overview.md",
	models.PrimitiveUser:     "context/users-personas.md",
	models.PrimitiveSolution: "context/products-services.md",
	models.PrimitiveMarket:   "context/competitive-landscape.md",
	models.PrimitiveRisk:     "context/risks.md",
}

var gapSuggestions = map[models.Primitive]string{
	models.PrimitiveProblem:  "Describe the business problem in context/business-overview.md",
	models.PrimitiveUser:     "Add user personas to context/users-personas.md",
	models.PrimitiveSolution: "Document products and services in context/products-services.md",
	models.PrimitiveMarket:   "Map competitors in context/competitive-landscape.md",
	models.PrimitiveRisk:     "Capture known risks in context/risks.md",
}

// AssembleOptions tune a single assembly call. Zero values mean defaults.
type AssembleOptions struct {
	Primitives []models.Primitive
	MaxFiles   int
	MinScore   float64
}

// Assembler builds relevance-ranked context bundles for a query.
type Assembler interface {
	Assemble(ctx context.Context, query string, opts AssembleOptions) (*models.ContextBundle, error)
}

type assembler struct {
	store    storage.WorkspaceStore
	searcher search.Provider
	timeline TimelineEngine
	defaults AssembleOptions
	now      func() time.Time
}

// NewAssembler builds an Assembler. The search provider and timeline
// engine are optional; a nil collaborator degrades that step to nothing.
// defaults supply the workspace manifest settings used when a call's
// options leave them zero.
func NewAssembler(store storage.WorkspaceStore, searcher search.Provider, timeline TimelineEngine, defaults AssembleOptions) Assembler {
	return &assembler{store: store, searcher: searcher, timeline: timeline, defaults: defaults, now: time.Now}
}

func (a *assembler) Assemble(ctx context.Context, query string, opts AssembleOptions) (*models.ContextBundle, error) {
	primitives := opts.Primitives
	if len(primitives) == 0 {
		primitives = models.AllPrimitives
	}
	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = a.defaults.MaxFiles
	}
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = a.defaults.MinScore
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	tokens := search.TokenizeQuery(query)

	bundle := &models.ContextBundle{
		Query:       query,
		Primitives:  primitives,
		AssembledAt: a.now(),
	}
	seen := map[string]bool{}
	add := func(f models.ContextFile) {
		if f.RelativePath == "" || seen[f.RelativePath] {
			return
		}
		seen[f.RelativePath] = true
		bundle.Files = append(bundle.Files, f)
	}

	for _, rel := range anchorFiles {
		if doc := a.readRel(rel); doc != nil {
			add(staticFile(*doc, ""))
		}
	}

	wants := map[models.Primitive]bool{}
	for _, p := range primitives {
		wants[p] = true
	}

	for _, p := range primitives {
		rel, ok := primitiveSources[p]
		if !ok {
			continue
		}
		doc := a.readRel(rel)
		if doc != nil && !isPlaceholder(doc.Body) {
			add(staticFile(*doc, p))
			continue
		}
		bundle.Gaps = append(bundle.Gaps, models.ContextGap{
			Primitive:   p,
			Description: fmt.Sprintf("No substantive %s context found", strings.ToLower(string(p))),
			Suggestion:  gapSuggestions[p],
		})
	}

	if wants[models.PrimitiveUser] {
		a.addMatching(models.CategoryPeople, tokens, models.PrimitiveUser, add)
	}
	a.addActiveProjects(tokens, wants[models.PrimitiveSolution], add)
	if wants[models.PrimitiveRisk] {
		a.addMemoryItems(tokens, add)
	}

	if a.searcher != nil {
		results, err := a.searcher.Search(ctx, query, search.Options{Limit: maxFiles * 2, MinScore: minScore})
		if err == nil {
			for _, res := range results {
				if seen[res.Path] {
					continue
				}
				doc := a.readRel(res.Path)
				if doc == nil {
					continue
				}
				f := staticFile(*doc, "")
				f.RelevanceScore = res.Score
				add(f)
			}
		}
	}

	sort.SliceStable(bundle.Files, func(i, j int) bool {
		return bundle.Files[i].RelevanceScore > bundle.Files[j].RelevanceScore
	})
	if len(bundle.Files) > maxFiles {
		bundle.Files = bundle.Files[:maxFiles]
	}

	bundle.Confidence = scoreConfidence(len(primitives), len(bundle.Gaps), bundle.Files)

	if a.timeline != nil {
		bundle.TemporalSignals = a.temporalSignals(query)
	}
	return bundle, nil
}

func (a *assembler) readRel(rel string) *models.Document {
	doc, err := a.store.Read(filepath.Join(a.rootDir(), filepath.FromSlash(rel)))
	if err != nil {
		return nil
	}
	return doc
}

func (a *assembler) rootDir() string {
	return a.store.Root()
}

// addMatching includes every document in category whose body contains at
// least one query token.
func (a *assembler) addMatching(category models.DocumentCategory, tokens []string, p models.Primitive, add func(models.ContextFile)) {
	docs, err := a.store.List(category)
	if err != nil {
		return
	}
	for _, doc := range docs {
		if containsAnyToken(doc.Body, tokens) {
			add(staticFile(doc, p))
		}
	}
}

// addMemoryItems surfaces decisions and learnings that touch the query.
// Agent observations stay out of risk context.
func (a *assembler) addMemoryItems(tokens []string, add func(models.ContextFile)) {
	docs, err := a.store.List(models.CategoryMemory)
	if err != nil {
		return
	}
	for _, doc := range docs {
		stem := fileStem(doc.RelativePath)
		if stem != "decisions" && stem != "learnings" {
			continue
		}
		if containsAnyToken(doc.Body, tokens) {
			add(staticFile(doc, models.PrimitiveRisk))
		}
	}
}

func (a *assembler) addActiveProjects(tokens []string, tagSolution bool, add func(models.ContextFile)) {
	docs, err := a.store.List(models.CategoryProjects)
	if err != nil {
		return
	}
	for _, doc := range docs {
		if doc.Frontmatter.Status == "archived" {
			continue
		}
		if !containsAnyToken(doc.Body, tokens) {
			continue
		}
		var prim models.Primitive
		if tagSolution {
			prim = models.PrimitiveSolution
		}
		add(staticFile(doc, prim))
	}
}

func (a *assembler) temporalSignals(query string) []string {
	tl, err := a.timeline.GetTimeline(query, nil)
	if err != nil || tl == nil {
		return nil
	}
	var signals []string
	for _, item := range tl.Items {
		if len(signals) >= 5 {
			break
		}
		signals = append(signals, fmt.Sprintf("%s last discussed in %s on %s", item.Title, item.Source, item.Date))
	}
	return signals
}

func staticFile(doc models.Document, p models.Primitive) models.ContextFile {
	return models.ContextFile{
		Path:           doc.Path,
		RelativePath:   doc.RelativePath,
		Primitive:      p,
		Category:       doc.Category,
		Summary:        summarize(doc),
		Content:        doc.Body,
		RelevanceScore: staticScore,
	}
}

func summarize(doc models.Document) string {
	if doc.Frontmatter.Title != "" {
		return doc.Frontmatter.Title
	}
	if h := firstHeading(doc.Body); h != "" {
		return h
	}
	return fileStem(doc.RelativePath)
}

func containsAnyToken(body string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(body)
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// isPlaceholder reports whether a body is scaffold content rather than
// real context: under 20 characters after stripping headings, or carrying
// an explicit fill-me-in marker.
func isPlaceholder(body string) bool {
	if strings.Contains(body, "TODO") || strings.Contains(strings.ToLower(body), "add your") {
		return true
	}
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return len(strings.Join(kept, " ")) < 20
}

func scoreConfidence(totalPrimitives, gapCount int, files []models.ContextFile) models.Confidence {
	covered := totalPrimitives - gapCount
	contextFiles := 0
	for _, f := range files {
		if f.Category == models.CategoryContext {
			contextFiles++
		}
	}
	switch {
	case covered == totalPrimitives && contextFiles >= 2:
		return models.ConfidenceHigh
	case float64(covered) >= 0.5*float64(totalPrimitives) || contextFiles >= 1:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
