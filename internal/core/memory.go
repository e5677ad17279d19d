package core

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/arete-cli/arete/internal/search"
	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// Title hits outweigh body hits, and entries from the last month get a
// small boost so fresh decisions surface first among equals.
const (
	titleMatchWeight   = 2.0
	bodyMatchWeight    = 1.0
	recencyBoost       = 1.0
	recencyWindowDays  = 30
	defaultMemoryLimit = 10
)

// sectionHeading matches any third-level heading; the date prefix is
// optional ("### 2026-01-15: Title" or "### Title").
var sectionHeading = regexp.MustCompile(`(?m)^###\s+(?:(\d{4}-\d{2}-\d{2}):\s*)?(.+)$`)

// MemorySearchOptions filter and bound a memory search.
type MemorySearchOptions struct {
	Types []models.MemoryItemType
	Limit int
}

// MemorySearcher retrieves decisions, learnings, and observations.
type MemorySearcher interface {
	Search(query string, opts MemorySearchOptions) (*models.MemorySearchResult, error)
}

type memorySearcher struct {
	store storage.WorkspaceStore
	now   func() time.Time
}

// NewMemorySearcher builds a MemorySearcher over the document store.
func NewMemorySearcher(store storage.WorkspaceStore) MemorySearcher {
	return &memorySearcher{store: store, now: time.Now}
}

func (m *memorySearcher) Search(query string, opts MemorySearchOptions) (*models.MemorySearchResult, error) {
	out := &models.MemorySearchResult{Query: query}
	tokens := search.TokenizeQuery(query)
	if len(tokens) == 0 {
		return out, nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultMemoryLimit
	}

	wantType := map[models.MemoryItemType]bool{}
	for _, t := range opts.Types {
		wantType[t] = true
	}

	docs, err := m.store.List(models.CategoryMemory)
	if err != nil {
		return out, nil
	}

	var results []models.MemoryResult
	for _, doc := range docs {
		itemType := memoryTypeForFile(doc.RelativePath)
		if len(wantType) > 0 && !wantType[itemType] {
			continue
		}
		for _, sec := range splitSections(doc.Body) {
			score, relevance := m.scoreSection(sec, tokens)
			if score == 0 {
				continue
			}
			results = append(results, models.MemoryResult{
				Content:   sec.Text,
				Source:    doc.RelativePath,
				Type:      itemType,
				Date:      sec.Date,
				Relevance: relevance,
				Score:     score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	out.Total = len(results)
	if len(results) > limit {
		results = results[:limit]
	}
	out.Results = results
	return out, nil
}

type section struct {
	Date  string
	Title string
	Text  string
}

// splitSections carves a memory file into "### " entries. The section
// text includes the heading title so callers can render it directly.
func splitSections(body string) []section {
	locs := sectionHeading.FindAllStringSubmatchIndex(body, -1)
	var sections []section
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sec := section{
			Title: strings.TrimSpace(body[loc[4]:loc[5]]),
			Text:  strings.TrimSpace(body[loc[0]:end]),
		}
		if loc[2] >= 0 {
			sec.Date = body[loc[2]:loc[3]]
		}
		sections = append(sections, sec)
	}
	return sections
}

func (m *memorySearcher) scoreSection(sec section, tokens []string) (float64, string) {
	titleLower := strings.ToLower(sec.Title)
	bodyLower := strings.ToLower(sec.Text)

	var titleHits, bodyHits []string
	for _, t := range tokens {
		switch {
		case strings.Contains(titleLower, t):
			titleHits = append(titleHits, t)
		case strings.Contains(bodyLower, t):
			bodyHits = append(bodyHits, t)
		}
	}
	if len(titleHits)+len(bodyHits) == 0 {
		return 0, ""
	}

	score := titleMatchWeight*float64(len(titleHits)) + bodyMatchWeight*float64(len(bodyHits))
	if sec.Date != "" {
		if d, err := time.Parse("2006-01-02", sec.Date); err == nil {
			if m.now().Sub(d) <= recencyWindowDays*24*time.Hour {
				score += recencyBoost
			}
		}
	}

	var relevance string
	if len(titleHits) > 0 {
		relevance = "Title matches: " + strings.Join(titleHits, ", ")
	} else {
		relevance = "Body matches: " + strings.Join(bodyHits, ", ")
	}
	return score, relevance
}

func memoryTypeForFile(relPath string) models.MemoryItemType {
	switch fileStem(relPath) {
	case "decisions":
		return models.MemoryDecisions
	case "learnings":
		return models.MemoryLearnings
	default:
		return models.MemoryObservations
	}
}
