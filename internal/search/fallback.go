package search

import (
	"context"
	"sort"

	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// fallbackProvider scores documents by query-token overlap. It reads the
// workspace on every call, so it is always consistent with disk and needs
// no index maintenance.
type fallbackProvider struct {
	store storage.WorkspaceStore
}

// NewFallbackProvider returns the zero-state token-overlap provider.
func NewFallbackProvider(store storage.WorkspaceStore) Provider {
	return &fallbackProvider{store: store}
}

func (p *fallbackProvider) Name() string { return "fallback" }

func (p *fallbackProvider) Close() error { return nil }

func (p *fallbackProvider) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	tokens := TokenizeQuery(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var results []Result
	for _, category := range searchCategories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs, err := p.store.List(category)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			score, preview := scoreDocument(doc, tokens)
			if score < opts.MinScore || score == 0 {
				continue
			}
			results = append(results, Result{Path: doc.RelativePath, Preview: preview, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

var searchCategories = []models.DocumentCategory{
	models.CategoryContext,
	models.CategoryGoals,
	models.CategoryProjects,
	models.CategoryPeople,
	models.CategoryResources,
	models.CategoryMemory,
}

// scoreDocument returns the fraction of query tokens present in the
// document. Title hits count the same as body hits; the preview is the
// first line containing a match.
func scoreDocument(doc models.Document, tokens []string) (float64, string) {
	haystack := map[string]bool{}
	for _, t := range Tokenize(doc.Frontmatter.Title + " " + doc.Frontmatter.Name + " " + doc.Body) {
		haystack[t] = true
	}
	matched := 0
	for _, t := range tokens {
		if haystack[t] {
			matched++
		}
	}
	if matched == 0 {
		return 0, ""
	}
	return float64(matched) / float64(len(tokens)), previewLine(doc.Body, tokens)
}

func previewLine(body string, tokens []string) string {
	for _, line := range splitLines(body) {
		lower := map[string]bool{}
		for _, t := range Tokenize(line) {
			lower[t] = true
		}
		for _, t := range tokens {
			if lower[t] {
				if len(line) > 120 {
					return line[:120]
				}
				return line
			}
		}
	}
	return ""
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
