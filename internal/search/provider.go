// Package search ranks workspace documents against free-text queries.
// Two providers exist: a pure token-overlap fallback that needs no state,
// and a SQLite FTS5 index for larger workspaces. Both return scores on a
// 0..1 scale so callers can mix providers without re-normalizing.
package search

import (
	"context"
	"strings"

	"github.com/arete-cli/arete/internal/storage"
)

// Result is a single ranked document hit.
type Result struct {
	Path    string  `json:"path"`
	Preview string  `json:"preview,omitempty"`
	Score   float64 `json:"score"`
}

// Options bound a search invocation.
type Options struct {
	Limit    int
	MinScore float64
}

// Provider searches workspace documents by relevance.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, opts Options) ([]Result, error)
	Close() error
}

// NewProvider selects a provider by name. Unknown names and "fallback"
// both yield the token-overlap provider; "sqlite" builds an FTS5 index
// under the workspace's .arete directory.
func NewProvider(name string, store storage.WorkspaceStore, paths storage.WorkspacePaths) (Provider, error) {
	if name == "sqlite" {
		return NewSQLiteProvider(store, paths)
	}
	return NewFallbackProvider(store), nil
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "for": true, "with": true,
	"my": true, "me": true, "i": true, "to": true, "and": true,
	"or": true, "is": true, "it": true, "in": true, "on": true,
	"at": true, "of": true, "this": true, "that": true, "what": true,
	"how": true, "can": true, "you": true, "please": true,
}

var intentWords = map[string]bool{
	"want": true, "need": true, "create": true, "build": true,
	"start": true, "run": true, "do": true, "help": true,
}

// Tokenize lowercases text, strips punctuation, and drops stop words
// and single-character fragments.
func Tokenize(text string) []string {
	return tokenize(text, false)
}

// TokenizeQuery additionally drops intent verbs ("want", "build", ...)
// that carry no signal when matching documents.
func TokenizeQuery(text string) []string {
	return tokenize(text, true)
}

func tokenize(text string, dropIntent bool) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	var tokens []string
	for _, w := range strings.Fields(b.String()) {
		if len(w) <= 1 || stopWords[w] {
			continue
		}
		if dropIntent && intentWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
