package search

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arete-cli/arete/internal/storage"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

func searchFixture(t *testing.T) (string, storage.WorkspaceStore) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "context/business-overview.md", `# Business Overview

Churn is driven by slow onboarding and unclear pricing.
`)
	writeFile(t, root, "goals/strategy.md", `# Strategy

Make onboarding effortless.
`)
	writeFile(t, root, "context/risks.md", `# Risks

Nothing about the query topic here.
`)
	return root, storage.NewWorkspaceStore(storage.NewWorkspacePaths(root))
}

func TestTokenize(t *testing.T) {
	got := Tokenize("I want to prep for the Onboarding-Review meeting!")
	want := []string{"want", "prep", "onboarding", "review", "meeting"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeQuery_DropsIntentWords(t *testing.T) {
	got := TokenizeQuery("I want to create an onboarding plan")
	want := []string{"onboarding", "plan"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("TokenizeQuery = %v, want %v", got, want)
	}
}

func TestFallback_Search(t *testing.T) {
	_, store := searchFixture(t)
	p := NewFallbackProvider(store)
	defer p.Close()

	results, err := p.Search(context.Background(), "onboarding pricing", Options{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matching documents, got %d", len(results))
	}
	if results[0].Path != "context/business-overview.md" {
		t.Errorf("expected the full match first, got %s", results[0].Path)
	}
	if results[0].Score != 1.0 {
		t.Errorf("expected score 1.0 for both tokens matched, got %v", results[0].Score)
	}
	if results[1].Score != 0.5 {
		t.Errorf("expected score 0.5 for one of two tokens, got %v", results[1].Score)
	}
	if !strings.Contains(results[0].Preview, "onboarding") {
		t.Errorf("expected a matching preview line, got %q", results[0].Preview)
	}
}

func TestFallback_MinScoreAndLimit(t *testing.T) {
	_, store := searchFixture(t)
	p := NewFallbackProvider(store)
	defer p.Close()

	results, err := p.Search(context.Background(), "onboarding pricing", Options{MinScore: 0.8})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected the half-match filtered out, got %d results", len(results))
	}

	results, err = p.Search(context.Background(), "onboarding pricing", Options{Limit: 1})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected limit 1 honored, got %d results", len(results))
	}
}

func TestFallback_EmptyQuery(t *testing.T) {
	_, store := searchFixture(t)
	p := NewFallbackProvider(store)
	defer p.Close()

	results, err := p.Search(context.Background(), "to the for", Options{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for a stop-word query, got %d", len(results))
	}
}

func TestNewProvider_Selection(t *testing.T) {
	root, store := searchFixture(t)
	paths := storage.NewWorkspacePaths(root)

	p, err := NewProvider("fallback", store, paths)
	if err != nil {
		t.Fatalf("creating fallback provider: %v", err)
	}
	if p.Name() != "fallback" {
		t.Errorf("expected fallback, got %s", p.Name())
	}
	_ = p.Close()

	p, err = NewProvider("something-unknown", store, paths)
	if err != nil {
		t.Fatalf("creating provider for unknown name: %v", err)
	}
	if p.Name() != "fallback" {
		t.Errorf("expected unknown names to fall back, got %s", p.Name())
	}
	_ = p.Close()
}
