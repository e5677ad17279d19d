package core

import (
	"strings"
	"testing"
	"time"

	"github.com/arete-cli/arete/pkg/models"
)

func TestMemorySearch_TitleMatch(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMemorySearcher(store)

	got, err := m.Search("pricing", MemorySearchOptions{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) == 0 {
		t.Fatal("expected at least one pricing result")
	}
	top := got.Results[0]
	if top.Type != models.MemoryDecisions {
		t.Errorf("expected decisions type, got %s", top.Type)
	}
	if top.Date != "2026-01-10" {
		t.Errorf("expected date 2026-01-10, got %s", top.Date)
	}
	if !strings.HasPrefix(top.Content, "### 2026-01-10: Adopted usage-based pricing") {
		t.Errorf("expected content to start with its heading, got %q", top.Content)
	}
	if top.Relevance != "Title matches: pricing" {
		t.Errorf("unexpected relevance: %q", top.Relevance)
	}
}

func TestMemorySearch_UndatedSection(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMemorySearcher(store)

	got, err := m.Search("importer", MemorySearchOptions{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) == 0 {
		t.Fatal("expected a match in the undated section")
	}
	if got.Results[0].Date != "" {
		t.Errorf("expected no date on undated section, got %q", got.Results[0].Date)
	}
}

func TestMemorySearch_TitleOutranksBody(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, ".arete/memory/items/decisions.md", `# Decisions

### Body only
The word churn appears down here in the body.

### Churn policy in the title
Something unrelated below.
`)
	m := NewMemorySearcher(newTestStore(t, root))

	got, err := m.Search("churn", MemorySearchOptions{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got.Results))
	}
	if !strings.Contains(got.Results[0].Content, "Churn policy in the title") {
		t.Errorf("expected title hit ranked first, got %q", got.Results[0].Content)
	}
	if !strings.HasPrefix(got.Results[1].Relevance, "Body matches:") {
		t.Errorf("expected body-match relevance second, got %q", got.Results[1].Relevance)
	}
}

func TestMemorySearch_RecencyBoost(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, ".arete/memory/items/learnings.md", `# Learnings

### 2025-06-01: Old retention insight
Stale entry.

### 2026-01-18: New retention insight
Fresh entry.
`)
	m := NewMemorySearcher(newTestStore(t, root)).(*memorySearcher)
	m.now = func() time.Time { return time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC) }

	got, err := m.Search("retention", MemorySearchOptions{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got.Results))
	}
	if got.Results[0].Date != "2026-01-18" {
		t.Errorf("expected the recent entry first, got %s", got.Results[0].Date)
	}
	if got.Results[0].Score <= got.Results[1].Score {
		t.Errorf("expected recency boost to raise the score: %v vs %v",
			got.Results[0].Score, got.Results[1].Score)
	}
}

func TestMemorySearch_TypeFilter(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMemorySearcher(store)

	got, err := m.Search("onboarding", MemorySearchOptions{Types: []models.MemoryItemType{models.MemoryLearnings}})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) == 0 {
		t.Fatal("expected learnings results")
	}
	for _, r := range got.Results {
		if r.Type != models.MemoryLearnings {
			t.Errorf("expected only learnings, got %s from %s", r.Type, r.Source)
		}
	}
}

func TestMemorySearch_LimitAndTotal(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMemorySearcher(store)

	got, err := m.Search("onboarding", MemorySearchOptions{Limit: 1})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) != 1 {
		t.Errorf("expected 1 result after limiting, got %d", len(got.Results))
	}
	if got.Total < 2 {
		t.Errorf("expected total to count all matches before limiting, got %d", got.Total)
	}
}

func TestMemorySearch_EmptyQuery(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMemorySearcher(store)

	got, err := m.Search("", MemorySearchOptions{})
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(got.Results) != 0 || got.Total != 0 {
		t.Errorf("expected empty result for empty query, got %d/%d", len(got.Results), got.Total)
	}
}
