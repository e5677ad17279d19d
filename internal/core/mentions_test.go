package core

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/arete-cli/arete/pkg/models"
)

func janeEntity() models.ResolvedEntity {
	return models.ResolvedEntity{
		Type: models.EntityPerson,
		Name: "Jane Smith",
		Slug: "jane-smith",
	}
}

func TestFindMentions(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMentionExtractor(store)

	mentions, err := m.FindMentions(janeEntity())
	if err != nil {
		t.Fatalf("finding mentions: %v", err)
	}
	if len(mentions) == 0 {
		t.Fatal("expected mentions of Jane Smith")
	}

	bySource := map[models.MentionSourceType]bool{}
	for _, mn := range mentions {
		bySource[mn.SourceType] = true
		if !strings.Contains(strings.ToLower(mn.Excerpt), "jane smith") {
			t.Errorf("excerpt from %s does not contain the name: %q", mn.SourcePath, mn.Excerpt)
		}
	}
	if !bySource[models.MentionSourceMeeting] {
		t.Error("expected a meeting mention")
	}
	if !bySource[models.MentionSourceProject] {
		t.Error("expected a project mention")
	}

	// Dated mentions come first, newest first; undated trail behind.
	seenUndated := false
	prev := ""
	for _, mn := range mentions {
		if mn.Date == "" {
			seenUndated = true
			continue
		}
		if seenUndated {
			t.Fatal("dated mention after an undated one")
		}
		if prev != "" && mn.Date > prev {
			t.Fatalf("mentions not sorted newest first: %s after %s", mn.Date, prev)
		}
		prev = mn.Date
	}
}

func TestFindMentions_BlankName(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMentionExtractor(store)

	mentions, err := m.FindMentions(models.ResolvedEntity{Name: "  "})
	if err != nil {
		t.Fatalf("finding mentions: %v", err)
	}
	if len(mentions) != 0 {
		t.Errorf("expected no mentions for blank name, got %d", len(mentions))
	}
}

func TestGetRelationships(t *testing.T) {
	_, store := fullWorkspace(t)
	m := NewMentionExtractor(store)

	rels, err := m.GetRelationships(janeEntity())
	if err != nil {
		t.Fatalf("getting relationships: %v", err)
	}

	var worksOn, attended, mentioned []models.EntityRelationship
	for _, rel := range rels {
		switch rel.Type {
		case models.RelWorksOn:
			worksOn = append(worksOn, rel)
		case models.RelAttended:
			attended = append(attended, rel)
		case models.RelMentionedIn:
			mentioned = append(mentioned, rel)
		default:
			t.Errorf("unexpected relationship type %s", rel.Type)
		}
	}

	if len(worksOn) != 2 {
		t.Errorf("expected works_on edges for both active projects, got %d", len(worksOn))
	}
	projects := map[string]bool{}
	for _, rel := range worksOn {
		projects[rel.To] = true
		if rel.ToType != string(models.EntityProject) {
			t.Errorf("works_on target type should be project, got %s", rel.ToType)
		}
	}
	if !projects["Search Discovery"] || !projects["Onboarding Revamp"] {
		t.Errorf("unexpected works_on targets: %v", projects)
	}

	if len(attended) != 1 {
		t.Fatalf("expected one attended edge, got %d", len(attended))
	}
	if attended[0].To != "Roadmap Sync" {
		t.Errorf("expected attended Roadmap Sync, got %s", attended[0].To)
	}
	if attended[0].ToType != string(models.EntityMeeting) {
		t.Errorf("attended target type should be meeting, got %s", attended[0].ToType)
	}

	if len(mentioned) == 0 {
		t.Error("expected mentioned_in edges")
	}
	for _, rel := range mentioned {
		if rel.To != rel.Evidence {
			t.Errorf("mentioned_in target should be the source path, got %s vs %s", rel.To, rel.Evidence)
		}
	}
}

func TestGetRelationships_AttendeeIDOnly(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "resources/meetings/2026-03-01-retro.md", `---
title: Sprint Retro
date: "2026-03-01"
attendee_ids:
  - jane-smith
---
Notes without any names in the attendee list.
`)
	m := NewMentionExtractor(newTestStore(t, root))

	rels, err := m.GetRelationships(janeEntity())
	if err != nil {
		t.Fatalf("getting relationships: %v", err)
	}
	found := false
	for _, rel := range rels {
		if rel.Type == models.RelAttended && rel.To == "Sprint Retro" {
			found = true
		}
	}
	if !found {
		t.Error("expected attendance inferred from attendee_ids")
	}
}

func TestExcerptBounds(t *testing.T) {
	body := strings.Repeat("x", 200) + " Jane Smith " + strings.Repeat("y", 200)
	idx := strings.Index(body, "Jane")
	got := excerpt(body, idx, len("Jane Smith"))
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipses on both truncated ends, got %q", got)
	}
	if !strings.Contains(got, "Jane Smith") {
		t.Errorf("expected the name inside the excerpt, got %q", got)
	}
}

func TestExcerptRuneBoundaries(t *testing.T) {
	// Multi-byte runes on both sides, sized so the radius lands mid-rune.
	body := strings.Repeat("語", 40) + "Jane Smith" + strings.Repeat("語", 40)
	idx := strings.Index(body, "Jane")
	got := excerpt(body, idx, len("Jane Smith"))
	if !utf8.ValidString(got) {
		t.Errorf("excerpt is not valid UTF-8: %q", got)
	}
	if !strings.Contains(got, "Jane Smith") {
		t.Errorf("expected the name inside the excerpt, got %q", got)
	}
}
