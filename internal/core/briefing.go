package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arete-cli/arete/pkg/models"
)

// entityRefLimit caps how many candidates each extracted reference keeps.
const entityRefLimit = 3

// refSkipWords are capitalized words that start sentences or appear in
// task phrasing without naming an entity.
var refSkipWords = map[string]bool{
	"i": true, "the": true, "a": true, "an": true, "prd": true,
	"create": true, "prep": true, "prepare": true, "draft": true,
	"write": true, "review": true, "plan": true, "update": true,
	"meeting": true, "with": true, "for": true, "about": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// BriefingOptions tune a single briefing call.
type BriefingOptions struct {
	Primitives []models.Primitive
	Skill      string
}

// Synthesizer assembles task briefings from context, memory, entities,
// and relationships.
type Synthesizer interface {
	AssembleBriefing(ctx context.Context, task string, opts BriefingOptions) (*models.Briefing, error)
}

type synthesizer struct {
	assembler Assembler
	memory    MemorySearcher
	resolver  Resolver
	mentions  MentionExtractor
	now       func() time.Time
}

// NewSynthesizer wires the engine components into a briefing pipeline.
func NewSynthesizer(assembler Assembler, memory MemorySearcher, resolver Resolver, mentions MentionExtractor) Synthesizer {
	return &synthesizer{
		assembler: assembler,
		memory:    memory,
		resolver:  resolver,
		mentions:  mentions,
		now:       time.Now,
	}
}

func (s *synthesizer) AssembleBriefing(ctx context.Context, task string, opts BriefingOptions) (*models.Briefing, error) {
	bundle, err := s.assembler.Assemble(ctx, task, AssembleOptions{Primitives: opts.Primitives})
	if err != nil {
		return nil, fmt.Errorf("assembling context for briefing: %w", err)
	}

	briefing := &models.Briefing{
		Task:        task,
		Skill:       opts.Skill,
		Context:     bundle,
		Confidence:  bundle.Confidence,
		AssembledAt: s.now(),
	}

	if s.memory != nil {
		if mem, err := s.memory.Search(task, MemorySearchOptions{}); err == nil && mem != nil {
			briefing.Memory = *mem
		}
	}

	briefing.Entities = s.resolveTaskEntities(task)

	seenRel := map[string]bool{}
	for _, entity := range briefing.Entities {
		rels, err := s.mentions.GetRelationships(entity)
		if err != nil {
			continue
		}
		for _, rel := range rels {
			key := string(rel.Type) + "|" + rel.From + "|" + rel.To
			if seenRel[key] {
				continue
			}
			seenRel[key] = true
			briefing.Relationships = append(briefing.Relationships, rel)
		}
	}

	briefing.Markdown = renderBriefing(briefing)
	return briefing, nil
}

// resolveTaskEntities extracts capitalized word runs from the task and
// resolves each against the whole workspace, deduplicating by path.
func (s *synthesizer) resolveTaskEntities(task string) []models.ResolvedEntity {
	var entities []models.ResolvedEntity
	seen := map[string]bool{}
	for _, ref := range ExtractEntityReferences(task) {
		matches, err := s.resolver.ResolveAll(ref, models.EntityAny, entityRefLimit)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if seen[m.Path] {
				continue
			}
			seen[m.Path] = true
			entities = append(entities, m)
		}
	}
	return entities
}

// ExtractEntityReferences pulls candidate entity names out of free text:
// quoted strings and runs of capitalized words.
func ExtractEntityReferences(text string) []string {
	var refs []string
	seen := map[string]bool{}
	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || refSkipWords[strings.ToLower(ref)] || seen[strings.ToLower(ref)] {
			return
		}
		seen[strings.ToLower(ref)] = true
		refs = append(refs, ref)
	}

	for {
		start := strings.IndexByte(text, '"')
		if start < 0 {
			break
		}
		end := strings.IndexByte(text[start+1:], '"')
		if end < 0 {
			break
		}
		add(text[start+1 : start+1+end])
		text = text[:start] + " " + text[start+2+end:]
	}

	var run []string
	flush := func() {
		for len(run) > 0 && refSkipWords[strings.ToLower(run[0])] {
			run = run[1:]
		}
		for len(run) > 0 && refSkipWords[strings.ToLower(run[len(run)-1])] {
			run = run[:len(run)-1]
		}
		if len(run) > 0 {
			add(strings.Join(run, " "))
		}
		run = nil
	}
	for _, word := range strings.Fields(text) {
		trimmed := strings.Trim(word, ".,!?:;()[]")
		if trimmed != "" && isCapitalized(trimmed) {
			run = append(run, trimmed)
			continue
		}
		flush()
	}
	flush()
	return refs
}

func isCapitalized(word string) bool {
	c := word[0]
	return c >= 'A' && c <= 'Z'
}

// renderBriefing produces the markdown form of a briefing.
func renderBriefing(b *models.Briefing) string {
	var md strings.Builder
	fmt.Fprintf(&md, "## Primitive Briefing: %s\n\n", b.Task)
	fmt.Fprintf(&md, "**Assembled**: %s\n", b.AssembledAt.Format(time.RFC3339))
	if b.Skill != "" {
		fmt.Fprintf(&md, "**Skill**: %s\n", b.Skill)
	}
	fmt.Fprintf(&md, "**Confidence**: %s\n\n", b.Context.Confidence)

	byPrimitive := map[models.Primitive][]models.ContextFile{}
	var anchors []models.ContextFile
	for _, f := range b.Context.Files {
		if f.Primitive != "" {
			byPrimitive[f.Primitive] = append(byPrimitive[f.Primitive], f)
		} else {
			anchors = append(anchors, f)
		}
	}
	gapFor := map[models.Primitive]models.ContextGap{}
	for _, g := range b.Context.Gaps {
		gapFor[g.Primitive] = g
	}

	for _, p := range b.Context.Primitives {
		fmt.Fprintf(&md, "### %s\n\n", p)
		files := byPrimitive[p]
		if gap, gapped := gapFor[p]; len(files) == 0 && gapped {
			fmt.Fprintf(&md, "_Gap: %s_ %s\n\n", gap.Description, gap.Suggestion)
			continue
		}
		for _, f := range files {
			fmt.Fprintf(&md, "- **%s** (`%s`)\n", f.Summary, f.RelativePath)
		}
		md.WriteString("\n")
	}

	if len(anchors) > 0 {
		md.WriteString("### Strategic Context\n\n")
		for _, f := range anchors {
			fmt.Fprintf(&md, "- **%s** (`%s`, relevance %.2f)\n", f.Summary, f.RelativePath, f.RelevanceScore)
		}
		md.WriteString("\n")
	}

	if len(b.Memory.Results) > 0 {
		md.WriteString("### Relevant Memory\n\n")
		for i, r := range b.Memory.Results {
			if i >= 5 {
				break
			}
			line := firstLine(r.Content)
			if r.Date != "" {
				fmt.Fprintf(&md, "- [%s] %s (%s)\n", r.Type, line, r.Date)
			} else {
				fmt.Fprintf(&md, "- [%s] %s\n", r.Type, line)
			}
		}
		md.WriteString("\n")
	}

	if len(b.Entities) > 0 {
		md.WriteString("### Resolved Entities\n\n")
		for _, e := range b.Entities {
			fmt.Fprintf(&md, "- %s (%s): `%s`\n", e.Name, e.Type, e.Path)
		}
		md.WriteString("\n")
	}

	if len(b.Relationships) > 0 {
		md.WriteString("### Entity Relationships\n\n")
		for _, rel := range b.Relationships {
			fmt.Fprintf(&md, "- %s %s %s\n", rel.From, relationshipVerb(rel.Type), rel.To)
		}
		md.WriteString("\n")
	}

	if len(b.Context.Gaps) > 0 {
		md.WriteString("### Gaps\n\n")
		for _, g := range b.Context.Gaps {
			fmt.Fprintf(&md, "- **%s**: %s. %s\n", g.Primitive, g.Description, g.Suggestion)
		}
		if b.Confidence == models.ConfidenceLow {
			md.WriteString("\nConfidence is Low; fill the gaps above before relying on this briefing.\n")
		}
	}

	return md.String()
}

func relationshipVerb(t models.RelationshipType) string {
	switch t {
	case models.RelWorksOn:
		return "works on"
	case models.RelAttended:
		return "attended"
	default:
		return "mentioned in"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(strings.TrimSpace(s), "### ")
}
