package core

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// excerptRadius bounds the text captured around a mention.
const excerptRadius = 80

// MentionExtractor finds where an entity appears across the workspace and
// derives relationships from project teams, meeting attendance, and
// plain mentions.
type MentionExtractor interface {
	FindMentions(entity models.ResolvedEntity) ([]models.EntityMention, error)
	GetRelationships(entity models.ResolvedEntity) ([]models.EntityRelationship, error)
}

type mentionExtractor struct {
	store storage.WorkspaceStore
}

// NewMentionExtractor builds a MentionExtractor over the document store.
func NewMentionExtractor(store storage.WorkspaceStore) MentionExtractor {
	return &mentionExtractor{store: store}
}

// mentionSources lists the scanned categories with the source type each
// one reports.
var mentionSources = []struct {
	category models.DocumentCategory
	source   models.MentionSourceType
}{
	{models.CategoryContext, models.MentionSourceContext},
	{models.CategoryResources, models.MentionSourceMeeting},
	{models.CategoryMemory, models.MentionSourceMemory},
	{models.CategoryProjects, models.MentionSourceProject},
}

// FindMentions reports the first occurrence of the entity's name in each
// document, newest first; undated mentions sort last in scan order.
func (m *mentionExtractor) FindMentions(entity models.ResolvedEntity) ([]models.EntityMention, error) {
	name := strings.TrimSpace(entity.Name)
	if name == "" {
		return nil, nil
	}
	needle := strings.ToLower(name)

	var mentions []models.EntityMention
	for _, src := range mentionSources {
		docs, err := m.store.List(src.category)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			idx := strings.Index(strings.ToLower(doc.Body), needle)
			if idx < 0 {
				continue
			}
			mention := models.EntityMention{
				Entity:     entity.Name,
				EntityType: entity.Type,
				SourcePath: doc.RelativePath,
				SourceType: src.source,
				Excerpt:    excerpt(doc.Body, idx, len(name)),
			}
			if src.source == models.MentionSourceMeeting || src.source == models.MentionSourceMemory {
				mention.Date = doc.Frontmatter.Date
			}
			mentions = append(mentions, mention)
		}
	}

	sort.SliceStable(mentions, func(i, j int) bool {
		if mentions[i].Date == "" || mentions[j].Date == "" {
			return mentions[j].Date == "" && mentions[i].Date != ""
		}
		return mentions[i].Date > mentions[j].Date
	})
	return mentions, nil
}

// GetRelationships derives works_on, attended, and mentioned_in edges for
// the entity. No other relationship kinds exist.
func (m *mentionExtractor) GetRelationships(entity models.ResolvedEntity) ([]models.EntityRelationship, error) {
	var rels []models.EntityRelationship
	rels = append(rels, m.worksOn(entity)...)
	rels = append(rels, m.attended(entity)...)

	mentions, err := m.FindMentions(entity)
	if err == nil {
		for _, mn := range mentions {
			rels = append(rels, models.EntityRelationship{
				Type:     models.RelMentionedIn,
				From:     entity.Name,
				FromType: entity.Type,
				To:       mn.SourcePath,
				ToType:   string(mn.SourceType),
				Evidence: mn.SourcePath,
			})
		}
	}
	return rels, nil
}

func (m *mentionExtractor) worksOn(entity models.ResolvedEntity) []models.EntityRelationship {
	docs, err := m.store.List(models.CategoryProjects)
	if err != nil {
		return nil
	}
	var rels []models.EntityRelationship
	for _, doc := range docs {
		if !onTeam(doc, entity.Name) {
			continue
		}
		title := doc.Frontmatter.Title
		if title == "" {
			title = firstHeading(doc.Body)
		}
		if title == "" {
			title = projectDirName(doc.RelativePath)
		}
		rels = append(rels, models.EntityRelationship{
			Type:     models.RelWorksOn,
			From:     entity.Name,
			FromType: entity.Type,
			To:       title,
			ToType:   string(models.EntityProject),
			Evidence: doc.RelativePath,
		})
	}
	return rels
}

func (m *mentionExtractor) attended(entity models.ResolvedEntity) []models.EntityRelationship {
	docs, err := m.store.List(models.CategoryResources)
	if err != nil {
		return nil
	}
	needle := strings.ToLower(entity.Name)
	var rels []models.EntityRelationship
	for _, doc := range docs {
		matched := needle != "" && strings.Contains(strings.ToLower(doc.Frontmatter.Attendees), needle)
		if !matched && entity.Slug != "" {
			for _, id := range doc.Frontmatter.AttendeeIDs {
				if Slugify(id) == entity.Slug {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		title := doc.Frontmatter.Title
		if title == "" {
			title = fileStem(doc.RelativePath)
		}
		rels = append(rels, models.EntityRelationship{
			Type:     models.RelAttended,
			From:     entity.Name,
			FromType: entity.Type,
			To:       title,
			ToType:   string(models.EntityMeeting),
			Evidence: doc.RelativePath,
		})
	}
	return rels
}

// onTeam checks the README's "## Team" bullet list and the owner/team
// frontmatter fields for the entity's name.
func onTeam(doc models.Document, name string) bool {
	if name == "" {
		return false
	}
	needle := strings.ToLower(name)
	if strings.Contains(strings.ToLower(doc.Frontmatter.Owner), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Frontmatter.Team), needle) {
		return true
	}
	inTeam := false
	for _, line := range strings.Split(doc.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "## ") {
			inTeam = strings.EqualFold(strings.TrimSpace(trimmed[3:]), "team")
			continue
		}
		if !inTeam {
			continue
		}
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			if strings.Contains(strings.ToLower(trimmed), needle) {
				return true
			}
		}
	}
	return false
}

func excerpt(body string, idx, nameLen int) string {
	start := idx - excerptRadius
	if start < 0 {
		start = 0
	}
	end := idx + nameLen + excerptRadius
	if end > len(body) {
		end = len(body)
	}
	// Byte offsets can land mid-rune; back off to rune boundaries.
	for start > 0 && !utf8.RuneStart(body[start]) {
		start--
	}
	for end < len(body) && !utf8.RuneStart(body[end]) {
		end++
	}
	text := strings.TrimSpace(strings.ReplaceAll(body[start:end], "\n", " "))
	if start > 0 {
		text = "..." + text
	}
	if end < len(body) {
		text += "..."
	}
	return text
}
