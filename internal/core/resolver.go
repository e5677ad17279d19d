package core

import (
	"sort"
	"strings"

	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// DefaultResolveLimit bounds resolveAll when the caller passes no limit.
const DefaultResolveLimit = 5

// Resolver finds workspace entities matching a free-text reference.
type Resolver interface {
	Resolve(reference string, entityType models.EntityType) (*models.ResolvedEntity, error)
	ResolveAll(reference string, entityType models.EntityType, limit int) ([]models.ResolvedEntity, error)
}

type resolver struct {
	store storage.WorkspaceStore
}

// NewResolver builds a Resolver over the given document store.
func NewResolver(store storage.WorkspaceStore) Resolver {
	return &resolver{store: store}
}

// Resolve returns the single best match, or nil when nothing scores
// above zero.
func (r *resolver) Resolve(reference string, entityType models.EntityType) (*models.ResolvedEntity, error) {
	matches, err := r.ResolveAll(reference, entityType, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// ResolveAll returns up to limit matches sorted by descending score.
// A blank reference yields an empty result, not an error.
func (r *resolver) ResolveAll(reference string, entityType models.EntityType, limit int) ([]models.ResolvedEntity, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultResolveLimit
	}

	var candidates []models.ResolvedEntity
	switch entityType {
	case models.EntityPerson:
		candidates = r.scorePeople(reference)
	case models.EntityMeeting:
		candidates = r.scoreMeetings(reference)
	case models.EntityProject:
		candidates = r.scoreProjects(reference)
	case models.EntityAny:
		candidates = append(candidates, r.scorePeople(reference)...)
		candidates = append(candidates, r.scoreMeetings(reference)...)
		candidates = append(candidates, r.scoreProjects(reference)...)
	default:
		return nil, nil
	}

	var matches []models.ResolvedEntity
	for _, c := range candidates {
		if c.Score > 0 {
			matches = append(matches, c)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *resolver) scorePeople(reference string) []models.ResolvedEntity {
	docs, err := r.store.List(models.CategoryPeople)
	if err != nil {
		return nil
	}
	var out []models.ResolvedEntity
	for _, doc := range docs {
		name := doc.Frontmatter.Name
		slug := fileStem(doc.RelativePath)
		score := Score(reference, name)
		if s := Score(Slugify(reference), slug); s > score {
			score = s
		}
		email := strings.ToLower(strings.TrimSpace(doc.Frontmatter.Email))
		ref := strings.ToLower(strings.TrimSpace(reference))
		if email != "" {
			if ref == email && score < 95 {
				score = 95
			} else if strings.HasPrefix(email, ref+"@") && score < 60 {
				score = 60
			}
		}
		if name == "" {
			name = slug
		}
		out = append(out, models.ResolvedEntity{
			Type: models.EntityPerson,
			Path: doc.Path,
			Name: name,
			Slug: slug,
			Metadata: map[string]any{
				"email":    doc.Frontmatter.Email,
				"role":     doc.Frontmatter.Role,
				"company":  doc.Frontmatter.Company,
				"category": doc.Frontmatter.Category,
			},
			Score: score,
		})
	}
	return out
}

func (r *resolver) scoreMeetings(reference string) []models.ResolvedEntity {
	docs, err := r.store.List(models.CategoryResources)
	if err != nil {
		return nil
	}
	refSlug := Slugify(reference)
	var out []models.ResolvedEntity
	for _, doc := range docs {
		stem := fileStem(doc.RelativePath)
		title := doc.Frontmatter.Title
		if title == "" {
			title = stem
		}

		score := Score(reference, stem)
		if s := Score(reference, doc.Frontmatter.Title); s > score {
			score = s
		}
		if doc.Frontmatter.Attendees != "" {
			s := Score(reference, doc.Frontmatter.Attendees)
			if s > 50 {
				s = 50
			}
			if s > score {
				score = s
			}
		}
		for _, id := range doc.Frontmatter.AttendeeIDs {
			if refSlug != "" && Slugify(id) == refSlug {
				score += 40
				break
			}
		}
		if doc.Frontmatter.Date != "" && normalize(reference) != "" &&
			strings.Contains(normalize(doc.Frontmatter.Date), normalize(reference)) && score < 80 {
			score = 80
		}

		out = append(out, models.ResolvedEntity{
			Type: models.EntityMeeting,
			Path: doc.Path,
			Name: title,
			Slug: stem,
			Metadata: map[string]any{
				"date":      doc.Frontmatter.Date,
				"attendees": doc.Frontmatter.Attendees,
			},
			Score: score,
		})
	}
	return out
}

func (r *resolver) scoreProjects(reference string) []models.ResolvedEntity {
	docs, err := r.store.List(models.CategoryProjects)
	if err != nil {
		return nil
	}
	var out []models.ResolvedEntity
	for _, doc := range docs {
		dirName := projectDirName(doc.RelativePath)
		heading := firstHeading(doc.Body)
		name := heading
		if name == "" {
			name = doc.Frontmatter.Title
		}
		if name == "" {
			name = dirName
		}

		score := Score(reference, dirName)
		if s := Score(reference, heading); s > score {
			score = s
		}
		if s := Score(reference, doc.Frontmatter.Title); s > score {
			score = s
		}
		if s := bodyWordScore(reference, doc.Body); s > score {
			score = s
		}

		out = append(out, models.ResolvedEntity{
			Type: models.EntityProject,
			Path: doc.Path,
			Name: name,
			Slug: dirName,
			Metadata: map[string]any{
				"status": doc.Frontmatter.Status,
				"owner":  doc.Frontmatter.Owner,
			},
			Score: score,
		})
	}
	return out
}

// bodyWordScore is the alternate project score: when at least half of the
// reference's words (length >1) appear literally in the body, it is worth
// 10 points per matched word.
func bodyWordScore(reference, body string) float64 {
	lower := strings.ToLower(body)
	var words []string
	for _, w := range strings.Fields(strings.ToLower(reference)) {
		if len(w) > 1 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return 0
	}
	matched := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			matched++
		}
	}
	if float64(matched) < 0.5*float64(len(words)) {
		return 0
	}
	return float64(matched) * 10
}

// fileStem returns the filename without directory or extension.
func fileStem(relPath string) string {
	base := relPath
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// projectDirName extracts the project slug from paths like
// projects/active/search-discovery/README.md.
func projectDirName(relPath string) string {
	parts := strings.Split(relPath, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return fileStem(relPath)
}

// firstHeading returns the text of the first level-one markdown heading.
func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
