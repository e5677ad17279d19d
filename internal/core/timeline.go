package core

import (
	"regexp"
	"sort"
	"strings"

	"github.com/arete-cli/arete/internal/search"
	"github.com/arete-cli/arete/internal/storage"
	"github.com/arete-cli/arete/pkg/models"
)

// themeThreshold is the minimum number of distinct items a token must
// appear in before it counts as a theme.
const themeThreshold = 3

// memoryHeading matches dated memory entries: "### 2026-01-10: Title".
var memoryHeading = regexp.MustCompile(`(?m)^### (\d{4}-\d{2}-\d{2}):\s*(.+)$`)

// TimelineEngine extracts dated activity matching a query.
type TimelineEngine interface {
	GetTimeline(query string, dateRange *models.DateRange) (*models.Timeline, error)
}

type timelineEngine struct {
	store storage.WorkspaceStore
}

// NewTimelineEngine builds a TimelineEngine over the document store.
func NewTimelineEngine(store storage.WorkspaceStore) TimelineEngine {
	return &timelineEngine{store: store}
}

func (e *timelineEngine) GetTimeline(query string, dateRange *models.DateRange) (*models.Timeline, error) {
	tokens := search.TokenizeQuery(query)
	tl := &models.Timeline{Query: query}
	if len(tokens) == 0 {
		return tl, nil
	}

	var items []models.TimelineItem
	items = append(items, e.memoryItems(tokens)...)
	items = append(items, e.meetingItems(tokens)...)

	if dateRange != nil {
		filtered := items[:0]
		for _, item := range items {
			if dateRange.Start != "" && item.Date < dateRange.Start {
				continue
			}
			if dateRange.End != "" && item.Date > dateRange.End {
				continue
			}
			filtered = append(filtered, item)
		}
		items = filtered
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	tl.Items = items

	if len(items) > 0 {
		tl.DateRange = models.DateRange{
			Start: items[len(items)-1].Date,
			End:   items[0].Date,
		}
	}
	tl.Themes = extractThemes(items)
	return tl, nil
}

// memoryItems splits each memory file into its dated sections and keeps
// the ones matching at least one query token.
func (e *timelineEngine) memoryItems(tokens []string) []models.TimelineItem {
	docs, err := e.store.List(models.CategoryMemory)
	if err != nil {
		return nil
	}
	var items []models.TimelineItem
	for _, doc := range docs {
		for _, section := range splitMemorySections(doc.Body) {
			text := section.Title + " " + section.Content
			score := tokenMatchScore(text, tokens)
			if score == 0 {
				continue
			}
			items = append(items, models.TimelineItem{
				Type:           models.TimelineMemory,
				Date:           section.Date,
				Source:         doc.RelativePath,
				Title:          section.Title,
				Content:        section.Content,
				RelevanceScore: score,
			})
		}
	}
	return items
}

func (e *timelineEngine) meetingItems(tokens []string) []models.TimelineItem {
	docs, err := e.store.List(models.CategoryResources)
	if err != nil {
		return nil
	}
	var items []models.TimelineItem
	for _, doc := range docs {
		if doc.Frontmatter.Date == "" {
			continue
		}
		title := doc.Frontmatter.Title
		if title == "" {
			title = fileStem(doc.RelativePath)
		}
		score := tokenMatchScore(title+" "+doc.Body, tokens)
		if score == 0 {
			continue
		}
		items = append(items, models.TimelineItem{
			Type:           models.TimelineMeeting,
			Date:           doc.Frontmatter.Date,
			Source:         doc.RelativePath,
			Title:          title,
			Content:        doc.Body,
			RelevanceScore: score,
		})
	}
	return items
}

type memorySection struct {
	Date    string
	Title   string
	Content string
}

// splitMemorySections carves a memory file into its dated entries. Text
// before the first heading is ignored.
func splitMemorySections(body string) []memorySection {
	locs := memoryHeading.FindAllStringSubmatchIndex(body, -1)
	var sections []memorySection
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, memorySection{
			Date:    body[loc[2]:loc[3]],
			Title:   strings.TrimSpace(body[loc[4]:loc[5]]),
			Content: strings.TrimSpace(body[loc[1]:end]),
		})
	}
	return sections
}

// tokenMatchScore is the fraction of query tokens present in text.
func tokenMatchScore(text string, tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	matched := 0
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

// extractThemes returns tokens recurring across at least three distinct
// items, most frequent first.
func extractThemes(items []models.TimelineItem) []string {
	counts := map[string]int{}
	for _, item := range items {
		seen := map[string]bool{}
		for _, t := range search.Tokenize(item.Title + " " + item.Content) {
			if !seen[t] {
				seen[t] = true
				counts[t]++
			}
		}
	}
	var themes []string
	for t, n := range counts {
		if n >= themeThreshold {
			themes = append(themes, t)
		}
	}
	sort.SliceStable(themes, func(i, j int) bool {
		if counts[themes[i]] != counts[themes[j]] {
			return counts[themes[i]] > counts[themes[j]]
		}
		return themes[i] < themes[j]
	})
	return themes
}
