package core

import (
	"strings"

	"github.com/arete-cli/arete/internal/search"
	"github.com/arete-cli/arete/pkg/models"
)

// Routing weights. Exact id or trigger hits dominate; description overlap
// accumulates per token so long descriptive matches can still win.
const (
	routeIDWeight        = 20.0
	routeSlugWeight      = 15.0
	routeTriggerWeight   = 18.0
	routeDescWordWeight  = 4.0
	routePhraseWeight    = 10.0
	routeWorkTypeWeight  = 6.0
	routeEssentialWeight = 2.0
	routeDefaultWeight   = 1.0
	routeThreshold       = 4.0
)

// workTypeCues map intent verbs to the work type they usually signal.
var workTypeCues = map[string]models.WorkType{
	"research":     models.WorkDiscovery,
	"interview":    models.WorkDiscovery,
	"explore":      models.WorkDiscovery,
	"define":       models.WorkDefinition,
	"spec":         models.WorkDefinition,
	"prd":          models.WorkDefinition,
	"ship":         models.WorkDelivery,
	"launch":       models.WorkDelivery,
	"release":      models.WorkDelivery,
	"analyze":      models.WorkAnalysis,
	"metrics":      models.WorkAnalysis,
	"synthesize":   models.WorkAnalysis,
	"plan":         models.WorkPlanning,
	"roadmap":      models.WorkPlanning,
	"prioritize":   models.WorkPlanning,
	"standup":      models.WorkOperations,
	"status":       models.WorkOperations,
	"housekeeping": models.WorkOperations,
}

// RouteToSkill picks the skill best matching a free-text query, or nil
// when nothing clears the match threshold.
func RouteToSkill(query string, candidates []models.SkillCandidate) *models.RoutedSkill {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" || len(candidates) == 0 {
		return nil
	}
	tokens := search.Tokenize(lower)

	var best *models.RoutedSkill
	for _, c := range candidates {
		score, reason := scoreSkill(lower, tokens, c)
		if score < routeThreshold {
			continue
		}
		if best == nil || score > best.Score {
			best = &models.RoutedSkill{
				Skill:      c.Name,
				Path:       c.Path,
				Reason:     reason,
				Primitives: c.Primitives,
				WorkType:   c.WorkType,
				Category:   c.Category,
				Tool:       c.Tool,
				Score:      score,
			}
		}
	}
	return best
}

func scoreSkill(query string, tokens []string, c models.SkillCandidate) (float64, string) {
	score := 0.0
	strong := false

	id := strings.ToLower(c.ID)
	if id != "" && strings.Contains(query, id) {
		score += routeIDWeight
		strong = true
	}
	slug := strings.ReplaceAll(strings.ToLower(c.Name), "-", " ")
	if slug != "" && slug != id && strings.Contains(query, slug) {
		score += routeSlugWeight
		strong = true
	}
	for _, trigger := range c.Triggers {
		if t := strings.ToLower(trigger); t != "" && strings.Contains(query, t) {
			score += routeTriggerWeight
			strong = true
			break
		}
	}

	descTokens := map[string]bool{}
	for _, t := range search.Tokenize(c.Description) {
		descTokens[t] = true
	}
	for _, t := range tokens {
		if descTokens[t] {
			score += routeDescWordWeight
		}
	}
	for _, phrase := range descriptionPhrases(c.Description) {
		if strings.Contains(query, phrase) {
			score += routePhraseWeight
			break
		}
	}

	if c.WorkType != "" {
		for _, t := range tokens {
			if workTypeCues[t] == c.WorkType {
				score += routeWorkTypeWeight
				break
			}
		}
	}
	if c.Category == "essential" {
		score += routeEssentialWeight
	} else if c.Category != "" {
		score += routeDefaultWeight
	}

	reason := "Match from skill description"
	if strong {
		reason = "Strong match from intent keywords or triggers"
	}
	return score, reason
}

// descriptionPhrases pulls the "Use when the user wants to ..." clauses
// out of a skill description, split on commas and "or".
func descriptionPhrases(description string) []string {
	lower := strings.ToLower(description)
	idx := strings.Index(lower, "use when")
	if idx < 0 {
		return nil
	}
	clause := lower[idx:]
	for _, lead := range []string{"use when the user wants to", "use when the user wants", "use when"} {
		clause = strings.TrimPrefix(clause, lead)
	}
	clause = strings.Trim(clause, " .")
	var phrases []string
	for _, part := range strings.Split(clause, ",") {
		for _, sub := range strings.Split(part, " or ") {
			sub = strings.Trim(sub, " .")
			if len(sub) > 3 {
				phrases = append(phrases, sub)
			}
		}
	}
	return phrases
}
