package models

import "time"

// Briefing is the synthesized result for a task: assembled context, memory
// matches, resolved entities, inferred relationships, and a rendered markdown
// summary a downstream agent can consume directly.
type Briefing struct {
	Task          string
	Skill         string
	Context       *ContextBundle
	Memory        MemorySearchResult
	Entities      []ResolvedEntity
	Relationships []EntityRelationship
	Confidence    Confidence
	AssembledAt   time.Time
	Markdown      string
}

// WorkType categorizes the kind of product work a skill supports.
type WorkType string

const (
	WorkDiscovery  WorkType = "discovery"
	WorkDefinition WorkType = "definition"
	WorkDelivery   WorkType = "delivery"
	WorkAnalysis   WorkType = "analysis"
	WorkPlanning   WorkType = "planning"
	WorkOperations WorkType = "operations"
)

// SkillCandidate describes an installed skill or tool considered for routing.
type SkillCandidate struct {
	ID          string
	Name        string
	Description string
	Path        string
	Triggers    []string
	Primitives  []Primitive
	WorkType    WorkType
	Category    string
	Tool        bool
}

// RoutedSkill is the outcome of routing a query to its best-matching skill.
type RoutedSkill struct {
	Skill      string
	Path       string
	Reason     string
	Primitives []Primitive
	WorkType   WorkType
	Category   string
	Tool       bool
	Score      float64
}
