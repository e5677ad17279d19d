package models

// MemoryItemType identifies which memory file a result came from.
type MemoryItemType string

const (
	MemoryDecisions    MemoryItemType = "decisions"
	MemoryLearnings    MemoryItemType = "learnings"
	MemoryObservations MemoryItemType = "observations"
)

// MemoryResult is a single matched memory section.
type MemoryResult struct {
	Content   string
	Source    string
	Type      MemoryItemType
	Date      string
	Relevance string
	Score     float64
}

// MemorySearchResult is the outcome of a memory search: the ranked matches
// after the limit is applied, plus the total match count before limiting.
type MemorySearchResult struct {
	Query   string
	Results []MemoryResult
	Total   int
}
