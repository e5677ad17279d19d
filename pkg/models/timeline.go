package models

// TimelineItemType distinguishes memory entries from meeting records.
type TimelineItemType string

const (
	TimelineMemory  TimelineItemType = "memory"
	TimelineMeeting TimelineItemType = "meeting"
)

// TimelineItem is one dated entry matching a timeline query. Date is an ISO
// "YYYY-MM-DD" string; RelevanceScore is positive by construction since only
// query-matching items are included.
type TimelineItem struct {
	Type           TimelineItemType
	Date           string
	Source         string
	Title          string
	Content        string
	RelevanceScore float64
}

// DateRange bounds a timeline query or reports the span of its results.
// Empty strings mean unbounded (for queries) or no items (for results).
type DateRange struct {
	Start string
	End   string
}

// Timeline is the chronological view of everything in the workspace that
// matches a query: items newest-first, plus recurring themes.
type Timeline struct {
	Query     string
	Items     []TimelineItem
	Themes    []string
	DateRange DateRange
}
