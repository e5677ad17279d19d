package models

import "time"

// Primitive is one of the five fixed product-thinking categories used to
// classify context relevance.
type Primitive string

const (
	PrimitiveProblem  Primitive = "Problem"
	PrimitiveUser     Primitive = "User"
	PrimitiveSolution Primitive = "Solution"
	PrimitiveMarket   Primitive = "Market"
	PrimitiveRisk     Primitive = "Risk"
)

// AllPrimitives lists every primitive in canonical order.
var AllPrimitives = []Primitive{
	PrimitiveProblem,
	PrimitiveUser,
	PrimitiveSolution,
	PrimitiveMarket,
	PrimitiveRisk,
}

// Confidence grades how well the assembled context covers a query.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// ContextFile is a workspace file selected for a context bundle. The
// relevance score is either a fixed static constant (primitive-mapped and
// token-matched files) or a discovered semantic-search score; both live on
// the same scale by convention, with 0.3 as the relevance floor.
type ContextFile struct {
	Path           string
	RelativePath   string
	Primitive      Primitive
	Category       DocumentCategory
	Summary        string
	Content        string
	RelevanceScore float64
}

// ContextGap marks a primitive for which no substantive document was found.
type ContextGap struct {
	Primitive   Primitive
	Description string
	Suggestion  string
}

// ContextBundle is the result of context assembly: relevant files sorted by
// descending relevance, coverage gaps, and an overall confidence grade.
type ContextBundle struct {
	Query           string
	Primitives      []Primitive
	Files           []ContextFile
	Gaps            []ContextGap
	Confidence      Confidence
	TemporalSignals []string
	AssembledAt     time.Time
}

// FileFreshness records when a context file was last modified and whether it
// looks like templated scaffolding rather than authored content.
type FileFreshness struct {
	RelativePath string
	Category     DocumentCategory
	ModifiedAt   time.Time
	Stale        bool
	Placeholder  bool
}

// ContextInventory summarizes the state of the workspace's context layer:
// per-file freshness plus which primitives have substantive coverage.
type ContextInventory struct {
	Freshness  []FileFreshness
	StaleFiles []FileFreshness
	Covered    []Primitive
	Missing    []Primitive
	ScannedAt  time.Time
}
