package models

// EntityType identifies the kind of workspace entity a reference resolves to.
type EntityType string

const (
	EntityPerson  EntityType = "person"
	EntityMeeting EntityType = "meeting"
	EntityProject EntityType = "project"
	EntityAny     EntityType = "any"
)

// ResolvedEntity is the result of resolving an ambiguous reference string to
// a concrete workspace entity. Score is a non-negative match score used only
// for relative ranking within a single resolution call; it is not normalized.
type ResolvedEntity struct {
	Type     EntityType
	Path     string
	Name     string
	Slug     string
	Metadata map[string]any
	Score    float64
}

// MentionSourceType classifies the document a mention was found in.
type MentionSourceType string

const (
	MentionSourceContext MentionSourceType = "context"
	MentionSourceMeeting MentionSourceType = "meeting"
	MentionSourceMemory  MentionSourceType = "memory"
	MentionSourceProject MentionSourceType = "project"
)

// EntityMention records a literal occurrence of an entity's name in another
// workspace document, with a bounded excerpt of the surrounding text.
type EntityMention struct {
	Entity     string
	EntityType EntityType
	SourcePath string
	SourceType MentionSourceType
	Excerpt    string
	Date       string
}

// RelationshipType is a typed edge label between two entities. Exactly three
// kinds exist; no other value is ever emitted.
type RelationshipType string

const (
	RelWorksOn     RelationshipType = "works_on"
	RelAttended    RelationshipType = "attended"
	RelMentionedIn RelationshipType = "mentioned_in"
)

// EntityRelationship is a directed edge inferred from structural cues (team
// lists, attendee fields) or from mentions. ToType is an EntityType for
// works_on and attended edges, and a MentionSourceType for mentioned_in
// edges, where the target is a document rather than an entity.
type EntityRelationship struct {
	Type     RelationshipType
	From     string
	FromType EntityType
	To       string
	ToType   string
	Evidence string
}
