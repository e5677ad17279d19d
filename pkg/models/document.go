// Package models contains the shared domain types for the Areté workspace
// intelligence engine: documents, entities, context bundles, memory results,
// timelines, and briefings.
package models

import "time"

// DocumentCategory classifies where in the workspace a document lives.
type DocumentCategory string

const (
	CategoryContext   DocumentCategory = "context"
	CategoryGoals     DocumentCategory = "goals"
	CategoryProjects  DocumentCategory = "projects"
	CategoryPeople    DocumentCategory = "people"
	CategoryResources DocumentCategory = "resources"
	CategoryMemory    DocumentCategory = "memory"
)

// Frontmatter holds the known YAML frontmatter fields of a workspace
// document. It is parsed and validated at the document-provider boundary so
// the engine never branches on raw map values.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Name        string   `yaml:"name"`
	Email       string   `yaml:"email"`
	Role        string   `yaml:"role"`
	Company     string   `yaml:"company"`
	Team        string   `yaml:"team"`
	Category    string   `yaml:"category"`
	Date        string   `yaml:"date"`
	Attendees   string   `yaml:"attendees"`
	AttendeeIDs []string `yaml:"attendee_ids"`
	Owner       string   `yaml:"owner"`
	Status      string   `yaml:"status"`
	Source      string   `yaml:"source"`
	Tags        []string `yaml:"tags"`
}

// Document is an immutable snapshot of a parsed workspace file: frontmatter
// plus raw markdown body. The engine never mutates documents; writers live
// outside the intelligence layer.
type Document struct {
	Path         string
	RelativePath string
	Category     DocumentCategory
	Frontmatter  Frontmatter
	Body         string
	ModifiedAt   time.Time
}
