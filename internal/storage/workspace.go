// Package storage provides read-only access to the documents of an Areté
// workspace: markdown files with YAML frontmatter organized under context/,
// goals/, projects/, people/, resources/meetings/, and .arete/memory/items/.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arete-cli/arete/pkg/models"
)

// ManifestName is the file that marks a directory as a workspace root.
const ManifestName = "arete.yaml"

// WorkspacePaths holds the absolute paths of all workspace directories.
type WorkspacePaths struct {
	Root      string
	Manifest  string
	Context   string
	Goals     string
	Projects  string
	People    string
	Meetings  string
	Memory    string
	Resources string
	Skills    string
}

// NewWorkspacePaths returns the canonical directory layout rooted at root.
func NewWorkspacePaths(root string) WorkspacePaths {
	return WorkspacePaths{
		Root:      root,
		Manifest:  filepath.Join(root, ManifestName),
		Context:   filepath.Join(root, "context"),
		Goals:     filepath.Join(root, "goals"),
		Projects:  filepath.Join(root, "projects"),
		People:    filepath.Join(root, "people"),
		Meetings:  filepath.Join(root, "resources", "meetings"),
		Memory:    filepath.Join(root, ".arete", "memory", "items"),
		Resources: filepath.Join(root, "resources"),
		Skills:    filepath.Join(root, ".agents", "skills"),
	}
}

// FindWorkspaceRoot walks up from startDir looking for a directory containing
// the workspace manifest. Returns an error if no workspace is found.
func FindWorkspaceRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("finding workspace root: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found above %s", ManifestName, startDir)
		}
		dir = parent
	}
}

// CategoryDir returns the base directory for a document category.
func (p WorkspacePaths) CategoryDir(category models.DocumentCategory) string {
	switch category {
	case models.CategoryContext:
		return p.Context
	case models.CategoryGoals:
		return p.Goals
	case models.CategoryProjects:
		return p.Projects
	case models.CategoryPeople:
		return p.People
	case models.CategoryResources:
		return p.Meetings
	case models.CategoryMemory:
		return p.Memory
	}
	return ""
}

// InferCategory maps a workspace-relative path to its document category.
func InferCategory(relativePath string) models.DocumentCategory {
	rel := filepath.ToSlash(relativePath)
	switch {
	case hasPrefix(rel, "context/"):
		return models.CategoryContext
	case hasPrefix(rel, "goals/"):
		return models.CategoryGoals
	case hasPrefix(rel, "projects/"):
		return models.CategoryProjects
	case hasPrefix(rel, "people/"):
		return models.CategoryPeople
	case hasPrefix(rel, ".arete/memory/"):
		return models.CategoryMemory
	case hasPrefix(rel, "resources/"):
		return models.CategoryResources
	}
	return models.CategoryContext
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
