package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arete-cli/arete/pkg/models"
	"gopkg.in/yaml.v3"
)

// WorkspaceStore lists and reads workspace documents. Implementations must
// tolerate missing directories (empty list) and skip documents that fail to
// parse; a single bad file never aborts a scan.
type WorkspaceStore interface {
	Root() string
	List(category models.DocumentCategory) ([]models.Document, error)
	Read(path string) (*models.Document, error)
}

type fileWorkspaceStore struct {
	paths WorkspacePaths
}

// Root returns the workspace root directory.
func (s *fileWorkspaceStore) Root() string {
	return s.paths.Root
}

// NewWorkspaceStore creates a WorkspaceStore over the given workspace layout.
func NewWorkspaceStore(paths WorkspacePaths) WorkspaceStore {
	return &fileWorkspaceStore{paths: paths}
}

// List returns all parseable documents in a category. Projects are
// represented by their README.md; people are scanned one level of
// category subdirectories deep.
func (s *fileWorkspaceStore) List(category models.DocumentCategory) ([]models.Document, error) {
	switch category {
	case models.CategoryProjects:
		return s.listProjects()
	case models.CategoryPeople:
		return s.listPeople()
	default:
		return s.listFlat(category)
	}
}

func (s *fileWorkspaceStore) listFlat(category models.DocumentCategory) ([]models.Document, error) {
	dir := s.paths.CategoryDir(category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s documents: %w", category, err)
	}

	var docs []models.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		doc, err := s.Read(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// listPeople walks people/<category>/<slug>.md across all person categories.
func (s *fileWorkspaceStore) listPeople() ([]models.Document, error) {
	entries, err := os.ReadDir(s.paths.People)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing people: %w", err)
	}

	var docs []models.Document
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(s.paths.People, entry.Name())
		files, err := os.ReadDir(sub)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
				continue
			}
			doc, err := s.Read(filepath.Join(sub, f.Name()))
			if err != nil {
				continue
			}
			if doc.Frontmatter.Category == "" {
				doc.Frontmatter.Category = entry.Name()
			}
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

// listProjects walks projects/<status>/<slug>/README.md. The status
// directory name ("active", "archive") fills the frontmatter status field
// when the README does not set one.
func (s *fileWorkspaceStore) listProjects() ([]models.Document, error) {
	statuses, err := os.ReadDir(s.paths.Projects)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var docs []models.Document
	for _, statusDir := range statuses {
		if !statusDir.IsDir() {
			continue
		}
		status := statusDir.Name()
		projects, err := os.ReadDir(filepath.Join(s.paths.Projects, status))
		if err != nil {
			continue
		}
		for _, proj := range projects {
			if !proj.IsDir() {
				continue
			}
			readme := filepath.Join(s.paths.Projects, status, proj.Name(), "README.md")
			doc, err := s.Read(readme)
			if err != nil {
				continue
			}
			if doc.Frontmatter.Status == "" {
				doc.Frontmatter.Status = normalizeProjectStatus(status)
			}
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func normalizeProjectStatus(dir string) string {
	if dir == "archive" {
		return "archived"
	}
	return dir
}

// Read parses a single document from disk. Returns an error for unreadable
// files or invalid frontmatter YAML; callers scanning directories skip such
// documents and continue.
func (s *fileWorkspaceStore) Read(path string) (*models.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading workspace documents under the managed root
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	fm, body, err := ParseFrontmatter(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.paths.Root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	return &models.Document{
		Path:         path,
		RelativePath: rel,
		Category:     InferCategory(rel),
		Frontmatter:  fm,
		Body:         body,
		ModifiedAt:   info.ModTime(),
	}, nil
}

// ParseFrontmatter splits a markdown file into its YAML frontmatter and body.
// Files without a frontmatter block are returned whole as body.
func ParseFrontmatter(content string) (models.Frontmatter, string, error) {
	var fm models.Frontmatter

	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return fm, content, nil
	}
	rest := content[strings.Index(content, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return fm, content, nil
	}

	block := rest[:end]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\r")
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return models.Frontmatter{}, "", err
	}
	return fm, body, nil
}

// parseFrontmatterInto unmarshals a file's frontmatter block into out.
// Files without a block leave out untouched.
func parseFrontmatterInto(content string, out any) error {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return nil
	}
	rest := content[strings.Index(content, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil
	}
	return yaml.Unmarshal([]byte(rest[:end]), out)
}
