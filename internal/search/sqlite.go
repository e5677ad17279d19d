package search

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/arete-cli/arete/internal/storage"
)

// sqliteProvider keeps an FTS5 index of workspace documents. The index is
// rebuilt on construction; workspaces are small enough that a full rebuild
// is cheaper than change tracking.
type sqliteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider opens (or creates) the index database under the
// workspace's .arete directory and repopulates it from the store.
func NewSQLiteProvider(store storage.WorkspaceStore, paths storage.WorkspacePaths) (Provider, error) {
	dbPath := filepath.Join(paths.Root, ".arete", "index.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening search index at %s: %w", dbPath, err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configuring search index: %w", err)
		}
	}
	p := &sqliteProvider{db: db}
	if err := p.rebuild(store); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *sqliteProvider) Name() string { return "sqlite" }

func (p *sqliteProvider) Close() error { return p.db.Close() }

func (p *sqliteProvider) rebuild(store storage.WorkspaceStore) error {
	if _, err := p.db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
			path UNINDEXED,
			title,
			body
		)`); err != nil {
		return fmt.Errorf("creating search index schema: %w", err)
	}
	if _, err := p.db.Exec(`DELETE FROM docs_fts`); err != nil {
		return fmt.Errorf("clearing search index: %w", err)
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("indexing workspace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO docs_fts (path, title, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("indexing workspace: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, category := range searchCategories {
		docs, err := store.List(category)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			title := doc.Frontmatter.Title
			if title == "" {
				title = doc.Frontmatter.Name
			}
			if _, err := stmt.Exec(doc.RelativePath, title, doc.Body); err != nil {
				return fmt.Errorf("indexing %s: %w", doc.RelativePath, err)
			}
		}
	}
	return tx.Commit()
}

func (p *sqliteProvider) Search(ctx context.Context, query string, opts Options) ([]Result, error) {
	ftsQuery := sanitizeFTS(strings.Join(TokenizeQuery(query), " "))
	if ftsQuery == "" {
		return nil, nil
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT path, snippet(docs_fts, 2, '', '', '...', 12), rank
		FROM docs_fts
		WHERE docs_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching index for %q: %w", query, err)
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var r Result
		var rank float64
		if err := rows.Scan(&r.Path, &r.Preview, &rank); err != nil {
			return nil, err
		}
		// FTS5 rank is a negative bm25 score; fold it onto 0..1.
		r.Score = 1 - math.Exp(rank)
		if r.Score < opts.MinScore {
			continue
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// sanitizeFTS quotes each word so user input cannot inject FTS5 query
// syntax like NEAR or column filters.
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
