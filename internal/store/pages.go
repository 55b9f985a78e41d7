package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Page is a stored wiki page. Pages are the durable form of documents; the
// retrieval engine is rebuilt from them and never persists on its own.
type Page struct {
	ID        string
	Title     string
	Category  string
	Tags      []string
	Content   string
	FilePath  string
	Language  string
	UpdatedAt time.Time
}

// Document converts the page into its indexable form. Word count is derived
// from the content at conversion time.
func (p *Page) Document() *Document {
	return &Document{
		ID:      p.ID,
		Content: p.Content,
		Metadata: Metadata{
			PageID:    p.ID,
			Title:     p.Title,
			Category:  p.Category,
			Tags:      p.Tags,
			WordCount: len(strings.Fields(p.Content)),
			FilePath:  p.FilePath,
			Language:  p.Language,
		},
	}
}

// PageStore persists wiki pages in SQLite.
type PageStore struct {
	db *sql.DB
}

const pageSchema = `
CREATE TABLE IF NOT EXISTS pages (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	category   TEXT NOT NULL DEFAULT '',
	tags       TEXT NOT NULL DEFAULT '[]',
	content    TEXT NOT NULL,
	file_path  TEXT NOT NULL DEFAULT '',
	language   TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pages_category ON pages(category);
`

// NewPageStore opens (or creates) the page database at path and applies the
// schema. WAL mode allows a reader to coexist with the single writer.
func NewPageStore(path string) (*PageStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open page database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure page database: %w", err)
	}
	if _, err := db.Exec(pageSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create page schema: %w", err)
	}

	return &PageStore{db: db}, nil
}

// SavePages upserts pages in a single transaction.
func (s *PageStore) SavePages(ctx context.Context, pages []*Page) error {
	if len(pages) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (id, title, category, tags, content, file_path, language, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			tags = excluded.tags,
			content = excluded.content,
			file_path = excluded.file_path,
			language = excluded.language,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range pages {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for %s: %w", p.ID, err)
		}
		updatedAt := p.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.Category, string(tags),
			p.Content, p.FilePath, p.Language, updatedAt); err != nil {
			return fmt.Errorf("upsert page %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pages: %w", err)
	}
	return nil
}

// GetPage fetches a single page by ID. Returns sql.ErrNoRows when absent.
func (s *PageStore) GetPage(ctx context.Context, id string) (*Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, category, tags, content, file_path, language, updated_at
		FROM pages WHERE id = ?
	`, id)
	return scanPage(row)
}

// ListPages returns all stored pages ordered by ID.
func (s *PageStore) ListPages(ctx context.Context) ([]*Page, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, tags, content, file_path, language, updated_at
		FROM pages ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pages []*Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// DeletePage removes a page by ID. Unknown IDs are a no-op.
func (s *PageStore) DeletePage(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	return nil
}

// CountPages returns the number of stored pages.
func (s *PageStore) CountPages(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (s *PageStore) Close() error {
	return s.db.Close()
}

// scanner abstracts sql.Row and sql.Rows for scanPage.
type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*Page, error) {
	var p Page
	var tags string
	if err := row.Scan(&p.ID, &p.Title, &p.Category, &tags, &p.Content,
		&p.FilePath, &p.Language, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags for %s: %w", p.ID, err)
	}
	return &p, nil
}
