// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a local, file-backed implementation of the content and
// analysis store contracts. It mirrors the remote store's data model so
// the pipeline behaves identically against either backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the store database at path, creating
// the schema if it does not exist.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS content_overviews (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS content_sections (
			id TEXT PRIMARY KEY,
			overview_id TEXT NOT NULL REFERENCES content_overviews(id),
			section_type TEXT,
			title TEXT,
			content TEXT,
			section_order INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_overview ON content_sections(overview_id)`,
		`CREATE TABLE IF NOT EXISTS pages (
			file_id TEXT NOT NULL,
			page_no INTEGER NOT NULL,
			text TEXT,
			PRIMARY KEY (file_id, page_no)
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			analysis_type TEXT,
			title TEXT,
			description TEXT,
			linked_content_id TEXT,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analysis_sections (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id TEXT NOT NULL REFERENCES analyses(id),
			section_type TEXT,
			section_name TEXT,
			section_order INTEGER,
			content TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ListSections enumerates the sections of a content record in stored order.
func (s *SQLiteStore) ListSections(ctx context.Context, contentID string) ([]SectionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, section_type, section_order
		 FROM content_sections WHERE overview_id = ?
		 ORDER BY section_order, rowid`, contentID)
	if err != nil {
		return nil, fmt.Errorf("listing sections for %s: %w", contentID, err)
	}
	defer rows.Close()

	var sections []SectionInfo
	for rows.Next() {
		var info SectionInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Type, &info.Order); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		sections = append(sections, info)
	}
	return sections, rows.Err()
}

// GetSectionDetail returns the stored content payload for one section.
func (s *SQLiteStore) GetSectionDetail(ctx context.Context, sectionID string) (json.RawMessage, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM content_sections WHERE id = ?`, sectionID).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("section %s not found", sectionID)
	}
	if err != nil {
		return nil, fmt.Errorf("reading section %s: %w", sectionID, err)
	}

	if json.Valid([]byte(content)) {
		return json.RawMessage(content), nil
	}
	// Legacy rows may hold bare text; wrap it as a JSON string.
	wrapped, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("wrapping section content: %w", err)
	}
	return wrapped, nil
}

// GetPages returns page texts for a raw document between startPage and
// endPage inclusive.
func (s *SQLiteStore) GetPages(ctx context.Context, fileID string, startPage, endPage int) (PageRange, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE file_id = ?`, fileID).Scan(&total); err != nil {
		return PageRange{}, fmt.Errorf("counting pages for %s: %w", fileID, err)
	}
	if total == 0 {
		return PageRange{}, fmt.Errorf("no pages stored for file %s", fileID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM pages WHERE file_id = ? AND page_no BETWEEN ? AND ?
		 ORDER BY page_no`, fileID, startPage, endPage)
	if err != nil {
		return PageRange{}, fmt.Errorf("reading pages for %s: %w", fileID, err)
	}
	defer rows.Close()

	pr := PageRange{TotalPages: total}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return PageRange{}, fmt.Errorf("scanning page row: %w", err)
		}
		pr.PageTexts = append(pr.PageTexts, text)
	}
	return pr, rows.Err()
}

// ImportPages stores page texts for a raw document so the raw-document
// parse path can run against the local store.
func (s *SQLiteStore) ImportPages(ctx context.Context, fileID string, pages []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("clearing pages for %s: %w", fileID, err)
	}
	for i, text := range pages {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pages (file_id, page_no, text) VALUES (?, ?, ?)`,
			fileID, i+1, text); err != nil {
			return fmt.Errorf("inserting page %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// CreateContentOverview creates an empty content record.
func (s *SQLiteStore) CreateContentOverview(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO content_overviews (id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("creating content overview: %w", err)
	}
	return id, nil
}

// CreateContentSection adds a section to a content record.
func (s *SQLiteStore) CreateContentSection(ctx context.Context, contentID string, sec NewSection) (string, error) {
	content, err := json.Marshal(sec.Content)
	if err != nil {
		return "", fmt.Errorf("marshaling section content: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO content_sections (id, overview_id, section_type, title, content, section_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, contentID, sec.Type, sec.Title, string(content), sec.Order)
	if err != nil {
		return "", fmt.Errorf("creating content section: %w", err)
	}
	return id, nil
}

// CreateAnalysisOverview creates an analysis record.
func (s *SQLiteStore) CreateAnalysisOverview(ctx context.Context, analysisType, title, description, linkedContentID string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, analysis_type, title, description, linked_content_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, analysisType, title, description, linkedContentID,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("creating analysis overview: %w", err)
	}
	return id, nil
}

// CreateAnalysisSection writes one content block of an analysis.
func (s *SQLiteStore) CreateAnalysisSection(ctx context.Context, analysisID string, sec AnalysisSection) error {
	content, err := json.Marshal(sec.Content)
	if err != nil {
		return fmt.Errorf("marshaling analysis content: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_sections (analysis_id, section_type, section_name, section_order, content)
		 VALUES (?, ?, ?, ?, ?)`,
		analysisID, sec.Type, sec.Name, sec.Order, string(content))
	if err != nil {
		return fmt.Errorf("creating analysis section: %w", err)
	}
	return nil
}

// CompleteAnalysisOverview marks an analysis record as finalized.
func (s *SQLiteStore) CompleteAnalysisOverview(ctx context.Context, analysisID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE analyses SET completed = 1 WHERE id = ?`, analysisID)
	if err != nil {
		return fmt.Errorf("completing analysis %s: %w", analysisID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing analysis %s: %w", analysisID, err)
	}
	if n == 0 {
		return fmt.Errorf("analysis %s not found", analysisID)
	}
	return nil
}

// AnalysisRecord is a stored analysis row, used by the CLI listing.
type AnalysisRecord struct {
	ID              string `json:"id"`
	Type            string `json:"analysis_type"`
	Title           string `json:"title"`
	LinkedContentID string `json:"linked_content_id"`
	Completed       bool   `json:"completed"`
}

// ListAnalyses returns stored analyses, newest first.
func (s *SQLiteStore) ListAnalyses(ctx context.Context) ([]AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, analysis_type, title, linked_content_id, completed
		 FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Title, &rec.LinkedContentID, &rec.Completed); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
