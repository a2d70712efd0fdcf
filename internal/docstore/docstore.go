// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore defines the document and analysis store contracts the
// review pipeline depends on, with a local SQLite implementation and a
// remote HTTP proxy implementation.
package docstore

import (
	"context"
	"encoding/json"
)

// SectionInfo describes one stored section of structured content.
type SectionInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Order int    `json:"order"`
}

// PageRange is a slice of extracted page texts from a raw document.
type PageRange struct {
	TotalPages int      `json:"total_pages"`
	PageTexts  []string `json:"content"`
}

// NewSection is the payload for creating a structured-content section.
type NewSection struct {
	Type    string         `json:"section_type"`
	Title   string         `json:"title"`
	Content map[string]any `json:"content_json"`
	Order   int            `json:"section_order"`
}

// AnalysisSection is the payload for one section of a stored analysis.
type AnalysisSection struct {
	Type    string `json:"section_type"`
	Name    string `json:"section_name"`
	Order   int    `json:"section_order"`
	Content any    `json:"content"`
}

// ContentStore provides access to structured paper content and raw
// document pages.
type ContentStore interface {
	// ListSections enumerates the sections of a structured content record.
	ListSections(ctx context.Context, contentID string) ([]SectionInfo, error)

	// GetSectionDetail returns one section's content payload. The payload
	// may be a bare JSON string or a JSON object; callers extract text.
	GetSectionDetail(ctx context.Context, sectionID string) (json.RawMessage, error)

	// GetPages returns extracted page texts for a raw document, inclusive
	// of startPage and endPage (1-based).
	GetPages(ctx context.Context, fileID string, startPage, endPage int) (PageRange, error)

	// CreateContentOverview creates an empty structured content record and
	// returns its id.
	CreateContentOverview(ctx context.Context) (string, error)

	// CreateContentSection adds a section to a content record and returns
	// the store-assigned section id.
	CreateContentSection(ctx context.Context, contentID string, sec NewSection) (string, error)
}

// AnalysisStore persists classification analyses.
type AnalysisStore interface {
	// CreateAnalysisOverview creates an analysis record linked to a
	// structured content record and returns the analysis id.
	CreateAnalysisOverview(ctx context.Context, analysisType, title, description, linkedContentID string) (string, error)

	// CreateAnalysisSection writes one content block of the analysis.
	CreateAnalysisSection(ctx context.Context, analysisID string, sec AnalysisSection) error

	// CompleteAnalysisOverview finalizes the analysis record.
	CompleteAnalysisOverview(ctx context.Context, analysisID string) error
}

// Store combines both contracts; each implementation in this package
// satisfies it.
type Store interface {
	ContentStore
	AnalysisStore
}
