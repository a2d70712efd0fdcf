// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-engine/internal/docstore"
	"github.com/pdiddy/review-engine/internal/prompts"
	"github.com/pdiddy/review-engine/pkg/types"
)

// fakeContentStore serves canned section and page data.
type fakeContentStore struct {
	sections    []docstore.SectionInfo
	details     map[string]json.RawMessage
	pages       docstore.PageRange
	failDetails map[string]bool

	createdOverviewID string
	createdSections   []docstore.NewSection
	failSectionWrite  bool
}

func (f *fakeContentStore) ListSections(_ context.Context, contentID string) ([]docstore.SectionInfo, error) {
	if f.sections == nil {
		return nil, fmt.Errorf("content %s not found", contentID)
	}
	return f.sections, nil
}

func (f *fakeContentStore) GetSectionDetail(_ context.Context, sectionID string) (json.RawMessage, error) {
	if f.failDetails[sectionID] {
		return nil, fmt.Errorf("detail for %s unavailable", sectionID)
	}
	detail, ok := f.details[sectionID]
	if !ok {
		return nil, fmt.Errorf("no detail for %s", sectionID)
	}
	return detail, nil
}

func (f *fakeContentStore) GetPages(_ context.Context, _ string, startPage, endPage int) (docstore.PageRange, error) {
	if len(f.pages.PageTexts) == 0 {
		return docstore.PageRange{}, fmt.Errorf("no pages")
	}
	out := f.pages
	if endPage < len(out.PageTexts) {
		out.PageTexts = out.PageTexts[startPage-1 : endPage]
	}
	return out, nil
}

func (f *fakeContentStore) CreateContentOverview(context.Context) (string, error) {
	f.createdOverviewID = "overview-1"
	return f.createdOverviewID, nil
}

func (f *fakeContentStore) CreateContentSection(_ context.Context, _ string, sec docstore.NewSection) (string, error) {
	if f.failSectionWrite {
		return "", fmt.Errorf("section write rejected")
	}
	f.createdSections = append(f.createdSections, sec)
	return fmt.Sprintf("stored-sec-%d", len(f.createdSections)), nil
}

// featureOracle writes a fixed extracted-features artifact.
type featureOracle struct {
	artifact string
	silent   bool
}

func (o *featureOracle) Complete(_ context.Context, _ string, outputPath string) error {
	if o.silent {
		return nil
	}
	return os.WriteFile(outputPath, []byte(o.artifact), 0o644)
}

func newTestParser(t *testing.T, store docstore.ContentStore, o *featureOracle) *Parser {
	t.Helper()
	reg, err := prompts.Load()
	require.NoError(t, err)
	cfg := types.ParseConfig{WorkDir: t.TempDir()}
	return NewParser(store, o, reg, cfg, nil)
}

func TestParseStructuredContent(t *testing.T) {
	store := &fakeContentStore{
		sections: []docstore.SectionInfo{
			{ID: "s2", Name: "Methods", Order: 2},
			{ID: "s1", Name: "Introduction", Order: 1},
			{ID: "s3", Name: "Conclusion", Order: 3},
		},
		details: map[string]json.RawMessage{
			"s1": json.RawMessage(`{"markdown": "We begin."}`),
			"s2": json.RawMessage(`"We measure."`),
			"s3": json.RawMessage(`{"text": "We end."}`),
		},
	}
	o := &featureOracle{artifact: `{
		"title": "Measured Beginnings",
		"abstract": "A paper about measuring.",
		"keywords": ["measurement"],
		"methodology_terms": ["survey"],
		"domain_terms": ["metrology"],
		"potential_disciplines": ["Engineering"]
	}`}

	paper, err := newTestParser(t, store, o).Parse(context.Background(), "", "content-1")
	require.NoError(t, err)

	assert.Equal(t, "Measured Beginnings", paper.Title)
	assert.Equal(t, "A paper about measuring.", paper.Abstract)
	assert.Equal(t, []string{"measurement"}, paper.Keywords)
	assert.Equal(t, []string{"Engineering"}, paper.PotentialDisciplines)
	assert.Equal(t, "content-1", paper.StructuredContentOverviewID)
	assert.Empty(t, paper.OriginalFileID)

	require.Len(t, paper.Sections, 3)
	// Sections come back in ordering-key order regardless of listing order.
	assert.Equal(t, []string{"s1", "s2", "s3"}, []string{paper.Sections[0].ID, paper.Sections[1].ID, paper.Sections[2].ID})
	assert.Equal(t, "We begin.", paper.Sections[0].Content)
	assert.Equal(t, "We measure.", paper.Sections[1].Content)
	assert.Equal(t, types.SectionIntroduction, paper.Sections[0].Type)
	assert.Equal(t, types.SectionMethods, paper.Sections[1].Type)
}

func TestParseSkipsFailedSectionDetail(t *testing.T) {
	store := &fakeContentStore{
		sections: []docstore.SectionInfo{
			{ID: "s1", Name: "Introduction", Order: 1},
			{ID: "s2", Name: "Methods", Order: 2},
		},
		details: map[string]json.RawMessage{
			"s1": json.RawMessage(`"intro body"`),
		},
		failDetails: map[string]bool{"s2": true},
	}
	o := &featureOracle{silent: true}

	paper, err := newTestParser(t, store, o).Parse(context.Background(), "", "content-1")
	require.NoError(t, err)
	require.Len(t, paper.Sections, 1)
	assert.Equal(t, "s1", paper.Sections[0].ID)
}

func TestParseAllSectionDetailsFail(t *testing.T) {
	store := &fakeContentStore{
		sections:    []docstore.SectionInfo{{ID: "s1", Name: "Introduction", Order: 1}},
		failDetails: map[string]bool{"s1": true},
	}
	_, err := newTestParser(t, store, &featureOracle{silent: true}).Parse(context.Background(), "", "content-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all section detail fetches failed")
}

func TestParseRawDocument(t *testing.T) {
	store := &fakeContentStore{
		pages: docstore.PageRange{
			TotalPages: 2,
			PageTexts:  []string{"# Raw Paper\n\nAbstract\nraw abstract text", "second page"},
		},
	}
	o := &featureOracle{silent: true} // heuristic path

	paper, err := newTestParser(t, store, o).Parse(context.Background(), "file-9", "")
	require.NoError(t, err)

	// The assembled structure is persisted and its overview id becomes the
	// content id.
	assert.Equal(t, "overview-1", paper.StructuredContentOverviewID)
	assert.Equal(t, "file-9", paper.OriginalFileID)

	require.Len(t, paper.Sections, 1)
	sec := paper.Sections[0]
	assert.Equal(t, "stored-sec-1", sec.ID)
	assert.Equal(t, "Full Paper", sec.Name)
	assert.Equal(t, types.SectionContent, sec.Type)
	assert.Contains(t, sec.Content, "second page")

	// Heuristic extraction recovered the title and abstract.
	assert.Equal(t, "Raw Paper", paper.Title)
	assert.Equal(t, "raw abstract text\n\nsecond page", paper.Abstract)
}

func TestParseRawDocumentSectionWriteFails(t *testing.T) {
	store := &fakeContentStore{
		pages:            docstore.PageRange{TotalPages: 1, PageTexts: []string{"single page text"}},
		failSectionWrite: true,
	}
	paper, err := newTestParser(t, store, &featureOracle{silent: true}).Parse(context.Background(), "file-9", "")
	require.NoError(t, err)

	// A failed section write degrades to the local id; the parse still
	// succeeds with the overview id.
	require.Len(t, paper.Sections, 1)
	assert.Equal(t, "full_paper", paper.Sections[0].ID)
	assert.Equal(t, "overview-1", paper.StructuredContentOverviewID)
}

func TestParseNoInput(t *testing.T) {
	p := newTestParser(t, &fakeContentStore{}, &featureOracle{silent: true})
	_, err := p.Parse(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be provided")
}

func TestParseUntitledFallback(t *testing.T) {
	store := &fakeContentStore{
		sections: []docstore.SectionInfo{{ID: "s1", Name: "Body", Order: 1}},
		details:  map[string]json.RawMessage{"s1": json.RawMessage(`"no headings in here"`)},
	}
	paper, err := newTestParser(t, store, &featureOracle{silent: true}).Parse(context.Background(), "", "content-1")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Paper", paper.Title)
}

func TestParseWritesScratchFiles(t *testing.T) {
	store := &fakeContentStore{
		sections: []docstore.SectionInfo{{ID: "s1", Name: "Introduction", Order: 1}},
		details:  map[string]json.RawMessage{"s1": json.RawMessage(`"intro"`)},
	}
	o := &featureOracle{artifact: `{"title": "T", "abstract": "A"}`}

	reg, err := prompts.Load()
	require.NoError(t, err)
	workDir := t.TempDir()
	p := NewParser(store, o, reg, types.ParseConfig{WorkDir: workDir}, nil)

	_, err = p.Parse(context.Background(), "", "content-1")
	require.NoError(t, err)

	md, err := os.ReadFile(filepath.Join(workDir, "paper_content.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Introduction")

	_, err = os.Stat(filepath.Join(workDir, "extracted_features.json"))
	assert.NoError(t, err)
}

func TestParseMalformedFeaturesFallsBack(t *testing.T) {
	store := &fakeContentStore{
		sections: []docstore.SectionInfo{{ID: "s1", Name: "Body", Order: 1}},
		details:  map[string]json.RawMessage{"s1": json.RawMessage(`"# Fallback Title\nbody"`)},
	}
	o := &featureOracle{artifact: "not json at all"}

	paper, err := newTestParser(t, store, o).Parse(context.Background(), "", "content-1")
	require.NoError(t, err)
	assert.Equal(t, "Fallback Title", paper.Title)
}

func TestParseZeroOrderGetsListingPosition(t *testing.T) {
	store := &fakeContentStore{
		sections: []docstore.SectionInfo{
			{ID: "s1", Name: "First"},
			{ID: "s2", Name: "Second"},
		},
		details: map[string]json.RawMessage{
			"s1": json.RawMessage(`"first body"`),
			"s2": json.RawMessage(`"second body"`),
		},
	}
	paper, err := newTestParser(t, store, &featureOracle{silent: true}).Parse(context.Background(), "", "content-1")
	require.NoError(t, err)
	require.Len(t, paper.Sections, 2)
	assert.Equal(t, 1, paper.Sections[0].Order)
	assert.Equal(t, 2, paper.Sections[1].Order)
	assert.Equal(t, "s1", paper.Sections[0].ID)
}
