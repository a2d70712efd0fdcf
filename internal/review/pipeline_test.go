// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-engine/internal/classify"
	"github.com/pdiddy/review-engine/internal/docstore"
	"github.com/pdiddy/review-engine/internal/parse"
	"github.com/pdiddy/review-engine/internal/prompts"
	"github.com/pdiddy/review-engine/pkg/types"
)

// stubStore serves one structured paper for the parse phase. The analysis
// side is unused in these tests.
type stubStore struct{}

func (stubStore) ListSections(context.Context, string) ([]docstore.SectionInfo, error) {
	return []docstore.SectionInfo{
		{ID: "s1", Name: "Introduction", Order: 1},
		{ID: "s2", Name: "Methods", Order: 2},
	}, nil
}

func (stubStore) GetSectionDetail(_ context.Context, sectionID string) (json.RawMessage, error) {
	return json.RawMessage(fmt.Sprintf(`"body of %s"`, sectionID)), nil
}

func (stubStore) GetPages(context.Context, string, int, int) (docstore.PageRange, error) {
	return docstore.PageRange{}, fmt.Errorf("no raw documents in this test")
}

func (stubStore) CreateContentOverview(context.Context) (string, error) {
	return "", fmt.Errorf("not supported")
}

func (stubStore) CreateContentSection(context.Context, string, docstore.NewSection) (string, error) {
	return "", fmt.Errorf("not supported")
}

// phaseOracle scripts separate artifacts for the extraction and
// classification calls, keyed by the output filename each phase requests.
type phaseOracle struct {
	features       string
	classification string
}

func (o *phaseOracle) Complete(_ context.Context, _ string, outputPath string) error {
	var artifact string
	switch filepath.Base(outputPath) {
	case "extracted_features.json":
		artifact = o.features
	case "discipline_classification.json":
		artifact = o.classification
	}
	if artifact == "" {
		return fmt.Errorf("oracle offline")
	}
	return os.WriteFile(outputPath, []byte(artifact), 0o644)
}

func newTestPipeline(t *testing.T, workDir string, o *phaseOracle, debugPhases []string) *Pipeline {
	t.Helper()
	reg, err := prompts.Load()
	require.NoError(t, err)

	parser := parse.NewParser(stubStore{}, o, reg, types.ParseConfig{WorkDir: workDir}, nil)
	classifier := classify.NewClassifier(o, nil, reg, types.ClassifyConfig{WorkDir: workDir}, nil)
	return NewPipeline(parser, classifier, workDir, debugPhases, nil)
}

func TestRunHappyPath(t *testing.T) {
	workDir := t.TempDir()
	o := &phaseOracle{
		features: `{"title": "Paper on Proofs", "abstract": "We prove things.",
			"keywords": ["proofs"], "potential_disciplines": ["Mathematics"]}`,
		classification: `{"disciplines": [{"id": 17, "name": "Mathematics", "score": 0.9, "evidence": "theorem proofs"}],
			"confidence": 0.8, "reasoning": "proof-heavy paper"}`,
	}

	result, err := newTestPipeline(t, workDir, o, nil).Run(context.Background(), Input{
		StructuredContentOverviewID: "content-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Paper on Proofs", result.PaperTitle)
	assert.Equal(t, 2, result.PaperSections)
	require.Len(t, result.Disciplines, 1)
	assert.Equal(t, "Mathematics", result.Disciplines[0].Name)
	assert.Equal(t, 0.8, result.ConfidenceScore)
	assert.NotEmpty(t, result.DisciplineClassificationID)

	// Both phase snapshots land in the work directory.
	for _, name := range []string{"paper_content.json", "classification.json"} {
		_, statErr := os.Stat(filepath.Join(workDir, name))
		assert.NoError(t, statErr, "snapshot %s should exist", name)
	}
}

func TestRunFullOracleFailure(t *testing.T) {
	// Both oracle calls fail outright. The pipeline still returns a
	// complete, identified result built from the fixed fallbacks.
	workDir := t.TempDir()
	result, err := newTestPipeline(t, workDir, &phaseOracle{}, nil).Run(context.Background(), Input{
		StructuredContentOverviewID: "content-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Untitled Paper", result.PaperTitle)
	require.Len(t, result.Disciplines, 1)
	assert.Equal(t, 1, result.Disciplines[0].DisciplineID)
	assert.Equal(t, "Computer Science", result.Disciplines[0].Name)
	assert.Equal(t, 0.5, result.Disciplines[0].RelevanceScore)
	assert.Equal(t, 0.3, result.ConfidenceScore)
	assert.Equal(t, "Fallback classification due to processing error", result.ClassificationReasoning)
	assert.NotEmpty(t, result.DisciplineClassificationID)
}

func TestRunInputContract(t *testing.T) {
	_, err := newTestPipeline(t, t.TempDir(), &phaseOracle{}, nil).Run(context.Background(), Input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be provided")
}

func TestRunReplayParserPhase(t *testing.T) {
	workDir := t.TempDir()

	// Seed a parser snapshot; the stub store would report two sections, so
	// a three-section result proves the snapshot was used.
	saved := &types.PaperContent{
		Title: "Snapshot Paper",
		Sections: []types.PaperSection{
			{ID: "a", Name: "One", Order: 1},
			{ID: "b", Name: "Two", Order: 2},
			{ID: "c", Name: "Three", Order: 3},
		},
		StructuredContentOverviewID: "content-1",
	}
	require.NoError(t, SavePaperSnapshot(workDir, saved))

	o := &phaseOracle{
		classification: `{"disciplines": [{"id": 6, "score": 0.7}], "confidence": 0.6}`,
	}
	result, err := newTestPipeline(t, workDir, o, []string{PhaseParser}).Run(context.Background(), Input{
		StructuredContentOverviewID: "content-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Snapshot Paper", result.PaperTitle)
	assert.Equal(t, 3, result.PaperSections)
	require.Len(t, result.Disciplines, 1)
	assert.Equal(t, "Physics", result.Disciplines[0].Name)
}

func TestRunReplayClassifierPhase(t *testing.T) {
	workDir := t.TempDir()

	saved := &types.DisciplineClassification{
		Disciplines: []types.DisciplineResult{
			{DisciplineID: 22, Name: "Law", RelevanceScore: 0.9},
		},
		ConfidenceScore:            0.95,
		ClassificationReasoning:    "saved earlier",
		DisciplineClassificationID: "analysis-77",
	}
	require.NoError(t, SaveClassificationSnapshot(workDir, saved))

	o := &phaseOracle{
		features: `{"title": "Fresh Parse"}`,
	}
	result, err := newTestPipeline(t, workDir, o, []string{PhaseClassifier}).Run(context.Background(), Input{
		StructuredContentOverviewID: "content-1",
	})
	require.NoError(t, err)

	// The parse phase ran fresh while the classification came from disk.
	assert.Equal(t, "Fresh Parse", result.PaperTitle)
	assert.Equal(t, "analysis-77", result.DisciplineClassificationID)
	assert.Equal(t, 0.95, result.ConfidenceScore)
	require.Len(t, result.Disciplines, 1)
	assert.Equal(t, "Law", result.Disciplines[0].Name)
}

func TestRunReplayMissingSnapshot(t *testing.T) {
	_, err := newTestPipeline(t, t.TempDir(), &phaseOracle{}, []string{PhaseParser}).Run(context.Background(), Input{
		StructuredContentOverviewID: "content-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replaying parser phase")
}

func TestSnapshotRoundTrip(t *testing.T) {
	workDir := t.TempDir()

	paper := &types.PaperContent{
		Title:                       "Round Trip",
		Abstract:                    "abstract",
		Keywords:                    []string{"k1"},
		Sections:                    []types.PaperSection{{ID: "s1", Name: "Body", Type: types.SectionContent, Content: "text", Order: 1}},
		StructuredContentOverviewID: "content-1",
	}
	require.NoError(t, SavePaperSnapshot(workDir, paper))
	gotPaper, err := LoadPaperSnapshot(workDir)
	require.NoError(t, err)
	assert.Equal(t, paper, gotPaper)

	c := &types.DisciplineClassification{
		Disciplines:                []types.DisciplineResult{{DisciplineID: 2, Name: "Medicine", RelevanceScore: 0.8}},
		ConfidenceScore:            0.7,
		ClassificationReasoning:    "clinical",
		DisciplineClassificationID: "analysis-1",
	}
	require.NoError(t, SaveClassificationSnapshot(workDir, c))
	gotC, err := LoadClassificationSnapshot(workDir)
	require.NoError(t, err)
	assert.Equal(t, c, gotC)
}

func TestResultExpertRoles(t *testing.T) {
	r := &Result{Disciplines: []types.DisciplineResult{
		{DisciplineID: 17, Name: "Mathematics", RelevanceScore: 0.9},
		{DisciplineID: 6, Name: "Physics", RelevanceScore: 0.5},
	}}
	roles := r.ExpertRoles(5)
	require.Len(t, roles, 5)
	assert.Equal(t, "Statistical Methodologist", roles[2].Name)
	assert.Equal(t, "Formal Methods Expert", roles[3].Name)
}
