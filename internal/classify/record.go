// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/review-engine/internal/docstore"
	"github.com/pdiddy/review-engine/pkg/types"
)

// StoredDiscipline is one discipline entry in the persisted payload.
type StoredDiscipline struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	RelevanceScore float64 `json:"relevance_score"`
	Evidence       string  `json:"evidence"`
}

// StoragePayload is the content block written to the analysis store for a
// classification. Reconstructing a classification from it recovers every
// field except the store-assigned id, which the caller supplies.
type StoragePayload struct {
	Disciplines     []StoredDiscipline `json:"disciplines"`
	ConfidenceScore float64            `json:"confidence_score"`
	Reasoning       string             `json:"reasoning"`
	PaperTitle      string             `json:"paper_title"`
	Timestamp       string             `json:"timestamp"`
}

// NewStoragePayload converts a classification into its persisted form.
func NewStoragePayload(c *types.DisciplineClassification, paperTitle string) StoragePayload {
	disciplines := make([]StoredDiscipline, len(c.Disciplines))
	for i, d := range c.Disciplines {
		disciplines[i] = StoredDiscipline{
			ID:             d.DisciplineID,
			Name:           d.Name,
			RelevanceScore: d.RelevanceScore,
			Evidence:       d.Evidence,
		}
	}
	return StoragePayload{
		Disciplines:     disciplines,
		ConfidenceScore: c.ConfidenceScore,
		Reasoning:       c.ClassificationReasoning,
		PaperTitle:      paperTitle,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

// Classification reconstructs the classification carried by the payload.
func (p StoragePayload) Classification(id string) types.DisciplineClassification {
	disciplines := make([]types.DisciplineResult, len(p.Disciplines))
	for i, d := range p.Disciplines {
		disciplines[i] = types.DisciplineResult{
			DisciplineID:   d.ID,
			Name:           d.Name,
			RelevanceScore: d.RelevanceScore,
			Evidence:       d.Evidence,
		}
	}
	return types.DisciplineClassification{
		Disciplines:                disciplines,
		ConfidenceScore:            p.ConfidenceScore,
		ClassificationReasoning:    p.Reasoning,
		DisciplineClassificationID: id,
	}
}

// persist writes the classification to the analysis store: create an
// analysis record, write the payload as one content block, finalize.
// Only the create step is fatal; later failures are logged and the
// obtained id is still returned.
func (c *Classifier) persist(ctx context.Context, paper *types.PaperContent, classification *types.DisciplineClassification) (string, error) {
	c.log.Info("storing classification", zap.String("content_id", paper.StructuredContentOverviewID))

	title := paper.Title
	if len(title) > 100 {
		title = title[:100]
	}

	analysisID, err := c.store.CreateAnalysisOverview(ctx, AnalysisType,
		fmt.Sprintf("Discipline Classification: %s", title),
		"AI-generated discipline classification for academic paper",
		paper.StructuredContentOverviewID)
	if err != nil {
		return "", fmt.Errorf("creating analysis overview: %w", err)
	}

	err = c.store.CreateAnalysisSection(ctx, analysisID, docstore.AnalysisSection{
		Type:    "classification_result",
		Name:    "Discipline Classification",
		Order:   1,
		Content: NewStoragePayload(classification, paper.Title),
	})
	if err != nil {
		c.log.Warn("could not write classification section", zap.Error(err))
	}

	if err := c.store.CompleteAnalysisOverview(ctx, analysisID); err != nil {
		c.log.Warn("could not complete analysis", zap.Error(err))
	}

	c.log.Info("stored classification", zap.String("analysis_id", analysisID))
	return analysisID, nil
}
