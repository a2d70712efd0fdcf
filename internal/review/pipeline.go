// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review orchestrates the two-phase classification pipeline:
// paper parsing followed by discipline classification, with per-phase
// snapshot replay for debugging.
package review

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/review-engine/internal/classify"
	"github.com/pdiddy/review-engine/internal/parse"
	"github.com/pdiddy/review-engine/internal/taxonomy"
	"github.com/pdiddy/review-engine/pkg/types"
)

// Phase names accepted in ReviewConfig.DebugPhases. Listing a phase means
// its saved snapshot is reused instead of re-running the phase.
const (
	PhaseParser     = "parser"
	PhaseClassifier = "classifier"
)

// Input identifies the paper to classify. At least one id must be set.
type Input struct {
	FileID                      string
	StructuredContentOverviewID string
}

// Result is the boundary payload surfaced to callers.
type Result struct {
	DisciplineClassificationID string                   `json:"discipline_classification_id"`
	Disciplines                []types.DisciplineResult `json:"disciplines"`
	ConfidenceScore            float64                  `json:"confidence_score"`
	ClassificationReasoning    string                   `json:"classification_reasoning"`
	PaperTitle                 string                   `json:"paper_title"`
	PaperSections              int                      `json:"paper_sections"`
}

// ExpertRoles derives the reviewer roster for this result's disciplines.
func (r *Result) ExpertRoles(target int) []types.ExpertRole {
	names := make([]string, len(r.Disciplines))
	for i, d := range r.Disciplines {
		names[i] = d.Name
	}
	return taxonomy.DeriveRoles(names, target)
}

// Pipeline runs parsing and classification as one causally sequential flow.
type Pipeline struct {
	parser     *parse.Parser
	classifier *classify.Classifier
	workDir    string
	skip       map[string]bool
	log        *zap.Logger
}

// NewPipeline wires the pipeline. debugPhases lists phases to replay from
// snapshots in workDir.
func NewPipeline(parser *parse.Parser, classifier *classify.Classifier, workDir string, debugPhases []string, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	skip := make(map[string]bool)
	for _, phase := range debugPhases {
		skip[phase] = true
	}
	return &Pipeline{
		parser:     parser,
		classifier: classifier,
		workDir:    workDir,
		skip:       skip,
		log:        log,
	}
}

// replay reports whether the phase should load its snapshot instead of
// running.
func (p *Pipeline) replay(phase string) bool {
	return p.skip[phase]
}

// Run executes the pipeline for one paper. The caller always receives
// either a complete classification (possibly a degraded default) or a
// single top-level error: the input contract violation, or a hard
// analysis-store create failure.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	if in.FileID == "" && in.StructuredContentOverviewID == "" {
		return nil, fmt.Errorf("either a file id or a structured content id must be provided")
	}

	var (
		paper *types.PaperContent
		err   error
	)
	if p.replay(PhaseParser) {
		p.log.Info("replaying parser snapshot")
		paper, err = LoadPaperSnapshot(p.workDir)
		if err != nil {
			return nil, fmt.Errorf("replaying parser phase: %w", err)
		}
	} else {
		paper, err = p.parser.Parse(ctx, in.FileID, in.StructuredContentOverviewID)
		if err != nil {
			return nil, err
		}
		if err := SavePaperSnapshot(p.workDir, paper); err != nil {
			p.log.Warn("could not save parser snapshot", zap.Error(err))
		}
	}
	p.log.Info("parsed paper",
		zap.String("title", paper.Title),
		zap.Int("sections", len(paper.Sections)))

	var classification *types.DisciplineClassification
	if p.replay(PhaseClassifier) {
		p.log.Info("replaying classifier snapshot")
		classification, err = LoadClassificationSnapshot(p.workDir)
		if err != nil {
			return nil, fmt.Errorf("replaying classifier phase: %w", err)
		}
	} else {
		classification, err = p.classifier.Classify(ctx, paper)
		if err != nil {
			return nil, err
		}
		if err := SaveClassificationSnapshot(p.workDir, classification); err != nil {
			p.log.Warn("could not save classifier snapshot", zap.Error(err))
		}
	}

	return &Result{
		DisciplineClassificationID: classification.DisciplineClassificationID,
		Disciplines:                classification.Disciplines,
		ConfidenceScore:            classification.ConfidenceScore,
		ClassificationReasoning:    classification.ClassificationReasoning,
		PaperTitle:                 paper.Title,
		PaperSections:              len(paper.Sections),
	}, nil
}
