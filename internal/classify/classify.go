// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify turns a parsed paper into a bounded, confidence-scored
// discipline classification. The classification oracle is treated as
// unreliable: its output is parsed defensively, validated against the
// taxonomy, and replaced by fixed fallbacks whenever nothing usable
// survives.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/review-engine/internal/docstore"
	"github.com/pdiddy/review-engine/internal/oracle"
	"github.com/pdiddy/review-engine/internal/prompts"
	"github.com/pdiddy/review-engine/internal/taxonomy"
	"github.com/pdiddy/review-engine/pkg/types"
)

const (
	// AnalysisType labels stored classification analyses.
	AnalysisType = "discipline_classification"

	classificationFile = "discipline_classification.json"
	resultFile         = "discipline_result.json"

	defaultConfidence  = 0.7
	fallbackConfidence = 0.3
)

// Classifier runs discipline classification for parsed papers.
type Classifier struct {
	oracle  oracle.Oracle
	store   docstore.AnalysisStore
	prompts *prompts.Registry
	cfg     types.ClassifyConfig
	log     *zap.Logger
}

// NewClassifier wires a Classifier. A nil store disables persistence;
// classifications then receive locally generated ids.
func NewClassifier(o oracle.Oracle, store docstore.AnalysisStore, reg *prompts.Registry, cfg types.ClassifyConfig, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{oracle: o, store: store, prompts: reg, cfg: cfg, log: log}
}

// Classify produces a DisciplineClassification for the paper. Every oracle
// failure degrades to a fallback classification; the only error returned
// is a hard failure creating the analysis record when persistence is
// attempted.
func (c *Classifier) Classify(ctx context.Context, paper *types.PaperContent) (*types.DisciplineClassification, error) {
	outputPath := filepath.Join(c.cfg.WorkDir, classificationFile)

	prompt, err := c.buildPrompt(paper, outputPath)
	if err != nil {
		return nil, fmt.Errorf("building classification prompt: %w", err)
	}

	outcome := oracle.Invoke(ctx, c.oracle, prompt, outputPath)
	classification := c.parseOutcome(outcome)

	// Independent second check, run unconditionally, fallback output included.
	validated := Validate(*classification, c.log)
	classification = &validated

	c.log.Info("classified paper",
		zap.Int("disciplines", len(classification.Disciplines)),
		zap.Strings("names", classification.DisciplineNames()),
		zap.Float64("confidence", classification.ConfidenceScore))

	if err := c.assignID(ctx, paper, classification); err != nil {
		return nil, err
	}

	if data, err := json.MarshalIndent(classification, "", "  "); err == nil {
		if err := c.writeScratch(resultFile, data); err != nil {
			c.log.Warn("could not save classification result", zap.Error(err))
		}
	}

	return classification, nil
}

// promptData carries the template fields for the classifier prompt. Empty
// inputs are replaced by explicit placeholders so the oracle never sees a
// blank field.
type promptData struct {
	DisciplineList       string
	KeywordSection       string
	PaperTitle           string
	PaperAbstract        string
	PaperKeywords        string
	MethodologyTerms     string
	DomainTerms          string
	PotentialDisciplines string
	OutputFile           string
}

func (c *Classifier) buildPrompt(paper *types.PaperContent, outputPath string) (string, error) {
	return c.prompts.Render(prompts.KeyDisciplineClassifier, promptData{
		DisciplineList:       taxonomy.RenderTable(),
		KeywordSection:       taxonomy.RenderKeywordDigest(),
		PaperTitle:           paper.Title,
		PaperAbstract:        paper.Abstract,
		PaperKeywords:        joinOr(paper.Keywords, "Not specified"),
		MethodologyTerms:     joinOr(paper.MethodologyTerms, "Not extracted"),
		DomainTerms:          joinOr(paper.DomainTerms, "Not extracted"),
		PotentialDisciplines: joinOr(paper.PotentialDisciplines, "Not identified"),
		OutputFile:           outputPath,
	})
}

func joinOr(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return strings.Join(values, ", ")
}

// oracleClassification is the JSON schema the classification oracle writes.
// Confidence is a pointer so an absent field can default rather than clamp.
type oracleClassification struct {
	Disciplines []oracleDiscipline `json:"disciplines"`
	Confidence  *float64           `json:"confidence"`
	Reasoning   string             `json:"reasoning"`
}

type oracleDiscipline struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Evidence string  `json:"evidence"`
}

// parseOutcome converts the oracle invocation outcome into a
// classification: unusable output yields the fixed fallback; otherwise
// entries with unresolvable ids are dropped silently, names are replaced
// by canonical ones, scores are clamped, and the survivors are sorted and
// truncated to MaxDisciplines.
func (c *Classifier) parseOutcome(outcome oracle.Outcome) *types.DisciplineClassification {
	if !outcome.OK() {
		c.log.Warn("classification output unusable, using fallback",
			zap.Stringer("status", outcome.Status), zap.Error(outcome.Err))
		return fallbackClassification()
	}

	var parsed oracleClassification
	if err := outcome.Decode(&parsed); err != nil {
		c.log.Warn("classification output did not match schema, using fallback", zap.Error(err))
		return fallbackClassification()
	}

	var results []types.DisciplineResult
	for _, d := range parsed.Disciplines {
		def, ok := taxonomy.ByID(d.ID)
		if !ok {
			continue
		}
		results = append(results, types.DisciplineResult{
			DisciplineID:   d.ID,
			Name:           def.Name,
			RelevanceScore: types.Clamp01(d.Score),
			Evidence:       d.Evidence,
		})
	}

	if len(results) == 0 {
		results = []types.DisciplineResult{defaultDiscipline("Default classification")}
	}

	types.SortDisciplines(results)
	if len(results) > types.MaxDisciplines {
		results = results[:types.MaxDisciplines]
	}

	confidence := defaultConfidence
	if parsed.Confidence != nil {
		confidence = types.Clamp01(*parsed.Confidence)
	}

	return &types.DisciplineClassification{
		Disciplines:             results,
		ConfidenceScore:         confidence,
		ClassificationReasoning: parsed.Reasoning,
	}
}

// defaultDiscipline is the single-entry substitution used when no valid
// discipline survives; the evidence text distinguishes the code path that
// produced it.
func defaultDiscipline(evidence string) types.DisciplineResult {
	return types.DisciplineResult{
		DisciplineID:   1,
		Name:           "Computer Science",
		RelevanceScore: 0.5,
		Evidence:       evidence,
	}
}

// fallbackClassification is returned when the oracle produced no usable
// artifact at all.
func fallbackClassification() *types.DisciplineClassification {
	return &types.DisciplineClassification{
		Disciplines: []types.DisciplineResult{
			defaultDiscipline("Fallback due to classification failure"),
		},
		ConfidenceScore:         fallbackConfidence,
		ClassificationReasoning: "Fallback classification due to processing error",
	}
}

// Validate re-resolves each result's discipline id against the taxonomy,
// drops entries that fail with a warning, reasserts canonical names, and
// substitutes the single default entry when nothing survives. Running it
// on an already-validated classification yields an identical result.
func Validate(c types.DisciplineClassification, log *zap.Logger) types.DisciplineClassification {
	if log == nil {
		log = zap.NewNop()
	}

	validated := make([]types.DisciplineResult, 0, len(c.Disciplines))
	for _, d := range c.Disciplines {
		def, ok := taxonomy.ByID(d.DisciplineID)
		if !ok {
			log.Warn("dropping result with invalid discipline id", zap.Int("discipline_id", d.DisciplineID))
			continue
		}
		d.Name = def.Name
		validated = append(validated, d)
	}

	if len(validated) == 0 {
		validated = []types.DisciplineResult{defaultDiscipline("Fallback classification")}
	}

	c.Disciplines = validated
	return c
}

// assignID persists the classification when a store is configured and the
// paper carries a structured content id, adopting the store-assigned id.
// Otherwise a locally generated id is used; a missing content id while
// storage is enabled means storage is skipped, not an error.
func (c *Classifier) assignID(ctx context.Context, paper *types.PaperContent, classification *types.DisciplineClassification) error {
	storing := c.store != nil && c.cfg.StoreResults
	if storing && paper.StructuredContentOverviewID != "" {
		id, err := c.persist(ctx, paper, classification)
		if err != nil {
			return err
		}
		classification.DisciplineClassificationID = id
		return nil
	}
	if storing {
		c.log.Info("skipping classification storage (no structured content id)")
	}
	classification.DisciplineClassificationID = uuid.NewString()
	return nil
}

func (c *Classifier) writeScratch(name string, data []byte) error {
	if c.cfg.WorkDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.cfg.WorkDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.cfg.WorkDir, name), data, 0o644)
}
