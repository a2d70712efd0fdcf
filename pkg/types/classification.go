// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// MaxDisciplines caps how many disciplines a classification may carry.
const MaxDisciplines = 3

// DisciplineResult is a single discipline match for a paper. Name is always
// the canonical name from the taxonomy, never the classifier's own spelling.
type DisciplineResult struct {
	DisciplineID int `json:"discipline_id" yaml:"discipline_id"`

	Name string `json:"name" yaml:"name"`

	// RelevanceScore is clamped to [0,1].
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// Evidence is supporting text quoted or paraphrased from the paper.
	// May be empty.
	Evidence string `json:"evidence" yaml:"evidence"`
}

// DisciplineClassification is the complete classification of one paper:
// between one and MaxDisciplines results sorted by descending relevance.
type DisciplineClassification struct {
	Disciplines []DisciplineResult `json:"disciplines" yaml:"disciplines"`

	// ConfidenceScore is the overall certainty, clamped to [0,1].
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	ClassificationReasoning string `json:"classification_reasoning" yaml:"classification_reasoning"`

	// DisciplineClassificationID is empty until the analysis store assigns
	// an id, or a locally generated unique id when no store is used.
	DisciplineClassificationID string `json:"discipline_classification_id" yaml:"discipline_classification_id"`
}

// Primary returns the highest-scoring discipline, or false when none exist.
func (c *DisciplineClassification) Primary() (DisciplineResult, bool) {
	if len(c.Disciplines) == 0 {
		return DisciplineResult{}, false
	}
	best := c.Disciplines[0]
	for _, d := range c.Disciplines[1:] {
		if d.RelevanceScore > best.RelevanceScore {
			best = d
		}
	}
	return best, true
}

// DisciplineNames returns the discipline names in stored (ranked) order.
func (c *DisciplineClassification) DisciplineNames() []string {
	names := make([]string, len(c.Disciplines))
	for i, d := range c.Disciplines {
		names[i] = d.Name
	}
	return names
}

// SortDisciplines orders results by descending relevance score, preserving
// the original order among equal scores.
func SortDisciplines(results []DisciplineResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}

// Clamp01 restricts v to the [0,1] interval.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
