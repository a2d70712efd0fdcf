// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"fmt"

	"github.com/pdiddy/review-engine/pkg/types"
)

// expertMapping lists suggested expert role names per discipline, in
// priority order (first = primary). Only curated disciplines carry a full
// five-role roster; the rest get the generic roster nudged toward the
// domain via slot patching.
var expertMapping = map[string][]string{
	// STEM sciences
	"Computer Science": {
		"Algorithm & Complexity Expert",
		"Experimental Design Expert",
		"Systems & Implementation Expert",
		"Related Work & Novelty Expert",
		"Clarity & Presentation Expert",
	},
	"Mathematics":       {"Statistical Methodologist", "Formal Methods Expert"},
	"Physics":           {"Theoretical Physicist", "Experimental Methodologist"},
	"Engineering":       {"Systems Engineering Expert", "Technical Reviewer"},
	"Chemistry":         {"Analytical Chemistry Expert", "Experimental Methodologist"},
	"Biology":           {"Molecular Biology Expert", "Bioinformatics Specialist"},
	"Materials Science": {"Materials Characterization Expert", "Experimental Methodologist"},

	// Medical and life sciences
	"Medicine":                       {"Clinical Research Expert", "Biostatistician"},
	"Environmental Science":          {"Environmental Impact Assessor", "Ecological Methodologist"},
	"Agricultural and Food Sciences": {"Agricultural Research Expert", "Food Safety Specialist"},

	// Social sciences
	"Economics":         {"Empirical Economics Scholar", "Causal Inference Expert"},
	"Business":          {"Management Research Expert", "Quantitative Finance Specialist"},
	"Psychology":        {"Experimental Psychology Expert", "Statistical Methodologist"},
	"Sociology":         {"Qualitative Research Expert", "Social Statistics Specialist"},
	"Political Science": {"Policy Analysis Expert", "Comparative Politics Scholar"},
	"Education":         {"Educational Research Methodologist", "Assessment Specialist"},

	// Humanities
	"Philosophy":  {"Philosophical Argumentation Expert", "Logic Specialist"},
	"History":     {"Historical Research Methodologist", "Archival Expert"},
	"Art":         {"Art Criticism Expert", "Aesthetic Theory Specialist"},
	"Linguistics": {"Linguistic Analysis Expert", "Corpus Linguistics Specialist"},
	"Law":         {"Legal Research Expert", "Case Analysis Specialist"},
	"Geography":   {"Spatial Analysis Expert", "GIS Methodologist"},
	"Geology":     {"Geological Analysis Expert", "Field Methods Specialist"},
}

// expertFocus gives per-discipline focus descriptions keyed by role name.
// Roles without an entry get a generated default focus.
var expertFocus = map[string]map[string]string{
	"Computer Science": {
		"Algorithm & Complexity Expert":   "Algorithm correctness, computational complexity, theoretical analysis, proof validity",
		"Experimental Design Expert":      "Benchmark selection, baseline fairness, ablation studies, hyperparameter sensitivity, statistical significance",
		"Systems & Implementation Expert": "Code quality, reproducibility, scalability, engineering practices, open-source availability",
		"Related Work & Novelty Expert":   "Literature coverage, novelty claims, fair comparison with prior work, contribution clarity",
		"Clarity & Presentation Expert":   "Writing quality, figure clarity, notation consistency, logical flow",
	},
	"Engineering": {
		"Systems Engineering Expert": "System design, architecture validity, integration aspects",
		"Technical Reviewer":         "Implementation feasibility, engineering constraints, practical applicability",
		"Domain Expert":              "Domain-specific requirements, standards compliance",
		"Experimental Methodologist": "Testing methodology, validation procedures, measurement accuracy",
		"Integration Specialist":     "Overall coherence, cross-system compatibility",
	},
}

// roster is the fixed five-slot default roster with named positions, so the
// "patch slot 3 and 4 only" rule reads directly off the field names.
type roster struct {
	Methodology  types.ExpertRole // position 1
	Technical    types.ExpertRole // position 2
	Domain       types.ExpertRole // position 3, patched from discipline mapping
	RelatedWork  types.ExpertRole // position 4, patched from discipline mapping
	Presentation types.ExpertRole // position 5
}

// slice returns the roster positions in order.
func (r roster) slice() []types.ExpertRole {
	return []types.ExpertRole{r.Methodology, r.Technical, r.Domain, r.RelatedWork, r.Presentation}
}

// defaultRoster returns a fresh copy of the generic five-role roster used
// when no discipline-specific roster applies.
func defaultRoster() roster {
	return roster{
		Methodology: types.ExpertRole{
			ID:        1,
			Name:      "Methodology Expert",
			Focus:     "Research methodology, experimental design, validity of approach",
			Model:     types.TierHigh,
			IsDynamic: true,
		},
		Technical: types.ExpertRole{
			ID:        2,
			Name:      "Technical Expert",
			Focus:     "Technical soundness, implementation details, reproducibility",
			Model:     types.TierHigh,
			IsDynamic: true,
		},
		Domain: types.ExpertRole{
			ID:        3,
			Name:      "Domain Expert",
			Focus:     "Domain knowledge, literature integration, theoretical foundation",
			Model:     types.TierHigh,
			IsDynamic: true,
		},
		RelatedWork: types.ExpertRole{
			ID:        4,
			Name:      "Related Work Expert",
			Focus:     "Literature coverage, novelty assessment, positioning",
			Model:     types.TierLow,
			IsDynamic: true,
		},
		Presentation: types.ExpertRole{
			ID:        5,
			Name:      "Presentation Expert",
			Focus:     "Clarity, logical coherence, writing quality",
			Model:     types.TierLow,
			IsDynamic: true,
		},
	}
}

// tierForPosition returns the model tier for a 0-based roster position:
// high for the first three slots, low from the fourth on.
func tierForPosition(i int) types.ModelTier {
	pattern := []types.ModelTier{
		types.TierHigh, types.TierHigh, types.TierHigh,
		types.TierLow, types.TierLow,
	}
	if i < len(pattern) {
		return pattern[i]
	}
	return types.TierLow
}

// DefaultRoleCount is the standard size of a review roster.
const DefaultRoleCount = 5

// DeriveRoles maps a ranked discipline-name list to an ordered roster of
// expert roles. Disciplines with five or more mapped role names get a full
// bespoke roster; sparser disciplines get the generic roster with only
// positions 3 and 4 replaced by the discipline's top mapped roles. An empty
// name list returns the generic roster unchanged.
func DeriveRoles(disciplineNames []string, target int) []types.ExpertRole {
	if target <= 0 {
		target = DefaultRoleCount
	}

	if len(disciplineNames) == 0 {
		return truncate(defaultRoster().slice(), target)
	}

	primary := disciplineNames[0]
	suggested := expertMapping[primary]
	focus := expertFocus[primary]

	if len(suggested) >= DefaultRoleCount {
		if len(suggested) > target {
			suggested = suggested[:target]
		}
		experts := make([]types.ExpertRole, 0, len(suggested))
		for i, name := range suggested {
			f, ok := focus[name]
			if !ok {
				f = fmt.Sprintf("Expert analysis from %s perspective for %s", name, primary)
			}
			experts = append(experts, types.ExpertRole{
				ID:        i + 1,
				Name:      name,
				Focus:     f,
				Model:     tierForPosition(i),
				IsDynamic: true,
			})
		}
		return experts
	}

	r := defaultRoster()
	if len(suggested) >= 1 {
		r.Domain = types.ExpertRole{
			ID:        3,
			Name:      suggested[0],
			Focus:     fmt.Sprintf("Domain expertise in %s", primary),
			Model:     types.TierHigh,
			IsDynamic: true,
		}
	}
	if len(suggested) >= 2 {
		r.RelatedWork = types.ExpertRole{
			ID:        4,
			Name:      suggested[1],
			Focus:     fmt.Sprintf("Technical expertise related to %s", primary),
			Model:     types.TierLow,
			IsDynamic: true,
		}
	}
	return truncate(r.slice(), target)
}

// RolesFor looks up the mapped role names for a discipline. The second
// return reports whether the discipline has a curated mapping.
func RolesFor(discipline string) ([]string, bool) {
	roles, ok := expertMapping[discipline]
	return roles, ok
}

func truncate(roles []types.ExpertRole, target int) []types.ExpertRole {
	if len(roles) > target {
		return roles[:target]
	}
	return roles
}
