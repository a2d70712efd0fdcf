// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"sort"
	"strings"
)

// SectionType is the inferred semantic role of a paper section.
type SectionType string

const (
	SectionIntroduction SectionType = "introduction"
	SectionMethods      SectionType = "methods"
	SectionResults      SectionType = "results"
	SectionDiscussion   SectionType = "discussion"
	SectionConclusion   SectionType = "conclusion"
	SectionAbstract     SectionType = "abstract"
	SectionReferences   SectionType = "references"
	SectionAppendix     SectionType = "appendix"
	SectionContent      SectionType = "content"
)

// PaperSection is one named, ordered section of an academic paper.
// Order defines the total order for every textual reconstruction of the
// paper; ties keep original insertion order.
type PaperSection struct {
	// ID is assigned by the document store. It may be rewritten once a
	// store-assigned id becomes known.
	ID string `json:"section_id" yaml:"section_id"`

	// Name is the display heading of the section.
	Name string `json:"section_name" yaml:"section_name"`

	// Type is the inferred semantic type; SectionContent when nothing matches.
	Type SectionType `json:"section_type" yaml:"section_type"`

	// Content is the section body as Markdown.
	Content string `json:"content" yaml:"content"`

	// Order is the integer ordering key.
	Order int `json:"section_order" yaml:"section_order"`
}

// PaperContent is the normalized representation of a parsed paper,
// produced by the parse stage and read-only thereafter.
type PaperContent struct {
	Title    string   `json:"title" yaml:"title"`
	Abstract string   `json:"abstract" yaml:"abstract"`
	Keywords []string `json:"keywords" yaml:"keywords"`

	Sections []PaperSection `json:"sections" yaml:"sections"`

	// Extracted features feeding discipline classification.
	MethodologyTerms     []string `json:"methodology_terms" yaml:"methodology_terms"`
	DomainTerms          []string `json:"domain_terms" yaml:"domain_terms"`
	PotentialDisciplines []string `json:"potential_disciplines" yaml:"potential_disciplines"`

	// StructuredContentOverviewID identifies the stored structured content,
	// when any. At least one of it and OriginalFileID must be present.
	StructuredContentOverviewID string `json:"structured_content_overview_id" yaml:"structured_content_overview_id"`
	OriginalFileID              string `json:"original_file_id,omitempty" yaml:"original_file_id,omitempty"`
}

// SortSections orders sections by their ordering key, preserving insertion
// order among equal keys.
func SortSections(sections []PaperSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
}

// FullText reconstructs the complete paper text for analysis: title,
// abstract, keywords, then each section in ordering-key order prefixed
// by its heading.
func (p *PaperContent) FullText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n## Abstract\n%s\n\n", p.Title, p.Abstract)
	if len(p.Keywords) > 0 {
		fmt.Fprintf(&sb, "**Keywords**: %s\n\n", strings.Join(p.Keywords, ", "))
	}
	ordered := make([]PaperSection, len(p.Sections))
	copy(ordered, p.Sections)
	SortSections(ordered)
	for _, sec := range ordered {
		fmt.Fprintf(&sb, "## %s\n%s\n\n", sec.Name, sec.Content)
	}
	return sb.String()
}
