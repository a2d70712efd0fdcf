// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

// typeRule pairs a section type with the name keywords that indicate it.
// Rules are checked in order; the first match wins.
type typeRule struct {
	sectionType types.SectionType
	keywords    []string
}

var typeRules = []typeRule{
	{types.SectionIntroduction, []string{"introduction", "intro", "background"}},
	{types.SectionMethods, []string{"method", "methodology", "approach", "materials and methods"}},
	{types.SectionResults, []string{"result", "finding", "experiment"}},
	{types.SectionDiscussion, []string{"discussion", "analysis"}},
	{types.SectionConclusion, []string{"conclusion", "summary", "concluding"}},
	{types.SectionAbstract, []string{"abstract"}},
	{types.SectionReferences, []string{"reference", "bibliography", "citation"}},
	{types.SectionAppendix, []string{"appendix", "supplementary"}},
}

// inferSectionType infers a section's semantic type from its display name
// by case-insensitive substring match. When nothing matches, the
// store-declared type is kept, defaulting to content.
func inferSectionType(name, declared string) types.SectionType {
	lower := strings.ToLower(name)
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.sectionType
			}
		}
	}
	if declared != "" {
		return types.SectionType(declared)
	}
	return types.SectionContent
}

// textKeys are tried in priority order when a section payload is a mapping.
var textKeys = []string{"markdown", "text", "value", "raw_content", "paragraph"}

// contentText extracts section body text from a store payload. The payload
// may be a bare JSON string or an object; objects are probed by keys in
// priority order, and as a last resort all non-private keys are
// concatenated as "key: value" lines.
func contentText(payload json.RawMessage) string {
	var asString string
	if err := json.Unmarshal(payload, &asString); err == nil {
		return asString
	}

	var asMap map[string]any
	if err := json.Unmarshal(payload, &asMap); err != nil {
		return string(payload)
	}

	for _, key := range textKeys {
		if v, ok := asMap[key]; ok {
			return fmt.Sprintf("%v", v)
		}
	}

	keys := make([]string, 0, len(asMap))
	for key := range asMap {
		if !strings.HasPrefix(key, "_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("**%s**: %v", key, asMap[key]))
	}
	return strings.Join(parts, "\n")
}

// buildPaperMarkdown reconstructs the full paper text: sections joined in
// ordering-key order, each prefixed by its display name.
func buildPaperMarkdown(sections []types.PaperSection) string {
	ordered := make([]types.PaperSection, len(sections))
	copy(ordered, sections)
	types.SortSections(ordered)

	var sb strings.Builder
	for _, sec := range ordered {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", sec.Name, sec.Content)
	}
	return sb.String()
}

// joinPages concatenates page texts with blank-line separators.
func joinPages(pages []string) string {
	return strings.Join(pages, "\n\n")
}

// abstractScanWindow bounds how many lines after the "abstract" marker are
// collected by heuristic extraction.
const abstractScanWindow = 20

// heuristicExtract recovers a title and abstract without the oracle: the
// first heading line becomes the title, and the lines following the first
// line containing "abstract" (up to the next heading, at most
// abstractScanWindow lines) become the abstract. All other feature lists
// stay empty.
func heuristicExtract(markdown string) extractedFeatures {
	lines := strings.Split(markdown, "\n")

	var title, abstract string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if title == "" && strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(trimmed[2:])
			continue
		}
		if strings.Contains(strings.ToLower(trimmed), "abstract") {
			var collected []string
			for j := i + 1; j < len(lines) && j <= i+abstractScanWindow; j++ {
				if strings.HasPrefix(lines[j], "#") {
					break
				}
				collected = append(collected, lines[j])
			}
			abstract = strings.TrimSpace(strings.Join(collected, "\n"))
			break
		}
	}

	return extractedFeatures{
		Title:                title,
		Abstract:             abstract,
		Keywords:             []string{},
		MethodologyTerms:     []string{},
		DomainTerms:          []string{},
		PotentialDisciplines: []string{},
	}
}
