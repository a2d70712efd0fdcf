// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse turns stored paper content into a normalized PaperContent:
// it assembles ordered sections from the document store (or a raw document's
// pages), then extracts title, abstract, keywords, and classification
// features through the completion oracle with a heuristic fallback.
package parse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/review-engine/internal/docstore"
	"github.com/pdiddy/review-engine/internal/oracle"
	"github.com/pdiddy/review-engine/internal/prompts"
	"github.com/pdiddy/review-engine/pkg/types"
)

const (
	paperMarkdownFile = "paper_content.md"
	featuresFile      = "extracted_features.json"

	defaultPromptCharBudget = 50000

	rawSectionID   = "full_paper"
	rawSectionName = "Full Paper"
)

// Parser produces PaperContent from either a structured content id or a
// raw document id.
type Parser struct {
	store   docstore.ContentStore
	oracle  oracle.Oracle
	prompts *prompts.Registry
	cfg     types.ParseConfig
	log     *zap.Logger
}

// NewParser wires a Parser. The store may be nil when only pre-parsed
// snapshots will be replayed; Parse then fails for both input paths.
func NewParser(store docstore.ContentStore, o oracle.Oracle, reg *prompts.Registry, cfg types.ParseConfig, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{store: store, oracle: o, prompts: reg, cfg: cfg, log: log}
}

// Parse builds a PaperContent. A structured content id takes priority over
// a raw file id; supplying neither is the one input error that propagates.
func (p *Parser) Parse(ctx context.Context, fileID, contentID string) (*types.PaperContent, error) {
	if fileID == "" && contentID == "" {
		return nil, fmt.Errorf("either a file id or a structured content id must be provided")
	}
	if p.store == nil {
		return nil, fmt.Errorf("no content store configured")
	}

	var (
		sections []types.PaperSection
		err      error
	)
	if contentID != "" {
		p.log.Info("parsing from structured content", zap.String("content_id", contentID))
		sections, err = p.fromStructuredContent(ctx, contentID)
	} else {
		p.log.Info("parsing from raw document", zap.String("file_id", fileID))
		sections, contentID, err = p.fromRawDocument(ctx, fileID)
	}
	if err != nil {
		return nil, err
	}

	markdown := buildPaperMarkdown(sections)
	if err := p.writeScratch(paperMarkdownFile, []byte(markdown)); err != nil {
		p.log.Warn("could not save paper markdown", zap.Error(err))
	}

	features := p.extractFeatures(ctx, markdown)

	title := features.Title
	if title == "" {
		title = "Untitled Paper"
	}

	return &types.PaperContent{
		Title:                       title,
		Abstract:                    features.Abstract,
		Keywords:                    features.Keywords,
		Sections:                    sections,
		MethodologyTerms:            features.MethodologyTerms,
		DomainTerms:                 features.DomainTerms,
		PotentialDisciplines:        features.PotentialDisciplines,
		StructuredContentOverviewID: contentID,
		OriginalFileID:              fileID,
	}, nil
}

// fromStructuredContent lists the stored sections and fetches each
// section's detail. Detail fetches are independent, so they run
// concurrently; order is re-established afterward by the explicit
// ordering key. A section whose detail cannot be fetched is skipped
// with a warning.
func (p *Parser) fromStructuredContent(ctx context.Context, contentID string) ([]types.PaperSection, error) {
	infos, err := p.store.ListSections(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("listing content sections: %w", err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("no content sections found for %s", contentID)
	}
	p.log.Info("found sections", zap.Int("count", len(infos)))

	fetched := make([]*types.PaperSection, len(infos))
	g, gctx := errgroup.WithContext(ctx)
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			payload, err := p.store.GetSectionDetail(gctx, info.ID)
			if err != nil {
				p.log.Warn("skipping section: detail fetch failed",
					zap.String("section_id", info.ID), zap.Error(err))
				return nil
			}

			order := info.Order
			if order == 0 {
				order = i + 1
			}
			fetched[i] = &types.PaperSection{
				ID:      info.ID,
				Name:    info.Name,
				Type:    inferSectionType(info.Name, info.Type),
				Content: contentText(payload),
				Order:   order,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var sections []types.PaperSection
	for _, sec := range fetched {
		if sec != nil {
			sections = append(sections, *sec)
		}
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("all section detail fetches failed for %s", contentID)
	}

	types.SortSections(sections)
	return sections, nil
}

// fromRawDocument pulls the document's page texts, concatenates them into
// a single section, and persists that structure back to the store so later
// phases can reference it by id. The returned content id is the
// store-assigned overview id.
func (p *Parser) fromRawDocument(ctx context.Context, fileID string) ([]types.PaperSection, string, error) {
	probe, err := p.store.GetPages(ctx, fileID, 1, 1)
	if err != nil {
		return nil, "", fmt.Errorf("probing pages for %s: %w", fileID, err)
	}

	pages := probe.PageTexts
	if probe.TotalPages > 1 {
		full, err := p.store.GetPages(ctx, fileID, 1, probe.TotalPages)
		if err != nil {
			return nil, "", fmt.Errorf("fetching pages for %s: %w", fileID, err)
		}
		pages = full.PageTexts
	}
	if len(pages) == 0 {
		return nil, "", fmt.Errorf("no page text retrieved for %s", fileID)
	}
	p.log.Info("retrieved pages", zap.Int("count", len(pages)))

	section := types.PaperSection{
		ID:      rawSectionID,
		Name:    rawSectionName,
		Type:    types.SectionContent,
		Content: joinPages(pages),
		Order:   1,
	}

	overviewID, err := p.store.CreateContentOverview(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("creating content overview: %w", err)
	}

	sectionID, err := p.store.CreateContentSection(ctx, overviewID, docstore.NewSection{
		Type:  string(section.Type),
		Title: section.Name,
		Content: map[string]any{
			"text":         section.Content,
			"section_id":   section.ID,
			"section_type": string(section.Type),
		},
		Order: section.Order,
	})
	if err != nil {
		// The overview exists; a failed section write degrades to the
		// locally assigned section id.
		p.log.Warn("could not store section", zap.String("section", section.Name), zap.Error(err))
	} else if sectionID != "" {
		section.ID = sectionID
	}

	return []types.PaperSection{section}, overviewID, nil
}

// extractedFeatures is the JSON schema the extraction oracle writes.
type extractedFeatures struct {
	Title                string   `json:"title"`
	Abstract             string   `json:"abstract"`
	Keywords             []string `json:"keywords"`
	MethodologyTerms     []string `json:"methodology_terms"`
	DomainTerms          []string `json:"domain_terms"`
	PotentialDisciplines []string `json:"potential_disciplines"`
}

// extractFeatures asks the oracle for structured features, falling back to
// heuristic extraction on any failure. The document text is truncated, not
// resampled, to the configured character budget.
func (p *Parser) extractFeatures(ctx context.Context, markdown string) extractedFeatures {
	budget := p.cfg.PromptCharBudget
	if budget <= 0 {
		budget = defaultPromptCharBudget
	}
	if len(markdown) > budget {
		markdown = markdown[:budget]
	}

	outputPath := filepath.Join(p.cfg.WorkDir, featuresFile)
	prompt, err := p.prompts.Render(prompts.KeyPaperContentExtraction, struct {
		PaperSections string
		OutputFile    string
	}{PaperSections: markdown, OutputFile: outputPath})
	if err != nil {
		p.log.Warn("rendering extraction prompt failed, using heuristic extraction", zap.Error(err))
		return heuristicExtract(markdown)
	}

	outcome := oracle.Invoke(ctx, p.oracle, prompt, outputPath)
	if !outcome.OK() {
		p.log.Warn("feature extraction oracle unusable, using heuristic extraction",
			zap.Stringer("status", outcome.Status), zap.Error(outcome.Err))
		return heuristicExtract(markdown)
	}

	var features extractedFeatures
	if err := outcome.Decode(&features); err != nil {
		p.log.Warn("feature extraction output did not match schema, using heuristic extraction", zap.Error(err))
		return heuristicExtract(markdown)
	}
	return features
}

func (p *Parser) writeScratch(name string, data []byte) error {
	if p.cfg.WorkDir == "" {
		return nil
	}
	if err := os.MkdirAll(p.cfg.WorkDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.cfg.WorkDir, name), data, 0o644)
}
