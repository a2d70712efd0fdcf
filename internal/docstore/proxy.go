// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/review-engine/internal/httputil"
	"github.com/pdiddy/review-engine/pkg/types"
)

// ProxyStore talks to the remote document/analysis store through its HTTP
// proxy. Requests carry the proxy API key; 429 responses are retried with
// backoff.
type ProxyStore struct {
	baseURL    string
	apiKey     string
	client     *http.Client
	maxRetries int
}

// NewProxyStore builds a client for the store proxy at cfg.BaseURL.
func NewProxyStore(cfg types.StoreConfig) (*ProxyStore, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("proxy store requires a base URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ProxyStore{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		client:     &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
	}, nil
}

// doJSON performs one proxy request and decodes the JSON response into out
// when out is non-nil.
func (p *ProxyStore) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, p.client, req, p.maxRetries)
	if err != nil {
		return fmt.Errorf("calling store proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("store proxy returned %d for %s %s: %s", resp.StatusCode, method, path, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding store proxy response: %w", err)
	}
	return nil
}

// ListSections enumerates the sections of a structured content record.
func (p *ProxyStore) ListSections(ctx context.Context, contentID string) ([]SectionInfo, error) {
	var out struct {
		Sections []SectionInfo `json:"sections"`
	}
	path := fmt.Sprintf("/contents/%s/sections", url.PathEscape(contentID))
	if err := p.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Sections, nil
}

// GetSectionDetail returns one section's content payload.
func (p *ProxyStore) GetSectionDetail(ctx context.Context, sectionID string) (json.RawMessage, error) {
	var out struct {
		Content json.RawMessage `json:"content"`
	}
	path := fmt.Sprintf("/sections/%s", url.PathEscape(sectionID))
	if err := p.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Content, nil
}

// GetPages returns extracted page texts for a raw document.
func (p *ProxyStore) GetPages(ctx context.Context, fileID string, startPage, endPage int) (PageRange, error) {
	var out PageRange
	path := fmt.Sprintf("/files/%s/pages?start=%d&end=%d", url.PathEscape(fileID), startPage, endPage)
	if err := p.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return PageRange{}, err
	}
	return out, nil
}

// CreateContentOverview creates an empty structured content record.
func (p *ProxyStore) CreateContentOverview(ctx context.Context) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := p.doJSON(ctx, http.MethodPost, "/contents", struct{}{}, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("store proxy returned no content overview id")
	}
	return out.ID, nil
}

// CreateContentSection adds a section to a content record.
func (p *ProxyStore) CreateContentSection(ctx context.Context, contentID string, sec NewSection) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/contents/%s/sections", url.PathEscape(contentID))
	if err := p.doJSON(ctx, http.MethodPost, path, sec, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// CreateAnalysisOverview creates an analysis record.
func (p *ProxyStore) CreateAnalysisOverview(ctx context.Context, analysisType, title, description, linkedContentID string) (string, error) {
	body := map[string]string{
		"analysis_type":                  analysisType,
		"title":                          title,
		"description":                    description,
		"structured_content_overview_id": linkedContentID,
	}
	var out struct {
		AnalysisID string `json:"analysis_id"`
	}
	if err := p.doJSON(ctx, http.MethodPost, "/analyses", body, &out); err != nil {
		return "", err
	}
	if out.AnalysisID == "" {
		return "", fmt.Errorf("store proxy returned no analysis id")
	}
	return out.AnalysisID, nil
}

// CreateAnalysisSection writes one content block of an analysis.
func (p *ProxyStore) CreateAnalysisSection(ctx context.Context, analysisID string, sec AnalysisSection) error {
	path := fmt.Sprintf("/analyses/%s/sections", url.PathEscape(analysisID))
	return p.doJSON(ctx, http.MethodPost, path, sec, nil)
}

// CompleteAnalysisOverview finalizes an analysis record.
func (p *ProxyStore) CompleteAnalysisOverview(ctx context.Context, analysisID string) error {
	path := fmt.Sprintf("/analyses/%s/complete", url.PathEscape(analysisID))
	return p.doJSON(ctx, http.MethodPost, path, struct{}{}, nil)
}
