// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/review-engine/pkg/types"
)

// Snapshot filenames within the pipeline work directory.
const (
	paperSnapshotFile          = "paper_content.json"
	classificationSnapshotFile = "classification.json"
)

// SavePaperSnapshot writes the parsed paper to the work directory so the
// parser phase can be replayed later.
func SavePaperSnapshot(workDir string, paper *types.PaperContent) error {
	return writeSnapshot(filepath.Join(workDir, paperSnapshotFile), paper)
}

// LoadPaperSnapshot reloads a previously saved parse result.
func LoadPaperSnapshot(workDir string) (*types.PaperContent, error) {
	var paper types.PaperContent
	if err := readSnapshot(filepath.Join(workDir, paperSnapshotFile), &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// SaveClassificationSnapshot writes the classification to the work
// directory so the classifier phase can be replayed later.
func SaveClassificationSnapshot(workDir string, c *types.DisciplineClassification) error {
	return writeSnapshot(filepath.Join(workDir, classificationSnapshotFile), c)
}

// LoadClassificationSnapshot reloads a previously saved classification.
func LoadClassificationSnapshot(workDir string) (*types.DisciplineClassification, error) {
	var c types.DisciplineClassification
	if err := readSnapshot(filepath.Join(workDir, classificationSnapshotFile), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func writeSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func readSnapshot(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return nil
}
