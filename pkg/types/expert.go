// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ModelTier is a hint for which model class should back an expert reviewer.
type ModelTier string

const (
	TierPremium ModelTier = "premium"
	TierHigh    ModelTier = "high"
	TierLow     ModelTier = "low"
)

// ExpertRole is one reviewer persona assigned to evaluate a paper.
type ExpertRole struct {
	// ID is the 1-based position of the role in the roster.
	ID int `json:"id" yaml:"id"`

	Name string `json:"name" yaml:"name"`

	// Focus describes what this expert concentrates on.
	Focus string `json:"focus" yaml:"focus"`

	// Model is the tier hint for the backing model.
	Model ModelTier `json:"model" yaml:"model"`

	// IsDynamic reports whether the role was chosen from the detected
	// discipline rather than taken from the static generic roster.
	IsDynamic bool `json:"is_dynamic" yaml:"is_dynamic"`
}
