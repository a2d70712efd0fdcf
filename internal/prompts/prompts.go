// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompts manages the prompt templates sent to the completion
// oracle. Templates live in an embedded YAML file keyed by prompt name;
// each entry carries the template text plus model and temperature hints.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"go.yaml.in/yaml/v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Keys of the prompts this registry must provide.
const (
	KeyPaperContentExtraction = "paper_content_extraction"
	KeyDisciplineClassifier   = "discipline_classifier"
)

// entry is one prompt definition as stored in templates.yaml.
type entry struct {
	Description string  `yaml:"description"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	Template    string  `yaml:"template"`
}

// Registry holds parsed prompt templates.
type Registry struct {
	entries   map[string]entry
	templates map[string]*template.Template
}

// Load parses the embedded template file into a Registry.
func Load() (*Registry, error) {
	var entries map[string]entry
	if err := yaml.Unmarshal(templatesYAML, &entries); err != nil {
		return nil, fmt.Errorf("parsing prompt templates: %w", err)
	}

	r := &Registry{
		entries:   entries,
		templates: make(map[string]*template.Template, len(entries)),
	}
	for key, e := range entries {
		if e.Template == "" {
			return nil, fmt.Errorf("prompt %q has no template", key)
		}
		tmpl, err := template.New(key).Parse(e.Template)
		if err != nil {
			return nil, fmt.Errorf("parsing prompt %q: %w", key, err)
		}
		r.templates[key] = tmpl
	}
	return r, nil
}

// Render executes the named template with the given data.
func (r *Registry) Render(key string, data any) (string, error) {
	tmpl, ok := r.templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt %q: %w", key, err)
	}
	return buf.String(), nil
}

// Description returns the description recorded for a prompt key.
func (r *Registry) Description(key string) string {
	return r.entries[key].Description
}

// Model returns the model hint for a prompt key, defaulting to "high".
func (r *Registry) Model(key string) string {
	if e, ok := r.entries[key]; ok && e.Model != "" {
		return e.Model
	}
	return "high"
}

// Temperature returns the temperature hint for a prompt key, defaulting to 0.3.
func (r *Registry) Temperature(key string) float64 {
	if e, ok := r.entries[key]; ok && e.Temperature != 0 {
		return e.Temperature
	}
	return 0.3
}
