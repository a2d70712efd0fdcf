// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oracle abstracts the text-completion service that backs feature
// extraction and discipline classification. The service is opaque and
// unreliable: it may fail outright, write nothing, or write malformed
// JSON. Callers receive a tagged Outcome rather than an error so every
// failure mode has an explicit fallback path.
package oracle

import (
	"context"
	"encoding/json"
	"os"
)

// Oracle runs one completion and writes the result to outputPath.
// Implementations make a single attempt; retry policy belongs to no one.
type Oracle interface {
	Complete(ctx context.Context, prompt, outputPath string) error
}

// Status tags the result of an oracle invocation.
type Status int

const (
	// StatusOK means the output artifact exists and decoded cleanly.
	StatusOK Status = iota
	// StatusMissingOutput means no artifact was written.
	StatusMissingOutput
	// StatusMalformedOutput means the artifact exists but is not valid JSON.
	StatusMalformedOutput
	// StatusFailed means the oracle call itself returned an error.
	StatusFailed
)

// String returns the tag name for logging.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissingOutput:
		return "missing_output"
	case StatusMalformedOutput:
		return "malformed_output"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of one oracle invocation.
type Outcome struct {
	Status Status
	// Raw is the artifact contents when Status is StatusOK or
	// StatusMalformedOutput.
	Raw []byte
	// Err records the failure when Status is StatusFailed.
	Err error
}

// OK reports whether the invocation produced a usable artifact.
func (o Outcome) OK() bool { return o.Status == StatusOK }

// Decode unmarshals the artifact into v. Only valid when OK.
func (o Outcome) Decode(v any) error {
	return json.Unmarshal(o.Raw, v)
}

// Invoke runs the oracle and reads back the artifact it was asked to
// write. The artifact must be a JSON document; anything else is tagged
// StatusMalformedOutput. An oracle error still falls through to the
// artifact check, since a partial run may have produced usable output.
func Invoke(ctx context.Context, o Oracle, prompt, outputPath string) Outcome {
	callErr := o.Complete(ctx, prompt, outputPath)

	raw, err := os.ReadFile(outputPath)
	if err != nil {
		if callErr != nil {
			return Outcome{Status: StatusFailed, Err: callErr}
		}
		return Outcome{Status: StatusMissingOutput}
	}

	if !json.Valid(raw) {
		return Outcome{Status: StatusMalformedOutput, Raw: raw}
	}
	return Outcome{Status: StatusOK, Raw: raw}
}
