// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oracle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedOracle writes a fixed artifact (or nothing) and returns a fixed
// error, so Invoke's tagging can be exercised per failure mode.
type scriptedOracle struct {
	artifact string
	write    bool
	err      error
}

func (s *scriptedOracle) Complete(_ context.Context, _ string, outputPath string) error {
	if s.write {
		if err := os.WriteFile(outputPath, []byte(s.artifact), 0o644); err != nil {
			return err
		}
	}
	return s.err
}

func TestInvokeOK(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	o := &scriptedOracle{artifact: `{"answer": 42}`, write: true}

	outcome := Invoke(context.Background(), o, "prompt", out)
	require.Equal(t, StatusOK, outcome.Status)
	assert.True(t, outcome.OK())

	var decoded struct {
		Answer int `json:"answer"`
	}
	require.NoError(t, outcome.Decode(&decoded))
	assert.Equal(t, 42, decoded.Answer)
}

func TestInvokeMissingOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	outcome := Invoke(context.Background(), &scriptedOracle{}, "prompt", out)
	assert.Equal(t, StatusMissingOutput, outcome.Status)
	assert.False(t, outcome.OK())
	assert.NoError(t, outcome.Err)
}

func TestInvokeMalformedOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	o := &scriptedOracle{artifact: "I could not produce JSON, sorry.", write: true}

	outcome := Invoke(context.Background(), o, "prompt", out)
	assert.Equal(t, StatusMalformedOutput, outcome.Status)
	assert.False(t, outcome.OK())
	assert.Contains(t, string(outcome.Raw), "sorry")
}

func TestInvokeFailed(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")
	boom := errors.New("upstream unavailable")

	outcome := Invoke(context.Background(), &scriptedOracle{err: boom}, "prompt", out)
	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, boom)
}

func TestInvokeErrorWithUsableArtifact(t *testing.T) {
	// A failing call that still managed to write a valid artifact counts as
	// OK. The artifact is the contract, not the call status.
	out := filepath.Join(t.TempDir(), "result.json")
	o := &scriptedOracle{artifact: `{"partial": true}`, write: true, err: errors.New("connection reset")}

	outcome := Invoke(context.Background(), o, "prompt", out)
	assert.Equal(t, StatusOK, outcome.Status)
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusOK, "ok"},
		{StatusMissingOutput, "missing_output"},
		{StatusMalformedOutput, "malformed_output"},
		{StatusFailed, "failed"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence mid-text ignored", "prose ```json", "prose ```json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFence(tt.in))
		})
	}
}
