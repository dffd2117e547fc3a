package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"inquire/internal/model"
)

// Artifact file names inside a run directory. Each stage reads the previous
// stage's persisted output, so any stage can be re-run given its inputs.
const (
	PromptFile       = "prompt.txt"
	ReportFile       = "report.md"
	CitationsFile    = "citations.json"
	ClaimsFile       = "claims.json"
	VerificationFile = "verification.json"
	FinalFile        = "final.md"
)

// writeJSON persists an artifact with two-space indentation. Artifacts are
// written once per stage and never mutated afterwards.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readJSON loads a required artifact. Unparseable JSON is reported as a
// corrupt artifact rather than silently degrading the stage.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt artifact %s: %w", path, err)
	}
	return nil
}

// readOptionalJSON loads an artifact if it exists. A missing file is not an
// error; a corrupt one is.
func readOptionalJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("corrupt artifact %s: %w", path, err)
	}
	return true, nil
}

// LoadClaims reads a claims artifact from disk.
func LoadClaims(path string) (*model.ClaimSet, error) {
	var set model.ClaimSet
	if err := readJSON(path, &set); err != nil {
		return nil, err
	}
	return &set, nil
}
