package workspace

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// PlanFileName is the binary plan file a saving plan run produces.
const PlanFileName = "tfplan"

// ReadPlanFile reads the binary plan file from dir and returns it
// base64-encoded for transport across a process or API boundary.
func (m *Manager) ReadPlanFile(dir string) (string, error) {
	resolved, err := m.guard.Validate(dir)
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(filepath.Join(resolved, PlanFileName))
	if err != nil {
		return "", fmt.Errorf("reading plan file: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// WritePlanFile decodes a base64 plan payload back into dir so a later
// apply can consume it.
func (m *Manager) WritePlanFile(dir, encoded string) error {
	resolved, err := m.guard.Validate(dir)
	if err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding plan payload: %w", err)
	}
	if err := os.WriteFile(filepath.Join(resolved, PlanFileName), raw, 0o644); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}
