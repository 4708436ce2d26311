// Package workspace owns the filesystem side of a run: ephemeral working
// directories under the sandbox root, artifact files, and plan-file
// transport encoding.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/RishabhK9/cloudist/internal/sandbox"
)

// ArtifactFileName is the single artifact file written per run.
const ArtifactFileName = "main.tf"

// Manager creates and validates run directories under one sandbox root.
type Manager struct {
	root  string
	guard *sandbox.Guard
}

// NewManager ensures the root exists and builds the guard for it.
func NewManager(root string) (*Manager, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating sandbox root: %w", err)
	}
	guard, err := sandbox.NewGuard(root)
	if err != nil {
		return nil, err
	}
	return &Manager{root: guard.Root(), guard: guard}, nil
}

// Guard exposes the path guard shared with the executor.
func (m *Manager) Guard() *sandbox.Guard {
	return m.guard
}

// CreateRunDir makes a fresh uniquely-named directory under the root and
// returns it with a cleanup function. Callers defer the cleanup so the
// directory is removed on every exit path, not just the happy one.
func (m *Manager) CreateRunDir() (string, func(), error) {
	dir := filepath.Join(m.root, "run-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating run directory: %w", err)
	}
	// Freshly created under our own root: the sanity check suffices.
	if err := m.guard.Sanity(dir); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	return dir, cleanup, nil
}

// WriteArtifact validates dir and writes the serialized artifact text to
// the canonical artifact file, returning its full path.
func (m *Manager) WriteArtifact(dir, text string) (string, error) {
	resolved, err := m.guard.Validate(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(resolved, ArtifactFileName)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}

// ArtifactFiles lists the .tf files under dir, recursively.
func (m *Manager) ArtifactFiles(dir string) ([]string, error) {
	resolved, err := m.guard.Validate(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
