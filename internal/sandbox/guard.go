// Package sandbox confines execution working directories to a configured
// root. Every directory handed to the executor must pass the guard before
// any subprocess is spawned.
package sandbox

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ViolationError reports a working directory that resolves outside the
// sandbox root. It is always fatal and always raised before any side effect.
type ViolationError struct {
	Path string
	Root string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("sandbox violation: %q resolves outside root %q", e.Path, e.Root)
}

// IsViolation reports whether err is (or wraps) a sandbox violation.
func IsViolation(err error) bool {
	var v *ViolationError
	return errors.As(err, &v)
}

// Guard validates paths against a single sandbox root. The root is fixed at
// construction; a Guard carries no other state and is safe for concurrent use.
type Guard struct {
	root string
}

// NewGuard builds a guard for the given root directory. The root is
// resolved to an absolute, symlink-free form once, up front.
func NewGuard(root string) (*Guard, error) {
	if root == "" {
		return nil, errors.New("sandbox root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving sandbox root: %w", err)
	}
	return &Guard{root: resolveExisting(abs)}, nil
}

// Root returns the resolved sandbox root.
func (g *Guard) Root() string {
	return g.root
}

// Validate resolves dir to an absolute path and verifies it is the root or
// a descendant of it. Traversal segments and symlinks are resolved before
// the containment check, so "inside/../../etc" and a link pointing out of
// the root are both rejected. On success the resolved path is returned.
func (g *Guard) Validate(dir string) (string, error) {
	if dir == "" {
		return "", &ViolationError{Path: dir, Root: g.root}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	resolved := resolveExisting(abs)

	rel, err := filepath.Rel(g.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &ViolationError{Path: dir, Root: g.root}
	}
	return resolved, nil
}

// Sanity is the light re-check applied to directories the core itself just
// created inside the root. It skips symlink resolution; a freshly created
// child cannot have escaped.
func (g *Guard) Sanity(dir string) error {
	clean := filepath.Clean(dir)
	if clean != g.root && !strings.HasPrefix(clean, g.root+string(filepath.Separator)) {
		return &ViolationError{Path: dir, Root: g.root}
	}
	return nil
}

// resolveExisting resolves symlinks for the longest existing ancestor of
// path and re-attaches the non-existing remainder lexically. This keeps
// validation meaningful for directories that will be created after the check.
func resolveExisting(path string) string {
	p := filepath.Clean(path)
	var suffix []string
	for {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			parts := append([]string{resolved}, suffix...)
			return filepath.Join(parts...)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return filepath.Clean(path)
		}
		suffix = append([]string{filepath.Base(p)}, suffix...)
		p = parent
	}
}
