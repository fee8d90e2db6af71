// Package pathsec validates user-supplied filesystem paths before the
// pipeline touches them.
//
// Resolution follows symbolic links and collapses relative segments, so a
// path that lexically sits inside a confinement root but links outside of it
// is still rejected. Validation is pure: nothing here creates, opens, or
// modifies files.
package pathsec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a path resolves outside its confinement root.
var ErrOutsideRoot = errors.New("path resolves outside the allowed directory")

// ErrNotFile is returned when a path exists but is not a regular file.
var ErrNotFile = errors.New("path is not a regular file")

// ErrNotDir is returned when a path exists but is not a directory.
var ErrNotDir = errors.New("path is not a directory")

// Resolve canonicalizes path, following symlinks and eliminating "." and ".."
// segments. If root is non-empty, the resolved path must sit at or below the
// resolved root; otherwise Resolve fails with ErrOutsideRoot. The target must
// exist.
func Resolve(path, root string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("resolve: %w", fs.ErrNotExist)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}

	if root != "" {
		rootAbs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("resolve root %q: %w", root, err)
		}
		rootResolved, err := filepath.EvalSymlinks(rootAbs)
		if err != nil {
			return "", fmt.Errorf("resolve root %q: %w", root, err)
		}
		if !within(resolved, rootResolved) {
			return "", fmt.Errorf("%q: %w (root %q)", path, ErrOutsideRoot, root)
		}
	}

	return resolved, nil
}

// ResolveFile resolves path within root and requires it to be a regular file.
func ResolveFile(path, root string) (string, error) {
	resolved, err := Resolve(path, root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q: %w", path, ErrNotFile)
	}
	return resolved, nil
}

// ResolveDir resolves path within root and requires it to be a directory.
func ResolveDir(path, root string) (string, error) {
	resolved, err := Resolve(path, root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat %q: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q: %w", path, ErrNotDir)
	}
	return resolved, nil
}

// within reports whether path is root or a descendant of root. Both inputs
// must already be absolute and symlink-free.
func within(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
