// Package artifact turns a user supplied path into the opaque proof package
// reference carried by the submission wizard. The wizard never looks inside
// the package; this loader only checks that it can be read and is within the
// configured limits.

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when the path does not exist.
	ErrNotFound = errors.New("artifact: file not found")
	// ErrDirectory is returned when the path points at a directory.
	ErrDirectory = errors.New("artifact: path is a directory")
	// ErrTooLarge is returned when the file exceeds the configured limit.
	ErrTooLarge = errors.New("artifact: file exceeds size limit")
)

// Artifact is an opaque reference to a proof package on disk.
type Artifact struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Size int64  `yaml:"size"`
}

// SizeLabel renders the size the way the review step shows it.
func (a Artifact) SizeLabel() string {
	return fmt.Sprintf("%.1f KB", float64(a.Size)/1024)
}

// Limits bounds what the loader accepts.
type Limits struct {
	Extensions []string
	MaxBytes   int64
}

// Result bundles a loaded artifact with non-fatal warnings.
type Result struct {
	Artifact Artifact
	Warnings []string
}

// Loader resolves paths relative to a base directory.
type Loader struct {
	base   string
	limits Limits
}

// NewLoader builds a loader rooted at base.
func NewLoader(base string, limits Limits) *Loader {
	return &Loader{base: base, limits: limits}
}

// Load stats the file at path and returns a reference to it.
func (l *Loader) Load(path string) (Result, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Result{}, fmt.Errorf("artifact: path is required")
	}
	resolved := l.resolve(trimmed)
	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, resolved)
		}
		return Result{}, fmt.Errorf("artifact: stat %s: %w", resolved, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s", ErrDirectory, resolved)
	}
	if l.limits.MaxBytes > 0 && info.Size() > l.limits.MaxBytes {
		return Result{}, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, info.Size(), l.limits.MaxBytes)
	}
	f, err := os.Open(resolved)
	if err != nil {
		return Result{}, fmt.Errorf("artifact: open %s: %w", resolved, err)
	}
	_ = f.Close()

	res := Result{Artifact: Artifact{
		Name: info.Name(),
		Path: resolved,
		Size: info.Size(),
	}}
	if ext := strings.ToLower(filepath.Ext(info.Name())); !l.accepts(ext) {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s is not one of %s", info.Name(), strings.Join(l.limits.Extensions, ", ")))
	}
	return res, nil
}

func (l *Loader) accepts(ext string) bool {
	if len(l.limits.Extensions) == 0 {
		return true
	}
	for _, candidate := range l.limits.Extensions {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}

func (l *Loader) resolve(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) || l.base == "" {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(l.base, path))
}
