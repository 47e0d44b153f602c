package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ParseError describes a configuration file that failed to parse.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying parse error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// TOMLLoader loads TOML configuration files.
type TOMLLoader struct{}

// NewTOMLLoader creates a TOML loader.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{}
}

// Extensions returns the file extensions handled by the loader.
func (l *TOMLLoader) Extensions() []string {
	return []string{".toml"}
}

// Load reads and parses a TOML file. A missing file returns (nil, nil).
func (l *TOMLLoader) Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var result map[string]any
	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, l.wrapParseError(path, err)
	}
	return result, nil
}

// maxIncludeDepth bounds nested @include chains so a cycle of files
// including each other terminates with an error instead of looping.
const maxIncludeDepth = 8

// LoadWithIncludes loads a TOML file and merges any files named by its
// "@include" key underneath it, recursively. Included settings sit
// below the including file, so the including file wins on conflict.
// The merge callback receives (base, overlay) and returns the combined
// map.
func (l *TOMLLoader) LoadWithIncludes(path string, merge func(dst, src map[string]any) map[string]any) (map[string]any, error) {
	return l.loadWithIncludes(path, merge, maxIncludeDepth)
}

func (l *TOMLLoader) loadWithIncludes(path string, merge func(dst, src map[string]any) map[string]any, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, &ParseError{
			Path:    path,
			Message: "include depth exceeded",
		}
	}

	result, err := l.Load(path)
	if err != nil || result == nil {
		return result, err
	}

	includes, ok := result["@include"]
	if !ok {
		return result, nil
	}
	delete(result, "@include")

	var paths []string
	switch v := includes.(type) {
	case string:
		paths = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &ParseError{
					Path:    path,
					Message: fmt.Sprintf("@include entries must be strings, got %T", item),
				}
			}
			paths = append(paths, s)
		}
	default:
		return nil, &ParseError{
			Path:    path,
			Message: fmt.Sprintf("@include must be a string or array of strings, got %T", includes),
		}
	}

	base := make(map[string]any)
	dir := filepath.Dir(path)
	for _, include := range paths {
		if !filepath.IsAbs(include) {
			include = filepath.Join(dir, include)
		}
		included, err := l.loadWithIncludes(include, merge, depth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", include, err)
		}
		if included != nil {
			base = merge(base, included)
		}
	}

	return merge(base, result), nil
}

// wrapParseError extracts line and column information from go-toml
// decode errors when available.
func (l *TOMLLoader) wrapParseError(path string, err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		line, column := decodeErr.Position()
		return &ParseError{
			Path:    path,
			Line:    line,
			Column:  column,
			Message: strings.TrimSpace(decodeErr.Error()),
			Err:     err,
		}
	}
	return &ParseError{
		Path:    path,
		Message: err.Error(),
		Err:     err,
	}
}
