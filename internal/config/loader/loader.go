// Package loader reads configuration files into nested settings maps.
package loader

// Loader parses a configuration file into a nested map. A missing
// file is not an error; loaders return (nil, nil) so callers can fall
// back to defaults.
type Loader interface {
	// Load reads and parses the file at path.
	Load(path string) (map[string]any, error)

	// Extensions returns the file extensions the loader handles,
	// including the leading dot.
	Extensions() []string
}
