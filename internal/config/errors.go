package config

import (
	"errors"
	"fmt"
)

// ErrSettingNotFound indicates a lookup for a setting no layer
// defines.
var ErrSettingNotFound = errors.New("setting not found")

// TypeError indicates a setting exists but holds a value of the wrong
// type.
type TypeError struct {
	Path     string
	Expected string
	Actual   any
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("setting %s: expected %s, got %T", e.Path, e.Expected, e.Actual)
}
