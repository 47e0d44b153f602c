// Package layer implements priority-ordered configuration layers.
// Settings from higher-priority layers shadow lower ones when merged.
package layer

// Source identifies where a layer's settings came from.
type Source int

const (
	// SourceBuiltin is the compiled-in default layer.
	SourceBuiltin Source = iota
	// SourceUser is the user's configuration file.
	SourceUser
	// SourceScript is configuration applied by the scripting runtime.
	SourceScript
	// SourceRuntime is configuration changed while the editor is running.
	SourceRuntime
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceScript:
		return "script"
	case SourceRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Canonical priorities for each source. Gaps leave room for
// intermediate layers if they are ever needed.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityScript  = 200
	PriorityRuntime = 300
)

// Layer holds one source of configuration data.
type Layer struct {
	// Name uniquely identifies the layer within a Manager.
	Name string

	// Priority orders layers during merge. Higher wins.
	Priority int

	// Source describes where the data came from.
	Source Source

	// Path is the file the layer was loaded from, if any.
	Path string

	// Data holds the nested settings tree.
	Data map[string]any
}

// New creates an empty layer.
func New(name string, priority int, source Source) *Layer {
	return &Layer{
		Name:     name,
		Priority: priority,
		Source:   source,
		Data:     make(map[string]any),
	}
}

// NewWithData creates a layer with initial data. The data map is used
// directly, not copied; callers must not mutate it afterward.
func NewWithData(name string, priority int, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Priority: priority,
		Source:   source,
		Data:     data,
	}
}

// Get retrieves a value by dot-separated path.
func (l *Layer) Get(path string) (any, bool) {
	return GetByPath(l.Data, path)
}

// Set stores a value by dot-separated path, creating intermediate
// maps as needed.
func (l *Layer) Set(path string, value any) {
	SetByPath(l.Data, path, value)
}
