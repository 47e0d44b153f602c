// Package config manages editor settings as priority-ordered layers:
// compiled-in defaults, the user's TOML file, script overrides, and
// runtime changes. The user file can be watched for changes and
// reloaded while the editor runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/markpeek/internal/config/layer"
	"github.com/dshills/markpeek/internal/config/loader"
	"github.com/dshills/markpeek/internal/config/watcher"
)

// Layer names used by the manager.
const (
	LayerDefaults = "defaults"
	LayerUser     = "user"
	LayerScript   = "script"
	LayerRuntime  = "runtime"
)

// ReloadFunc is called after each reload attempt. err is nil when the
// new file was applied and non-nil when parsing failed and the prior
// settings were kept.
type ReloadFunc func(err error)

// Config is the merged view over all configuration layers.
type Config struct {
	layers *layer.Manager
	loader *loader.TOMLLoader

	path     string
	watch    bool
	debounce time.Duration

	mu        sync.RWMutex
	fw        *watcher.Watcher
	onReload  []ReloadFunc
	watcherWg sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Config.
type Option func(*Config)

// WithPath sets the user configuration file path. An empty path falls
// back to DefaultPath.
func WithPath(path string) Option {
	return func(c *Config) { c.path = path }
}

// WithWatcher enables or disables watching the user file for changes.
func WithWatcher(enabled bool) Option {
	return func(c *Config) { c.watch = enabled }
}

// WithDebounce sets the watcher debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) { c.debounce = d }
}

// New creates a Config with defaults applied and empty user, script,
// and runtime layers registered.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		layers: layer.NewManager(),
		loader: loader.NewTOMLLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}

	defaults := layer.NewWithData(LayerDefaults, layer.PriorityBuiltin, layer.SourceBuiltin, defaultSettings())
	for _, l := range []*layer.Layer{
		defaults,
		layer.New(LayerUser, layer.PriorityUser, layer.SourceUser),
		layer.New(LayerScript, layer.PriorityScript, layer.SourceScript),
		layer.New(LayerRuntime, layer.PriorityRuntime, layer.SourceRuntime),
	} {
		if err := c.layers.Add(l); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// defaultSettings is the builtin layer. User files only need to name
// the settings they change.
func defaultSettings() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"tabstop":   int64(4),
			"scrolloff": int64(0),
		},
		"popup": map[string]any{
			"width":      int64(30),
			"max_height": int64(10),
			"offset_x":   int64(1),
			"offset_y":   int64(1),
			"position":   "cursor",
		},
	}
}

// DefaultPath returns the conventional location of the user file.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(base, "markpeek", "config.toml"), nil
}

// Path returns the user configuration file path in effect.
func (c *Config) Path() string {
	return c.path
}

// Load reads the user file into the user layer and, when enabled,
// starts watching it. A missing file leaves the defaults in place.
func (c *Config) Load() error {
	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := c.loadUserLayer(); err != nil {
		return err
	}

	if c.watch {
		fw, err := watcher.New(c.path, c.debounce)
		if err != nil {
			return fmt.Errorf("watching config file: %w", err)
		}
		c.mu.Lock()
		c.fw = fw
		c.mu.Unlock()

		c.watcherWg.Add(1)
		go c.watchLoop(fw)
	}

	return nil
}

func (c *Config) loadUserLayer() error {
	data, err := c.loader.LoadWithIncludes(c.path, layer.DeepMerge)
	if err != nil {
		return err
	}
	return c.layers.Replace(LayerUser, data)
}

// watchLoop reloads the user layer on file changes. Parse failures
// keep the prior settings and are reported through the reload
// callbacks.
func (c *Config) watchLoop(fw *watcher.Watcher) {
	defer c.watcherWg.Done()

	for {
		select {
		case _, ok := <-fw.Events():
			if !ok {
				return
			}
			err := c.loadUserLayer()
			c.notifyReload(err)
		case _, ok := <-fw.Errors():
			if !ok {
				return
			}
		}
	}
}

// Reload re-reads the user file immediately.
func (c *Config) Reload() error {
	err := c.loadUserLayer()
	c.notifyReload(err)
	return err
}

// OnReload registers a callback invoked after every reload attempt.
func (c *Config) OnReload(fn ReloadFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.onReload = append(c.onReload, fn)
	c.mu.Unlock()
}

func (c *Config) notifyReload(err error) {
	c.mu.RLock()
	callbacks := make([]ReloadFunc, len(c.onReload))
	copy(callbacks, c.onReload)
	c.mu.RUnlock()

	for _, fn := range callbacks {
		fn(err)
	}
}

// Close stops the file watcher. Closing twice is safe.
func (c *Config) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		fw := c.fw
		c.fw = nil
		c.mu.Unlock()

		if fw != nil {
			err = fw.Close()
			c.watcherWg.Wait()
		}
	})
	return err
}

// ApplyScript replaces the script layer's settings. The scripting
// runtime calls this with the table passed to its setup function.
func (c *Config) ApplyScript(data map[string]any) error {
	return c.layers.Replace(LayerScript, data)
}

// Set writes a runtime override by dot-separated path.
func (c *Config) Set(path string, value any) error {
	return c.layers.Set(LayerRuntime, path, value)
}

// Get retrieves a merged setting by dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	return c.layers.Lookup(path)
}

// GetString retrieves a string setting.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: v}
	}
	return s, nil
}

// GetInt retrieves an integer setting. TOML decodes integers as int64;
// script values arrive as int64 when integral and float64 otherwise.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, &TypeError{Path: path, Expected: "integer", Actual: v}
	}
}

// GetBool retrieves a boolean setting.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSettingNotFound, path)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: v}
	}
	return b, nil
}
