package config

// EditorSettings are the buffer and viewport settings.
type EditorSettings struct {
	Tabstop   int
	Scrolloff int
}

// PopupSettings control the marks preview popup.
type PopupSettings struct {
	Width     int
	MaxHeight int
	OffsetX   int
	OffsetY   int
	Position  string
}

// Editor returns the merged editor settings. Out-of-range values fall
// back to the defaults rather than failing.
func (c *Config) Editor() EditorSettings {
	s := EditorSettings{Tabstop: 4, Scrolloff: 0}
	if v, err := c.GetInt("editor.tabstop"); err == nil && v >= 1 {
		s.Tabstop = v
	}
	if v, err := c.GetInt("editor.scrolloff"); err == nil && v >= 0 {
		s.Scrolloff = v
	}
	return s
}

// Popup returns the merged popup settings. Invalid values fall back to
// the defaults; an unrecognized position falls back to "cursor".
func (c *Config) Popup() PopupSettings {
	s := PopupSettings{Width: 30, MaxHeight: 10, OffsetX: 1, OffsetY: 1, Position: "cursor"}
	if v, err := c.GetInt("popup.width"); err == nil && v >= 1 {
		s.Width = v
	}
	if v, err := c.GetInt("popup.max_height"); err == nil && v >= 1 {
		s.MaxHeight = v
	}
	if v, err := c.GetInt("popup.offset_x"); err == nil && v >= 0 {
		s.OffsetX = v
	}
	if v, err := c.GetInt("popup.offset_y"); err == nil && v >= 0 {
		s.OffsetY = v
	}
	if v, err := c.GetString("popup.position"); err == nil {
		if v == "cursor" || v == "topleft" {
			s.Position = v
		}
	}
	return s
}
