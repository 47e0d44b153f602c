// Package mark collects and normalizes buffer marks into the
// display-ready records the preview popup renders.
package mark

import (
	"strings"
	"unicode"
)

// Record is one user-visible bookmark, ready for display.
// Records are value types; invalid marks are rejected at collection
// and never represented as error records.
type Record struct {
	// Name is the mark's single-character name, within [a-zA-Z0-9].
	Name rune

	// File is the display name of the owning buffer.
	File string

	// Line is the 1-based mark line.
	Line int

	// Col is the 1-based mark column.
	Col int

	// Content is the owning line's text with leading whitespace
	// stripped. Trailing and internal whitespace is preserved.
	Content string
}

// RawMark mirrors a host mark-listing entry before validation.
// Name may be any string; special marks carry punctuation names.
type RawMark struct {
	Name   string
	Buffer string
	Line   int
	Col    int
}

// Host is the capability surface the collector queries. It is a pure
// read interface; collection never mutates host state.
type Host interface {
	// IsValid reports whether name refers to an open buffer.
	IsValid(name string) bool

	// IsSpecial reports whether the named buffer is not an ordinary
	// editable file buffer (scratch, help, etc.).
	IsSpecial(name string) bool

	// Line reads the 1-based line n from the named buffer.
	Line(name string, n int) (string, bool)

	// Marks lists raw marks local to the named buffer, in the host's
	// enumeration order.
	Marks(name string) []RawMark
}

// IsValidName reports whether r is a legal preview mark name.
func IsValidName(r rune) bool {
	return r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Collector normalizes raw host marks into Records.
type Collector struct {
	host Host
}

// NewCollector creates a collector over the given host.
func NewCollector(host Host) *Collector {
	return &Collector{host: host}
}

// Collect gathers display-ready records for the named buffer, in host
// enumeration order. ok is false when the buffer does not take
// previews at all (unknown, scratch, or otherwise special); callers
// must then abort the session rather than show an empty popup.
func (c *Collector) Collect(buffer string) (records []Record, ok bool) {
	if !c.host.IsValid(buffer) || c.host.IsSpecial(buffer) {
		return nil, false
	}

	raws := c.host.Marks(buffer)
	records = make([]Record, 0, len(raws))
	for _, raw := range raws {
		name, valid := singleRune(raw.Name)
		if !valid || !IsValidName(name) {
			continue
		}
		if !c.host.IsValid(raw.Buffer) {
			continue
		}
		content, _ := c.host.Line(raw.Buffer, raw.Line)
		records = append(records, Record{
			Name:    name,
			File:    raw.Buffer,
			Line:    raw.Line,
			Col:     raw.Col,
			Content: strings.TrimLeftFunc(content, unicode.IsSpace),
		})
	}
	return records, true
}

// singleRune extracts the sole rune of s; valid is false when s is
// empty or holds more than one rune.
func singleRune(s string) (r rune, valid bool) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}
