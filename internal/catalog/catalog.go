package catalog

import (
	"fmt"
	"time"
)

// timestampLayout is the canonical snapshot identifier form: 14 digits,
// local time.
const timestampLayout = "20060102150405"

// displayLayout is what the operator sees in the picker.
const displayLayout = "02.01.06 15:04"

// Record is one snapshot as reported by the external tool's listing.
type Record struct {
	Timestamp string
	Comment   string
	Source    string
	Trigger   string
	Path      string
}

// ParseTimestamp validates ts against the canonical 14-digit form.
func ParseTimestamp(ts string) (time.Time, error) {
	if len(ts) != len(timestampLayout) {
		return time.Time{}, fmt.Errorf("timestamp %q: want %d digits, got %d", ts, len(timestampLayout), len(ts))
	}
	t, err := time.ParseInLocation(timestampLayout, ts, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", ts, err)
	}
	return t, nil
}

// FormatTimestamp reformats a canonical timestamp for display. Callers pass
// validated timestamps; if one slips through anyway the raw value is shown
// so the bad record stays visible.
func FormatTimestamp(ts string) string {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.Format(displayLayout)
}

// Catalog is the deduplicated, ordered view of snapshots. It is rebuilt
// wholesale on every refresh, never patched in place.
type Catalog struct {
	entries []Record
}

// Build dedups records by timestamp. The first record bearing a timestamp
// wins and entries keep first-seen order. Records whose timestamp fails the
// canonical format are excluded and reported as warnings; the listing call
// already validates, this is a second guard so a malformed record can never
// reach the picker.
func Build(records []Record) (*Catalog, []string) {
	var warnings []string
	seen := make(map[string]bool, len(records))
	c := &Catalog{}
	for _, r := range records {
		if _, err := ParseTimestamp(r.Timestamp); err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping snapshot with bad %v", err))
			continue
		}
		if seen[r.Timestamp] {
			continue
		}
		seen[r.Timestamp] = true
		c.entries = append(c.entries, r)
	}
	return c, warnings
}

func (c *Catalog) Empty() bool { return len(c.entries) == 0 }

func (c *Catalog) Len() int { return len(c.entries) }

func (c *Catalog) Entries() []Record { return c.entries }

// At returns the record at index i. The presentation layer only ever offers
// valid indices; bounds are enforced by the controller.
func (c *Catalog) At(i int) Record { return c.entries[i] }

// Lines renders the entries for selection, one line per unique timestamp.
func (c *Catalog) Lines() []string {
	lines := make([]string, len(c.entries))
	for i, r := range c.entries {
		lines[i] = fmt.Sprintf("%s - %s (source: %s)", FormatTimestamp(r.Timestamp), r.Comment, r.Source)
	}
	return lines
}
