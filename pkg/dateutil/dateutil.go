// ABOUTME: ISO-8601 date normalization for metadata values
// ABOUTME: Reconciles timezone, separator and date-only variants into UTC instants

// Package dateutil parses the ISO-8601 variants produced by document
// metadata extractors into one normalized instant, and formats instants
// back into the canonical UTC form.
//
// Parsing is built on immutable layout tables and the stateless
// time.Parse machinery, so concurrent use needs no locking.
package dateutil

import "time"

// CanonicalLayout is the single output form: UTC, T-separated, literal
// trailing Z, second precision.
const CanonicalLayout = "2006-01-02T15:04:05Z"

// inputLayout is one accepted input pattern. Layouts are attempted in
// declaration order and the first successful parse wins, so more specific
// forms must precede the date-only fallbacks.
type inputLayout struct {
	layout string
	loc    *time.Location // nil means the offset is in the text itself
	midday bool           // date-only form, pinned to 12:00:00 UTC
}

var inputLayouts = []inputLayout{
	// yyyy-mm-ddThh...
	{layout: "2006-01-02T15:04:05Z", loc: time.UTC},  // UTC/Zulu
	{layout: "2006-01-02T15:04:05-0700"},             // with timezone
	{layout: "2006-01-02T15:04:05", loc: time.Local}, // without timezone
	// yyyy-mm-dd hh...
	{layout: "2006-01-02 15:04:05Z", loc: time.UTC},  // UTC/Zulu
	{layout: "2006-01-02 15:04:05-0700"},             // with timezone
	{layout: "2006-01-02 15:04:05", loc: time.Local}, // without timezone
	// Date without time, pinned to midday UTC so the calendar day survives
	// rendering in any timezone
	{layout: "2006-01-02", midday: true}, // normal date format
	{layout: "2006:01:02", midday: true}, // image (IPTC/EXIF) format
}

// Parse normalizes the given date string into an instant. It tries each
// accepted layout in priority order and reports ok == false when none
// match; malformed input never produces an error.
func Parse(text string) (time.Time, bool) {
	text = stripZoneColon(text)
	for _, in := range inputLayouts {
		var t time.Time
		var err error
		if in.loc != nil {
			t, err = time.ParseInLocation(in.layout, text, in.loc)
		} else {
			t, err = time.Parse(in.layout, text)
		}
		if err != nil {
			continue
		}
		if in.midday {
			y, m, d := t.Date()
			t = time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
		}
		return t, true
	}
	return time.Time{}, false
}

// stripZoneColon rewrites a trailing ±HH:MM offset to ±HHMM. The layout
// table only accepts the colon-less form, so this pre-pass is required,
// not cosmetic.
func stripZoneColon(text string) string {
	n := len(text)
	if n < 6 {
		return text
	}
	if text[n-3] == ':' && (text[n-6] == '+' || text[n-6] == '-') {
		return text[:n-3] + text[n-2:]
	}
	return text
}

// Format renders the instant in the canonical UTC form. Sub-second
// components are truncated, so Parse(Format(t)) round-trips any instant
// with zero sub-second part.
func Format(t time.Time) string {
	return t.UTC().Format(CanonicalLayout)
}
