// ABOUTME: Tests for ISO-8601 date normalization
// ABOUTME: Verifies variant priority, timezone handling and round-tripping

package dateutil

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, text string) time.Time {
	t.Helper()
	got, ok := Parse(text)
	if !ok {
		t.Fatalf("Parse(%q) failed", text)
	}
	return got
}

func TestParseZulu(t *testing.T) {
	got := mustParse(t, "2021-03-04T10:00:00Z")
	want := time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseExplicitOffset(t *testing.T) {
	got := mustParse(t, "2021-03-04T10:00:00+0530")
	want := time.Date(2021, 3, 4, 4, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTimezoneColonNormalization(t *testing.T) {
	withColon := mustParse(t, "2021-03-04T10:00:00+05:30")
	without := mustParse(t, "2021-03-04T10:00:00+0530")
	if !withColon.Equal(without) {
		t.Errorf("Expected same instant, got %v vs %v", withColon, without)
	}

	negative := mustParse(t, "2021-03-04T10:00:00-08:00")
	want := time.Date(2021, 3, 4, 18, 0, 0, 0, time.UTC)
	if !negative.Equal(want) {
		t.Errorf("Expected %v, got %v", want, negative)
	}
}

func TestParseWithoutZoneUsesLocal(t *testing.T) {
	got := mustParse(t, "2021-03-04T10:00:00")
	want := time.Date(2021, 3, 4, 10, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseSpaceSeparator(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"2021-03-04 10:00:00Z", time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC)},
		{"2021-03-04 10:00:00+0200", time.Date(2021, 3, 4, 8, 0, 0, 0, time.UTC)},
		{"2021-03-04 10:00:00", time.Date(2021, 3, 4, 10, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		if got := mustParse(t, tt.text); !got.Equal(tt.want) {
			t.Errorf("Parse(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestDateOnlyPinsMiddayUTC(t *testing.T) {
	want := time.Date(2021, 3, 4, 12, 0, 0, 0, time.UTC)

	if got := mustParse(t, "2021-03-04"); !got.Equal(want) {
		t.Errorf("Expected midday UTC %v, got %v", want, got)
	}
	// Image (IPTC/EXIF) colon-separated form
	if got := mustParse(t, "2021:03:04"); !got.Equal(want) {
		t.Errorf("Expected midday UTC %v, got %v", want, got)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, text := range []string{
		"",
		"not-a-date",
		"2021-13-40",
		"2021-03-04T25:00:00Z",
		"04/03/2021",
		"2021-03-04T10:00:00.123Z",
	} {
		if _, ok := Parse(text); ok {
			t.Errorf("Expected Parse(%q) to fail", text)
		}
	}
}

func TestFormat(t *testing.T) {
	in := time.Date(2021, 3, 4, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))
	if got := Format(in); got != "2021-03-04T04:30:00Z" {
		t.Errorf("Expected '2021-03-04T04:30:00Z', got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2038, 1, 19, 3, 14, 7, 0, time.UTC),
	}
	for _, want := range instants {
		got, ok := Parse(Format(want))
		if !ok || !got.Equal(want) {
			t.Errorf("Round trip of %v failed: %v (ok=%v)", want, got, ok)
		}
	}

	// Sub-second components truncate on format
	fractional := time.Date(2021, 3, 4, 10, 0, 0, 123456789, time.UTC)
	got, ok := Parse(Format(fractional))
	if !ok || !got.Equal(fractional.Truncate(time.Second)) {
		t.Errorf("Expected truncated round trip, got %v (ok=%v)", got, ok)
	}
}

func TestConcurrentParse(t *testing.T) {
	// Layout tables are immutable; concurrent parses must not interfere
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 200; j++ {
				if _, ok := Parse("2021-03-04T10:00:00Z"); !ok {
					t.Error("Concurrent parse failed")
				}
			}
			done <- true
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
