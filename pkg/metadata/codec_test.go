package metadata

import "testing"

func TestXMLCodecRoundTrip(t *testing.T) {
	c := XMLCodec{}

	tests := []struct {
		raw     string
		escaped string
	}{
		{`a < b`, "a &lt; b"},
		{`a & b`, "a &amp; b"},
		{`"x" > 'y'`, "&quot;x&quot; &gt; &apos;y&apos;"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := c.Escape(tt.raw); got != tt.escaped {
			t.Errorf("Escape(%q) = %q, expected %q", tt.raw, got, tt.escaped)
		}
		if got := c.Unescape(tt.escaped); got != tt.raw {
			t.Errorf("Unescape(%q) = %q, expected %q", tt.escaped, got, tt.raw)
		}
	}
}

func TestNopCodec(t *testing.T) {
	c := NopCodec{}
	s := `a < b & "c"`
	if c.Escape(s) != s || c.Unescape(s) != s {
		t.Error("Expected NopCodec to pass values through untouched")
	}
}

func TestContainerWithNopCodec(t *testing.T) {
	md := NewWithCodec(NopCodec{})
	md.Add("note", "a < b")
	if v, _ := md.Get("note"); v != "a < b" {
		t.Errorf("Expected raw value, got %q", v)
	}
}
