package metadata

import "strings"

// Codec escapes values for the backing substrate on write and reverses
// the escaping on read. Escape and Unescape must form a bijection over
// the substrate's reserved characters; callers of the container never
// observe escaped text.
type Codec interface {
	Escape(s string) string
	Unescape(s string) string
}

// NopCodec passes values through untouched, for substrates with no
// reserved characters.
type NopCodec struct{}

func (NopCodec) Escape(s string) string   { return s }
func (NopCodec) Unescape(s string) string { return s }

// XMLCodec escapes the five XML-reserved characters as entities. It is
// the default codec, matching the container's XML-shaped text dump.
type XMLCodec struct{}

var (
	xmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	xmlUnescaper = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

func (XMLCodec) Escape(s string) string   { return xmlEscaper.Replace(s) }
func (XMLCodec) Unescape(s string) string { return xmlUnescaper.Replace(s) }
