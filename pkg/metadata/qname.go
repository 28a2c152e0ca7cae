// ABOUTME: Qualified name identity and resolution for metadata keys
// ABOUTME: Maps bare string keys onto (namespace, local name, prefix) triples

package metadata

import "strings"

// NamespacePrefixDelimiter separates a namespace prefix from a local name
// in a bare string key.
const NamespacePrefixDelimiter = ":"

// Generic entry identity for keys with no registered definition.
const (
	EntryNamespace = "http://metastore.nainya.io/"
	entryPrefix    = "meta"
	entryLocalName = "entry"
)

// QName identifies a metadata key by namespace URI and local name.
// The prefix is display-only and never participates in equality.
type QName struct {
	Space  string
	Local  string
	Prefix string
}

// NewQName builds a fully-qualified name.
func NewQName(space, prefix, local string) QName {
	return QName{Space: space, Local: local, Prefix: prefix}
}

// ParseName converts a bare string key into a QName with no namespace URI.
// A key containing exactly one delimiter splits into (prefix, local name);
// any other shape keeps the whole string as the local name.
func ParseName(name string) QName {
	parts := strings.Split(name, NamespacePrefixDelimiter)
	if len(parts) == 2 {
		return QName{Prefix: parts[0], Local: parts[1]}
	}
	return QName{Local: name}
}

// Namespaced reports whether the name carries a namespace URI.
func (q QName) Namespaced() bool {
	return q.Space != ""
}

// Qualified renders the display form: "prefix:local" when a prefix is
// present, plain "local" otherwise.
func (q QName) Qualified() string {
	if q.Prefix != "" {
		return q.Prefix + NamespacePrefixDelimiter + q.Local
	}
	return q.Local
}

// Equal compares namespace URI and local name only.
func (q QName) Equal(o QName) bool {
	return q.Space == o.Space && q.Local == o.Local
}

// entryQName is the storage identity used for keys with no registered,
// namespaced definition.
func entryQName() QName {
	return QName{Space: EntryNamespace, Local: entryLocalName, Prefix: entryPrefix}
}

// lookupQName converts the given name into the identity actually used in
// the store. Namespaced names pass through untouched. A bare name that
// matches a registered property with a non-empty namespace adopts that
// property's declared identity; anything else becomes a generic entry.
// Pure lookup: the registry is never mutated here.
func lookupQName(q QName) QName {
	if q.Namespaced() {
		return q
	}
	if p := PropertyByName(q.Qualified()); p != nil && p.Name().Namespaced() {
		return p.Name()
	}
	return entryQName()
}
