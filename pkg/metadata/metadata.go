// ABOUTME: Multi-valued, namespace-aware metadata container
// ABOUTME: Ordered multimap with a typed property layer on a string substrate

package metadata

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nainya/metastore/pkg/dateutil"
)

// entry is one stored (name, value) pair. The value is kept in escaped
// form; the codec is reversed on every read.
type entry struct {
	name    QName
	display string
	value   string
}

// Metadata is a typed, multi-valued metadata container. It holds string
// values keyed by qualified name, preserving insertion order per key, and
// layers typed accessors over the string substrate.
//
// A container is a per-processing-pass object with a single owner; it is
// not safe for uncoordinated concurrent mutation.
type Metadata struct {
	entries  []entry
	prefixes map[string]string
	codec    Codec
}

// New constructs an empty container with the default XML escaping codec.
func New() *Metadata {
	return NewWithCodec(XMLCodec{})
}

// NewWithCodec constructs an empty container using the given codec for
// the backing substrate.
func NewWithCodec(c Codec) *Metadata {
	return &Metadata{
		prefixes: map[string]string{entryPrefix: EntryNamespace},
		codec:    c,
	}
}

// displayName is the form a key enumerates under: the original qualified
// name for generic entries, the declared qualified name otherwise.
func displayName(original, lookup QName) string {
	if lookup.Equal(entryQName()) {
		return original.Qualified()
	}
	return lookup.Qualified()
}

// matches reports whether the stored entry corresponds to the given key.
func (e *entry) matches(q, lookup QName) bool {
	if !e.name.Equal(lookup) {
		return false
	}
	if lookup.Equal(entryQName()) {
		return e.display == q.Qualified()
	}
	return true
}

func (m *Metadata) addValue(q QName, value string) {
	lookup := lookupQName(q)
	if lookup.Prefix != "" && lookup.Space != "" {
		m.prefixes[lookup.Prefix] = lookup.Space
	}
	m.entries = append(m.entries, entry{
		name:    lookup,
		display: displayName(q, lookup),
		value:   m.codec.Escape(value),
	})
}

// setValue clears the key, then adds the value if one is present.
func (m *Metadata) setValue(q QName, value *string) {
	m.removeValue(q)
	if value != nil {
		m.addValue(q, *value)
	}
}

func (m *Metadata) removeValue(q QName) {
	lookup := lookupQName(q)
	kept := m.entries[:0]
	for _, e := range m.entries {
		if !e.matches(q, lookup) {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}

func (m *Metadata) getValues(q QName) []string {
	lookup := lookupQName(q)
	var values []string
	for _, e := range m.entries {
		if e.matches(q, lookup) {
			values = append(values, m.codec.Unescape(e.value))
		}
	}
	return values
}

func (m *Metadata) getValue(q QName) (string, bool) {
	lookup := lookupQName(q)
	for _, e := range m.entries {
		if e.matches(q, lookup) {
			return m.codec.Unescape(e.value), true
		}
	}
	return "", false
}

// Add appends a value to the list associated with the given name.
func (m *Metadata) Add(name, value string) {
	m.addValue(ParseName(name), value)
}

// Set associates exactly the given value with the name, removing any
// previous values first.
func (m *Metadata) Set(name, value string) {
	m.setValue(ParseName(name), &value)
}

// SetAll copies every pair from props, replacing existing values per key.
func (m *Metadata) SetAll(props map[string]string) {
	for name, value := range props {
		m.Set(name, value)
	}
}

// Remove clears all values for the given name. Removing an absent name is
// a no-op.
func (m *Metadata) Remove(name string) {
	m.removeValue(ParseName(name))
}

// Get returns the first-inserted value for the name. The second result is
// false when the name holds no values.
func (m *Metadata) Get(name string) (string, bool) {
	return m.getValue(ParseName(name))
}

// GetValues returns all values for the name in insertion order.
func (m *Metadata) GetValues(name string) []string {
	return m.getValues(ParseName(name))
}

// IsMultiValued reports whether the name currently holds more than one
// value.
func (m *Metadata) IsMultiValued(name string) bool {
	return len(m.GetValues(name)) > 1
}

// Names returns the display form of every name currently holding at least
// one value, de-duplicated, in first-insertion order.
func (m *Metadata) Names() []string {
	var names []string
	seen := make(map[string]bool, len(m.entries))
	for _, e := range m.entries {
		if !seen[e.display] {
			seen[e.display] = true
			names = append(names, e.display)
		}
	}
	return names
}

// Size returns the number of distinct names holding at least one value.
func (m *Metadata) Size() int {
	return len(m.Names())
}

// Equal reports whether both containers hold the same name set with
// identical per-name value sequences. Prefix registries and internal
// ordering of distinct names do not participate.
func (m *Metadata) Equal(o *Metadata) bool {
	if o == nil {
		return false
	}
	names := m.Names()
	if len(names) != o.Size() {
		return false
	}
	for _, name := range names {
		mine := m.GetValues(name)
		theirs := o.GetValues(name)
		if len(mine) != len(theirs) {
			return false
		}
		for i := range mine {
			if mine[i] != theirs[i] {
				return false
			}
		}
	}
	return true
}

// Lookup resolves a simple "name" or "name[index]" path expression to a
// single value, a convenience for debugging and templating.
func (m *Metadata) Lookup(expr string) (string, bool) {
	name := expr
	index := 0
	if open := strings.IndexByte(expr, '['); open >= 0 && strings.HasSuffix(expr, "]") {
		i, err := strconv.Atoi(expr[open+1 : len(expr)-1])
		if err != nil || i < 0 {
			return "", false
		}
		name = expr[:open]
		index = i
	}
	values := m.GetValues(name)
	if index >= len(values) {
		return "", false
	}
	return values[index], true
}

// GetProperty returns the first value stored under the property's name.
func (m *Metadata) GetProperty(p *Property) (string, bool) {
	if p == nil {
		return "", false
	}
	return m.getValue(p.name)
}

// GetPropertyValues returns all values stored under the property's name
// in insertion order.
func (m *Metadata) GetPropertyValues(p *Property) []string {
	if p == nil {
		return nil
	}
	return m.getValues(p.name)
}

// IsMultiValuedProperty reports whether the property's name currently
// holds more than one value.
func (m *Metadata) IsMultiValuedProperty(p *Property) bool {
	if p == nil {
		return false
	}
	return len(m.getValues(p.name)) > 1
}

// GetInt returns the stored value of a SIMPLE INTEGER property parsed as
// a base-10 integer. A type mismatch, an absent value, and an unparseable
// value all yield ok == false; reads never fail hard.
func (m *Metadata) GetInt(p *Property) (int, bool) {
	if p == nil {
		return 0, false
	}
	primary := p.PrimaryProperty()
	if primary.propertyType != PropertySimple || primary.valueType != ValueInteger {
		return 0, false
	}
	v, ok := m.GetProperty(p)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetDate returns the stored value of a SIMPLE DATE property parsed as a
// normalized instant. Same soft-failure contract as GetInt.
func (m *Metadata) GetDate(p *Property) (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	primary := p.PrimaryProperty()
	if primary.propertyType != PropertySimple || primary.valueType != ValueDate {
		return time.Time{}, false
	}
	v, ok := m.GetProperty(p)
	if !ok {
		return time.Time{}, false
	}
	return dateutil.Parse(v)
}

// AddProperty appends a value under the property's declared constraints.
//
// A COMPOSITE property adds to its primary and then to every secondary;
// a secondary that rejects the add because it is single-valued and
// already occupied is overwritten instead, so the write is never lost.
// That overwrite is long-standing legacy behavior, kept as is.
//
// A SIMPLE property that does not permit multiple values rejects a second
// value with a PropertyTypeError and leaves the store unchanged. A nil
// property is a silent no-op.
func (m *Metadata) AddProperty(p *Property, value string) error {
	if p == nil {
		return nil
	}
	if p.propertyType == PropertyComposite {
		if err := m.AddProperty(p.primary, value); err != nil {
			return err
		}
		for _, s := range p.secondaries {
			if err := m.AddProperty(s, value); err != nil {
				var pte *PropertyTypeError
				if !errors.As(err, &pte) {
					return err
				}
				m.setValue(s.name, &value)
			}
		}
		return nil
	}
	if !p.multiValued {
		if _, occupied := m.getValue(p.name); occupied {
			return singleValueError(p.name)
		}
	}
	m.addValue(p.name, value)
	return nil
}

// setPropertyValue is the composite-aware clear-then-add. A nil value
// clears the affected slots. Unlike AddProperty there is no overwrite
// fallback: set always clears first, so it cannot trip the guard.
func (m *Metadata) setPropertyValue(p *Property, value *string) {
	if p == nil {
		panic("metadata: set on nil property")
	}
	if p.propertyType == PropertyComposite {
		m.setPropertyValue(p.primary, value)
		for _, s := range p.secondaries {
			m.setPropertyValue(s, value)
		}
		return
	}
	m.setValue(p.name, value)
}

// SetProperty replaces all values under the property with the given one,
// fanning out across a composite's primary and secondaries. The
// single-value guard does not apply: set clears before adding. A nil
// property is a programming error and panics.
func (m *Metadata) SetProperty(p *Property, value string) {
	m.setPropertyValue(p, &value)
}

// SetPropertyValues stores the given values under the property, fanning
// out across a composite. For SIMPLE properties each value is appended
// through AddProperty, so a single-valued property rejects the second
// value. Unlike SetProperty, existing values are not cleared first;
// callers wanting replace semantics must Remove or SetProperty before
// calling. A nil property panics.
func (m *Metadata) SetPropertyValues(p *Property, values []string) error {
	if p == nil {
		panic("metadata: set on nil property")
	}
	if p.propertyType == PropertyComposite {
		if err := m.SetPropertyValues(p.primary, values); err != nil {
			return err
		}
		for _, s := range p.secondaries {
			if err := m.SetPropertyValues(s, values); err != nil {
				return err
			}
		}
		return nil
	}
	for _, v := range values {
		if err := m.AddProperty(p, v); err != nil {
			return err
		}
	}
	return nil
}

// SetInt stores an integer under a SIMPLE INTEGER property, converting to
// its canonical decimal string.
func (m *Metadata) SetInt(p *Property, value int) error {
	if p == nil {
		panic("metadata: set on nil property")
	}
	primary := p.PrimaryProperty()
	if primary.propertyType != PropertySimple {
		return typeError(primary.name, PropertySimple, primary.propertyType)
	}
	if primary.valueType != ValueInteger {
		return typeError(primary.name, ValueInteger, primary.valueType)
	}
	m.SetProperty(p, strconv.Itoa(value))
	return nil
}

// SetFloat stores a real or rational value under a SIMPLE REAL or
// RATIONAL property.
func (m *Metadata) SetFloat(p *Property, value float64) error {
	if p == nil {
		panic("metadata: set on nil property")
	}
	primary := p.PrimaryProperty()
	if primary.propertyType != PropertySimple {
		return typeError(primary.name, PropertySimple, primary.propertyType)
	}
	if primary.valueType != ValueReal && primary.valueType != ValueRational {
		return typeError(primary.name, ValueReal, primary.valueType)
	}
	m.SetProperty(p, strconv.FormatFloat(value, 'g', -1, 64))
	return nil
}

// SetDate stores an instant under a SIMPLE DATE property as normalized
// UTC date text. A zero time clears the property.
func (m *Metadata) SetDate(p *Property, value time.Time) error {
	if p == nil {
		panic("metadata: set on nil property")
	}
	primary := p.PrimaryProperty()
	if primary.propertyType != PropertySimple {
		return typeError(primary.name, PropertySimple, primary.propertyType)
	}
	if primary.valueType != ValueDate {
		return typeError(primary.name, ValueDate, primary.valueType)
	}
	var text *string
	if !value.IsZero() {
		s := dateutil.Format(value)
		text = &s
	}
	m.setPropertyValue(p, text)
	return nil
}

// String renders a deterministic XML-shaped dump of every name and value,
// for debugging and tests. Values appear in stored (escaped) form.
func (m *Metadata) String() string {
	var b strings.Builder
	b.WriteString("<" + entryPrefix + ":metadata")

	prefixes := make([]string, 0, len(m.prefixes))
	for prefix := range m.prefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		fmt.Fprintf(&b, " xmlns:%s=%q", prefix, m.prefixes[prefix])
	}
	b.WriteString(">\n")

	generic := entryQName()
	for _, e := range m.entries {
		if e.name.Equal(generic) {
			fmt.Fprintf(&b, "  <%s %s:name=%q>%s</%s>\n",
				e.name.Qualified(), entryPrefix, e.display, e.value, e.name.Qualified())
		} else {
			fmt.Fprintf(&b, "  <%s>%s</%s>\n", e.display, e.value, e.display)
		}
	}

	b.WriteString("</" + entryPrefix + ":metadata>\n")
	return b.String()
}
