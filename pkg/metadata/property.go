// ABOUTME: Property definitions and the global well-known property registry
// ABOUTME: Declares SIMPLE vs COMPOSITE shape, value types and cardinality

package metadata

import (
	"fmt"
	"sync"
)

// PropertyType describes the structural shape of a property.
type PropertyType int

const (
	// PropertySimple maps to exactly one stored slot.
	PropertySimple PropertyType = iota + 1
	// PropertyComposite fans a write out to a primary slot plus a set of
	// synchronized secondary slots.
	PropertyComposite
)

func (t PropertyType) String() string {
	switch t {
	case PropertySimple:
		return "SIMPLE"
	case PropertyComposite:
		return "COMPOSITE"
	default:
		return fmt.Sprintf("PropertyType(%d)", int(t))
	}
}

// ValueType describes the declared value domain of a property.
type ValueType int

const (
	ValueText ValueType = iota + 1
	ValueInteger
	ValueReal
	ValueRational
	ValueDate
	ValueBoolean
	ValueURI
	ValueOpenChoice
	ValueClosedChoice
)

func (t ValueType) String() string {
	switch t {
	case ValueText:
		return "TEXT"
	case ValueInteger:
		return "INTEGER"
	case ValueReal:
		return "REAL"
	case ValueRational:
		return "RATIONAL"
	case ValueDate:
		return "DATE"
	case ValueBoolean:
		return "BOOLEAN"
	case ValueURI:
		return "URI"
	case ValueOpenChoice:
		return "OPEN_CHOICE"
	case ValueClosedChoice:
		return "CLOSED_CHOICE"
	default:
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
}

// Property is an immutable definition of a well-known metadata attribute.
// Constructing a property registers it globally under its qualified name;
// an unregistered name behaves as an ad-hoc SIMPLE multi-valued TEXT key.
type Property struct {
	name         QName
	propertyType PropertyType
	valueType    ValueType
	multiValued  bool
	primary      *Property
	secondaries  []*Property
	choices      []string
}

// Name returns the declared qualified name.
func (p *Property) Name() QName { return p.name }

// PropertyType returns SIMPLE or COMPOSITE.
func (p *Property) PropertyType() PropertyType { return p.propertyType }

// ValueType returns the declared value domain.
func (p *Property) ValueType() ValueType { return p.valueType }

// MultiValuePermitted reports whether more than one value may accumulate.
func (p *Property) MultiValuePermitted() bool { return p.multiValued }

// PrimaryProperty returns the composite's primary, or the property itself
// when it is SIMPLE.
func (p *Property) PrimaryProperty() *Property {
	if p.propertyType == PropertyComposite {
		return p.primary
	}
	return p
}

// SecondaryExtractProperties returns the composite's secondary slots in
// declaration order; nil for SIMPLE properties.
func (p *Property) SecondaryExtractProperties() []*Property { return p.secondaries }

// Choices returns the permitted values of a closed-choice property.
func (p *Property) Choices() []string { return p.choices }

var propertyRegistry = struct {
	sync.RWMutex
	byName map[string]*Property
}{byName: make(map[string]*Property)}

func register(p *Property) *Property {
	propertyRegistry.Lock()
	defer propertyRegistry.Unlock()
	propertyRegistry.byName[p.name.Qualified()] = p
	return p
}

// PropertyByName looks up a registered property by its qualified name
// ("prefix:local" or plain "local"). Returns nil for unknown names.
func PropertyByName(name string) *Property {
	propertyRegistry.RLock()
	defer propertyRegistry.RUnlock()
	return propertyRegistry.byName[name]
}

func newSimple(name QName, vt ValueType, multi bool) *Property {
	return register(&Property{
		name:         name,
		propertyType: PropertySimple,
		valueType:    vt,
		multiValued:  multi,
	})
}

// NewTextProperty declares a single-valued SIMPLE TEXT property.
func NewTextProperty(name QName) *Property { return newSimple(name, ValueText, false) }

// NewTextBagProperty declares a multi-valued SIMPLE TEXT property.
func NewTextBagProperty(name QName) *Property { return newSimple(name, ValueText, true) }

// NewIntegerProperty declares a single-valued SIMPLE INTEGER property.
func NewIntegerProperty(name QName) *Property { return newSimple(name, ValueInteger, false) }

// NewRealProperty declares a single-valued SIMPLE REAL property.
func NewRealProperty(name QName) *Property { return newSimple(name, ValueReal, false) }

// NewRationalProperty declares a single-valued SIMPLE RATIONAL property.
func NewRationalProperty(name QName) *Property { return newSimple(name, ValueRational, false) }

// NewDateProperty declares a single-valued SIMPLE DATE property.
func NewDateProperty(name QName) *Property { return newSimple(name, ValueDate, false) }

// NewBooleanProperty declares a single-valued SIMPLE BOOLEAN property.
func NewBooleanProperty(name QName) *Property { return newSimple(name, ValueBoolean, false) }

// NewURIProperty declares a single-valued SIMPLE URI property.
func NewURIProperty(name QName) *Property { return newSimple(name, ValueURI, false) }

// NewClosedChoiceProperty declares a single-valued SIMPLE property whose
// values are restricted to the given set.
func NewClosedChoiceProperty(name QName, choices ...string) *Property {
	p := newSimple(name, ValueClosedChoice, false)
	p.choices = choices
	return p
}

// NewCompositeProperty declares a COMPOSITE property whose writes fan out
// from the primary slot to every secondary slot. The primary and every
// secondary must themselves be SIMPLE; anything else panics, since
// definitions are built at package init time.
func NewCompositeProperty(primary *Property, secondaries ...*Property) *Property {
	if primary == nil || primary.propertyType != PropertySimple {
		panic("metadata: composite primary must be a SIMPLE property")
	}
	for _, s := range secondaries {
		if s == nil || s.propertyType != PropertySimple {
			panic("metadata: composite secondaries must be SIMPLE properties")
		}
	}
	return register(&Property{
		name:         primary.name,
		propertyType: PropertyComposite,
		valueType:    primary.valueType,
		multiValued:  primary.multiValued,
		primary:      primary,
		secondaries:  secondaries,
	})
}
