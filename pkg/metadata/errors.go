package metadata

import "fmt"

// PropertyTypeError reports a typed mutation against a property whose
// declared shape or value type does not match the operation, or an Add
// that would push a single-valued property past one value. Expected and
// Actual carry the mismatched types for diagnostics.
type PropertyTypeError struct {
	Name     string
	Expected string
	Actual   string
}

func (e *PropertyTypeError) Error() string {
	return fmt.Sprintf("property %s: expected %s, got %s", e.Name, e.Expected, e.Actual)
}

func typeError(name QName, expected, actual fmt.Stringer) *PropertyTypeError {
	return &PropertyTypeError{
		Name:     name.Qualified(),
		Expected: expected.String(),
		Actual:   actual.String(),
	}
}

func singleValueError(name QName) *PropertyTypeError {
	return &PropertyTypeError{
		Name:     name.Qualified(),
		Expected: "at most one value",
		Actual:   "an additional value",
	}
}
