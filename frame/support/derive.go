package support

import (
	"fmt"
	"reflect"
	"strings"
)

// Derive markers. A struct declaration listing them in //pallet:derive
// directives receives explicit implementations that place no constraint on
// its type parameters.
type (
	CloneNoBound        struct{}
	EqNoBound           struct{}
	PartialEqNoBound    struct{}
	RuntimeDebugNoBound struct{}
)

// Eq is satisfied by types with a total Equal.
type Eq[V any] interface {
	Equal(other V) bool
}

// CloneField clones v through its Clone method when it has one and copies it otherwise.
func CloneField[V any](v V) V {
	if c, ok := any(v).(interface{ Clone() V }); ok {
		return c.Clone()
	}

	return v
}

// EqualField compares a and b through Equal when available, deeply otherwise.
func EqualField[V any](a, b V) bool {
	if e, ok := any(a).(Eq[V]); ok {
		return e.Equal(b)
	}

	return reflect.DeepEqual(a, b)
}

// DebugField is one named field passed to DebugStruct.
type DebugField struct {
	Name  string
	Value any
}

// DebugStruct formats a struct as "Name { a: 1, b: 2 }", or "Name" without fields.
func DebugStruct(name string, fields ...DebugField) string {
	if len(fields) == 0 {
		return name
	}

	var b strings.Builder

	b.WriteString(name)
	b.WriteString(" { ")

	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%s: %v", f.Name, f.Value)
	}

	b.WriteString(" }")

	return b.String()
}
