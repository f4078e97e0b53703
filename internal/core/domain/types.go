package domain

import "strings"

// TypeTag names the semantic type of a task parameter.
// Scalars are "bool", "int", "long", "double" and "string"; a flat list of a scalar is
// written with a "[]" suffix, e.g. "string[]".
type TypeTag string

const (
	// TypeBool is a boolean flag.
	TypeBool TypeTag = "bool"
	// TypeInt is a 32-bit signed integer.
	TypeInt TypeTag = "int"
	// TypeLong is a 64-bit signed integer.
	TypeLong TypeTag = "long"
	// TypeDouble is a 64-bit floating point number.
	TypeDouble TypeTag = "double"
	// TypeString is a string.
	TypeString TypeTag = "string"
)

const listSuffix = "[]"

// ListOf returns the list type whose elements are of type t.
func ListOf(t TypeTag) TypeTag {
	return t + listSuffix
}

// IsList reports whether t denotes a flat list.
func (t TypeTag) IsList() bool {
	return strings.HasSuffix(string(t), listSuffix)
}

// Elem returns the element type of a list, or t itself for a scalar.
func (t TypeTag) Elem() TypeTag {
	return TypeTag(strings.TrimSuffix(string(t), listSuffix))
}

// Supported reports whether t belongs to the closed set of parameter types a task may declare.
func (t TypeTag) Supported() bool {
	elem := t.Elem()
	if elem.IsList() {
		return false
	}
	switch elem {
	case TypeBool, TypeInt, TypeLong, TypeDouble, TypeString:
		return true
	default:
		return false
	}
}

// String returns the tag as written in signatures.
func (t TypeTag) String() string {
	return string(t)
}
