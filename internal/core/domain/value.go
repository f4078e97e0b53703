package domain

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// listSeparator separates the items of a list value in its textual form.
const listSeparator = ","

// Value is an immutable argument value of one of the supported parameter types.
// Scalars are held as bool, int32, int64, float64 or string; lists as slices of those.
type Value struct {
	typ  TypeTag
	data any
}

// BoolValue returns a bool value.
func BoolValue(v bool) Value { return Value{typ: TypeBool, data: v} }

// IntValue returns an int value.
func IntValue(v int32) Value { return Value{typ: TypeInt, data: v} }

// LongValue returns a long value.
func LongValue(v int64) Value { return Value{typ: TypeLong, data: v} }

// DoubleValue returns a double value.
func DoubleValue(v float64) Value { return Value{typ: TypeDouble, data: v} }

// StringValue returns a string value.
func StringValue(v string) Value { return Value{typ: TypeString, data: v} }

// NewValue returns a value of type t holding v.
// v must have the Go representation of t; slices are copied.
func NewValue(t TypeTag, v any) (Value, error) {
	if !t.Supported() {
		return Value{}, zerr.With(zerr.Wrap(ErrInvalidArgument, "unsupported type"), "type", t.String())
	}

	var ok bool
	switch t {
	case TypeBool:
		_, ok = v.(bool)
	case TypeInt:
		_, ok = v.(int32)
	case TypeLong:
		_, ok = v.(int64)
	case TypeDouble:
		_, ok = v.(float64)
	case TypeString:
		_, ok = v.(string)
	case ListOf(TypeBool):
		v, ok = cloneSlice[bool](v)
	case ListOf(TypeInt):
		v, ok = cloneSlice[int32](v)
	case ListOf(TypeLong):
		v, ok = cloneSlice[int64](v)
	case ListOf(TypeDouble):
		v, ok = cloneSlice[float64](v)
	case ListOf(TypeString):
		v, ok = cloneSlice[string](v)
	}
	if !ok {
		return Value{}, zerr.With(zerr.Wrap(ErrInvalidArgument, "value does not match type"), "type", t.String())
	}
	return Value{typ: t, data: v}, nil
}

func cloneSlice[E any](v any) (any, bool) {
	s, ok := v.([]E)
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}

// ParseValue converts the textual form of an argument into a value of type t.
// List items are separated by commas and trimmed of surrounding whitespace.
func ParseValue(t TypeTag, raw string) (Value, error) {
	if !t.Supported() {
		return Value{}, zerr.With(zerr.Wrap(ErrInvalidArgument, "unsupported type"), "type", t.String())
	}

	if !t.IsList() {
		v, err := parseScalar(t, raw)
		if err != nil {
			return Value{}, zerr.With(zerr.With(zerr.Wrap(ErrInvalidArgument, err.Error()), "type", t.String()), "value", raw)
		}
		return Value{typ: t, data: v}, nil
	}

	var items []string
	if raw != "" {
		items = strings.Split(raw, listSeparator)
	}

	switch t.Elem() {
	case TypeBool:
		return parseList[bool](t, items)
	case TypeInt:
		return parseList[int32](t, items)
	case TypeLong:
		return parseList[int64](t, items)
	case TypeDouble:
		return parseList[float64](t, items)
	default:
		return parseList[string](t, items)
	}
}

func parseList[E any](t TypeTag, items []string) (Value, error) {
	out := make([]E, 0, len(items))
	for _, item := range items {
		v, err := parseScalar(t.Elem(), strings.TrimSpace(item))
		if err != nil {
			return Value{}, zerr.With(zerr.With(zerr.Wrap(ErrInvalidArgument, err.Error()), "type", t.String()), "value", item)
		}
		out = append(out, v.(E))
	}
	return Value{typ: t, data: out}, nil
}

func parseScalar(t TypeTag, raw string) (any, error) {
	switch t {
	case TypeBool:
		return strconv.ParseBool(raw)
	case TypeInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		return int32(v), err
	case TypeLong:
		return strconv.ParseInt(raw, 10, 64)
	case TypeDouble:
		return strconv.ParseFloat(raw, 64)
	default:
		return raw, nil
	}
}

// Type returns the semantic type of the value.
func (v Value) Type() TypeTag {
	return v.typ
}

// Interface returns the Go representation of the value.
func (v Value) Interface() any {
	return v.data
}

// String renders the value in the form accepted by ParseValue.
func (v Value) String() string {
	switch d := v.data.(type) {
	case []bool:
		return joinItems(d)
	case []int32:
		return joinItems(d)
	case []int64:
		return joinItems(d)
	case []float64:
		return joinItems(d)
	case []string:
		return strings.Join(d, listSeparator)
	default:
		return formatScalar(d)
	}
}

func joinItems[E any](items []E) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = formatScalar(item)
	}
	return strings.Join(parts, listSeparator)
}

func formatScalar(v any) string {
	switch d := v.(type) {
	case bool:
		return strconv.FormatBool(d)
	case int32:
		return strconv.FormatInt(int64(d), 10)
	case int64:
		return strconv.FormatInt(d, 10)
	case float64:
		return strconv.FormatFloat(d, 'g', -1, 64)
	case string:
		return d
	default:
		return ""
	}
}

// Equal reports whether v and o have the same type and the same contents.
func (v Value) Equal(o Value) bool {
	return bytes.Equal(v.appendCanonical(nil), o.appendCanonical(nil))
}

// appendCanonical appends an unambiguous encoding of the value to b.
// Every atom is length-prefixed so that list boundaries and separators in strings cannot collide.
func (v Value) appendCanonical(b []byte) []byte {
	b = appendAtom(b, string(v.typ))
	switch d := v.data.(type) {
	case []bool:
		b = appendItems(b, d)
	case []int32:
		b = appendItems(b, d)
	case []int64:
		b = appendItems(b, d)
	case []float64:
		b = appendItems(b, d)
	case []string:
		b = appendItems(b, d)
	default:
		b = appendAtom(b, canonicalScalar(d))
	}
	return b
}

func appendItems[E any](b []byte, items []E) []byte {
	b = strconv.AppendInt(b, int64(len(items)), 10)
	b = append(b, '#')
	for _, item := range items {
		b = appendAtom(b, canonicalScalar(item))
	}
	return b
}

// canonicalScalar is formatScalar with negative zero folded into zero.
func canonicalScalar(v any) string {
	if f, ok := v.(float64); ok && f == 0 {
		return "0"
	}
	return formatScalar(v)
}

func appendAtom(b []byte, s string) []byte {
	b = strconv.AppendInt(b, int64(len(s)), 10)
	b = append(b, ':')
	return append(b, s...)
}
