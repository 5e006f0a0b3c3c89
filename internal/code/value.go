package code

import (
	"math"
	"strconv"
)

// Value is a runtime datum: one of Int, Float, Text, or *Code.
type Value interface {
	// TypeName names the variant in diagnostics.
	TypeName() string

	// Render returns the textual form used by printing and text concatenation.
	Render() string

	// Truthy maps the value to a condition: numeric zero is false, all else
	// is true.
	Truthy() bool

	isValue()
}

// Int is a 64-bit signed integer value.
type Int int64

// Float is a 64-bit floating point value.
type Float float64

// Text is an immutable character sequence, shared by every holder.
type Text string

func (Int) isValue()   {}
func (Float) isValue() {}
func (Text) isValue()  {}
func (*Code) isValue() {}

func (Int) TypeName() string   { return "Int" }
func (Float) TypeName() string { return "Float" }
func (Text) TypeName() string  { return "Text" }
func (*Code) TypeName() string { return "Code" }

func (n Int) Truthy() bool   { return n != 0 }
func (f Float) Truthy() bool { return f != 0 }
func (Text) Truthy() bool    { return true }
func (*Code) Truthy() bool   { return true }

func (n Int) Render() string  { return strconv.FormatInt(int64(n), 10) }
func (s Text) Render() string { return string(s) }
func (*Code) Render() string  { return "<Code object>" }

// Render formats without an exponent, e.g. 1.5, 3, 100000000000000000000.
func (f Float) Render() string {
	switch v := float64(f); {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "NaN"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// Bool converts a Go bool into Int 1 or 0.
func Bool(b bool) Int {
	if b {
		return 1
	}
	return 0
}

// Copy returns v, deep cloning Code values.
func Copy(v Value) Value {
	if c, ok := v.(*Code); ok {
		return c.Clone()
	}
	return v
}
