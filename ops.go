package main

import (
	"io"
	"math"

	"github.com/jcorbin/twostack/internal/code"
	"github.com/jcorbin/twostack/internal/scan"
)

//// Literals

// Int, Float, Text, and Code literals push a copy of their value; Code is
// deep copied so that the pushed value is independent of the token.
func (vm *VM) literal(tok code.Token) { vm.push(code.Copy(tok.Value)) }

//// Stack Operations

// Symbol   Name     Function
//    ,     park     pop primary, push onto secondary
func (vm *VM) park(tok code.Token) { vm.stash = append(vm.stash, vm.pop(tok)) }

// Symbol   Name     Function
//    ;     unpark   pop secondary, push onto primary
func (vm *VM) unpark(tok code.Token) { vm.push(vm.popStash(tok)) }

// Symbol   Name     Function
//    @     drop     pop secondary and discard it
func (vm *VM) drop(tok code.Token) { vm.popStash(tok) }

// Symbol   Name     Function
//    #     swap     exchange the primary and secondary stacks wholesale
func (vm *VM) swap(tok code.Token) { vm.stack, vm.stash = vm.stash, vm.stack }

// Symbol   Name     Function
//    .     dup      push a copy of the top of the primary stack
func (vm *VM) dup(tok code.Token) { vm.push(code.Copy(vm.peek(tok))) }

//// Input/Output Operations

// Symbol   Name     Function
//    $     print    pop and write its textual form and a newline to output
func (vm *VM) print(tok code.Token) {
	val := vm.pop(tok)
	if _, err := io.WriteString(vm.out, val.Render()+"\n"); err != nil {
		vm.halt(err)
	}
}

//// Unary Operations

// Symbol   Name     Function
//    !     truth    pop, push 1 if truthy else 0
func (vm *VM) truth(tok code.Token) { vm.push(code.Bool(vm.pop(tok).Truthy())) }

// Symbol   Name        Function
//    ~     transform   Int: bitwise complement
//                      Float: truncate toward zero into an Int
//                      Text: scan into Code, any lexical error is fatal
func (vm *VM) transform(tok code.Token) {
	switch val := vm.pop(tok).(type) {
	case code.Int:
		vm.push(^val)
	case code.Float:
		vm.push(code.Int(truncate(val)))
	case code.Text:
		vm.flush()
		c, err := scan.Source(string(val), vm.diag)
		vm.haltif(err)
		vm.push(c)
	default:
		vm.fail(tok, "Cannot perform this operation on type %v", val.TypeName())
	}
}

//// Arithmetic Operations

// Binary operations pop the right operand first, then the left. Int pairs
// stay Int with wrapping overflow; a Float on either side promotes the other.

// Symbol   Name   Function
//    +     add    numbers: sum
//                 Text with a number or Text: concatenated textual forms
//                 Code with Code: concatenated programs, see code.Concat
func (vm *VM) add(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	_, aText := a.(code.Text)
	_, bText := b.(code.Text)
	x, aCode := a.(*code.Code)
	y, bCode := b.(*code.Code)
	switch {
	case aCode && bCode:
		c, err := x.Concat(y)
		if err != nil {
			vm.fail(tok, "%v", err)
		}
		vm.push(c)
	case (aText || bText) && !aCode && !bCode:
		vm.push(code.Text(a.Render() + b.Render()))
	default:
		vm.push(vm.numeric(tok, a, b,
			func(x, y int64) int64 { return x + y },
			func(x, y float64) float64 { return x + y }))
	}
}

// Symbol   Name   Function
//    -     sub    numbers: difference
func (vm *VM) sub(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	vm.push(vm.numeric(tok, a, b,
		func(x, y int64) int64 { return x - y },
		func(x, y float64) float64 { return x - y }))
}

// Symbol   Name   Function
//    *     mul    numbers: product
func (vm *VM) mul(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	vm.push(vm.numeric(tok, a, b,
		func(x, y int64) int64 { return x * y },
		func(x, y float64) float64 { return x * y }))
}

// Symbol   Name   Function
//    /     div    numbers: quotient, truncated for Int; Int division by zero
//                 is an error, Float division follows IEEE
func (vm *VM) div(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	vm.push(vm.numeric(tok, a, b,
		func(x, y int64) int64 {
			if y == 0 {
				vm.fail(tok, "Division by zero")
			}
			return x / y
		},
		func(x, y float64) float64 { return x / y }))
}

// Symbol   Name   Function
//    %     mod    numbers: remainder with the sign of the dividend
func (vm *VM) mod(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	vm.push(vm.numeric(tok, a, b,
		func(x, y int64) int64 {
			if y == 0 {
				vm.fail(tok, "Division by zero")
			}
			return x % y
		},
		math.Mod))
}

func (vm *VM) numeric(
	tok code.Token, a, b code.Value,
	ints func(x, y int64) int64,
	floats func(x, y float64) float64,
) code.Value {
	switch x := a.(type) {
	case code.Int:
		switch y := b.(type) {
		case code.Int:
			return code.Int(ints(int64(x), int64(y)))
		case code.Float:
			return code.Float(floats(float64(x), float64(y)))
		}
	case code.Float:
		switch y := b.(type) {
		case code.Int:
			return code.Float(floats(float64(x), float64(y)))
		case code.Float:
			return code.Float(floats(float64(x), float64(y)))
		}
	}
	vm.fail(tok, "Cannot perform this operation on types %v and %v", a.TypeName(), b.TypeName())
	return nil
}

//// Bitwise Operations

// Symbol   Name   Function
//    &     and    Int only: bitwise and
func (vm *VM) and(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	x, y := vm.ints(tok, a, b)
	vm.push(x & y)
}

// Symbol   Name   Function
//    |     or     Int only: bitwise or
func (vm *VM) or(tok code.Token) {
	b, a := vm.pop(tok), vm.pop(tok)
	x, y := vm.ints(tok, a, b)
	vm.push(x | y)
}

func (vm *VM) ints(tok code.Token, a, b code.Value) (x, y code.Int) {
	x, ok := a.(code.Int)
	if !ok {
		vm.fail(tok, "Cannot perform this operation on type %v", a.TypeName())
	}
	y, ok = b.(code.Int)
	if !ok {
		vm.fail(tok, "Cannot perform this operation on type %v", b.TypeName())
	}
	return x, y
}

//// Comparison Operations

// Comparisons push 1 or 0. Numbers compare with the same promotion as
// arithmetic, Text compares bytewise, anything else is an error.

type comparison struct {
	ints   func(x, y int64) bool
	floats func(x, y float64) bool
	texts  func(x, y string) bool
}

var (
	cmpEqual = comparison{
		func(x, y int64) bool { return x == y },
		func(x, y float64) bool { return x == y },
		func(x, y string) bool { return x == y },
	}
	cmpGreater = comparison{
		func(x, y int64) bool { return x > y },
		func(x, y float64) bool { return x > y },
		func(x, y string) bool { return x > y },
	}
	cmpLess = comparison{
		func(x, y int64) bool { return x < y },
		func(x, y float64) bool { return x < y },
		func(x, y string) bool { return x < y },
	}
)

// Symbol   Name      Function
//    =     equal     a == b
func (vm *VM) equal(tok code.Token) { vm.compare(tok, cmpEqual) }

// Symbol   Name      Function
//    >     greater   a > b
func (vm *VM) greater(tok code.Token) { vm.compare(tok, cmpGreater) }

// Symbol   Name      Function
//    <     less      a < b
func (vm *VM) less(tok code.Token) { vm.compare(tok, cmpLess) }

func (vm *VM) compare(tok code.Token, cmp comparison) {
	b, a := vm.pop(tok), vm.pop(tok)
	vm.push(code.Bool(vm.compared(tok, cmp, a, b)))
}

func (vm *VM) compared(tok code.Token, cmp comparison, a, b code.Value) bool {
	switch x := a.(type) {
	case code.Int:
		switch y := b.(type) {
		case code.Int:
			return cmp.ints(int64(x), int64(y))
		case code.Float:
			return cmp.floats(float64(x), float64(y))
		}
	case code.Float:
		switch y := b.(type) {
		case code.Int:
			return cmp.floats(float64(x), float64(y))
		case code.Float:
			return cmp.floats(float64(x), float64(y))
		}
	case code.Text:
		if y, ok := b.(code.Text); ok {
			return cmp.texts(string(x), string(y))
		}
	}
	vm.fail(tok, "Cannot perform this operation on types %v and %v", a.TypeName(), b.TypeName())
	return false
}

//// Control Operations

// Symbol   Name     Function
//    ^     jump     pop a target and transfer control to it:
//                   Int or Float: offset from this token, wrapping around
//                   Text: label in the running code
//                   Code: run it, then continue after this token
func (vm *VM) jump(tok code.Token) { vm.transfer(tok, vm.pop(tok)) }

// Symbol   Name     Function
//    ?     branch   pop a target, then a condition; jump like ^ only if the
//                   condition is truthy
func (vm *VM) branch(tok code.Token) {
	target, cond := vm.pop(tok), vm.pop(tok)
	if name, ok := target.(code.Text); ok {
		vm.label(tok, name)
	}
	if cond.Truthy() {
		vm.transfer(tok, target)
	}
}

func (vm *VM) transfer(tok code.Token, target code.Value) {
	fr := vm.top()
	switch t := target.(type) {
	case code.Int:
		fr.ip = wrapOffset(fr.at, int64(t), len(fr.code.Tokens))
	case code.Float:
		fr.ip = wrapOffset(fr.at, truncate(t), len(fr.code.Tokens))
	case code.Text:
		fr.ip = vm.label(tok, t)
	case *code.Code:
		vm.call(tok, t)
	}
}

// label resolves name in the running code.
func (vm *VM) label(tok code.Token, name code.Text) int {
	i, ok := vm.top().code.Label(string(name))
	if !ok {
		vm.fail(tok, "Unknown label %q", string(name))
	}
	return i
}

// truncate converts toward zero, saturating at the Int range; NaN is 0.
func truncate(f code.Float) int64 {
	switch v := float64(f); {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(v)
	}
}

// wrapOffset computes (at + off) modulo n, wrapping negative results around.
func wrapOffset(at int, off int64, n int) int {
	m := int64(n)
	i := (int64(at) + off%m) % m
	if i < 0 {
		i += m
	}
	return int(i)
}

//// Function Operations

// Symbol   Name     Function
//    :     define   pop a Text name, then a Code body; (re)define the
//                   function of that name
func (vm *VM) defineOp(tok code.Token) {
	nameVal, bodyVal := vm.pop(tok), vm.pop(tok)
	name, ok := nameVal.(code.Text)
	if !ok {
		vm.fail(tok, "Expecting string as function name (got %v)", nameVal.TypeName())
	}
	body, ok := bodyVal.(*code.Code)
	if !ok {
		vm.fail(tok, "Expecting code object as function body (got %v)", bodyVal.TypeName())
	}
	vm.define(string(name), body)
	vm.logf("def", "%v = %v", string(name), body)
}

// An identifier calls the function of that name.
func (vm *VM) callFunc(tok code.Token) {
	body, ok := vm.funcs[tok.Lexeme]
	if !ok {
		vm.fail(tok, "Undefined function")
	}
	vm.call(tok, body)
}

// The end of program token finishes the running code.
func (vm *VM) end(tok code.Token) { vm.ret() }
