package main

import (
	"github.com/jcorbin/twostack/internal/code"
	"github.com/jcorbin/twostack/internal/diag"
	"github.com/jcorbin/twostack/internal/flushio"
)

// VM executes Code against two value stacks and a function table.
//
// Nested executions (function calls, and Code values reached by ^ or ?) do
// not recurse on the Go stack: each one pushes a frame, and the step loop
// always runs the innermost frame. Language level recursion therefore costs
// heap, not native stack.
type VM struct {
	logging
	out  flushio.WriteFlusher
	diag diag.Reporter

	// The primary stack is used implicitly by almost every operation; the
	// secondary stack is a parking area reached only through , ; @ and #.
	stack []code.Value
	stash []code.Value

	// Function bodies by name; an identifier token calls the body.
	funcs map[string]*code.Code

	frames   []frame
	maxDepth int
}

// frame is one suspended or running Code execution.
type frame struct {
	code *code.Code
	ip   int // next token to run
	at   int // token being run
}

func (vm *VM) push(val code.Value) {
	vm.stack = append(vm.stack, val)
}

func (vm *VM) pop(tok code.Token) (val code.Value) {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.fail(tok, "Popped empty primary stack")
	}
	val, vm.stack[i], vm.stack = vm.stack[i], nil, vm.stack[:i]
	return val
}

func (vm *VM) peek(tok code.Token) code.Value {
	i := len(vm.stack) - 1
	if i < 0 {
		vm.fail(tok, "Peeked empty primary stack")
	}
	return vm.stack[i]
}

func (vm *VM) popStash(tok code.Token) (val code.Value) {
	i := len(vm.stash) - 1
	if i < 0 {
		vm.fail(tok, "Popped empty secondary stack")
	}
	val, vm.stash[i], vm.stash = vm.stash[i], nil, vm.stash[:i]
	return val
}

func (vm *VM) top() *frame { return &vm.frames[len(vm.frames)-1] }

// call starts a nested execution of c; the calling frame resumes at its
// already advanced instruction pointer once c ends.
func (vm *VM) call(tok code.Token, c *code.Code) {
	if vm.maxDepth != 0 && len(vm.frames) >= vm.maxDepth {
		vm.fail(tok, "Call depth limit %v exceeded", vm.maxDepth)
	}
	vm.frames = append(vm.frames, frame{code: c})
	vm.logf(">", "call %v depth:%v", tok, len(vm.frames))
}

// ret ends the innermost execution.
func (vm *VM) ret() {
	i := len(vm.frames) - 1
	vm.frames[i] = frame{}
	vm.frames = vm.frames[:i]
	vm.logf("<", "return depth:%v", i)
}

// define registers or replaces a function.
func (vm *VM) define(name string, body *code.Code) {
	if vm.funcs == nil {
		vm.funcs = make(map[string]*code.Code)
	}
	vm.funcs[name] = body
}

// Stack returns a copy of the primary stack, bottom first.
func (vm *VM) Stack() []code.Value { return append([]code.Value(nil), vm.stack...) }

// Stash returns a copy of the secondary stack, bottom first.
func (vm *VM) Stash() []code.Value { return append([]code.Value(nil), vm.stash...) }
