package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcorbin/twostack/internal/code"
	"github.com/jcorbin/twostack/internal/diag"
	"github.com/jcorbin/twostack/internal/logio"
)

// ErrRuntime is wrapped by every runtime failure; the diagnostic describing
// it has already been reported by the time Exec returns.
var ErrRuntime = errors.New("runtime error")

// RuntimeError carries the report of a failed execution.
type RuntimeError struct{ diag.Report }

// Unwrap returns ErrRuntime.
func (*RuntimeError) Unwrap() error { return ErrRuntime }

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// halt aborts the entire execution, unwinding every frame back to Exec.
func (vm *VM) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if vm.out != nil {
			if ferr := vm.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()
	if vm.logfn != nil {
		vm.logf("#", "halt error: %v", err)
		lw := logio.Writer{Logf: func(mess string, args ...interface{}) {
			vm.logf("#", mess, args...)
		}}
		vmDumper{vm: vm, out: &lw}.dump()
		lw.Close()
	}
	panic(haltError{err})
}

func (vm *VM) haltif(err error) {
	if err != nil {
		vm.halt(err)
	}
}

// flush forces out program output written so far, so that any diagnostic
// reported next follows it.
func (vm *VM) flush() {
	if vm.out != nil {
		vm.haltif(vm.out.Flush())
	}
}

// fail reports a runtime error anchored at tok, then halts.
func (vm *VM) fail(tok code.Token, mess string, args ...interface{}) {
	vm.flush()
	r := tok.Report(diag.Runtime, mess, args...)
	if vm.diag != nil {
		vm.diag.Report(r)
	}
	vm.halt(&RuntimeError{r})
}

// exec runs c to completion, trampolining through nested calls.
func (vm *VM) exec(ctx context.Context, c *code.Code) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}

	base := len(vm.frames)
	vm.frames = append(vm.frames, frame{code: c})
	for len(vm.frames) > base {
		vm.step()
		vm.haltif(ctx.Err())
	}
}

func (vm *VM) step() {
	fr := vm.top()
	if fr.ip >= len(fr.code.Tokens) {
		vm.ret()
		return
	}
	tok := fr.code.Tokens[fr.ip]
	fr.at = fr.ip
	fr.ip++
	if vm.logfn != nil {
		vm.logf("exec", "@%v %v -- s:%v r:%v depth:%v",
			fr.at, tok, formatValues(vm.stack), formatValues(vm.stash), len(vm.frames))
	}
	vmOpTable[tok.Kind](vm, tok)
}

var vmOpTable [code.EndOfProgram + 1]func(vm *VM, tok code.Token)

func init() {
	vmOpTable = [...]func(vm *VM, tok code.Token){
		code.Comma:     (*VM).park,
		code.Dot:       (*VM).dup,
		code.Semicolon: (*VM).unpark,
		code.At:        (*VM).drop,
		code.Question:  (*VM).branch,
		code.Tilde:     (*VM).transform,
		code.Equal:     (*VM).equal,
		code.Star:      (*VM).mul,
		code.Percent:   (*VM).mod,
		code.Caret:     (*VM).jump,
		code.Colon:     (*VM).defineOp,
		code.Plus:      (*VM).add,
		code.Pipe:      (*VM).or,
		code.Amp:       (*VM).and,
		code.Minus:     (*VM).sub,
		code.Bang:      (*VM).truth,
		code.Less:      (*VM).less,
		code.Greater:   (*VM).greater,
		code.Slash:     (*VM).div,
		code.Hash:      (*VM).swap,
		code.Dollar:    (*VM).print,

		code.Identifier: (*VM).callFunc,
		code.TextLit:    (*VM).literal,
		code.IntLit:     (*VM).literal,
		code.FloatLit:   (*VM).literal,
		code.CodeLit:    (*VM).literal,

		code.EndOfProgram: (*VM).end,
	}
}
