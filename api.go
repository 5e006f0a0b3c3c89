package main

import (
	"context"
	"errors"
	"io"

	"github.com/jcorbin/twostack/internal/code"
	"github.com/jcorbin/twostack/internal/diag"
	"github.com/jcorbin/twostack/internal/panicerr"
	"github.com/jcorbin/twostack/internal/scan"
)

// New creates a VM with empty stacks and function table.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	return &vm
}

// Load scans source, reporting any lexical errors as diagnostics; it returns
// scan.ErrLexical if there were any.
func (vm *VM) Load(source string) (*code.Code, error) {
	return scan.Source(source, vm.diag)
}

// Exec runs c against the VM's stacks and function table. Stacks and
// functions persist across calls. A non-nil error means execution was
// aborted: ErrRuntime and scan.ErrLexical failures have already been reported
// as diagnostics; other errors come from ctx or the output stream.
func (vm *VM) Exec(ctx context.Context, c *code.Code) error {
	err := panicerr.Recover("VM", func() error {
		vm.exec(ctx, c)
		return nil
	})
	for i := range vm.frames {
		vm.frames[i] = frame{}
	}
	vm.frames = vm.frames[:0]

	if vm.out != nil {
		if ferr := vm.out.Flush(); err == nil {
			err = ferr
		}
	}
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	return err
}

// Run loads and executes source.
func (vm *VM) Run(ctx context.Context, source string) error {
	c, err := vm.Load(source)
	if err != nil {
		return err
	}
	return vm.Exec(ctx, c)
}

// Close flushes any buffered output.
func (vm *VM) Close() error {
	if vm.out == nil {
		return nil
	}
	return vm.out.Flush()
}

func WithOutput(w io.Writer) VMOption            { return withOutput(w) }
func WithTee(w io.Writer) VMOption               { return withTee(w) }
func WithDiagnostics(rep diag.Reporter) VMOption { return withDiagnostics(rep) }
func WithMaxDepth(depth int) VMOption            { return withMaxDepth(depth) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }
