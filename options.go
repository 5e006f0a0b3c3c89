package main

import (
	"io"

	"github.com/jcorbin/twostack/internal/diag"
	"github.com/jcorbin/twostack/internal/flushio"
)

// VMOption configures a VM.
type VMOption interface{ apply(vm *VM) }

// VMOptions combines options, applied in order; nil options are skipped.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

var defaultOptions = VMOptions(
	withOutput(io.Discard),
	withDiagnostics(diag.Discard),
)

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type diagOption struct{ diag.Reporter }
type maxDepthOption int

func withOutput(w io.Writer) outputOption          { return outputOption{w} }
func withTee(w io.Writer) teeOption                { return teeOption{w} }
func withDiagnostics(rep diag.Reporter) diagOption { return diagOption{rep} }
func withMaxDepth(depth int) maxDepthOption        { return maxDepthOption(depth) }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (o diagOption) apply(vm *VM) {
	vm.diag = o.Reporter
}

func (depth maxDepthOption) apply(vm *VM) {
	vm.maxDepth = int(depth)
}
