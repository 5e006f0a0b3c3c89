package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jcorbin/twostack/internal/code"
	"github.com/jcorbin/twostack/internal/diag"
	"github.com/jcorbin/twostack/internal/logio"
	"github.com/stretchr/testify/assert"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	sources []string
	opts    []interface{}
	expect  []func(t *testing.T, vm *VM)
	timeout time.Duration
	wantErr error
	noTrace bool

	exclusive bool
}

// I, F, and T abbreviate expected values; C gives an expected Code value
// by its trace form, e.g. C("{1 +}").
type (
	I = code.Int
	F = code.Float
	T = code.Text
	C string
)

func (vmt vmTestCase) apply(wraps ...func(vmTestCase) vmTestCase) vmTestCase {
	for _, wrap := range wraps {
		vmt = wrap(vmt)
	}
	return vmt
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withSource(source string) vmTestCase {
	vmt.sources = append(vmt.sources, source)
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withStack(values ...code.Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withStash(values ...code.Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stash = append(vm.stash, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withMaxDepth(depth int) vmTestCase {
	vmt.opts = append(vmt.opts, WithMaxDepth(depth))
	return vmt
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) withoutTrace() vmTestCase {
	vmt.noTrace = true
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: func(mess string, args ...interface{}) {
			t.Logf("out: "+mess, args...)
		}})
	})
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectStack(values ...interface{}) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, expectedValues(values), actualValues(vm.stack), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectStash(values ...interface{}) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, expectedValues(values), actualValues(vm.stash), "expected stash values")
	})
	return vmt
}

func (vmt vmTestCase) expectFunc(name string, body string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if assert.Contains(t, vm.funcs, name, "expected function %q", name) {
			assert.Equal(t, body, vm.funcs[name].String(), "expected function %q body", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectReports(messages ...string) vmTestCase {
	var col diag.Collector
	vmt.opts = append(vmt.opts, WithDiagnostics(&col))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if messages == nil {
			messages = []string{}
		}
		assert.Equal(t, messages, append([]string{}, col.Messages()...), "expected diagnostics")
	})
	return vmt
}

func (vmt vmTestCase) expectReport(report diag.Report) vmTestCase {
	var col diag.Collector
	vmt.opts = append(vmt.opts, WithDiagnostics(&col))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if assert.Len(t, col, 1, "expected one diagnostic") {
			assert.Equal(t, report, col[0], "expected diagnostic")
		}
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	const defaultTimeout = 5 * time.Second
	timeout := vmt.timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var trace traceLog
	vm := vmt.buildVM(t, &trace)
	defer func() {
		if t.Failed() {
			trace.logTo(t)
			vmt.dumpToTest(t, vm)
		}
	}()

	err := vmt.runVM(ctx, vm)
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected VM run error")
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()
	for _, source := range vmt.sources {
		if err := vm.Run(ctx, source); err != nil {
			return err
		}
	}
	return nil
}

func (vmt vmTestCase) buildVM(t *testing.T, trace *traceLog) *VM {
	var opt VMOption
	if !vmt.noTrace {
		opt = WithLogf(trace.logf)
	}
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opt = VMOptions(opt, impl(&vmt, t))
		case VMOption:
			opt = VMOptions(opt, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opt)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

// traceLog keeps the last lines logged by a VM under test.
type traceLog struct {
	lines [256]string
	n     int
}

func (tl *traceLog) logf(mess string, args ...interface{}) {
	tl.lines[tl.n%len(tl.lines)] = fmt.Sprintf(mess, args...)
	tl.n++
}

func (tl *traceLog) logTo(t *testing.T) {
	i := 0
	if tl.n > len(tl.lines) {
		i = tl.n - len(tl.lines)
		t.Logf("trace: ... %v lines elided", i)
	}
	for ; i < tl.n; i++ {
		t.Logf("trace: %v", tl.lines[i%len(tl.lines)])
	}
}

func expectedValues(values []interface{}) []string {
	strs := make([]string, len(values))
	for i, value := range values {
		switch v := value.(type) {
		case C:
			strs[i] = "Code " + string(v)
		case code.Value:
			strs[i] = v.TypeName() + " " + formatValue(v)
		default:
			strs[i] = fmt.Sprintf("<invalid %T>", value)
		}
	}
	return strs
}

func actualValues(values []code.Value) []string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.TypeName() + " " + formatValue(v)
	}
	return strs
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
