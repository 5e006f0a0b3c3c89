package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_vmDumper(t *testing.T) {
	vm := New()
	require.NoError(t, vm.Run(context.Background(), `{1 +} "inc" : {2} "two" : 1 "a" , 2.5`))

	var out strings.Builder
	vmDumper{vm: vm, out: &out}.dump()
	assert.Equal(t, lines(
		"# VM Dump",
		`  stack: [1 2.5]`,
		`  stash: ["a"]`,
		"# Functions",
		"  inc: {1 +}",
		"  two: {2}",
	), out.String())
}

func Test_vmDumper_frames(t *testing.T) {
	// frames are gone once Run returns; a traced halt dumps them while live
	var trace strings.Builder
	vm := New(WithLogf(func(mess string, args ...interface{}) {
		fmt.Fprintf(&trace, mess, args...)
		trace.WriteByte('\n')
	}))
	err := vm.Run(context.Background(), `{4 g} "h" : {3 h} ^`)
	assert.ErrorIs(t, err, ErrRuntime)
	assert.Contains(t, trace.String(), "# Frames\n")
	assert.Contains(t, trace.String(), `#0 @4 ^ in {{4 g} "h" : {3 h} ^}`+"\n")
	assert.Contains(t, trace.String(), "#1 @1 h in {3 h}\n")
	assert.Contains(t, trace.String(), "#2 @1 g in {4 g}\n")
	assert.Contains(t, trace.String(), "  h: {4 g}\n")
	assert.Contains(t, trace.String(), "stack: [3 4]\n")
}
