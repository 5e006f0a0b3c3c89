package main

import (
	"fmt"
	"io"
	"sort"
)

type vmDumper struct {
	vm  *VM
	out io.Writer
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  stack: %v\n", formatValues(dump.vm.stack))
	fmt.Fprintf(dump.out, "  stash: %v\n", formatValues(dump.vm.stash))
	dump.dumpFrames()
	dump.dumpFuncs()
}

// dumpFrames lists running executions, outermost first.
func (dump vmDumper) dumpFrames() {
	if len(dump.vm.frames) == 0 {
		return
	}
	fmt.Fprintf(dump.out, "# Frames\n")
	for depth, fr := range dump.vm.frames {
		tok := "end"
		if fr.at < len(fr.code.Tokens) {
			tok = fr.code.Tokens[fr.at].String()
		}
		fmt.Fprintf(dump.out, "  #%v @%v %v in %v\n", depth, fr.at, tok, fr.code)
	}
}

func (dump vmDumper) dumpFuncs() {
	if len(dump.vm.funcs) == 0 {
		return
	}
	names := make([]string, 0, len(dump.vm.funcs))
	for name := range dump.vm.funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(dump.out, "# Functions\n")
	for _, name := range names {
		fmt.Fprintf(dump.out, "  %v: %v\n", name, dump.vm.funcs[name])
	}
}
