package main

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/jcorbin/twostack/internal/scan"
	"github.com/peterh/liner"
)

const (
	promptMain = "> "
	promptCont = ". "
)

// prompter is the part of liner.State used by the REPL.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl reads programs line by line and executes each against one VM, so that
// stacks and functions persist between lines. A line that leaves a string,
// label, or code block open is continued on the next line.
type repl struct {
	vm *VM
	in prompter
}

func (r repl) run(ctx context.Context) error {
	var buf strings.Builder
	for {
		prompt := promptMain
		if buf.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.in.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		} else if err != nil {
			return err
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		src := buf.String()
		if strings.TrimSpace(src) == "" {
			buf.Reset()
			continue
		}

		var probe scan.Scanner
		probe.Scan(src)
		if probe.Incomplete() {
			continue
		}
		buf.Reset()
		r.in.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err := r.vm.Run(ctx, src); err != nil &&
			!errors.Is(err, ErrRuntime) &&
			!errors.Is(err, scan.ErrLexical) {
			return err
		}
	}
}
