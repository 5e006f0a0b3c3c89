package main

import (
	"fmt"
	"strings"

	"github.com/jcorbin/twostack/internal/code"
)

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

// logf logs a message under a mark, right aligning marks by repeating their
// first rune, e.g. ">>>>" for a call under "exec".
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

// formatValues formats a stack for traces and dumps, quoting Text so that it
// is distinguishable from numbers.
func formatValues(vals []code.Value) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, val := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatValue(val))
	}
	sb.WriteByte(']')
	return sb.String()
}

func formatValue(val code.Value) string {
	switch v := val.(type) {
	case code.Text:
		return fmt.Sprintf("%q", string(v))
	case *code.Code:
		return v.String()
	case nil:
		return "<nil>"
	default:
		return v.Render()
	}
}
