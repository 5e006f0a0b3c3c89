package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/jcorbin/twostack/internal/runeio"
)

// windowSize is how many source lines surround the reported line.
const windowSize = 5

// Printer renders reports to Out as a header followed by a numbered window of
// source lines with a caret underline beneath the reported span:
//
//	runtime error (line 2, pos 4): Popped empty primary stack
//	1 | 1 2 +
//	2 | $ $ $
//	  |     ^
type Printer struct {
	Out   io.Writer
	Color bool

	mu sync.Mutex
}

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Report writes r to Out; write errors are ignored.
func (p *Printer) Report(r Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var sb strings.Builder
	render(&sb, r, p.Color)
	io.WriteString(p.Out, sb.String())
}

// Render writes the uncoloured rendering of r to w.
func Render(w io.Writer, r Report) error {
	var sb strings.Builder
	render(&sb, r, false)
	_, err := io.WriteString(w, sb.String())
	return err
}

func render(sb *strings.Builder, r Report, color bool) {
	if color {
		fmt.Fprintf(sb, "%s%v%s (line %v, pos %v): %s%v%s\n",
			ansiRed, r.Kind, ansiReset, r.Line+1, r.Pos, ansiBold, r.Message, ansiReset)
	} else {
		fmt.Fprintf(sb, "%v (line %v, pos %v): %v\n", r.Kind, r.Line+1, r.Pos, r.Message)
	}

	lines := splitLines(r.Source)
	lo, hi := window(len(lines), r.Line)
	width := len(strconv.Itoa(hi))

	caretLen := r.Len
	if caretLen < 1 {
		caretLen = 1
	}
	for l := lo; l < hi; l++ {
		fmt.Fprintf(sb, "%*d | %s\n", width, l+1, runeio.Printable(strings.TrimRight(lines[l], " \t\r"), '\t'))
		if l == r.Line {
			carets := strings.Repeat("^", caretLen)
			if color {
				carets = ansiRed + carets + ansiReset
			}
			fmt.Fprintf(sb, "%s | %s%s\n", strings.Repeat(" ", width), strings.Repeat(" ", r.Pos), carets)
		}
	}
}

func splitLines(source string) []string {
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		return nil
	}
	return strings.Split(source, "\n")
}

// window picks the [lo, hi) range of lines to show around line.
func window(n, line int) (lo, hi int) {
	if n < windowSize {
		return 0, n
	}
	switch {
	case line <= 2:
		return 0, windowSize
	case line >= n-3:
		return n - windowSize, n
	default:
		return line - 2, line + 3
	}
}

