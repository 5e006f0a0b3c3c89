package diag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Render(t *testing.T) {
	for _, tc := range []struct {
		name   string
		report Report
		expect string
	}{
		{
			name: "runtime",
			report: Report{
				Kind:    Runtime,
				Message: "Popped empty primary stack",
				Source:  "1 2 +\n$ $ $",
				Pos:     4,
				Len:     1,
				Line:    1,
			},
			expect: lines(
				"runtime error (line 2, pos 4): Popped empty primary stack",
				"1 | 1 2 +",
				"2 | $ $ $",
				"  |     ^",
			),
		},
		{
			name: "lexical span",
			report: Report{
				Kind:    Lexical,
				Message: "Unterminated string",
				Source:  `1 "abc`,
				Pos:     2,
				Len:     4,
				Line:    0,
			},
			expect: lines(
				"error (line 1, pos 2): Unterminated string",
				`1 | 1 "abc`,
				"  |   ^^^^",
			),
		},
		{
			name: "zero length",
			report: Report{
				Kind:    Lexical,
				Message: "nope",
				Source:  "x",
			},
			expect: lines(
				"error (line 1, pos 0): nope",
				"1 | x",
				"  | ^",
			),
		},
		{
			name: "control runes",
			report: Report{
				Kind:    Lexical,
				Message: "Unexpected character",
				Source:  "1\x1b2",
				Pos:     1,
				Len:     1,
			},
			expect: lines(
				"error (line 1, pos 1): Unexpected character",
				"1 | 1^[2",
				"  |  ^",
			),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			require.NoError(t, Render(&sb, tc.report))
			assert.Equal(t, tc.expect, sb.String())
		})
	}
}

func Test_Render_window(t *testing.T) {
	src := make([]string, 12)
	for i := range src {
		src[i] = fmt.Sprintf("line%v", i+1)
	}
	source := strings.Join(src, "\n")

	for _, tc := range []struct {
		line   int
		lo, hi int
	}{
		{0, 0, 5},
		{2, 0, 5},
		{6, 4, 9},
		{9, 7, 12},
		{11, 7, 12},
	} {
		t.Run(fmt.Sprintf("line %v", tc.line), func(t *testing.T) {
			lo, hi := window(len(src), tc.line)
			assert.Equal(t, tc.lo, lo, "expected window start")
			assert.Equal(t, tc.hi, hi, "expected window end")

			var sb strings.Builder
			require.NoError(t, Render(&sb, Report{Source: source, Line: tc.line}))
			out := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
			assert.Len(t, out, 1+(tc.hi-tc.lo)+1, "expected header, window, and caret lines")
		})
	}
}

func Test_Printer_color(t *testing.T) {
	var sb strings.Builder
	p := Printer{Out: &sb, Color: true}
	p.Report(Report{Kind: Runtime, Message: "Undefined function", Source: "f", Len: 1})
	assert.Contains(t, sb.String(), ansiRed+"runtime error"+ansiReset)
	assert.Contains(t, sb.String(), ansiRed+"^"+ansiReset)
}

func Test_Collector(t *testing.T) {
	var col Collector
	rep := Tee(nil, &col, Discard)
	rep.Report(Report{Message: "one"})
	rep.Report(Report{Message: "two"})
	assert.Equal(t, []string{"one", "two"}, col.Messages())
	assert.EqualError(t, col[0], "error (line 1, pos 0): one")
	assert.NotNil(t, Tee(nil), "expected a discarding reporter")
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
