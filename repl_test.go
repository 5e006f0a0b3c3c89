package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/twostack/internal/diag"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers prompts from a fixed list of lines, then ends with
// err, or io.EOF if err is nil.
type scriptedPrompter struct {
	lines   []string
	err     error
	prompts []string
	history []string
}

func (sp *scriptedPrompter) Prompt(prompt string) (string, error) {
	sp.prompts = append(sp.prompts, prompt)
	if len(sp.lines) == 0 {
		if sp.err != nil {
			return "", sp.err
		}
		return "", io.EOF
	}
	line := sp.lines[0]
	sp.lines = sp.lines[1:]
	return line, nil
}

func (sp *scriptedPrompter) AppendHistory(item string) {
	sp.history = append(sp.history, item)
}

func Test_repl(t *testing.T) {
	for _, tc := range []struct {
		name    string
		lines   []string
		err     error
		wantErr error
		out     string
		reports []string
		prompts []string
		history []string
		stack   []interface{}
	}{
		{
			name:    "state persists",
			lines:   []string{`{2 *} "double" :`, `21 double .`, `$`},
			out:     lines("42"),
			prompts: []string{"> ", "> ", "> ", "> "},
			history: []string{`{2 *} "double" :`, `21 double .`, `$`},
			stack:   []interface{}{I(42)},
		},
		{
			name:    "continuation",
			lines:   []string{`{1`, `2} ^ "a`, `b" $`},
			out:     lines("a\nb"),
			prompts: []string{"> ", ". ", ". ", "> "},
			history: []string{`{1 2} ^ "a b" $`},
			stack:   []interface{}{I(1), I(2)},
		},
		{
			name:    "blank lines",
			lines:   []string{"", "  ", "1"},
			prompts: []string{"> ", "> ", "> ", "> "},
			history: []string{"1"},
			stack:   []interface{}{I(1)},
		},
		{
			name:    "errors do not stop the session",
			lines:   []string{"$", "1 `", "2 $"},
			out:     lines("2"),
			reports: []string{"Popped empty primary stack", "Unexpected character"},
			prompts: []string{"> ", "> ", "> ", "> "},
			history: []string{"$", "1 `", "2 $"},
			stack:   []interface{}{},
		},
		{
			name:    "aborted",
			lines:   []string{"1"},
			err:     liner.ErrPromptAborted,
			prompts: []string{"> ", "> "},
			history: []string{"1"},
			stack:   []interface{}{I(1)},
		},
		{
			name:    "prompt failure",
			err:     errors.New("tty gone"),
			wantErr: errors.New("tty gone"),
			prompts: []string{"> "},
			stack:   []interface{}{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var (
				out strings.Builder
				col diag.Collector
			)
			vm := New(WithOutput(&out), WithDiagnostics(&col))
			in := &scriptedPrompter{lines: tc.lines, err: tc.err}

			err := repl{vm: vm, in: in}.run(context.Background())
			if tc.wantErr != nil {
				assert.EqualError(t, err, tc.wantErr.Error())
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, vm.Close())

			assert.Equal(t, tc.out, out.String(), "expected output")
			if tc.reports == nil {
				tc.reports = []string{}
			}
			assert.Equal(t, tc.reports, append([]string{}, col.Messages()...), "expected diagnostics")
			assert.Equal(t, tc.prompts, in.prompts, "expected prompts")
			assert.Equal(t, tc.history, in.history, "expected history")
			assert.Equal(t, expectedValues(tc.stack), actualValues(vm.stack), "expected stack")
		})
	}
}
