package code

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code is a self contained program fragment: a token sequence ending in
// exactly one EndOfProgram token, and a mapping from label name to the index
// of the token that the label annotates.
type Code struct {
	Tokens []Token
	Labels map[string]int
}

// ErrLabelConflict is wrapped by the error returned from Concat when both
// operands declare the same label.
var ErrLabelConflict = errors.New("label conflicts between concatenated code objects")

type labelConflict string

func (name labelConflict) Error() string {
	return fmt.Sprintf("label %q conflicts between concatenated code objects", string(name))
}
func (labelConflict) Unwrap() error { return ErrLabelConflict }

// New creates a Code from tokens and labels, appending an EndOfProgram token
// if tokens does not already end with one.
func New(tokens []Token, labels map[string]int) *Code {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != EndOfProgram {
		tokens = append(tokens, Token{Kind: EndOfProgram})
	}
	if labels == nil {
		labels = make(map[string]int)
	}
	return &Code{Tokens: tokens, Labels: labels}
}

// Len returns the number of tokens, including the terminator.
func (c *Code) Len() int { return len(c.Tokens) }

// Label returns the index bound to name.
func (c *Code) Label(name string) (int, bool) {
	i, ok := c.Labels[name]
	return i, ok
}

// Clone deep copies the token sequence, any nested code literals, and the
// label mapping.
func (c *Code) Clone() *Code {
	tokens := make([]Token, len(c.Tokens))
	for i, tok := range c.Tokens {
		tokens[i] = tok.clone()
	}
	labels := make(map[string]int, len(c.Labels))
	for name, i := range c.Labels {
		labels[name] = i
	}
	return &Code{Tokens: tokens, Labels: labels}
}

// body returns the tokens without the trailing terminator.
func (c *Code) body() []Token {
	if n := len(c.Tokens); n > 0 && c.Tokens[n-1].Kind == EndOfProgram {
		return c.Tokens[:n-1]
	}
	return c.Tokens
}

// Concat returns a new Code running c followed by other. Labels from other
// are shifted by the length of c without its terminator.
func (c *Code) Concat(other *Code) (*Code, error) {
	left := c.body()
	shift := len(left)

	names := make([]string, 0, len(other.Labels))
	for name := range other.Labels {
		names = append(names, name)
	}
	sort.Strings(names)

	labels := make(map[string]int, len(c.Labels)+len(other.Labels))
	for name, i := range c.Labels {
		labels[name] = i
	}
	for _, name := range names {
		if _, conflict := c.Labels[name]; conflict {
			return nil, labelConflict(name)
		}
		labels[name] = other.Labels[name] + shift
	}

	tokens := make([]Token, 0, shift+len(other.Tokens))
	for _, tok := range left {
		tokens = append(tokens, tok.clone())
	}
	for _, tok := range other.Tokens {
		tokens = append(tokens, tok.clone())
	}
	return &Code{Tokens: tokens, Labels: labels}, nil
}

// String formats the code for traces, e.g. `{1 2 + $}`.
func (c *Code) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, tok := range c.body() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
