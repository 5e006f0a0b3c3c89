package code

import (
	"fmt"

	"github.com/jcorbin/twostack/internal/diag"
)

// Span locates a token within its source: Pos and End are rune columns
// relative to the start of Line, which is zero-based.
type Span struct {
	Pos  int
	End  int
	Line int
}

// Len returns the width of the span, never less than 1 so that a caret can
// always be drawn.
func (sp Span) Len() int {
	if n := sp.End - sp.Pos; n > 0 {
		return n
	}
	return 1
}

// Token is one lexical unit. Literal kinds carry their payload in Value.
type Token struct {
	Kind
	Lexeme string
	Source string
	Span
	Value Value
}

// Report builds a diagnostic anchored at the token.
func (tok Token) Report(kind diag.Kind, mess string, args ...interface{}) diag.Report {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	return diag.Report{
		Kind:    kind,
		Message: mess,
		Source:  tok.Source,
		Pos:     tok.Pos,
		Len:     tok.Span.Len(),
		Line:    tok.Line,
	}
}

func (tok Token) String() string {
	switch tok.Kind {
	case TextLit:
		return fmt.Sprintf("%q", string(tok.Value.(Text)))
	case IntLit, FloatLit:
		return tok.Value.Render()
	case CodeLit:
		return tok.Value.(*Code).String()
	case Identifier:
		return tok.Lexeme
	}
	return tok.Kind.String()
}

func (tok Token) clone() Token {
	if c, ok := tok.Value.(*Code); ok {
		tok.Value = c.Clone()
	}
	return tok
}
