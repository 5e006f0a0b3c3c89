// Package scan turns source text into a code.Code.
//
// Scanning does not stop at the first lexical error: every error is reported
// as it is found, and HadError tells the caller that the resulting Code must
// not be run.
package scan

import (
	"errors"
	"strconv"

	"github.com/jcorbin/twostack/internal/code"
	"github.com/jcorbin/twostack/internal/diag"
)

// ErrLexical is returned by Source when scanning reported any error.
var ErrLexical = errors.New("lexical error")

// Source scans src, returning ErrLexical if any error was reported to rep.
func Source(src string, rep diag.Reporter) (*code.Code, error) {
	sc := Scanner{Reporter: rep}
	c := sc.Scan(src)
	if sc.HadError() {
		return nil, ErrLexical
	}
	return c, nil
}

// Scanner converts source text into Code, reporting lexical errors to
// Reporter. The zero value discards diagnostics.
type Scanner struct {
	Reporter diag.Reporter

	source     string
	src        []rune
	lineStarts []int
	tokens     []code.Token
	labels     map[string]int

	start     int // first rune of the token being scanned
	startLine int // line that start is on
	curr      int
	line      int

	errors       int
	unterminated int
}

// HadError returns true if the last Scan reported any lexical error.
func (sc *Scanner) HadError() bool { return sc.errors > 0 }

// Incomplete returns true if the last Scan failed only because a string,
// label, or code block ran off the end of the source; more input may fix it.
func (sc *Scanner) Incomplete() bool {
	return sc.errors > 0 && sc.errors == sc.unterminated
}

// Scan scans source into a new Code terminated by one EndOfProgram token.
// Nested code blocks are scanned by a fresh Scanner with their own line
// numbering and labels.
func (sc *Scanner) Scan(source string) *code.Code {
	sc.reset(source)
	for !sc.atEnd() {
		sc.start = sc.curr
		sc.startLine = sc.line
		sc.scanToken()
	}
	sc.tokens = append(sc.tokens, code.Token{
		Kind:   code.EndOfProgram,
		Source: sc.source,
		Span:   code.Span{Pos: 0, End: 1, Line: sc.line},
	})
	return code.New(sc.tokens, sc.labels)
}

func (sc *Scanner) reset(source string) {
	sc.source = source
	sc.src = []rune(source)
	sc.tokens = nil
	sc.labels = make(map[string]int)
	sc.start, sc.startLine = 0, 0
	sc.curr, sc.line = 0, 0
	sc.errors, sc.unterminated = 0, 0

	sc.lineStarts = append(sc.lineStarts[:0], 0)
	for i, r := range sc.src {
		if r == '\n' {
			sc.lineStarts = append(sc.lineStarts, i+1)
		}
	}
}

func (sc *Scanner) atEnd() bool { return sc.curr >= len(sc.src) }

func (sc *Scanner) advance() rune {
	r := sc.src[sc.curr]
	sc.curr++
	return r
}

func (sc *Scanner) peek() rune {
	if sc.atEnd() {
		return 0
	}
	return sc.src[sc.curr]
}

func (sc *Scanner) scanToken() {
	switch r := sc.advance(); r {
	case ' ', '\r', '\t':
	case '\n':
		sc.line++

	case '"':
		sc.text()
	case '[':
		sc.label()
	case '{':
		sc.block()

	default:
		if kind, ok := code.Punct[r]; ok {
			sc.add(kind, sc.start, sc.curr, nil)
		} else if isDigit(r) {
			sc.number()
		} else if isAlpha(r) {
			for isAlphaNumeric(sc.peek()) {
				sc.advance()
			}
			sc.add(code.Identifier, sc.start, sc.curr, nil)
		} else {
			sc.errorf("Unexpected character")
		}
	}
}

// add appends a token spanning src[from:to].
func (sc *Scanner) add(kind code.Kind, from, to int, val code.Value) {
	base := sc.lineStarts[sc.startLine]
	sc.tokens = append(sc.tokens, code.Token{
		Kind:   kind,
		Lexeme: string(sc.src[from:to]),
		Source: sc.source,
		Span: code.Span{
			Pos:  from - base,
			End:  to - base,
			Line: sc.startLine,
		},
		Value: val,
	})
}

func (sc *Scanner) errorf(mess string) {
	sc.errors++
	if sc.Reporter == nil {
		return
	}
	sc.Reporter.Report(diag.Report{
		Kind:    diag.Lexical,
		Message: mess,
		Source:  sc.source,
		Pos:     sc.start - sc.lineStarts[sc.startLine],
		Len:     sc.curr - sc.start,
		Line:    sc.startLine,
	})
}

func (sc *Scanner) unterminatedf(mess string) {
	sc.unterminated++
	sc.errorf(mess)
}

// delimited consumes runes up to and including term. A backslash suppresses
// termination by the rune after it, unless that backslash was itself escaped;
// backslashes are kept verbatim. Returns false if the source ran out first.
func (sc *Scanner) delimited(term rune) bool {
	escaped := false
	for !sc.atEnd() {
		r := sc.peek()
		if r == term && !escaped {
			sc.advance()
			return true
		}
		wasEscaped := escaped
		escaped = false
		switch r {
		case '\n':
			sc.line++
		case '\\':
			escaped = !wasEscaped
		}
		sc.advance()
	}
	return false
}

func (sc *Scanner) text() {
	if !sc.delimited('"') {
		sc.unterminatedf("Unterminated string")
		return
	}
	from, to := sc.start+1, sc.curr-1
	sc.add(code.TextLit, from, to, code.Text(sc.src[from:to]))
}

func (sc *Scanner) label() {
	if !sc.delimited(']') {
		sc.unterminatedf("Unterminated label")
		return
	}
	name := string(sc.src[sc.start+1 : sc.curr-1])
	if len(sc.tokens) == 0 {
		sc.errorf("Label declared before any token")
		return
	}
	sc.labels[name] = len(sc.tokens) - 1
}

// block scans up to the next "}" regardless of nesting.
func (sc *Scanner) block() {
	for !sc.atEnd() && sc.peek() != '}' {
		if sc.advance() == '\n' {
			sc.line++
		}
	}
	if sc.atEnd() {
		sc.unterminatedf("Unterminated code block")
		return
	}
	sc.advance()

	inner := Scanner{Reporter: sc.Reporter}
	body := inner.Scan(string(sc.src[sc.start+1 : sc.curr-1]))
	if inner.HadError() {
		sc.errors += inner.errors
	}
	sc.add(code.CodeLit, sc.start, sc.curr, body)
}

func (sc *Scanner) number() {
	for isDigit(sc.peek()) {
		sc.advance()
	}

	if sc.peek() != '.' {
		lexeme := string(sc.src[sc.start:sc.curr])
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			sc.errorf("Integer literal out of range")
			return
		}
		sc.add(code.IntLit, sc.start, sc.curr, code.Int(n))
		return
	}

	sc.advance()
	if isDigit(sc.peek()) {
		for isDigit(sc.peek()) {
			sc.advance()
		}
	} else {
		sc.errorf("Expecting digits after decimal point")
	}

	lexeme := string(sc.src[sc.start:sc.curr])
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		sc.errorf("Invalid float literal")
		return
	}
	sc.add(code.FloatLit, sc.start, sc.curr, code.Float(f))
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }
