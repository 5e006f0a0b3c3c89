// Package diag carries diagnostics anchored to a span of source text.
//
// A Report holds everything needed to show a user where something went
// wrong; Reporters decide what to do with it. Reporting never fails the
// caller: whether a diagnostic is fatal is the caller's decision.
package diag

import "fmt"

// Kind distinguishes diagnostics by domain.
type Kind uint8

// Diagnostic kinds.
const (
	Lexical Kind = iota
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "error"
	case Runtime:
		return "runtime error"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Report is a message anchored at Len runes starting at column Pos of the
// zero-based Line within Source.
type Report struct {
	Kind    Kind
	Message string
	Source  string
	Pos     int
	Len     int
	Line    int
}

func (r Report) Error() string {
	return fmt.Sprintf("%v (line %v, pos %v): %v", r.Kind, r.Line+1, r.Pos, r.Message)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(r Report)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(r Report)

// Report calls f(r).
func (f ReporterFunc) Report(r Report) { f(r) }

// Discard drops all diagnostics.
var Discard Reporter = ReporterFunc(func(Report) {})

// Collector accumulates diagnostics.
type Collector []Report

// Report appends r.
func (col *Collector) Report(r Report) { *col = append(*col, r) }

// Messages returns the collected messages in order.
func (col Collector) Messages() []string {
	mess := make([]string, len(col))
	for i, r := range col {
		mess[i] = r.Message
	}
	return mess
}

// Tee returns a Reporter forwarding to each non-nil reporter.
func Tee(reps ...Reporter) Reporter {
	var all []Reporter
	for _, rep := range reps {
		if rep != nil {
			all = append(all, rep)
		}
	}
	switch len(all) {
	case 0:
		return Discard
	case 1:
		return all[0]
	}
	return ReporterFunc(func(r Report) {
		for _, rep := range all {
			rep.Report(r)
		}
	})
}
