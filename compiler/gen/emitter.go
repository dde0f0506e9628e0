package gen

import (
	"fmt"
	"strings"
)

// LinePredicate classifies a trimmed line for depth tracking.
// Predicates only ever see cleaned content, never original whitespace.
type LinePredicate func(line string) bool

// IndentWriter is the sole output sink of the language targets: a line
// accumulator that derives indentation from configurable block-open and
// block-close predicates.
//
// For every appended line the writer trims surrounding whitespace,
// applies the reduce predicate before printing (decrementing depth,
// clamped at zero), prints depth copies of the indent unit plus the
// trimmed line, and applies the augment predicate after printing. The
// before/after split makes lines that close and reopen a block on the
// same line ("} else {") come out at the enclosing depth.
//
// An IndentWriter is owned by a single generation call and is not safe
// for concurrent use.
type IndentWriter struct {
	indent  string
	augment LinePredicate
	reduce  LinePredicate
	depth   int
	lines   []string
}

// NewIndentWriter returns a writer using the given indent unit and
// block predicates. Nil predicates never match.
func NewIndentWriter(indent string, augment, reduce LinePredicate) *IndentWriter {
	if augment == nil {
		augment = func(string) bool { return false }
	}
	if reduce == nil {
		reduce = func(string) bool { return false }
	}
	return &IndentWriter{indent: indent, augment: augment, reduce: reduce}
}

// Line appends one line. Embedded newlines split into multiple lines,
// each processed independently.
func (w *IndentWriter) Line(line string) {
	for _, part := range strings.Split(line, "\n") {
		w.append(part)
	}
}

// Linef appends one formatted line.
func (w *IndentWriter) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Lines appends each given line in order.
func (w *IndentWriter) Lines(lines ...string) {
	for _, l := range lines {
		w.Line(l)
	}
}

// Depth returns the current nesting depth. A balanced sequence of
// open/close lines ends at zero.
func (w *IndentWriter) Depth() int { return w.depth }

// String returns the accumulated output, each line terminated by a
// newline. An empty writer renders as the empty string.
func (w *IndentWriter) String() string {
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}

func (w *IndentWriter) append(line string) {
	clean := strings.TrimSpace(line)
	if clean == "" {
		w.lines = append(w.lines, "")
		return
	}
	if w.reduce(clean) && w.depth > 0 {
		w.depth--
	}
	w.lines = append(w.lines, strings.Repeat(w.indent, w.depth)+clean)
	if w.augment(clean) {
		w.depth++
	}
}
