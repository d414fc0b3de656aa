// Package diag implements the diagnostic model the parser reports through:
// a flat Diagnostic record plus a Sink interface that collects them. It replaces the templated error-reporter hierarchy
// of the original implementation with a single concrete type and an
// interface any collector can satisfy.
package diag

import (
	"fmt"
	"strings"

	"github.com/yu-lang/yu/token"
)

// Severity classifies how a Diagnostic should affect the surrounding
// operation.
type Severity uint8

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Code identifies the class of failure a Diagnostic reports.
type Code string

const (
	UnexpectedToken    Code = "E0001"
	InvalidSyntax      Code = "E0002"
	TypeMismatch       Code = "E0308"
	UnresolvedSymbol   Code = "E0433"
	UnimplementedFeature Code = "E0050"
	Unknown            Code = "E0000"
)

// Diagnostic is a single reported problem, anchored to a line/column pair
// and carrying enough context to render a caret-pointer excerpt.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	File     string
	Line     int
	Col      int
	Length   int // number of columns the caret underline should span; 0 means 1
}

// Format renders the diagnostic as a caret-annotated excerpt against the
// given file, mirroring the original parser's create_error_pointer.
func (d Diagnostic) Format(file *token.File) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	if file != nil {
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", file.Name, d.Line, d.Col)
		lineStr := file.Line(d.Line)
		fmt.Fprintf(&b, "%4d | %s\n", d.Line, lineStr)
		length := d.Length
		if length <= 0 {
			length = 1
		}
		pad := d.Col - 1
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", pad), strings.Repeat("^", length))
	}
	return b.String()
}

// Sink collects diagnostics as they are raised. The parser takes a Sink
// rather than knowing how diagnostics are ultimately rendered or stored;
// ir.Builder and analyze.Analyzer do not use one (the builder panics on
// precondition violations, and the validators return ValidationErrors).
type Sink interface {
	Report(d Diagnostic)
}

// Collector is the default in-memory Sink: it retains every diagnostic it
// is given, in report order.
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// All returns every diagnostic reported so far, in report order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// Errors returns only diagnostics at Error or Fatal severity.
func (c *Collector) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity >= Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only diagnostics at Warning severity.
func (c *Collector) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any Error- or Fatal-severity diagnostic has
// been reported.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// Render formats every collected diagnostic against file, in report order.
func (c *Collector) Render(file *token.File) string {
	var b strings.Builder
	for _, d := range c.diagnostics {
		b.WriteString(d.Format(file))
	}
	return b.String()
}
