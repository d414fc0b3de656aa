package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yu-lang/yu/diag"
	"github.com/yu-lang/yu/token"
)

func TestCollectorSeparatesWarningsAndErrors(t *testing.T) {
	c := diag.NewCollector()
	c.Report(diag.Diagnostic{Severity: diag.Warning, Code: diag.UnimplementedFeature, Message: "unused symbol"})
	c.Report(diag.Diagnostic{Severity: diag.Error, Code: diag.UnexpectedToken, Message: "expected ';'"})

	require.Len(t, c.All(), 2)
	require.Len(t, c.Warnings(), 1)
	require.Len(t, c.Errors(), 1)
	require.True(t, c.HasErrors())
}

func TestCollectorNoErrors(t *testing.T) {
	c := diag.NewCollector()
	c.Report(diag.Diagnostic{Severity: diag.Warning, Message: "fyi"})
	require.False(t, c.HasErrors())
}

func TestDiagnosticFormatRendersCaret(t *testing.T) {
	file := token.NewFile("test.yu", []byte("var x = ;\n"))
	d := diag.Diagnostic{
		Severity: diag.Error,
		Code:     diag.UnexpectedToken,
		Message:  "expected expression",
		File:     "test.yu",
		Line:     1,
		Col:      9,
		Length:   1,
	}
	out := d.Format(file)
	require.Contains(t, out, "error[E0001]: expected expression")
	require.Contains(t, out, "test.yu:1:9")
	require.Contains(t, out, "var x = ;")
	require.Contains(t, out, "^")
}
