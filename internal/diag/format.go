package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
)

// Plain renders "file-less" text: "3: ERROR SCR1001: message".
func Plain(d Diagnostic) string {
	return fmt.Sprintf("%d: %s %s: %s", d.Line, d.Severity, d.Code.ID(), d.Message)
}

// Fprint writes one diagnostic per line prefixed with path:line.
func Fprint(w io.Writer, path string, items []Diagnostic, useColor bool) error {
	for _, d := range items {
		sev := d.Severity.String()
		code := d.Code.ID()
		if useColor {
			sev = severityColor(d.Severity).Sprint(sev)
			code = codeColor.Sprint(code)
		}
		if _, err := fmt.Fprintf(w, "%s:%d: %s %s: %s\n", path, d.Line, sev, code, d.Message); err != nil {
			return err
		}
	}
	return nil
}

func severityColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return errorColor
	case SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
