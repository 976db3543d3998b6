package scopedump

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	kindColor     = color.New(color.FgCyan, color.Bold)
	identityColor = color.New(color.FgYellow)
	flagColor     = color.New(color.FgMagenta)
)

// WriteText lists scopes one per line, indented by nesting depth, with
// columns aligned by display width.
func WriteText(w io.Writer, snap Snapshot, useColor bool) error {
	rows := make([][]string, 0, len(snap.Scopes))
	for _, sc := range snap.Scopes {
		rows = append(rows, []string{
			strings.Repeat("  ", int(sc.Depth)) + fmt.Sprintf("#%d %s", sc.ID, sc.Kind),
			label(sc),
			orDash(sc.Identity),
			orDash(strings.Join(flags(sc), ",")),
			details(sc),
		})
	}

	widths := make([]int, 5)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	paint := []*color.Color{kindColor, nil, identityColor, flagColor, nil}
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			padded := runewidth.FillRight(cell, widths[i])
			if useColor && paint[i] != nil {
				padded = paint[i].Sprint(padded)
			}
			sb.WriteString(padded)
			sb.WriteString("  ")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func label(sc Scope) string {
	switch {
	case sc.MethodID != "":
		return sc.MethodID
	case sc.Name != "":
		return sc.Name
	default:
		return "-"
	}
}

func flags(sc Scope) []string {
	var out []string
	if sc.UsesBlock {
		out = append(out, "uses_block")
	}
	if sc.CatchesBreak {
		out = append(out, "catches_break")
	}
	if sc.DefinesDefn {
		out = append(out, "defn")
	}
	if sc.DefinesDefs {
		out = append(out, "defs")
	}
	if sc.DonatesMethods {
		out = append(out, "donates")
	}
	if sc.LoopDepth > 0 {
		out = append(out, fmt.Sprintf("loops=%d", sc.LoopDepth))
	}
	return out
}

func details(sc Scope) string {
	var parts []string
	add := func(key string, values []string) {
		if len(values) > 0 {
			parts = append(parts, key+"="+strings.Join(values, ","))
		}
	}
	add("locals", sc.Locals)
	add("args", sc.Args)
	add("ivars", sc.Ivars)
	add("temps", sc.Temps)
	add("free", sc.FreeTemps)
	add("methods", sc.Methods)
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
