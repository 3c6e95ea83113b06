package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

const (
	stateColumn = 16
	titleColumn = 28
)

// fit pads or truncates s to exactly width terminal cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// eventPrinter writes settled transitions as table rows or JSON lines.
type eventPrinter struct {
	w        io.Writer
	jsonMode bool
}

func (p eventPrinter) print(ev types.NavigationEvent) error {
	return p.row(ev, "")
}

// unchanged prints a navigation that left the current transition in place.
// JSON lines repeat the event, whose ID identifies it as the same one.
func (p eventPrinter) unchanged(ev types.NavigationEvent) error {
	return p.row(ev, " (unchanged)")
}

func (p eventPrinter) row(ev types.NavigationEvent, suffix string) error {
	if p.jsonMode {
		return writeJSONLine(p.w, ev)
	}
	replay := "-"
	if ev.Replay {
		replay = "replay"
	}
	_, err := fmt.Fprintf(p.w, "%s %s %-6s %s%s\n",
		fit(string(ev.To), stateColumn), fit(ev.Title, titleColumn), replay, ev.Href, suffix)
	return err
}

func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatDecls renders parameter declarations as name:type, marking
// parameters that never appear in URLs with a leading "~".
func formatDecls(decls []types.ParamDecl) string {
	if len(decls) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		name := d.Name
		if !d.InURL {
			name = "~" + name
		}
		parts = append(parts, name+":"+string(d.Type))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
