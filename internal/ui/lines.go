package ui

import (
	"fmt"
	"strings"

	"github.com/nikkolaka/z-slime/internal/core"
)

// panelLines flattens a parameter snapshot into HUD text rows, leaving out
// keys listed in skip.
func panelLines(title string, snap core.ParameterSnapshot, skip map[string]bool) []string {
	lines := []string{title, ""}
	for _, group := range snap.Groups {
		lines = append(lines, strings.ToUpper(group.Name))
		for _, p := range group.Params {
			if skip[p.Key] {
				continue
			}
			lines = append(lines, fmt.Sprintf(" %-17s %s", p.Label, p.Value))
		}
		lines = append(lines, "")
	}
	return lines
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	return sim.Name() + " parameters"
}
