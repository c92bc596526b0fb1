package app

import "github.com/nikkolaka/z-slime/internal/sims/zslime"

// Binding maps a key name to a world command.
type Binding struct {
	Key     string
	Command zslime.Command
	Label   string
}

// Bindings returns the keyboard map. With legacyDensity both arrow keys raise
// the density, as in the original key map.
func Bindings(legacyDensity bool) []Binding {
	down := Binding{Key: "Down", Command: zslime.CmdDecreaseDensity, Label: "lower wall density (regenerates)"}
	if legacyDensity {
		down = Binding{Key: "Down", Command: zslime.CmdIncreaseDensity, Label: "raise wall density (regenerates)"}
	}
	return []Binding{
		{Key: "R", Command: zslime.CmdNewSeed, Label: "new seed (regenerates)"},
		{Key: "Up", Command: zslime.CmdIncreaseDensity, Label: "raise wall density (regenerates)"},
		down,
		{Key: "Right", Command: zslime.CmdSmooth, Label: "smooth terrain"},
		{Key: "Equal", Command: zslime.CmdZoomIn, Label: "larger noise blocks"},
		{Key: "Minus", Command: zslime.CmdZoomOut, Label: "smaller noise blocks"},
		{Key: "L", Command: zslime.CmdPopulate, Label: "seed life"},
		{Key: "C", Command: zslime.CmdClearLife, Label: "clear life"},
		{Key: "N", Command: zslime.CmdTick, Label: "single generation"},
		{Key: "Q", Command: zslime.CmdQuit, Label: "quit"},
		{Key: "Escape", Command: zslime.CmdQuit, Label: "quit"},
	}
}

// HelpLines renders the bindings plus the loop-level keys for the overlay.
func HelpLines(bindings []Binding) []string {
	lines := make([]string, 0, len(bindings)+3)
	for _, b := range bindings {
		lines = append(lines, padKey(b.Key)+b.Label)
	}
	lines = append(lines, padKey("Space")+"pause/resume life", padKey("Click")+"place a cell", padKey("H")+"toggle help")
	return lines
}

func padKey(k string) string {
	const width = 8
	for len(k) < width {
		k += " "
	}
	return k
}
