package zslime

import (
	"errors"
	"fmt"
)

// Command is a discrete request from the driver (keyboard, CLI, tests).
type Command int

const (
	CmdNone Command = iota
	CmdNewSeed
	CmdIncreaseDensity
	CmdDecreaseDensity
	CmdSmooth
	CmdZoomIn
	CmdZoomOut
	CmdTick
	CmdPopulate
	CmdClearLife
	CmdQuit
)

var (
	// ErrTerminate is returned by Apply(CmdQuit) to ask the driver to stop.
	ErrTerminate = errors.New("zslime: terminate requested")
	// ErrUnknownCommand reports a command outside the dispatch table.
	ErrUnknownCommand = errors.New("zslime: unknown command")
	// ErrOutOfBounds reports a coordinate outside the world.
	ErrOutOfBounds = errors.New("zslime: coordinate out of bounds")
	// ErrWallCell reports an attempt to place life on a wall.
	ErrWallCell = errors.New("zslime: cell is a wall")
)

var commandNames = map[Command]string{
	CmdNone:            "none",
	CmdNewSeed:         "new-seed",
	CmdIncreaseDensity: "increase-density",
	CmdDecreaseDensity: "decrease-density",
	CmdSmooth:          "smooth",
	CmdZoomIn:          "zoom-in",
	CmdZoomOut:         "zoom-out",
	CmdTick:            "tick",
	CmdPopulate:        "populate",
	CmdClearLife:       "clear-life",
	CmdQuit:            "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// ParseCommand resolves the name printed by Command.String.
func ParseCommand(name string) (Command, error) {
	for cmd, n := range commandNames {
		if n == name {
			return cmd, nil
		}
	}
	return CmdNone, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Destructive reports whether the command wipes living cells.
func (c Command) Destructive() bool {
	switch c {
	case CmdNewSeed, CmdIncreaseDensity, CmdDecreaseDensity, CmdClearLife:
		return true
	}
	return false
}
