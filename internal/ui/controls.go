package ui

import (
	"image"
	"math"
	"strconv"

	"github.com/nikkolaka/z-slime/internal/core"
)

const (
	panelPadding = 8
	controlRow   = 20
	buttonSize   = 16
	buttonGap    = 4
)

// controlState tracks the last known value and hit boxes of one HUD control.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// controlPanel holds the adjustable controls and the setters that apply them.
type controlPanel struct {
	states      []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

func newControlPanel(sim any) controlPanel {
	var p controlPanel
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		p.states = make([]controlState, len(controls))
		for i, ctrl := range controls {
			p.states[i] = controlState{control: ctrl, value: "--"}
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		p.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		p.floatSetter = setter
	}
	return p
}

// keys reports the parameter keys owned by controls.
func (p *controlPanel) keys() map[string]bool {
	keys := make(map[string]bool, len(p.states))
	for _, s := range p.states {
		keys[s.control.Key] = true
	}
	return keys
}

// layout places one control per row starting at top, with the buttons
// right-aligned in a panel of the given width.
func (p *controlPanel) layout(top, width int) {
	for i := range p.states {
		rowTop := top + i*controlRow
		buttonY := rowTop + (controlRow-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		p.states[i].top = rowTop
		p.states[i].minusRect = minus
		p.states[i].plusRect = plus
	}
}

func (p *controlPanel) refresh(snap core.ParameterSnapshot) {
	for i := range p.states {
		state := &p.states[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snap.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		}
	}
}

// click applies the button under panel-local point (x, y), if any, and
// reports whether a parameter changed.
func (p *controlPanel) click(x, y int) bool {
	for i := range p.states {
		state := &p.states[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(x, y, state.minusRect) {
			return p.adjust(state, -1)
		}
		if pointInRect(x, y, state.plusRect) {
			return p.adjust(state, 1)
		}
	}
	return false
}

func (p *controlPanel) adjust(state *controlState, direction int) bool {
	if state == nil || direction == 0 || !p.canAdjust(state, direction) {
		return false
	}
	ctrl := state.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		target := state.intValue + direction*intStep(ctrl)
		if ctrl.HasMin {
			target = max(target, int(math.Round(ctrl.Min)))
		}
		if ctrl.HasMax {
			target = min(target, int(math.Round(ctrl.Max)))
		}
		if target == state.intValue || !p.intSetter.SetIntParameter(ctrl.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.value = strconv.Itoa(target)
	case core.ParamTypeFloat:
		target := state.floatValue + float64(direction)*floatStep(ctrl)
		if ctrl.HasMin {
			target = max(target, ctrl.Min)
		}
		if ctrl.HasMax {
			target = min(target, ctrl.Max)
		}
		// Snap to the step grid.
		target = math.Round(target/floatStep(ctrl)) * floatStep(ctrl)
		if math.Abs(target-state.floatValue) < 1e-9 || !p.floatSetter.SetFloatParameter(ctrl.Key, target) {
			return false
		}
		state.floatValue = target
		state.value = formatFloat(ctrl, target)
	default:
		return false
	}
	return true
}

func (p *controlPanel) canAdjust(state *controlState, direction int) bool {
	ctrl := state.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		if p.intSetter == nil {
			return false
		}
		if direction < 0 && ctrl.HasMin {
			return state.intValue > int(math.Round(ctrl.Min))
		}
		if direction > 0 && ctrl.HasMax {
			return state.intValue < int(math.Round(ctrl.Max))
		}
		return true
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return false
		}
		if direction < 0 && ctrl.HasMin {
			return state.floatValue > ctrl.Min+1e-9
		}
		if direction > 0 && ctrl.HasMax {
			return state.floatValue < ctrl.Max-1e-9
		}
		return true
	}
	return false
}

func intStep(ctrl core.ParameterControl) int {
	step := int(math.Round(ctrl.Step))
	if step <= 0 {
		return 1
	}
	return step
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step <= 0 {
		return 0.05
	}
	return ctrl.Step
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
