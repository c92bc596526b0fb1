package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	GPS      int
	Seed     int64
	Width    int
	Height   int
	HUDWidth int
	Paused   bool

	Overrides Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "zslime", Scale: 6, TPS: 60, GPS: 10, Seed: 42, Width: 100, Height: 100, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.GPS, "gps", c.GPS, "life generations per second while running")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "initial terrain seed")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start with life paused")
	fs.Var(&c.Overrides, "set", "world parameter override in key=value form (repeatable)")
}

// SimConfig merges the dedicated flags and -set overrides into the map the
// simulation factory expects. Explicit -set values win.
func (c *Config) SimConfig() map[string]string {
	out := map[string]string{
		"w":    fmt.Sprint(c.Width),
		"h":    fmt.Sprint(c.Height),
		"seed": fmt.Sprint(c.Seed),
	}
	for k, v := range c.Overrides {
		out[k] = v
	}
	return out
}

// Overrides collects repeatable key=value flags.
type Overrides map[string]string

func (o *Overrides) String() string {
	if o == nil {
		return ""
	}
	parts := make([]string, 0, len(*o))
	for k, v := range *o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o *Overrides) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("override %q: want key=value", value)
	}
	if *o == nil {
		*o = Overrides{}
	}
	(*o)[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}
