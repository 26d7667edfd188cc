package app

import (
	"flag"
	"strconv"

	"gpu-ca/internal/rules"
)

// Config represents the command-line parameters shared by the binaries.
// Zero or negative values keep the rule preset.
type Config struct {
	Rule    string
	Out     string
	Frames  int
	Size    int
	Seed    int64
	Rows    int
	Code    int
	Window  int
	TPS     int
	Workers int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Rule: "mnca", Frames: -1, Seed: -1, Code: -1, Window: 1500, TPS: 60}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Rule, "rule", c.Rule, "automaton rule to run")
	fs.StringVar(&c.Out, "out", c.Out, "animation output path (default from rule)")
	fs.IntVar(&c.Frames, "frames", c.Frames, "ticks to capture, 0 disables capture (default from rule)")
	fs.IntVar(&c.Size, "size", c.Size, "square capture resolution in pixels (default from rule)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial grid (default from rule)")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid side length (default from rule)")
	fs.IntVar(&c.Code, "code", c.Code, "Wolfram code for the elementary rule")
	fs.IntVar(&c.Window, "window", c.Window, "window side length in pixels")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second in the preview window")
	fs.IntVar(&c.Workers, "workers", c.Workers, "host worker goroutines, 0 uses all CPUs")
}

// Overrides converts the set fields into rule overrides.
func (c *Config) Overrides() map[string]string {
	out := map[string]string{}
	if c.Out != "" {
		out["out"] = c.Out
	}
	if c.Frames >= 0 {
		out["frames"] = strconv.Itoa(c.Frames)
	}
	if c.Size > 0 {
		out["size"] = strconv.Itoa(c.Size)
	}
	if c.Seed >= 0 {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	if c.Rows > 0 {
		out["rows"] = strconv.Itoa(c.Rows)
	}
	if c.Code >= 0 {
		out["code"] = strconv.Itoa(c.Code)
	}
	return out
}

// Resolve returns the configured rule with overrides applied.
func (c *Config) Resolve() (rules.Rule, error) {
	return rules.Resolve(c.Rule, c.Overrides())
}
