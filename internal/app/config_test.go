package app

import (
	"flag"
	"testing"

	_ "gpu-ca/internal/rules/elementary"
	_ "gpu-ca/internal/rules/gol"
	_ "gpu-ca/internal/rules/mnca"
)

func TestConfigDefaultsKeepPreset(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Overrides()) != 0 {
		t.Fatalf("defaults should not override the preset: %v", cfg.Overrides())
	}
	r, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "mnca" || r.Capture.Frames != 290 {
		t.Fatalf("unexpected rule %s frames %d", r.Name, r.Capture.Frames)
	}
}

func TestConfigFlagsOverride(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-rule", "gol", "-frames", "12", "-size", "100", "-out", "x.gif", "-seed", "0", "-rows", "50"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	r, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "gol" || r.Capture.Frames != 12 || r.Capture.Width != 100 || r.Capture.Height != 100 {
		t.Fatalf("capture overrides not applied: %+v", r.Capture)
	}
	if r.Capture.Path != "x.gif" || r.Grid.Seed != 0 || r.Grid.Rows != 50 {
		t.Fatalf("overrides not applied: %+v %+v", r.Capture, r.Grid)
	}
}

func TestConfigUnknownRule(t *testing.T) {
	cfg := NewConfig()
	cfg.Rule = "nope"
	if _, err := cfg.Resolve(); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}

func TestConfigCodeReachesElementary(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-rule", "elementary", "-code", "30"}); err != nil {
		t.Fatal(err)
	}
	r, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if r.Params["code"] != 30 {
		t.Fatalf("code override not applied: %v", r.Params)
	}
}
