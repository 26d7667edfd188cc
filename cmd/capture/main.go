// Command capture runs a rule on the host for its capture window and writes
// the animation without opening a window.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"gpu-ca/internal/app"
	"gpu-ca/internal/cpu"
	"gpu-ca/internal/driver"
	_ "gpu-ca/internal/rules/brain"
	_ "gpu-ca/internal/rules/elementary"
	_ "gpu-ca/internal/rules/gol"
	_ "gpu-ca/internal/rules/mnca"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	rule, err := cfg.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	if !rule.Capture.Enabled() {
		log.Fatalf("rule %s records nothing; pass -frames", rule.Name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backend := cpu.New(rule, cfg.Workers)
	d, rec := app.NewDriver(rule, backend, backend.Source(app.CaptureLayout(rule)), nil)
	log.Printf("%s: %dx%d grid, capturing %d ticks at %dx%d",
		rule.Name, rule.Grid.Rows, rule.Grid.Rows, rec.Length(), rule.Capture.Width, rule.Capture.Height)

	// The save step runs on the tick after the last captured one.
	if err := d.Run(ctx, rec.Length()+1); err != nil {
		log.Fatal(err)
	}
	if d.Phase() != driver.PhaseSaved {
		log.Fatalf("no animation written: %v", d.SaveErr())
	}
	log.Printf("wrote %d frames to %s", d.Saved(), rule.Capture.Path)
}
