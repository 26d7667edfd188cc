//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"gpu-ca/internal/app"
	"gpu-ca/internal/cpu"
	_ "gpu-ca/internal/rules/brain"
	_ "gpu-ca/internal/rules/elementary"
	_ "gpu-ca/internal/rules/gol"
	_ "gpu-ca/internal/rules/mnca"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Rule = "gol"
	cfg.Window = 750
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	rule, err := cfg.Resolve()
	if err != nil {
		log.Fatal(err)
	}

	backend := cpu.New(rule, cfg.Workers)
	d, rec := app.NewDriver(rule, backend, backend.Source(app.CaptureLayout(rule)), nil)
	game := app.New(backend, d, rec, cfg.Window)

	ebiten.SetWindowTitle("gpu-ca: " + rule.Name + " (cpu)")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Window, cfg.Window)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
