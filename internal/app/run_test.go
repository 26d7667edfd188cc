package app

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"gpu-ca/internal/cpu"
	"gpu-ca/internal/driver"
	"gpu-ca/internal/rules/gol"
)

func TestNewDriverWithoutCapture(t *testing.T) {
	r := gol.DefaultRule()
	r.Grid.Rows = 8
	b := cpu.New(r, 1)
	d, rec := NewDriver(r, b, b.Source(CaptureLayout(r)), log.New(io.Discard, "", 0))
	if rec != nil {
		t.Fatal("gol preset records nothing")
	}
	if err := d.Run(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	if d.Phase() != driver.PhaseLive {
		t.Fatalf("phase %v", d.Phase())
	}
}

func TestNewDriverWritesAnimation(t *testing.T) {
	r := gol.DefaultRule()
	r.Grid.Rows = 10
	r.Capture.Frames = 4
	r.Capture.Width = 20
	r.Capture.Height = 20
	r.Capture.Path = filepath.Join(t.TempDir(), "gol.gif")

	b := cpu.New(r, 2)
	d, rec := NewDriver(r, b, b.Source(CaptureLayout(r)), log.New(io.Discard, "", 0))
	if rec == nil {
		t.Fatal("expected a recorder")
	}
	if err := d.Run(context.Background(), 5); err != nil {
		t.Fatal(err)
	}
	if d.Phase() != driver.PhaseSaved || d.Saved() != 4 {
		t.Fatalf("phase %v saved %d err %v", d.Phase(), d.Saved(), d.SaveErr())
	}
	if _, err := os.Stat(r.Capture.Path); err != nil {
		t.Fatal(err)
	}
}
