package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/config"
	"github.com/example/pixelframe/internal/palette"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PIXELFRAME_THEME", "")
	return home
}

func TestRootUsage(t *testing.T) {
	isolateHome(t)
	for _, args := range [][]string{nil, {"bogus"}} {
		err := newRoot().Run(args)
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("Run(%q) = %v, want UsageError", args, err)
		}
		help := uerr.Error()
		if !strings.Contains(help, "Usage: pixelframe") || !strings.Contains(help, "-notify-export") {
			t.Fatalf("unexpected help:\n%s", help)
		}
	}
}

func TestSubcommandHelpRenders(t *testing.T) {
	d, err := parseDrawCmd([]string{"-output", "x.gif"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	help := (&UsageError{of: d}).Error()
	if !strings.Contains(help, "Usage: pixelframe draw") || !strings.Contains(help, "-scale") {
		t.Fatalf("unexpected draw help:\n%s", help)
	}
	help = (&UsageError{of: &versionCmd{r: &root{program: "pixelframe"}}}).Error()
	if !strings.Contains(help, "pixelframe version") {
		t.Fatalf("unexpected version help:\n%s", help)
	}
}

func TestThemePrecedence(t *testing.T) {
	isolateHome(t)
	r := newRoot()
	r.config.Theme = "dark"
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name != "Dark" {
		t.Fatalf("config theme: got %q", r.activeTheme.Name)
	}

	t.Setenv("PIXELFRAME_THEME", "high_contrast")
	r = newRoot()
	r.config.Theme = "dark"
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name != "High Contrast" {
		t.Fatalf("env theme: got %q", r.activeTheme.Name)
	}

	r = newRoot()
	if err := r.Run([]string{"-theme", "default", "version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name != "Default" {
		t.Fatalf("flag theme: got %q", r.activeTheme.Name)
	}

	r = newRoot()
	if err := r.Run([]string{"-theme", "no-such-theme", "version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name != "Default" {
		t.Fatalf("unknown theme should fall back, got %q", r.activeTheme.Name)
	}
}

func TestEditOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 5, 3))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	e, err := parseEditCmd([]string{"-tool", "eraser", "-size", "4", "-palette", "gameboy", path}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.brush.Kind != canvas.ToolEraser || e.brush.Radius != 4 {
		t.Fatalf("brush %+v", e.brush)
	}
	if e.palette.Name != "gameboy" || e.palette.Len() != 4 {
		t.Fatalf("palette %q with %d colors", e.palette.Name, e.palette.Len())
	}
	opts, err := e.options()
	if err != nil {
		t.Fatal(err)
	}
	if len(opts) != 9 {
		t.Fatalf("got %d options, want 8 settings and one tab", len(opts))
	}

	e, err = parseEditCmd(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.exportDir != "." {
		t.Fatalf("export dir %q", e.exportDir)
	}
	if opts, err := e.options(); err != nil || len(opts) != 9 {
		t.Fatalf("blank document options: %d %v", len(opts), err)
	}
}

func TestEditRejectsBadInput(t *testing.T) {
	if _, err := parseEditCmd([]string{"-tool", "spray"}, nil); err == nil {
		t.Fatalf("expected unknown tool error")
	}
	if _, err := parseEditCmd([]string{"-color", "nope"}, nil); err == nil || !strings.Contains(err.Error(), "-color") {
		t.Fatalf("expected color error, got %v", err)
	}
	if _, err := parseEditCmd([]string{"-palette", "missing"}, nil); err == nil {
		t.Fatalf("expected palette error")
	}
	e, err := parseEditCmd([]string{filepath.Join(t.TempDir(), "absent.png")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.options(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestPaletteCmd(t *testing.T) {
	var out bytes.Buffer
	p, err := parsePaletteCmd(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.stdout = &out
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "palette default (16 colors)") || !strings.Contains(out.String(), "Red") {
		t.Fatalf("unexpected listing:\n%s", out.String())
	}

	out.Reset()
	p, err = parsePaletteCmd([]string{"-format", "yaml", "pico8"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.stdout = &out
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	decoded, err := palette.DecodeYAML(&out)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != 16 {
		t.Fatalf("yaml round trip gave %d colors", decoded.Len())
	}

	out.Reset()
	p, err = parsePaletteCmd([]string{"-list"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.stdout = &out
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "pico8") || !strings.Contains(out.String(), "gameboy") {
		t.Fatalf("unexpected names:\n%s", out.String())
	}
}

func TestPaletteCmdWritesRIFF(t *testing.T) {
	if _, err := parsePaletteCmd([]string{"-format", "pal"}, nil); err == nil {
		t.Fatalf("expected -output requirement")
	}
	path := filepath.Join(t.TempDir(), "out.pal")
	p, err := parsePaletteCmd([]string{"-format", "pal", "-output", path, "gameboy"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(); err != nil {
		t.Fatal(err)
	}
	loaded, err := palette.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 4 {
		t.Fatalf("pal has %d colors", loaded.Len())
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	var out bytes.Buffer
	c, err := parseConfigCmd([]string{"print"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	c.stdout = &out
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[canvas]") {
		t.Fatalf("unexpected config:\n%s", out.String())
	}

	home := isolateHome(t)
	c.config.Theme = "dark"
	if err := c.runSave(config.NewLoader("test", "")); err != nil {
		t.Fatal(err)
	}
	saved, err := config.NewLoader("test", "").Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Theme != "dark" {
		t.Fatalf("saved theme %q", saved.Theme)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "pixelframe", "config.rc")); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	c, err = parseConfigCmd([]string{"reset"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}
