package assets

import (
	"io"
	"strings"
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"dark", "default", "high_contrast"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v want %v", names, want)
	}
}

func TestOpenTheme(t *testing.T) {
	f, err := Theme("dark.theme")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Name: Dark") {
		t.Fatalf("unexpected theme contents:\n%s", data)
	}
	if _, err := Theme("hotdog"); err == nil {
		t.Fatalf("expected error for missing theme")
	}
}

func TestPalettes(t *testing.T) {
	names := PaletteNames()
	if len(names) != 2 || names[0] != "gameboy" || names[1] != "pico8" {
		t.Fatalf("unexpected palettes %v", names)
	}
	f, err := Palette("pico8")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
}
