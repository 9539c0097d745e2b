package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	src := `
# comment
Name: Mine
background: #112233
Grid: #FFFFFF80
Unknown: #000000
`
	th, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Mine" {
		t.Errorf("expected name Mine, got %q", th.Name)
	}
	if th.Background != (color.RGBA{0x11, 0x22, 0x33, 0xFF}) {
		t.Errorf("unexpected background %v", th.Background)
	}
	// Semi-transparent colors are stored premultiplied.
	if th.Grid != (color.RGBA{0x80, 0x80, 0x80, 0x80}) {
		t.Errorf("unexpected grid %v", th.Grid)
	}
	if th.Foreground != Default().Foreground {
		t.Errorf("missing keys should keep defaults")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: #12\n")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	th := Default()
	var sb strings.Builder
	for _, f := range th.Fields() {
		sb.WriteString(f.Name + ": " + FormatColor(f.Color) + "\n")
	}
	got, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range got.Fields() {
		if f != th.Fields()[i] {
			t.Errorf("%s: got %v want %v", f.Name, f.Color, th.Fields()[i].Color)
		}
	}
}

func TestLoaderEmbedded(t *testing.T) {
	l := &Loader{}
	for _, name := range []string{"default", "dark", "high_contrast"} {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("%s: empty name", name)
		}
	}
	if _, err := l.Load("hotdog"); err == nil {
		t.Fatalf("expected missing theme error")
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Fatalf("empty name should give the default theme")
	}
}

func TestLoaderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sunset.theme"), []byte("Name: Sunset\nBackground: orange\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("sunset")
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Sunset" || th.Background != (color.RGBA{255, 165, 0, 255}) {
		t.Fatalf("unexpected theme %+v", th)
	}
}
