package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pixelframe/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recorder(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		*out = append(*out, s)
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Copy("frame 1")
	n.Export([]string{"a.png"}, nil)
	if len(got) != 0 {
		t.Fatalf("expected no notifications, got %v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	nilNotifier.Enable(EventCopy, true)
}

func TestCopyUsesTemplate(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got[0].title != platform.AppName || got[0].body != "Copied frame to clipboard" {
		t.Fatalf("unexpected notification %+v", got[0])
	}
}

func TestExportDescribesSequence(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventExport, true)
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "frame_0001.png"), filepath.Join(dir, "frame_0002.png")}
	n.Export(paths, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	if len(got) != 1 {
		t.Fatalf("expected one notification")
	}
	if got[0].body != "Exported 2 frames to "+dir {
		t.Fatalf("unexpected body %q", got[0].body)
	}
	if !got[0].iconExisted {
		t.Fatalf("expected preview icon to exist during send")
	}
	if _, err := os.Stat(got[0].opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("expected preview removed after send")
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("PIXELFRAME_NOTIFY_TITLE", "Anim")
	t.Setenv("PIXELFRAME_NOTIFY_EXPORT_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Anim" {
		t.Fatalf("unexpected title %q", prefs.Title)
	}
	var got []sent
	n := New(prefs).WithSender(recorder(&got))
	n.Enable(EventExport, true)
	n.Export([]string{"/tmp/out.gif"}, nil)
	if len(got) != 1 || got[0].body != "Wrote /tmp/out.gif" {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func TestSendErrorIsLogged(t *testing.T) {
	n := New(DefaultPreferences()).WithSender(func(string, string, platform.Options) error {
		return errors.New("no bus")
	})
	n.Enable(EventCopy, true)
	n.Copy("frame")
	if !strings.Contains(DefaultPreferences().Events[EventCopy].Template, "%s") {
		t.Fatalf("template must take the detail")
	}
}
