// Package present runs the editor window: tabs of sessions, the toolbar,
// timeline and status bar around the canvas, and the event loop that feeds
// pointer input to the canvas engine once per tick.
package present

import (
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/notify"
	"github.com/example/pixelframe/internal/palette"
	"github.com/example/pixelframe/internal/theme"
)

// tickInterval is the engine tick rate.
const tickInterval = time.Second / 60

// Tab is a document opened when the window starts.
type Tab struct {
	Document *document.Document
	Title    string
	// Path is where Ctrl+E exports; empty picks a GIF in the export dir.
	Path string
}

// Window holds the editor configuration. Settings apply to the first tab;
// later tabs inherit from the tab that was current when they opened.
type Window struct {
	Tabs        []Tab
	Theme       *theme.Theme
	Palette     palette.Palette
	Tool        canvas.ToolState
	Zoom        int
	Grid        bool
	OnionSkin   bool
	FPS         float64
	Loop        bool
	ExportDir   string
	ExportScale int
	Notifier    *notify.Notifier
	// NewDocument creates the document for Ctrl+N.
	NewDocument func() *document.Document

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithTab opens doc in a tab when the window starts.
func WithTab(doc *document.Document, title, path string) Option {
	return func(w *Window) { w.Tabs = append(w.Tabs, Tab{Document: doc, Title: title, Path: path}) }
}

// WithTheme sets the editor colors.
func WithTheme(th *theme.Theme) Option { return func(w *Window) { w.Theme = th } }

// WithPalette sets the toolbar swatches.
func WithPalette(p palette.Palette) Option { return func(w *Window) { w.Palette = p } }

// WithTool sets the initial tool.
func WithTool(t canvas.ToolState) Option { return func(w *Window) { w.Tool = t } }

// WithView sets the initial zoom and overlay flags.
func WithView(zoom int, grid, onion bool) Option {
	return func(w *Window) { w.Zoom, w.Grid, w.OnionSkin = zoom, grid, onion }
}

// WithPlayback sets the initial frame rate and loop flag.
func WithPlayback(fps float64, loop bool) Option {
	return func(w *Window) { w.FPS, w.Loop = fps, loop }
}

// WithExport sets where Ctrl+E writes and the pixel scale of the output.
func WithExport(dir string, scale int) Option {
	return func(w *Window) { w.ExportDir, w.ExportScale = dir, scale }
}

// WithNotifier sets the desktop notifier for export and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.Notifier = n } }

// WithDocumentFactory sets how Ctrl+N creates documents.
func WithDocumentFactory(fn func() *document.Document) Option {
	return func(w *Window) { w.NewDocument = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a Window with the provided options.
func New(opts ...Option) *Window {
	w := &Window{
		Theme:       theme.Default(),
		Palette:     palette.Default(),
		Tool:        canvas.DefaultToolState(),
		Zoom:        canvas.DefaultZoom,
		Grid:        true,
		FPS:         canvas.DefaultFPS,
		Loop:        true,
		ExportDir:   ".",
		ExportScale: 1,
		NewDocument: func() *document.Document { return document.New(16, 16, 1, document.Transparent) },
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *Window) notifyClose() {
	w.closeOnce.Do(func() {
		if w.onClose != nil {
			w.onClose()
		}
	})
}

// initialSize fits the first document at the configured zoom.
func (w *Window) initialSize(toolbarWidth int) image.Point {
	dw, dh := 16, 16
	if len(w.Tabs) > 0 && w.Tabs[0].Document != nil {
		dw, dh = w.Tabs[0].Document.Width(), w.Tabs[0].Document.Height()
	}
	return windowSize(toolbarWidth, dw, dh, max(1, w.Zoom))
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

func (w *Window) Main(s screen.Screen) {
	sz := w.initialSize(measureToolbar())
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: appTitle})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer win.Release()
	defer w.notifyClose()

	ed := newEditor(w, sz, textureFactory(s), func(e any) { win.Send(e) })
	defer ed.close()

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(tickInterval)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				win.Send(tickEvent{now: now})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	var chrome screen.Buffer
	defer func() {
		if chrome != nil {
			chrome.Release()
		}
	}()
	repaint := func() {
		want := image.Pt(ed.layout.width, ed.layout.height)
		if want.X <= 0 || want.Y <= 0 {
			return
		}
		if chrome == nil || chrome.Size() != want {
			if chrome != nil {
				chrome.Release()
			}
			if chrome, err = s.NewBuffer(want); err != nil {
				log.Printf("new buffer: %v", err)
				chrome = nil
				return
			}
		}
		drawWindow(win, chrome, ed)
	}

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			ed.resize(e.WidthPx, e.HeightPx)
			repaint()
		case paint.Event:
			repaint()
		case mouse.Event:
			ed.handleMouse(e)
		case key.Event:
			ed.handleKey(e)
		case tickEvent:
			if ed.tick(e.now) {
				repaint()
			}
		case exportDone:
			ed.finishExport(e)
		case error:
			log.Print(e)
		}
		if ed.quit {
			return
		}
	}
}

// drawWindow uploads the chrome, copies the current session texture into
// the canvas viewport and overlays the status message.
func drawWindow(win screen.Window, chrome screen.Buffer, ed *editor) {
	dst := chrome.RGBA()
	ed.drawChrome(dst)
	win.Upload(image.Point{}, chrome, chrome.Bounds())

	s := ed.cur()
	tex, err := s.Present(ed.overlay)
	if err != nil {
		log.Printf("present: %v", err)
	} else if wt, ok := tex.(*windowTexture); ok {
		win.Copy(ed.layout.canvas.Min, wt.tex, wt.tex.Bounds(), screen.Src, nil)
	}
	if r := ed.drawMessage(dst, s.Buffer()); !r.Empty() {
		win.Upload(r.Min, chrome, r)
	}
	win.Publish()
}
