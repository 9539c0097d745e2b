package present

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixelframe/assets"
	"github.com/example/pixelframe/internal/canvas"
	"github.com/example/pixelframe/internal/clipboard"
	"github.com/example/pixelframe/internal/document"
	"github.com/example/pixelframe/internal/export"
	"github.com/example/pixelframe/internal/notify"
	"github.com/example/pixelframe/internal/palette"
	"github.com/example/pixelframe/internal/render"
	"github.com/example/pixelframe/internal/session"
	"github.com/example/pixelframe/internal/theme"
)

const (
	// maxTickElapsed caps the clock step after a stall so playback does not
	// skip ahead.
	maxTickElapsed  = 0.25
	recenterSeconds = 0.25
	messageDuration = 2 * time.Second
)

// clipboardAPI is the subset of the clipboard package the editor uses.
type clipboardAPI struct {
	WriteImage func(image.Image) error
	ReadImage  func() (image.Image, error)
	WriteColor func(uint32) error
	ReadColor  func() (uint32, error)
}

func systemClipboard() clipboardAPI {
	return clipboardAPI{
		WriteImage: clipboard.WriteImage,
		ReadImage:  clipboard.ReadImage,
		WriteColor: clipboard.WriteColor,
		ReadColor:  clipboard.ReadColor,
	}
}

type tickEvent struct{ now time.Time }

type exportDone struct {
	session *session.Session
	paths   []string
	preview image.Image
	err     error
}

type statusMessage struct {
	text  string
	until time.Time
}

type hoverState struct {
	tab, tool, swatch, size, timeline, frame, shortcut int
}

var noHover = hoverState{-1, -1, -1, -1, -1, -1, -1}

// tabDefaults seeds the first tab; later tabs copy the current one.
type tabDefaults struct {
	tool  canvas.ToolState
	zoom  int
	grid  bool
	onion bool
	fps   float64
	loop  bool
}

// editor is the window state that does not depend on the window system.
// It is driven entirely from the event loop goroutine.
type editor struct {
	layout  layout
	theme   *theme.Theme
	overlay canvas.Overlay
	palette palette.Palette

	tabs     []*session.Session
	current  int
	untitled int

	keys    keymap
	actions map[string]func()
	confirm string
	message statusMessage
	now     func() time.Time

	clip        clipboardAPI
	notifier    *notify.Notifier
	send        func(any)
	newTexture  session.TextureFactory
	newDocument func() *document.Document
	exportDir   string
	exportScale int
	exporting   int

	ptr        pointer
	lastTick   time.Time
	prev       canvas.TickResult
	needsPaint bool
	quit       bool

	defaults tabDefaults

	toolButtons     []*CacheButton
	tabButtons      []*TabButton
	timelineButtons []*Shortcut
	statusButtons   []*Shortcut
	frameRects      []image.Rectangle
	hover           hoverState
}

func newEditor(w *Window, size image.Point, tex session.TextureFactory, send func(any)) *editor {
	ed := &editor{
		layout:      newLayout(size.X, size.Y, measureToolbar()),
		palette:     w.Palette,
		now:         time.Now,
		clip:        systemClipboard(),
		notifier:    w.Notifier,
		send:        send,
		newTexture:  tex,
		newDocument: w.NewDocument,
		exportDir:   w.ExportDir,
		exportScale: w.ExportScale,
		defaults:    tabDefaults{tool: w.Tool, zoom: w.Zoom, grid: w.Grid, onion: w.OnionSkin, fps: w.FPS, loop: w.Loop},
		hover:       noHover,
		prev:        canvas.TickResult{Mutated: -1},
	}
	ed.setTheme(w.Theme)
	ed.configure()
	for _, t := range w.Tabs {
		ed.openTab(t.Document, t.Title, t.Path)
	}
	if len(ed.tabs) == 0 {
		ed.openTab(ed.newDocument(), "", "")
	}
	ed.current = 0
	return ed
}

func (ed *editor) cur() *session.Session { return ed.tabs[ed.current] }

// openTab adds a session for doc and selects it. Settings come from the
// current tab when there is one, otherwise from the window defaults.
func (ed *editor) openTab(doc *document.Document, title, path string) *session.Session {
	if title == "" {
		ed.untitled++
		title = fmt.Sprintf("untitled-%d", ed.untitled)
	}
	tool, grid, onion := ed.defaults.tool, ed.defaults.grid, ed.defaults.onion
	zoom, fps, loop := ed.defaults.zoom, ed.defaults.fps, ed.defaults.loop
	if len(ed.tabs) > 0 {
		c := ed.cur()
		tool, grid, onion = c.Tool, c.Grid, c.OnionSkin
		zoom = c.Engine().View().Zoom
		fps, loop = c.Engine().Playback().FPS, c.Engine().Playback().Loop
	}
	s := session.New(doc, ed.layout.canvas,
		session.WithTitle(title),
		session.WithPath(path),
		session.WithTool(tool),
		session.WithTextureFactory(ed.newTexture),
	)
	s.Grid, s.OnionSkin = grid, onion
	s.PaletteIndex = ed.palette.Index(s.Tool.Color)
	v := s.Engine().View()
	v.SetZoom(zoom)
	s.Engine().SetView(v)
	pb := s.Engine().Playback()
	pb.SetFPS(fps)
	pb.Loop = loop
	ed.tabs = append(ed.tabs, s)
	ed.current = len(ed.tabs) - 1
	ed.needsPaint = true
	return s
}

func (ed *editor) closeTab(i int) {
	if len(ed.tabs) <= 1 || i < 0 || i >= len(ed.tabs) {
		return
	}
	ed.tabs[i].Close()
	ed.tabs = append(ed.tabs[:i], ed.tabs[i+1:]...)
	if ed.current >= len(ed.tabs) {
		ed.current = len(ed.tabs) - 1
	}
	ed.prev = canvas.TickResult{Mutated: -1}
	ed.needsPaint = true
}

func (ed *editor) close() {
	for _, s := range ed.tabs {
		s.Close()
	}
}

func (ed *editor) setTheme(th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	ed.theme = th
	ed.overlay = overlayFor(th)
	ed.toolButtons = ed.toolButtons[:0]
	for i, kind := range canvas.ToolKinds {
		k := kind
		ed.toolButtons = append(ed.toolButtons, &CacheButton{Button: &ToolButton{
			label: label{text: toolLabels[i], theme: th, onSelect: func() { ed.selectTool(k) }},
			kind:  kind,
		}})
	}
	ed.needsPaint = true
}

// overlayFor converts theme colors into composite settings.
func overlayFor(th *theme.Theme) canvas.Overlay {
	ov := canvas.DefaultOverlay()
	ov.Background = th.Background
	ov.CheckerLight = th.CheckerLight
	ov.CheckerDark = th.CheckerDark
	ov.GridColor = th.Grid
	ov.HoverColor = th.Hover
	ov.Border = th.CanvasBorder
	ov.ShadowColor = th.Shadow
	ov.Shadow = render.NewShadow(render.DefaultShadowOptions())
	return ov
}

func (ed *editor) resize(width, height int) {
	ed.layout = newLayout(width, height, ed.layout.toolbarWidth)
	for _, s := range ed.tabs {
		s.SetViewport(ed.layout.canvas)
	}
	ed.needsPaint = true
}

// show sets the transient status message and logs it.
func (ed *editor) show(format string, args ...any) {
	ed.message = statusMessage{text: fmt.Sprintf(format, args...), until: ed.now().Add(messageDuration)}
	log.Print(ed.message.text)
	ed.needsPaint = true
}

// confirmed reports whether action was requested twice in a row, showing
// prompt on the first request.
func (ed *editor) confirmed(action, prompt string) bool {
	if ed.confirm == action {
		ed.confirm = ""
		return true
	}
	ed.confirm = action
	ed.show("%s", prompt)
	return false
}

func (ed *editor) configure() {
	ed.keys = keymap{}
	ed.actions = map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		ed.actions[name] = fn
		ed.keys.bind(name, keys)
	}

	for i, r := range "beiglrf" {
		kind := canvas.ToolKinds[i]
		register("tool."+kind.String(), shortcutList{{Rune: r}}, func() { ed.selectTool(kind) })
	}
	register("size.down", shortcutList{{Rune: '['}}, func() { ed.setRadius(ed.cur().Tool.Radius - 1) })
	register("size.up", shortcutList{{Rune: ']'}}, func() { ed.setRadius(ed.cur().Tool.Radius + 1) })
	register("zoom.in", shortcutList{{Rune: '+'}, {Rune: '+', Modifiers: key.ModShift}, {Rune: '='}, {Code: key.CodeKeypadPlusSign}}, func() { ed.zoom(1) })
	register("zoom.out", shortcutList{{Rune: '-'}, {Code: key.CodeKeypadHyphenMinus}}, func() { ed.zoom(-1) })
	register("recenter", shortcutList{{Code: key.CodeHome}}, func() { ed.cur().Engine().Recenter(recenterSeconds) })
	register("play", shortcutList{{Rune: ' '}, {Code: key.CodeSpacebar}}, func() { ed.cur().Engine().Playback().Toggle() })
	register("fps.down", shortcutList{{Rune: ','}}, func() { ed.stepFPS(-1) })
	register("fps.up", shortcutList{{Rune: '.'}}, func() { ed.stepFPS(1) })
	register("frame.prev", shortcutList{{Code: key.CodeLeftArrow}}, func() { ed.cur().PrevFrame() })
	register("frame.next", shortcutList{{Code: key.CodeRightArrow}}, func() { ed.cur().NextFrame() })
	register("frame.new", chord('b', key.CodeB, key.ModAlt), func() { ed.cur().AddFrame() })
	register("frame.dup", chord('n', key.CodeN, key.ModAlt), func() {
		if _, err := ed.cur().DuplicateFrame(); err != nil {
			ed.show("duplicate: %v", err)
		}
	})
	register("frame.delete", chord('f', key.CodeF, key.ModAlt), func() {
		if !ed.cur().RemoveFrame() {
			ed.show("cannot remove the last frame")
		}
	})
	register("frame.reverse", chord('i', key.CodeI, key.ModAlt), func() { ed.cur().ReverseFrames() })
	register("flip.h", chord('h', key.CodeH, key.ModShift), func() { ed.report("flip", ed.cur().FlipHorizontal()) })
	register("flip.v", chord('v', key.CodeV, key.ModShift), func() { ed.report("flip", ed.cur().FlipVertical()) })
	register("clear", shortcutList{{Code: key.CodeDeleteForward}}, func() { ed.report("clear", ed.cur().ClearFrame()) })
	register("grid", shortcutList{{Rune: 'h'}}, func() { ed.cur().Grid = !ed.cur().Grid })
	register("onion", shortcutList{{Rune: 'o'}}, func() { ed.cur().OnionSkin = !ed.cur().OnionSkin })

	register("copy", chord('c', key.CodeC, key.ModControl), ed.copyFrame)
	register("paste", chord('v', key.CodeV, key.ModControl), ed.pasteFrame)
	register("color.copy", chord('c', key.CodeC, key.ModControl|key.ModShift), ed.copyColor)
	register("color.paste", chord('v', key.CodeV, key.ModControl|key.ModShift), ed.pasteColor)
	register("export", chord('e', key.CodeE, key.ModControl), ed.exportCurrent)
	register("undo", chord('z', key.CodeZ, key.ModControl), func() { ed.report("undo", ed.cur().Undo()) })
	register("redo", append(chord('y', key.CodeY, key.ModControl), chord('z', key.CodeZ, key.ModControl|key.ModShift)...), func() {
		ed.report("redo", ed.cur().Redo())
	})
	register("theme.next", chord('t', key.CodeT, key.ModControl), ed.nextTheme)

	register("tab.new", chord('n', key.CodeN, key.ModControl), func() { ed.openTab(ed.newDocument(), "", "") })
	register("tab.close", chord('w', key.CodeW, key.ModControl), func() {
		if len(ed.tabs) <= 1 {
			ed.show("cannot close the last tab")
			return
		}
		if ed.cur().Dirty() && !ed.confirmed("tab.close", "unexported changes, press Ctrl+W again to close") {
			return
		}
		ed.closeTab(ed.current)
	})
	register("quit", chord('q', key.CodeQ, key.ModControl), func() {
		for _, s := range ed.tabs {
			if s.Dirty() {
				if !ed.confirmed("quit", "unexported changes, press Ctrl+Q again to quit") {
					return
				}
				break
			}
		}
		ed.quit = true
	})
	for i := 0; i < 9; i++ {
		idx := i
		register(fmt.Sprintf("tab.%d", i+1), chord('1'+rune(i), key.Code1+key.Code(i), key.ModControl), func() {
			if idx < len(ed.tabs) {
				ed.current = idx
			}
		})
	}
}

// trigger runs a named action and schedules a repaint.
func (ed *editor) trigger(name string) {
	if name != ed.confirm {
		ed.confirm = ""
	}
	if fn, ok := ed.actions[name]; ok {
		fn()
	}
	ed.needsPaint = true
}

func (ed *editor) report(what string, err error) {
	if err != nil {
		ed.show("%s: %v", what, err)
	}
}

func (ed *editor) selectTool(kind canvas.ToolKind) {
	ed.cur().Tool.Kind = kind
	ed.needsPaint = true
}

func (ed *editor) setRadius(r int) {
	s := ed.cur()
	s.Tool.Radius = r
	s.Tool = s.Tool.Normalized()
}

func (ed *editor) selectSwatch(i int) {
	s := ed.cur()
	e := ed.palette.At(i)
	s.PaletteIndex = i
	s.Tool.Color = e.Color
	if s.Tool.Kind == canvas.ToolEraser {
		s.Tool.Kind = canvas.ToolBrush
	}
}

func (ed *editor) zoom(steps int) {
	eng := ed.cur().Engine()
	v := eng.View()
	v.StepZoom(steps)
	eng.SetView(v)
}

func (ed *editor) stepFPS(delta float64) {
	pb := ed.cur().Engine().Playback()
	pb.SetFPS(pb.FPS + delta)
}

func (ed *editor) nextTheme() {
	names := assets.ThemeNames()
	if len(names) == 0 {
		return
	}
	next := names[0]
	for i, n := range names {
		if n == strings.ReplaceAll(strings.ToLower(ed.theme.Name), " ", "_") {
			next = names[(i+1)%len(names)]
		}
	}
	th, err := theme.NewLoader().Load(next)
	if err != nil {
		ed.show("theme: %v", err)
		return
	}
	if th.Name == "" {
		th.Name = next
	}
	ed.setTheme(th)
	ed.show("theme %s", th.Name)
}

func (ed *editor) copyFrame() {
	s := ed.cur()
	img, err := s.CurrentImage()
	if err != nil {
		ed.show("copy: %v", err)
		return
	}
	if err := ed.clip.WriteImage(img); err != nil {
		ed.show("copy: %v", err)
		return
	}
	ed.show("frame %d copied to clipboard", s.Frame()+1)
	ed.notifier.Copy(fmt.Sprintf("frame %d of %s", s.Frame()+1, s.Title))
}

func (ed *editor) pasteFrame() {
	img, err := ed.clip.ReadImage()
	if err != nil {
		ed.show("paste: %v", err)
		return
	}
	s := ed.cur()
	if err := s.Paste(img); err != nil {
		ed.show("paste: %v", err)
		return
	}
	ed.show("pasted into frame %d", s.Frame()+1)
}

func (ed *editor) copyColor() {
	c := ed.cur().Tool.Color
	if err := ed.clip.WriteColor(c); err != nil {
		ed.show("copy color: %v", err)
		return
	}
	ed.show("copied %s", palette.FormatColor(c))
}

func (ed *editor) pasteColor() {
	c, err := ed.clip.ReadColor()
	if err != nil {
		ed.show("paste color: %v", err)
		return
	}
	s := ed.cur()
	s.Tool.Color = c
	s.PaletteIndex = ed.palette.Index(c)
	if s.PaletteIndex < 0 {
		if i := ed.palette.Nearest(c); i >= 0 {
			ed.show("color %s (nearest swatch %s)", palette.FormatColor(c), ed.palette.At(i).Name)
			return
		}
	}
	ed.show("color %s", palette.FormatColor(c))
}

// exportPath is the session path, or a GIF named after the tab in the
// export directory.
func (ed *editor) exportPath(s *session.Session) string {
	if s.Path != "" {
		return s.Path
	}
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, s.Title)
	dir := ed.exportDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+".gif")
}

// exportCurrent snapshots the current document and encodes it off the event
// loop. The result comes back as an exportDone event.
func (ed *editor) exportCurrent() {
	s := ed.cur()
	frames, err := export.Snapshot(s.Document(), max(1, ed.exportScale))
	if err != nil {
		ed.show("export: %v", err)
		return
	}
	path := ed.exportPath(s)
	pb := s.Engine().Playback()
	opts := export.Options{FPS: pb.FPS, Loop: pb.Loop}
	ed.exporting++
	ed.show("exporting %s", path)
	send := ed.send
	go func() {
		paths, err := export.WriteFrames(context.Background(), frames, path, opts)
		send(exportDone{session: s, paths: paths, preview: frames[0], err: err})
	}()
}

func (ed *editor) finishExport(ev exportDone) {
	ed.exporting--
	if ev.err != nil {
		ed.show("export: %v", ev.err)
		return
	}
	ev.session.MarkClean()
	if len(ev.paths) == 1 {
		ed.show("exported %s", ev.paths[0])
	} else {
		ed.show("exported %d frames to %s", len(ev.paths), filepath.Dir(ev.paths[0]))
	}
	ed.notifier.Export(ev.paths, ev.preview)
}

func (ed *editor) handleKey(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}
	if action, ok := ed.keys.lookup(e); ok {
		ed.trigger(action)
		return
	}
	ed.confirm = ""
}

func (ed *editor) handleMouse(e mouse.Event) {
	ed.ptr.update(e, ed.layout.canvas)
	p := image.Pt(int(e.X), int(e.Y))
	if p.In(ed.layout.canvas) {
		if ed.hover != noHover {
			ed.hover = noHover
			ed.needsPaint = true
		}
		return
	}
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	if press && ed.message.text != "" {
		ed.message = statusMessage{}
		ed.needsPaint = true
	}
	h := ed.hitChrome(p)
	if h != ed.hover {
		ed.hover = h
		ed.needsPaint = true
	}
	if press {
		ed.activate(h)
		ed.needsPaint = true
	}
}

// hitChrome finds the widget under p using the rectangles recorded by the
// last drawChrome.
func (ed *editor) hitChrome(p image.Point) hoverState {
	h := noHover
	for i, tb := range ed.tabButtons {
		if p.In(tb.rect) {
			h.tab = i
			return h
		}
	}
	h.tool, h.swatch, h.size = ed.layout.toolbarHit(p, ed.palette.Len())
	if h != noHover {
		return h
	}
	for i, sc := range ed.timelineButtons {
		if p.In(sc.rect) {
			h.timeline = i
			return h
		}
	}
	for i, r := range ed.frameRects {
		if p.In(r) {
			h.frame = i
			return h
		}
	}
	for i, sc := range ed.statusButtons {
		if p.In(sc.rect) {
			h.shortcut = i
			return h
		}
	}
	return h
}

func (ed *editor) activate(h hoverState) {
	switch {
	case h.tab >= 0 && h.tab < len(ed.tabs):
		ed.current = h.tab
	case h.tool >= 0 && h.tool < len(ed.toolButtons):
		ed.toolButtons[h.tool].Activate()
	case h.swatch >= 0:
		ed.selectSwatch(h.swatch)
	case h.size >= 0:
		ed.setRadius(sizeOptions[h.size])
	case h.timeline >= 0 && h.timeline < len(ed.timelineButtons):
		ed.timelineButtons[h.timeline].Activate()
	case h.frame >= 0:
		ed.cur().SelectFrame(h.frame)
	case h.shortcut >= 0 && h.shortcut < len(ed.statusButtons):
		ed.statusButtons[h.shortcut].Activate()
	}
}

// tick advances the current session by one step and reports whether the
// window needs repainting.
func (ed *editor) tick(now time.Time) bool {
	elapsed := 0.0
	if !ed.lastTick.IsZero() {
		elapsed = min(now.Sub(ed.lastTick).Seconds(), maxTickElapsed)
	}
	ed.lastTick = now
	s := ed.cur()
	res := s.Tick(ed.ptr.input(ed.layout.canvas, s.Engine().State(), elapsed))
	if res.Err != nil {
		if text := res.Err.Error(); ed.message.text != text || now.After(ed.message.until) {
			ed.show("%s", text)
		}
	}
	paint := ed.needsPaint || changed(ed.prev, res)
	if ed.message.text != "" && now.After(ed.message.until) {
		ed.message = statusMessage{}
		paint = true
	}
	ed.prev = res
	ed.needsPaint = false
	return paint
}

// changed reports whether cur differs visibly from prev.
func changed(prev, cur canvas.TickResult) bool {
	return cur.Mutated >= 0 ||
		prev.View != cur.View ||
		prev.Frame != cur.Frame ||
		prev.State != cur.State ||
		prev.Hover != cur.Hover ||
		prev.HoverOK != cur.HoverOK
}
