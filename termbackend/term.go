// Package termbackend drives an engine from a terminal. Layout units are terminal cells:
// the engine must measure with rancher.CellMetrics{Cell: rancher.Vec{X: 1, Y: 1}}.
package termbackend

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"go.hasen.dev/rancher"
)

// Metrics are the cell metrics the engine has to use with a terminal.
var Metrics = rancher.CellMetrics{Cell: rancher.Vec{X: 1, Y: 1}}

type Terminal struct {
	Engine *rancher.Engine
	Config rancher.Config

	screen  tcell.Screen
	logger  *zap.Logger
	held    tcell.ButtonMask
	pending bool
	painted bool
	quit    chan struct{}
}

// NewScreen opens the controlling terminal.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return screen, nil
}

// New wraps an initialized screen. The window size is taken from the screen right away.
func New(en *rancher.Engine, screen tcell.Screen, cfg rancher.Config) *Terminal {
	t := &Terminal{
		Engine: en,
		Config: cfg,
		screen: screen,
		logger: rancher.Log().Named("term"),
		quit:   make(chan struct{}),
	}
	w, h := screen.Size()
	en.Pool(rancher.WindowResize(rancher.Vec{X: float32(w), Y: float32(h)}))
	t.pending = true
	return t
}

// Stop makes Run return after the current frame.
func (t *Terminal) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// Run polls terminal events and runs frames until the window is closed or Stop is
// called. The screen is finalized on return.
func (t *Terminal) Run() error {
	defer t.screen.Fini()
	defer t.Engine.Close()
	defer t.Stop()

	ticker := time.NewTicker(t.Config.FrameInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go t.screen.ChannelEvents(events, t.quit)

	var wantFrame = true
	for {
		select {
		case <-t.quit:
			return nil
		case ev := <-events:
			t.Handle(ev)
		case <-ticker.C:
			if !t.pending && !wantFrame {
				continue
			}
			out := t.Frame()
			if out.CloseRequested {
				t.logger.Info("terminal closed")
				return nil
			}
			wantFrame = out.NextFrameRequested
		}
	}
}

// WatchImages wakes the terminal for a frame whenever a cached image file changes.
func (t *Terminal) WatchImages(images *rancher.ImageCache) {
	images.OnInvalidate(func(fpath string) {
		if err := t.screen.PostEvent(tcell.NewEventInterrupt(fpath)); err != nil {
			t.logger.Debug("image wakeup dropped", zap.String("path", fpath), zap.Error(err))
		}
	})
}

// Handle translates one terminal event and pools the atoms.
func (t *Terminal) Handle(ev tcell.Event) {
	if _, ok := ev.(*tcell.EventInterrupt); ok {
		t.pending = true
		return
	}
	var atoms []rancher.Atom
	atoms, t.held = eventAtoms(atoms, ev, t.held)
	for _, a := range atoms {
		t.Engine.Pool(a)
	}
	if len(atoms) > 0 {
		t.pending = true
	}
}

// Frame runs one engine frame and draws it if anything changed.
func (t *Terminal) Frame() rancher.FrameOutput {
	t.pending = false
	out := t.Engine.RunFrame()
	if out.Changed || !t.painted {
		t.draw(out.Surfaces)
		t.painted = true
	}
	return out
}

// -----------------------------------------------------------------------------
//      Input
// -----------------------------------------------------------------------------

var buttonMap = [...]struct {
	mask tcell.ButtonMask
	btn  rancher.MouseButton
}{
	{tcell.ButtonPrimary, rancher.MouseLeft},
	{tcell.ButtonSecondary, rancher.MouseRight},
	{tcell.ButtonMiddle, rancher.MouseMiddle},
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// eventAtoms appends the atoms for one terminal event. Terminals report key presses
// only, so every key is pressed and released within the same event.
func eventAtoms(out []rancher.Atom, ev tcell.Event, held tcell.ButtonMask) ([]rancher.Atom, tcell.ButtonMask) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		out = append(out, rancher.WindowResize(rancher.Vec{X: float32(w), Y: float32(h)}))

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return append(out, rancher.WindowClose()), held
		}
		if ev.Key() == tcell.KeyRune {
			out = append(out, rancher.Typed(ev.Rune()))
		}
		if k := mapKey(ev); k != rancher.KeyNone {
			out = append(out, rancher.KeyPress(k), rancher.KeyRelease(k))
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		out = append(out, rancher.MouseMove(rancher.Vec{X: float32(x), Y: float32(y)}))
		buttons := ev.Buttons()

		var scroll rancher.Vec
		if buttons&tcell.WheelUp != 0 {
			scroll.Y--
		}
		if buttons&tcell.WheelDown != 0 {
			scroll.Y++
		}
		if buttons&tcell.WheelLeft != 0 {
			scroll.X--
		}
		if buttons&tcell.WheelRight != 0 {
			scroll.X++
		}
		if scroll != (rancher.Vec{}) {
			out = append(out, rancher.ScrollLine(scroll, rancher.PhaseMove))
		}

		buttons &^= wheelMask
		pressed := buttons &^ held
		released := held &^ buttons
		for _, b := range buttonMap {
			if pressed&b.mask != 0 {
				out = append(out, rancher.MousePress(b.btn))
			}
			if released&b.mask != 0 {
				out = append(out, rancher.MouseRelease(b.btn))
			}
		}
		held = buttons

	case *tcell.EventFocus:
		if ev.Focused {
			out = append(out, rancher.CursorEnter())
		} else {
			out = append(out, rancher.CursorLeave())
		}
	}
	return out, held
}

func mapKey(ev *tcell.EventKey) rancher.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return rancher.KeyForRune(ev.Rune())
	case tcell.KeyLeft:
		return rancher.KeyLeft
	case tcell.KeyRight:
		return rancher.KeyRight
	case tcell.KeyUp:
		return rancher.KeyUp
	case tcell.KeyDown:
		return rancher.KeyDown
	case tcell.KeyEnter:
		return rancher.KeyEnter
	case tcell.KeyEscape:
		return rancher.KeyEscape
	case tcell.KeyHome:
		return rancher.KeyHome
	case tcell.KeyEnd:
		return rancher.KeyEnd
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return rancher.KeyDeleteBackward
	case tcell.KeyDelete:
		return rancher.KeyDeleteForward
	case tcell.KeyInsert:
		return rancher.KeyInsert
	case tcell.KeyPgUp:
		return rancher.KeyPageUp
	case tcell.KeyPgDn:
		return rancher.KeyPageDown
	case tcell.KeyTab:
		return rancher.KeyTab
	}
	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return rancher.KeyF1 + rancher.Key(ev.Key()-tcell.KeyF1)
	}
	return rancher.KeyNone
}

// -----------------------------------------------------------------------------
//      Drawing
// -----------------------------------------------------------------------------

func tcellColor(c rancher.Color) tcell.Color {
	rgb := rancher.HSLAColor(c)
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// cells calls fn for every whole cell inside r.
func cells(r rancher.Rect, fn func(x, y int)) {
	x0, y0 := int(r.Origin.X), int(r.Origin.Y)
	x1, y1 := int(r.End().X), int(r.End().Y)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			fn(x, y)
		}
	}
}

func (t *Terminal) draw(surfaces []rancher.Surface) {
	t.screen.Clear()
	t.screen.HideCursor()
	for _, s := range surfaces {
		switch s.Kind {
		case rancher.SurfaceFill:
			if s.Color[3] <= 0 {
				continue
			}
			bg := tcellColor(s.Color)
			cells(s.Visible, func(x, y int) {
				t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(bg))
			})
		case rancher.SurfaceImage:
			cells(s.Visible, func(x, y int) {
				t.setRune(x, y, '▒', tcell.ColorDefault)
			})
		case rancher.SurfaceText:
			t.drawText(s)
		case rancher.SurfaceCaret:
			t.screen.ShowCursor(int(s.Rect.Origin.X), int(s.Rect.Origin.Y))
		}
	}
	t.screen.Show()
}

// setRune writes a glyph and keeps whatever background a fill put under it.
func (t *Terminal) setRune(x, y int, r rune, fg tcell.Color) {
	_, _, style, _ := t.screen.GetContent(x, y)
	t.screen.SetContent(x, y, r, nil, style.Foreground(fg))
}

func (t *Terminal) drawText(s rancher.Surface) {
	fg := tcellColor(s.Color)
	origin := s.Rect.Origin.Add(s.TextStyle.Pad.Start())
	x, y := int(origin.X), int(origin.Y)
	for _, r := range s.Text {
		if r == '\n' {
			x = int(origin.X)
			y++
			continue
		}
		width := runewidth.RuneWidth(r)
		step := width + int(s.TextStyle.Spacing)
		if s.Cell.X > 0 {
			// input text sits on a grid of whole cells
			step = int(s.Cell.X)
		}
		if s.Visible.Contains(rancher.Vec{X: float32(x), Y: float32(y)}) && width > 0 {
			t.setRune(x, y, r, fg)
		}
		x += step
	}
}
