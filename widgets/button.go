package widgets

import (
	"github.com/cli/browser"
	"go.uber.org/zap"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

// Button posts Msg to Target when the left button is pressed and released inside the
// element. Pressed is true while a press that started on the button is held.
type Button struct {
	Target Tag
	Msg    Message

	Pressed bool
	Hovered bool
}

func (b *Button) OnIO(e *Element, io *Io) (Signal, bool) {
	b.Hovered = e.Bound.Inside(io.Pointer)
	if io.Clicked(e.Bound, MouseLeft) {
		b.Pressed = true
	}
	if b.Pressed && io.Input.Has(MouseRelease(MouseLeft)) {
		b.Pressed = false
		if b.Hovered {
			return Signal{Tag: b.Target, Msg: b.Msg}, true
		}
	}
	return Signal{}, false
}

func (b *Button) OnSignal(e *Element, bus *SignalBus) {}

func (b *Button) Destroy() {}

func (b *Button) Clone() Behavior {
	c := *b
	c.Pressed = false
	return &c
}

// ButtonStyle picks sheet entries for a button frame and its label.
type ButtonStyle struct {
	Pad   PadId
	Color ColorId
	Text  TextStyle
}

func NewButton(label string, style ButtonStyle, target Tag, msg Message) Element {
	e := tw.Box(
		[]tw.FrameFn{tw.Row, tw.CrossMid, tw.Pad(style.Pad), tw.BG(style.Color)},
		NewText(label, style.Text),
	)
	e.Listener = Stateful(&Button{Target: target, Msg: msg})
	return e
}

var openURL = browser.OpenURL

// Link is a label that opens url in the system browser when clicked.
func Link(label string, url string, fns ...tw.TextFn) Element {
	e := tw.Box([]tw.FrameFn{tw.Row}, tw.Label(label, fns...))
	e.Listener = Pure(func(self *Element, io *Io) (Signal, bool) {
		if io.Clicked(self.Bound, MouseLeft) {
			if err := openURL(url); err != nil {
				Log().Warn("open link", zap.String("url", url), zap.Error(err))
			}
		}
		return Signal{}, false
	}, nil)
	return e
}
