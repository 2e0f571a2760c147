package widgets

import (
	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

// Menu is the behavior of a drop down: a leaking column holding the menu button (first
// child) and the item list (second child). A closed list is collapsed and muted, so its
// items neither paint nor see input.
type Menu struct {
	Open bool

	closing bool
}

func (m *Menu) parts(e *Element) (button, list *Element) {
	kids := e.Children()
	if len(kids) < 2 {
		return nil, nil
	}
	return &kids[0], &kids[1]
}

func (m *Menu) OnIO(e *Element, io *Io) (Signal, bool) {
	button, list := m.parts(e)
	if button == nil {
		return Signal{}, false
	}
	switch {
	case io.Clicked(button.Bound, MouseLeft):
		m.Open = !m.Open
	case m.Open && io.Input.Has(MousePress(MouseLeft)) && !list.Bound.Inside(io.Pointer):
		// click outside
		m.Open = false
	case m.Open && io.Released(list.Bound, MouseLeft):
		// the items still get this release; close once they have seen it
		m.closing = true
	}
	m.apply(list)
	return Signal{}, false
}

func (m *Menu) OnSignal(e *Element, bus *SignalBus) {
	if !m.closing {
		return
	}
	m.closing = false
	m.Open = false
	if _, list := m.parts(e); list != nil {
		m.apply(list)
	}
}

func (m *Menu) apply(list *Element) {
	list.Mute = !m.Open
	f := list.Frame()
	if m.Open {
		f.Size = ChildSize()
		list.Bound.Shadow = [4]f32{6, 6, 2, 10}
	} else {
		f.Size = FixedSize(0, 0)
		list.Bound.Shadow = [4]f32{}
	}
}

func (m *Menu) Destroy() {}

func (m *Menu) Clone() Behavior {
	c := *m
	c.closing = false
	return &c
}

// MenuButton builds a drop down whose items are shown below the button while open.
func MenuButton(label string, style ButtonStyle, bg ColorId, items ...Element) Element {
	button := tw.Box(
		[]tw.FrameFn{tw.Row, tw.CrossMid, tw.Pad(style.Pad), tw.BG(style.Color)},
		NewText(label+" ▾", style.Text),
	)
	list := tw.Box([]tw.FrameFn{tw.Column, tw.Clip, tw.BG(bg), tw.Gap(2)}, items...)
	e := tw.Box([]tw.FrameFn{tw.Column, tw.Leak}, button, list)
	m := &Menu{}
	m.apply(&e.Children()[1])
	e.Listener = Stateful(m)
	return e
}

// MenuItem is a button inside a menu list.
func MenuItem(label string, style ButtonStyle, target Tag, msg Message) Element {
	return NewButton(label, style, target, msg)
}

func MenuSeparator(width f32, color ColorId) Element {
	return tw.Box([]tw.FrameFn{tw.FixSize(width, 1), tw.BG(color)})
}
