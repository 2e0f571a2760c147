package widgets

// checkboxes and radios

import (
	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

const (
	SymBox      = '☐'
	SymBoxTick  = '☑'
	SymRadioOff = '○'
	SymRadioOn  = '◉'
)

// Check toggles on click and posts Number(1) or Number(0) to Target. In a group (Group
// set) it acts as an option button: clicking selects it and a PairMsg(Group, Value)
// posted to BroadcastTag by any member deselects the others.
type Check struct {
	Target Tag
	On     bool

	Group int8
	Value int8
}

func (c *Check) OnIO(e *Element, io *Io) (Signal, bool) {
	if !io.Clicked(e.Bound, MouseLeft) {
		return Signal{}, false
	}
	if c.Group != 0 {
		c.On = true
		return Signal{Tag: BroadcastTag, Msg: PairMsg(c.Group, c.Value)}, true
	}
	c.On = !c.On
	var v int8
	if c.On {
		v = 1
	}
	return Signal{Tag: c.Target, Msg: Number(v)}, true
}

func (c *Check) OnSignal(e *Element, bus *SignalBus) {
	if c.Group != 0 {
		if msg, ok := bus.Get(BroadcastTag); ok && msg.Kind == MsgPair && msg.A == c.Group {
			c.On = msg.B == c.Value
		}
	}
	c.refresh(e)
}

// refresh swaps the icon glyph of the first child label.
func (c *Check) refresh(e *Element) {
	kids := e.Children()
	if len(kids) == 0 {
		return
	}
	icon := kids[0].Text()
	if icon == nil {
		return
	}
	var on, off rune = SymBoxTick, SymBox
	if c.Group != 0 {
		on, off = SymRadioOn, SymRadioOff
	}
	if c.On {
		icon.Text = string(on)
	} else {
		icon.Text = string(off)
	}
}

func (c *Check) Destroy() {}

func (c *Check) Clone() Behavior {
	cp := *c
	return &cp
}

func checkElement(label string, style TextStyle, c *Check) Element {
	e := tw.Box([]tw.FrameFn{tw.Row, tw.Gap(6), tw.CrossMid},
		NewText("", style),
		NewText(label, style),
	)
	c.refresh(&e)
	e.Listener = Stateful(c)
	return e
}

func CheckBox(label string, style TextStyle, target Tag, on bool) Element {
	return checkElement(label, style, &Check{Target: target, On: on})
}

// OptionButton is also known as radio button
func OptionButton(label string, style TextStyle, group, value int8, selected bool) Element {
	return checkElement(label, style, &Check{Group: group, Value: value, On: selected})
}
