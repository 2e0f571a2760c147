package main

import (
	"fmt"
	"time"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
	"go.hasen.dev/rancher/widgets"
)

const (
	colorPanel ColorId = iota
	colorAccent
	colorTrack
	colorThumb
	colorText
	colorMuted
)

const (
	padBox PadId = iota
	padButton
)

var (
	tagSubmit  = Num(1)
	tagCounter = Num(2)
	tagToggle  = Num(3)
	tagDebug   = Num(4)
	tagName    = Num(5)
	tagMenu    = Num(6)
	tagOrder   = Num(7)
)

const groupSize int8 = 1

// demoSheet fills in the entries the demo tree refers to. A sheet file replaces it.
func demoSheet(cells bool) *Sheet {
	s := DefaultSheet()
	s.AddColor(HSLA(220, 15, 94, 1)) // panel
	s.AddColor(HSLA(210, 70, 50, 1)) // accent
	s.AddColor(HSLA(0, 0, 85, 1))    // track
	s.AddColor(HSLA(0, 0, 55, 1))    // thumb
	s.AddColor(HSLA(0, 0, 100, 1))   // text on accent
	s.AddColor(HSLA(0, 0, 45, 1))    // muted
	if cells {
		s.AddPad(Pad{})
		s.AddPad(PadVH(0, 1))
	} else {
		s.AddPad(PadAll(8))
		s.AddPad(PadVH(4, 10))
	}
	return s
}

// demoTree builds the showcase. u is the length unit: pixels for a window, cells for a
// terminal.
func demoTree(u float32, imagePath string, blink time.Duration) Element {
	debug, panel := widgets.NewDebugPanel(tagDebug, tw.TTW(tw.Clr(colorMuted), tw.Sz(12)), padBox)

	var clicks int
	var name string
	status := tw.Label("type a name and press enter", tw.Clr(colorMuted))
	statusRow := tw.Box([]tw.FrameFn{tw.Row}, status)
	statusRow.Listener = Pure(nil, func(e *Element, bus *SignalBus) {
		label := e.Children()[0].Text()
		if msg, ok := bus.Get(tagCounter); ok && msg.Kind == MsgNumber {
			clicks++
			label.Text = fmt.Sprintf("clicked %d times", clicks)
		}
		if msg, ok := bus.Get(tagSubmit); ok && msg.Kind == MsgKeyedText {
			name = msg.Text
			label.Text = "hello, " + name
		}
		if msg, ok := bus.Get(tagToggle); ok {
			panel.Var("toggle", msg.A)
		}
		if msg, ok := bus.Get(BroadcastTag); ok && msg.Kind == MsgPair && msg.A == groupSize {
			panel.Var("size", msg.B)
		}
		if msg, ok := bus.Get(tagMenu); ok {
			label.Text = fmt.Sprintf("menu item %d", msg.A)
		}
		if msg, ok := bus.Get(tagOrder); ok {
			panel.Var("moved", []int8{msg.A, msg.B})
		}
	})

	buttonStyle := widgets.ButtonStyle{
		Pad:   padButton,
		Color: colorAccent,
		Text:  tw.TTW(tw.Clr(colorText)),
	}

	ti := widgets.NewTextInput(tagSubmit, 0)
	ti.Blink = blink
	nameInput := widgets.TextInputElement(TextStyle{}, "", ti)
	nameInput = nameInput.WithTag(tagName)

	var lines []Element
	for i := range 40 {
		lines = append(lines, tw.Label(fmt.Sprintf("line %02d", i+1)))
	}

	order, _ := widgets.NewDragList(tagOrder, u/4,
		tw.Label("drag me"),
		tw.Label("or me"),
		tw.Label("or even me"),
	)
	dirInput := widgets.NewDirectoryInput(TextStyle{},
		tw.TTW(), tw.TTW(tw.Clr(colorMuted)), "", widgets.NewTextInput(DefaultTag, 0))

	var picture Element
	if imagePath != "" {
		picture = NewImage(SysSrc(imagePath), 1, func(io *Io) Element {
			return tw.Label("image missing", tw.Clr(colorMuted))
		})
	}

	// the sidebar takes a quarter of the window, recomputed every layout
	sidebarWidth := func(io *Io) float32 {
		return max(20*u, io.WindowSize.X/4)
	}

	sidebar := tw.Box([]tw.FrameFn{tw.Column, tw.Gap(u), tw.Pad(padBox), tw.BG(colorPanel), tw.CompWidth(sidebarWidth), tw.ExpandHeight},
		widgets.CheckBox("enabled", TextStyle{}, tagToggle, true),
		widgets.OptionButton("small", TextStyle{}, groupSize, 0, true),
		widgets.OptionButton("large", TextStyle{}, groupSize, 1, false),
		widgets.Link("project page", "https://go.hasen.dev/rancher"),
		widgets.MenuButton("actions", buttonStyle, colorPanel,
			widgets.MenuItem("first", buttonStyle, tagMenu, Number(1)),
			widgets.MenuSeparator(10*u, colorMuted),
			widgets.MenuItem("second", buttonStyle, tagMenu, Number(2)),
		),
		debug,
	)

	content := tw.Box([]tw.FrameFn{tw.Column, tw.Gap(u), tw.Pad(padBox)},
		statusRow,
		tw.Box([]tw.FrameFn{tw.Row, tw.Gap(u), tw.CrossMid},
			tw.Label("name"),
			nameInput,
		),
		widgets.NewButton("click me", buttonStyle, tagCounter, Number(1)),
		widgets.ScrollArea(30*u, 20*u, colorTrack, colorThumb, lines...),
		dirInput,
		order,
	)
	if imagePath != "" {
		content.Frame().Append(picture)
	}

	return tw.Box([]tw.FrameFn{tw.Row, tw.Expand}, sidebar, content)
}
