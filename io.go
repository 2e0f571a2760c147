package rancher

import (
	"iter"
	"slices"
	"time"

	g "go.hasen.dev/generic"
)

type AtomKind uint8

const (
	AtomNone AtomKind = iota
	AtomKeyPress
	AtomKeyRelease
	AtomMousePress
	AtomMouseRelease
	AtomMouseMove
	AtomWindow
	AtomCursorEnter
	AtomCursorLeave
	AtomScroll
	AtomText
)

// Atom is one raw input event as delivered by the windowing collaborator.
//
// Pos, Delta and Rune are payload: Io.Pool copies them into the Io and only the
// payload-free atom takes part in coalescing, so "the mouse moved this frame" is a single
// set member no matter how many move events arrived.
type Atom struct {
	Kind   AtomKind
	Key    Key
	Button MouseButton
	Win    WinEvent
	Phase  Phase
	Unit   ScrollUnit

	Pos   Vec
	Delta Vec
	Rune  rune
}

func KeyPress(k Key) Atom {
	return Atom{Kind: AtomKeyPress, Key: k}
}

func KeyRelease(k Key) Atom {
	return Atom{Kind: AtomKeyRelease, Key: k}
}

func MousePress(b MouseButton) Atom {
	return Atom{Kind: AtomMousePress, Button: b}
}

func MouseRelease(b MouseButton) Atom {
	return Atom{Kind: AtomMouseRelease, Button: b}
}

func MouseMove(pos Vec) Atom {
	return Atom{Kind: AtomMouseMove, Pos: pos}
}

func WindowResize(size Vec) Atom {
	return Atom{Kind: AtomWindow, Win: WinResize, Pos: size}
}

func WindowMove(pos Vec) Atom {
	return Atom{Kind: AtomWindow, Win: WinMove, Pos: pos}
}

func WindowClose() Atom {
	return Atom{Kind: AtomWindow, Win: WinClose}
}

func CursorEnter() Atom {
	return Atom{Kind: AtomCursorEnter}
}

func CursorLeave() Atom {
	return Atom{Kind: AtomCursorLeave}
}

func ScrollPixel(delta Vec, phase Phase) Atom {
	return Atom{Kind: AtomScroll, Unit: ScrollPixels, Phase: phase, Delta: delta}
}

func ScrollLine(delta Vec, phase Phase) Atom {
	return Atom{Kind: AtomScroll, Unit: ScrollLines, Phase: phase, Delta: delta}
}

// Typed carries a character produced by the keyboard (or IME) this frame.
func Typed(r rune) Atom {
	return Atom{Kind: AtomText, Rune: r}
}

// Bare strips the payload.
func (a Atom) Bare() Atom {
	a.Pos = Vec{}
	a.Delta = Vec{}
	a.Rune = 0
	return a
}

type InputKind uint8

const (
	InputNone InputKind = iota
	InputSingle
	InputCombo
)

// CoalescedInput is what arrived during one frame: nothing, a single atom, or an unordered set.
type CoalescedInput struct {
	Kind   InputKind
	Single Atom
	Combo  map[Atom]struct{}
}

func (in *CoalescedInput) Len() int {
	switch in.Kind {
	case InputSingle:
		return 1
	case InputCombo:
		return len(in.Combo)
	}
	return 0
}

// Has reports whether the atom (payload ignored) arrived this frame.
func (in *CoalescedInput) Has(a Atom) bool {
	a = a.Bare()
	switch in.Kind {
	case InputSingle:
		return in.Single == a
	case InputCombo:
		_, ok := in.Combo[a]
		return ok
	}
	return false
}

// Only reports whether a is the one and only atom of this frame.
func (in *CoalescedInput) Only(a Atom) bool {
	return in.Kind == InputSingle && in.Single == a.Bare()
}

// Atoms visits the frame's atoms; combo order is unspecified.
func (in *CoalescedInput) Atoms() iter.Seq[Atom] {
	return func(yield func(Atom) bool) {
		switch in.Kind {
		case InputSingle:
			yield(in.Single)
		case InputCombo:
			for a := range in.Combo {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// Pressed lists the keys pressed this frame.
func (in *CoalescedInput) Pressed() []Key {
	var keys []Key
	for a := range in.Atoms() {
		if a.Kind == AtomKeyPress {
			keys = append(keys, a.Key)
		}
	}
	slices.Sort(keys)
	return keys
}

// Io is the input snapshot handed to listeners. The coalesced input and the frame
// payload (scroll, text) live for one frame; pointer and window geometry persist.
type Io struct {
	Input CoalescedInput

	Pointer    Vec
	WindowPos  Vec
	WindowSize Vec
	Scroll     Vec
	ScrollUnit ScrollUnit
	Text       string // typed this frame, in arrival order

	// set by the engine at the start of every frame
	Now   time.Time
	Delta time.Duration

	held      []Key
	bucket    map[Atom]struct{}
	requested bool
}

func NewIo(windowSize Vec) *Io {
	return &Io{WindowSize: windowSize}
}

// Pool absorbs one atom into the current frame.
func (io *Io) Pool(a Atom) {
	io.applyPayload(a)

	a = a.Bare()
	switch io.Input.Kind {
	case InputNone:
		io.Input.Kind = InputSingle
		io.Input.Single = a
	case InputSingle:
		if io.Input.Single == a {
			return
		}
		set := io.bucket
		io.bucket = nil
		if set == nil {
			set = make(map[Atom]struct{}, 8)
		}
		set[io.Input.Single] = struct{}{}
		set[a] = struct{}{}
		io.Input = CoalescedInput{Kind: InputCombo, Combo: set}
	case InputCombo:
		io.Input.Combo[a] = struct{}{}
	}
}

func (io *Io) applyPayload(a Atom) {
	switch a.Kind {
	case AtomMouseMove:
		io.Pointer = a.Pos
	case AtomWindow:
		switch a.Win {
		case WinResize:
			io.WindowSize = a.Pos
		case WinMove:
			io.WindowPos = a.Pos
		}
	case AtomScroll:
		io.Scroll = io.Scroll.Add(a.Delta)
		io.ScrollUnit = a.Unit
	case AtomText:
		io.Text += string(a.Rune)
	case AtomKeyPress:
		if !slices.Contains(io.held, a.Key) {
			g.Append(&io.held, a.Key)
		}
	case AtomKeyRelease:
		if i := slices.Index(io.held, a.Key); i >= 0 {
			io.held = slices.Delete(io.held, i, i+1)
		}
	}
}

// Clean resets the frame input. The combo set is cleared and kept for the next frame.
func (io *Io) Clean() {
	if io.Input.Kind == InputCombo {
		clear(io.Input.Combo)
		io.bucket = io.Input.Combo
	}
	io.Input = CoalescedInput{}
	io.Scroll = Vec{}
	io.Text = ""
	io.requested = false
}

// RequestFrame asks the driver for another frame even if nothing changed, e.g. for a
// caret blink or an animation.
func (io *Io) RequestFrame() {
	io.requested = true
}

func (io *Io) FrameRequested() bool {
	return io.requested
}

// Held reports whether a key is down, tracked across frames from press/release atoms.
func (io *Io) Held(k Key) bool {
	return slices.Contains(io.held, k)
}

func (io *Io) HeldKeys() []Key {
	return slices.Clone(io.held)
}

// Clicked reports a press of the button inside the bound this frame.
func (io *Io) Clicked(b Bound, button MouseButton) bool {
	return io.Input.Has(MousePress(button)) && b.Inside(io.Pointer)
}

// Released reports a release of the button inside the bound this frame.
func (io *Io) Released(b Bound, button MouseButton) bool {
	return io.Input.Has(MouseRelease(button)) && b.Inside(io.Pointer)
}

// CloseRequested reports a window close atom this frame.
func (io *Io) CloseRequested() bool {
	return io.Input.Has(WindowClose())
}
