package giobackend

import (
	"unicode/utf8"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"

	"go.hasen.dev/rancher"
)

// gio reports positions in pixels; the engine works in device independent units.
func dpVec(p f32.Point, pxPerDp float32) rancher.Vec {
	if pxPerDp <= 0 {
		pxPerDp = 1
	}
	return rancher.Vec{X: p.X / pxPerDp, Y: p.Y / pxPerDp}
}

var buttonMap = [...]struct {
	gio pointer.Buttons
	btn rancher.MouseButton
}{
	{pointer.ButtonPrimary, rancher.MouseLeft},
	{pointer.ButtonSecondary, rancher.MouseRight},
	{pointer.ButtonTertiary, rancher.MouseMiddle},
}

// pointerAtoms appends the atoms for one pointer event. held is the set of buttons down
// before the event; the returned set is the one after it.
func pointerAtoms(out []rancher.Atom, e pointer.Event, pxPerDp float32, held pointer.Buttons) ([]rancher.Atom, pointer.Buttons) {
	switch e.Kind {
	case pointer.Enter:
		out = append(out, rancher.CursorEnter(), rancher.MouseMove(dpVec(e.Position, pxPerDp)))
		return out, held
	case pointer.Leave:
		return append(out, rancher.CursorLeave()), held
	case pointer.Scroll:
		delta := dpVec(e.Scroll, pxPerDp)
		out = append(out, rancher.MouseMove(dpVec(e.Position, pxPerDp)))
		return append(out, rancher.ScrollPixel(delta, rancher.PhaseMove)), held
	case pointer.Cancel:
		for _, b := range buttonMap {
			if held.Contain(b.gio) {
				out = append(out, rancher.MouseRelease(b.btn))
			}
		}
		return out, 0
	}

	out = append(out, rancher.MouseMove(dpVec(e.Position, pxPerDp)))
	switch e.Kind {
	case pointer.Press:
		pressed := e.Buttons &^ held
		if pressed == 0 {
			// touch sources report no buttons
			pressed = e.Buttons
			if pressed == 0 {
				pressed = pointer.ButtonPrimary
			}
		}
		for _, b := range buttonMap {
			if pressed.Contain(b.gio) {
				out = append(out, rancher.MousePress(b.btn))
			}
		}
		return out, held | pressed
	case pointer.Release:
		released := held &^ e.Buttons
		if released == 0 {
			released = held
		}
		for _, b := range buttonMap {
			if released.Contain(b.gio) {
				out = append(out, rancher.MouseRelease(b.btn))
			}
		}
		return out, held &^ released
	}
	return out, held
}

func keyAtom(e key.Event) (rancher.Atom, bool) {
	k := mapKey(e.Name)
	if k == rancher.KeyNone {
		return rancher.Atom{}, false
	}
	if e.State == key.Release {
		return rancher.KeyRelease(k), true
	}
	return rancher.KeyPress(k), true
}

func textAtoms(out []rancher.Atom, text string) []rancher.Atom {
	for _, r := range text {
		out = append(out, rancher.Typed(r))
	}
	return out
}

func mapKey(name key.Name) rancher.Key {
	switch name {
	case key.NameLeftArrow:
		return rancher.KeyLeft
	case key.NameRightArrow:
		return rancher.KeyRight
	case key.NameUpArrow:
		return rancher.KeyUp
	case key.NameDownArrow:
		return rancher.KeyDown
	case key.NameReturn, key.NameEnter:
		return rancher.KeyEnter
	case key.NameEscape:
		return rancher.KeyEscape
	case key.NameHome:
		return rancher.KeyHome
	case key.NameEnd:
		return rancher.KeyEnd
	case key.NameDeleteBackward:
		return rancher.KeyDeleteBackward
	case key.NameDeleteForward:
		return rancher.KeyDeleteForward
	case key.NamePageUp:
		return rancher.KeyPageUp
	case key.NamePageDown:
		return rancher.KeyPageDown
	case key.NameTab:
		return rancher.KeyTab
	case key.NameSpace:
		return rancher.KeySpace
	case key.NameCtrl:
		return rancher.KeyCtrl
	case key.NameShift:
		return rancher.KeyShift
	case key.NameAlt:
		return rancher.KeyAlt
	case key.NameSuper:
		return rancher.KeySuper
	case key.NameCommand:
		return rancher.KeyCommand
	case key.NameF1:
		return rancher.KeyF1
	case key.NameF2:
		return rancher.KeyF2
	case key.NameF3:
		return rancher.KeyF3
	case key.NameF4:
		return rancher.KeyF4
	case key.NameF5:
		return rancher.KeyF5
	case key.NameF6:
		return rancher.KeyF6
	case key.NameF7:
		return rancher.KeyF7
	case key.NameF8:
		return rancher.KeyF8
	case key.NameF9:
		return rancher.KeyF9
	case key.NameF10:
		return rancher.KeyF10
	case key.NameF11:
		return rancher.KeyF11
	case key.NameF12:
		return rancher.KeyF12
	}
	if utf8.RuneCountInString(string(name)) == 1 {
		r, _ := utf8.DecodeRuneInString(string(name))
		return rancher.KeyForRune(r)
	}
	return rancher.KeyNone
}
