package widgets

import (
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	. "go.hasen.dev/rancher"
)

// TextInput is the behavior behind an input element. While the input is active it moves
// the cursor and edits the stream at the cursor; cursor errors at the edges are ignored.
//
// Enter posts the content as KeyedText(Key, content) to Submit, unless Multiline is set,
// in which case it inserts a line break. A MsgText posted to the element's own tag
// replaces the content.
type TextInput struct {
	Submit    Tag
	Key       int8
	Multiline bool
	Blink     time.Duration

	start time.Time
}

func NewTextInput(submit Tag, key int8) *TextInput {
	return &TextInput{Submit: submit, Key: key, Blink: 600 * time.Millisecond}
}

// TextInputElement builds an input element driven by a TextInput behavior.
func TextInputElement(style TextStyle, content string, ti *TextInput) Element {
	e := NewInput(style, content)
	e.Listener = Stateful(ti)
	return e
}

// PasswordInput is a TextInputElement that paints every glyph as a bullet.
func PasswordInput(style TextStyle, ti *TextInput) Element {
	e := TextInputElement(style, "", ti)
	e.Input().Mask = '•'
	return e
}

func (t *TextInput) restartBlink(io *Io) {
	t.start = io.Now
}

func (t *TextInput) OnIO(e *Element, io *Io) (Signal, bool) {
	in := e.Input()
	if in == nil || in.State == InputHidden {
		return Signal{}, false
	}

	if io.Input.Has(MousePress(MouseLeft)) {
		if e.Bound.Inside(io.Pointer) {
			in.State = InputActive
			seekToPoint(in, io.Pointer)
			t.restartBlink(io)
		} else {
			in.State = InputIdle
		}
	}

	if in.State != InputActive {
		in.Cursor.Visible = false
		return Signal{}, false
	}

	var sig Signal
	var submitted bool
	for _, key := range io.Input.Pressed() {
		switch key {
		case KeyLeft:
			_ = in.Stream.ShiftCursor(-1)
		case KeyRight:
			_ = in.Stream.ShiftCursor(1)
		case KeyHome:
			_ = in.Stream.Seek(lineStart(in))
		case KeyEnd:
			_ = in.Stream.Seek(lineEnd(in))
		case KeyDeleteBackward:
			_, _ = in.Stream.DeleteBackward()
		case KeyDeleteForward:
			_, _ = in.Stream.DeleteForward()
		case KeyEscape:
			in.State = InputIdle
		case KeyEnter:
			if t.Multiline {
				in.Stream.Insert(TokenOf('\n'))
			} else {
				sig = Signal{Tag: t.Submit, Msg: KeyedText(t.Key, in.Content())}
				submitted = true
			}
		default:
			continue
		}
		t.restartBlink(io)
	}

	if io.Text != "" {
		for _, r := range norm.NFC.String(io.Text) {
			if unicode.IsControl(r) && r != '\t' {
				continue
			}
			in.Stream.Insert(TokenOf(r))
		}
		t.restartBlink(io)
	}

	if in.State == InputActive {
		blink := t.Blink
		if blink <= 0 {
			blink = 600 * time.Millisecond
		}
		in.Cursor.Visible = (io.Now.Sub(t.start)/blink)%2 == 0
		io.RequestFrame()
	} else {
		in.Cursor.Visible = false
	}
	return sig, submitted
}

func (t *TextInput) OnSignal(e *Element, bus *SignalBus) {
	if e.Tag == DefaultTag {
		return
	}
	msg, ok := bus.Get(e.Tag)
	if !ok || msg.Kind != MsgText {
		return
	}
	if in := e.Input(); in != nil {
		in.SetContent(msg.Text)
	}
}

func (t *TextInput) Destroy() {}

func (t *TextInput) Clone() Behavior {
	c := *t
	return &c
}

// lineStart is the offset of the first token of the cursor's line.
func lineStart(in *Input) int {
	offset := in.Stream.Offset()
	start := 0
	for i, tok := range in.Stream.All() {
		if i >= offset {
			break
		}
		if tok.Kind == TokenBreak {
			start = i + 1
		}
	}
	return start
}

// lineEnd is the offset right before the break that ends the cursor's line.
func lineEnd(in *Input) int {
	offset := in.Stream.Offset()
	for i, tok := range in.Stream.All() {
		if i >= offset && tok.Kind == TokenBreak {
			return i
		}
	}
	return in.Stream.Weight()
}

// seekToPoint moves the cursor to the token cell nearest to p.
func seekToPoint(in *Input, p Vec) {
	cell := in.Cell()
	if cell.X <= 0 || cell.Y <= 0 {
		return
	}
	rel := p.Sub(in.Origin()).Max(Vec{})
	wantLine := int(rel.Y / cell.Y)
	wantCol := int(rel.X/cell.X + 0.5)

	var line, col int
	target := in.Stream.Weight()
	for i, tok := range in.Stream.All() {
		if line == wantLine && (col == wantCol || tok.Kind == TokenBreak) {
			target = i
			break
		}
		if tok.Kind == TokenBreak {
			line++
			col = 0
			continue
		}
		col++
	}
	_ = in.Stream.Seek(max(0, target))
}
