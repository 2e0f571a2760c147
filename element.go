package rancher

import (
	"slices"
	"strings"

	g "go.hasen.dev/generic"
)

// Element is a node of the tree. A frame owns its children outright; there are no
// parent pointers.
type Element struct {
	Tag      Tag
	Genus    Genus
	Bound    Bound
	Listener Listener

	// Mute stops IO dispatch from descending into the children this frame. A listener may
	// set or clear it.
	Mute bool
}

// Genus is the element kind: *Frame, *Text, *Image or *Input.
type Genus interface {
	clone() Genus
	destroy()
}

type Gravity uint8

const (
	Vertical Gravity = iota
	Horizontal
)

// Axis is the axis children advance along.
func (gr Gravity) Axis() Axis {
	if gr == Horizontal {
		return AxisX
	}
	return AxisY
}

type Align uint8

const (
	AlignStart Align = iota
	AlignMiddle
	AlignEnd
)

// Frame is a container. Children are laid out in order along the gravity axis.
type Frame struct {
	Style    Style
	Gravity  Gravity
	Align    Align // cross axis
	Gap      f32
	Overflow Overflow
	Size     Size
	Ceiling  *Size // caps the resolved size when set
	Children []Element

	content Vec
}

// Content is the measured size of the children, gaps included, padding excluded.
func (f *Frame) Content() Vec {
	return f.content
}

func (f *Frame) Append(children ...Element) {
	f.Children = append(f.Children, children...)
}

// Remove destroys the child at i and drops it from the frame.
func (f *Frame) Remove(i int) {
	f.Children[i].Destroy()
	f.Children = slices.Delete(f.Children, i, i+1)
}

// Clear destroys and drops every child.
func (f *Frame) Clear() {
	for i := range f.Children {
		f.Children[i].Destroy()
	}
	g.ResetSlice(&f.Children)
}

func (f *Frame) clone() Genus {
	c := *f
	c.Children = make([]Element, len(f.Children))
	for i := range f.Children {
		c.Children[i] = f.Children[i].Clone()
	}
	if f.Ceiling != nil {
		ceil := *f.Ceiling
		c.Ceiling = &ceil
	}
	return &c
}

func (f *Frame) destroy() {
	for i := range f.Children {
		f.Children[i].Destroy()
	}
}

type Text struct {
	Text  string
	Style TextStyle
}

func (t *Text) clone() Genus {
	c := *t
	return &c
}

func (t *Text) destroy() {}

type SrcKind uint8

const (
	SrcSys SrcKind = iota
	SrcURL
)

type Src struct {
	Kind SrcKind
	Path string
}

func SysSrc(path string) Src {
	return Src{Kind: SrcSys, Path: path}
}

func URLSrc(url string) Src {
	return Src{Kind: SrcURL, Path: url}
}

// FallbackFn builds the element shown in place of an image whose source failed to
// resolve.
type FallbackFn func(io *Io) Element

type Image struct {
	Source   Src
	Fallback FallbackFn
	Scale    f32 // zero means 1
	Style    Style

	intrinsic Vec
	failed    bool
	fallback  *Element // built once, on the first failed resolve
}

// Failed reports whether the last measure could not resolve the source.
func (im *Image) Failed() bool {
	return im.failed
}

// Shown is the fallback element currently standing in for the image, if any.
func (im *Image) Shown() *Element {
	if im.failed {
		return im.fallback
	}
	return nil
}

func (im *Image) scale() f32 {
	if im.Scale <= 0 {
		return 1
	}
	return im.Scale
}

func (im *Image) clone() Genus {
	c := *im
	if im.fallback != nil {
		fb := im.fallback.Clone()
		c.fallback = &fb
	}
	return &c
}

func (im *Image) destroy() {
	if im.fallback != nil {
		im.fallback.Destroy()
		im.fallback = nil
	}
}

type InputState uint8

const (
	InputIdle InputState = iota
	InputActive
	InputHidden
)

type Cursor struct {
	Width   f32
	Color   Opt[ColorId]
	Visible bool
	Bound   Bound
}

// Input is an editable token stream. Only an active input takes keys and shows its
// cursor; a hidden one is neither measured nor painted.
type Input struct {
	Cursor    Cursor
	State     InputState
	Stream    GapBuffer[Token]
	Style     TextStyle
	TokenSize Vec  // cell size; zero means derive it from the font metrics
	Mask      rune // when set, painted in place of every glyph

	cell   Vec
	origin Vec
}

func (in *Input) Content() string {
	var sb strings.Builder
	for _, t := range in.Stream.All() {
		sb.WriteRune(t.Rune)
	}
	return sb.String()
}

// SetContent replaces the stream and leaves the cursor at the end.
func (in *Input) SetContent(s string) {
	in.Stream.Reset()
	for _, t := range Tokenize(s) {
		in.Stream.Insert(t)
	}
}

// Display is the content as painted, with the mask applied.
func (in *Input) Display() string {
	if in.Mask == 0 {
		return in.Content()
	}
	var sb strings.Builder
	for _, t := range in.Stream.All() {
		if t.Kind == TokenGlyph {
			sb.WriteRune(in.Mask)
		} else {
			sb.WriteRune(t.Rune)
		}
	}
	return sb.String()
}

// Cell is the token cell size used by the last layout.
func (in *Input) Cell() Vec {
	return in.cell
}

// Origin is where the first token cell was placed by the last layout.
func (in *Input) Origin() Vec {
	return in.origin
}

func (in *Input) clone() Genus {
	c := *in
	c.Stream = in.Stream.Clone()
	return &c
}

func (in *Input) destroy() {}

// -----------------------------------------------------------------------------
//      Constructors
// -----------------------------------------------------------------------------

func NewFrame(f Frame, children ...Element) Element {
	fr := new(Frame)
	*fr = f
	fr.Append(children...)
	return Element{Genus: fr}
}

func NewText(text string, style TextStyle) Element {
	return Element{Genus: &Text{Text: text, Style: style}}
}

func NewImage(src Src, scale f32, fallback FallbackFn) Element {
	return Element{Genus: &Image{Source: src, Scale: scale, Fallback: fallback}}
}

func NewInput(style TextStyle, content string) Element {
	in := &Input{Style: style, Cursor: Cursor{Width: 1}}
	in.SetContent(content)
	return Element{Genus: in}
}

// -----------------------------------------------------------------------------
//      Element helpers
// -----------------------------------------------------------------------------

func (e *Element) Frame() *Frame {
	f, _ := e.Genus.(*Frame)
	return f
}

func (e *Element) Text() *Text {
	t, _ := e.Genus.(*Text)
	return t
}

func (e *Element) Image() *Image {
	im, _ := e.Genus.(*Image)
	return im
}

func (e *Element) Input() *Input {
	in, _ := e.Genus.(*Input)
	return in
}

// Children of a frame; nil for every other genus.
func (e *Element) Children() []Element {
	if f := e.Frame(); f != nil {
		return f.Children
	}
	return nil
}

func (e Element) WithTag(t Tag) Element {
	e.Tag = t
	return e
}

func (e Element) WithListener(l Listener) Element {
	e.Listener = l
	return e
}

// Clone deep copies the subtree. Stateful behaviors are cloned, not shared.
func (e *Element) Clone() Element {
	c := *e
	if e.Genus != nil {
		c.Genus = e.Genus.clone()
	}
	c.Listener = e.Listener.clone()
	return c
}

// Destroy runs the destroy hook of every behavior in the subtree.
func (e *Element) Destroy() {
	e.Listener.destroy()
	if e.Genus != nil {
		e.Genus.destroy()
	}
}

// Adopt installs the behavior carried by a MsgBehavior message as the element's
// listener, destroying the previous one. Other messages are ignored.
func (e *Element) Adopt(msg Message) bool {
	if msg.Kind != MsgBehavior || msg.Behavior == nil {
		return false
	}
	e.Listener.destroy()
	e.Listener = Stateful(msg.Behavior)
	return true
}
