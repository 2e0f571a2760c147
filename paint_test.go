package rancher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(ss []Surface) []SurfaceKind {
	out := make([]SurfaceKind, len(ss))
	for i := range ss {
		out[i] = ss[i].Kind
	}
	return out
}

func TestPaintOrder(t *testing.T) {
	sheet := DefaultSheet()
	blue := sheet.AddColor(HSLA(210, 70, 50, 1))
	root := NewFrame(Frame{Size: FixedSize(10, 10), Style: Style{Color: Some(blue)}},
		NewText("hi", TextStyle{}),
		NewFrame(Frame{Size: FixedSize(2, 2), Overflow: Leak()}),
	)
	l := cellLayout(Vec{X: 10, Y: 10})
	l.Sheet = sheet
	run(l, &root)

	ss := Paint(&root, sheet)
	require.Equal(t, []SurfaceKind{SurfaceFill, SurfaceClipPush, SurfaceText, SurfaceClipPop}, kinds(ss))
	assert.Equal(t, sheet.Colors[blue], ss[0].Color)
	assert.Equal(t, "hi", ss[2].Text)
	assert.Equal(t, sheet.Default.Color, ss[2].Color)
	assert.Equal(t, Rect{Size: Vec{X: 2, Y: 1}}, ss[2].Rect)
	assert.Equal(t, ss[1].Rect, ss[3].Rect)
}

func TestPaintSkipsClippedAway(t *testing.T) {
	root := NewFrame(Frame{Size: FixedSize(10, 10)},
		NewText("gone", TextStyle{}),
	)
	root.Bound.Offset = Vec{Y: 20}
	run(cellLayout(Vec{X: 10, Y: 10}), &root)

	ss := Paint(&root, nil)
	assert.Equal(t, []SurfaceKind{SurfaceClipPush, SurfaceClipPop}, kinds(ss))
}

func TestPaintShadowAndAngle(t *testing.T) {
	root := NewFrame(Frame{Size: WindowSize()},
		NewFrame(Frame{Size: FixedSize(4, 4), Overflow: Leak()}),
	)
	box := &root.Children()[0]
	box.Bound.Shadow = [4]f32{1, 2, 3, 4}
	box.Bound.Angle = 0.5
	run(cellLayout(Vec{X: 20, Y: 20}), &root)

	ss := Paint(&root, nil)
	require.Equal(t, []SurfaceKind{SurfaceClipPush, SurfaceShadow, SurfaceClipPop}, kinds(ss))
	shadow := ss[1]
	assert.Equal(t, Rect{Origin: Vec{X: -1, Y: -3}, Size: Vec{X: 7, Y: 11}}, shadow.Rect)
	assert.Equal(t, [4]f32{1, 2, 3, 4}, shadow.Shadow)
	assert.Equal(t, f32(0.5), shadow.Angle)
}

func TestPaintInput(t *testing.T) {
	sheet := DefaultSheet()
	red := sheet.AddColor(HSLA(0, 80, 50, 1))
	e := NewInput(TextStyle{}, "secret")
	in := e.Input()
	in.Mask = '*'
	run(cellLayout(Vec{X: 20, Y: 5}), &e)

	ss := Paint(&e, sheet)
	require.Equal(t, []SurfaceKind{SurfaceText}, kinds(ss), "idle inputs have no caret")
	assert.Equal(t, "******", ss[0].Text)
	assert.Equal(t, Vec{X: 1, Y: 1}, ss[0].Cell)

	in.State = InputActive
	in.Cursor.Visible = true
	in.Cursor.Color = Some(red)
	run(cellLayout(Vec{X: 20, Y: 5}), &e)
	ss = Paint(&e, sheet)
	require.Equal(t, []SurfaceKind{SurfaceText, SurfaceCaret}, kinds(ss))
	assert.Equal(t, sheet.Colors[red], ss[1].Color)
	assert.Equal(t, Vec{X: 6, Y: 0}, ss[1].Rect.Origin)

	in.State = InputHidden
	run(cellLayout(Vec{X: 20, Y: 5}), &e)
	assert.Empty(t, Paint(&e, sheet))
}

func TestPaintImage(t *testing.T) {
	l := cellLayout(Vec{X: 100, Y: 100})
	l.Images = fakeImages{"cat.png": {X: 4, Y: 2}}
	root := NewFrame(Frame{Size: WindowSize()},
		NewImage(SysSrc("cat.png"), 1, nil),
		NewImage(SysSrc("dog.png"), 1, func(io *Io) Element {
			return NewText("no dog", TextStyle{})
		}),
		NewImage(SysSrc("cow.png"), 1, nil),
	)
	run(l, &root)

	ss := Paint(&root, nil)
	require.Equal(t, []SurfaceKind{SurfaceClipPush, SurfaceImage, SurfaceText, SurfaceClipPop}, kinds(ss))
	assert.Equal(t, SysSrc("cat.png"), ss[1].Source)
	assert.Equal(t, "no dog", ss[2].Text)
}

func TestHitTest(t *testing.T) {
	root := NewFrame(Frame{Gravity: Horizontal, Size: FixedSize(100, 100)},
		fixedBox(10, 10),
		NewFrame(Frame{Size: FixedSize(10, 10)}, fixedBox(3, 3)),
	)
	run(cellLayout(Vec{X: 100, Y: 100}), &root)
	kids := root.Children()

	assert.Same(t, &kids[0], HitTest(&root, Vec{X: 5, Y: 5}))
	assert.Same(t, &kids[1], HitTest(&root, Vec{X: 15, Y: 5}))
	assert.Same(t, &kids[1].Children()[0], HitTest(&root, Vec{X: 11, Y: 1}))
	assert.Same(t, &kids[1], HitTest(&root, Vec{X: 10, Y: 5}), "rects are half open")
	assert.Same(t, &root, HitTest(&root, Vec{X: 50, Y: 50}))
	assert.Nil(t, HitTest(&root, Vec{X: 150, Y: 50}))
}

func TestWalkSkipsSubtrees(t *testing.T) {
	root := NewFrame(Frame{},
		NewFrame(Frame{}, NewText("hidden", TextStyle{})),
		NewText("shown", TextStyle{}),
	)
	var texts []string
	var depths []int
	Walk(&root, func(e *Element, depth int) bool {
		depths = append(depths, depth)
		if txt := e.Text(); txt != nil {
			texts = append(texts, txt.Text)
		}
		return depth == 0
	})
	assert.Equal(t, []string{"shown"}, texts)
	assert.Equal(t, []int{0, 1, 1}, depths)
}

func TestSurfacesHash(t *testing.T) {
	a := []Surface{{Kind: SurfaceText, Text: "abc", Color: Color{1, 2, 3, 1}}}
	b := []Surface{{Kind: SurfaceText, Text: string([]byte("abc")), Color: Color{1, 2, 3, 1}}}
	assert.Equal(t, SurfacesHash(a), SurfacesHash(b), "strings hash by content")

	b[0].Color[3] = 0.5
	assert.NotEqual(t, SurfacesHash(a), SurfacesHash(b))
	assert.NotEqual(t, SurfacesHash(a), SurfacesHash(append(a, Surface{})))
	assert.NotEqual(t, SurfacesHash(nil), SurfacesHash([]Surface{{}}))
}
