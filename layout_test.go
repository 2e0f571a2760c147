package rancher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellLayout(window Vec) *Layout {
	return &Layout{
		Sheet:   DefaultSheet(),
		Metrics: CellMetrics{Cell: Vec{X: 1, Y: 1}},
		Io:      NewIo(window),
	}
}

func fixedBox(w, h f32) Element {
	return NewFrame(Frame{Size: FixedSize(w, h)})
}

func run(l *Layout, root *Element) {
	l.Measure(root, l.Io.WindowSize)
	l.Arrange(root, Vec{})
}

func TestRowOfFixedChildren(t *testing.T) {
	root := NewFrame(Frame{Gravity: Horizontal, Size: ChildSize()},
		fixedBox(10, 5),
		fixedBox(20, 5),
	)
	run(cellLayout(Vec{X: 100, Y: 50}), &root)

	assert.Equal(t, Vec{X: 30, Y: 5}, root.Bound.Dim)
	kids := root.Children()
	assert.Equal(t, Vec{X: 0, Y: 0}, kids[0].Bound.Pos)
	assert.Equal(t, Vec{X: 10, Y: 0}, kids[1].Bound.Pos)
	assert.Equal(t, Vec{X: 30, Y: 5}, root.Frame().Content())
}

func TestColumnPadAndGap(t *testing.T) {
	l := cellLayout(Vec{X: 100, Y: 50})
	pad := l.Sheet.AddPad(PadAll(2))
	root := NewFrame(Frame{Gravity: Vertical, Gap: 3, Size: ChildSize(), Style: Style{Pad: Some(pad)}},
		fixedBox(10, 5),
		fixedBox(20, 5),
	)
	run(l, &root)

	assert.Equal(t, Vec{X: 20, Y: 13}, root.Frame().Content())
	assert.Equal(t, Vec{X: 24, Y: 17}, root.Bound.Dim)
	kids := root.Children()
	assert.Equal(t, Vec{X: 2, Y: 2}, kids[0].Bound.Pos)
	assert.Equal(t, Vec{X: 2, Y: 10}, kids[1].Bound.Pos)
}

func TestSizePolicies(t *testing.T) {
	quarter := Computed(func(io *Io) f32 { return io.WindowSize.X / 4 })
	root := NewFrame(Frame{Gravity: Horizontal, Size: WindowSize()},
		NewFrame(Frame{Size: Size{W: quarter, H: Window()}}),
		NewFrame(Frame{Size: Size{W: Fixed(-5), H: Child()}}, fixedBox(3, 7)),
	)
	l := cellLayout(Vec{X: 100, Y: 50})
	run(l, &root)

	assert.Equal(t, Vec{X: 100, Y: 50}, root.Bound.Dim)
	kids := root.Children()
	assert.Equal(t, Vec{X: 25, Y: 50}, kids[0].Bound.Dim)
	assert.Equal(t, Vec{X: 0, Y: 7}, kids[1].Bound.Dim, "negative sizes become zero")

	// computed sizes follow the window on the next pass
	l.Io.WindowSize = Vec{X: 200, Y: 50}
	run(l, &root)
	assert.Equal(t, f32(50), kids[0].Bound.Dim.X)
}

func TestCeiling(t *testing.T) {
	capped := FixedSize(15, 100)
	root := NewFrame(Frame{Size: ChildSize(), Ceiling: &capped}, fixedBox(20, 5))
	run(cellLayout(Vec{X: 100, Y: 50}), &root)
	assert.Equal(t, Vec{X: 15, Y: 5}, root.Bound.Dim)

	// a Child ceiling axis does not cap
	open := Size{W: Child(), H: Fixed(2)}
	root = NewFrame(Frame{Size: ChildSize(), Ceiling: &open}, fixedBox(20, 5))
	run(cellLayout(Vec{X: 100, Y: 50}), &root)
	assert.Equal(t, Vec{X: 20, Y: 2}, root.Bound.Dim)
}

func TestCrossAlignment(t *testing.T) {
	root := NewFrame(Frame{Gravity: Horizontal, Align: AlignMiddle, Size: FixedSize(20, 10)},
		fixedBox(4, 5),
	)
	run(cellLayout(Vec{X: 100, Y: 50}), &root)
	assert.Equal(t, Vec{X: 0, Y: 2.5}, root.Children()[0].Bound.Pos)

	root.Frame().Align = AlignEnd
	run(cellLayout(Vec{X: 100, Y: 50}), &root)
	assert.Equal(t, Vec{X: 0, Y: 5}, root.Children()[0].Bound.Pos)
}

func TestOverflow(t *testing.T) {
	root := NewFrame(Frame{Size: WindowSize(), Overflow: Clip(false)},
		NewFrame(Frame{Size: FixedSize(10, 10), Overflow: Clip(false)},
			fixedBox(20, 5),
			fixedBox(5, 5),
		),
		NewFrame(Frame{Size: FixedSize(10, 10), Overflow: Leak()},
			fixedBox(20, 5),
		),
	)
	run(cellLayout(Vec{X: 100, Y: 50}), &root)

	clipper, leaker := &root.Children()[0], &root.Children()[1]
	wide := clipper.Children()[0]
	assert.Equal(t, Clip(true), wide.Bound.Overflow)
	assert.Equal(t, Rect{Size: Vec{X: 10, Y: 5}}, wide.Bound.Visible)

	fits := clipper.Children()[1]
	assert.Equal(t, Clip(false), fits.Bound.Overflow)
	assert.Equal(t, Vec{X: 5, Y: 5}, fits.Bound.Visible.Size)

	spill := leaker.Children()[0]
	assert.Equal(t, Leak(), spill.Bound.Overflow)
	assert.Equal(t, Rect{Origin: Vec{Y: 10}, Size: Vec{X: 20, Y: 5}}, spill.Bound.Visible)
}

func TestContentOffset(t *testing.T) {
	root := NewFrame(Frame{Size: FixedSize(10, 10)}, fixedBox(5, 5), fixedBox(5, 5))
	root.Bound.Offset = Vec{Y: 3}
	run(cellLayout(Vec{X: 100, Y: 50}), &root)
	assert.Equal(t, f32(-3), root.Children()[0].Bound.Pos.Y)
	assert.Equal(t, f32(2), root.Children()[1].Bound.Pos.Y)
}

func TestLayoutIsDeterministic(t *testing.T) {
	build := func() Element {
		return NewFrame(Frame{Gravity: Horizontal, Size: WindowSize(), Gap: 1},
			NewFrame(Frame{Gravity: Vertical, Size: ChildSize(), Align: AlignMiddle},
				NewText("one", TextStyle{}),
				NewText("three", TextStyle{}),
			),
			NewInput(TextStyle{}, "edit\nme"),
			fixedBox(7, 3),
		)
	}
	bounds := func(root *Element) []Bound {
		var out []Bound
		Walk(root, func(e *Element, depth int) bool {
			out = append(out, e.Bound)
			return true
		})
		return out
	}

	l := cellLayout(Vec{X: 80, Y: 24})
	root := build()
	run(l, &root)
	first := bounds(&root)
	run(l, &root)
	assert.Equal(t, first, bounds(&root))

	other := build()
	run(cellLayout(Vec{X: 80, Y: 24}), &other)
	assert.Equal(t, first, bounds(&other))
}

func TestMeasureText(t *testing.T) {
	l := cellLayout(Vec{X: 100, Y: 50})
	for _, tc := range []struct {
		text string
		want Vec
	}{
		{"hello", Vec{X: 5, Y: 1}},
		{"ab\ncde", Vec{X: 3, Y: 2}},
		{"世界", Vec{X: 4, Y: 1}},
		{"", Vec{X: 0, Y: 1}},
	} {
		e := NewText(tc.text, TextStyle{})
		assert.Equal(t, tc.want, l.Measure(&e, Vec{}), tc.text)
	}

	spaced := NewText("abc", TextStyle{Spacing: 1})
	assert.Equal(t, Vec{X: 5, Y: 1}, l.Measure(&spaced, Vec{}))
}

func TestMeasureInput(t *testing.T) {
	l := cellLayout(Vec{X: 100, Y: 50})
	e := NewInput(TextStyle{}, "abc\nd")
	in := e.Input()
	in.State = InputActive
	run(l, &e)

	assert.Equal(t, Vec{X: 4, Y: 2}, e.Bound.Dim, "widest line plus the caret cell")
	assert.Equal(t, Vec{X: 1, Y: 1}, in.Cell())
	assert.Equal(t, Vec{X: 1, Y: 1}, in.Cursor.Bound.Pos)

	require.NoError(t, in.Stream.Seek(2))
	run(l, &e)
	col, line := in.CaretCell()
	assert.Equal(t, 2, col)
	assert.Equal(t, 0, line)
	assert.Equal(t, Vec{X: 2, Y: 0}, in.Cursor.Bound.Pos)

	in.TokenSize = Vec{X: 2, Y: 3}
	run(l, &e)
	assert.Equal(t, Vec{X: 8, Y: 6}, e.Bound.Dim)

	in.State = InputHidden
	run(l, &e)
	assert.Equal(t, Vec{}, e.Bound.Dim)
	assert.Equal(t, Bound{}, in.Cursor.Bound)
}

type fakeImages map[string]Vec

func (f fakeImages) Resolve(src Src) (Vec, error) {
	if size, ok := f[src.Path]; ok {
		return size, nil
	}
	return Vec{}, ErrRemoteSource
}

func TestImageFallback(t *testing.T) {
	l := cellLayout(Vec{X: 100, Y: 50})
	l.Images = fakeImages{"cat.png": {X: 40, Y: 20}}

	cat := NewImage(SysSrc("cat.png"), 0.5, nil)
	assert.Equal(t, Vec{X: 20, Y: 10}, l.Measure(&cat, Vec{}))
	assert.False(t, cat.Image().Failed())

	var built int
	missing := NewImage(SysSrc("dog.png"), 1, func(io *Io) Element {
		built++
		return NewText("no dog", TextStyle{})
	})
	run(l, &missing)
	run(l, &missing)
	im := missing.Image()
	require.True(t, im.Failed())
	assert.Equal(t, 1, built, "fallback is built once")
	assert.Equal(t, Vec{X: 6, Y: 1}, missing.Bound.Dim)
	require.NotNil(t, im.Shown())
	assert.Equal(t, missing.Bound.Pos, im.Shown().Bound.Pos)

	bare := NewImage(URLSrc("https://example.com/x.png"), 1, nil)
	assert.Equal(t, Vec{}, l.Measure(&bare, Vec{}))
	assert.Nil(t, bare.Image().Shown())
}
