package rancher

import (
	"errors"

	"go.uber.org/zap"
)

// Layout holds the collaborators of the measure and arrange passes. Both passes are pure
// functions of the tree, the sheet, the metrics and the Io; running them again with the
// same inputs gives the same bounds.
type Layout struct {
	Sheet   *Sheet
	Metrics Metrics
	Images  ImageResolver
	Io      *Io
}

func (l *Layout) sheet() *Sheet {
	if l.Sheet == nil {
		l.Sheet = DefaultSheet()
	}
	return l.Sheet
}

func (l *Layout) metrics() Metrics {
	if l.Metrics == nil {
		l.Metrics = CellMetrics{}
	}
	return l.Metrics
}

// -----------------------------------------------------------------------------
//      Measure
// -----------------------------------------------------------------------------

// Measure resolves every element's size, children before parents. avail is what the
// parent hands down; for the root it is the window size.
func (l *Layout) Measure(e *Element, avail Vec) Vec {
	var size Vec
	switch genus := e.Genus.(type) {
	case *Frame:
		size = l.measureFrame(genus, avail)
	case *Text:
		size = l.measureText(genus)
	case *Image:
		size = l.measureImage(genus, avail)
	case *Input:
		size = l.measureInput(genus)
	}
	size = size.Max(Vec{})
	e.Bound.Dim = size
	return size
}

func (l *Layout) measureFrame(f *Frame, avail Vec) Vec {
	pad := l.sheet().Pad(f.Style.Pad)
	mainAxis := f.Gravity.Axis()
	crossAxis := mainAxis.Cross()

	// axes that do not depend on the children are known up front, so children get a
	// meaningful available size even though they are measured first
	var size Vec
	var fromChildren [2]bool
	for _, axis := range [2]Axis{AxisX, AxisY} {
		v, ok := f.Size.At(axis).resolve(avail.At(axis), l.Io)
		size = size.With(axis, v)
		fromChildren[axis] = !ok
	}

	var ceiling Vec
	if f.Ceiling != nil {
		for _, axis := range [2]Axis{AxisX, AxisY} {
			ceiling = ceiling.With(axis, f.Ceiling.At(axis).cap(avail.At(axis), l.Io))
		}
	}

	childAvail := avail
	for _, axis := range [2]Axis{AxisX, AxisY} {
		if !fromChildren[axis] {
			childAvail = childAvail.With(axis, size.At(axis))
		}
		if f.Ceiling != nil {
			childAvail = childAvail.With(axis, min(childAvail.At(axis), ceiling.At(axis)))
		}
	}
	childAvail = childAvail.Sub(pad.Size()).Max(Vec{})

	var content Vec
	for i := range f.Children {
		child := l.Measure(&f.Children[i], childAvail)
		var gap f32
		if i > 0 {
			gap = f.Gap
		}
		content = content.With(mainAxis, content.At(mainAxis)+gap+child.At(mainAxis))
		content = content.With(crossAxis, max(content.At(crossAxis), child.At(crossAxis)))
	}
	f.content = content

	for _, axis := range [2]Axis{AxisX, AxisY} {
		if fromChildren[axis] {
			size = size.With(axis, content.At(axis)+pad.Size().At(axis))
		}
	}
	if f.Ceiling != nil {
		size = size.Min(ceiling)
	}
	return size
}

func (l *Layout) measureText(t *Text) Vec {
	ts := l.sheet().ResolveText(t.Style)
	size := TextExtent(l.metrics(), ts.Font, ts.Size, ts.Spacing, t.Text)
	return size.Add(ts.Pad.Size())
}

func (l *Layout) measureImage(im *Image, avail Vec) Vec {
	pad := l.sheet().Pad(im.Style.Pad)
	var err error
	if l.Images == nil {
		err = errNoImages
	} else {
		im.intrinsic, err = l.Images.Resolve(im.Source)
	}
	if err == nil {
		im.failed = false
		return im.intrinsic.Scale(im.scale()).Add(pad.Size())
	}

	if !im.failed {
		Log().Debug("image unresolved", zap.String("src", im.Source.Path), zap.Error(err))
	}
	im.failed = true
	im.intrinsic = Vec{}
	if im.Fallback == nil {
		return pad.Size()
	}
	if im.fallback == nil {
		fb := im.Fallback(l.Io)
		im.fallback = &fb
	}
	return l.Measure(im.fallback, avail)
}

var errNoImages = errors.New("no image resolver")

// cellSize is the size of one token of an input. Without an explicit TokenSize it is
// the advance of 'M' by the line height.
func (l *Layout) cellSize(in *Input, ts ResolvedTextStyle) Vec {
	if in.TokenSize.X > 0 && in.TokenSize.Y > 0 {
		return in.TokenSize
	}
	m := l.metrics()
	return Vec{
		X: m.Advance(ts.Font, ts.Size, 'M') + ts.Spacing,
		Y: m.LineHeight(ts.Font, ts.Size),
	}
}

func (l *Layout) measureInput(in *Input) Vec {
	if in.State == InputHidden {
		return Vec{}
	}
	ts := l.sheet().ResolveText(in.Style)
	in.cell = l.cellSize(in, ts)

	var cols, widest, lines int = 0, 0, 1
	for _, t := range in.Stream.All() {
		if t.Kind == TokenBreak {
			widest = max(widest, cols)
			cols = 0
			lines++
			continue
		}
		cols++
	}
	widest = max(widest, cols)

	// one extra cell so the caret fits after the last token
	size := Vec{
		X: f32(widest+1) * in.cell.X,
		Y: f32(lines) * in.cell.Y,
	}
	return size.Add(ts.Pad.Size())
}

// -----------------------------------------------------------------------------
//      Arrange
// -----------------------------------------------------------------------------

// Arrange assigns absolute positions, parents before children. Sizes must already be
// measured. The root is not clipped by anything but itself.
func (l *Layout) Arrange(root *Element, origin Vec) {
	root.Bound.Pos = origin
	root.Bound.Overflow = Clip(false)
	root.Bound.Visible = root.Bound.Rect()
	l.arrangeInside(root, root.Bound.Visible)
}

// arrangeInside places the descendants of e. clip is the clip region that applies to e
// itself.
func (l *Layout) arrangeInside(e *Element, clip Rect) {
	switch genus := e.Genus.(type) {
	case *Frame:
		l.arrangeFrame(e, genus, clip)
	case *Input:
		l.arrangeCaret(e, genus)
	case *Image:
		if fb := genus.Shown(); fb != nil {
			place(fb, e.Bound.Pos, e.Bound.Overflow, clip)
			l.arrangeInside(fb, clip)
		}
	}
}

func place(e *Element, pos Vec, overflow Overflow, clip Rect) {
	e.Bound.Pos = pos
	e.Bound.Overflow = overflow
	e.Bound.Visible = RectIntersect(e.Bound.Rect(), clip)
}

func (l *Layout) arrangeFrame(e *Element, f *Frame, clip Rect) {
	pad := l.sheet().Pad(f.Style.Pad)
	mainAxis := f.Gravity.Axis()
	crossAxis := mainAxis.Cross()

	inner := e.Bound.Dim.Sub(pad.Size())
	next := e.Bound.Pos.Add(pad.Start()).Sub(e.Bound.Offset)

	// a clipping frame narrows the region for its children; a leaking one passes its
	// own region on unchanged
	childClip := clip
	if f.Overflow.Clips() {
		childClip = e.Bound.Visible
	}

	for i := range f.Children {
		child := &f.Children[i]
		pos := next
		room := inner.At(crossAxis) - child.Bound.Dim.At(crossAxis)
		switch f.Align {
		case AlignMiddle:
			pos = pos.With(crossAxis, pos.At(crossAxis)+room/2)
		case AlignEnd:
			pos = pos.With(crossAxis, pos.At(crossAxis)+room)
		}

		overflow := Leak()
		if f.Overflow.Clips() {
			rect := Rect{Origin: pos, Size: child.Bound.Dim}
			overflow = Clip(!e.Bound.Visible.Covers(rect))
		}
		place(child, pos, overflow, childClip)
		l.arrangeInside(child, childClip)

		next = next.With(mainAxis, next.At(mainAxis)+child.Bound.Dim.At(mainAxis)+f.Gap)
	}
}

// CaretCell is the column and line of the token cell at the cursor.
func (in *Input) CaretCell() (col, line int) {
	offset := in.Stream.Offset()
	for i, t := range in.Stream.All() {
		if i >= offset {
			break
		}
		if t.Kind == TokenBreak {
			col = 0
			line++
			continue
		}
		col++
	}
	return col, line
}

func (l *Layout) arrangeCaret(e *Element, in *Input) {
	if in.State == InputHidden {
		in.Cursor.Bound = Bound{}
		return
	}
	pad := l.sheet().Pad(in.Style.Pad)
	col, line := in.CaretCell()
	width := in.Cursor.Width
	if width <= 0 {
		width = 1
	}
	in.origin = e.Bound.Pos.Add(pad.Start())
	pos := in.origin.Add(Vec{
		X: f32(col) * in.cell.X,
		Y: f32(line) * in.cell.Y,
	})
	in.Cursor.Bound.Pos = pos
	in.Cursor.Bound.Dim = Vec{X: width, Y: in.cell.Y}
	in.Cursor.Bound.Overflow = e.Bound.Overflow
	in.Cursor.Bound.Visible = RectIntersect(in.Cursor.Bound.Rect(), e.Bound.Visible)
}
