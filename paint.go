package rancher

// -----------------------------------------------------------------------------
//      Surfaces
// -----------------------------------------------------------------------------
// Surfaces are what the rasterizer draws. Paint flattens the arranged tree into a list
// of surfaces in drawing order; clip push/pop pairs bracket the children of clipping
// frames.

type SurfaceKind uint8

const (
	SurfaceFill SurfaceKind = iota
	SurfaceShadow
	SurfaceText
	SurfaceImage
	SurfaceCaret
	SurfaceClipPush
	SurfaceClipPop
)

type Surface struct {
	Kind SurfaceKind
	Rect Rect
	// the visible part of Rect; the rasterizer may skip everything outside it
	Visible Rect
	Angle   f32
	Color   Color
	Shadow  [4]f32

	Text      string
	TextStyle ResolvedTextStyle
	Cell      Vec // token cell for input text; zero for free text

	Source Src
}

// Paint walks the arranged tree and returns the surfaces in drawing order. It does not
// modify the tree.
func Paint(root *Element, sheet *Sheet) []Surface {
	return AppendSurfaces(nil, root, sheet)
}

// AppendSurfaces is Paint reusing a slice from a previous frame.
func AppendSurfaces(out []Surface, root *Element, sheet *Sheet) []Surface {
	if sheet == nil {
		sheet = DefaultSheet()
	}
	return paintElement(out, root, sheet)
}

func paintElement(out []Surface, e *Element, sheet *Sheet) []Surface {
	b := &e.Bound
	// fully clipped away
	if b.Overflow.Kind == OverflowClip && b.Overflow.Active && (b.Visible.Size.X <= 0 || b.Visible.Size.Y <= 0) {
		return out
	}

	base := Surface{Rect: b.Rect(), Visible: b.Visible, Angle: b.Angle}
	if b.HasShadow() {
		s := base
		s.Kind = SurfaceShadow
		s.Rect = b.ShadowRect()
		s.Shadow = b.Shadow
		s.Color = Color{0, 0, 0, 0.5}
		out = append(out, s)
	}

	switch genus := e.Genus.(type) {
	case *Frame:
		if genus.Style.Color.Ok {
			s := base
			s.Kind = SurfaceFill
			s.Color = sheet.Color(genus.Style.Color)
			out = append(out, s)
		}
		clips := genus.Overflow.Clips()
		if clips {
			s := base
			s.Kind = SurfaceClipPush
			out = append(out, s)
		}
		for i := range genus.Children {
			out = paintElement(out, &genus.Children[i], sheet)
		}
		if clips {
			s := base
			s.Kind = SurfaceClipPop
			out = append(out, s)
		}

	case *Text:
		ts := sheet.ResolveText(genus.Style)
		s := base
		s.Kind = SurfaceText
		s.Text = genus.Text
		s.TextStyle = ts
		s.Color = ts.Color
		out = append(out, s)

	case *Image:
		if fb := genus.Shown(); fb != nil {
			return paintElement(out, fb, sheet)
		}
		if genus.Failed() {
			return out
		}
		s := base
		s.Kind = SurfaceImage
		s.Source = genus.Source
		s.Color = sheet.Color(genus.Style.Color)
		out = append(out, s)

	case *Input:
		if genus.State == InputHidden {
			return out
		}
		ts := sheet.ResolveText(genus.Style)
		s := base
		s.Kind = SurfaceText
		s.Text = genus.Display()
		s.TextStyle = ts
		s.Color = ts.Color
		s.Cell = genus.cell
		out = append(out, s)

		if genus.State == InputActive && genus.Cursor.Visible {
			cb := &genus.Cursor.Bound
			c := Surface{
				Kind:    SurfaceCaret,
				Rect:    cb.Rect(),
				Visible: cb.Visible,
				Color:   sheet.Color(genus.Cursor.Color),
			}
			if !genus.Cursor.Color.Ok {
				c.Color = ts.Color
			}
			out = append(out, c)
		}
	}
	return out
}

// Walk visits the tree in pre-order, fallback elements included. Returning false from fn
// skips the children of that element.
func Walk(root *Element, fn func(e *Element, depth int) bool) {
	walk(root, 0, fn)
}

func walk(e *Element, depth int, fn func(e *Element, depth int) bool) {
	if !fn(e, depth) {
		return
	}
	if f := e.Frame(); f != nil {
		for i := range f.Children {
			walk(&f.Children[i], depth+1, fn)
		}
	}
	if im := e.Image(); im != nil {
		if fb := im.Shown(); fb != nil {
			walk(fb, depth+1, fn)
		}
	}
}

// HitTest returns the deepest element under p. Later children are drawn on top, so they
// are checked first. Clipped-away parts do not count.
func HitTest(root *Element, p Vec) *Element {
	if !root.Bound.Visible.Contains(p) {
		return nil
	}
	if f := root.Frame(); f != nil {
		for i := len(f.Children) - 1; i >= 0; i-- {
			if hit := HitTest(&f.Children[i], p); hit != nil {
				return hit
			}
		}
	}
	if im := root.Image(); im != nil {
		if fb := im.Shown(); fb != nil {
			if hit := HitTest(fb, p); hit != nil {
				return hit
			}
		}
	}
	return root
}
