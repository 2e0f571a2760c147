package widgets

import (
	"math"

	g "go.hasen.dev/generic"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

type f32 = float32

const SCROLLBAR_WIDTH = 8

// ScrollView is the behavior of a scroll container: a row holding a clipping viewport
// (first child) and a scrollbar track (second child) with the thumb inside it.
//
// Wheel input over the viewport moves the viewport's content offset; the thumb follows
// through the track's offset. Dragging the thumb scrolls too.
type ScrollView struct {
	LineStep f32 // pixels per line for line based scrolling

	dragging bool
	grab     f32 // pointer distance from the thumb top when the drag started
}

func (s *ScrollView) lineStep() f32 {
	if s.LineStep <= 0 {
		return 20
	}
	return s.LineStep
}

func (s *ScrollView) parts(e *Element) (viewport, track, thumb *Element) {
	kids := e.Children()
	if len(kids) < 2 {
		return nil, nil, nil
	}
	viewport, track = &kids[0], &kids[1]
	if tk := track.Children(); len(tk) > 0 {
		thumb = &tk[0]
	}
	return viewport, track, thumb
}

// maxOffset is how far the content can scroll, from the last layout.
func maxOffset(viewport *Element) f32 {
	f := viewport.Frame()
	if f == nil {
		return 0
	}
	return max(0, f.Content().Y-viewport.Bound.Dim.Y)
}

func (s *ScrollView) OnIO(e *Element, io *Io) (Signal, bool) {
	viewport, track, thumb := s.parts(e)
	if viewport == nil {
		return Signal{}, false
	}
	limit := maxOffset(viewport)
	offset := viewport.Bound.Offset.Y

	if io.Scroll != (Vec{}) && viewport.Bound.Inside(io.Pointer) {
		delta := io.Scroll.Y
		if io.ScrollUnit == ScrollLines {
			delta *= s.lineStep()
		}
		offset += delta
	}

	if thumb != nil && track != nil {
		// the track follows the viewport height from the last layout
		trackHeight := viewport.Bound.Dim.Y
		track.Frame().Size.H = Fixed(trackHeight)
		thumbHeight := thumbLength(viewport, trackHeight)
		maxThumb := max(0, trackHeight-thumbHeight)

		if io.Clicked(thumb.Bound, MouseLeft) {
			s.dragging = true
			s.grab = io.Pointer.Y - thumb.Bound.Pos.Y
		}
		if io.Input.Has(MouseRelease(MouseLeft)) {
			s.dragging = false
		}
		if s.dragging && maxThumb > 0 {
			thumbTop := io.Pointer.Y - track.Bound.Pos.Y - s.grab
			offset = limit * (thumbTop / maxThumb)
		}

		g.Clamp(0, &offset, limit)

		// thumbOffset / maxThumbOffset == scrollOffset / maxScrollOffset
		var thumbOffset f32
		if limit > 0 {
			thumbOffset = maxThumb * (offset / limit)
		}
		track.Bound.Offset.Y = -thumbOffset
		thumb.Frame().Size.H = Fixed(thumbHeight)
	} else {
		g.Clamp(0, &offset, limit)
	}

	viewport.Bound.Offset.Y = offset
	return Signal{}, false
}

// thumbLength keeps thumb / track == visible / content, with a usable minimum.
func thumbLength(viewport *Element, trackHeight f32) f32 {
	content := viewport.Frame().Content().Y
	if content <= 0 || math.IsNaN(float64(content)) {
		return trackHeight
	}
	length := trackHeight * min(1, viewport.Bound.Dim.Y/content)
	return min(trackHeight, max(length, 20))
}

func (s *ScrollView) OnSignal(e *Element, bus *SignalBus) {}

func (s *ScrollView) Destroy() {}

func (s *ScrollView) Clone() Behavior {
	c := *s
	c.dragging = false
	return &c
}

// ScrollArea wraps content in a viewport of at most w by h with a scrollbar on the right.
func ScrollArea(w, h f32, trackColor, thumbColor ColorId, content ...Element) Element {
	viewport := tw.Box([]tw.FrameFn{tw.Column, tw.Clip, tw.Ceil(w, h)}, content...)
	thumb := tw.Box([]tw.FrameFn{tw.FixSize(SCROLLBAR_WIDTH, 20), tw.BG(thumbColor)})
	track := tw.Box([]tw.FrameFn{
		tw.Clip,
		tw.BG(trackColor),
		tw.FixSize(SCROLLBAR_WIDTH, 0),
	}, thumb)
	e := tw.Box([]tw.FrameFn{tw.Row}, viewport, track)
	e.Listener = Stateful(&ScrollView{})
	return e
}
