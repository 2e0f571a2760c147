package widgets

import (
	"slices"

	g "go.hasen.dev/generic"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

// DragList reorders the children of its frame by drag and drop. Dropping item From on
// the slot of item To moves it there and posts PairMsg(From, To) to Target.
type DragList struct {
	Target Tag

	Dragging bool
	From     int
	Over     int // drop slot under the pointer, -1 when outside the list

	drop bool
}

func (d *DragList) OnIO(e *Element, io *Io) (Signal, bool) {
	kids := e.Children()
	if !d.Dragging {
		if io.Input.Has(MousePress(MouseLeft)) {
			if i := slotAt(kids, io.Pointer); i >= 0 {
				d.Dragging = true
				d.From = i
				d.Over = i
			}
		}
		return Signal{}, false
	}

	d.Over = slotAt(kids, io.Pointer)
	if !io.Input.Has(MouseRelease(MouseLeft)) {
		return Signal{}, false
	}
	d.Dragging = false
	if d.Over < 0 || d.Over == d.From {
		return Signal{}, false
	}
	d.drop = true
	return Signal{Tag: d.Target, Msg: PairMsg(int8(d.From), int8(d.Over))}, true
}

func slotAt(kids []Element, p Vec) int {
	for i := range kids {
		if kids[i].Bound.Inside(p) {
			return i
		}
	}
	return -1
}

// OnSignal moves the dropped item after the walk over the children is done with them.
func (d *DragList) OnSignal(e *Element, bus *SignalBus) {
	if !d.drop {
		return
	}
	d.drop = false
	f := e.Frame()
	if f == nil || d.From >= len(f.Children) || d.Over >= len(f.Children) {
		return
	}
	item := f.Children[d.From]
	g.RemoveAt(&f.Children, d.From, 1)
	f.Children = slices.Insert(f.Children, d.Over, item)
}

func (d *DragList) Destroy() {}

func (d *DragList) Clone() Behavior {
	c := *d
	c.Dragging = false
	c.drop = false
	return &c
}

// DraggedItem is the element being dragged, or nil.
func (d *DragList) DraggedItem(e *Element) *Element {
	kids := e.Children()
	if !d.Dragging || d.From >= len(kids) {
		return nil
	}
	return &kids[d.From]
}

// NewDragList builds a column whose items can be reordered.
func NewDragList(target Tag, gap f32, items ...Element) (Element, *DragList) {
	d := &DragList{Target: target, Over: -1}
	e := tw.Box([]tw.FrameFn{tw.Column, tw.Gap(gap)}, items...)
	e.Listener = Stateful(d)
	return e, d
}
