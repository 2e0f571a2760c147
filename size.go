package rancher

import "math"

type SizeKind uint8

const (
	SizeWindow SizeKind = iota
	SizeFixed
	SizeChild
	SizeComputed
)

// SizePolicy says how one axis of a frame gets its size.
type SizePolicy struct {
	Kind    SizeKind
	Value   f32
	Compute func(*Io) f32
}

// Window takes whatever size the parent makes available (the window for the root).
func Window() SizePolicy {
	return SizePolicy{Kind: SizeWindow}
}

func Fixed(v f32) SizePolicy {
	return SizePolicy{Kind: SizeFixed, Value: v}
}

// Child fits the content.
func Child() SizePolicy {
	return SizePolicy{Kind: SizeChild}
}

// Computed is evaluated on every measure pass; it is never cached between frames.
func Computed(fn func(*Io) f32) SizePolicy {
	return SizePolicy{Kind: SizeComputed, Compute: fn}
}

type Size struct {
	W, H SizePolicy
}

func (s Size) At(a Axis) SizePolicy {
	if a == AxisX {
		return s.W
	}
	return s.H
}

func FixedSize(w, h f32) Size {
	return Size{W: Fixed(w), H: Fixed(h)}
}

func ChildSize() Size {
	return Size{W: Child(), H: Child()}
}

func WindowSize() Size {
	return Size{W: Window(), H: Window()}
}

// resolve ignores Child, which needs the children; ok is false for it.
func (p SizePolicy) resolve(avail f32, io *Io) (v f32, ok bool) {
	switch p.Kind {
	case SizeWindow:
		v = avail
	case SizeFixed:
		v = p.Value
	case SizeComputed:
		if p.Compute != nil {
			v = p.Compute(io)
		}
	case SizeChild:
		return 0, false
	}
	if v < 0 || math.IsNaN(float64(v)) {
		v = 0
	}
	return v, true
}

// cap resolves a ceiling axis. A Child ceiling means no cap.
func (p SizePolicy) cap(avail f32, io *Io) f32 {
	v, ok := p.resolve(avail, io)
	if !ok {
		return f32(math.Inf(1))
	}
	return v
}
