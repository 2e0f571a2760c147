package rancher

type f32 = float32

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Vec2 is a plain 2d value, copied freely.
type Vec2[T Numeric] struct {
	X, Y T
}

type Vec = Vec2[f32]
type Vec4 = [4]f32

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) Cross() Axis {
	return 1 - a
}

func V2[T Numeric](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

func (v Vec2[T]) Add(o Vec2[T]) Vec2[T] {
	return Vec2[T]{v.X + o.X, v.Y + o.Y}
}

func (v Vec2[T]) Sub(o Vec2[T]) Vec2[T] {
	return Vec2[T]{v.X - o.X, v.Y - o.Y}
}

func (v Vec2[T]) Scale(f T) Vec2[T] {
	return Vec2[T]{v.X * f, v.Y * f}
}

func (v Vec2[T]) Max(o Vec2[T]) Vec2[T] {
	return Vec2[T]{max(v.X, o.X), max(v.Y, o.Y)}
}

func (v Vec2[T]) Min(o Vec2[T]) Vec2[T] {
	return Vec2[T]{min(v.X, o.X), min(v.Y, o.Y)}
}

func (v Vec2[T]) At(a Axis) T {
	if a == AxisX {
		return v.X
	}
	return v.Y
}

// With returns a copy of v with the component on axis a replaced.
func (v Vec2[T]) With(a Axis, value T) Vec2[T] {
	if a == AxisX {
		v.X = value
	} else {
		v.Y = value
	}
	return v
}

// Pad is the space between a bound's edge and its content.
type Pad struct {
	Top, Right, Bottom, Left f32
}

func PadAll(v f32) Pad {
	return Pad{v, v, v, v}
}

func PadVH(v, h f32) Pad {
	return Pad{Top: v, Right: h, Bottom: v, Left: h}
}

func (p Pad) Size() Vec {
	return Vec{X: p.Left + p.Right, Y: p.Top + p.Bottom}
}

func (p Pad) Start() Vec {
	return Vec{X: p.Left, Y: p.Top}
}

type Rect struct {
	Origin Vec
	Size   Vec
}

func (r Rect) End() Vec {
	return r.Origin.Add(r.Size)
}

// Contains is half-open, unlike Bound.Inside.
func (r Rect) Contains(p Vec) bool {
	br := r.End()
	return p.X >= r.Origin.X && p.X < br.X && p.Y >= r.Origin.Y && p.Y < br.Y
}

// Covers reports whether o lies entirely within r.
func (r Rect) Covers(o Rect) bool {
	rEnd, oEnd := r.End(), o.End()
	return o.Origin.X >= r.Origin.X && o.Origin.Y >= r.Origin.Y &&
		oEnd.X <= rEnd.X && oEnd.Y <= rEnd.Y
}

func RectIntersect(r1 Rect, r2 Rect) Rect {
	min3 := r1.Origin.Max(r2.Origin)
	max3 := r1.End().Min(r2.End())

	var r3 Rect
	r3.Origin = min3
	r3.Size = max3.Sub(min3)
	if r3.Size.X < 0 || r3.Size.Y < 0 {
		return Rect{}
	}
	return r3
}

type OverflowKind uint8

const (
	OverflowClip OverflowKind = iota
	OverflowLeak
)

// Overflow is either Clip{Active} or Leak. On a frame it is the policy applied to its
// children; on a bound it records whether paint must clip the element.
type Overflow struct {
	Kind   OverflowKind
	Active bool
}

func Clip(active bool) Overflow {
	return Overflow{Kind: OverflowClip, Active: active}
}

func Leak() Overflow {
	return Overflow{Kind: OverflowLeak}
}

func (o Overflow) Clips() bool {
	return o.Kind == OverflowClip
}

// Bound is owned by its element and recomputed on every layout pass.
type Bound struct {
	Pos      Vec
	Dim      Vec
	Offset   Vec // content offset applied to children, e.g. scroll position
	Overflow Overflow
	Shadow   [4]f32 // left, right, top, bottom
	Angle    f32    // rotation in radians around the center, applied when painting

	// part of the bound left after clipping by ancestors
	Visible Rect
}

func (b Bound) Rect() Rect {
	return Rect{Origin: b.Pos, Size: b.Dim}
}

// Inside is inclusive on both edges.
func (b Bound) Inside(p Vec) bool {
	return p.X >= b.Pos.X && p.X <= b.Pos.X+b.Dim.X &&
		p.Y >= b.Pos.Y && p.Y <= b.Pos.Y+b.Dim.Y
}

func (b Bound) HasShadow() bool {
	return b.Shadow != [4]f32{}
}

// ShadowRect grows the bound by the shadow extents.
func (b Bound) ShadowRect() Rect {
	return Rect{
		Origin: Vec{b.Pos.X - b.Shadow[0], b.Pos.Y - b.Shadow[2]},
		Size:   Vec{b.Dim.X + b.Shadow[0] + b.Shadow[1], b.Dim.Y + b.Shadow[2] + b.Shadow[3]},
	}
}
