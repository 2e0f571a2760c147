package tw

import "go.hasen.dev/rancher"

// TailWind style way to build up frames and text styles!

type FrameFn func(*rancher.Frame)
type f32 = float32

// TailWind. Frames fit their children unless told otherwise.
func TW(fns ...FrameFn) rancher.Frame {
	f := rancher.Frame{Size: rancher.ChildSize()}
	for _, fn := range fns {
		fn(&f)
	}
	return f
}

// TailWind With
func TWW(f rancher.Frame, fns ...FrameFn) rancher.Frame {
	for _, fn := range fns {
		fn(&f)
	}
	return f
}

func Compose(fns ...FrameFn) FrameFn {
	return func(f *rancher.Frame) {
		for _, fn := range fns {
			fn(f)
		}
	}
}

// Box builds a frame element in one go.
func Box(fns []FrameFn, children ...rancher.Element) rancher.Element {
	return rancher.NewFrame(TW(fns...), children...)
}

func Row(f *rancher.Frame) {
	f.Gravity = rancher.Horizontal
}

func Column(f *rancher.Frame) {
	f.Gravity = rancher.Vertical
}

func RowF(row bool) FrameFn {
	return func(f *rancher.Frame) {
		if row {
			f.Gravity = rancher.Horizontal
		} else {
			f.Gravity = rancher.Vertical
		}
	}
}

func Clip(f *rancher.Frame) {
	f.Overflow = rancher.Clip(false)
}

func Leak(f *rancher.Frame) {
	f.Overflow = rancher.Leak()
}

func Pad(id rancher.PadId) FrameFn {
	return func(f *rancher.Frame) {
		f.Style.Pad = rancher.Some(id)
	}
}

func BG(id rancher.ColorId) FrameFn {
	return func(f *rancher.Frame) {
		f.Style.Color = rancher.Some(id)
	}
}

func Gap(v f32) FrameFn {
	return func(f *rancher.Frame) {
		f.Gap = v
	}
}

func FixSize(w, h f32) FrameFn {
	return func(f *rancher.Frame) {
		f.Size = rancher.FixedSize(w, h)
	}
}

func FixWidth(w f32) FrameFn {
	return func(f *rancher.Frame) {
		f.Size.W = rancher.Fixed(w)
	}
}

func FixHeight(h f32) FrameFn {
	return func(f *rancher.Frame) {
		f.Size.H = rancher.Fixed(h)
	}
}

// Expand takes all the room the parent offers on both axes.
func Expand(f *rancher.Frame) {
	f.Size = rancher.WindowSize()
}

func ExpandWidth(f *rancher.Frame) {
	f.Size.W = rancher.Window()
}

func ExpandHeight(f *rancher.Frame) {
	f.Size.H = rancher.Window()
}

func CompWidth(fn func(*rancher.Io) f32) FrameFn {
	return func(f *rancher.Frame) {
		f.Size.W = rancher.Computed(fn)
	}
}

func CompHeight(fn func(*rancher.Io) f32) FrameFn {
	return func(f *rancher.Frame) {
		f.Size.H = rancher.Computed(fn)
	}
}

// Ceil caps the frame at a fixed size. A zero component leaves that axis uncapped.
func Ceil(w, h f32) FrameFn {
	return func(f *rancher.Frame) {
		ceil := rancher.ChildSize()
		if w > 0 {
			ceil.W = rancher.Fixed(w)
		}
		if h > 0 {
			ceil.H = rancher.Fixed(h)
		}
		f.Ceiling = &ceil
	}
}

func CeilV(s rancher.Size) FrameFn {
	return func(f *rancher.Frame) {
		f.Ceiling = &s
	}
}

func CA(a rancher.Align) FrameFn {
	return func(f *rancher.Frame) {
		f.Align = a
	}
}

func CrossMid(f *rancher.Frame) {
	f.Align = rancher.AlignMiddle
}

// -----------------------------------------------------------------------------
//      Text
// -----------------------------------------------------------------------------

type TextFn func(*rancher.TextStyle)

func TTW(fns ...TextFn) rancher.TextStyle {
	var ts rancher.TextStyle
	for _, fn := range fns {
		fn(&ts)
	}
	return ts
}

func Label(text string, fns ...TextFn) rancher.Element {
	return rancher.NewText(text, TTW(fns...))
}

func Clr(id rancher.ColorId) TextFn {
	return func(ts *rancher.TextStyle) {
		ts.Color = rancher.Some(id)
	}
}

func Sz(h f32) TextFn {
	return func(ts *rancher.TextStyle) {
		ts.Size = h
	}
}

func Font(id rancher.FontId) TextFn {
	return func(ts *rancher.TextStyle) {
		ts.Font = rancher.Some(id)
	}
}

func TPad(id rancher.PadId) TextFn {
	return func(ts *rancher.TextStyle) {
		ts.Pad = rancher.Some(id)
	}
}

func Spacing(v f32) TextFn {
	return func(ts *rancher.TextStyle) {
		ts.Spacing = v
	}
}

func TCompose(fns ...TextFn) TextFn {
	return func(ts *rancher.TextStyle) {
		for _, fn := range fns {
			fn(ts)
		}
	}
}
