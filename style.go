package rancher

// style records never hold concrete values for fonts, colors or padding; they point
// into the sheet so a style can be swapped globally without touching the tree.

type FontId uint16
type ColorId uint16
type PadId uint16

// Opt is an explicit "maybe": an unset Opt means "use the sheet default".
type Opt[T any] struct {
	Val T
	Ok  bool
}

func Some[T any](v T) Opt[T] {
	return Opt[T]{Val: v, Ok: true}
}

func (o Opt[T]) Get() (T, bool) {
	return o.Val, o.Ok
}

type Style struct {
	Pad   Opt[PadId]
	Color Opt[ColorId]
}

type TextStyle struct {
	Font    Opt[FontId]
	Color   Opt[ColorId]
	Pad     Opt[PadId]
	Size    f32
	Spacing f32 // extra advance between glyphs
}

const DefaultTextSize = 14

// SizeOr returns the text size, or fallback when unset.
func (ts TextStyle) SizeOr(fallback f32) f32 {
	if ts.Size > 0 {
		return ts.Size
	}
	return fallback
}

type FontMode uint8

const (
	FontNormal FontMode = iota
	FontBold
	FontItalic
	FontBoldItalic
)

var fontModeNames = [...]string{"normal", "bold", "italic", "bold-italic"}

func (m FontMode) String() string {
	if int(m) < len(fontModeNames) {
		return fontModeNames[m]
	}
	return "normal"
}

func ParseFontMode(s string) FontMode {
	for i, name := range fontModeNames {
		if name == s {
			return FontMode(i)
		}
	}
	return FontNormal
}

// FontFace is a font sheet entry. Path may name a font file (ttf/otf/ttc); Index picks the
// face inside a collection.
type FontFace struct {
	Family string
	Path   string
	Index  int
	Mode   FontMode
}

// ResolvedStyle is what a rasterizer needs to draw an element.
type ResolvedStyle struct {
	Pad   Pad
	Color Color
}

type ResolvedTextStyle struct {
	Font    FontFace
	Color   Color
	Pad     Pad
	Size    f32
	Spacing f32
}
