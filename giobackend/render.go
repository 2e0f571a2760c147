package giobackend

import (
	"fmt"
	"image"
	"image/color"
	"unicode"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/dboslee/lru"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"go.uber.org/zap"

	"go.hasen.dev/rancher"
)

// Glyphs is the part of font metrics needed to draw text as outlines. *rancher.FaceMetrics
// provides it.
type Glyphs interface {
	rancher.Metrics
	Ascent(ff rancher.FontFace, size float32) float32
	Outline(ff rancher.FontFace, size float32, r rune) (font.GlyphOutline, float32, bool)
}

// Renderer turns surfaces into a gio macro. Text is only drawn when Metrics also
// implements Glyphs.
type Renderer struct {
	Metrics rancher.Metrics
	Images  *rancher.ImageCache

	glyphs   *lru.Cache[glyphKey, glyphPath]
	imageOps *lru.Cache[*image.RGBA, paint.ImageOp]
	broken   map[rancher.Src]bool
	logger   *zap.Logger
}

func NewRenderer(metrics rancher.Metrics, images *rancher.ImageCache) *Renderer {
	if metrics == nil {
		metrics = rancher.CellMetrics{}
	}
	return &Renderer{
		Metrics:  metrics,
		Images:   images,
		glyphs:   lru.New[glyphKey, glyphPath](),
		imageOps: lru.New[*image.RGBA, paint.ImageOp](),
		broken:   make(map[rancher.Src]bool),
		logger:   rancher.Log().Named("gio"),
	}
}

func f32Point(v rancher.Vec) f32.Point {
	return f32.Pt(v.X, v.Y)
}

func imgPoint(v rancher.Vec) image.Point {
	return image.Point{X: int(v.X), Y: int(v.Y)}
}

func imgRect(r rancher.Rect) image.Rectangle {
	return image.Rectangle{Min: imgPoint(r.Origin), Max: imgPoint(r.End())}
}

// Render records the surfaces into a macro. Coordinates are in device independent
// units; dpi scales them to pixels.
func (r *Renderer) Render(surfaces []rancher.Surface, dpi float32) op.CallOp {
	ops := new(op.Ops)
	macro := op.Record(ops)

	// support hidpi
	op.Affine(f32.Affine2D{}.Scale(f32.Pt(0, 0), f32.Pt(dpi, dpi))).Add(ops)

	var clipStack []clip.Stack
	for _, s := range surfaces {
		switch s.Kind {
		case rancher.SurfaceClipPush:
			clipStack = append(clipStack, clip.Rect(imgRect(s.Rect)).Push(ops))
		case rancher.SurfaceClipPop:
			if len(clipStack) == 0 {
				panic("surface rendering: uneven push/pop clip stack")
			}
			clipStack[len(clipStack)-1].Pop()
			clipStack = clipStack[:len(clipStack)-1]
		case rancher.SurfaceFill, rancher.SurfaceCaret:
			rotated(ops, s, func() {
				fillRect(ops, s.Rect, rancher.HSLAColor(s.Color))
			})
		case rancher.SurfaceShadow:
			img, origin := shadowPlacement(s)
			r.drawImage(ops, img, origin, 1)
		case rancher.SurfaceImage:
			img := r.loadImage(s.Source)
			if img == nil || img.Bounds().Dy() == 0 {
				continue
			}
			// the height decides the scale, like with glyphs
			scale := s.Rect.Size.Y / float32(img.Bounds().Dy())
			rotated(ops, s, func() {
				r.drawImage(ops, img, s.Rect.Origin, scale)
			})
		case rancher.SurfaceText:
			r.drawText(ops, s)
		}
	}

	if len(clipStack) != 0 {
		panic(fmt.Sprintf("uneven clip stack %d", len(clipStack)))
	}
	return macro.Stop()
}

func rotated(ops *op.Ops, s rancher.Surface, draw func()) {
	if s.Angle == 0 {
		draw()
		return
	}
	center := s.Rect.Origin.Add(s.Rect.Size.Scale(0.5))
	stack := op.Affine(f32.Affine2D{}.Rotate(f32Point(center), s.Angle)).Push(ops)
	draw()
	stack.Pop()
}

func fillRect(ops *op.Ops, rect rancher.Rect, c color.NRGBA) {
	stack := clip.Rect(imgRect(rect)).Push(ops)
	paint.ColorOp{Color: c}.Add(ops)
	paint.PaintOp{}.Add(ops)
	stack.Pop()
}

// -----------------------------------------------------------------------------
//      Images
// -----------------------------------------------------------------------------

func (r *Renderer) loadImage(src rancher.Src) *image.RGBA {
	if r.Images == nil || r.broken[src] {
		return nil
	}
	img, err := r.Images.Load(src)
	if err != nil {
		r.broken[src] = true
		r.logger.Warn("image load failed", zap.String("src", src.Path), zap.Error(err))
		return nil
	}
	return img
}

func (r *Renderer) drawImage(ops *op.Ops, img *image.RGBA, origin rancher.Vec, scale float32) {
	imgOp, ok := r.imageOps.Get(img)
	if !ok {
		imgOp = paint.NewImageOp(img)
		r.imageOps.Set(img, imgOp)
	}
	var affine f32.Affine2D
	affine = affine.Scale(f32.Pt(0, 0), f32.Pt(scale, scale))
	affine = affine.Offset(f32Point(origin))
	stack := op.Affine(affine).Push(ops)
	imgOp.Add(ops)
	paint.PaintOp{}.Add(ops)
	stack.Pop()
}

// -----------------------------------------------------------------------------
//      Text Rendering
// -----------------------------------------------------------------------------

type glyphKey struct {
	Face rancher.FontFace
	Rune rune
}

// glyphPath is an outline in font units plus the factor that scales it to size 1.
type glyphPath struct {
	spec clip.PathSpec
	unit float32
	ok   bool
}

func (r *Renderer) glyphPath(g Glyphs, ff rancher.FontFace, ch rune) glyphPath {
	key := glyphKey{Face: ff, Rune: ch}
	if cached, ok := r.glyphs.Get(key); ok {
		return cached
	}
	outline, unit, ok := g.Outline(ff, 1, ch)
	gp := glyphPath{unit: unit, ok: ok && len(outline.Segments) > 0}
	if gp.ok {
		gp.spec = outlinePath(outline)
	}
	r.glyphs.Set(key, gp)
	return gp
}

func outlinePath(outline font.GlyphOutline) clip.PathSpec {
	ops := new(op.Ops)
	var path clip.Path
	path.Begin(ops)
	for _, segment := range outline.Segments {
		switch segment.Op {
		case ot.SegmentOpMoveTo:
			path.MoveTo(f32.Point(segment.Args[0]))
		case ot.SegmentOpLineTo:
			path.LineTo(f32.Point(segment.Args[0]))
		case ot.SegmentOpQuadTo:
			path.QuadTo(f32.Point(segment.Args[0]), f32.Point(segment.Args[1]))
		case ot.SegmentOpCubeTo:
			path.CubeTo(f32.Point(segment.Args[0]), f32.Point(segment.Args[1]), f32.Point(segment.Args[2]))
		}
	}
	return path.End()
}

// drawText lays glyphs out the same way the measure pass counts them: free text advances
// by the glyph advance plus spacing, input text by whole cells.
func (r *Renderer) drawText(ops *op.Ops, s rancher.Surface) {
	g, ok := r.Metrics.(Glyphs)
	if !ok {
		return
	}
	ts := s.TextStyle
	lineHeight := r.Metrics.LineHeight(ts.Font, ts.Size)
	if s.Cell.Y > 0 {
		lineHeight = s.Cell.Y
	}
	ascent := g.Ascent(ts.Font, ts.Size)
	c := rancher.HSLAColor(s.Color)

	origin := s.Rect.Origin.Add(ts.Pad.Start())
	pen := origin
	for _, ch := range s.Text {
		if ch == '\n' {
			pen = rancher.Vec{X: origin.X, Y: pen.Y + lineHeight}
			continue
		}
		advance := s.Cell.X
		if advance <= 0 {
			advance = r.Metrics.Advance(ts.Font, ts.Size, ch) + ts.Spacing
		}
		if !unicode.IsSpace(ch) {
			r.drawGlyph(ops, g, ts, ch, rancher.Vec{X: pen.X, Y: pen.Y + ascent}, c)
		}
		pen.X += advance
	}
}

func (r *Renderer) drawGlyph(ops *op.Ops, g Glyphs, ts rancher.ResolvedTextStyle, ch rune, baseline rancher.Vec, c color.NRGBA) {
	gp := r.glyphPath(g, ts.Font, ch)
	if !gp.ok {
		return
	}
	scale := gp.unit * ts.Size

	// font units grow upwards
	var affine f32.Affine2D
	affine = affine.Scale(f32.Pt(0, 0), f32.Pt(scale, -scale))
	affine = affine.Offset(f32Point(baseline))

	stack := op.Affine(affine).Push(ops)
	shape := clip.Outline{Path: gp.spec}.Op().Push(ops)
	paint.ColorOp{Color: c}.Add(ops)
	paint.PaintOp{}.Add(ops)
	shape.Pop()
	stack.Pop()
}
