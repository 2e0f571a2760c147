package giobackend

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/dboslee/lru"
	"golang.org/x/image/vector"

	"go.hasen.dev/rancher"
)

type shadowKey struct {
	w, h int
	r    uint8 // radius in tenths
	a    uint8
}

var shadowCache = lru.New[shadowKey, *image.RGBA]()

// blurShadow returns a blurred rectangle of the given size. The image is larger than
// size by 2*radius on every side so the blur has room; the rectangle starts at
// (2*radius, 2*radius).
func blurShadow(size rancher.Vec, radius float32, alpha float32) *image.RGBA {
	key := shadowKey{
		w: int(size.X),
		h: int(size.Y),
		r: uint8(min(radius*10, 255)),
		a: uint8(alpha * 0xff),
	}
	if img, ok := shadowCache.Get(key); ok {
		return img
	}
	img := generateShadow(size, radius, alpha)
	shadowCache.Set(key, img)
	return img
}

func generateShadow(size rancher.Vec, radius float32, alpha float32) *image.RGBA {
	width := size.X + radius*4
	height := size.Y + radius*4
	rect := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	if rect.Bounds().Empty() {
		return rect
	}

	p := vector.NewRasterizer(int(width), int(height))
	p.DrawOp = draw.Over
	w := radius * 2
	n := radius * 2
	e := w + size.X
	s := n + size.Y
	p.MoveTo(w, n)
	p.LineTo(e, n)
	p.LineTo(e, s)
	p.LineTo(w, s)
	p.ClosePath()

	src := image.NewUniform(color.RGBA{0, 0, 0, uint8(alpha * 0xff)})
	p.Draw(rect, rect.Bounds(), src, image.Point{})

	if radius <= 0 {
		return rect
	}
	return blur.Gaussian(rect, float64(radius))
}

// shadowPlacement derives the blurred image and its top-left corner from a shadow
// surface. The surface rect is the element grown by its shadow extents; the blur radius
// is half the widest extent.
func shadowPlacement(s rancher.Surface) (*image.RGBA, rancher.Vec) {
	left, right, top, bottom := s.Shadow[0], s.Shadow[1], s.Shadow[2], s.Shadow[3]
	radius := max(left, right, top, bottom) / 2
	inner := rancher.Vec{
		X: s.Rect.Size.X - left - right,
		Y: s.Rect.Size.Y - top - bottom,
	}.Max(rancher.Vec{})
	// center the shape in the grown rect
	center := s.Rect.Origin.Add(s.Rect.Size.Scale(0.5))
	origin := center.Sub(inner.Scale(0.5)).Sub(rancher.Vec{X: radius * 2, Y: radius * 2})
	return blurShadow(inner, radius, s.Color[3]), origin
}
