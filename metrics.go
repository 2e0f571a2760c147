package rancher

import (
	"fmt"
	"os"

	"github.com/dboslee/lru"
	"github.com/go-text/typesetting/font"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"
)

// Metrics measures text for layout. Shaping proper is the rasterizer's business; layout
// only needs advances and line heights.
type Metrics interface {
	Advance(face FontFace, size f32, r rune) f32
	LineHeight(face FontFace, size f32) f32
}

// CellMetrics treats every glyph as one or two cells, the way a terminal does. With a
// zero Cell the cell is derived from the text size.
type CellMetrics struct {
	Cell Vec
}

func (m CellMetrics) cell(size f32) Vec {
	if m.Cell.X > 0 && m.Cell.Y > 0 {
		return m.Cell
	}
	return Vec{X: size * 0.6, Y: size * 1.25}
}

func (m CellMetrics) Advance(_ FontFace, size f32, r rune) f32 {
	return f32(runewidth.RuneWidth(r)) * m.cell(size).X
}

func (m CellMetrics) LineHeight(_ FontFace, size f32) f32 {
	return m.cell(size).Y
}

// TextExtent measures a multi-line string: the widest line and the total height.
func TextExtent(m Metrics, face FontFace, size, spacing f32, text string) Vec {
	lineHeight := m.LineHeight(face, size)
	var out, line Vec
	line.Y = lineHeight
	var glyphs int
	for _, r := range text {
		if r == '\n' {
			out.X = max(out.X, line.X)
			out.Y += line.Y
			line = Vec{Y: lineHeight}
			glyphs = 0
			continue
		}
		if glyphs > 0 {
			line.X += spacing
		}
		line.X += m.Advance(face, size, r)
		glyphs++
	}
	out.X = max(out.X, line.X)
	out.Y += line.Y
	return out
}

type parsedFace struct {
	face      *font.Face
	invUPM    f32
	ascender  f32
	descender f32
	lineGap   f32
}

// FaceMetrics reads advances from real font files. Parsed faces are kept in an LRU;
// fonts that cannot be found or parsed are measured with Fallback.
type FaceMetrics struct {
	Registry *FontRegistry
	Fallback CellMetrics

	faces  *lru.Cache[FontFace, *parsedFace]
	failed map[FontFace]bool
}

func NewFaceMetrics(reg *FontRegistry) *FaceMetrics {
	return &FaceMetrics{
		Registry: reg,
		faces:    lru.New[FontFace, *parsedFace](),
		failed:   make(map[FontFace]bool),
	}
}

func parseFace(fpath string, index int) (*parsedFace, error) {
	ffile, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("open font: %w", err)
	}
	defer ffile.Close()

	faces, err := font.ParseTTC(ffile)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fpath, err)
	}
	if index < 0 || index >= len(faces) {
		return nil, fmt.Errorf("parse font %s: no face at index %d", fpath, index)
	}
	face := faces[index]
	pf := &parsedFace{face: face, invUPM: 1 / f32(face.Upem())}
	if ext, ok := face.FontHExtents(); ok {
		pf.ascender = ext.Ascender
		pf.descender = ext.Descender
		pf.lineGap = ext.LineGap
	}
	return pf, nil
}

// Face returns the parsed font for a sheet entry, or nil when it is unavailable.
func (m *FaceMetrics) Face(ff FontFace) *font.Face {
	if pf := m.lookup(ff); pf != nil {
		return pf.face
	}
	return nil
}

func (m *FaceMetrics) lookup(ff FontFace) *parsedFace {
	if pf, ok := m.faces.Get(ff); ok {
		return pf
	}
	if m.failed[ff] {
		return nil
	}
	fpath, index, ok := m.Registry.Locate(ff)
	if !ok {
		m.failed[ff] = true
		Log().Debug("font not found", zap.String("family", ff.Family), zap.Stringer("mode", ff.Mode))
		return nil
	}
	pf, err := parseFace(fpath, index)
	if err != nil {
		m.failed[ff] = true
		Log().Warn("font unavailable", zap.String("family", ff.Family), zap.Error(err))
		return nil
	}
	m.faces.Set(ff, pf)
	return pf
}

func (m *FaceMetrics) Advance(ff FontFace, size f32, r rune) f32 {
	pf := m.lookup(ff)
	if pf == nil {
		return m.Fallback.Advance(ff, size, r)
	}
	gid, ok := pf.face.NominalGlyph(r)
	if !ok {
		return m.Fallback.Advance(ff, size, r)
	}
	return pf.face.HorizontalAdvance(gid) * pf.invUPM * size
}

func (m *FaceMetrics) LineHeight(ff FontFace, size f32) f32 {
	pf := m.lookup(ff)
	if pf == nil {
		return m.Fallback.LineHeight(ff, size)
	}
	return (pf.ascender - pf.descender + pf.lineGap) * pf.invUPM * size
}

// Ascent is the distance from the top of a line to its baseline.
func (m *FaceMetrics) Ascent(ff FontFace, size f32) f32 {
	pf := m.lookup(ff)
	if pf == nil {
		return m.Fallback.LineHeight(ff, size) * 0.8
	}
	return pf.ascender * pf.invUPM * size
}

// Outline returns the glyph outline in font units plus the factor that scales it to
// size. ok is false when the font or the glyph is missing.
func (m *FaceMetrics) Outline(ff FontFace, size f32, r rune) (out font.GlyphOutline, scale f32, ok bool) {
	pf := m.lookup(ff)
	if pf == nil {
		return out, 0, false
	}
	gid, found := pf.face.NominalGlyph(r)
	if !found {
		return out, 0, false
	}
	switch v := pf.face.GlyphData(gid).(type) {
	case font.GlyphOutline:
		out = v
	case font.GlyphSVG:
		out = v.Outline
	default:
		return out, 0, false
	}
	return out, pf.invUPM * size, true
}
