package rancher

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// Sheet is the style resolution table. Style records only carry small ids into it.
type Sheet struct {
	Fonts  []FontFace
	Colors []Color
	Pads   []Pad

	Default struct {
		Font  FontFace
		Color Color
		Pad   Pad
	}
}

func DefaultSheet() *Sheet {
	s := new(Sheet)
	s.Default.Font = FontFace{Family: "Noto Sans Mono"}
	s.Default.Color = Color{0, 0, 10, 1}
	return s
}

// Font resolves an id; unset and unknown ids both give the default.
func (s *Sheet) Font(id Opt[FontId]) FontFace {
	if v, ok := id.Get(); ok && int(v) < len(s.Fonts) {
		return s.Fonts[v]
	}
	return s.Default.Font
}

func (s *Sheet) Color(id Opt[ColorId]) Color {
	if v, ok := id.Get(); ok && int(v) < len(s.Colors) {
		return s.Colors[v]
	}
	return s.Default.Color
}

func (s *Sheet) Pad(id Opt[PadId]) Pad {
	if v, ok := id.Get(); ok && int(v) < len(s.Pads) {
		return s.Pads[v]
	}
	return s.Default.Pad
}

func (s *Sheet) Resolve(st Style) ResolvedStyle {
	return ResolvedStyle{
		Pad:   s.Pad(st.Pad),
		Color: s.Color(st.Color),
	}
}

func (s *Sheet) ResolveText(ts TextStyle) ResolvedTextStyle {
	return ResolvedTextStyle{
		Font:    s.Font(ts.Font),
		Color:   s.Color(ts.Color),
		Pad:     s.Pad(ts.Pad),
		Size:    ts.SizeOr(DefaultTextSize),
		Spacing: ts.Spacing,
	}
}

// AddFont appends a font entry and returns its id.
func (s *Sheet) AddFont(f FontFace) FontId {
	s.Fonts = append(s.Fonts, f)
	return FontId(len(s.Fonts) - 1)
}

func (s *Sheet) AddColor(c Color) ColorId {
	s.Colors = append(s.Colors, c)
	return ColorId(len(s.Colors) - 1)
}

func (s *Sheet) AddPad(p Pad) PadId {
	s.Pads = append(s.Pads, p)
	return PadId(len(s.Pads) - 1)
}

// -----------------------------------------------------------------------------
//      Sheet files
// -----------------------------------------------------------------------------
// A sheet file is toml. Ids are positions in the arrays:
//
//	colors = [[220, 20, 95, 1], [0, 0, 20, 1]]
//	pads = [[4, 8, 4, 8]] # top right bottom left
//
//	[default]
//	color = [0, 0, 10, 1]
//	pad = [0, 0, 0, 0]
//	font = { family = "Noto Sans Mono" }
//
//	[[fonts]]
//	family = "Noto Sans"
//	path = "/usr/share/fonts/noto/NotoSans-Bold.ttf"
//	mode = "bold"

type sheetFontFile struct {
	Family string `toml:"family"`
	Path   string `toml:"path"`
	Index  int    `toml:"index"`
	Mode   string `toml:"mode"`
}

type sheetFile struct {
	Default struct {
		Font  *sheetFontFile `toml:"font"`
		Color *[4]f32        `toml:"color"`
		Pad   *[4]f32        `toml:"pad"`
	} `toml:"default"`
	Fonts  []sheetFontFile `toml:"fonts"`
	Colors [][4]f32        `toml:"colors"`
	Pads   [][4]f32        `toml:"pads"`
}

func (f sheetFontFile) face() FontFace {
	return FontFace{
		Family: f.Family,
		Path:   f.Path,
		Index:  f.Index,
		Mode:   ParseFontMode(f.Mode),
	}
}

func padFromArray(v [4]f32) Pad {
	return Pad{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}
}

func ParseSheet(data []byte) (*Sheet, error) {
	var file sheetFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}

	s := DefaultSheet()
	if file.Default.Font != nil {
		s.Default.Font = file.Default.Font.face()
	}
	if file.Default.Color != nil {
		s.Default.Color = *file.Default.Color
	}
	if file.Default.Pad != nil {
		s.Default.Pad = padFromArray(*file.Default.Pad)
	}
	for _, f := range file.Fonts {
		s.AddFont(f.face())
	}
	for _, c := range file.Colors {
		s.AddColor(c)
	}
	for _, p := range file.Pads {
		s.AddPad(padFromArray(p))
	}
	return s, nil
}

func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}
	return ParseSheet(data)
}

// SheetWatcher reloads a sheet file whenever it changes on disk. New sheets are handed
// over through Updates; the engine drains it between frames so the tree is never
// touched from the watcher goroutine.
type SheetWatcher struct {
	Updates <-chan *Sheet

	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func WatchSheet(path string) (*SheetWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch sheet: %w", err)
	}
	// watch the directory; editors often replace the file instead of writing to it
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch sheet: %w", err)
	}

	updates := make(chan *Sheet, 1)
	w := &SheetWatcher{
		Updates: updates,
		path:    filepath.Clean(path),
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go w.loop(updates)
	return w, nil
}

func (w *SheetWatcher) loop(updates chan *Sheet) {
	defer close(updates)
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			Log().Warn("sheet watcher", zap.Error(err))
		case e, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			sheet, err := LoadSheet(w.path)
			if err != nil {
				Log().Warn("sheet reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			// keep only the newest sheet if the engine has not caught up
			select {
			case <-updates:
			default:
			}
			updates <- sheet
			Log().Debug("sheet reloaded", zap.String("path", w.path))
		}
	}
}

// Close stops the watcher. Calling it again is a no-op.
func (w *SheetWatcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.watcher.Close()
}
