package rancher

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/fontscan"
	"go.hasen.dev/generic"
	"go.uber.org/zap"
)

var Monospace = []string{"Noto Sans Mono", "Menlo", "Terminus", "Consolas", "Lucida Console"}

type fontKey struct {
	family string
	mode   FontMode
}

type fontLocation struct {
	path  string
	index int // face index within the file
}

// FontRegistry maps family names to font files, so a sheet entry can name a family
// without a path. Only the file headers are read while scanning.
type FontRegistry struct {
	lock  sync.RWMutex
	faces map[fontKey]fontLocation
}

func NewFontRegistry() *FontRegistry {
	return &FontRegistry{faces: make(map[fontKey]fontLocation)}
}

func modeOf(aspect font.Aspect) FontMode {
	bold := aspect.Weight >= font.WeightBold
	italic := aspect.Style == font.StyleItalic
	switch {
	case bold && italic:
		return FontBoldItalic
	case bold:
		return FontBold
	case italic:
		return FontItalic
	}
	return FontNormal
}

// AddFile indexes every face in a font file and returns how many it found.
func (r *FontRegistry) AddFile(fpath string) int {
	ffile, err := os.Open(fpath)
	if err != nil {
		Log().Debug("font file", zap.String("path", fpath), zap.Error(err))
		return 0
	}
	defer ffile.Close()

	loaders, err := opentype.NewLoaders(ffile)
	if err != nil {
		Log().Debug("font scan", zap.String("path", fpath), zap.Error(err))
		return 0
	}

	var buf []byte
	for idx := range loaders {
		var desc font.Description
		desc, buf = font.Describe(loaders[idx], buf)
		key := fontKey{family: strings.ToLower(desc.Family), mode: modeOf(desc.Aspect)}
		generic.WithWriteLock(&r.lock, func() {
			// first file wins; system dirs are scanned after user dirs
			if _, exists := r.faces[key]; !exists {
				r.faces[key] = fontLocation{path: fpath, index: idx}
			}
		})
	}
	return len(loaders)
}

var fontExtensions = []string{".ttf", ".otf", ".ttc", ".otc"}

func (r *FontRegistry) AddDirs(dirpaths ...string) {
	for _, dirpath := range dirpaths {
		filepath.WalkDir(dirpath, func(fpath string, entry fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(fpath))
			for _, valid := range fontExtensions {
				if ext == valid {
					r.AddFile(fpath)
					break
				}
			}
			return nil
		})
	}
}

type printfLogger struct {
	*zap.SugaredLogger
}

func (l printfLogger) Printf(format string, args ...any) {
	l.Debugf(format, args...)
}

// AddSystemDirs scans the platform font directories. It takes a noticeable moment on
// most systems, so backends do it once at startup.
func (r *FontRegistry) AddSystemDirs() {
	start := time.Now()
	dirs, err := fontscan.DefaultFontDirectories(printfLogger{Log().Sugar()})
	if err != nil {
		Log().Warn("system font directories", zap.Error(err))
		return
	}
	r.AddDirs(dirs...)
	Log().Debug("system fonts scanned", zap.Int("faces", r.Len()), zap.Duration("took", time.Since(start)))
}

func (r *FontRegistry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.faces)
}

// Locate finds the file for a sheet font. An explicit path wins; otherwise the family is
// looked up with the requested mode first, then in normal mode.
func (r *FontRegistry) Locate(face FontFace) (string, int, bool) {
	if face.Path != "" {
		return face.Path, face.Index, true
	}
	if r == nil {
		return "", 0, false
	}
	r.lock.RLock()
	defer r.lock.RUnlock()

	family := strings.ToLower(face.Family)
	if loc, ok := r.faces[fontKey{family, face.Mode}]; ok {
		return loc.path, loc.index, true
	}
	if loc, ok := r.faces[fontKey{family, FontNormal}]; ok {
		return loc.path, loc.index, true
	}
	return "", 0, false
}
