package widgets

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cli/browser"
	g "go.hasen.dev/generic"
	"go.uber.org/zap"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

// DirectoryInput watches the text input in its first child and describes the typed
// path: the part that exists and the part that does not, plus sub directories matching
// the last path segment. Tab completes the first suggestion; F2 opens an existing
// directory in the file browser.
type DirectoryInput struct {
	Valid   TextStyle
	Invalid TextStyle
	Limit   int // max suggestions

	pathRead  string
	lastRead  time.Time
	exists    bool
	validUpTo int // the point after which the path is invalid

	parent      string
	suggestions []string
	now         time.Time
}

var openFile = browser.OpenFile

func (d *DirectoryInput) input(e *Element) *Input {
	kids := e.Children()
	if len(kids) == 0 {
		return nil
	}
	return kids[0].Input()
}

func (d *DirectoryInput) readStat(fpath string, now time.Time) {
	d.pathRead = fpath
	d.lastRead = now
	s, err := os.Stat(fpath)
	d.exists = err == nil && s.IsDir()
	d.validUpTo = len(fpath)
	if !d.exists {
		d.validUpTo = 0
		// find the longest parent that exists
		parent := fpath
		for {
			parent = strings.TrimSuffix(parent, string(filepath.Separator))
			var rest string
			parent, rest = filepath.Split(parent)
			if rest == "" || parent == "" {
				break
			}
			if _, err := os.Stat(parent); err == nil {
				d.validUpTo = len(parent)
				break
			}
		}
	}
	d.suggest(fpath)
}

func (d *DirectoryInput) suggest(fpath string) {
	g.ResetSlice(&d.suggestions)
	d.parent = appendSlash(filepath.Dir(fpath))
	if strings.HasSuffix(fpath, string(filepath.Separator)) {
		d.parent = fpath
	}
	filter := strings.ToLower(strings.TrimPrefix(fpath, d.parent))
	entries, err := os.ReadDir(d.parent)
	if err != nil {
		return
	}
	limit := d.Limit
	if limit <= 0 {
		limit = 8
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		// hidden directories only when asked for explicitly
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(filter, ".") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), filter) {
			g.Append(&d.suggestions, name)
		}
		if len(d.suggestions) >= limit {
			break
		}
	}
}

func appendSlash(dpath string) string {
	if dpath != "" && !strings.HasSuffix(dpath, string(filepath.Separator)) {
		return dpath + string(filepath.Separator)
	}
	return dpath
}

func (d *DirectoryInput) OnIO(e *Element, io *Io) (Signal, bool) {
	d.now = io.Now
	in := d.input(e)
	if in == nil || in.State != InputActive {
		return Signal{}, false
	}
	for _, key := range io.Input.Pressed() {
		switch key {
		case KeyTab:
			if len(d.suggestions) > 0 {
				in.SetContent(appendSlash(d.parent + d.suggestions[0]))
			}
		case KeyF2:
			if d.exists {
				if err := openFile(d.pathRead); err != nil {
					Log().Warn("open directory", zap.String("path", d.pathRead), zap.Error(err))
				}
			}
		}
	}
	return Signal{}, false
}

// OnSignal runs after the input took this frame's keys, so the path row never lags.
func (d *DirectoryInput) OnSignal(e *Element, bus *SignalBus) {
	in := d.input(e)
	if in == nil {
		return
	}
	text := in.Content()
	const threshold = 2 * time.Second
	if text != d.pathRead || d.lastRead.IsZero() {
		d.readStat(text, d.now)
	} else if !d.exists && d.now.Sub(d.lastRead) > threshold {
		// the path may have been created meanwhile
		d.readStat(text, d.now)
	}
	d.refresh(e)
}

// refresh rewrites the path row (second child) and the suggestion column (third child).
func (d *DirectoryInput) refresh(e *Element) {
	kids := e.Children()
	if len(kids) < 3 {
		return
	}
	valid := d.pathRead[:min(d.validUpTo, len(d.pathRead))]
	invalid := d.pathRead[len(valid):]
	row := kids[1].Children()
	if len(row) == 2 {
		row[0].Text().Text = valid
		row[1].Text().Text = invalid
	}

	list := kids[2].Frame()
	list.Clear()
	for _, name := range d.suggestions {
		list.Append(NewText(d.parent+name, d.Valid))
	}
}

func (d *DirectoryInput) Destroy() {}

func (d *DirectoryInput) Clone() Behavior {
	c := *d
	c.suggestions = append([]string(nil), d.suggestions...)
	return &c
}

// NewDirectoryInput builds the input, the path row and the suggestion list.
func NewDirectoryInput(style TextStyle, valid, invalid TextStyle, content string, ti *TextInput) Element {
	d := &DirectoryInput{Valid: valid, Invalid: invalid}
	e := tw.Box([]tw.FrameFn{tw.Column, tw.Gap(4)},
		TextInputElement(style, content, ti),
		tw.Box([]tw.FrameFn{tw.Row},
			NewText("", valid),
			NewText("", invalid),
		),
		tw.Box([]tw.FrameFn{tw.Column}),
	)
	e.Listener = Stateful(d)
	return e
}
