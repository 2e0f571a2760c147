package rancher

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSheet = `
colors = [[220, 20, 95, 1], [0, 0, 20, 1]]
pads = [[1, 2, 3, 4]]

[default]
color = [0, 0, 10, 1]
pad = [1, 1, 1, 1]
font = { family = "Noto Sans Mono" }

[[fonts]]
family = "Noto Sans"
path = "/usr/share/fonts/noto/NotoSans-Bold.ttf"
mode = "bold"
`

func TestParseSheet(t *testing.T) {
	s, err := ParseSheet([]byte(testSheet))
	require.NoError(t, err)

	require.Len(t, s.Colors, 2)
	assert.Equal(t, Color{0, 0, 20, 1}, s.Colors[1])
	require.Len(t, s.Pads, 1)
	assert.Equal(t, Pad{Top: 1, Right: 2, Bottom: 3, Left: 4}, s.Pads[0])
	assert.Equal(t, PadAll(1), s.Default.Pad)

	bold := s.Font(Some(FontId(0)))
	assert.Equal(t, "Noto Sans", bold.Family)
	assert.Equal(t, FontBold, bold.Mode)
	assert.Equal(t, "bold", bold.Mode.String())

	// unknown and unset ids fall back to the defaults
	assert.Equal(t, s.Default.Color, s.Color(Some(ColorId(7))))
	assert.Equal(t, s.Default.Pad, s.Pad(Opt[PadId]{}))
	assert.Equal(t, "Noto Sans Mono", s.Font(Opt[FontId]{}).Family)

	ts := s.ResolveText(TextStyle{Color: Some(ColorId(0)), Spacing: 2})
	assert.Equal(t, s.Colors[0], ts.Color)
	assert.Equal(t, f32(DefaultTextSize), ts.Size)
	assert.Equal(t, f32(2), ts.Spacing)
}

func TestParseSheetRejectsUnknownKeys(t *testing.T) {
	_, err := ParseSheet([]byte("colour = [[1, 2, 3, 4]]"))
	assert.Error(t, err)
	_, err = ParseSheet([]byte("colors = 5"))
	assert.Error(t, err)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
backend = "term"
font_dirs = ["/opt/fonts"]

[window]
title = "demo"

[frame]
fps = 30

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, "term", cfg.Backend)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width, "unset keys keep their defaults")
	assert.Equal(t, []string{"/opt/fonts"}, cfg.FontDirs)
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
	assert.Equal(t, 600*time.Millisecond, cfg.BlinkInterval())
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = ParseConfig([]byte(`backend = "sdl"`))
	assert.ErrorContains(t, err, "unknown backend")

	_, err = ParseConfig([]byte(`[window]
titel = "typo"`))
	assert.Error(t, err)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestNewLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "out.log")
	l, err := NewLogger(LogConfig{Level: "nonsense", File: logPath})
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	SetLogger(nil)
	assert.NotNil(t, Log())
}

func TestWatchSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.toml")
	require.NoError(t, os.WriteFile(path, []byte(`colors = [[1, 1, 1, 1]]`), 0o644))

	w, err := WatchSheet(path)
	require.NoError(t, err)
	defer w.Close()

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	// replace the file in one step, the way editors save
	tmp := filepath.Join(dir, "sheet.toml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`colors = [[1, 1, 1, 1], [2, 2, 2, 1]]`), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case s := <-w.Updates:
		require.NotNil(t, s)
		assert.Len(t, s.Colors, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("no sheet update")
	}
}

func TestWatchSheetCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.toml")
	require.NoError(t, os.WriteFile(path, []byte(testSheet), 0o644))

	w, err := WatchSheet(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NotPanics(t, func() { assert.NoError(t, w.Close()) })
}
