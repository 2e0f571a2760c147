package rancher

import (
	"cmp"
	"slices"
	"time"

	g "go.hasen.dev/generic"
	"go.uber.org/zap"
)

// Engine runs frames over one element tree. It is not safe for concurrent use: the
// driver pools atoms and runs frames from one goroutine, and anything produced on other
// goroutines (sheet reloads) reaches it through channels drained between frames.
type Engine struct {
	Root   *Element
	Io     *Io
	Bus    *SignalBus
	Layout Layout

	logger       *zap.Logger
	sheetUpdates <-chan *Sheet

	surfaces   []Surface
	signals    []Signal
	hash       uint64
	frameStart time.Time
	frames     uint64
	closed     bool
}

type Option func(*Engine)

func WithSheet(s *Sheet) Option {
	return func(en *Engine) {
		en.Layout.Sheet = s
	}
}

func WithMetrics(m Metrics) Option {
	return func(en *Engine) {
		en.Layout.Metrics = m
	}
}

func WithImages(r ImageResolver) Option {
	return func(en *Engine) {
		en.Layout.Images = r
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(en *Engine) {
		en.logger = l
	}
}

// WithSheetUpdates hands the engine a channel of replacement sheets, usually
// SheetWatcher.Updates.
func WithSheetUpdates(updates <-chan *Sheet) Option {
	return func(en *Engine) {
		en.sheetUpdates = updates
	}
}

func WithWindowSize(size Vec) Option {
	return func(en *Engine) {
		en.Io.WindowSize = size
	}
}

func NewEngine(root *Element, opts ...Option) *Engine {
	en := &Engine{
		Root:   root,
		Io:     NewIo(Vec{}),
		Bus:    NewSignalBus(),
		logger: Log(),
	}
	for _, opt := range opts {
		opt(en)
	}
	if en.Layout.Sheet == nil {
		en.Layout.Sheet = DefaultSheet()
	}
	if en.Layout.Metrics == nil {
		en.Layout.Metrics = CellMetrics{}
	}
	en.Layout.Io = en.Io
	en.logger = en.logger.Named("engine")
	return en
}

// Pool feeds one input atom into the frame being collected.
func (en *Engine) Pool(a Atom) {
	en.Io.Pool(a)
}

type FrameOutput struct {
	// valid until the next RunFrame
	Surfaces []Surface

	Changed            bool // surfaces differ from the previous frame
	NextFrameRequested bool
	CloseRequested     bool

	// signals posted during the IO walk, ordered by tag, including ones a listener
	// consumed with Take
	Signals    []Signal
	Collisions int

	LayoutTime time.Duration
}

// RunFrame runs one full frame over the input pooled since the last one.
func (en *Engine) RunFrame() FrameOutput {
	now := time.Now()
	if !en.frameStart.IsZero() {
		en.Io.Delta = now.Sub(en.frameStart)
	}
	en.frameStart = now
	en.Io.Now = now
	en.frames++

	en.drainSheets()

	var out FrameOutput
	out.CloseRequested = en.Io.CloseRequested()

	DispatchIO(en.Root, en.Io, en.Bus)

	// snapshot before delivery, listeners may Take messages
	g.ResetSlice(&en.signals)
	for tag, msg := range en.Bus.All() {
		g.Append(&en.signals, Signal{Tag: tag, Msg: msg})
	}
	slices.SortFunc(en.signals, func(a, b Signal) int {
		return cmp.Or(
			cmp.Compare(a.Tag.Kind, b.Tag.Kind),
			cmp.Compare(a.Tag.A, b.Tag.A),
			cmp.Compare(a.Tag.B, b.Tag.B),
		)
	})
	out.Signals = en.signals
	out.Collisions = en.Bus.Collisions()
	if out.Collisions > 0 {
		en.logger.Debug("signal collisions", zap.Int("count", out.Collisions), zap.Uint64("frame", en.frames))
	}

	DeliverSignals(en.Root, en.Bus)

	layoutStart := time.Now()
	en.Layout.Measure(en.Root, en.Io.WindowSize)
	en.Layout.Arrange(en.Root, Vec{})
	out.LayoutTime = time.Since(layoutStart)

	g.ResetSlice(&en.surfaces)
	en.surfaces = AppendSurfaces(en.surfaces, en.Root, en.Layout.Sheet)
	out.Surfaces = en.surfaces

	hash := SurfacesHash(en.surfaces)
	out.Changed = hash != en.hash
	en.hash = hash
	out.NextFrameRequested = en.Io.FrameRequested() || out.Changed

	en.Io.Clean()
	en.Bus.Reset()
	return out
}

func (en *Engine) drainSheets() {
	if en.sheetUpdates == nil {
		return
	}
	for {
		select {
		case sheet, ok := <-en.sheetUpdates:
			if !ok {
				en.sheetUpdates = nil
				return
			}
			en.Layout.Sheet = sheet
			en.logger.Info("sheet replaced",
				zap.Int("fonts", len(sheet.Fonts)),
				zap.Int("colors", len(sheet.Colors)),
				zap.Int("pads", len(sheet.Pads)))
		default:
			return
		}
	}
}

// Close destroys every behavior in the tree. The engine must not run frames afterwards.
func (en *Engine) Close() {
	if en.closed {
		return
	}
	en.closed = true
	en.Root.Destroy()
	en.logger.Debug("engine closed", zap.Uint64("frames", en.frames))
}
