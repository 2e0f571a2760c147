package giobackend

import (
	"image"
	"io"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"go.uber.org/zap"

	"go.hasen.dev/rancher"
)

// Driver feeds gio window events to an engine and paints its surfaces.
type Driver struct {
	Engine   *rancher.Engine
	Renderer *Renderer
	Config   rancher.Config

	window  *app.Window
	logger  *zap.Logger
	held    pointer.Buttons
	pxPerDp float32
	size    image.Point
	atoms   []rancher.Atom
	macro   op.CallOp
	painted bool
}

func NewDriver(en *rancher.Engine, r *Renderer, cfg rancher.Config) *Driver {
	window := new(app.Window)
	window.Option(app.Title(cfg.Window.Title))
	window.Option(app.Size(unit.Dp(cfg.Window.Width), unit.Dp(cfg.Window.Height)))
	return &Driver{
		Engine:   en,
		Renderer: r,
		Config:   cfg,
		window:   window,
		logger:   rancher.Log().Named("gio"),
	}
}

// Run takes over the main goroutine and exits the process when the window closes.
func (d *Driver) Run() {
	go func() {
		err := d.loop()
		d.Engine.Close()
		if err != nil {
			d.logger.Error("window closed", zap.Error(err))
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

// WatchImages asks the window for a frame whenever a cached image file changes.
func (d *Driver) WatchImages(images *rancher.ImageCache) {
	images.OnInvalidate(func(fpath string) {
		d.logger.Debug("image changed", zap.String("path", fpath))
		d.window.Invalidate()
	})
}

func (d *Driver) pool() {
	for _, a := range d.atoms {
		d.Engine.Pool(a)
	}
	d.atoms = d.atoms[:0]
}

func (d *Driver) loop() error {
	// hard limit fps so we don't eat up cpu resources during mouse movements, resize, etc
	frameTicker := time.NewTicker(d.Config.FrameInterval())
	defer frameTicker.Stop()

	// at least one frame per second so sheet reloads show up without input
	done := make(chan struct{})
	defer close(done)
	go every(time.Second, done, d.window.Invalidate)

	var lastEventTime time.Time
	tag := new(int) // just a thing that gio events can attach to
	for {
		switch e := d.window.Event().(type) {
		case app.DestroyEvent:
			// behaviors get one last frame to see the close
			d.Engine.Pool(rancher.WindowClose())
			d.Engine.RunFrame()
			return e.Err

		case app.FrameEvent:
			<-frameTicker.C
			now := time.Now()
			if d.frame(e, tag) {
				lastEventTime = now
			}
			if time.Since(lastEventTime) < time.Second {
				d.window.Invalidate()
			}
		}
	}
}

// every calls fn on each tick of interval until done is closed.
func every(interval time.Duration, done <-chan struct{}, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			fn()
		}
	}
}

// frame handles one gio frame event. It reports whether any input arrived.
func (d *Driver) frame(e app.FrameEvent, tag *int) bool {
	d.pxPerDp = e.Metric.PxPerDp
	gtx := app.NewContext(new(op.Ops), e)
	if e.Size != d.size {
		d.size = e.Size
		d.atoms = append(d.atoms, rancher.WindowResize(dpVec(layoutPoint(e.Size), d.pxPerDp)))
	}

	// to not receive events about mouse movement outside window
	clip.Rect{Max: e.Size}.Push(gtx.Ops)
	gtx.Execute(key.FocusCmd{Tag: tag})
	event.Op(gtx.Ops, tag)

	var eventCount int
	for {
		ev, ok := gtx.Event(
			pointer.Filter{
				Target:  tag,
				Kinds:   pointer.Press | pointer.Release | pointer.Move | pointer.Scroll | pointer.Drag | pointer.Enter | pointer.Leave | pointer.Cancel,
				ScrollX: pointer.ScrollRange{Min: -100, Max: 100},
				ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
			},
			key.Filter{
				Focus:    tag,
				Optional: key.ModSuper | key.ModAlt | key.ModCommand | key.ModShift | key.ModCtrl,
			},
			// receiving tab key requires a special additional filter!
			key.Filter{
				Focus:    tag,
				Optional: key.ModSuper | key.ModAlt | key.ModCommand | key.ModShift | key.ModCtrl,
				Name:     key.NameTab,
			},
			key.FocusFilter{Target: tag},
			transfer.TargetFilter{Target: tag, Type: "application/text"},
		)
		if !ok {
			break
		}
		eventCount++
		switch ev := ev.(type) {
		case pointer.Event:
			d.atoms, d.held = pointerAtoms(d.atoms, ev, d.pxPerDp, d.held)
		case key.Event:
			if a, ok := keyAtom(ev); ok {
				d.atoms = append(d.atoms, a)
			}
		case key.EditEvent:
			d.atoms = textAtoms(d.atoms, ev.Text)
		case transfer.DataEvent:
			// paste or a dropped text
			f := ev.Open()
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				d.logger.Warn("read transfer", zap.Error(err))
				continue
			}
			d.atoms = textAtoms(d.atoms, string(data))
		}
	}
	d.pool()

	out := d.Engine.RunFrame()
	if out.Changed || !d.painted {
		d.macro = d.Renderer.Render(out.Surfaces, d.pxPerDp)
		d.painted = true
	}
	d.macro.Add(gtx.Ops)
	e.Frame(gtx.Ops)

	if out.NextFrameRequested {
		d.window.Invalidate()
	}
	return eventCount > 0
}

func layoutPoint(p image.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}
