package rancher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(name string, log *[]string) Listener {
	return Pure(func(e *Element, io *Io) (Signal, bool) {
		*log = append(*log, name)
		return Signal{}, false
	}, nil)
}

func TestDispatchPreOrder(t *testing.T) {
	var log []string
	root := NewFrame(Frame{},
		NewFrame(Frame{},
			NewText("leaf", TextStyle{}).WithListener(recorder("leaf", &log)),
		).WithListener(recorder("a", &log)),
		NewText("b", TextStyle{}).WithListener(recorder("b", &log)),
	).WithListener(recorder("root", &log))

	DispatchIO(&root, NewIo(Vec{}), NewSignalBus())
	assert.Equal(t, []string{"root", "a", "leaf", "b"}, log)
}

func TestMuteSkipsChildren(t *testing.T) {
	var log []string
	root := NewFrame(Frame{},
		NewFrame(Frame{},
			NewText("leaf", TextStyle{}).WithListener(recorder("leaf", &log)),
		).WithListener(recorder("muted", &log)),
	)
	root.Children()[0].Mute = true

	DispatchIO(&root, NewIo(Vec{}), NewSignalBus())
	assert.Equal(t, []string{"muted"}, log, "a muted element still sees its own input")

	// a parent may mute a child from its own listener
	log = nil
	root.Children()[0].Mute = false
	root.Listener = Pure(func(e *Element, io *Io) (Signal, bool) {
		e.Mute = true
		return Signal{}, false
	}, nil)
	DispatchIO(&root, NewIo(Vec{}), NewSignalBus())
	assert.Empty(t, log)
}

func emitter(tag Tag, msg Message) Listener {
	return Pure(func(e *Element, io *Io) (Signal, bool) {
		return Signal{Tag: tag, Msg: msg}, true
	}, nil)
}

func TestSignalsReachEveryone(t *testing.T) {
	var seenEarly, seenLate Message
	root := NewFrame(Frame{},
		// listens before the emitter in tree order
		NewText("early", TextStyle{}).WithListener(Pure(nil, func(e *Element, bus *SignalBus) {
			seenEarly, _ = bus.Get(Num(1))
		})),
		NewText("emitter", TextStyle{}).WithListener(emitter(Num(1), Number(5))),
		NewText("late", TextStyle{}).WithListener(Pure(nil, func(e *Element, bus *SignalBus) {
			seenLate, _ = bus.Get(Num(1))
		})),
	)
	bus := NewSignalBus()
	DispatchIO(&root, NewIo(Vec{}), bus)
	DeliverSignals(&root, bus)

	assert.Equal(t, Number(5), seenEarly)
	assert.Equal(t, Number(5), seenLate)
}

func TestLastPostWins(t *testing.T) {
	root := NewFrame(Frame{},
		NewText("first", TextStyle{}).WithListener(emitter(Num(3), TextMsg("first"))),
		NewText("second", TextStyle{}).WithListener(emitter(Num(3), TextMsg("second"))),
		NewText("other", TextStyle{}).WithListener(emitter(PairTag(1, 2), PairMsg(3, 4))),
	)
	bus := NewSignalBus()
	DispatchIO(&root, NewIo(Vec{}), bus)

	msg, ok := bus.Get(Num(3))
	require.True(t, ok)
	assert.Equal(t, "second", msg.Text)
	assert.Equal(t, 1, bus.Collisions())
	assert.Equal(t, 2, bus.Len())

	taken, ok := bus.Take(PairTag(1, 2))
	assert.True(t, ok)
	assert.Equal(t, PairMsg(3, 4), taken)
	_, ok = bus.Get(PairTag(1, 2))
	assert.False(t, ok)

	bus.Reset()
	assert.Equal(t, 0, bus.Len())
	assert.Equal(t, 0, bus.Collisions())
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "default", DefaultTag.String())
	assert.Equal(t, "broadcast", BroadcastTag.String())
	assert.Equal(t, "#7", Num(7).String())
	assert.Equal(t, "#1.2", PairTag(1, 2).String())
}

// counter counts IO calls and reports destruction through a shared tally.
type counter struct {
	calls     int
	destroyed *int
}

func (c *counter) OnIO(e *Element, io *Io) (Signal, bool) {
	c.calls++
	return Signal{}, false
}

func (c *counter) OnSignal(e *Element, bus *SignalBus) {}

func (c *counter) Destroy() {
	*c.destroyed++
}

func (c *counter) Clone() Behavior {
	cp := *c
	return &cp
}

func TestCloneCopiesBehaviors(t *testing.T) {
	var destroyed int
	orig := &counter{destroyed: &destroyed}
	e := NewFrame(Frame{Gap: 2}, NewText("x", TextStyle{}).WithListener(Stateful(orig)))

	c := e.Clone()
	DispatchIO(&c, NewIo(Vec{}), NewSignalBus())
	DispatchIO(&c, NewIo(Vec{}), NewSignalBus())
	assert.Equal(t, 0, orig.calls)
	assert.Equal(t, 2, c.Children()[0].Listener.Behavior.(*counter).calls)

	c.Children()[0].Text().Text = "y"
	assert.Equal(t, "x", e.Children()[0].Text().Text)
	c.Frame().Gap = 9
	assert.Equal(t, f32(2), e.Frame().Gap)
}

func TestDestroyRunsOncePerBehavior(t *testing.T) {
	var destroyed int
	mk := func() Listener { return Stateful(&counter{destroyed: &destroyed}) }
	root := NewFrame(Frame{},
		NewFrame(Frame{}, NewText("a", TextStyle{}).WithListener(mk())).WithListener(mk()),
		NewText("b", TextStyle{}).WithListener(mk()),
		NewText("c", TextStyle{}).WithListener(Pure(nil, nil)),
	).WithListener(mk())

	f := root.Frame()
	f.Remove(1)
	assert.Equal(t, 1, destroyed)
	assert.Len(t, f.Children, 2)

	root.Destroy()
	assert.Equal(t, 4, destroyed)
	assert.Equal(t, ListenerNone, root.Listener.Kind)

	f.Append(NewText("d", TextStyle{}).WithListener(mk()))
	f.Clear()
	assert.Equal(t, 5, destroyed)
	assert.Empty(t, f.Children)
}

func TestAdopt(t *testing.T) {
	var destroyed int
	e := NewText("x", TextStyle{}).WithListener(Stateful(&counter{destroyed: &destroyed}))

	assert.False(t, e.Adopt(Number(1)))
	assert.Equal(t, 0, destroyed)

	next := &counter{destroyed: &destroyed}
	assert.True(t, e.Adopt(BehaviorMsg(next)))
	assert.Equal(t, 1, destroyed)
	assert.Same(t, next, e.Listener.Behavior)

	DispatchIO(&e, NewIo(Vec{}), NewSignalBus())
	assert.Equal(t, 1, next.calls)
}

func TestFuncsBehavior(t *testing.T) {
	var closed bool
	var signals int
	b := &Funcs{
		Signal:  func(e *Element, bus *SignalBus) { signals++ },
		OnClose: func() { closed = true },
	}
	e := NewText("x", TextStyle{}).WithListener(Stateful(b))
	_, ok := b.OnIO(&e, NewIo(Vec{}))
	assert.False(t, ok)

	DeliverSignals(&e, NewSignalBus())
	assert.Equal(t, 1, signals)

	c := e.Clone()
	assert.NotSame(t, b, c.Listener.Behavior)
	e.Destroy()
	assert.True(t, closed)
}
