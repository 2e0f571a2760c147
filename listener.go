package rancher

// Behavior is a listener with private state that lives across frames.
type Behavior interface {
	OnIO(e *Element, io *Io) (Signal, bool)
	OnSignal(e *Element, bus *SignalBus)
	// Destroy is called once when the owning element leaves the tree.
	Destroy()
	// Clone is used when an element subtree is duplicated.
	Clone() Behavior
}

type IOFunc func(e *Element, io *Io) (Signal, bool)
type SignalFunc func(e *Element, bus *SignalBus)

type ListenerKind uint8

const (
	ListenerNone ListenerKind = iota
	ListenerPure
	ListenerStateful
)

// Listener is either a pair of plain functions or a stateful behavior.
type Listener struct {
	Kind     ListenerKind
	IO       IOFunc
	Signal   SignalFunc
	Behavior Behavior
}

// Pure builds a listener from plain functions; either may be nil.
func Pure(io IOFunc, signal SignalFunc) Listener {
	return Listener{Kind: ListenerPure, IO: io, Signal: signal}
}

func Stateful(b Behavior) Listener {
	if b == nil {
		return Listener{}
	}
	return Listener{Kind: ListenerStateful, Behavior: b}
}

func (l *Listener) onIO(e *Element, io *Io) (Signal, bool) {
	switch l.Kind {
	case ListenerPure:
		if l.IO != nil {
			return l.IO(e, io)
		}
	case ListenerStateful:
		return l.Behavior.OnIO(e, io)
	}
	return Signal{}, false
}

func (l *Listener) onSignal(e *Element, bus *SignalBus) {
	switch l.Kind {
	case ListenerPure:
		if l.Signal != nil {
			l.Signal(e, bus)
		}
	case ListenerStateful:
		l.Behavior.OnSignal(e, bus)
	}
}

func (l *Listener) clone() Listener {
	if l.Kind == ListenerStateful {
		return Stateful(l.Behavior.Clone())
	}
	return *l
}

func (l *Listener) destroy() {
	if l.Kind == ListenerStateful {
		l.Behavior.Destroy()
	}
	*l = Listener{}
}

// Funcs adapts plain functions to the Behavior interface, for behaviors that only need a
// closure's state. Cloning shares the closures.
type Funcs struct {
	IO      IOFunc
	Signal  SignalFunc
	OnClose func()
}

func (f *Funcs) OnIO(e *Element, io *Io) (Signal, bool) {
	if f.IO == nil {
		return Signal{}, false
	}
	return f.IO(e, io)
}

func (f *Funcs) OnSignal(e *Element, bus *SignalBus) {
	if f.Signal != nil {
		f.Signal(e, bus)
	}
}

func (f *Funcs) Destroy() {
	if f.OnClose != nil {
		f.OnClose()
	}
}

func (f *Funcs) Clone() Behavior {
	c := *f
	return &c
}
