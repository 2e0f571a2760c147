package rancher

import "go.uber.org/zap"

// DispatchIO walks the tree in pre-order and hands the frame's input to every listener.
// A parent runs before its children, so it can mute them for this walk. Emitted signals
// go to the bus; the last post for a tag wins.
func DispatchIO(e *Element, io *Io, bus *SignalBus) {
	if sig, ok := e.Listener.onIO(e, io); ok {
		if bus.Post(sig.Tag, sig.Msg) {
			Log().Debug("signal tag collision", zap.Stringer("tag", sig.Tag))
		}
	}
	if e.Mute {
		return
	}
	if f := e.Frame(); f != nil {
		for i := range f.Children {
			DispatchIO(&f.Children[i], io, bus)
		}
	}
	if im := e.Image(); im != nil {
		if fb := im.Shown(); fb != nil {
			DispatchIO(fb, io, bus)
		}
	}
}

// DeliverSignals is the second pre-order walk: every signal listener sees the whole bus,
// whatever the position of the poster.
func DeliverSignals(root *Element, bus *SignalBus) {
	root.Listener.onSignal(root, bus)
	if f := root.Frame(); f != nil {
		for i := range f.Children {
			DeliverSignals(&f.Children[i], bus)
		}
	}
	if im := root.Image(); im != nil {
		if fb := im.Shown(); fb != nil {
			DeliverSignals(fb, bus)
		}
	}
}
