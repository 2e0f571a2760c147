package widgets

import (
	"bytes"
	"encoding/json"
	"fmt"

	g "go.hasen.dev/generic"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

// DebugPanel shows the messages collected since the previous frame, one label each.
// Besides direct calls, any MsgText posted to the panel's tag is shown too.
type DebugPanel struct {
	Style TextStyle

	messages []string
}

func (p *DebugPanel) Message(msg string) {
	g.Append(&p.messages, msg)
}

func (p *DebugPanel) Var(name string, value any) {
	p.Message(fmt.Sprintf("%s: %v", name, compactJson(value)))
}

func compactJson(value any) string {
	var buf0, _ = json.MarshalIndent(value, "", "")
	var buf bytes.Buffer
	json.Compact(&buf, buf0)
	return buf.String()
}

func (p *DebugPanel) OnIO(e *Element, io *Io) (Signal, bool) {
	return Signal{}, false
}

func (p *DebugPanel) OnSignal(e *Element, bus *SignalBus) {
	if e.Tag != DefaultTag {
		if msg, ok := bus.Get(e.Tag); ok && msg.Kind == MsgText {
			p.Message(msg.Text)
		}
	}
	f := e.Frame()
	if f == nil {
		return
	}
	f.Clear()
	for _, msg := range p.messages {
		f.Append(NewText(msg, p.Style))
	}
	g.ResetSlice(&p.messages)
}

func (p *DebugPanel) Destroy() {
	p.messages = nil
}

func (p *DebugPanel) Clone() Behavior {
	return &DebugPanel{Style: p.Style}
}

func NewDebugPanel(tag Tag, style TextStyle, pad PadId) (Element, *DebugPanel) {
	p := &DebugPanel{Style: style}
	e := tw.Box([]tw.FrameFn{tw.Column, tw.Pad(pad), tw.Gap(2)})
	e.Tag = tag
	e.Listener = Stateful(p)
	return e, p
}
