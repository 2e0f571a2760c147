package rancher

import (
	"fmt"
	"iter"
	"maps"
)

type TagKind uint8

const (
	TagDefault TagKind = iota
	TagBroadcast
	TagNumeric
	TagPair
)

// Tag addresses an element on the signal bus. Tags are not unique across the tree;
// avoiding collisions is up to whoever assigns them.
type Tag struct {
	Kind TagKind
	A, B int8
}

var (
	DefaultTag   = Tag{Kind: TagDefault}
	BroadcastTag = Tag{Kind: TagBroadcast}
)

func Num(n int8) Tag {
	return Tag{Kind: TagNumeric, A: n}
}

func PairTag(a, b int8) Tag {
	return Tag{Kind: TagPair, A: a, B: b}
}

func (t Tag) String() string {
	switch t.Kind {
	case TagBroadcast:
		return "broadcast"
	case TagNumeric:
		return fmt.Sprintf("#%d", t.A)
	case TagPair:
		return fmt.Sprintf("#%d.%d", t.A, t.B)
	}
	return "default"
}

type MsgKind uint8

const (
	MsgNumber MsgKind = iota
	MsgPair
	MsgText
	MsgKeyedText
	MsgBehavior
)

type Message struct {
	Kind     MsgKind
	A, B     int8
	Text     string
	Behavior Behavior
}

func Number(n int8) Message {
	return Message{Kind: MsgNumber, A: n}
}

func PairMsg(a, b int8) Message {
	return Message{Kind: MsgPair, A: a, B: b}
}

func TextMsg(s string) Message {
	return Message{Kind: MsgText, Text: s}
}

func KeyedText(key int8, s string) Message {
	return Message{Kind: MsgKeyedText, A: key, Text: s}
}

// BehaviorMsg hands a behavior to whoever reads the message; see Element.Adopt.
func BehaviorMsg(b Behavior) Message {
	return Message{Kind: MsgBehavior, Behavior: b}
}

// Signal is what an IO listener emits.
type Signal struct {
	Tag Tag
	Msg Message
}

// SignalBus maps tags to the messages posted during one frame.
//
// When two elements post to the same tag in one frame the later post (in dispatch
// order) wins. Overwrites are counted so the driver can report them.
type SignalBus struct {
	msgs       map[Tag]Message
	collisions int
}

func NewSignalBus() *SignalBus {
	return &SignalBus{msgs: make(map[Tag]Message)}
}

// Post reports whether it replaced an earlier message for the same tag.
func (b *SignalBus) Post(tag Tag, msg Message) bool {
	if b.msgs == nil {
		b.msgs = make(map[Tag]Message)
	}
	_, replaced := b.msgs[tag]
	if replaced {
		b.collisions++
	}
	b.msgs[tag] = msg
	return replaced
}

func (b *SignalBus) Get(tag Tag) (Message, bool) {
	msg, ok := b.msgs[tag]
	return msg, ok
}

// Take reads and removes a message.
func (b *SignalBus) Take(tag Tag) (Message, bool) {
	msg, ok := b.msgs[tag]
	if ok {
		delete(b.msgs, tag)
	}
	return msg, ok
}

func (b *SignalBus) Len() int {
	return len(b.msgs)
}

func (b *SignalBus) Collisions() int {
	return b.collisions
}

func (b *SignalBus) All() iter.Seq2[Tag, Message] {
	return maps.All(b.msgs)
}

// Reset empties the bus, keeping the map storage for the next frame.
func (b *SignalBus) Reset() {
	clear(b.msgs)
	b.collisions = 0
}
