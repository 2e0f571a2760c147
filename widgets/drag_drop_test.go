package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "go.hasen.dev/rancher"
	"go.hasen.dev/rancher/tw"
)

func TestDragListReorders(t *testing.T) {
	list, d := NewDragList(Num(7), 0, tw.Label("a"), tw.Label("b"), tw.Label("c"))
	root := tw.Box([]tw.FrameFn{tw.Column}, list)
	en := cellEngine(t, &root, Vec{X: 10, Y: 10})
	el := &root.Children()[0]

	press(en, Vec{X: 0.5, Y: 0.5})
	require.True(t, d.Dragging)
	assert.Equal(t, 0, d.From)
	assert.Equal(t, "a", d.DraggedItem(el).Text().Text)

	en.Pool(MouseMove(Vec{X: 0.5, Y: 2.5}))
	en.RunFrame()
	assert.Equal(t, 2, d.Over)

	out := release(en, Vec{X: 0.5, Y: 2.5})
	msg, ok := signal(out, Num(7))
	require.True(t, ok)
	assert.Equal(t, PairMsg(0, 2), msg)
	assert.False(t, d.Dragging)
	assert.Nil(t, d.DraggedItem(el))
	assert.Equal(t, []string{"b", "c", "a"}, texts(el))
	// positions follow the new order on the same frame
	assert.Equal(t, f32(0), el.Children()[0].Bound.Pos.Y)
	assert.Equal(t, f32(2), el.Children()[2].Bound.Pos.Y)
}

func TestDragListDropOutside(t *testing.T) {
	list, d := NewDragList(Num(7), 0, tw.Label("a"), tw.Label("b"))
	root := tw.Box([]tw.FrameFn{tw.Column}, list)
	en := cellEngine(t, &root, Vec{X: 10, Y: 10})
	el := &root.Children()[0]

	press(en, Vec{X: 0.5, Y: 1.5})
	require.True(t, d.Dragging)
	out := release(en, Vec{X: 8, Y: 8})
	assert.Empty(t, out.Signals)
	assert.Equal(t, -1, d.Over)
	assert.Equal(t, []string{"a", "b"}, texts(el))

	// dropping in place is not a move either
	press(en, Vec{X: 0.5, Y: 1.5})
	out = release(en, Vec{X: 0.5, Y: 1.5})
	assert.Empty(t, out.Signals)
	assert.Equal(t, []string{"a", "b"}, texts(el))
}
