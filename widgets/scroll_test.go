package widgets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	. "go.hasen.dev/rancher"
)

func scrollTree(lines int) Element {
	var content []Element
	for i := range lines {
		content = append(content, NewText(fmt.Sprintf("line %03d", i), TextStyle{}))
	}
	return ScrollArea(10, 50, 0, 1, content...)
}

func TestScrollWheel(t *testing.T) {
	root := scrollTree(200)
	en := cellEngine(t, &root, Vec{X: 80, Y: 60})
	viewport, track, _ := (&ScrollView{}).parts(&root)
	assert.Equal(t, Vec{X: 8, Y: 50}, viewport.Bound.Dim)
	assert.Equal(t, f32(200), viewport.Frame().Content().Y)

	en.Pool(MouseMove(Vec{X: 2, Y: 10}))
	en.Pool(ScrollPixel(Vec{Y: 30}, PhaseMove))
	en.RunFrame()
	assert.Equal(t, f32(30), viewport.Bound.Offset.Y)
	assert.Equal(t, f32(-30), viewport.Children()[0].Bound.Pos.Y)
	// thumb: 20 long in a 50 track, so 30 of travel for 150 of content
	assert.Equal(t, f32(-6), track.Bound.Offset.Y)

	// lines scroll by LineStep
	en.Pool(ScrollLine(Vec{Y: 2}, PhaseMove))
	en.RunFrame()
	assert.Equal(t, f32(70), viewport.Bound.Offset.Y)

	en.Pool(ScrollPixel(Vec{Y: 1000}, PhaseMove))
	en.RunFrame()
	assert.Equal(t, f32(150), viewport.Bound.Offset.Y, "clamped at the end")

	en.Pool(ScrollPixel(Vec{Y: -1000}, PhaseMove))
	en.RunFrame()
	assert.Equal(t, f32(0), viewport.Bound.Offset.Y, "clamped at the start")

	// the wheel only counts over the viewport
	en.Pool(MouseMove(Vec{X: 70, Y: 10}))
	en.Pool(ScrollPixel(Vec{Y: 30}, PhaseMove))
	en.RunFrame()
	assert.Equal(t, f32(0), viewport.Bound.Offset.Y)
}

func TestScrollThumbDrag(t *testing.T) {
	root := scrollTree(200)
	en := cellEngine(t, &root, Vec{X: 80, Y: 60})
	en.RunFrame()
	_, track, thumb := (&ScrollView{}).parts(&root)
	assert.Equal(t, Vec{X: SCROLLBAR_WIDTH, Y: 50}, track.Bound.Dim)
	assert.Equal(t, f32(20), thumb.Bound.Dim.Y)

	grab := thumb.Bound.Pos.Add(Vec{X: 1, Y: 5})
	press(en, grab)
	// dragging the thumb to the end of the track scrolls to the end
	en.Pool(MouseMove(grab.Add(Vec{Y: 30})))
	en.RunFrame()
	viewport := &root.Children()[0]
	assert.Equal(t, f32(150), viewport.Bound.Offset.Y)

	release(en, grab)
	en.Pool(MouseMove(grab.Add(Vec{Y: -30})))
	en.RunFrame()
	assert.Equal(t, f32(150), viewport.Bound.Offset.Y, "released thumbs stay put")
}

func TestScrollShortContent(t *testing.T) {
	root := scrollTree(3)
	en := cellEngine(t, &root, Vec{X: 80, Y: 60})
	viewport := &root.Children()[0]
	assert.Equal(t, f32(3), viewport.Bound.Dim.Y)

	en.Pool(MouseMove(Vec{X: 1, Y: 1}))
	en.Pool(ScrollPixel(Vec{Y: 30}, PhaseMove))
	en.RunFrame()
	assert.Equal(t, f32(0), viewport.Bound.Offset.Y)
}
