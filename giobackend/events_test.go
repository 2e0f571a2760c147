package giobackend

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hasen.dev/rancher"
)

func TestPointerPressRelease(t *testing.T) {
	press := pointer.Event{Kind: pointer.Press, Position: f32.Pt(20, 40), Buttons: pointer.ButtonPrimary}
	atoms, held := pointerAtoms(nil, press, 2, 0)
	require.Len(t, atoms, 2)
	assert.Equal(t, rancher.MouseMove(rancher.Vec{X: 10, Y: 20}), atoms[0])
	assert.Equal(t, rancher.MousePress(rancher.MouseLeft), atoms[1])
	assert.Equal(t, pointer.ButtonPrimary, held)

	release := pointer.Event{Kind: pointer.Release, Position: f32.Pt(20, 40)}
	atoms, held = pointerAtoms(atoms[:0], release, 2, held)
	require.Len(t, atoms, 2)
	assert.Equal(t, rancher.MouseRelease(rancher.MouseLeft), atoms[1])
	assert.Zero(t, held)
}

func TestPointerSecondButton(t *testing.T) {
	press := pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary | pointer.ButtonSecondary}
	atoms, held := pointerAtoms(nil, press, 1, pointer.ButtonPrimary)
	assert.Equal(t, []rancher.Atom{
		rancher.MouseMove(rancher.Vec{}),
		rancher.MousePress(rancher.MouseRight),
	}, atoms)
	assert.Equal(t, pointer.ButtonPrimary|pointer.ButtonSecondary, held)
}

func TestPointerScrollAndLeave(t *testing.T) {
	scroll := pointer.Event{Kind: pointer.Scroll, Position: f32.Pt(4, 4), Scroll: f32.Pt(0, 30)}
	atoms, _ := pointerAtoms(nil, scroll, 2, 0)
	require.Len(t, atoms, 2)
	assert.Equal(t, rancher.ScrollPixel(rancher.Vec{Y: 15}, rancher.PhaseMove), atoms[1])

	atoms, _ = pointerAtoms(nil, pointer.Event{Kind: pointer.Leave}, 1, 0)
	assert.Equal(t, []rancher.Atom{rancher.CursorLeave()}, atoms)
}

func TestPointerCancelReleasesHeld(t *testing.T) {
	atoms, held := pointerAtoms(nil, pointer.Event{Kind: pointer.Cancel}, 1, pointer.ButtonPrimary|pointer.ButtonTertiary)
	assert.Equal(t, []rancher.Atom{
		rancher.MouseRelease(rancher.MouseLeft),
		rancher.MouseRelease(rancher.MouseMiddle),
	}, atoms)
	assert.Zero(t, held)
}

func TestKeyAtom(t *testing.T) {
	a, ok := keyAtom(key.Event{Name: key.NameLeftArrow, State: key.Press})
	require.True(t, ok)
	assert.Equal(t, rancher.KeyPress(rancher.KeyLeft), a)

	a, ok = keyAtom(key.Event{Name: "Q", State: key.Release})
	require.True(t, ok)
	assert.Equal(t, rancher.KeyRelease(rancher.KeyQ), a)

	_, ok = keyAtom(key.Event{Name: "⌘⌘"})
	assert.False(t, ok)
}

func TestTextAtoms(t *testing.T) {
	atoms := textAtoms(nil, "hé")
	assert.Equal(t, []rancher.Atom{rancher.Typed('h'), rancher.Typed('é')}, atoms)
}

func TestShadowPlacement(t *testing.T) {
	s := rancher.Surface{
		Kind:   rancher.SurfaceShadow,
		Rect:   rancher.Rect{Origin: rancher.Vec{X: 6, Y: 6}, Size: rancher.Vec{X: 28, Y: 18}},
		Shadow: [4]float32{4, 4, 4, 4},
		Color:  rancher.Color{0, 0, 0, 0.5},
	}
	img, origin := shadowPlacement(s)
	// a 20x10 shape with a blur radius of 2 gets 4 pixels of room on each side
	assert.Equal(t, 28, img.Bounds().Dx())
	assert.Equal(t, 18, img.Bounds().Dy())
	assert.Equal(t, rancher.Vec{X: 6, Y: 6}, origin)

	again, _ := shadowPlacement(s)
	assert.Same(t, img, again)
}
