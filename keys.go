package rancher

type Key byte

const (
	Key0 Key = '0' + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	// ascii table order
	KeyA Key = 'A' + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	KeyNone Key = iota

	KeyLeft Key = 128 + iota
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyHome
	KeyEnd
	KeyDeleteBackward
	KeyDeleteForward
	KeyInsert
	KeyPageUp
	KeyPageDown
	KeyTab
	KeySpace
	KeyCtrl
	KeyShift
	KeyAlt
	KeySuper
	KeyCommand
	KeyCapsLock
	KeyNumLock
	KeyScrollLock
	KeyPause
	KeyPrintScreen
	KeyMenu

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

func (k Key) IsModifier() bool {
	switch k {
	case KeyCtrl, KeyShift, KeyAlt, KeySuper, KeyCommand:
		return true
	}
	return false
}

// KeyForRune maps a printable ascii rune to its key, ignoring case.
func KeyForRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	case r == ' ':
		return KeySpace
	}
	return KeyNone
}

type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseMiddle
)

type WinEvent uint8

const (
	WinNone WinEvent = iota
	WinResize
	WinMove
	WinClose
)

// Phase of a scroll gesture.
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

type ScrollUnit uint8

const (
	ScrollPixels ScrollUnit = iota
	ScrollLines
)
