package rancher

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrCursorBounds matches both cursor errors with errors.Is.
var ErrCursorBounds = errors.New("cursor out of bounds")

// CursorAtEnd reports a move past the tail; Overshoot is how far past.
type CursorAtEnd struct {
	Overshoot int
}

func (e *CursorAtEnd) Error() string {
	return fmt.Sprintf("cursor at end (overshoot %d)", e.Overshoot)
}

func (e *CursorAtEnd) Is(target error) bool {
	return target == ErrCursorBounds
}

// CursorAtStart reports a move or delete before the head. Undershoot is the offset
// that would have resulted, so it is negative.
type CursorAtStart struct {
	Undershoot int
}

func (e *CursorAtStart) Error() string {
	return fmt.Sprintf("cursor at start (undershoot %d)", e.Undershoot)
}

func (e *CursorAtStart) Is(target error) bool {
	return target == ErrCursorBounds
}

// GapBuffer keeps tokens split at the cursor. The logical order is left followed by
// right reversed, so the cursor offset is len(left) and the tokens nearest to the
// cursor are at the top of both stacks.
type GapBuffer[T any] struct {
	left  []T
	right []T
}

func NewGapBuffer[T any](items ...T) GapBuffer[T] {
	var b GapBuffer[T]
	b.left = append(b.left, items...)
	return b
}

// Weight is the total token count.
func (b *GapBuffer[T]) Weight() int {
	return len(b.left) + len(b.right)
}

func (b *GapBuffer[T]) Offset() int {
	return len(b.left)
}

// ShiftCursor moves the cursor by delta tokens. Nothing moves when the target is out of
// range.
func (b *GapBuffer[T]) ShiftCursor(delta int) error {
	target := len(b.left) + delta
	if target > b.Weight() {
		return &CursorAtEnd{Overshoot: target - b.Weight()}
	}
	if target < 0 {
		return &CursorAtStart{Undershoot: target}
	}
	for ; delta > 0; delta-- {
		n := len(b.right) - 1
		b.left = append(b.left, b.right[n])
		b.right = b.right[:n]
	}
	for ; delta < 0; delta++ {
		n := len(b.left) - 1
		b.right = append(b.right, b.left[n])
		b.left = b.left[:n]
	}
	return nil
}

// Seek moves the cursor to an absolute offset.
func (b *GapBuffer[T]) Seek(offset int) error {
	return b.ShiftCursor(offset - len(b.left))
}

// Insert always happens exactly at the cursor, which then sits after the new token.
func (b *GapBuffer[T]) Insert(token T) {
	b.left = append(b.left, token)
}

// DeleteBackward removes the token before the cursor.
func (b *GapBuffer[T]) DeleteBackward() (T, error) {
	var zero T
	n := len(b.left)
	if n == 0 {
		return zero, &CursorAtStart{Undershoot: n - 1}
	}
	token := b.left[n-1]
	b.left[n-1] = zero
	b.left = b.left[:n-1]
	return token, nil
}

// DeleteForward removes the token after the cursor.
func (b *GapBuffer[T]) DeleteForward() (T, error) {
	var zero T
	n := len(b.right)
	if n == 0 {
		return zero, &CursorAtEnd{Overshoot: 1}
	}
	token := b.right[n-1]
	b.right[n-1] = zero
	b.right = b.right[:n-1]
	return token, nil
}

// Before returns the token right before the cursor, if any.
func (b *GapBuffer[T]) Before() (T, bool) {
	var zero T
	if len(b.left) == 0 {
		return zero, false
	}
	return b.left[len(b.left)-1], true
}

// After returns the token right after the cursor, if any.
func (b *GapBuffer[T]) After() (T, bool) {
	var zero T
	if len(b.right) == 0 {
		return zero, false
	}
	return b.right[len(b.right)-1], true
}

// All visits the tokens in logical order without materializing them.
func (b *GapBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, t := range b.left {
			if !yield(i, t) {
				return
			}
		}
		i := len(b.left)
		for _, t := range slices.Backward(b.right) {
			if !yield(i, t) {
				return
			}
			i++
		}
	}
}

func (b *GapBuffer[T]) Collect() []T {
	out := make([]T, 0, b.Weight())
	for _, t := range b.All() {
		out = append(out, t)
	}
	return out
}

// Reset empties the buffer keeping its storage.
func (b *GapBuffer[T]) Reset() {
	clear(b.left)
	clear(b.right)
	b.left = b.left[:0]
	b.right = b.right[:0]
}

// Clone copies the tokens; the copy keeps the same cursor offset.
func (b *GapBuffer[T]) Clone() GapBuffer[T] {
	return GapBuffer[T]{
		left:  slices.Clone(b.left),
		right: slices.Clone(b.right),
	}
}
