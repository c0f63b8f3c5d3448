// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"errors"
	"fmt"
)

// MediaBuffer is the whole-buffer view: the image as one tightly packed
// byte slice.
//
// Lock copies the texture into scratch memory; the final Unlock copies it
// back. Whole-buffer and tiled lock sequences exclude each other.
type MediaBuffer struct {
	*buffer
}

// Lock returns the packed image along with the buffer capacity and the
// current length. Nested Locks return the same slice without copying.
// The slice is valid until the matching final Unlock.
func (m *MediaBuffer) Lock() (data []byte, maxLength, currentLength int, err error) {
	b := m.buffer
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.linear == nil {
		if b.locks > 0 {
			return nil, 0, 0, ErrInvalidRequest
		}
		linear, err := b.alloc.Alloc(b.planeSize)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		}
		if err := b.mapStaging(modeReadWrite); err != nil {
			b.alloc.Free(linear)
			return nil, 0, 0, err
		}
		if err := b.img.Pack(linear, b.mapping.Data, b.mapping.RowPitch); err != nil {
			_ = b.unmapStaging(modeReadOnly)
			b.alloc.Free(linear)
			return nil, 0, 0, fmt.Errorf("%w: %w", ErrMapFailed, err)
		}
		b.linear = linear
		b.mode = modeReadWrite
	}
	b.locks++
	Logger().Debug("texbuf: whole-buffer lock", "locks", b.locks)
	return b.linear, b.planeSize, m.CurrentLength(), nil
}

// Unlock closes one level of a whole-buffer lock. The final Unlock writes
// the packed image back into the texture and frees the scratch memory; a
// writeback error is returned after the lock has been closed.
func (m *MediaBuffer) Unlock() error {
	b := m.buffer
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.linear == nil {
		return ErrWasUnlocked
	}
	b.locks--
	Logger().Debug("texbuf: whole-buffer unlock", "locks", b.locks)
	if b.locks > 0 {
		return nil
	}

	unpackErr := b.img.Unpack(b.mapping.Data, b.mapping.RowPitch, b.linear)
	err := b.unmapStaging(modeReadWrite)
	b.alloc.Free(b.linear)
	b.linear = nil
	b.mode = modeUnlocked
	return errors.Join(unpackErr, err)
}

// CurrentLength returns the length of valid data set by SetCurrentLength.
func (m *MediaBuffer) CurrentLength() int {
	return int(m.currentLength.Load())
}

// SetCurrentLength records the length of valid data. It does not touch
// the image and may exceed MaxLength.
func (m *MediaBuffer) SetCurrentLength(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: length %d", ErrInvalidArgument, n)
	}
	m.currentLength.Store(int64(n))
	return nil
}

// MaxLength returns the size of the packed image.
func (m *MediaBuffer) MaxLength() int {
	return m.planeSize
}
