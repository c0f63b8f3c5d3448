// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"fmt"
)

// LockedRegion describes the mapping returned by a tiled lock.
type LockedRegion struct {
	// Scanline0 starts at the first row of the image.
	Scanline0 []byte

	// Pitch is the distance in bytes between the starts of two rows.
	Pitch int

	// BufferStart is the start of the mapped memory and BufferLength its
	// size, chroma planes included.
	BufferStart  []byte
	BufferLength int
}

// Buffer2D is the tiled view: the mapped staging texture, addressed row by
// row at the device's pitch.
//
// Tiled locks nest. The first lock creates the staging texture if needed,
// reads the texture into it unless the lock is write-only, and maps it.
// The final unlock unmaps it and writes it back if any lock of the
// sequence wrote.
type Buffer2D struct {
	*buffer
}

// Lock2D opens or joins a read-write tiled lock.
func (v *Buffer2D) Lock2D() (scanline0 []byte, pitch int, err error) {
	r, err := v.Lock2DSize(LockReadWrite)
	if err != nil {
		return nil, 0, err
	}
	return r.Scanline0, r.Pitch, nil
}

// Lock2DSize opens or joins a tiled lock with the given intent.
//
// flags must be LockRead, LockWrite or LockReadWrite. Joining a write-only
// sequence with anything but LockWrite fails with ErrWasLocked; every other
// join widens the sequence.
func (v *Buffer2D) Lock2DSize(flags LockFlags) (LockedRegion, error) {
	b := v.buffer
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.lockTiled(flags); err != nil {
		return LockedRegion{}, err
	}
	return b.region(), nil
}

func (b *buffer) region() LockedRegion {
	return LockedRegion{
		Scanline0:    b.mapping.Data,
		Pitch:        b.mapping.RowPitch,
		BufferStart:  b.mapping.Data,
		BufferLength: b.mapping.DepthPitch,
	}
}

// Unlock2D closes one level of a tiled lock. A writeback error is returned
// after the sequence has been closed.
func (v *Buffer2D) Unlock2D() error {
	b := v.buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unlockTiled()
}

// Scanline0AndPitch returns the current mapping without changing the lock
// count.
func (v *Buffer2D) Scanline0AndPitch() (scanline0 []byte, pitch int, err error) {
	b := v.buffer
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.locks == 0 {
		return nil, 0, ErrWasUnlocked
	}
	return b.mapping.Data, b.mapping.RowPitch, nil
}

// IsContiguousFormat reports false: mapped rows are padded to the device
// pitch.
func (v *Buffer2D) IsContiguousFormat() bool { return false }

// ContiguousLength returns the size of the packed image.
func (v *Buffer2D) ContiguousLength() int { return v.planeSize }

// BottomUp reports the orientation recorded with WithBottomUp.
func (v *Buffer2D) BottomUp() bool { return v.bottomUp }

// ContiguousCopyTo packs the image into dst under a read lock.
// dst must hold at least ContiguousLength bytes. A failure to close the
// lock is logged and does not change the result.
func (v *Buffer2D) ContiguousCopyTo(dst []byte) error {
	b := v.buffer
	if len(dst) < b.planeSize {
		return fmt.Errorf("%w: destination %d < %d", ErrInvalidArgument, len(dst), b.planeSize)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.lockTiled(LockRead); err != nil {
		return err
	}
	err := b.img.Pack(dst, b.mapping.Data, b.mapping.RowPitch)
	if uerr := b.unlockTiled(); uerr != nil {
		Logger().Warn("texbuf: unlock after copy failed", "err", uerr)
	}
	return err
}

// ContiguousCopyFrom unpacks src into the image under a write lock.
// src must hold at least ContiguousLength bytes. A failure to close the
// lock, writeback included, is logged and does not change the result.
func (v *Buffer2D) ContiguousCopyFrom(src []byte) error {
	b := v.buffer
	if len(src) < b.planeSize {
		return fmt.Errorf("%w: source %d < %d", ErrInvalidArgument, len(src), b.planeSize)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.lockTiled(LockWrite); err != nil {
		return err
	}
	err := b.img.Unpack(b.mapping.Data, b.mapping.RowPitch, src)
	if uerr := b.unlockTiled(); uerr != nil {
		Logger().Warn("texbuf: unlock after copy failed", "err", uerr)
	}
	return err
}

// Copy2DTo copies the image into dst. Both buffers must have the same
// format and dimensions. The source is locked for reading and the
// destination for writing; a writeback failure of the destination is
// returned.
func (v *Buffer2D) Copy2DTo(dst *Buffer2D) error {
	if dst == nil || dst.buffer == v.buffer {
		return fmt.Errorf("%w: destination", ErrInvalidArgument)
	}
	if v.img.Format != dst.img.Format || v.img.Width != dst.img.Width || v.img.Height != dst.img.Height {
		return fmt.Errorf("%w: %v %dx%d to %v %dx%d", ErrInvalidArgument,
			v.img.Format, v.img.Width, v.img.Height, dst.img.Format, dst.img.Width, dst.img.Height)
	}

	src, err := v.Lock2DSize(LockRead)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := v.Unlock2D(); uerr != nil {
			Logger().Warn("texbuf: unlock after copy failed", "err", uerr)
		}
	}()

	out, err := dst.Lock2DSize(LockWrite)
	if err != nil {
		return err
	}
	cerr := v.img.Copy(out.Scanline0, out.Pitch, src.Scanline0, src.Pitch)
	if err := dst.Unlock2D(); err != nil {
		return err
	}
	return cerr
}
