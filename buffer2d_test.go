// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/texbuf/backend/software"
	"github.com/gogpu/texbuf/pixfmt"
)

func TestLock2DReadback(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, tex := newBuffer(t, dev, pixfmt.FormatARGB32, 16, 4)
	v := query2D(t, buf)
	want := packed(t, tex)

	r, err := v.Lock2DSize(LockRead)
	if err != nil {
		t.Fatalf("Lock2DSize(Read) error = %v", err)
	}
	if r.Pitch != 256 {
		t.Errorf("Pitch = %d, want 256", r.Pitch)
	}
	if r.BufferLength != 256*4 || len(r.BufferStart) != r.BufferLength {
		t.Errorf("BufferLength = %d, want %d", r.BufferLength, 256*4)
	}
	for y := 0; y < 4; y++ {
		row := r.Scanline0[y*r.Pitch : y*r.Pitch+64]
		if !bytes.Equal(row, want[y*64:(y+1)*64]) {
			t.Errorf("row %d differs", y)
		}
	}

	s0, pitch, err := v.Scanline0AndPitch()
	if err != nil || pitch != r.Pitch || &s0[0] != &r.Scanline0[0] {
		t.Errorf("Scanline0AndPitch() = %p, %d, %v", s0, pitch, err)
	}
	if err := v.Unlock2D(); err != nil {
		t.Fatalf("Unlock2D() error = %v", err)
	}
	if got := dev.Stats().CopiesFromStaging; got != 0 {
		t.Errorf("read-only sequence wrote back: CopiesFromStaging = %d", got)
	}
}

func TestLock2DWriteback(t *testing.T) {
	tests := []struct {
		name  string
		flags LockFlags
	}{
		{"write", LockWrite},
		{"read-write", LockReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := software.New(software.DefaultConfig())
			buf, tex := newBuffer(t, dev, pixfmt.FormatL8, 8, 2)
			v := query2D(t, buf)

			r, err := v.Lock2DSize(tt.flags)
			if err != nil {
				t.Fatal(err)
			}
			copy(r.Scanline0, "abcdefgh")
			copy(r.Scanline0[r.Pitch:], "ijklmnop")
			if err := v.Unlock2D(); err != nil {
				t.Fatal(err)
			}
			if got := string(packed(t, tex)); got != "abcdefghijklmnop" {
				t.Errorf("texture = %q", got)
			}

			// A fresh read reproduces the write.
			r, err = v.Lock2DSize(LockRead)
			if err != nil {
				t.Fatal(err)
			}
			if got := string(r.Scanline0[:8]); got != "abcdefgh" {
				t.Errorf("readback = %q", got)
			}
			if err := v.Unlock2D(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestWriteOnlyLockSkipsReadback(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatARGB32, 8, 8)
	v := query2D(t, buf)

	if _, err := v.Lock2DSize(LockWrite); err != nil {
		t.Fatal(err)
	}
	if got := dev.Stats().CopiesToStaging; got != 0 {
		t.Errorf("write-only lock read back: CopiesToStaging = %d", got)
	}
	if err := v.Unlock2D(); err != nil {
		t.Fatal(err)
	}
	if got := dev.Stats().CopiesFromStaging; got != 1 {
		t.Errorf("CopiesFromStaging = %d, want 1", got)
	}
}

func TestStagingCreatedOnce(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatNV12, 16, 16)
	v := query2D(t, buf)

	if got := dev.Stats().StagingCreated; got != 0 {
		t.Fatalf("StagingCreated before first lock = %d, want 0", got)
	}
	for i := 0; i < 3; i++ {
		if _, _, err := v.Lock2D(); err != nil {
			t.Fatal(err)
		}
		if err := v.Unlock2D(); err != nil {
			t.Fatal(err)
		}
		if _, _, _, err := buf.Lock(); err != nil {
			t.Fatal(err)
		}
		if err := buf.Unlock(); err != nil {
			t.Fatal(err)
		}
	}
	if got := dev.Stats().StagingCreated; got != 1 {
		t.Errorf("StagingCreated = %d, want 1", got)
	}
}

func TestNestedLockWidening(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, tex := newBuffer(t, dev, pixfmt.FormatL8, 4, 1)
	v := query2D(t, buf)

	if _, err := v.Lock2DSize(LockRead); err != nil {
		t.Fatal(err)
	}
	r, err := v.Lock2DSize(LockWrite)
	if err != nil {
		t.Fatalf("Write joining Read error = %v, want nil", err)
	}
	if buf.mode != modeReadWrite {
		t.Errorf("mode = %v, want ReadWrite", buf.mode)
	}
	copy(r.Scanline0, "wxyz")
	if err := v.Unlock2D(); err != nil {
		t.Fatal(err)
	}
	if got := dev.Stats().CopiesFromStaging; got != 0 {
		t.Errorf("inner unlock wrote back")
	}
	if err := v.Unlock2D(); err != nil {
		t.Fatal(err)
	}
	if got := string(packed(t, tex)); got != "wxyz" {
		t.Errorf("texture = %q, want wxyz", got)
	}
}

func TestNestedLockConflict(t *testing.T) {
	tests := []struct {
		name  string
		flags LockFlags
	}{
		{"read", LockRead},
		{"read-write", LockReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := software.New(software.DefaultConfig())
			buf, _ := newBuffer(t, dev, pixfmt.FormatL8, 4, 1)
			v := query2D(t, buf)

			if _, err := v.Lock2DSize(LockWrite); err != nil {
				t.Fatal(err)
			}
			if _, err := v.Lock2DSize(tt.flags); !errors.Is(err, ErrWasLocked) {
				t.Errorf("%v joining Write error = %v, want ErrWasLocked", tt.flags, err)
			}
			if _, _, err := v.Lock2D(); !errors.Is(err, ErrWasLocked) {
				t.Errorf("Lock2D joining Write error = %v, want ErrWasLocked", err)
			}
			if buf.locks != 1 || buf.mode != modeWriteOnly {
				t.Errorf("state = %d %v, want 1 WriteOnly", buf.locks, buf.mode)
			}
			if _, err := v.Lock2DSize(LockWrite); err != nil {
				t.Errorf("Write joining Write error = %v", err)
			}
			v.Unlock2D()
			v.Unlock2D()
		})
	}
}

func TestLockInvalidFlags(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatL8, 4, 1)
	v := query2D(t, buf)

	for _, f := range []LockFlags{0, 4, 7} {
		if _, err := v.Lock2DSize(f); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Lock2DSize(%v) error = %v, want ErrInvalidArgument", f, err)
		}
	}
	if got := dev.Stats().StagingCreated; got != 0 {
		t.Errorf("invalid flags created staging")
	}
}

func TestModeExclusion(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatNV12, 16, 16)
	v := query2D(t, buf)

	// Whole-buffer first.
	if _, _, _, err := buf.Lock(); err != nil {
		t.Fatal(err)
	}
	for _, f := range []LockFlags{LockRead, LockWrite, LockReadWrite} {
		if _, err := v.Lock2DSize(f); !errors.Is(err, ErrUnexpected) {
			t.Errorf("Lock2DSize(%v) during Lock error = %v, want ErrUnexpected", f, err)
		}
	}
	if err := v.Unlock2D(); !errors.Is(err, ErrUnexpected) {
		t.Errorf("Unlock2D during Lock error = %v, want ErrUnexpected", err)
	}
	if err := v.ContiguousCopyTo(make([]byte, v.ContiguousLength())); !errors.Is(err, ErrUnexpected) {
		t.Errorf("ContiguousCopyTo during Lock error = %v, want ErrUnexpected", err)
	}
	if buf.locks != 1 {
		t.Errorf("locks = %d, want 1", buf.locks)
	}
	if err := buf.Unlock(); err != nil {
		t.Fatal(err)
	}

	// Tiled first.
	if _, err := v.Lock2DSize(LockRead); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := buf.Lock(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Lock during Lock2D error = %v, want ErrInvalidRequest", err)
	}
	if err := buf.Unlock(); !errors.Is(err, ErrWasUnlocked) {
		t.Errorf("Unlock during Lock2D error = %v, want ErrWasUnlocked", err)
	}
	if err := v.Unlock2D(); err != nil {
		t.Fatal(err)
	}
}

func TestUnlock2DWithoutLock(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatL8, 4, 1)
	v := query2D(t, buf)

	if err := v.Unlock2D(); !errors.Is(err, ErrWasUnlocked) {
		t.Errorf("Unlock2D() error = %v, want ErrWasUnlocked", err)
	}
	if _, _, err := v.Scanline0AndPitch(); !errors.Is(err, ErrWasUnlocked) {
		t.Errorf("Scanline0AndPitch() error = %v, want ErrWasUnlocked", err)
	}
	if _, _, err := v.Lock2D(); err != nil {
		t.Fatal(err)
	}
	if err := v.Unlock2D(); err != nil {
		t.Fatal(err)
	}
	if err := v.Unlock2D(); !errors.Is(err, ErrWasUnlocked) {
		t.Errorf("second Unlock2D() error = %v, want ErrWasUnlocked", err)
	}
	if buf.locks != 0 {
		t.Errorf("locks = %d, want 0", buf.locks)
	}
}

func TestLock2DFaults(t *testing.T) {
	tests := []struct {
		name    string
		faults  software.Faults
		flags   LockFlags
		wantErr error
	}{
		{"staging", software.Faults{CreateStaging: errBoom}, LockWrite, ErrResourceCreation},
		{"readback", software.Faults{Copy: errBoom}, LockRead, ErrMapFailed},
		{"map", software.Faults{Map: errBoom}, LockWrite, ErrMapFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := software.New(software.DefaultConfig())
			buf, _ := newBuffer(t, dev, pixfmt.FormatARGB32, 4, 4)
			v := query2D(t, buf)

			dev.SetFaults(tt.faults)
			if _, err := v.Lock2DSize(tt.flags); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Lock2DSize() error = %v, want %v", err, tt.wantErr)
			}
			if buf.locks != 0 || buf.mode != modeUnlocked {
				t.Errorf("failed lock changed state: %d %v", buf.locks, buf.mode)
			}
		})
	}
}

func TestUnlock2DWritebackFailure(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatARGB32, 4, 4)
	v := query2D(t, buf)

	if _, err := v.Lock2DSize(LockWrite); err != nil {
		t.Fatal(err)
	}
	dev.SetFaults(software.Faults{Copy: errBoom})
	if err := v.Unlock2D(); !errors.Is(err, ErrWritebackFailed) || !errors.Is(err, errBoom) {
		t.Errorf("Unlock2D() error = %v, want ErrWritebackFailed", err)
	}
	if buf.locks != 0 || buf.mode != modeUnlocked {
		t.Error("state not reset after failed writeback")
	}
	dev.SetFaults(software.Faults{})
	if _, err := v.Lock2DSize(LockRead); err != nil {
		t.Errorf("Lock2DSize() after failed writeback error = %v", err)
	}
	v.Unlock2D()
}

func TestContiguousCopy(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, tex := newBuffer(t, dev, pixfmt.FormatI420, 32, 8)
	v := query2D(t, buf)

	if v.IsContiguousFormat() {
		t.Error("IsContiguousFormat() = true, want false")
	}
	if got := v.ContiguousLength(); got != 32*8*3/2 {
		t.Errorf("ContiguousLength() = %d, want %d", got, 32*8*3/2)
	}

	out := make([]byte, v.ContiguousLength()+10)
	if err := v.ContiguousCopyTo(out); err != nil {
		t.Fatalf("ContiguousCopyTo() error = %v", err)
	}
	if !bytes.Equal(out[:v.ContiguousLength()], packed(t, tex)) {
		t.Error("ContiguousCopyTo() content differs from texture")
	}

	in := pattern(v.ContiguousLength(), 0x77)
	if err := v.ContiguousCopyFrom(in); err != nil {
		t.Fatalf("ContiguousCopyFrom() error = %v", err)
	}
	if !bytes.Equal(packed(t, tex), in) {
		t.Error("ContiguousCopyFrom() did not reach the texture")
	}
	if buf.locks != 0 {
		t.Errorf("locks = %d after bulk copies, want 0", buf.locks)
	}
}

func TestContiguousCopyCapacity(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatNV12, 16, 16)
	v := query2D(t, buf)

	short := make([]byte, v.ContiguousLength()-1)
	if err := v.ContiguousCopyTo(short); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ContiguousCopyTo(short) error = %v, want ErrInvalidArgument", err)
	}
	if err := v.ContiguousCopyFrom(short); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ContiguousCopyFrom(short) error = %v, want ErrInvalidArgument", err)
	}
	if s := dev.Stats(); s.StagingCreated != 0 || s.Maps != 0 {
		t.Errorf("capacity check touched the GPU: %+v", s)
	}
}

func TestContiguousCopyFromWritebackFailureIsLogged(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatL8, 4, 4)
	v := query2D(t, buf)

	// Staging exists so the only copy left is the writeback.
	if _, err := v.Lock2DSize(LockWrite); err != nil {
		t.Fatal(err)
	}
	v.Unlock2D()

	dev.SetFaults(software.Faults{Copy: errBoom})
	if err := v.ContiguousCopyFrom(make([]byte, 16)); err != nil {
		t.Errorf("ContiguousCopyFrom() error = %v, want nil", err)
	}
	if buf.locks != 0 {
		t.Errorf("locks = %d, want 0", buf.locks)
	}
}

func TestCopy2DTo(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	src, srcTex := newBuffer(t, dev, pixfmt.FormatNV12, 16, 8)
	dst, dstTex := newBuffer(t, dev, pixfmt.FormatNV12, 16, 8)

	if err := query2D(t, src).Copy2DTo(query2D(t, dst)); err != nil {
		t.Fatalf("Copy2DTo() error = %v", err)
	}
	if !bytes.Equal(packed(t, dstTex), packed(t, srcTex)) {
		t.Error("destination differs from source")
	}
	if src.locks != 0 || dst.locks != 0 {
		t.Error("Copy2DTo left a lock open")
	}

	other, _ := newBuffer(t, dev, pixfmt.FormatNV12, 16, 16)
	if err := query2D(t, src).Copy2DTo(query2D(t, other)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Copy2DTo(size mismatch) error = %v, want ErrInvalidArgument", err)
	}
	if err := query2D(t, src).Copy2DTo(query2D(t, src)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Copy2DTo(self) error = %v, want ErrInvalidArgument", err)
	}
	if err := query2D(t, src).Copy2DTo(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Copy2DTo(nil) error = %v, want ErrInvalidArgument", err)
	}
}

func TestBottomUp(t *testing.T) {
	dev := software.New(software.DefaultConfig())
	buf, _ := newBuffer(t, dev, pixfmt.FormatARGB32, 4, 4, WithBottomUp(true))
	if !query2D(t, buf).BottomUp() {
		t.Error("BottomUp() = false, want true")
	}
}
