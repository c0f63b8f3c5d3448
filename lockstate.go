// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import "fmt"

// LockFlags selects the access intent of a tiled lock.
type LockFlags uint8

// Lock flags.
const (
	// LockRead reads the texture into the mapping before it is returned.
	LockRead LockFlags = 1 << iota

	// LockWrite copies the mapping back into the texture on the final
	// unlock. A write-only first lock skips the readback.
	LockWrite

	// LockReadWrite does both.
	LockReadWrite = LockRead | LockWrite
)

func (f LockFlags) String() string {
	switch f {
	case LockRead:
		return "Read"
	case LockWrite:
		return "Write"
	case LockReadWrite:
		return "ReadWrite"
	default:
		return fmt.Sprintf("LockFlags(%d)", uint8(f))
	}
}

// lockMode is the accumulated intent of an open lock sequence.
type lockMode uint8

const (
	modeUnlocked lockMode = iota
	modeReadOnly
	modeWriteOnly
	modeReadWrite
)

func (m lockMode) String() string {
	switch m {
	case modeUnlocked:
		return "Unlocked"
	case modeReadOnly:
		return "ReadOnly"
	case modeWriteOnly:
		return "WriteOnly"
	case modeReadWrite:
		return "ReadWrite"
	default:
		return fmt.Sprintf("lockMode(%d)", uint8(m))
	}
}

func modeOf(f LockFlags) (lockMode, error) {
	switch f {
	case LockRead:
		return modeReadOnly, nil
	case LockWrite:
		return modeWriteOnly, nil
	case LockReadWrite:
		return modeReadWrite, nil
	default:
		return modeUnlocked, fmt.Errorf("%w: lock flags %v", ErrInvalidArgument, f)
	}
}

func (m lockMode) flags() LockFlags {
	switch m {
	case modeReadOnly:
		return LockRead
	case modeWriteOnly:
		return LockWrite
	case modeReadWrite:
		return LockReadWrite
	default:
		return 0
	}
}

func (m lockMode) reads() bool  { return m.flags()&LockRead != 0 }
func (m lockMode) writes() bool { return m.flags()&LockWrite != 0 }

// combine returns the mode after a lock with flags requested joins a
// sequence in mode current.
//
// A write-only sequence only admits further write-only locks. Every other
// join widens to the union, so a writer may join an open read-only
// sequence and the final unlock then writes back.
func combine(current lockMode, requested LockFlags) (lockMode, error) {
	next, err := modeOf(requested)
	if err != nil {
		return current, err
	}
	switch current {
	case modeUnlocked:
		return next, nil
	case modeWriteOnly:
		if requested != LockWrite {
			return current, fmt.Errorf("%w: %v lock joining write-only lock", ErrWasLocked, requested)
		}
		return current, nil
	default:
		return modeOf(current.flags() | requested)
	}
}
