// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"errors"

	"github.com/gogpu/texbuf/pixfmt"
)

// Buffer errors. Errors returned by this package wrap one of these; test
// with errors.Is.
var (
	// ErrUnsupportedFormat is returned by New for a texture format with no
	// stride rule in the format table.
	ErrUnsupportedFormat = pixfmt.ErrUnsupportedFormat

	// ErrInvalidFormat is returned by New when the resource is not a 2D
	// texture or its dimensions do not fit its format.
	ErrInvalidFormat = errors.New("texbuf: invalid resource format")

	// ErrResourceCreation is returned by the first tiled lock when the
	// staging texture cannot be created.
	ErrResourceCreation = errors.New("texbuf: staging texture creation failed")

	// ErrMapFailed is returned by a lock when the staging texture cannot be
	// read back or mapped.
	ErrMapFailed = errors.New("texbuf: staging texture map failed")

	// ErrWritebackFailed is returned by an unlock when the staging texture
	// cannot be copied back into the source texture. The lock is released
	// regardless.
	ErrWritebackFailed = errors.New("texbuf: writeback failed")

	// ErrInvalidRequest is returned by Lock while a tiled lock is open.
	ErrInvalidRequest = errors.New("texbuf: tiled lock is open")

	// ErrUnexpected is returned by tiled lock operations while a
	// whole-buffer lock is open.
	ErrUnexpected = errors.New("texbuf: whole-buffer lock is open")

	// ErrWasLocked is returned when a nested tiled lock asks to read while
	// a write-only lock is open.
	ErrWasLocked = errors.New("texbuf: buffer is locked for writing")

	// ErrWasUnlocked is returned by unlocks and mapped-pointer queries with
	// no matching open lock.
	ErrWasUnlocked = errors.New("texbuf: buffer is not locked")

	// ErrAlreadyExists is returned when setting an associated object on a
	// key that already holds one.
	ErrAlreadyExists = errors.New("texbuf: object already set")

	// ErrNotFound is returned for a missing associated object. The error
	// also wraps attrs.ErrNotFound.
	ErrNotFound = errors.New("texbuf: object not found")

	// ErrNotSupported is returned for unknown capabilities and resource
	// identifiers.
	ErrNotSupported = errors.New("texbuf: not supported")

	// ErrInvalidArgument is returned for out-of-range arguments.
	ErrInvalidArgument = errors.New("texbuf: invalid argument")

	// ErrOutOfMemory is returned by Lock when the scratch buffer cannot be
	// allocated.
	ErrOutOfMemory = errors.New("texbuf: out of memory")
)
