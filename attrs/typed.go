// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package attrs

import (
	"fmt"

	"github.com/google/uuid"
)

func typed[T any](s *Store, key uuid.UUID, want Type) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.lookup(key)
	if err != nil {
		return zero, err
	}
	if it.typ != want {
		return zero, fmt.Errorf("%w: %s is %v, not %v", ErrInvalidType, key, it.typ, want)
	}
	return it.value.(T), nil
}

// Uint32 returns the uint32 item stored under key.
func (s *Store) Uint32(key uuid.UUID) (uint32, error) {
	return typed[uint32](s, key, TypeUint32)
}

// Uint64 returns the uint64 item stored under key.
func (s *Store) Uint64(key uuid.UUID) (uint64, error) {
	return typed[uint64](s, key, TypeUint64)
}

// Float64 returns the float64 item stored under key.
func (s *Store) Float64(key uuid.UUID) (float64, error) {
	return typed[float64](s, key, TypeFloat64)
}

// GUID returns the identifier item stored under key.
func (s *Store) GUID(key uuid.UUID) (uuid.UUID, error) {
	return typed[uuid.UUID](s, key, TypeGUID)
}

// String returns the string item stored under key.
func (s *Store) String(key uuid.UUID) (string, error) {
	return typed[string](s, key, TypeString)
}

// Blob returns a copy of the blob item stored under key.
func (s *Store) Blob(key uuid.UUID) ([]byte, error) {
	b, err := typed[[]byte](s, key, TypeBlob)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// SetUint32 stores a uint32 item.
func (s *Store) SetUint32(key uuid.UUID, v uint32) error { return s.Set(key, v) }

// SetUint64 stores a uint64 item.
func (s *Store) SetUint64(key uuid.UUID, v uint64) error { return s.Set(key, v) }

// SetFloat64 stores a float64 item.
func (s *Store) SetFloat64(key uuid.UUID, v float64) error { return s.Set(key, v) }

// SetGUID stores an identifier item.
func (s *Store) SetGUID(key uuid.UUID, v uuid.UUID) error { return s.Set(key, v) }

// SetString stores a string item.
func (s *Store) SetString(key uuid.UUID, v string) error { return s.Set(key, v) }

// SetBlob stores a copy of b.
func (s *Store) SetBlob(key uuid.UUID, b []byte) error {
	if b == nil {
		b = []byte{}
	}
	return s.Set(key, b)
}
