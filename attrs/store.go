// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package attrs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/google/uuid"
)

// Store errors.
var (
	// ErrNotFound is returned when no item exists for a key.
	ErrNotFound = errors.New("attrs: item not found")

	// ErrExists is returned by SetIfAbsent when the key is already set.
	ErrExists = errors.New("attrs: item already exists")

	// ErrInvalidType is returned by typed getters when the stored item has
	// a different type.
	ErrInvalidType = errors.New("attrs: invalid item type")

	// ErrNilValue is returned when storing a nil value.
	ErrNilValue = errors.New("attrs: nil value")
)

// Refcounted is implemented by values that share ownership through an
// explicit reference count. The store retains such values when they are
// stored and releases them when they are removed.
type Refcounted interface {
	Retain() int32
	Release() int32
}

// Type is the kind of a stored item.
type Type uint8

// Item types.
const (
	TypeUint32 Type = iota + 1
	TypeUint64
	TypeFloat64
	TypeGUID
	TypeString
	TypeBlob
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeFloat64:
		return "float64"
	case TypeGUID:
		return "guid"
	case TypeString:
		return "string"
	case TypeBlob:
		return "blob"
	case TypeObject:
		return "object"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

type item struct {
	typ   Type
	value any
}

func typeOf(v any) Type {
	switch v.(type) {
	case uint32:
		return TypeUint32
	case uint64:
		return TypeUint64
	case float64:
		return TypeFloat64
	case uuid.UUID:
		return TypeGUID
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	default:
		return TypeObject
	}
}

// Store is an ordered set of typed items keyed by 128-bit identifiers.
// Items enumerate in insertion order. A Store is safe for concurrent use;
// the zero value is not, use New.
type Store struct {
	mu    sync.Mutex
	items *linkedhashmap.Map
}

// New returns an empty store.
func New() *Store {
	return &Store{items: linkedhashmap.New()}
}

func newItem(v any) (item, error) {
	if v == nil {
		return item{}, ErrNilValue
	}
	it := item{typ: typeOf(v), value: v}
	switch it.typ {
	case TypeBlob:
		it.value = append([]byte(nil), v.([]byte)...)
	case TypeObject:
		if rc, ok := v.(Refcounted); ok {
			rc.Retain()
		}
	}
	return it, nil
}

func (it item) release() {
	if it.typ != TypeObject {
		return
	}
	if rc, ok := it.value.(Refcounted); ok {
		rc.Release()
	}
}

// lookup must be called with s.mu held.
func (s *Store) lookup(key uuid.UUID) (item, error) {
	v, found := s.items.Get(key)
	if !found {
		return item{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v.(item), nil
}

// Set stores v under key, replacing and releasing any previous item.
// uint32, uint64, float64, uuid.UUID, string and []byte values are stored
// as typed items; blobs are copied. Anything else is stored as an object.
func (s *Store) Set(key uuid.UUID, v any) error {
	it, err := newItem(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	old, found := s.items.Get(key)
	s.items.Put(key, it)
	s.mu.Unlock()

	if found {
		old.(item).release()
	}
	return nil
}

// SetIfAbsent stores v under key unless the key is already present, in
// which case it returns ErrExists and leaves the store unchanged.
func (s *Store) SetIfAbsent(key uuid.UUID, v any) error {
	if v == nil {
		return ErrNilValue
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.items.Get(key); found {
		return fmt.Errorf("%w: %s", ErrExists, key)
	}
	it, err := newItem(v)
	if err != nil {
		return err
	}
	s.items.Put(key, it)
	return nil
}

// Get returns the raw value stored under key. Blobs are returned as
// copies.
func (s *Store) Get(key uuid.UUID) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	if b, ok := it.value.([]byte); ok {
		return append([]byte(nil), b...), nil
	}
	return it.value, nil
}

// Acquire is Get for shared objects: a Refcounted value is retained before
// the store lock is released, so the caller owns one reference.
func (s *Store) Acquire(key uuid.UUID) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.lookup(key)
	if err != nil {
		return nil, err
	}
	if rc, ok := it.value.(Refcounted); ok && it.typ == TypeObject {
		rc.Retain()
	}
	return it.value, nil
}

// Type returns the type of the item stored under key.
func (s *Store) Type(key uuid.UUID) (Type, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.lookup(key)
	if err != nil {
		return 0, err
	}
	return it.typ, nil
}

// Delete removes the item stored under key and reports whether it existed.
func (s *Store) Delete(key uuid.UUID) bool {
	s.mu.Lock()
	old, found := s.items.Get(key)
	if found {
		s.items.Remove(key)
	}
	s.mu.Unlock()

	if found {
		old.(item).release()
	}
	return found
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Size()
}

// Keys returns every key in insertion order.
func (s *Store) Keys() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]uuid.UUID, 0, s.items.Size())
	for _, k := range s.items.Keys() {
		keys = append(keys, k.(uuid.UUID))
	}
	return keys
}

// Range calls fn for every item in insertion order until fn returns false.
// fn runs on a snapshot and may modify the store.
func (s *Store) Range(fn func(key uuid.UUID, typ Type, value any) bool) {
	type entry struct {
		key uuid.UUID
		it  item
	}
	s.mu.Lock()
	snapshot := make([]entry, 0, s.items.Size())
	iter := s.items.Iterator()
	for iter.Next() {
		snapshot = append(snapshot, entry{key: iter.Key().(uuid.UUID), it: iter.Value().(item)})
	}
	s.mu.Unlock()

	for _, e := range snapshot {
		if !fn(e.key, e.it.typ, e.it.value) {
			return
		}
	}
}

// Clear removes every item, releasing stored objects.
func (s *Store) Clear() {
	s.mu.Lock()
	values := s.items.Values()
	s.items.Clear()
	s.mu.Unlock()

	for _, v := range values {
		v.(item).release()
	}
}

// CopyTo sets every item of s on dst, in order.
func (s *Store) CopyTo(dst *Store) error {
	var err error
	s.Range(func(key uuid.UUID, _ Type, value any) bool {
		err = dst.Set(key, value)
		return err == nil
	})
	return err
}
