// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package texbuf

import (
	"errors"
	"fmt"

	"github.com/gogpu/texbuf/attrs"
	"github.com/gogpu/texbuf/gpucore"
	"github.com/google/uuid"
)

// ResourceBuffer is the resource-access view: the texture itself and
// objects associated with the buffer.
type ResourceBuffer struct {
	*buffer
}

// Resource returns the texture with one added reference if it can be
// viewed through id.
func (v *ResourceBuffer) Resource(id gpucore.ResourceID) (gpucore.Texture, error) {
	if !v.texture.Supports(id) {
		return nil, fmt.Errorf("%w: resource %v", ErrNotSupported, id)
	}
	v.texture.Retain()
	return v.texture, nil
}

// SubresourceIndex returns the subresource the buffer was created for.
func (v *ResourceBuffer) SubresourceIndex() uint32 {
	return v.subresource
}

// AssociatedObject returns the object stored under key. Refcounted
// objects are retained for the caller.
func (v *ResourceBuffer) AssociatedObject(key uuid.UUID) (any, error) {
	obj, err := v.attrs.Acquire(key)
	if errors.Is(err, attrs.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return obj, err
}

// SetAssociatedObject stores obj under key. A key that already holds a
// value fails with ErrAlreadyExists. A nil obj clears the key.
func (v *ResourceBuffer) SetAssociatedObject(key uuid.UUID, obj any) error {
	if obj == nil {
		v.attrs.Delete(key)
		return nil
	}
	err := v.attrs.SetIfAbsent(key, obj)
	if errors.Is(err, attrs.ErrExists) {
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	return err
}

// ClearAssociatedObject removes any object stored under key.
func (v *ResourceBuffer) ClearAssociatedObject(key uuid.UUID) {
	v.attrs.Delete(key)
}

// AttributeView exposes the buffer's attribute store. Associated objects
// live in the same store.
type AttributeView struct {
	*buffer
	*attrs.Store
}
