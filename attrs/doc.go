// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package attrs implements a typed attribute store keyed by 128-bit
// identifiers.
//
// Items keep their insertion order. Values that implement [Refcounted] are
// retained while stored:
//
//	s := attrs.New()
//	_ = s.SetUint32(key, 42)
//	v, err := s.Uint32(key)
//	s.Clear() // releases stored objects
package attrs
