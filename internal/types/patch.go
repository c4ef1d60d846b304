// patch.go
//
// MovieWeb, a service for keeping users and the movies they like, with OMDb lookups
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of movieweb.
// movieweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// movieweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with movieweb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

// Patch is one field of a partial update.
// The zero Patch leaves the field untouched; Set writes a value; Clear
// writes NULL. This keeps "omit" distinct from "empty" and "zero".
type Patch[T any] struct {
	set   bool
	value *T
}

// Set returns a Patch that writes v.
func Set[T any](v T) Patch[T] {
	return Patch[T]{set: true, value: &v}
}

// Clear returns a Patch that writes NULL.
func Clear[T any]() Patch[T] {
	return Patch[T]{set: true}
}

// SetIf returns Set(v) when ok, otherwise the zero Patch.
func SetIf[T any](v T, ok bool) Patch[T] {
	if !ok {
		return Patch[T]{}
	}
	return Set(v)
}

// IsSet reports whether the Patch changes the field at all.
func (p Patch[T]) IsSet() bool {
	return p.set
}

// IsClear reports whether the Patch writes NULL.
func (p Patch[T]) IsClear() bool {
	return p.set && p.value == nil
}

// Value returns the value to write, nil for Clear or an unset Patch.
func (p Patch[T]) Value() *T {
	return p.value
}

// Apply writes the Patch into dst, which must be a nullable column.
func (p Patch[T]) Apply(dst **T) {
	if !p.set {
		return
	}
	if p.value == nil {
		*dst = nil
		return
	}
	v := *p.value
	*dst = &v
}
