// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import "fmt"

// Slot holds one optional handler function of type F. The zero value is an
// unarmed slot. A slot is armed with Set and disarmed with Unset; invoking
// the handler of an unarmed slot is a programming error in the embedding
// application, not a runtime condition, so Fn panics rather than returning
// an error.
type Slot[F any] struct {
	fn    F
	armed bool
}

// Set arms the slot with fn.
func (s *Slot[F]) Set(fn F) {
	s.fn = fn
	s.armed = true
}

// Unset disarms the slot and drops the handler.
func (s *Slot[F]) Unset() {
	var zero F
	s.fn = zero
	s.armed = false
}

// Armed reports whether a handler is currently set.
func (s *Slot[F]) Armed() bool {
	return s.armed
}

// Fn returns the armed handler for invocation. It panics if the slot is
// unarmed; callers that cannot guarantee arming must check Armed first.
func (s *Slot[F]) Fn() F {
	if !s.armed {
		panic(fmt.Sprintf("callback: invoking unarmed %T", s.fn))
	}
	return s.fn
}
