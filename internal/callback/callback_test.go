// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import "testing"

func TestSlotArming(t *testing.T) {
	var s Slot[func(string)]

	if s.Armed() {
		t.Error("zero slot should be unarmed")
	}

	var got string
	s.Set(func(v string) { got = v })
	if !s.Armed() {
		t.Error("slot should be armed after Set")
	}

	s.Fn()("hello")
	if got != "hello" {
		t.Errorf("handler not invoked, got: %q", got)
	}

	s.Unset()
	if s.Armed() {
		t.Error("slot should be unarmed after Unset")
	}
}

func TestSlotUnarmedPanics(t *testing.T) {
	var s Slot[func()]

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unarmed slot")
		}
	}()
	s.Fn()
}

func TestSlotRearm(t *testing.T) {
	var s Slot[func() int]

	s.Set(func() int { return 1 })
	s.Set(func() int { return 2 })
	if v := s.Fn()(); v != 2 {
		t.Errorf("expected latest handler, got: %d", v)
	}
}
