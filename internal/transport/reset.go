// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package transport

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"gitlab.com/postmarketOS/teseo_link/internal/teseo"
)

const (
	// how long the reset line is held low
	resetPulse = 10 * time.Millisecond
	// boot delay after releasing reset (Liv3f datasheet: ~4 s to first
	// accepted command)
	resetBootDelay = 4 * time.Second
)

// Reset drives the module's reset pin through the Linux GPIO character
// device.
type Reset struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// OpenReset requests the given line (e.g. "gpiochip0", 17) as an output,
// initially high (reset released).
func OpenReset(chipName string, offset int) (r *Reset, err error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		err = fmt.Errorf("transport.OpenReset: %w", err)
		return
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(1),
		gpiocdev.WithConsumer("teseo_link"))
	if err != nil {
		chip.Close()
		err = fmt.Errorf("transport.OpenReset: %w", err)
		return
	}

	return &Reset{chip: chip, line: line}, nil
}

// Pulse pulls reset low, releases it and blocks out the module's boot
// delay, per the reset slot contract. It has the shape of a
// teseo.ResetFunc.
func (r *Reset) Pulse() {
	if err := r.line.SetValue(0); err != nil {
		fmt.Printf("transport/Reset.Pulse: %s\n", err)
	}
	time.Sleep(resetPulse)
	if err := r.line.SetValue(1); err != nil {
		fmt.Printf("transport/Reset.Pulse: %s\n", err)
	}
	time.Sleep(resetBootDelay)
}

// Bind arms d's resetter slot with this line.
func (r *Reset) Bind(d *teseo.Driver) {
	d.Resetter().Set(r.Pulse)
}

func (r *Reset) Close() (err error) {
	err = r.line.Close()
	r.line = nil
	if r.chip != nil {
		r.chip.Close()
		r.chip = nil
	}
	if err != nil {
		err = fmt.Errorf("transport/Reset.Close: %w", err)
	}
	return
}
