// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

// Package teseo drives the ST Teseo GNSS IC over whatever byte transport
// the embedding application provides. The driver understands the Teseo
// command set and reply framing; the actual I2C/UART transfer is supplied
// through three handler slots (write, read, reset) that must be armed
// before use.
//
// Everything is synchronous and blocking: a request writes the command,
// reads one raw reply and validates it, in that order, on the caller's
// goroutine. A Driver is not safe for concurrent use; one device handle
// belongs to one execution context at a time.
package teseo

import (
	"strings"

	"gitlab.com/postmarketOS/teseo_link/internal/callback"
)

// WriteFunc sends s to the module. It must not return before the transfer
// is complete.
type WriteFunc func(s string)

// ReadFunc returns one raw reply buffer from the module, or "" when the
// transport has nothing to deliver.
type ReadFunc func() string

// ResetFunc pulses the module's reset line and blocks until the module has
// finished booting (the Liv3f needs about 4 seconds).
type ResetFunc func()

// Driver is one connection to a Teseo module. The zero value is usable
// once its writer and reader slots are armed; the resetter is only needed
// for Init.
type Driver struct {
	writer   callback.Slot[WriteFunc]
	reader   callback.Slot[ReadFunc]
	resetter callback.Slot[ResetFunc]

	// every single-line request parses into two lines: the data
	// sentence and the status line
	scratch [2]string
}

func New() *Driver {
	return &Driver{}
}

// Writer exposes the slot invoked to send bytes to the module.
func (d *Driver) Writer() *callback.Slot[WriteFunc] {
	return &d.writer
}

// Reader exposes the slot invoked to fetch one reply from the module.
func (d *Driver) Reader() *callback.Slot[ReadFunc] {
	return &d.reader
}

// Resetter exposes the slot invoked to hardware-reset the module.
func (d *Driver) Resetter() *callback.Slot[ResetFunc] {
	return &d.resetter
}

func (d *Driver) write(s string) {
	d.writer.Fn()(s)
}

func (d *Driver) read() string {
	return d.reader.Fn()()
}

// Init configures the module for use as a position sensor: reset, suspend
// the GPS engine, clear the UART and I2C message lists, disable command
// echoing, then restart the engine and wait for it to come back.
//
// Init is optional: a module preset for I2C per AN5203 boots into this
// state on its own, and skipping Init saves the 4 s reset delay. When it
// is used, all three handler slots must be armed first; that precondition
// is checked (and violations panic) before the reset line is touched.
//
// The restart wait loop ends when a reply carries the restart echo or
// when a read comes back empty. The empty-read exit is a transport
// heuristic (verified on I2C only): a transport that never echoes and
// never runs dry will hang here, so the embedder's read handler must
// eventually produce one or the other.
func (d *Driver) Init() {
	if !d.writer.Armed() || !d.reader.Armed() || !d.resetter.Armed() {
		panic("teseo: Init requires writer, reader and resetter to be armed")
	}

	d.resetter.Fn()()

	d.write(cmdSuspend)
	d.write(cmdClearMsgLUart)
	d.write(cmdClearMsgLI2c)
	d.write(cmdDisableEcho)

	d.write(cmdRestart)
	for {
		s := d.read()
		if len(s) == 0 || strings.Contains(s, restartEcho) {
			break
		}
	}
}

// AskNMEA sends cmd and returns the single data sentence of its reply.
// valid reports whether the reply parsed and the status line echoed the
// request; a rejected reply leaves s empty.
func (d *Driver) AskNMEA(cmd Command) (s string, valid bool) {
	d.write(cmd.Request)
	_, valid = cmd.ParseReply(d.read(), d.scratch[:])
	return d.scratch[0], valid
}

// AskNMEAMultiple sends cmd and parses its reply into out, for reports
// that legitimately answer with several sentences. out is caller-owned
// and bounds how many sentences are extracted; see Command.ParseReply.
func (d *Driver) AskNMEAMultiple(cmd Command, out []string) (count int, valid bool) {
	d.write(cmd.Request)
	return cmd.ParseReply(d.read(), out)
}

// AskGLL requests geographic position (latitude/longitude).
func (d *Driver) AskGLL() (string, bool) {
	return d.AskNMEA(Gll)
}

// AskGGA requests fix data.
func (d *Driver) AskGGA() (string, bool) {
	return d.AskNMEA(Gga)
}

// AskRMC requests the recommended minimum position/velocity/time set.
func (d *Driver) AskRMC() (string, bool) {
	return d.AskNMEA(Rmc)
}

// AskVTG requests course over ground and ground speed.
func (d *Driver) AskVTG() (string, bool) {
	return d.AskNMEA(Vtg)
}

// AskGSV requests satellites in view, a multi-sentence report.
func (d *Driver) AskGSV(out []string) (int, bool) {
	return d.AskNMEAMultiple(Gsv, out)
}

// AskGSA requests active satellites and DOP, a multi-sentence report.
func (d *Driver) AskGSA(out []string) (int, bool) {
	return d.AskNMEAMultiple(Gsa, out)
}
