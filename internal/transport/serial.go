// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transport supplies ready-made handler implementations for the
// driver's write/read/reset slots: a host UART via go.bug.st/serial and a
// reset line via the Linux GPIO character device. Embedders with other
// buses (I2C, SPI) arm the slots with their own handlers instead.
package transport

import (
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"

	"gitlab.com/postmarketOS/teseo_link/internal/teseo"
)

// replyTimeout is how long one reply read waits for the first byte of a
// burst before reporting an empty buffer. It also bounds the inter-byte
// gap that ends a burst.
const replyTimeout = 250 * time.Millisecond

// Serial is a Teseo wired to a host UART.
type Serial struct {
	port serial.Port
}

func OpenSerial(path string, baud int) (s *Serial, err error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		err = fmt.Errorf("transport.OpenSerial: %w", err)
		return
	}

	if err = port.SetReadTimeout(replyTimeout); err != nil {
		port.Close()
		err = fmt.Errorf("transport.OpenSerial: %w", err)
		return
	}

	return &Serial{port: port}, nil
}

// WriteString sends one command to the module. It has the shape of a
// teseo.WriteFunc; transfer errors are printed, matching the slot
// contract of returning nothing.
func (s *Serial) WriteString(cmd string) {
	if _, err := s.port.Write([]byte(cmd)); err != nil {
		fmt.Printf("transport/Serial.WriteString: %s\n", err)
	}
}

// ReadReply collects one reply burst from the module and has the shape of
// a teseo.ReadFunc. It accumulates bytes until the port goes quiet for
// replyTimeout; a bus with nothing to say yields "", which is what the
// driver's init wait loop keys on to give up.
func (s *Serial) ReadReply() string {
	var reply strings.Builder
	buf := make([]byte, 256)
	for {
		n, err := s.port.Read(buf)
		if err != nil {
			fmt.Printf("transport/Serial.ReadReply: %s\n", err)
			break
		}
		if n == 0 {
			// read timeout: the burst (if any) is over
			break
		}
		reply.Write(buf[:n])
	}
	return reply.String()
}

// Bind arms d's writer and reader slots with this port. The reset slot is
// wired separately (see Reset) since not every board exposes the line.
func (s *Serial) Bind(d *teseo.Driver) {
	d.Writer().Set(s.WriteString)
	d.Reader().Set(s.ReadReply)
}

func (s *Serial) Close() (err error) {
	if err = s.port.Close(); err != nil {
		err = fmt.Errorf("transport/Serial.Close: %w", err)
	}
	return
}
