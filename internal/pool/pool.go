// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package pool

import (
	"net"
)

// Client is one connected consumer of polled sentences.
type Client struct {
	Send chan string
	Conn *net.Conn
}

// Pool fans polled NMEA sentences out to every connected client.
type Pool struct {
	Register   chan *Client
	Unregister chan *Client
	Clients    map[*Client]bool
	Broadcast  chan string
}

func New() *Pool {
	return &Pool{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan string),
	}
}

func (p *Pool) Start() {
	for {
		select {
		case c := <-p.Register:
			p.Clients[c] = true
		case c := <-p.Unregister:
			delete(p.Clients, c)
		case sentence := <-p.Broadcast:
			for c := range p.Clients {
				c.Send <- sentence
			}
		}
	}
}
