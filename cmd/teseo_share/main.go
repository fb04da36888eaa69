// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"gitlab.com/postmarketOS/teseo_link/internal/config"
	"gitlab.com/postmarketOS/teseo_link/internal/pool"
	"gitlab.com/postmarketOS/teseo_link/internal/server"
	"gitlab.com/postmarketOS/teseo_link/internal/teseo"
	"gitlab.com/postmarketOS/teseo_link/internal/transport"
)

const maxReplies = 8

func usage() {
	flag.CommandLine.Usage()
}

func main() {
	var confFile string
	flag.StringVar(&confFile, "c", "/etc/teseo_link.conf", "Configuration file to use.")
	var help bool
	flag.BoolVar(&help, "h", false, "Print help and quit.")

	flag.Usage = func() {
		fmt.Println("usage: teseo_share [OPTION...]")
		fmt.Println("Polls a Teseo module for position reports while clients are")
		fmt.Println("connected to the socket, and shares the sentences with them.")
		fmt.Println("Options:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if help {
		usage()
		return
	}

	conf, err := config.Parse(confFile)
	if err != nil {
		log.Fatal(err)
	}

	ser, err := transport.OpenSerial(conf.DevicePath, conf.BaudRate)
	if err != nil {
		log.Fatal(err)
	}
	defer ser.Close()

	gps := teseo.New()
	ser.Bind(gps)

	// a board that wires up the reset line gets the full bring-up; one
	// strapped for I2C boot (AN5203) is ready as-is
	if conf.ResetChip != "" {
		rst, err := transport.OpenReset(conf.ResetChip, conf.ResetLine)
		if err != nil {
			log.Fatal(err)
		}
		rst.Bind(gps)
		fmt.Println("Configuring module...")
		gps.Init()
		rst.Close()
	}

	connPool := pool.New()
	go connPool.Start()

	startChan := make(chan bool)
	stopChan := make(chan bool)

	srv := server.New(conf.Socket, conf.OwnerGroup, startChan, stopChan, connPool)

	// the poll loop is the only goroutine that touches the driver
	go pollLoop(gps, connPool, time.Duration(conf.PollIntervalMs)*time.Millisecond, startChan, stopChan)

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}

// pollLoop queries the module on every tick while at least one client is
// connected and broadcasts the validated sentences. Invalid replies are
// skipped; the next tick retries.
func pollLoop(gps *teseo.Driver, connPool *pool.Pool, interval time.Duration, startChan <-chan bool, stopChan <-chan bool) {
	replies := make([]string, maxReplies)

	for {
		// wait for the first client
		<-startChan

		ticker := time.NewTicker(interval)
	poll:
		for {
			select {
			case <-stopChan:
				break poll
			case <-ticker.C:
				if sentence, valid := gps.AskGLL(); valid {
					connPool.Broadcast <- strings.TrimRight(sentence, "\r\n")
				}
				count, valid := gps.AskGSA(replies)
				if !valid {
					continue
				}
				for _, s := range replies[:count] {
					connPool.Broadcast <- strings.TrimRight(s, "\r\n")
				}
			}
		}
		ticker.Stop()
	}
}
