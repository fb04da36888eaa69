// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"gitlab.com/postmarketOS/teseo_link/internal/nmea"
	"gitlab.com/postmarketOS/teseo_link/internal/teseo"
	"gitlab.com/postmarketOS/teseo_link/internal/transport"
)

// plenty for one GSV/GSA constellation dump
const maxReplies = 8

func usage() {
	flag.CommandLine.Usage()
}

func main() {
	var devPath string
	flag.StringVar(&devPath, "d", "/dev/ttyUSB0", "Serial device the Teseo is wired to")
	var baud int
	flag.IntVar(&baud, "b", 9600, "Baud rate.")
	var resetChip string
	flag.StringVar(&resetChip, "r", "", "GPIO chip of the Teseo reset line (e.g. \"gpiochip0\"), required for 'init'.")
	var resetLine int
	flag.IntVar(&resetLine, "l", 0, "GPIO line offset of the Teseo reset line.")

	var help bool
	flag.BoolVar(&help, "h", false, "Print help and quit.")

	flag.Usage = func() {
		fmt.Println("usage: teseoctl [OPTION...] COMMAND ")
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println("Commands:")
		fmt.Printf("  %-12s\t%s\n", "init", "Reset and configure the module (needs -r/-l).")
		fmt.Printf("  %-12s\t%s\n", "gll", "Query geographic position.")
		fmt.Printf("  %-12s\t%s\n", "gga", "Query fix data.")
		fmt.Printf("  %-12s\t%s\n", "rmc", "Query recommended minimum data.")
		fmt.Printf("  %-12s\t%s\n", "vtg", "Query course and speed over ground.")
		fmt.Printf("  %-12s\t%s\n", "gsv", "Query satellites in view.")
		fmt.Printf("  %-12s\t%s\n", "gsa", "Query active satellites and DOP.")
	}

	flag.Parse()

	if help {
		usage()
		return
	}

	ser, err := transport.OpenSerial(devPath, baud)
	if err != nil {
		log.Fatal(err)
	}
	defer ser.Close()

	gps := teseo.New()
	ser.Bind(gps)

	switch cmd := flag.Arg(0); cmd {
	case "init":
		if resetChip == "" {
			fmt.Println("'init' needs the reset line (-r/-l)")
			usage()
			return
		}
		rst, err := transport.OpenReset(resetChip, resetLine)
		if err != nil {
			log.Fatal(err)
		}
		defer rst.Close()
		rst.Bind(gps)
		gps.Init()
		fmt.Println("Module configured")
	case "gll":
		printSingle(gps.AskGLL())
	case "gga":
		printSingle(gps.AskGGA())
	case "rmc":
		printSingle(gps.AskRMC())
	case "vtg":
		printSingle(gps.AskVTG())
	case "gsv":
		replies := make([]string, maxReplies)
		count, valid := gps.AskGSV(replies)
		printMultiple(replies, count, valid)
	case "gsa":
		replies := make([]string, maxReplies)
		count, valid := gps.AskGSA(replies)
		printMultiple(replies, count, valid)
	default:
		usage()
	}
}

func printSingle(sentence string, valid bool) {
	if !valid {
		log.Fatal("module returned an invalid or mismatched reply")
	}
	printSentence(sentence)
}

func printMultiple(sentences []string, count int, valid bool) {
	if !valid {
		log.Fatal("module returned an invalid or mismatched reply")
	}
	for _, s := range sentences[:count] {
		printSentence(s)
	}
}

func printSentence(sentence string) {
	sentence = strings.TrimRight(sentence, "\r\n")
	fmt.Println(sentence)
	if s, err := nmea.Parse(sentence); err == nil {
		fmt.Printf("  %s: %s\n", s.Type, strings.Join(s.Data, " "))
	}
}
