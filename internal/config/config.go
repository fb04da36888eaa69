// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
)

type Config struct {
	Socket     string `toml:"socket"`
	OwnerGroup string `toml:"group"`
	DevicePath string `toml:"device_path"`
	BaudRate   int    `toml:"device_baud_rate"`
	// reset line wiring; leave reset_gpio_chip empty when the module is
	// strapped for I2C boot and needs no init sequence
	ResetChip string `toml:"reset_gpio_chip"`
	ResetLine int    `toml:"reset_gpio_line"`
	// how often the daemon polls the module for a fix, in milliseconds
	PollIntervalMs int `toml:"poll_interval_ms"`
}

func Parse(file string) (c *Config, err error) {
	contents, err := os.ReadFile(file)
	if err != nil {
		err = fmt.Errorf("config.Parse(): %w", err)
		return
	}

	c = &Config{
		BaudRate:       9600,
		PollIntervalMs: 1000,
	}

	if err = toml.Unmarshal(contents, c); err != nil {
		err = fmt.Errorf("config.Parse(): %w", err)
	}

	return
}
