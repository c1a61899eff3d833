// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/motion_emulator/internal/app"
	"github.com/relabs-tech/motion_emulator/internal/config"
)

func main() {
	log.Println("starting motion emulator web server (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal("motion_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunWeb(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
