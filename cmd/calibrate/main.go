// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/relabs-tech/motion_emulator/internal/app"
	"github.com/relabs-tech/motion_emulator/internal/config"
	"github.com/relabs-tech/motion_emulator/internal/sensors"
)

func main() {
	configPath := flag.String("config", "./motion_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting motion emulator calibration wizard")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Get()

	if cfg.IMUSPIDevice == "" {
		log.Fatalf("IMU_SPI_DEVICE must be set to calibrate")
	}

	reader, err := sensors.NewMPU9250(cfg.IMUSPIDevice, cfg.IMUAccelRange, cfg.IMUGyroRange)
	if err != nil {
		log.Fatalf("failed to initialize IMU: %v", err)
	}

	http.HandleFunc("/ws/calibrate",
		app.NewCalibrationHandler(reader, cfg.IMUAccelRange, cfg.IMUGyroRange))
	http.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("calibration server listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
