package main

import (
	"log"

	"github.com/relabs-tech/motion_emulator/internal/app"
	"github.com/relabs-tech/motion_emulator/internal/config"
)

func main() {
	log.Println("starting motion emulator console (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal("motion_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsole(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
