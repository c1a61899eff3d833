// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/motion_emulator/internal/sensors"
	"github.com/relabs-tech/motion_emulator/internal/wiimote"
)

var calibrationUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Nominal counts per g in the 8-bit report domain.
const reportCountsPerG = float64(wiimote.AccelOneG - wiimote.AccelZeroG)

// CalibrationSession holds the state of an active calibration run.
type CalibrationSession struct {
	Conn   *websocket.Conn
	reader sensors.RawReader

	accelRange byte
	gyroRange  byte

	mu           sync.Mutex
	currentPhase string
	currentStep  int
	results      CalibrationResult

	// Raw means captured during the accel phase.
	accelUpZ   float64
	accelDownZ float64
}

// CalibrationResult is the file written at the end of a run. The ZeroG and
// OneG codes feed the CALIBRATION_ZERO_G / CALIBRATION_ONE_G config keys.
type CalibrationResult struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	// Gyroscope calibration
	GyroBiasX        float64 `json:"gyro_bias_x"`
	GyroBiasY        float64 `json:"gyro_bias_y"`
	GyroBiasZ        float64 `json:"gyro_bias_z"`
	GyroConfidence   float64 `json:"gyro_confidence"`
	GyroStaticStdDev float64 `json:"gyro_static_stddev"`

	// Accelerometer calibration in sensor units
	AccelBiasZ  float64 `json:"accel_bias_z"`
	AccelScaleZ float64 `json:"accel_scale_z"`

	// Derived 8-bit report codes
	ZeroG uint16 `json:"zero_g"`
	OneG  uint16 `json:"one_g"`

	AccelConfidence float64 `json:"accel_confidence"`
	AccelAvgStdDev  float64 `json:"accel_avg_stddev"`

	TotalSamples int `json:"total_samples"`
}

// WebSocket message types
type WSMessage struct {
	Action string `json:"action"` // init, next, cancel
}

type WSResponse struct {
	Type     string                 `json:"type"` // phase, step, progress, stats, complete, error
	Phase    string                 `json:"phase,omitempty"`
	Step     string                 `json:"step,omitempty"`
	Progress float64                `json:"progress,omitempty"`
	Stats    map[string]interface{} `json:"stats,omitempty"`
	Results  interface{}            `json:"results,omitempty"`
	Message  string                 `json:"message,omitempty"`
}

// NewCalibrationHandler returns the websocket handler for the wizard.
// The reader must already be initialized.
func NewCalibrationHandler(reader sensors.RawReader, accelRange, gyroRange byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := calibrationUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("calibration: websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()

		session := &CalibrationSession{
			Conn:       conn,
			reader:     reader,
			accelRange: accelRange,
			gyroRange:  gyroRange,
			results: CalibrationResult{
				Version:     1,
				Timestamp:   time.Now(),
				AccelScaleZ: 1.0,
			},
		}

		// Main message loop
		for {
			var msg WSMessage
			err := conn.ReadJSON(&msg)
			if err != nil {
				log.Printf("calibration: websocket read error: %v", err)
				break
			}

			switch msg.Action {
			case "init":
				log.Printf("calibration: session initialized")

			case "next":
				session.mu.Lock()
				err := session.runNextStep()
				session.mu.Unlock()
				if err != nil {
					session.sendError(err.Error())
				}

			case "cancel":
				log.Printf("calibration: cancelled by user")
				return
			}
		}
	}
}

func (s *CalibrationSession) runNextStep() error {
	// State machine for calibration phases
	switch s.currentPhase {
	case "":
		// Start with gyroscope
		s.currentPhase = "gyro"
		s.currentStep = 0
		return s.runGyroStep()

	case "gyro":
		s.currentPhase = "accel"
		s.currentStep = 0
		return s.runAccelStep()

	case "accel":
		s.currentStep++
		if s.currentStep >= 2 {
			return s.complete()
		}
		return s.runAccelStep()
	}

	return nil
}

// runGyroStep samples the gyro with the controller at rest to estimate
// per-axis bias and noise.
func (s *CalibrationSession) runGyroStep() error {
	s.sendPhase("gyro")
	s.sendStep("gyro-static", "gyro")
	s.sendProgress(5)
	time.Sleep(1 * time.Second) // Give user time to place device

	samples := make([][3]float64, 0, 100)
	for i := 0; i < 100; i++ {
		raw, err := s.reader.ReadRaw()
		if err != nil {
			return err
		}
		_, gyro := sensors.Scale(raw, s.accelRange, s.gyroRange)
		samples = append(samples, [3]float64{gyro.X, gyro.Y, gyro.Z})
		s.sendProgress(5 + float64(i)*0.9)
		time.Sleep(10 * time.Millisecond)
	}

	s.results.GyroBiasX = mean(samples, 0)
	s.results.GyroBiasY = mean(samples, 1)
	s.results.GyroBiasZ = mean(samples, 2)
	s.results.GyroStaticStdDev = (stddev(samples, 0) + stddev(samples, 1) + stddev(samples, 2)) / 3.0
	s.results.TotalSamples += len(samples)

	if s.results.GyroStaticStdDev > 0 {
		s.results.GyroConfidence = 100.0 / (1.0 + s.results.GyroStaticStdDev*1000.0)
	}

	s.sendStats()
	s.sendActionReady()
	return nil
}

// runAccelStep samples gravity with the controller face up, then face
// down. The opposing pair gives the Z bias and scale, from which the
// report zero-g and one-g codes are derived.
func (s *CalibrationSession) runAccelStep() error {
	s.sendPhase("accel")

	steps := []string{"accel-up", "accel-down"}
	stepID := steps[s.currentStep]
	s.sendStep(stepID, "accel")
	s.sendProgress(float64(s.currentStep) * 50)

	time.Sleep(2 * time.Second) // Give user time to position device

	samples := make([][3]float64, 0, 50)
	for i := 0; i < 50; i++ {
		raw, err := s.reader.ReadRaw()
		if err != nil {
			return err
		}
		accel, _ := sensors.Scale(raw, s.accelRange, s.gyroRange)
		// Work in g so the pair algebra stays unit free.
		samples = append(samples, [3]float64{
			accel.X / sensors.StandardGravity,
			accel.Y / sensors.StandardGravity,
			accel.Z / sensors.StandardGravity,
		})
		s.sendProgress(float64(s.currentStep)*50 + float64(i))
		time.Sleep(50 * time.Millisecond)
	}

	meanZ := mean(samples, 2)

	switch s.currentStep {
	case 0: // Z+ up, reads +1g
		s.accelUpZ = meanZ
	case 1: // Z- down, reads -1g
		s.accelDownZ = meanZ

		// bias is the midpoint, scale the measured swing per g
		s.results.AccelBiasZ = (s.accelUpZ + s.accelDownZ) / 2.0
		s.results.AccelScaleZ = (s.accelUpZ - s.accelDownZ) / 2.0

		// Map into the 8-bit report domain around the factory codes.
		zeroG := float64(wiimote.AccelZeroG) + s.results.AccelBiasZ*reportCountsPerG
		oneG := zeroG + s.results.AccelScaleZ*reportCountsPerG
		s.results.ZeroG = uint16(math.Round(zeroG))
		s.results.OneG = uint16(math.Round(oneG))
	}

	s.results.TotalSamples += len(samples)

	avgStdDev := (stddev(samples, 0) + stddev(samples, 1) + stddev(samples, 2)) / 3.0
	if s.currentStep == 0 {
		s.results.AccelAvgStdDev = avgStdDev
	} else {
		s.results.AccelAvgStdDev = (s.results.AccelAvgStdDev + avgStdDev) / 2.0
	}

	if s.results.AccelAvgStdDev > 0 {
		s.results.AccelConfidence = 100.0 / (1.0 + s.results.AccelAvgStdDev*100.0)
	}

	s.sendStats()
	s.sendActionReady()
	return nil
}

func (s *CalibrationSession) complete() error {
	// Save results to file
	filename := fmt.Sprintf("%d_motion_calibration.json", time.Now().Unix())

	// Use current directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	filepath := filepath.Join(cwd, filename)

	data, err := json.MarshalIndent(s.results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal calibration results: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write calibration file: %w", err)
	}

	log.Printf("calibration: saved results to %s (zero_g=%d one_g=%d)",
		filepath, s.results.ZeroG, s.results.OneG)

	// Send completion message
	s.Conn.WriteJSON(WSResponse{
		Type:    "complete",
		Results: map[string]interface{}{"filename": filename},
	})

	return nil
}

func (s *CalibrationSession) sendPhase(phase string) {
	s.Conn.WriteJSON(WSResponse{
		Type:  "phase",
		Phase: phase,
	})
}

func (s *CalibrationSession) sendStep(step, phase string) {
	s.Conn.WriteJSON(WSResponse{
		Type:  "step",
		Step:  step,
		Phase: phase,
	})
}

func (s *CalibrationSession) sendProgress(progress float64) {
	s.Conn.WriteJSON(WSResponse{
		Type:     "progress",
		Progress: progress,
	})
}

func (s *CalibrationSession) sendStats() {
	stats := map[string]interface{}{
		"gyro":    s.results.GyroConfidence,
		"accel":   s.results.AccelConfidence,
		"samples": s.results.TotalSamples,
	}
	s.Conn.WriteJSON(WSResponse{
		Type:  "stats",
		Stats: stats,
	})
}

func (s *CalibrationSession) sendActionReady() {
	s.Conn.WriteJSON(WSResponse{
		Type:    "action",
		Message: "ready",
	})
}

func (s *CalibrationSession) sendError(message string) {
	s.Conn.WriteJSON(WSResponse{
		Type:    "error",
		Message: message,
	})
}

// Helper functions for statistics
func mean(data [][3]float64, axis int) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v[axis]
	}
	return sum / float64(len(data))
}

func stddev(data [][3]float64, axis int) float64 {
	if len(data) == 0 {
		return 0
	}
	m := mean(data, axis)
	variance := 0.0
	for _, v := range data {
		diff := v[axis] - m
		variance += diff * diff
	}
	variance /= float64(len(data))
	return math.Sqrt(variance)
}
