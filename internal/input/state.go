// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package input provides the live control state feeding the motion core:
// a thread-safe snapshot holder, settings-backed providers implementing
// the motion package interfaces, a serial bridge for external input decks,
// and a mock source for development without hardware.
package input

import (
	"sync"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// State is one snapshot of the normalized control state. Axes are in
// [-1,1]; shake axes are 0 or 1.
type State struct {
	Tilt  vecmath.Vec2 `json:"tilt"`
	Swing vecmath.Vec3 `json:"swing"`
	Shake vecmath.Vec3 `json:"shake"`

	Cursor        vecmath.Vec2 `json:"cursor"`
	CursorVisible bool         `json:"cursor_visible"`

	Recenter bool `json:"recenter"`

	// Real inertial samples for the passthrough path, when available.
	Accel      vecmath.Vec3 `json:"accel"`
	AccelValid bool         `json:"accel_valid"`
	Gyro       vecmath.Vec3 `json:"gyro"`
	GyroValid  bool         `json:"gyro_valid"`
}

// Holder stores the latest snapshot. The sampling thread writes, the tick
// loop reads.
type Holder struct {
	mu    sync.RWMutex
	state State
}

func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the full snapshot.
func (h *Holder) Set(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

// Update mutates the snapshot in place under the lock.
func (h *Holder) Update(f func(*State)) {
	h.mu.Lock()
	f(&h.state)
	h.mu.Unlock()
}

// Get returns the latest snapshot.
func (h *Holder) Get() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}
