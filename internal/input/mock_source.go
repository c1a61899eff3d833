// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package input

import (
	"math"
	"time"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// Source is anything that can provide control snapshots over time.
// Later you'll have: mock source, serial deck, maybe replay source from file, etc.
type Source interface {
	Next() State
}

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock input source that generates smooth changing
// control values, for development without an input deck attached.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

// Next returns the current mock snapshot.
func (m *mockSource) Next() State {
	elapsed := time.Since(m.start).Seconds()

	return State{
		Tilt: vecmath.Vec2{
			X: 0.5 * math.Sin(elapsed),
			Y: 0.3 * math.Cos(elapsed*0.7),
		},
		Cursor: vecmath.Vec2{
			X: 0.8 * math.Sin(elapsed*0.4),
			Y: 0.6 * math.Cos(elapsed*0.3),
		},
		CursorVisible: true,
	}
}

// Feed copies snapshots from the source into the holder at the given
// interval until stop is closed.
func Feed(src Source, h *Holder, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.Set(src.Next())
		}
	}
}
