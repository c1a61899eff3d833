// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// EmulateTilt maps the normalized roll/pitch input onto a target angle and
// approaches it with bounded acceleration.
func EmulateTilt(state *RotationalState, in TiltInput, dt float64) {
	target := in.State()

	// 180 degrees is currently the max tilt value.
	roll := target.X * math.Pi
	pitch := target.Y * math.Pi

	targetAngle := vecmath.Vec3{X: pitch, Y: -roll, Z: 0}

	// For each axis, wrap around current angle if target is farther than
	// 180 degrees so we never spin the long way around.
	for i := 0; i < 3; i++ {
		angle := state.Angle.Axis(i)
		if math.Abs(angle-targetAngle.Axis(i)) > math.Pi {
			state.Angle.SetAxis(i, angle-math.Copysign(2*math.Pi, angle))
		}
	}

	// Chosen so a stop from max velocity covers one full revolution of
	// braking distance.
	maxVel := in.MaxRotationalVelocity()
	maxAccel := maxVel * maxVel / (2 * math.Pi)

	ApproachAngleWithAccel(state, targetAngle, maxAccel, dt)
}
