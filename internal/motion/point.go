// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// Nintendo recommends a distance of 1-3 meters.
const neutralPointerDistance = 2.0

// Pointer acceleration ceilings. Higher values are more responsive but
// increase the rate of MotionPlus desync; at the default, sync is very
// good and responsiveness still appears instant.
const (
	defaultPointerAccel    = 2 * math.Pi * 8
	responsivePointerAccel = 2 * math.Pi * 50
)

// EmulatePoint drives the pointer gesture from a (per-title corrected)
// cursor position. An invisible cursor resets the state and parks the
// device far along the forward axis so the sensor bar is always behind it.
func EmulatePoint(state *MotionState, in CursorInput, dt float64) {
	cursor, visible := in.State()

	if !visible {
		// Move the device a kilometer forward so the sensor bar is
		// always behind it.
		*state = MotionState{}
		state.Position = vecmath.Vec3{Y: -1000}
		return
	}

	wasHidden := state.Position.Y < 0

	// When the sensor bar position is on bottom, apply the offset setting
	// negatively. Odd, but it keeps cursor behavior consistent.
	height := in.VerticalOffset()
	if !in.SensorBarOnTop() {
		height = -height
	}

	yawScale := in.TotalYaw() / 2
	pitchScale := in.TotalPitch() / 2

	// Just jump to the target position.
	state.Position = vecmath.Vec3{X: 0, Y: neutralPointerDistance, Z: -height}
	state.Velocity = vecmath.Vec3{}
	state.Acceleration = vecmath.Vec3{}

	targetAngle := vecmath.Vec3{X: pitchScale * -cursor.Y, Y: 0, Z: yawScale * -cursor.X}

	// If the cursor was hidden, jump to the target angle immediately.
	if wasHidden {
		state.Angle = targetAngle
		state.AngularVelocity = vecmath.Vec3{}
		return
	}

	maxAccel := float64(defaultPointerAccel)
	if in.Responsive() {
		maxAccel = responsivePointerAccel
	}
	ApproachAngleWithAccel(&state.RotationalState, targetAngle, maxAccel, dt)
}
