// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// ApproachAngleWithAccel advances each angle axis toward its target under a
// bounded acceleration. The sign of the effort is chosen by whether the
// predicted stopping point has passed the target (bang-bang control), so
// the angle reaches the target with no overshoot and zero terminal
// velocity.
func ApproachAngleWithAccel(state *RotationalState, target vecmath.Vec3, maxAccel, dt float64) {
	stopDistance := vecmath.Vec3{
		X: StopDistance(state.AngularVelocity.X, maxAccel),
		Y: StopDistance(state.AngularVelocity.Y, maxAccel),
		Z: StopDistance(state.AngularVelocity.Z, maxAccel),
	}

	offset := target.Sub(state.Angle)
	stopOffset := offset.Sub(stopDistance)

	for i := 0; i < 3; i++ {
		accel := sign(stopOffset.Axis(i)) * maxAccel

		vel := state.AngularVelocity.Axis(i) + accel*dt
		change := vel*dt + accel*dt*dt/2

		// If the new angle will overshoot, stop right on target.
		if math.Abs(offset.Axis(i)) < 1e-4 || change/offset.Axis(i) > 1.0 {
			state.AngularVelocity.SetAxis(i, offset.Axis(i)/dt)
			state.Angle.SetAxis(i, target.Axis(i))
		} else {
			state.AngularVelocity.SetAxis(i, vel)
			state.Angle.SetAxis(i, state.Angle.Axis(i)+change)
		}
	}
}

// ApproachPositionWithJerk is the third-order analogue of
// ApproachAngleWithAccel: acceleration is slewed by a bounded per-axis
// jerk, producing smooth acceleration transitions and exact stops.
func ApproachPositionWithJerk(state *PositionalState, target, maxJerk vecmath.Vec3, dt float64) {
	stopDistance := vecmath.Vec3{
		X: StopDistanceJerk(state.Velocity.X, state.Acceleration.X, maxJerk.X),
		Y: StopDistanceJerk(state.Velocity.Y, state.Acceleration.Y, maxJerk.Y),
		Z: StopDistanceJerk(state.Velocity.Z, state.Acceleration.Z, maxJerk.Z),
	}

	offset := target.Sub(state.Position)
	stopOffset := offset.Sub(stopDistance)

	for i := 0; i < 3; i++ {
		jerk := sign(stopOffset.Axis(i)) * maxJerk.Axis(i)

		accel := state.Acceleration.Axis(i) + jerk*dt
		vel := state.Velocity.Axis(i) + accel*dt + jerk*dt*dt/2
		change := vel*dt + accel*dt*dt/2 + jerk*dt*dt*dt/6

		// If the new position will overshoot, assume we would have
		// stopped right on target.
		// TODO: Improve check to see if less jerk would have caused undershoot.
		if change/offset.Axis(i) > 1.0 {
			state.Acceleration.SetAxis(i, 0)
			state.Velocity.SetAxis(i, 0)
			state.Position.SetAxis(i, target.Axis(i))
		} else {
			state.Acceleration.SetAxis(i, accel)
			state.Velocity.SetAxis(i, vel)
			state.Position.SetAxis(i, state.Position.Axis(i)+change)
		}
	}
}
