// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// EmulateSwing translates the force input into a position and twist-angle
// target, with jerk scaled by distance from center so outward swings are
// fast and the return to rest is gentle.
func EmulateSwing(state *MotionState, in SwingInput, dt float64) {
	input := in.State()
	maxDistance := in.MaxDistance()
	maxAngle := in.TwistAngle()

	// Y/Z are swapped because X/Y of the input maps to X/Z of the device.
	// X is negated because device X+ points to the left.
	targetPosition := vecmath.Vec3{X: -input.X, Y: -input.Z, Z: input.Y}

	// Jerk is scaled based on input distance from center.
	// X and Z scale is connected for sane movement about the circle.
	xzTargetDist := vecmath.Vec2{X: targetPosition.X, Y: targetPosition.Z}.Length()
	yTargetDist := math.Abs(targetPosition.Y)
	targetDist := vecmath.Vec3{X: xzTargetDist, Y: yTargetDist, Z: xzTargetDist}

	ones := vecmath.Vec3{X: 1, Y: 1, Z: 1}
	speed := vecmath.Lerp(
		ones.Scaled(in.ReturnSpeed()),
		ones.Scaled(in.Speed()),
		targetDist.Scaled(1/maxDistance),
	)

	// Convert the m/s "speed" to the jerk required to reach it when
	// traveling 1 meter.
	maxJerk := speed.Mul(speed).Mul(speed).Scaled(4)

	// Rotational acceleration to approximately match the completion time
	// of the swing.
	maxAccel := maxAngle * speed.X * speed.X

	// Apply rotation based on amount of swing.
	targetAngle := vecmath.Vec3{X: -targetPosition.Z, Y: 0, Z: targetPosition.X}.
		Scaled(maxAngle / maxDistance)

	// Angular acceleration * 2 seems to reduce spurious stabs in some
	// games. TODO: Fix properly.
	ApproachAngleWithAccel(&state.RotationalState, targetAngle, maxAccel*2, dt)

	// Clamp X and Z rotation.
	for _, c := range [2]int{0, 2} {
		if math.Abs(state.Angle.Axis(c)/maxAngle) > 1 &&
			sign(state.AngularVelocity.Axis(c)) == sign(state.Angle.Axis(c)) {
			state.AngularVelocity.SetAxis(c, 0)
		}
	}

	// Adjust target position backwards based on swing progress and max
	// angle to simulate a swing with an outstretched arm.
	backwardsAngle := math.Max(math.Abs(state.Angle.X), math.Abs(state.Angle.Z))
	backwardsMovement := (1 - math.Cos(backwardsAngle)) * maxDistance

	// TODO: Backswing jerk should be based on x/z speed.

	ApproachPositionWithJerk(&state.PositionalState,
		targetPosition.Add(vecmath.Vec3{Y: backwardsMovement}), maxJerk, dt)

	// Clamp left/right/up/down movement within the configured circle.
	xzProgress := vecmath.Vec2{X: state.Position.X, Y: state.Position.Z}.Length() / maxDistance
	if xzProgress > 1 {
		state.Position.X /= xzProgress
		state.Position.Z /= xzProgress

		state.Acceleration.X, state.Acceleration.Z = 0, 0
		state.Velocity.X, state.Velocity.Z = 0, 0
	}

	// Clamp forward/backward movement within the configured distance.
	// Additional backwards movement is allowed for the back swing.
	yProgress := state.Position.Y / maxDistance
	maxYProgress := 2 - math.Cos(maxAngle)
	if yProgress > maxYProgress || yProgress < -1 {
		state.Position.Y = math.Min(math.Max(state.Position.Y, -maxDistance), maxYProgress*maxDistance)
		state.Velocity.Y = 0
		state.Acceleration.Y = 0
	}
}
