// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package motion is the fixed-tick kinematic core of the emulator. Each
// gesture owns a small kinematic state which is advanced once per tick by
// the matching approach controller; the IMU cursor runs its own
// quaternion-based fusion filter. Nothing here blocks, allocates on the
// heap, or fails: degenerate numerical cases are handled by branch guards.
package motion

import "github.com/relabs-tech/motion_emulator/internal/vecmath"

// PositionalState is the linear kinematic state of one gesture.
type PositionalState struct {
	Position     vecmath.Vec3
	Velocity     vecmath.Vec3
	Acceleration vecmath.Vec3
}

// RotationalState is the rotational kinematic state of one gesture.
// The three axes are treated as independent scalar systems, not a coupled
// 3D rotation; games depend on this behavior.
type RotationalState struct {
	Angle           vecmath.Vec3
	AngularVelocity vecmath.Vec3
}

// MotionState combines both for gestures that move and rotate.
type MotionState struct {
	PositionalState
	RotationalState
}

// IMUCursorState is the fused absolute orientation of the pointer.
type IMUCursorState struct {
	Rotation        vecmath.Quaternion
	RecenteredPitch float64
}

// Reset returns the cursor state to identity. Used on device reset and
// whenever pointing is disabled or gyro data is absent.
func (s *IMUCursorState) Reset() {
	s.Rotation = vecmath.QuaternionIdentity()
	s.RecenteredPitch = 0
}
