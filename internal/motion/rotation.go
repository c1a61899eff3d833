// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// RotationFromAccel derives an orientation from an accelerometer reading,
// taking the reading as the direction of gravity.
func RotationFromAccel(accel vecmath.Vec3) vecmath.Quaternion {
	normalizedAccel := accel.Normalized()

	up := vecmath.Vec3{Z: 1}
	angle := math.Acos(normalizedAccel.Dot(up))
	axis := normalizedAccel.Cross(up)

	// A zero axis means a perfect up/down orientation; any horizontal
	// axis will do.
	if axis.LengthSquared() == 0 {
		axis = vecmath.Vec3{Y: 1}
	}
	return vecmath.QuaternionRotate(angle, axis.Normalized())
}

// RotationFromGyro converts an angular displacement vector (axis scaled by
// angle) into a quaternion via the exponential map.
func RotationFromGyro(gyro vecmath.Vec3) vecmath.Quaternion {
	length := gyro.Length()
	if length == 0 {
		return vecmath.QuaternionIdentity()
	}
	return vecmath.QuaternionRotate(length, gyro.Scaled(1/length))
}

// RotationalMatrix composes the per-axis angles into a rotation matrix,
// applied in x, y, z order.
func RotationalMatrix(angle vecmath.Vec3) vecmath.Matrix33 {
	return vecmath.Matrix33RotateZ(angle.Z).
		Mul(vecmath.Matrix33RotateY(angle.Y)).
		Mul(vecmath.Matrix33RotateX(angle.X))
}

// Pitch extracts the pitch angle of a world rotation.
func Pitch(worldRotation vecmath.Quaternion) float64 {
	vec := worldRotation.RotateVector(vecmath.Vec3{Z: 1})
	return math.Atan2(vec.Y, vecmath.Vec2{X: vec.X, Y: vec.Z}.Length())
}

// Roll extracts the roll angle of a world rotation.
func Roll(worldRotation vecmath.Quaternion) float64 {
	vec := worldRotation.RotateVector(vecmath.Vec3{Z: 1})
	return math.Atan2(vec.X, vec.Z)
}

// Yaw extracts the yaw angle of a world rotation.
func Yaw(worldRotation vecmath.Quaternion) float64 {
	vec := worldRotation.Inverted().RotateVector(vecmath.Vec3{Y: 1})
	return math.Atan2(vec.X, vec.Y)
}
