// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// ComplementaryFilter nudges the gyro-integrated orientation toward the
// direction reported by the accelerometer. accelNormal is the reference
// "up" vector in device space.
func ComplementaryFilter(gyroscope vecmath.Quaternion, accelerometer vecmath.Vec3,
	accelWeight float64, accelNormal vecmath.Vec3) vecmath.Quaternion {

	gyroVec := gyroscope.RotateVector(accelNormal)
	normalizedAccel := accelerometer.Normalized()

	cosAngle := normalizedAccel.Dot(gyroVec)

	// Only adjust when the gyro to accel angle is strictly between 0 and
	// 180 degrees; parallel and antiparallel vectors leave no defined
	// rotation axis.
	absCosAngle := math.Abs(cosAngle)
	if absCosAngle > 0 && absCosAngle < 1 {
		axis := gyroVec.Cross(normalizedAccel).Normalized()
		return vecmath.QuaternionRotate(math.Acos(cosAngle)*accelWeight, axis).Mul(gyroscope)
	}
	return gyroscope
}

// EmulateIMUCursor integrates gyro input into the orientation quaternion
// and corrects long-term drift with the accelerometer. With pointing
// disabled or no gyro sample available the state resets to identity.
func EmulateIMUCursor(state *IMUCursorState, point IMUPointInput, imu IMUInput, dt float64) {
	angVel, ok := imu.Gyroscope()

	if !point.Enabled() || !ok {
		state.Reset()
		return
	}

	// Apply rotation from gyro data.
	gyroRotation := RotationFromGyro(angVel.Scaled(-dt))
	state.Rotation = gyroRotation.Mul(state.Rotation)

	// If we have some non-zero accel data use it to adjust gyro drift.
	if accel, ok := imu.Accelerometer(); ok && accel.LengthSquared() != 0 {
		state.Rotation = ComplementaryFilter(state.Rotation, accel,
			point.AccelWeight(), vecmath.Vec3{Z: 1})
	}

	// Clamp yaw within the configured bounds.
	yaw := Yaw(state.Rotation)
	maxYaw := point.TotalYaw() / 2
	targetYaw := math.Min(math.Max(yaw, -maxYaw), maxYaw)

	// Handle the recenter control being active.
	if point.Recenter() {
		state.RecenteredPitch = Pitch(state.Rotation)
		targetYaw = 0
	}

	// Adjust yaw as needed.
	if yaw != targetYaw {
		state.Rotation = state.Rotation.Mul(vecmath.QuaternionRotateZ(targetYaw - yaw))
	}

	// Normalize for floating point inaccuracies.
	state.Rotation = state.Rotation.Normalized()
}
