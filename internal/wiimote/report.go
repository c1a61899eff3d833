// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package wiimote

import (
	"github.com/relabs-tech/motion_emulator/internal/motion"
)

// Report is one per-tick sensor sample, ready for JSON publishing. Wire
// framing and EEPROM-backed calibration blocks stay with the protocol
// layer; this carries the physical readings only.
type Report struct {
	// Calibrated 10-bit accelerometer codes.
	AccelX uint16 `json:"accel_x"`
	AccelY uint16 `json:"accel_y"`
	AccelZ uint16 `json:"accel_z"`

	// Angular velocity in rad/s.
	GyroX float64 `json:"gyro_x"`
	GyroY float64 `json:"gyro_y"`
	GyroZ float64 `json:"gyro_z"`

	// Pointer angle in radians (pitch, 0, yaw).
	PointPitch float64 `json:"point_pitch"`
	PointYaw   float64 `json:"point_yaw"`
}

// BuildReport samples the device into a Report. Calibration codes are
// 8-bit values shifted to the 10-bit range, matching the stored
// calibration block format.
func (d *Device) BuildReport() Report {
	accel := motion.ConvertAccelData(d.TotalAcceleration(),
		d.calibration.ZeroG()<<2, d.calibration.OneG()<<2)
	gyro := d.TotalAngularVelocity()
	angle := d.PointAngle()

	return Report{
		AccelX: accel.X,
		AccelY: accel.Y,
		AccelZ: accel.Z,

		GyroX: gyro.X,
		GyroY: gyro.Y,
		GyroZ: gyro.Z,

		PointPitch: angle.X,
		PointYaw:   angle.Z,
	}
}
