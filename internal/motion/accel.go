// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// GravityAcceleration is standard gravity in m/s^2.
const GravityAcceleration = 9.80665

// AccelData is a calibrated 10-bit accelerometer reading.
type AccelData struct {
	X, Y, Z uint16
}

// ConvertAccelData quantizes a continuous acceleration vector into the
// calibrated sensor encoding. zeroG and oneG are the calibration codes for
// 0 g and 1 g on each axis; results clamp to the 10-bit range, never wrap.
func ConvertAccelData(accel vecmath.Vec3, zeroG, oneG uint16) AccelData {
	scaled := accel.Scaled((float64(oneG) - float64(zeroG)) / GravityAcceleration)

	const maxValue = 1<<10 - 1

	quantize := func(v float64) uint16 {
		code := math.Round(v + float64(zeroG))
		if code < 0 {
			return 0
		}
		if code > maxValue {
			return maxValue
		}
		return uint16(code)
	}

	return AccelData{
		X: quantize(scaled.X),
		Y: quantize(scaled.Y),
		Z: quantize(scaled.Z),
	}
}
