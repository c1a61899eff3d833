// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sensors reads a real MPU-9250 over SPI as the optional
// passthrough source for the emulated accelerometer/gyroscope: with a
// physical IMU attached, its samples replace the synthesized readings and
// drive the fusion filter directly.
package sensors

// Raw is a single raw IMU sample.
type Raw struct {
	Ax int16 `json:"ax"` // accel
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`

	Gx int16 `json:"gx"` // gyro
	Gy int16 `json:"gy"`
	Gz int16 `json:"gz"`
}

// RawReader is anything yielding raw IMU samples.
type RawReader interface {
	ReadRaw() (Raw, error)
}
