// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import "github.com/relabs-tech/motion_emulator/internal/vecmath"

// The gesture generators read their input through these narrow interfaces.
// Implementations live in internal/input; they bundle the live normalized
// control state (typically [-1,1] per axis) with per-gesture settings.

// TiltInput feeds the tilt gesture.
type TiltInput interface {
	// State returns normalized roll (x) and pitch (y).
	State() vecmath.Vec2
	// MaxRotationalVelocity returns the configured peak rate in rad/s.
	MaxRotationalVelocity() float64
}

// SwingInput feeds the swing gesture.
type SwingInput interface {
	// State returns the normalized force input vector.
	State() vecmath.Vec3
	// MaxDistance returns the swing radius in meters.
	MaxDistance() float64
	// TwistAngle returns the maximum twist in radians.
	TwistAngle() float64
	// Speed and ReturnSpeed are target speeds in m/s for outward and
	// return travel.
	Speed() float64
	ReturnSpeed() float64
}

// ShakeInput feeds the shake gesture.
type ShakeInput interface {
	// State returns per-axis activation (0 or 1).
	State() vecmath.Vec3
	// Intensity returns the peak-to-peak travel in meters.
	Intensity() float64
	// Frequency returns full shake cycles per second.
	Frequency() float64
}

// CursorInput feeds the pointing gesture. Cursor coordinates and the
// derived vertical-offset/yaw/pitch parameters arrive already corrected by
// the per-title provider; the core treats them as opaque.
type CursorInput interface {
	// State returns the cursor position and whether it is visible.
	State() (cursor vecmath.Vec2, visible bool)
	// VerticalOffset returns the sensor bar offset in meters.
	VerticalOffset() float64
	// TotalYaw and TotalPitch return the full field of view in radians.
	TotalYaw() float64
	TotalPitch() float64
	// SensorBarOnTop reports the configured sensor bar position.
	SensorBarOnTop() bool
	// Responsive selects the high acceleration ceiling for the pointer.
	Responsive() bool
}

// IMUPointInput carries the settings of the gyro pointing feature.
type IMUPointInput interface {
	Enabled() bool
	AccelWeight() float64
	// TotalYaw returns the full yaw range in radians.
	TotalYaw() float64
	// Recenter reports whether the recenter control is active.
	Recenter() bool
}

// IMUInput yields raw inertial samples. The second return value reports
// whether a sample is available this tick.
type IMUInput interface {
	// Accelerometer returns acceleration in m/s^2.
	Accelerometer() (vecmath.Vec3, bool)
	// Gyroscope returns angular velocity in rad/s.
	Gyroscope() (vecmath.Vec3, bool)
}
