// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package wiimote owns one emulated device instance: the per-gesture
// kinematic states, the fixed-tick dynamics step, and the composition of
// the individual gesture states into the final transform and sensor
// readings the report layer consumes.
package wiimote

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/motion"
	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// UpdateFreq is the polling rate in Hz; StepDynamics is invoked once per
// interval.
const UpdateFreq = 200

// Default accelerometer calibration codes (8-bit, shifted to 10-bit for
// conversion).
const (
	AccelZeroG = 0x80
	AccelOneG  = 0x9A
)

// Calibration supplies the zero-g/one-g codes used for quantization.
// Stored calibration replaces the factory defaults through this interface.
type Calibration interface {
	ZeroG() uint16
	OneG() uint16
}

type factoryCalibration struct{}

func (factoryCalibration) ZeroG() uint16 { return AccelZeroG }
func (factoryCalibration) OneG() uint16  { return AccelOneG }

// InputOverride optionally replaces a single axis of a named control
// group. Returning false leaves the value unchanged.
type InputOverride func(group string, axis int, value float64) (float64, bool)

// Override group names.
const (
	GroupAccelerometer = "IMUAccelerometer"
	GroupGyroscope     = "IMUGyroscope"
)

// Inputs bundles the per-gesture providers of a device.
type Inputs struct {
	Tilt     motion.TiltInput
	Swing    motion.SwingInput
	Shake    motion.ShakeInput
	Cursor   motion.CursorInput
	IMUPoint motion.IMUPointInput
	IMU      motion.IMUInput
}

// Device is one emulated motion controller. All state is owned here and
// mutated only by StepDynamics under the caller's lock.
type Device struct {
	inputs Inputs

	swingState  motion.MotionState
	tiltState   motion.RotationalState
	pointState  motion.MotionState
	shakeState  motion.PositionalState
	cursorState motion.IMUCursorState

	calibration Calibration
	override    InputOverride

	// Device held sideways or upright changes the base orientation.
	sideways bool
	upright  bool
}

// New creates a device with factory calibration.
func New(inputs Inputs) *Device {
	d := &Device{
		inputs:      inputs,
		calibration: factoryCalibration{},
	}
	d.Reset()
	return d
}

// SetCalibration installs stored calibration codes.
func (d *Device) SetCalibration(c Calibration) {
	d.calibration = c
}

// SetOverride installs the per-axis input override hook.
func (d *Device) SetOverride(f InputOverride) {
	d.override = f
}

// SetOrientationFlags configures the sideways/upright holding position.
func (d *Device) SetOrientationFlags(sideways, upright bool) {
	d.sideways = sideways
	d.upright = upright
}

// Reset zeroes every kinematic state.
func (d *Device) Reset() {
	d.swingState = motion.MotionState{}
	d.tiltState = motion.RotationalState{}
	d.pointState = motion.MotionState{}
	d.shakeState = motion.PositionalState{}
	d.cursorState.Reset()
}

// StepDynamics advances every gesture state by dt seconds. The gesture
// states are independent; only the accessors below combine them.
func (d *Device) StepDynamics(dt float64) {
	motion.EmulateSwing(&d.swingState, d.inputs.Swing, dt)
	motion.EmulateTilt(&d.tiltState, d.inputs.Tilt, dt)
	motion.EmulatePoint(&d.pointState, d.inputs.Cursor, dt)
	motion.EmulateShake(&d.shakeState, d.inputs.Shake, dt)
	motion.EmulateIMUCursor(&d.cursorState, d.inputs.IMUPoint, d.inputs.IMU, dt)
}

// Acceleration returns the device-frame acceleration including the given
// extra acceleration (typically gravity or a real sensor sample).
func (d *Device) Acceleration(extra vecmath.Vec3) vecmath.Vec3 {
	accel := d.Orientation().RotateVector(
		d.Transformation(vecmath.Matrix33Identity()).
			Transform(d.swingState.Acceleration.Add(extra), 0))

	// Shake effects have never been affected by orientation. Should they be?
	return accel.Add(d.shakeState.Acceleration)
}

// AngularVelocity returns the combined angular velocity of the rotating
// gestures plus the given extra term.
func (d *Device) AngularVelocity(extra vecmath.Vec3) vecmath.Vec3 {
	return d.Orientation().RotateVector(
		d.tiltState.AngularVelocity.
			Add(d.swingState.AngularVelocity).
			Add(d.pointState.AngularVelocity).
			Add(extra))
}

// Transformation composes the positional and rotational effects of point,
// swing, tilt, and shake into one transform.
func (d *Device) Transformation(extraRotation vecmath.Matrix33) vecmath.Matrix44 {
	// TODO: Think about and clean up matrix order.
	return vecmath.Matrix44Translate(d.shakeState.Position.Neg()).
		Mul(vecmath.Matrix44FromMatrix33(
			extraRotation.
				Mul(motion.RotationalMatrix(d.tiltState.Angle.Neg())).
				Mul(motion.RotationalMatrix(d.pointState.Angle.Neg())).
				Mul(motion.RotationalMatrix(d.swingState.Angle.Neg())))).
		Mul(vecmath.Matrix44Translate(
			d.swingState.Position.Neg().Sub(d.pointState.Position)))
}

// Orientation returns the base orientation for the configured holding
// position.
func (d *Device) Orientation() vecmath.Quaternion {
	q := vecmath.QuaternionIdentity()
	if d.sideways {
		q = vecmath.QuaternionRotateZ(-math.Pi / 2).Mul(q)
	}
	if d.upright {
		q = q.Mul(vecmath.QuaternionRotateX(math.Pi / 2))
	}
	return q
}

// overrideVec3 applies the override hook to each axis of v.
func (d *Device) overrideVec3(group string, v vecmath.Vec3) vecmath.Vec3 {
	if d.override == nil {
		return v
	}
	for i := 0; i < 3; i++ {
		if val, ok := d.override(group, i, v.Axis(i)); ok {
			v.SetAxis(i, val)
		}
	}
	return v
}

// TotalAcceleration combines simulated and real accelerometer input; with
// no real sample, gravity along +Z is assumed.
func (d *Device) TotalAcceleration() vecmath.Vec3 {
	accel := vecmath.Vec3{Z: motion.GravityAcceleration}
	if real, ok := d.inputs.IMU.Accelerometer(); ok {
		accel = real
	}
	return d.overrideVec3(GroupAccelerometer, d.Acceleration(accel))
}

// TotalAngularVelocity combines simulated and real gyroscope input.
func (d *Device) TotalAngularVelocity() vecmath.Vec3 {
	var angVel vecmath.Vec3
	if real, ok := d.inputs.IMU.Gyroscope(); ok {
		angVel = real
	}
	return d.overrideVec3(GroupGyroscope, d.AngularVelocity(angVel))
}

// TotalTransformation folds the fused IMU cursor orientation into the
// gesture transform.
func (d *Device) TotalTransformation() vecmath.Matrix44 {
	return d.Transformation(vecmath.Matrix33FromQuaternion(
		d.cursorState.Rotation.Mul(
			vecmath.QuaternionRotateX(d.cursorState.RecenteredPitch))))
}

// CursorRotation exposes the fused orientation quaternion.
func (d *Device) CursorRotation() vecmath.Quaternion {
	return d.cursorState.Rotation
}

// PointAngle exposes the pointer angle state for report building.
func (d *Device) PointAngle() vecmath.Vec3 {
	return d.pointState.Angle
}
