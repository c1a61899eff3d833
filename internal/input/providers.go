// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package input

import (
	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// Settings carries the per-gesture configuration in SI units (meters,
// radians, seconds); internal/config converts from the file values.
type Settings struct {
	TiltMaxRotationalVelocity float64

	SwingMaxDistance float64
	SwingTwistAngle  float64
	SwingSpeed       float64
	SwingReturnSpeed float64

	ShakeIntensity float64
	ShakeFrequency float64

	PointVerticalOffset float64
	PointTotalYaw       float64
	PointTotalPitch     float64
	SensorBarOnTop      bool
	FastPointer         bool

	IMUPointEnabled  bool
	IMUAccelWeight   float64
	IMUPointTotalYaw float64
}

// AimCorrection is the result of the per-title cursor correction step.
// When Applied is false the base settings are used unchanged.
type AimCorrection struct {
	Cursor         vecmath.Vec2
	VerticalOffset float64
	TotalYaw       float64
	TotalPitch     float64
	Applied        bool
}

// AimCorrector adjusts a raw cursor position for the active title. The
// motion core never sees uncorrected coordinates.
type AimCorrector func(cursor vecmath.Vec2) AimCorrection

// Providers binds a snapshot holder and settings into the interfaces the
// motion package consumes.
type Providers struct {
	Tilt     TiltControl
	Swing    SwingControl
	Shake    ShakeControl
	Cursor   *CursorControl
	IMUPoint IMUPointControl
	IMU      IMUControl
}

// NewProviders wires the holder and settings into one provider set.
// corrector may be nil when no title database is loaded.
func NewProviders(h *Holder, s Settings, corrector AimCorrector) *Providers {
	return &Providers{
		Tilt:     TiltControl{h: h, s: s},
		Swing:    SwingControl{h: h, s: s},
		Shake:    ShakeControl{h: h, s: s},
		Cursor:   &CursorControl{h: h, s: s, corrector: corrector},
		IMUPoint: IMUPointControl{h: h, s: s},
		IMU:      IMUControl{h: h},
	}
}

// TiltControl implements motion.TiltInput.
type TiltControl struct {
	h *Holder
	s Settings
}

func (c TiltControl) State() vecmath.Vec2            { return c.h.Get().Tilt }
func (c TiltControl) MaxRotationalVelocity() float64 { return c.s.TiltMaxRotationalVelocity }

// SwingControl implements motion.SwingInput.
type SwingControl struct {
	h *Holder
	s Settings
}

// State scales the normalized deck input to meters, so the motion core
// sees positions directly comparable with MaxDistance.
func (c SwingControl) State() vecmath.Vec3  { return c.h.Get().Swing.Scaled(c.s.SwingMaxDistance) }
func (c SwingControl) MaxDistance() float64 { return c.s.SwingMaxDistance }
func (c SwingControl) TwistAngle() float64  { return c.s.SwingTwistAngle }
func (c SwingControl) Speed() float64       { return c.s.SwingSpeed }
func (c SwingControl) ReturnSpeed() float64 { return c.s.SwingReturnSpeed }

// ShakeControl implements motion.ShakeInput.
type ShakeControl struct {
	h *Holder
	s Settings
}

func (c ShakeControl) State() vecmath.Vec3 { return c.h.Get().Shake }
func (c ShakeControl) Intensity() float64  { return c.s.ShakeIntensity }
func (c ShakeControl) Frequency() float64  { return c.s.ShakeFrequency }

// CursorControl implements motion.CursorInput. The per-title correction
// runs once per State call so the derived parameters stay consistent with
// the corrected coordinates for the rest of the tick.
type CursorControl struct {
	h         *Holder
	s         Settings
	corrector AimCorrector

	last AimCorrection
}

func (c *CursorControl) State() (vecmath.Vec2, bool) {
	st := c.h.Get()

	c.last = AimCorrection{
		Cursor:         st.Cursor,
		VerticalOffset: c.s.PointVerticalOffset,
		TotalYaw:       c.s.PointTotalYaw,
		TotalPitch:     c.s.PointTotalPitch,
	}
	if c.corrector != nil {
		c.last = c.corrector(st.Cursor)
	}
	return c.last.Cursor, st.CursorVisible
}

func (c *CursorControl) VerticalOffset() float64 { return c.last.VerticalOffset }
func (c *CursorControl) TotalYaw() float64       { return c.last.TotalYaw }
func (c *CursorControl) TotalPitch() float64     { return c.last.TotalPitch }
func (c *CursorControl) SensorBarOnTop() bool    { return c.s.SensorBarOnTop }
func (c *CursorControl) Responsive() bool        { return c.s.FastPointer && c.last.Applied }

// IMUPointControl implements motion.IMUPointInput.
type IMUPointControl struct {
	h *Holder
	s Settings
}

func (c IMUPointControl) Enabled() bool        { return c.s.IMUPointEnabled }
func (c IMUPointControl) AccelWeight() float64 { return c.s.IMUAccelWeight }
func (c IMUPointControl) TotalYaw() float64    { return c.s.IMUPointTotalYaw }
func (c IMUPointControl) Recenter() bool       { return c.h.Get().Recenter }

// IMUControl implements motion.IMUInput from the passthrough samples in
// the snapshot.
type IMUControl struct {
	h *Holder
}

func (c IMUControl) Accelerometer() (vecmath.Vec3, bool) {
	st := c.h.Get()
	return st.Accel, st.AccelValid
}

func (c IMUControl) Gyroscope() (vecmath.Vec3, bool) {
	st := c.h.Get()
	return st.Gyro, st.GyroValid
}
