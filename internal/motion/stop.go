// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import "math"

// StopDistance returns the displacement covered while decelerating from
// velocity to rest under a constant braking effort of magnitude maxAccel.
// maxAccel must be non-zero.
func StopDistance(velocity, maxAccel float64) float64 {
	return velocity * velocity / (2 * math.Copysign(maxAccel, velocity))
}

// StopDistanceJerk returns the change in position after a stop in the
// shortest possible time given a velocity, acceleration, and maximum jerk.
// Used to smoothly adjust acceleration and come to complete stops at
// precise positions. Based on equations for motion with constant jerk:
// s = s0 + v0 t + a0 t^2 / 2 + j t^3 / 6
func StopDistanceJerk(velocity, acceleration, maxJerk float64) float64 {
	// Math below expects velocity to be non-negative.
	flip := 1.0
	if velocity < 0 {
		flip = -1
	}

	v0 := velocity * flip
	a0 := acceleration * flip
	j := maxJerk

	// Time to reach zero acceleration.
	t0 := a0 / j

	// Distance to reach zero acceleration.
	d0 := math.Pow(a0, 3)/(3*j*j) + (a0*v0)/j

	// Velocity at zero acceleration.
	v1 := v0 + a0*math.Abs(t0) - math.Copysign(j*t0*t0/2, t0)

	// Distance to complete stop.
	d1 := math.Copysign(math.Pow(math.Abs(v1), 1.5), v1) / math.Sqrt(j)

	return (d0 + d1) * flip
}

// sign matches the original three-valued sign: 0 maps to 0 so a zero stop
// offset applies no control effort.
func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
