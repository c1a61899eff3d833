// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package motion

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// EmulateShake oscillates the position along each active axis. The target
// flips sign whenever the current motion already opposes it or the
// position has crossed half the target distance, producing a sustained
// shake at the configured frequency.
func EmulateShake(state *PositionalState, in ShakeInput, dt float64) {
	target := in.State().Scaled(in.Intensity() / 2)

	for i := 0; i < 3; i++ {
		if state.Velocity.Axis(i)*math.Copysign(1, target.Axis(i)) < 0 ||
			state.Position.Axis(i)/target.Axis(i) > 0.5 {
			target.SetAxis(i, -target.Axis(i))
		}
	}

	// Time from "top" to "bottom" of one shake.
	travelTime := 1 / in.Frequency() / 2

	var jerk vecmath.Vec3
	for i := 0; i < 3; i++ {
		halfDistance := math.Max(math.Abs(target.Axis(i)), math.Abs(state.Position.Axis(i)))
		jerk.SetAxis(i, halfDistance/math.Pow(travelTime/2, 3))
	}

	ApproachPositionWithJerk(state, target, jerk, dt)
}
