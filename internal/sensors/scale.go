// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"log"
	"math"
	"time"

	"github.com/relabs-tech/motion_emulator/internal/input"
	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// Full-scale range tables indexed by the config selector (0-3).
var (
	accelFullScaleG   = [4]float64{2, 4, 8, 16}
	gyroFullScaleDegS = [4]float64{250, 500, 1000, 2000}
)

// StandardGravity is the conventional g used for unit conversions.
const StandardGravity = 9.80665

// Scale converts a raw sample to SI units for the given range selectors.
func Scale(raw Raw, accelRange, gyroRange byte) (accel, gyro vecmath.Vec3) {
	accelScale := accelFullScaleG[accelRange&3] * StandardGravity / 32768
	gyroScale := gyroFullScaleDegS[gyroRange&3] * math.Pi / 180 / 32768

	accel = vecmath.Vec3{
		X: float64(raw.Ax) * accelScale,
		Y: float64(raw.Ay) * accelScale,
		Z: float64(raw.Az) * accelScale,
	}
	gyro = vecmath.Vec3{
		X: float64(raw.Gx) * gyroScale,
		Y: float64(raw.Gy) * gyroScale,
		Z: float64(raw.Gz) * gyroScale,
	}
	return accel, gyro
}

// RunPassthrough polls the reader at the given interval and feeds scaled
// samples into the holder. On a read error the sample is marked invalid
// so the fusion filter resets instead of integrating stale data.
func RunPassthrough(r RawReader, accelRange, gyroRange byte,
	interval time.Duration, h *input.Holder, stop <-chan struct{}) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			raw, err := r.ReadRaw()
			if err != nil {
				log.Printf("sensors: IMU read error: %v", err)
				h.Update(func(s *input.State) {
					s.AccelValid = false
					s.GyroValid = false
				})
				continue
			}

			accel, gyro := Scale(raw, accelRange, gyroRange)
			h.Update(func(s *input.State) {
				s.Accel, s.AccelValid = accel, true
				s.Gyro, s.GyroValid = gyro, true
			})
		}
	}
}
