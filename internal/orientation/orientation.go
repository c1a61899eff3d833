// Package orientation converts device rotations into the roll/pitch/yaw
// pose published to consoles and displays. Angles are in degrees.
package orientation

import (
	"math"

	"github.com/relabs-tech/motion_emulator/internal/motion"
	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// Pose is the canonical representation of orientation for publishing.
type Pose struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

const degPerRad = 180.0 / math.Pi

// FromQuaternion extracts the pose from a fused orientation quaternion.
func FromQuaternion(q vecmath.Quaternion) Pose {
	return Pose{
		Roll:  motion.Roll(q) * degPerRad,
		Pitch: motion.Pitch(q) * degPerRad,
		Yaw:   motion.Yaw(q) * degPerRad,
	}
}

// FromAccel computes roll and pitch from an accelerometer sample alone.
// Yaw cannot be observed from gravity and is reported as 0. Used for
// raw sensor passthrough where no gyro integration runs.
//
//	roll  = atan2(ay, az)
//	pitch = atan2(-ax, sqrt(ay² + az²))
func FromAccel(accel vecmath.Vec3) Pose {
	return Pose{
		Roll:  math.Atan2(accel.Y, accel.Z) * degPerRad,
		Pitch: math.Atan2(-accel.X, math.Sqrt(accel.Y*accel.Y+accel.Z*accel.Z)) * degPerRad,
	}
}
