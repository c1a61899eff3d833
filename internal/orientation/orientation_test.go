package orientation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

func TestFromQuaternionIdentity(t *testing.T) {
	p := FromQuaternion(vecmath.QuaternionIdentity())
	assert.InDelta(t, 0.0, p.Roll, 1e-9)
	assert.InDelta(t, 0.0, p.Pitch, 1e-9)
	assert.InDelta(t, 0.0, p.Yaw, 1e-9)
}

func TestFromQuaternionSingleAxes(t *testing.T) {
	// A rotation about Y rolls the device.
	p := FromQuaternion(vecmath.QuaternionRotateY(30 * math.Pi / 180))
	assert.InDelta(t, 30.0, p.Roll, 1e-9)
	assert.InDelta(t, 0.0, p.Pitch, 1e-9)
	assert.InDelta(t, 0.0, p.Yaw, 1e-9)

	// A rotation about X tips the nose down.
	p = FromQuaternion(vecmath.QuaternionRotateX(30 * math.Pi / 180))
	assert.InDelta(t, -30.0, p.Pitch, 1e-9)
	assert.InDelta(t, 0.0, p.Roll, 1e-9)
	assert.InDelta(t, 0.0, p.Yaw, 1e-9)

	// A rotation about Z yaws.
	p = FromQuaternion(vecmath.QuaternionRotateZ(45 * math.Pi / 180))
	assert.InDelta(t, 45.0, p.Yaw, 1e-9)
	assert.InDelta(t, 0.0, p.Roll, 1e-9)
	assert.InDelta(t, 0.0, p.Pitch, 1e-9)
}

func TestFromAccelFlat(t *testing.T) {
	p := FromAccel(vecmath.Vec3{Z: 9.80665})
	assert.InDelta(t, 0.0, p.Roll, 1e-9)
	assert.InDelta(t, 0.0, p.Pitch, 1e-9)
	assert.Equal(t, 0.0, p.Yaw)
}

func TestFromAccelTilted(t *testing.T) {
	g := 9.80665

	// Gravity split between Y and Z reads as roll.
	p := FromAccel(vecmath.Vec3{Y: g * math.Sin(math.Pi/6), Z: g * math.Cos(math.Pi/6)})
	assert.InDelta(t, 30.0, p.Roll, 1e-9)
	assert.InDelta(t, 0.0, p.Pitch, 1e-9)

	// Gravity split between -X and Z reads as pitch.
	p = FromAccel(vecmath.Vec3{X: -g * math.Sin(math.Pi/4), Z: g * math.Cos(math.Pi/4)})
	assert.InDelta(t, 45.0, p.Pitch, 1e-9)
	assert.InDelta(t, 0.0, p.Roll, 1e-9)
}
