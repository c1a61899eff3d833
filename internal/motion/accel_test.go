package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

func TestConvertAccelData(t *testing.T) {
	// Factory codes shifted into the 10-bit domain.
	const zeroG, oneG = 0x80 << 2, 0x9A << 2

	// At rest with gravity on +Z: X/Y read zero g, Z reads one g.
	at := ConvertAccelData(vecmath.Vec3{Z: GravityAcceleration}, zeroG, oneG)
	assert.Equal(t, uint16(zeroG), at.X)
	assert.Equal(t, uint16(zeroG), at.Y)
	assert.Equal(t, uint16(oneG), at.Z)

	// Negative one g lands the same distance below the zero point.
	neg := ConvertAccelData(vecmath.Vec3{Z: -GravityAcceleration}, zeroG, oneG)
	assert.Equal(t, uint16(2*zeroG-oneG), neg.Z)
}

func TestConvertAccelDataClamps(t *testing.T) {
	const zeroG, oneG = 0x80 << 2, 0x9A << 2

	high := ConvertAccelData(vecmath.Vec3{Z: 1000}, zeroG, oneG)
	assert.Equal(t, uint16(1023), high.Z)

	low := ConvertAccelData(vecmath.Vec3{Z: -1000}, zeroG, oneG)
	assert.Equal(t, uint16(0), low.Z)
}

func TestConvertAccelDataInvertedCalibration(t *testing.T) {
	// A calibration with one g below zero g must not wrap; values still
	// scale and clamp as signed arithmetic.
	out := ConvertAccelData(vecmath.Vec3{Z: GravityAcceleration}, 600, 500)
	assert.Equal(t, uint16(500), out.Z)
}
