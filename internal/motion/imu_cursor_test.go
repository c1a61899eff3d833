package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

type pointInput struct {
	enabled  bool
	totalYaw float64
	recenter bool
}

func (in pointInput) Enabled() bool        { return in.enabled }
func (in pointInput) AccelWeight() float64 { return 0.02 }
func (in pointInput) TotalYaw() float64    { return in.totalYaw }
func (in pointInput) Recenter() bool       { return in.recenter }

type imuInput struct {
	accel   vecmath.Vec3
	accelOK bool
	gyro    vecmath.Vec3
	gyroOK  bool
}

func (in imuInput) Accelerometer() (vecmath.Vec3, bool) { return in.accel, in.accelOK }
func (in imuInput) Gyroscope() (vecmath.Vec3, bool)     { return in.gyro, in.gyroOK }

func TestEmulateIMUCursorResetsWithoutGyro(t *testing.T) {
	state := &IMUCursorState{
		Rotation:        vecmath.QuaternionRotateX(0.8),
		RecenteredPitch: 0.3,
	}

	EmulateIMUCursor(state, pointInput{enabled: true, totalYaw: 2 * math.Pi},
		imuInput{}, tickDT)

	assert.Equal(t, vecmath.QuaternionIdentity(), state.Rotation)
	assert.Equal(t, 0.0, state.RecenteredPitch)
}

func TestEmulateIMUCursorResetsWhenDisabled(t *testing.T) {
	state := &IMUCursorState{Rotation: vecmath.QuaternionRotateX(0.8)}

	EmulateIMUCursor(state, pointInput{enabled: false},
		imuInput{gyro: vecmath.Vec3{X: 1}, gyroOK: true}, tickDT)

	assert.Equal(t, vecmath.QuaternionIdentity(), state.Rotation)
}

func TestEmulateIMUCursorIntegratesPitch(t *testing.T) {
	state := &IMUCursorState{Rotation: vecmath.QuaternionIdentity()}
	point := pointInput{enabled: true, totalYaw: 2 * math.Pi}
	imu := imuInput{gyro: vecmath.Vec3{X: 1}, gyroOK: true}

	// 1 rad/s about X for half a second.
	for i := 0; i < 100; i++ {
		EmulateIMUCursor(state, point, imu, tickDT)
	}

	assert.InDelta(t, 0.5, Pitch(state.Rotation), 1e-6)
	assert.InDelta(t, 1.0, state.Rotation.Norm(), 1e-9, "rotation stays unit length")
}

func TestEmulateIMUCursorClampsYaw(t *testing.T) {
	state := &IMUCursorState{Rotation: vecmath.QuaternionIdentity()}
	point := pointInput{enabled: true, totalYaw: 0.2}
	imu := imuInput{gyro: vecmath.Vec3{Z: 2}, gyroOK: true}

	for i := 0; i < 400; i++ {
		EmulateIMUCursor(state, point, imu, tickDT)
		require.LessOrEqual(t, math.Abs(Yaw(state.Rotation)), 0.1+1e-9,
			"yaw clamp breached at step %d", i)
	}

	assert.InDelta(t, 0.1, math.Abs(Yaw(state.Rotation)), 1e-6)
}

func TestEmulateIMUCursorRecenter(t *testing.T) {
	state := &IMUCursorState{Rotation: vecmath.QuaternionIdentity()}
	point := pointInput{enabled: true, totalYaw: 2 * math.Pi}

	// Pitch up, then hit recenter.
	for i := 0; i < 100; i++ {
		EmulateIMUCursor(state, point, imuInput{gyro: vecmath.Vec3{X: 1}, gyroOK: true}, tickDT)
	}
	pitchBefore := Pitch(state.Rotation)

	point.recenter = true
	EmulateIMUCursor(state, point, imuInput{gyroOK: true}, tickDT)

	assert.InDelta(t, pitchBefore, state.RecenteredPitch, 1e-6)
	assert.InDelta(t, 0.0, Yaw(state.Rotation), 1e-9)
}

func TestComplementaryFilterSkipsDegenerateAccel(t *testing.T) {
	// Accelerometer exactly parallel to the gyro frame normal provides
	// no correction axis; the orientation must pass through untouched.
	gyro := vecmath.QuaternionIdentity()
	out := ComplementaryFilter(gyro, vecmath.Vec3{Z: 9.8}, 0.02, vecmath.Vec3{Z: 1})
	assert.Equal(t, gyro, out)

	// Antiparallel is just as undefined.
	out = ComplementaryFilter(gyro, vecmath.Vec3{Z: -9.8}, 0.02, vecmath.Vec3{Z: 1})
	assert.Equal(t, gyro, out)
}

func TestComplementaryFilterFullWeightAligns(t *testing.T) {
	// With weight 1 the filter rotates the frame normal all the way onto
	// the measured direction in a single application.
	out := ComplementaryFilter(vecmath.QuaternionIdentity(),
		vecmath.Vec3{X: 9.8, Z: 9.8}, 1, vecmath.Vec3{Z: 1})

	got := out.RotateVector(vecmath.Vec3{Z: 1})
	want := 1 / math.Sqrt2
	assert.InDelta(t, want, got.X, 1e-9)
	assert.InDelta(t, 0.0, got.Y, 1e-9)
	assert.InDelta(t, want, got.Z, 1e-9)
}

func TestComplementaryFilterNudgesTowardAccel(t *testing.T) {
	tilted := vecmath.QuaternionRotateX(0.2)
	out := ComplementaryFilter(tilted, vecmath.Vec3{Z: 9.8}, 0.02, vecmath.Vec3{Z: 1})

	before := tilted.RotateVector(vecmath.Vec3{Z: 1})
	after := out.RotateVector(vecmath.Vec3{Z: 1})
	assert.Greater(t, after.Z, before.Z, "correction should move toward measured up")
}

func TestRotationFromGyroZeroIsIdentity(t *testing.T) {
	assert.Equal(t, vecmath.QuaternionIdentity(), RotationFromGyro(vecmath.Vec3{}))
}

func TestRotationFromAccelStraightUp(t *testing.T) {
	// Perfectly vertical readings hit the degenerate-axis fallback.
	q := RotationFromAccel(vecmath.Vec3{Z: 9.8})
	up := q.RotateVector(vecmath.Vec3{Z: 1})
	assert.InDelta(t, 1.0, up.Z, 1e-9)

	q = RotationFromAccel(vecmath.Vec3{Z: -9.8})
	down := q.RotateVector(vecmath.Vec3{Z: 1})
	assert.InDelta(t, -1.0, down.Z, 1e-9)
}
