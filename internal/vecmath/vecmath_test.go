package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertVec3Near(t *testing.T, want, got Vec3, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, msg)
	assert.InDelta(t, want.Y, got.Y, eps, msg)
	assert.InDelta(t, want.Z, got.Z, eps, msg)
}

func TestQuaternionRotateVector(t *testing.T) {
	// Rotating +X by 90° around Z gives +Y.
	q := QuaternionRotateZ(math.Pi / 2)
	assertVec3Near(t, Vec3{Y: 1}, q.RotateVector(Vec3{X: 1}), "Rz(90°) on +X")

	// Rotating +Y by 90° around X gives +Z.
	q = QuaternionRotateX(math.Pi / 2)
	assertVec3Near(t, Vec3{Z: 1}, q.RotateVector(Vec3{Y: 1}), "Rx(90°) on +Y")

	// Rotating +Z by 90° around Y gives +X.
	q = QuaternionRotateY(math.Pi / 2)
	assertVec3Near(t, Vec3{X: 1}, q.RotateVector(Vec3{Z: 1}), "Ry(90°) on +Z")
}

func TestQuaternionMulOrder(t *testing.T) {
	// q.Mul(r) applies r first, then q.
	rz := QuaternionRotateZ(math.Pi / 2)
	rx := QuaternionRotateX(math.Pi / 2)

	// +X --Rz--> +Y --Rx--> +Z
	combined := rx.Mul(rz)
	assertVec3Near(t, Vec3{Z: 1}, combined.RotateVector(Vec3{X: 1}), "Rx∘Rz on +X")
}

func TestQuaternionInverted(t *testing.T) {
	q := QuaternionRotate(1.2, Vec3{X: 0.6, Y: 0.8})
	v := Vec3{X: 0.3, Y: -0.7, Z: 1.1}
	assertVec3Near(t, v, q.Inverted().RotateVector(q.RotateVector(v)), "inverse undoes rotation")
}

func TestQuaternionNormalized(t *testing.T) {
	q := Quaternion{W: 2, X: 0, Y: 0, Z: 0}
	assert.InDelta(t, 1.0, q.Normalized().Norm(), eps)

	// Degenerate zero quaternion normalizes to identity.
	zero := Quaternion{}
	assert.Equal(t, QuaternionIdentity(), zero.Normalized())
}

func TestMatrix33FromQuaternion(t *testing.T) {
	// The matrix form must rotate vectors identically to the quaternion.
	q := QuaternionRotate(0.9, Vec3{X: 1, Y: 2, Z: -1}.Normalized())
	m := Matrix33FromQuaternion(q)

	for _, v := range []Vec3{{X: 1}, {Y: 1}, {Z: 1}, {X: 0.2, Y: -0.5, Z: 0.9}} {
		assertVec3Near(t, q.RotateVector(v), m.Transform(v), "matrix matches quaternion")
	}
}

func TestMatrix33Rotations(t *testing.T) {
	assertVec3Near(t, Vec3{Y: 1}, Matrix33RotateZ(math.Pi/2).Transform(Vec3{X: 1}), "Rz")
	assertVec3Near(t, Vec3{Z: 1}, Matrix33RotateX(math.Pi/2).Transform(Vec3{Y: 1}), "Rx")
	assertVec3Near(t, Vec3{X: 1}, Matrix33RotateY(math.Pi/2).Transform(Vec3{Z: 1}), "Ry")
}

func TestMatrix44Translate(t *testing.T) {
	m := Matrix44Translate(Vec3{X: 1, Y: 2, Z: 3})

	// Points (w=1) translate, directions (w=0) do not.
	assertVec3Near(t, Vec3{X: 1, Y: 2, Z: 3}, m.Transform(Vec3{}, 1), "point translates")
	assertVec3Near(t, Vec3{X: 5}, m.Transform(Vec3{X: 5}, 0), "direction unchanged")
}

func TestMatrix44Mul(t *testing.T) {
	// Translate then rotate: the point ends up rotated with its offset.
	rot := Matrix44FromMatrix33(Matrix33RotateZ(math.Pi / 2))
	trans := Matrix44Translate(Vec3{X: 1})

	m := rot.Mul(trans)
	assertVec3Near(t, Vec3{Y: 1}, m.Transform(Vec3{}, 1), "rotate after translate")
}

func TestVec3AxisAccess(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	require.Equal(t, 1.0, v.Axis(0))
	require.Equal(t, 2.0, v.Axis(1))
	require.Equal(t, 3.0, v.Axis(2))

	v.SetAxis(1, 9)
	assert.Equal(t, Vec3{X: 1, Y: 9, Z: 3}, v)
}

func TestLerp(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 2, Y: 4, Z: 6}
	got := Lerp(a, b, Vec3{X: 0.5, Y: 0.25, Z: 1})
	assertVec3Near(t, Vec3{X: 1, Y: 1, Z: 6}, got, "per-axis interpolation")
}

func TestVec3Cross(t *testing.T) {
	assertVec3Near(t, Vec3{Z: 1}, Vec3{X: 1}.Cross(Vec3{Y: 1}), "x cross y = z")
	assertVec3Near(t, Vec3{Z: -1}, Vec3{Y: 1}.Cross(Vec3{X: 1}), "y cross x = -z")
}
