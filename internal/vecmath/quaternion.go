// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package vecmath

import "math"

// Quaternion represents a 3D orientation. It must be kept unit-length;
// callers re-normalize after chains of mutations.
type Quaternion struct {
	W, X, Y, Z float64
}

// QuaternionIdentity returns the identity rotation.
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionRotate builds a rotation of angle radians about the given axis.
// The axis must be normalized.
func QuaternionRotate(angle float64, axis Vec3) Quaternion {
	s := math.Sin(angle / 2)
	return Quaternion{
		W: math.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

func QuaternionRotateX(angle float64) Quaternion {
	return QuaternionRotate(angle, Vec3{X: 1})
}

func QuaternionRotateY(angle float64) Quaternion {
	return QuaternionRotate(angle, Vec3{Y: 1})
}

func QuaternionRotateZ(angle float64) Quaternion {
	return QuaternionRotate(angle, Vec3{Z: 1})
}

// Mul composes two rotations; q.Mul(r) applies r first, then q.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Inverted returns the inverse rotation. Assumes q is unit-length.
func (q Quaternion) Inverted() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

func (q Quaternion) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalized rescales q to unit length to bound floating point drift.
func (q Quaternion) Normalized() Quaternion {
	n := q.Norm()
	if n == 0 {
		return QuaternionIdentity()
	}
	return Quaternion{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// RotateVector rotates v by q (computes q * (0,v) * q^-1).
func (q Quaternion) RotateVector(v Vec3) Vec3 {
	t := Vec3{q.X, q.Y, q.Z}.Cross(v).Scaled(2)
	return v.Add(t.Scaled(q.W)).Add(Vec3{q.X, q.Y, q.Z}.Cross(t))
}
