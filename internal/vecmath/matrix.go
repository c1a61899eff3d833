// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package vecmath

import "math"

// Matrix33 is a row-major 3x3 rotation matrix.
type Matrix33 [3][3]float64

func Matrix33Identity() Matrix33 {
	return Matrix33{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func Matrix33RotateX(a float64) Matrix33 {
	s, c := math.Sin(a), math.Cos(a)
	return Matrix33{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

func Matrix33RotateY(a float64) Matrix33 {
	s, c := math.Sin(a), math.Cos(a)
	return Matrix33{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

func Matrix33RotateZ(a float64) Matrix33 {
	s, c := math.Sin(a), math.Cos(a)
	return Matrix33{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// Matrix33FromQuaternion converts a unit quaternion to a rotation matrix.
func Matrix33FromQuaternion(q Quaternion) Matrix33 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	return Matrix33{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy)},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx)},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy)},
	}
}

func (m Matrix33) Mul(o Matrix33) Matrix33 {
	var r Matrix33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

func (m Matrix33) Transform(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Matrix44 is a row-major 4x4 affine transform.
type Matrix44 [4][4]float64

func Matrix44Identity() Matrix44 {
	return Matrix44{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func Matrix44FromMatrix33(m Matrix33) Matrix44 {
	r := Matrix44Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j]
		}
	}
	return r
}

func Matrix44Translate(v Vec3) Matrix44 {
	r := Matrix44Identity()
	r[0][3] = v.X
	r[1][3] = v.Y
	r[2][3] = v.Z
	return r
}

func (m Matrix44) Mul(o Matrix44) Matrix44 {
	var r Matrix44
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// Transform applies the matrix to v with the given homogeneous w component
// (1 transforms a point, 0 a direction).
func (m Matrix44) Transform(v Vec3, w float64) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*w,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*w,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*w,
	}
}
