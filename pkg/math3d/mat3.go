package math3d

// Mat3 is a 3x3 matrix stored in column-major order, m[row+col*3].
type Mat3 [9]float64

// Mat3FromRows builds a matrix whose rows are a, b and c.
func Mat3FromRows(a, b, c Vec3) Mat3 {
	return Mat3{
		a.X, b.X, c.X,
		a.Y, b.Y, c.Y,
		a.Z, b.Z, c.Z,
	}
}

// Mat3FromCols builds a matrix whose columns are a, b and c.
func Mat3FromCols(a, b, c Vec3) Mat3 {
	return Mat3{
		a.X, a.Y, a.Z,
		b.X, b.Y, b.Z,
		c.X, c.Y, c.Z,
	}
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of the matrix.
// Returns the zero matrix if m is singular.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if det == 0 {
		return Mat3{}
	}
	inv := 1 / det
	return Mat3{
		(m[4]*m[8] - m[7]*m[5]) * inv,
		-(m[1]*m[8] - m[7]*m[2]) * inv,
		(m[1]*m[5] - m[4]*m[2]) * inv,

		-(m[3]*m[8] - m[6]*m[5]) * inv,
		(m[0]*m[8] - m[6]*m[2]) * inv,
		-(m[0]*m[5] - m[3]*m[2]) * inv,

		(m[3]*m[7] - m[6]*m[4]) * inv,
		-(m[0]*m[7] - m[6]*m[1]) * inv,
		(m[0]*m[4] - m[3]*m[1]) * inv,
	}
}
