package mat

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a dense row-major matrix.
type Matrix []Vector

// Identity returns the n×n identity.
func Identity(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make(Vector, n)
		m[i][i] = 1
	}
	return m
}

// FromMat3 converts a column-major mgl64 matrix to rows.
func FromMat3(a mgl64.Mat3) Matrix {
	m := make(Matrix, 3)
	for i := range m {
		r := a.Row(i)
		m[i] = Vector{r[0], r[1], r[2]}
	}
	return m
}

// IsSquare reports whether m has n rows of n columns.
func (m Matrix) IsSquare(n int) bool {
	if len(m) != n {
		return false
	}
	for _, r := range m {
		if len(r) != n {
			return false
		}
	}
	return true
}

// MulVec returns m·a. Each row of m must have the length of a.
func (m Matrix) MulVec(a Vector) Vector {
	out := make(Vector, len(m))
	for i, r := range m {
		out[i] = r.Dot(a)
	}
	return out
}

// Mul returns m·a.
func (m Matrix) Mul(a Matrix) Matrix {
	out := make(Matrix, len(m))
	for i := range m {
		out[i] = make(Vector, len(a[0]))
		for j := range out[i] {
			var sum float64
			for k := range a {
				sum += m[i][k] * a[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Transpose returns mᵀ.
func (m Matrix) Transpose() Matrix {
	if len(m) == 0 {
		return Matrix{}
	}
	out := make(Matrix, len(m[0]))
	for j := range out {
		out[j] = make(Vector, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Matrix) ApproxEqual(a Matrix, tol float64) bool {
	if len(m) != len(a) {
		return false
	}
	for i := range m {
		if !m[i].ApproxEqual(a[i], tol) {
			return false
		}
	}
	return true
}
