package mat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-12

func mulNaive(m Matrix, a Vector) Vector {
	out := make(Vector, len(m))
	for i := range m {
		for k := range a {
			out[i] += m[i][k] * a[k]
		}
	}
	return out
}

func TestMulVec(t *testing.T) {
	m := Matrix{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	in := Vector{1, -2, 0.5}
	v := m.MulVec(in)
	vNaive := mulNaive(m, in)
	if !v.ApproxEqual(vNaive, tol) {
		t.Errorf("expected %v, got %v", vNaive, v)
	}

	m2 := Matrix{{0, -1}, {1, 0}}
	if v := m2.MulVec(Vector{1, 0}); !v.Equal(Vector{0, 1}) {
		t.Errorf("2D rotation expected (0, 1), got %v", v)
	}
}

func TestFromMat3(t *testing.T) {
	a := mgl64.Mat3FromRows(
		mgl64.Vec3{1, 2, 3},
		mgl64.Vec3{4, 5, 6},
		mgl64.Vec3{7, 8, 9},
	)
	expected := Matrix{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	if m := FromMat3(a); !m.ApproxEqual(expected, 0) {
		t.Errorf("expected %v, got %v", expected, m)
	}
}

func TestIsSquare(t *testing.T) {
	testCases := map[string]struct {
		m        Matrix
		n        int
		expected bool
	}{
		"3x3":    {Identity(3), 3, true},
		"2x2":    {Identity(2), 2, true},
		"3x3as2": {Identity(3), 2, false},
		"Ragged": {Matrix{{1, 0, 0}, {0, 1}, {0, 0, 1}}, 3, false},
		"Empty":  {Matrix{}, 0, true},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.m.IsSquare(tt.n))
		})
	}
}

func TestEulerToRotationMatrix3(t *testing.T) {
	half := math.Pi / 2
	testCases := map[string]struct {
		angles   [3]float64
		in       Vector
		expected Vector
	}{
		"X90":  {[3]float64{half, 0, 0}, Vector{0, 1, 0}, Vector{0, 0, 1}},
		"Y90":  {[3]float64{0, half, 0}, Vector{0, 0, 1}, Vector{1, 0, 0}},
		"Z90":  {[3]float64{0, 0, half}, Vector{1, 0, 0}, Vector{0, 1, 0}},
		"X-90": {[3]float64{-half, 0, 0}, Vector{0, 1, 0}, Vector{0, 0, -1}},
		"Zero": {[3]float64{}, Vector{1, 2, 3}, Vector{1, 2, 3}},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			m := FromMat3(EulerToRotationMatrix3(tt.angles))
			if v := m.MulVec(tt.in); !v.ApproxEqual(tt.expected, tol) {
				t.Errorf("expected %v, got %v", tt.expected, v)
			}
		})
	}

	t.Run("IntrinsicOrder", func(t *testing.T) {
		a := [3]float64{0.1, 0.2, 0.3}
		rx := FromMat3(mgl64.Rotate3DX(a[0]))
		ry := FromMat3(mgl64.Rotate3DY(a[1]))
		rz := FromMat3(mgl64.Rotate3DZ(a[2]))
		expected := rx.Mul(ry).Mul(rz)
		if m := FromMat3(EulerToRotationMatrix3(a)); !m.ApproxEqual(expected, tol) {
			t.Errorf("expected Rx·Ry·Rz %v, got %v", expected, m)
		}
	})
	t.Run("Orthonormal", func(t *testing.T) {
		m := FromMat3(EulerToRotationMatrix3([3]float64{0.7, -1.1, 2.3}))
		if p := m.Mul(m.Transpose()); !p.ApproxEqual(Identity(3), 1e-9) {
			t.Errorf("R·Rᵀ must be identity, got %v", p)
		}
	})
}

func TestEulerDegreesToRotationMatrix(t *testing.T) {
	m := EulerDegreesToRotationMatrix([3]float64{90, 0, 0})
	expected := Matrix{
		{1, 0, 0},
		{0, 0, -1},
		{0, 1, 0},
	}
	if !m.ApproxEqual(expected, tol) {
		t.Errorf("expected %v, got %v", expected, m)
	}
}

func TestVector(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{0.5, -2, 1}
	assert.Equal(t, Vector{1.5, 0, 4}, a.Add(b))
	assert.Equal(t, Vector{0.5, 4, 2}, a.Sub(b))
	assert.Equal(t, 0.5-4+3, a.Dot(b))
	assert.False(t, a.Equal(Vector{1, 2}))
	assert.True(t, a.ApproxEqual(Vector{1, 2, 3 + 1e-13}, tol))
}
