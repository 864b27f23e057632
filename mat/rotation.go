// Package mat provides the small dense linear algebra used to transform
// nodal field parameters.
package mat

import (
	"github.com/go-gl/mathgl/mgl64"
)

// EulerToRotationMatrix3 builds a right-handed rotation from intrinsic XYZ
// Euler angles in radians: a rotation by angles[0] about X, then angles[1]
// about the new Y, then angles[2] about the new Z, i.e. Rx·Ry·Rz.
func EulerToRotationMatrix3(angles [3]float64) mgl64.Mat3 {
	return mgl64.Rotate3DX(angles[0]).
		Mul3(mgl64.Rotate3DY(angles[1])).
		Mul3(mgl64.Rotate3DZ(angles[2]))
}

// EulerDegreesToRotationMatrix converts degrees and returns the rotation as
// a row-major Matrix.
func EulerDegreesToRotationMatrix(degrees [3]float64) Matrix {
	var rad [3]float64
	for i, d := range degrees {
		rad[i] = mgl64.DegToRad(d)
	}
	return FromMat3(EulerToRotationMatrix3(rad))
}
