// Package spatialmath implements the rigid spatial transforms used to relate
// body and joint frames to one another in a kinematic tree.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transformation (rotation and translation) in 3D,
// stored as a unit dual quaternion. Pose is a value type: operations return
// new Poses and never mutate their receivers, so Poses may be freely shared
// between goroutines.
type Pose struct {
	q dualquat.Number
}

// NewZeroPose returns the identity transform. Since the real part of a dual
// quaternion must be a unit quaternion, not all zeroes, this should be used
// instead of Pose{}.
func NewZeroPose() Pose {
	return Pose{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewPoseFromPoint returns a pure-translation Pose moving the origin to pt.
func NewPoseFromPoint(pt r3.Vector) Pose {
	p := NewZeroPose()
	return p.setTranslation(pt.X, pt.Y, pt.Z)
}

// NewPoseFromAxisAngle returns a pure rotation of theta radians about the
// given axis. A zero axis is interpreted as the z axis so that a zero value
// still yields a valid unit quaternion.
func NewPoseFromAxisAngle(axis r3.Vector, theta float64) Pose {
	if axis.X == 0 && axis.Y == 0 && axis.Z == 0 {
		axis.Z = 1
	}
	axis = axis.Normalize()
	s := math.Sin(theta / 2)
	return Pose{dualquat.Number{
		Real: quat.Number{
			Real: math.Cos(theta / 2),
			Imag: s * axis.X,
			Jmag: s * axis.Y,
			Kmag: s * axis.Z,
		},
		Dual: quat.Number{},
	}}
}

// NewPose returns the Pose that first rotates by theta about axis, then
// translates by pt.
func NewPose(pt, axis r3.Vector, theta float64) Pose {
	p := NewPoseFromAxisAngle(axis, theta)
	return p.setTranslation(pt.X, pt.Y, pt.Z)
}

// NewPoseFromDH creates a Pose from the Denavit-Hartenberg parameters
// (link length a, link offset d, link twist alpha).
func NewPoseFromDH(a, d, alpha float64) Pose {
	m := mgl64.Ident4()

	m.Set(1, 1, math.Cos(alpha))
	m.Set(1, 2, -1*math.Sin(alpha))

	m.Set(2, 0, 0)
	m.Set(2, 1, math.Sin(alpha))
	m.Set(2, 2, math.Cos(alpha))

	qRot := mgl64.Mat4ToQuat(m)
	p := NewZeroPose()
	p.q.Real = quat.Number{Real: qRot.W, Imag: qRot.X(), Jmag: qRot.Y(), Kmag: qRot.Z()}
	return p.setTranslation(a, 0, d)
}

// Compose returns the transform equivalent to applying b first, then a.
// This is the transform chaining operation used when walking a kinematic
// tree from a leaf towards the root.
func Compose(a, b Pose) Pose {
	// Ensure we are multiplying by a unit dual quaternion
	if vecLen := quat.Abs(b.q.Real); vecLen != 1 {
		b.q.Real = quat.Scale(1/vecLen, b.q.Real)
	}
	return Pose{dualquat.Mul(a.q, b.q)}
}

// Invert returns the inverse transform, such that Compose(p, p.Invert()) is
// the identity.
func (p Pose) Invert() Pose {
	return Pose{dualquat.ConjQuat(p.q)}
}

// Point returns the translation component of the Pose.
func (p Pose) Point() r3.Vector {
	// Multiplying by the conjugate leaves an identity real part and a dual
	// part holding the cartesian translation.
	t := dualquat.Mul(p.q, dualquat.Conj(p.q))
	return r3.Vector{X: t.Dual.Imag, Y: t.Dual.Jmag, Z: t.Dual.Kmag}
}

// Rotation returns the rotation component as a unit quaternion.
func (p Pose) Rotation() quat.Number {
	return p.q.Real
}

// Quat exposes the underlying dual quaternion for callers doing their own
// spatial algebra.
func (p Pose) Quat() dualquat.Number {
	return p.q
}

// AlmostEqual reports whether two Poses represent the same transform to
// within epsilon. The double cover of the rotation group is accounted for:
// q and -q compare equal.
func (p Pose) AlmostEqual(o Pose, epsilon float64) bool {
	p1, p2 := p.Point(), o.Point()
	if !Float64AlmostEqual(p1.X, p2.X, epsilon) ||
		!Float64AlmostEqual(p1.Y, p2.Y, epsilon) ||
		!Float64AlmostEqual(p1.Z, p2.Z, epsilon) {
		return false
	}
	r1, r2 := p.q.Real, o.q.Real
	if quatAlmostEqual(r1, r2, epsilon) {
		return true
	}
	return quatAlmostEqual(r1, quat.Scale(-1, r2), epsilon)
}

// setTranslation sets the dual part against the rotation already stored in
// the real part, returning the updated value.
func (p Pose) setTranslation(x, y, z float64) Pose {
	p.q.Dual = quat.Mul(quat.Number{Imag: x / 2, Jmag: y / 2, Kmag: z / 2}, p.q.Real)
	return p
}

func quatAlmostEqual(a, b quat.Number, epsilon float64) bool {
	return Float64AlmostEqual(a.Real, b.Real, epsilon) &&
		Float64AlmostEqual(a.Imag, b.Imag, epsilon) &&
		Float64AlmostEqual(a.Jmag, b.Jmag, epsilon) &&
		Float64AlmostEqual(a.Kmag, b.Kmag, epsilon)
}
