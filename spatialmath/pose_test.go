package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestZeroPose(t *testing.T) {
	p := NewZeroPose()
	pt := p.Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 0)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 0)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 0)
	test.That(t, p.Rotation().Real, test.ShouldAlmostEqual, 1)
}

func TestTranslationRoundTrip(t *testing.T) {
	p := NewPoseFromPoint(r3.Vector{X: 1, Y: -2, Z: 3.5})
	pt := p.Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 1)
	test.That(t, pt.Y, test.ShouldAlmostEqual, -2)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 3.5)
}

func TestComposeTranslations(t *testing.T) {
	a := NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0})
	b := NewPoseFromPoint(r3.Vector{X: 0, Y: 2, Z: 0})
	pt := Compose(a, b).Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 1)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 2)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 0)
}

func TestComposeRotationThenTranslation(t *testing.T) {
	rot := NewPoseFromAxisAngle(r3.Vector{Z: 1}, math.Pi/2)
	trans := NewPoseFromPoint(r3.Vector{X: 1})

	// a unit x offset seen through a 90 degree z rotation lands on the y axis
	pt := Compose(rot, trans).Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestInvert(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 1, Y: 1}, 0.5)
	ident := Compose(p, p.Invert())
	test.That(t, ident.AlmostEqual(NewZeroPose(), 1e-9), test.ShouldBeTrue)

	ident = Compose(p.Invert(), p)
	test.That(t, ident.AlmostEqual(NewZeroPose(), 1e-9), test.ShouldBeTrue)
}

func TestDHConstruction(t *testing.T) {
	p := NewPoseFromDH(1, 2, 0)
	pt := p.Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 1)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 0)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 2)
	test.That(t, p.AlmostEqual(NewPoseFromPoint(r3.Vector{X: 1, Z: 2}), 1e-9), test.ShouldBeTrue)

	// a pi/2 twist about x matches the axis angle constructor
	twist := NewPoseFromDH(0, 0, math.Pi/2)
	aa := NewPoseFromAxisAngle(r3.Vector{X: 1}, math.Pi/2)
	test.That(t, twist.AlmostEqual(aa, 1e-9), test.ShouldBeTrue)
}

func TestAlmostEqualDoubleCover(t *testing.T) {
	// a full turn negates the quaternion but represents the same transform
	full := NewPoseFromAxisAngle(r3.Vector{Z: 1}, 2*math.Pi)
	test.That(t, full.AlmostEqual(NewZeroPose(), 1e-9), test.ShouldBeTrue)
}

func TestDegRadConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
}
