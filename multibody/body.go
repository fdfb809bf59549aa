// Package multibody models the kinematic tree of an articulated rigid-body
// system: rigid bodies connected by joints, the connectivity arrays tying
// them together, and the id bookkeeping that downstream kinematics and
// dynamics algorithms traverse.
package multibody

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Body is one rigid body of a multibody system. It is an immutable value
// type; the physical properties are those needed by dynamics algorithms
// downstream of this package.
type Body struct {
	id      int
	name    string
	mass    float64
	com     r3.Vector
	inertia mgl64.Mat3
}

// NewBody creates a body with the given unique id, display name, mass,
// center of mass relative to the body frame, and rotational inertia about
// the body frame origin.
func NewBody(id int, name string, mass float64, com r3.Vector, inertia mgl64.Mat3) Body {
	return Body{id: id, name: name, mass: mass, com: com, inertia: inertia}
}

// ID returns the body id, unique across the bodies of one system.
func (b Body) ID() int {
	return b.id
}

// Name returns the display name of the body.
func (b Body) Name() string {
	return b.name
}

// Mass returns the body mass.
func (b Body) Mass() float64 {
	return b.mass
}

// CenterOfMass returns the center of mass in the body frame.
func (b Body) CenterOfMass() r3.Vector {
	return b.com
}

// Inertia returns the rotational inertia about the body frame origin.
func (b Body) Inertia() mgl64.Mat3 {
	return b.inertia
}
