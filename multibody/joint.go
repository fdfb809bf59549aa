package multibody

import "github.com/pkg/errors"

// JointType enumerates the supported joint kinds. The type fixes how many
// generalized position parameters and velocity degrees of freedom the joint
// contributes; parameter counts can exceed DoF where the position
// representation is redundant (a spherical joint holds a unit quaternion,
// a free joint a quaternion plus a translation).
type JointType string

// The supported joint types.
const (
	JointFixed       = JointType("fixed")
	JointRevolute    = JointType("revolute")
	JointPrismatic   = JointType("prismatic")
	JointCylindrical = JointType("cylindrical")
	JointPlanar      = JointType("planar")
	JointSpherical   = JointType("spherical")
	JointFree        = JointType("free")
)

// counts returns (params, dof) for the joint type.
func (jt JointType) counts() (int, int, error) {
	switch jt {
	case JointFixed:
		return 0, 0, nil
	case JointRevolute, JointPrismatic:
		return 1, 1, nil
	case JointCylindrical:
		return 2, 2, nil
	case JointPlanar:
		return 3, 3, nil
	case JointSpherical:
		return 4, 3, nil
	case JointFree:
		return 7, 6, nil
	default:
		return 0, 0, errors.Errorf("unsupported joint type %q", string(jt))
	}
}

// Joint is one joint of a multibody system, an immutable value type. Its
// parameter and DoF counts derive from the joint type, so dof <= params
// holds for every constructible Joint.
type Joint struct {
	id     int
	name   string
	jType  JointType
	params int
	dof    int
}

// NewJoint creates a joint of the given type with a unique id and a display
// name. An unsupported joint type is an error.
func NewJoint(jType JointType, id int, name string) (Joint, error) {
	params, dof, err := jType.counts()
	if err != nil {
		return Joint{}, err
	}
	return Joint{id: id, name: name, jType: jType, params: params, dof: dof}, nil
}

// ID returns the joint id, unique across the joints of one system.
func (j Joint) ID() int {
	return j.id
}

// Name returns the display name of the joint.
func (j Joint) Name() string {
	return j.name
}

// Type returns the joint type.
func (j Joint) Type() JointType {
	return j.jType
}

// Params returns the number of generalized position parameters the joint
// contributes.
func (j Joint) Params() int {
	return j.params
}

// DoF returns the number of velocity degrees of freedom the joint
// contributes.
func (j Joint) DoF() int {
	return j.dof
}
