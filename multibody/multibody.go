package multibody

import (
	"go.uber.org/multierr"

	"github.com/mechlab/kinetree/spatialmath"
)

// RootSentinel is the parent entry recorded for the root body, which has no
// parent body inside the tree.
const RootSentinel = -1

// MultiBody is the kinematic tree of an articulated rigid-body system:
// bodies and joints in root-to-leaf order, the connectivity arrays linking
// them, the transforms between body and joint frames, and id lookup tables.
//
// Bodies and joints are addressed by dense indices. Body index 0 is the root
// body. Joint index 0 is the root joint attaching the tree to the fixed
// world frame (same layout as Featherstone's, except that index 0 is a real
// joint rather than "no joint"). Iterating joints in index order visits the
// tree in a valid topological order from root to leaves; construction
// validates this.
//
// A MultiBody is immutable once constructed, so it is safe for concurrent
// reads from any number of goroutines without locking.
type MultiBody struct {
	bodies []Body
	joints []Joint

	pred   []int
	succ   []int
	parent []int
	// xFrom[j] maps from the center of joint j's predecessor body to the
	// joint frame; xTo[j] from the joint frame to the successor body center.
	xFrom []spatialmath.Pose
	xTo   []spatialmath.Pose

	bodyIndexByID  map[int]int
	jointIndexByID map[int]int

	nrParams int
	nrDof    int
}

// NewMultiBody atomically constructs a kinematic tree from its parts.
//
//	bodies  bodies in root-to-leaf order; index 0 is the root.
//	joints  joints in the same order; index 0 is the root joint.
//	pred    predecessor body index of each joint; the root joint's entry
//	        may record either body 0 or RootSentinel for the world frame.
//	succ    successor body index of each joint.
//	parent  parent body index of each body (RootSentinel for the root).
//	xFrom   transform from each joint's predecessor body center.
//	xTo     transform to each joint's successor body center.
//
// All structural invariants are validated eagerly: consistent array lengths,
// in-range connectivity indices, unique body and joint ids, and a rooted
// acyclic tree shape with joint 0 incident on the root body. Any violation
// fails construction with an error wrapping ErrStructuralMismatch; all
// violations found are reported together.
func NewMultiBody(
	bodies []Body,
	joints []Joint,
	pred, succ, parent []int,
	xFrom, xTo []spatialmath.Pose,
) (*MultiBody, error) {
	nb, nj := len(bodies), len(joints)

	var lenErr error
	if len(parent) != nb {
		multierr.AppendInto(&lenErr, newLengthMismatchError("parent", len(parent), nb))
	}
	if len(pred) != nj {
		multierr.AppendInto(&lenErr, newLengthMismatchError("pred", len(pred), nj))
	}
	if len(succ) != nj {
		multierr.AppendInto(&lenErr, newLengthMismatchError("succ", len(succ), nj))
	}
	if len(xFrom) != nj {
		multierr.AppendInto(&lenErr, newLengthMismatchError("xFrom", len(xFrom), nj))
	}
	if len(xTo) != nj {
		multierr.AppendInto(&lenErr, newLengthMismatchError("xTo", len(xTo), nj))
	}
	if lenErr != nil {
		// the remaining checks index into these arrays, so stop here
		return nil, lenErr
	}

	// the tree owns its sequences outright, so detach them from the caller
	mb := &MultiBody{
		bodies:         append([]Body(nil), bodies...),
		joints:         append([]Joint(nil), joints...),
		pred:           append([]int(nil), pred...),
		succ:           append([]int(nil), succ...),
		parent:         append([]int(nil), parent...),
		xFrom:          append([]spatialmath.Pose(nil), xFrom...),
		xTo:            append([]spatialmath.Pose(nil), xTo...),
		bodyIndexByID:  make(map[int]int, nb),
		jointIndexByID: make(map[int]int, nj),
	}

	var err error
	for i, b := range bodies {
		if first, ok := mb.bodyIndexByID[b.ID()]; ok {
			multierr.AppendInto(&err, newDuplicateIDError("body", b.ID(), first, i))
			continue
		}
		mb.bodyIndexByID[b.ID()] = i
	}
	for i, j := range joints {
		if first, ok := mb.jointIndexByID[j.ID()]; ok {
			multierr.AppendInto(&err, newDuplicateIDError("joint", j.ID(), first, i))
			continue
		}
		mb.jointIndexByID[j.ID()] = i
		mb.nrParams += j.Params()
		mb.nrDof += j.DoF()
	}

	multierr.AppendInto(&err, validateTree(pred, succ, parent, nb))
	if err != nil {
		return nil, err
	}
	return mb, nil
}

// validateTree checks connectivity bounds and the rooted-tree shape. Bodies
// are required in root-to-leaf order, so every parent index must be strictly
// smaller than its child's; that single condition rules out cycles and
// unreachable bodies at the same time.
func validateTree(pred, succ, parent []int, nrBodies int) error {
	var err error

	for b, p := range parent {
		switch {
		case b == 0:
			if p != RootSentinel {
				multierr.AppendInto(&err, newNotATreeError(
					"parent[0] is %d, the root body must have parent %d", p, RootSentinel))
			}
		case p < 0 || p >= b:
			multierr.AppendInto(&err, newNotATreeError(
				"parent[%d] is %d, want a body index in [0,%d) for root-to-leaf order", b, p, b))
		}
	}

	seenSucc := make(map[int]int, len(succ))
	for j := range succ {
		p, s := pred[j], succ[j]
		if s < 0 || s >= nrBodies {
			multierr.AppendInto(&err, newBadIndexError("succ", j, s, nrBodies))
			continue
		}
		if p != RootSentinel && (p < 0 || p >= nrBodies) {
			multierr.AppendInto(&err, newBadIndexError("pred", j, p, nrBodies))
			continue
		}
		if first, ok := seenSucc[s]; ok {
			multierr.AppendInto(&err, newNotATreeError(
				"joints %d and %d share successor body %d", first, j, s))
			continue
		}
		seenSucc[s] = j

		if j == 0 {
			// the root joint attaches the root body to the world frame
			if s != 0 {
				multierr.AppendInto(&err, newNotATreeError(
					"succ[0] is %d, the root joint's successor must be body 0", s))
			}
		} else if p != parent[s] {
			multierr.AppendInto(&err, newNotATreeError(
				"pred[%d] is %d but parent[%d] is %d", j, p, s, parent[s]))
		}
	}

	return err
}

// NrBodies returns the number of bodies.
func (mb *MultiBody) NrBodies() int {
	return len(mb.bodies)
}

// NrJoints returns the number of joints.
func (mb *MultiBody) NrJoints() int {
	return len(mb.joints)
}

// NrParams returns the total number of generalized position parameters over
// all joints, precomputed at construction.
func (mb *MultiBody) NrParams() int {
	return mb.nrParams
}

// NrDof returns the total number of velocity degrees of freedom over all
// joints, precomputed at construction.
func (mb *MultiBody) NrDof() int {
	return mb.nrDof
}

// Bodies returns the bodies in root-to-leaf order. The returned slice is
// owned by the MultiBody and must not be modified.
func (mb *MultiBody) Bodies() []Body {
	return mb.bodies
}

// Joints returns the joints in root-to-leaf order. The returned slice is
// owned by the MultiBody and must not be modified.
func (mb *MultiBody) Joints() []Joint {
	return mb.joints
}

// Predecessors returns the predecessor body index of each joint. The
// returned slice is owned by the MultiBody and must not be modified.
func (mb *MultiBody) Predecessors() []int {
	return mb.pred
}

// Successors returns the successor body index of each joint. The returned
// slice is owned by the MultiBody and must not be modified.
func (mb *MultiBody) Successors() []int {
	return mb.succ
}

// Parents returns the parent body index of each body, RootSentinel for the
// root. The returned slice is owned by the MultiBody and must not be
// modified.
func (mb *MultiBody) Parents() []int {
	return mb.parent
}

// TransformsFrom returns, for each joint, the transform from the
// predecessor body center to the joint frame. The returned slice is owned
// by the MultiBody and must not be modified.
func (mb *MultiBody) TransformsFrom() []spatialmath.Pose {
	return mb.xFrom
}

// TransformsTo returns, for each joint, the transform from the joint frame
// to the successor body center. The returned slice is owned by the
// MultiBody and must not be modified.
func (mb *MultiBody) TransformsTo() []spatialmath.Pose {
	return mb.xTo
}

// The unchecked accessors below index the underlying slices directly. They
// are meant for algorithm inner loops whose indices are valid by
// construction; an out-of-range index panics. Boundary code handling
// externally supplied indices should use the Safe variants instead.

// Body returns the body at index num. Panics if num is out of range.
func (mb *MultiBody) Body(num int) Body {
	return mb.bodies[num]
}

// Joint returns the joint at index num. Panics if num is out of range.
func (mb *MultiBody) Joint(num int) Joint {
	return mb.joints[num]
}

// Predecessor returns the predecessor body index of joint num. Panics if
// num is out of range.
func (mb *MultiBody) Predecessor(num int) int {
	return mb.pred[num]
}

// Successor returns the successor body index of joint num. Panics if num is
// out of range.
func (mb *MultiBody) Successor(num int) int {
	return mb.succ[num]
}

// Parent returns the parent body index of body num, RootSentinel for the
// root. Panics if num is out of range.
func (mb *MultiBody) Parent(num int) int {
	return mb.parent[num]
}

// TransformFrom returns the transform from the predecessor body center to
// the frame of joint num. Panics if num is out of range.
func (mb *MultiBody) TransformFrom(num int) spatialmath.Pose {
	return mb.xFrom[num]
}

// TransformTo returns the transform from the frame of joint num to the
// successor body center. Panics if num is out of range.
func (mb *MultiBody) TransformTo(num int) spatialmath.Pose {
	return mb.xTo[num]
}

// BodyIndexByID returns the index of the body with the given id, or -1 if
// no body has that id.
func (mb *MultiBody) BodyIndexByID(id int) int {
	if idx, ok := mb.bodyIndexByID[id]; ok {
		return idx
	}
	return -1
}

// JointIndexByID returns the index of the joint with the given id, or -1 if
// no joint has that id.
func (mb *MultiBody) JointIndexByID(id int) int {
	if idx, ok := mb.jointIndexByID[id]; ok {
		return idx
	}
	return -1
}

// The Safe accessors convert out-of-range indices and unknown ids into
// errors instead of panics, for callers whose inputs come from outside the
// tree (user input, bindings, deserialized data).

// SafeBody is the checked version of Body.
func (mb *MultiBody) SafeBody(num int) (Body, error) {
	if num < 0 || num >= len(mb.bodies) {
		return Body{}, newIndexOutOfRangeError("body", num, len(mb.bodies))
	}
	return mb.bodies[num], nil
}

// SafeJoint is the checked version of Joint.
func (mb *MultiBody) SafeJoint(num int) (Joint, error) {
	if num < 0 || num >= len(mb.joints) {
		return Joint{}, newIndexOutOfRangeError("joint", num, len(mb.joints))
	}
	return mb.joints[num], nil
}

// SafePredecessor is the checked version of Predecessor.
func (mb *MultiBody) SafePredecessor(num int) (int, error) {
	if num < 0 || num >= len(mb.pred) {
		return 0, newIndexOutOfRangeError("joint", num, len(mb.pred))
	}
	return mb.pred[num], nil
}

// SafeSuccessor is the checked version of Successor.
func (mb *MultiBody) SafeSuccessor(num int) (int, error) {
	if num < 0 || num >= len(mb.succ) {
		return 0, newIndexOutOfRangeError("joint", num, len(mb.succ))
	}
	return mb.succ[num], nil
}

// SafeParent is the checked version of Parent.
func (mb *MultiBody) SafeParent(num int) (int, error) {
	if num < 0 || num >= len(mb.parent) {
		return 0, newIndexOutOfRangeError("body", num, len(mb.parent))
	}
	return mb.parent[num], nil
}

// SafeTransformFrom is the checked version of TransformFrom.
func (mb *MultiBody) SafeTransformFrom(num int) (spatialmath.Pose, error) {
	if num < 0 || num >= len(mb.xFrom) {
		return spatialmath.Pose{}, newIndexOutOfRangeError("joint", num, len(mb.xFrom))
	}
	return mb.xFrom[num], nil
}

// SafeTransformTo is the checked version of TransformTo.
func (mb *MultiBody) SafeTransformTo(num int) (spatialmath.Pose, error) {
	if num < 0 || num >= len(mb.xTo) {
		return spatialmath.Pose{}, newIndexOutOfRangeError("joint", num, len(mb.xTo))
	}
	return mb.xTo[num], nil
}

// SafeBodyIndexByID is the checked version of BodyIndexByID; it fails with
// an error wrapping ErrUnknownID rather than returning -1.
func (mb *MultiBody) SafeBodyIndexByID(id int) (int, error) {
	idx, ok := mb.bodyIndexByID[id]
	if !ok {
		return 0, newUnknownIDError("body", id)
	}
	return idx, nil
}

// SafeJointIndexByID is the checked version of JointIndexByID; it fails
// with an error wrapping ErrUnknownID rather than returning -1.
func (mb *MultiBody) SafeJointIndexByID(id int) (int, error) {
	idx, ok := mb.jointIndexByID[id]
	if !ok {
		return 0, newUnknownIDError("joint", id)
	}
	return idx, nil
}
