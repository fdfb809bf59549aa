package multibody

import (
	"github.com/pkg/errors"

	"github.com/mechlab/kinetree/spatialmath"
)

// RootJointID is the reserved id given to the root joint that
// Graph.MakeMultiBody synthesizes. User-supplied joint ids must not use it.
const RootJointID = -1

// arc is one joint linking a predecessor body to a successor body, with the
// transforms on either side of the joint frame.
type arc struct {
	jointID int
	predID  int
	succID  int
	xFrom   spatialmath.Pose
	xTo     spatialmath.Pose
}

// Graph is the mutable assembly stage a MultiBody is compiled from. Bodies
// and joints are registered by id, then linked into arcs; MakeMultiBody
// walks the arcs from a chosen root and emits the immutable indexed tree.
//
// A Graph is not safe for concurrent use; build it from one goroutine, then
// share the MultiBody it produces.
type Graph struct {
	bodies map[int]Body
	joints map[int]Joint
	linked map[int]bool  // joint ids already used by an arc
	arcs   map[int][]arc // keyed by predecessor body id, in Link order
}

// NewGraph returns an empty assembly graph.
func NewGraph() *Graph {
	return &Graph{
		bodies: map[int]Body{},
		joints: map[int]Joint{},
		linked: map[int]bool{},
		arcs:   map[int][]arc{},
	}
}

// AddBody registers a body. Reusing an existing body id is an error.
func (g *Graph) AddBody(b Body) error {
	if _, ok := g.bodies[b.ID()]; ok {
		return errors.Wrapf(ErrStructuralMismatch, "body id %d already in graph", b.ID())
	}
	g.bodies[b.ID()] = b
	return nil
}

// AddJoint registers a joint. Reusing an existing joint id, or the reserved
// RootJointID, is an error.
func (g *Graph) AddJoint(j Joint) error {
	if j.ID() == RootJointID {
		return errors.Wrapf(ErrStructuralMismatch, "joint id %d is reserved for the root joint", RootJointID)
	}
	if _, ok := g.joints[j.ID()]; ok {
		return errors.Wrapf(ErrStructuralMismatch, "joint id %d already in graph", j.ID())
	}
	g.joints[j.ID()] = j
	return nil
}

// Link connects two registered bodies through a registered joint. xFrom
// maps from the predecessor body center to the joint frame, xTo from the
// joint frame to the successor body center. A joint can be used by exactly
// one link.
func (g *Graph) Link(predBodyID, succBodyID, jointID int, xFrom, xTo spatialmath.Pose) error {
	if _, ok := g.bodies[predBodyID]; !ok {
		return newUnknownIDError("body", predBodyID)
	}
	if _, ok := g.bodies[succBodyID]; !ok {
		return newUnknownIDError("body", succBodyID)
	}
	if _, ok := g.joints[jointID]; !ok {
		return newUnknownIDError("joint", jointID)
	}
	if g.linked[jointID] {
		return errors.Wrapf(ErrStructuralMismatch, "joint id %d is already linked", jointID)
	}
	g.linked[jointID] = true
	g.arcs[predBodyID] = append(g.arcs[predBodyID], arc{
		jointID: jointID,
		predID:  predBodyID,
		succID:  succBodyID,
		xFrom:   xFrom,
		xTo:     xTo,
	})
	return nil
}

// MakeMultiBody compiles the graph into an immutable MultiBody rooted at
// the body with id rootBodyID. Bodies and joints are emitted breadth-first
// from the root, which yields the root-to-leaf index order MultiBody
// requires. A root joint with id RootJointID is synthesized at joint index
// 0: fixed to the world frame when fixed is true, a free-floating base
// otherwise. Its predecessor is the world, recorded as RootSentinel, so
// Predecessor(j) == Parent(Successor(j)) holds for every joint of the
// compiled tree, the root joint included.
//
// Every registered body must be reachable from the root through the linked
// arcs, and no body may be reached twice; violations fail with an error
// wrapping ErrStructuralMismatch.
func (g *Graph) MakeMultiBody(rootBodyID int, fixed bool) (*MultiBody, error) {
	root, ok := g.bodies[rootBodyID]
	if !ok {
		return nil, newUnknownIDError("body", rootBodyID)
	}
	if unlinked := len(g.joints) - len(g.linked); unlinked != 0 {
		return nil, errors.Wrapf(ErrStructuralMismatch, "%d registered joints are not linked", unlinked)
	}

	rootType := JointFree
	if fixed {
		rootType = JointFixed
	}
	rootJoint, err := NewJoint(rootType, RootJointID, "Root")
	if err != nil {
		return nil, err
	}

	nb := len(g.bodies)
	bodies := make([]Body, 0, nb)
	joints := make([]Joint, 0, nb)
	pred := make([]int, 0, nb)
	succ := make([]int, 0, nb)
	parent := make([]int, 0, nb)
	xFrom := make([]spatialmath.Pose, 0, nb)
	xTo := make([]spatialmath.Pose, 0, nb)

	bodies = append(bodies, root)
	joints = append(joints, rootJoint)
	pred = append(pred, RootSentinel)
	succ = append(succ, 0)
	parent = append(parent, RootSentinel)
	xFrom = append(xFrom, spatialmath.NewZeroPose())
	xTo = append(xTo, spatialmath.NewZeroPose())

	indexOf := map[int]int{rootBodyID: 0}

	queue := []int{rootBodyID}
	for len(queue) != 0 {
		predID := queue[0]
		queue = queue[1:]
		predIdx := indexOf[predID]
		for _, a := range g.arcs[predID] {
			if seen, ok := indexOf[a.succID]; ok {
				return nil, errors.Wrapf(ErrStructuralMismatch,
					"body id %d reached twice (already at index %d), graph is not a tree", a.succID, seen)
			}
			idx := len(bodies)
			indexOf[a.succID] = idx
			bodies = append(bodies, g.bodies[a.succID])
			joints = append(joints, g.joints[a.jointID])
			pred = append(pred, predIdx)
			succ = append(succ, idx)
			parent = append(parent, predIdx)
			xFrom = append(xFrom, a.xFrom)
			xTo = append(xTo, a.xTo)
			queue = append(queue, a.succID)
		}
	}

	if len(bodies) != nb {
		return nil, errors.Wrapf(ErrStructuralMismatch,
			"%d of %d bodies unreachable from root body id %d", nb-len(bodies), nb, rootBodyID)
	}

	return NewMultiBody(bodies, joints, pred, succ, parent, xFrom, xTo)
}
