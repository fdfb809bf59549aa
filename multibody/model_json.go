package multibody

import (
	"encoding/json"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/mechlab/kinetree/spatialmath"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.New("no model information")

// ModelConfigJSON represents all supported fields in a multibody model JSON
// file. Bodies and joints are referenced by name in the file; dense ids are
// assigned from declaration order when the model is parsed.
type ModelConfigJSON struct {
	Name      string        `json:"name"`
	Root      string        `json:"root,omitempty"`       // defaults to the first body
	FixedBase *bool         `json:"fixed_base,omitempty"` // defaults to true
	Bodies    []BodyConfig  `json:"bodies"`
	Joints    []JointConfig `json:"joints"`
}

// BodyConfig describes one body. Inertia holds the principal moments about
// the body frame axes.
type BodyConfig struct {
	Name         string            `json:"name"`
	Mass         float64           `json:"mass,omitempty"`
	CenterOfMass TranslationConfig `json:"center_of_mass,omitempty"`
	Inertia      [3]float64        `json:"inertia,omitempty"`
}

// JointConfig describes one joint and the two bodies it connects.
type JointConfig struct {
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	Parent string     `json:"parent"`
	Child  string     `json:"child"`
	XFrom  PoseConfig `json:"xfrom,omitempty"`
	XTo    PoseConfig `json:"xto,omitempty"`
}

// TranslationConfig holds a cartesian offset in millimeters.
type TranslationConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PoseConfig holds a rigid transform as a translation plus an axis-angle
// rotation, with the angle in degrees as is conventional in model files.
type PoseConfig struct {
	Translation TranslationConfig `json:"translation,omitempty"`
	Axis        TranslationConfig `json:"axis,omitempty"`
	Degrees     float64           `json:"degrees,omitempty"`
}

func (tc TranslationConfig) vector() r3.Vector {
	return r3.Vector{X: tc.X, Y: tc.Y, Z: tc.Z}
}

// ParsePose converts the config into a Pose. A zero config yields the
// identity transform.
func (pc PoseConfig) ParsePose() spatialmath.Pose {
	if pc.Degrees == 0 {
		return spatialmath.NewPoseFromPoint(pc.Translation.vector())
	}
	return spatialmath.NewPose(pc.Translation.vector(), pc.Axis.vector(), spatialmath.DegToRad(pc.Degrees))
}

// UnmarshalModelJSON parses the given JSON data into a kinematic tree.
// modelName overrides the name from the JSON when non-empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*MultiBody, error) {
	// empty data probably means the component has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &ModelConfigJSON{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return cfg.ParseConfig(modelName)
}

// ParseModelJSONFile reads a given file and then parses the contained JSON
// data.
func ParseModelJSONFile(filename, modelName string) (*MultiBody, error) {
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}

// ParseConfig converts the config struct into a validated MultiBody. The
// model name is currently informational only; modelName is accepted for
// symmetry with UnmarshalModelJSON.
func (cfg *ModelConfigJSON) ParseConfig(modelName string) (*MultiBody, error) {
	if modelName == "" {
		modelName = cfg.Name
	}
	if len(cfg.Bodies) == 0 {
		return nil, errors.Wrapf(ErrStructuralMismatch, "model %q has no bodies", modelName)
	}

	g := NewGraph()
	idByName := make(map[string]int, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		if bc.Name == "" {
			return nil, errors.Wrapf(ErrStructuralMismatch, "body %d has no name", i)
		}
		if _, ok := idByName[bc.Name]; ok {
			return nil, errors.Wrapf(ErrStructuralMismatch, "duplicate body name %q", bc.Name)
		}
		idByName[bc.Name] = i
		inertia := mgl64.Diag3(mgl64.Vec3{bc.Inertia[0], bc.Inertia[1], bc.Inertia[2]})
		if err := g.AddBody(NewBody(i, bc.Name, bc.Mass, bc.CenterOfMass.vector(), inertia)); err != nil {
			return nil, err
		}
	}

	jointNames := make(map[string]bool, len(cfg.Joints))
	for i, jc := range cfg.Joints {
		if jc.Name == "" {
			return nil, errors.Wrapf(ErrStructuralMismatch, "joint %d has no name", i)
		}
		if jointNames[jc.Name] {
			return nil, errors.Wrapf(ErrStructuralMismatch, "duplicate joint name %q", jc.Name)
		}
		jointNames[jc.Name] = true

		j, err := NewJoint(JointType(jc.Type), i, jc.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q", jc.Name)
		}
		if err := g.AddJoint(j); err != nil {
			return nil, err
		}

		predID, ok := idByName[jc.Parent]
		if !ok {
			return nil, errors.Wrapf(ErrStructuralMismatch, "joint %q references unknown parent body %q", jc.Name, jc.Parent)
		}
		succID, ok := idByName[jc.Child]
		if !ok {
			return nil, errors.Wrapf(ErrStructuralMismatch, "joint %q references unknown child body %q", jc.Name, jc.Child)
		}
		if err := g.Link(predID, succID, i, jc.XFrom.ParsePose(), jc.XTo.ParsePose()); err != nil {
			return nil, err
		}
	}

	rootName := cfg.Root
	if rootName == "" {
		rootName = cfg.Bodies[0].Name
	}
	rootID, ok := idByName[rootName]
	if !ok {
		return nil, errors.Wrapf(ErrStructuralMismatch, "root body %q not defined", rootName)
	}

	fixed := true
	if cfg.FixedBase != nil {
		fixed = *cfg.FixedBase
	}
	return g.MakeMultiBody(rootID, fixed)
}
