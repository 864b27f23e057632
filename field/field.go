// Package field is an in-memory finite element field module.
//
// A Module owns nodesets (mesh nodes and data points), meshes of dimension 1 to
// 3 and an ordered list of fields. Finite element fields store, for every node
// they are defined on, a parameter vector per value label and version. Callers
// that update many parameters bracket the writes with BeginChange/EndChange so
// that listeners see a single change event.
package field

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotDefined is returned when a field has no parameters at a node.
	ErrNotDefined = errors.New("field is not defined at location")
	// ErrInvalidVersion is returned for a version outside 1..NumberOfVersions.
	ErrInvalidVersion = errors.New("invalid parameter version")
	// ErrInvalidComponents is returned when a vector size does not match the field.
	ErrInvalidComponents = errors.New("invalid number of components")
	// ErrNodeExists is returned when creating a node with a used identifier.
	ErrNodeExists = errors.New("node identifier already in use")
	// ErrElementExists is returned when creating an element with a used identifier.
	ErrElementExists = errors.New("element identifier already in use")
	// ErrFieldExists is returned when creating a field with a used name.
	ErrFieldExists = errors.New("field name already in use")
)

// ValueLabel identifies a nodal parameter kind: the value or one of its
// partial derivatives with respect to the element xi directions.
type ValueLabel int

const (
	ValueLabelInvalid ValueLabel = iota
	ValueLabelValue
	ValueLabelDDS1
	ValueLabelDDS2
	ValueLabelD2DS1DS2
	ValueLabelDDS3
	ValueLabelD2DS1DS3
	ValueLabelD2DS2DS3
	ValueLabelD3DS1DS2DS3
)

// ValueLabels lists every supported label in storage order.
var ValueLabels = [...]ValueLabel{
	ValueLabelValue,
	ValueLabelDDS1,
	ValueLabelDDS2,
	ValueLabelD2DS1DS2,
	ValueLabelDDS3,
	ValueLabelD2DS1DS3,
	ValueLabelD2DS2DS3,
	ValueLabelD3DS1DS2DS3,
}

var valueLabelNames = map[ValueLabel]string{
	ValueLabelValue:       "value",
	ValueLabelDDS1:        "d_ds1",
	ValueLabelDDS2:        "d_ds2",
	ValueLabelD2DS1DS2:    "d2_ds1ds2",
	ValueLabelDDS3:        "d_ds3",
	ValueLabelD2DS1DS3:    "d2_ds1ds3",
	ValueLabelD2DS2DS3:    "d2_ds2ds3",
	ValueLabelD3DS1DS2DS3: "d3_ds1ds2ds3",
}

func (l ValueLabel) String() string {
	if s, ok := valueLabelNames[l]; ok {
		return s
	}
	return "invalid"
}

// ParseValueLabel converts a label name such as "d_ds1" to a ValueLabel.
func ParseValueLabel(s string) (ValueLabel, error) {
	s = strings.ToLower(s)
	for l, name := range valueLabelNames {
		if name == s {
			return l, nil
		}
	}
	return ValueLabelInvalid, errors.Errorf("unknown value label %q", s)
}

// CoordinateSystemType is the coordinate system a field's values live in.
type CoordinateSystemType int

const (
	CoordinateSystemInvalid CoordinateSystemType = iota
	CoordinateSystemRectangularCartesian
	CoordinateSystemCylindricalPolar
	CoordinateSystemSphericalPolar
	CoordinateSystemProlateSpheroidal
	CoordinateSystemOblateSpheroidal
	CoordinateSystemFibre
)

var coordinateSystemNames = map[CoordinateSystemType]string{
	CoordinateSystemRectangularCartesian: "rectangular_cartesian",
	CoordinateSystemCylindricalPolar:     "cylindrical_polar",
	CoordinateSystemSphericalPolar:       "spherical_polar",
	CoordinateSystemProlateSpheroidal:    "prolate_spheroidal",
	CoordinateSystemOblateSpheroidal:     "oblate_spheroidal",
	CoordinateSystemFibre:                "fibre",
}

func (c CoordinateSystemType) String() string {
	if s, ok := coordinateSystemNames[c]; ok {
		return s
	}
	return "invalid"
}

// ParseCoordinateSystemType converts a name such as "rectangular_cartesian".
// An empty name means rectangular Cartesian.
func ParseCoordinateSystemType(s string) (CoordinateSystemType, error) {
	if s == "" {
		return CoordinateSystemRectangularCartesian, nil
	}
	s = strings.ToLower(s)
	for c, name := range coordinateSystemNames {
		if name == s {
			return c, nil
		}
	}
	return CoordinateSystemInvalid, errors.Errorf("unknown coordinate system %q", s)
}

// DomainType selects one of the module's nodesets.
type DomainType int

const (
	DomainNodes DomainType = iota
	DomainDataPoints
)

func (d DomainType) String() string {
	switch d {
	case DomainNodes:
		return "nodes"
	case DomainDataPoints:
		return "datapoints"
	}
	return "invalid"
}

// Field is the read side shared by all field kinds.
type Field interface {
	Name() string
	Module() *Module
	NumberOfComponents() int
	CoordinateSystemType() CoordinateSystemType
	IsTypeCoordinate() bool
	IsDefinedAtNode(n *Node) bool
	IsDefinedAtElement(e *Element) bool
	// EvaluateAtNode returns the field value at the node.
	EvaluateAtNode(n *Node) ([]float64, error)
	// CastFiniteElement returns the nodal parameter store of a finite
	// element field. ok is false for any other field kind.
	CastFiniteElement() (store ParameterStore, ok bool)
}

// ParameterStore is the per-node parameter surface of a finite element field.
// Versions are numbered from 1.
type ParameterStore interface {
	// BeginChange and EndChange bracket a bulk update. Listeners of the
	// owning module are notified once, at the outermost EndChange.
	BeginChange()
	EndChange()
	// NodeIterator iterates the mesh nodes once, in identifier order.
	NodeIterator() NodeIterator
	NumberOfVersions(n *Node, label ValueLabel) int
	NodeParameters(n *Node, label ValueLabel, version, components int) ([]float64, error)
	SetNodeParameters(n *Node, label ValueLabel, version int, values []float64) error
}
