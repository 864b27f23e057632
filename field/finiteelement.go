package field

import (
	"github.com/pkg/errors"
)

// FiniteElement is a field interpolated from nodal parameters. It implements
// both Field and ParameterStore.
type FiniteElement struct {
	name             string
	module           *Module
	components       int
	coordinateSystem CoordinateSystemType
	coordinate       bool

	params map[*Node]map[ValueLabel][][]float64
}

var (
	_ Field          = (*FiniteElement)(nil)
	_ ParameterStore = (*FiniteElement)(nil)
)

func (f *FiniteElement) Name() string {
	return f.name
}

func (f *FiniteElement) Module() *Module {
	return f.module
}

func (f *FiniteElement) NumberOfComponents() int {
	return f.components
}

func (f *FiniteElement) CoordinateSystemType() CoordinateSystemType {
	return f.coordinateSystem
}

func (f *FiniteElement) SetCoordinateSystemType(c CoordinateSystemType) {
	f.coordinateSystem = c
}

func (f *FiniteElement) IsTypeCoordinate() bool {
	return f.coordinate
}

func (f *FiniteElement) SetTypeCoordinate(c bool) {
	f.coordinate = c
}

func (f *FiniteElement) CastFiniteElement() (ParameterStore, bool) {
	return f, true
}

// DefineAtNode allocates zeroed parameters at n for each label with a
// positive version count. A previous definition at n is replaced.
func (f *FiniteElement) DefineAtNode(n *Node, versions map[ValueLabel]int) error {
	if n == nil || n.nodeset.module != f.module {
		return errors.Errorf("field %q: node is not part of the module", f.name)
	}
	if versions[ValueLabelValue] < 1 {
		return errors.Errorf("field %q: node %d must define at least one value version", f.name, n.id)
	}
	labels := make(map[ValueLabel][][]float64)
	for l, v := range versions {
		if _, ok := valueLabelNames[l]; !ok {
			return errors.Errorf("field %q: invalid value label %d", f.name, int(l))
		}
		if v < 1 {
			continue
		}
		vv := make([][]float64, v)
		for i := range vv {
			vv[i] = make([]float64, f.components)
		}
		labels[l] = vv
	}
	f.params[n] = labels
	return nil
}

// IsDefinedAtNode reports whether f has parameters at n.
func (f *FiniteElement) IsDefinedAtNode(n *Node) bool {
	_, ok := f.params[n]
	return ok
}

// IsDefinedAtElement reports whether f is defined at every node of e.
func (f *FiniteElement) IsDefinedAtElement(e *Element) bool {
	if e == nil || len(e.nodes) == 0 {
		return false
	}
	for _, n := range e.nodes {
		if !f.IsDefinedAtNode(n) {
			return false
		}
	}
	return true
}

// EvaluateAtNode returns the first version of the VALUE parameters.
func (f *FiniteElement) EvaluateAtNode(n *Node) ([]float64, error) {
	return f.NodeParameters(n, ValueLabelValue, 1, f.components)
}

func (f *FiniteElement) BeginChange() {
	f.module.BeginChange()
}

func (f *FiniteElement) EndChange() {
	f.module.EndChange()
}

// NodeIterator iterates the mesh nodes of the module, including nodes f is
// not defined at.
func (f *FiniteElement) NodeIterator() NodeIterator {
	return f.module.FindNodesetByDomainType(DomainNodes).NodeIterator()
}

// DataPointIterator iterates the datapoints of the module.
func (f *FiniteElement) DataPointIterator() NodeIterator {
	return f.module.FindNodesetByDomainType(DomainDataPoints).NodeIterator()
}

// NumberOfVersions returns 0 if f has no parameters for label at n.
func (f *FiniteElement) NumberOfVersions(n *Node, label ValueLabel) int {
	return len(f.params[n][label])
}

func (f *FiniteElement) slot(n *Node, label ValueLabel, version int) ([]float64, error) {
	labels, ok := f.params[n]
	if !ok {
		return nil, errors.Wrapf(ErrNotDefined, "field %q at node %d", f.name, n.id)
	}
	vv, ok := labels[label]
	if !ok {
		return nil, errors.Wrapf(ErrNotDefined, "field %q at node %d %s", f.name, n.id, label)
	}
	if version < 1 || version > len(vv) {
		return nil, errors.Wrapf(ErrInvalidVersion, "field %q at node %d %s version %d", f.name, n.id, label, version)
	}
	return vv[version-1], nil
}

// NodeParameters returns a copy of the stored vector. components must equal
// the number of components of f.
func (f *FiniteElement) NodeParameters(n *Node, label ValueLabel, version, components int) ([]float64, error) {
	if components != f.components {
		return nil, errors.Wrapf(ErrInvalidComponents, "field %q: requested %d of %d", f.name, components, f.components)
	}
	v, err := f.slot(n, label, version)
	if err != nil {
		return nil, err
	}
	return append([]float64{}, v...), nil
}

// SetNodeParameters overwrites the stored vector and marks f as changed.
func (f *FiniteElement) SetNodeParameters(n *Node, label ValueLabel, version int, values []float64) error {
	if len(values) != f.components {
		return errors.Wrapf(ErrInvalidComponents, "field %q: got %d of %d", f.name, len(values), f.components)
	}
	v, err := f.slot(n, label, version)
	if err != nil {
		return err
	}
	copy(v, values)
	f.module.fieldChanged(f.name)
	return nil
}
