package field

import (
	"github.com/pkg/errors"
)

// ChangeEvent lists the fields modified since the last notification.
type ChangeEvent struct {
	Fields []string
}

// Module owns the nodesets, meshes and fields of one region.
type Module struct {
	nodesets map[DomainType]*Nodeset
	meshes   [3]*Mesh
	fields   []Field

	changeLevel int
	changed     []string
	changedSet  map[string]bool
	listeners   []func(ChangeEvent)
}

// NewModule returns an empty module with node and datapoint nodesets and
// empty 1D, 2D and 3D meshes.
func NewModule() *Module {
	m := &Module{
		nodesets:   make(map[DomainType]*Nodeset),
		changedSet: make(map[string]bool),
	}
	for _, d := range []DomainType{DomainNodes, DomainDataPoints} {
		m.nodesets[d] = newNodeset(m, d)
	}
	for i := range m.meshes {
		m.meshes[i] = newMesh(m, i+1)
	}
	return m
}

// FindNodesetByDomainType returns the nodes or datapoints nodeset.
func (m *Module) FindNodesetByDomainType(d DomainType) *Nodeset {
	return m.nodesets[d]
}

// FindMeshByDimension returns the mesh of the given dimension, or nil if the
// dimension is not 1, 2 or 3.
func (m *Module) FindMeshByDimension(dim int) *Mesh {
	if dim < 1 || dim > len(m.meshes) {
		return nil
	}
	return m.meshes[dim-1]
}

// Fields returns the fields in iteration order, which is creation order.
func (m *Module) Fields() []Field {
	return append([]Field{}, m.fields...)
}

// FindFieldByName returns the named field or nil.
func (m *Module) FindFieldByName(name string) Field {
	for _, f := range m.fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (m *Module) addField(f Field) error {
	if f.Name() == "" {
		return errors.New("field name must not be empty")
	}
	if m.FindFieldByName(f.Name()) != nil {
		return errors.Wrapf(ErrFieldExists, "field %q", f.Name())
	}
	m.fields = append(m.fields, f)
	return nil
}

// CreateFieldFiniteElement creates a rectangular Cartesian, non-coordinate
// finite element field with the given number of components.
func (m *Module) CreateFieldFiniteElement(name string, components int) (*FiniteElement, error) {
	if components < 1 {
		return nil, errors.Wrapf(ErrInvalidComponents, "field %q: %d", name, components)
	}
	f := &FiniteElement{
		name:             name,
		module:           m,
		components:       components,
		coordinateSystem: CoordinateSystemRectangularCartesian,
		params:           make(map[*Node]map[ValueLabel][][]float64),
	}
	if err := m.addField(f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFieldConstant creates a field with the same value everywhere.
func (m *Module) CreateFieldConstant(name string, values []float64) (*Constant, error) {
	if len(values) < 1 {
		return nil, errors.Wrapf(ErrInvalidComponents, "field %q: 0", name)
	}
	f := &Constant{
		name:             name,
		module:           m,
		values:           append([]float64{}, values...),
		coordinateSystem: CoordinateSystemRectangularCartesian,
	}
	if err := m.addField(f); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateFieldGroup creates an empty element group.
func (m *Module) CreateFieldGroup(name string) (*Group, error) {
	f := &Group{
		name:     name,
		module:   m,
		elements: make(map[*Element]bool),
	}
	if err := m.addField(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AddChangeListener registers fn to be called after field parameters change.
func (m *Module) AddChangeListener(fn func(ChangeEvent)) {
	m.listeners = append(m.listeners, fn)
}

// BeginChange defers change notifications until the matching EndChange.
// Calls nest.
func (m *Module) BeginChange() {
	m.changeLevel++
}

// EndChange closes a BeginChange. The outermost call notifies listeners
// once if anything changed inside the bracket.
func (m *Module) EndChange() {
	if m.changeLevel == 0 {
		return
	}
	m.changeLevel--
	if m.changeLevel == 0 {
		m.flush()
	}
}

func (m *Module) fieldChanged(name string) {
	if !m.changedSet[name] {
		m.changedSet[name] = true
		m.changed = append(m.changed, name)
	}
	if m.changeLevel == 0 {
		m.flush()
	}
}

func (m *Module) flush() {
	if len(m.changed) == 0 {
		return
	}
	ev := ChangeEvent{Fields: m.changed}
	m.changed = nil
	m.changedSet = make(map[string]bool)
	for _, fn := range m.listeners {
		fn(ev)
	}
}
