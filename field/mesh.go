package field

import (
	"sort"

	"github.com/pkg/errors"
)

// Element is a mesh element interpolated from its nodes.
type Element struct {
	id    int
	mesh  *Mesh
	nodes []*Node
}

// ID returns the element identifier.
func (e *Element) ID() int {
	return e.id
}

// Mesh returns the owning mesh.
func (e *Element) Mesh() *Mesh {
	return e.mesh
}

// Nodes returns the element's local nodes in order.
func (e *Element) Nodes() []*Node {
	return append([]*Node{}, e.nodes...)
}

// Mesh holds the elements of one dimension, sorted by identifier.
type Mesh struct {
	dimension int
	module    *Module
	elements  []*Element
	byID      map[int]*Element
}

func newMesh(m *Module, dim int) *Mesh {
	return &Mesh{
		dimension: dim,
		module:    m,
		byID:      make(map[int]*Element),
	}
}

// Dimension returns 1, 2 or 3.
func (m *Mesh) Dimension() int {
	return m.dimension
}

// Size returns the number of elements.
func (m *Mesh) Size() int {
	return len(m.elements)
}

// CreateElement adds an element over mesh nodes of the same module.
func (m *Mesh) CreateElement(id int, nodes []*Node) (*Element, error) {
	if id < 1 {
		return nil, errors.Errorf("invalid element identifier %d", id)
	}
	if _, ok := m.byID[id]; ok {
		return nil, errors.Wrapf(ErrElementExists, "%dD element %d", m.dimension, id)
	}
	mesh := m.module.FindNodesetByDomainType(DomainNodes)
	for _, n := range nodes {
		if n == nil || n.nodeset != mesh {
			return nil, errors.Errorf("element %d: node is not a mesh node of this module", id)
		}
	}
	e := &Element{id: id, mesh: m, nodes: append([]*Node{}, nodes...)}
	i := sort.Search(len(m.elements), func(i int) bool { return m.elements[i].id > id })
	m.elements = append(m.elements, nil)
	copy(m.elements[i+1:], m.elements[i:])
	m.elements[i] = e
	m.byID[id] = e
	return e, nil
}

// FindElementByIdentifier returns the element or nil.
func (m *Mesh) FindElementByIdentifier(id int) *Element {
	return m.byID[id]
}

// Elements returns the elements in identifier order.
func (m *Mesh) Elements() []*Element {
	return append([]*Element{}, m.elements...)
}
