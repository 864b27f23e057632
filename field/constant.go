package field

import (
	"sort"
)

// Constant is a field with the same value at every location. It has no
// nodal parameters.
type Constant struct {
	name             string
	module           *Module
	values           []float64
	coordinateSystem CoordinateSystemType
	coordinate       bool
}

var _ Field = (*Constant)(nil)

func (f *Constant) Name() string                                   { return f.name }
func (f *Constant) Module() *Module                                { return f.module }
func (f *Constant) NumberOfComponents() int                        { return len(f.values) }
func (f *Constant) CoordinateSystemType() CoordinateSystemType     { return f.coordinateSystem }
func (f *Constant) SetCoordinateSystemType(c CoordinateSystemType) { f.coordinateSystem = c }
func (f *Constant) IsTypeCoordinate() bool                         { return f.coordinate }
func (f *Constant) SetTypeCoordinate(c bool)                       { f.coordinate = c }
func (f *Constant) IsDefinedAtNode(*Node) bool                     { return true }
func (f *Constant) IsDefinedAtElement(*Element) bool               { return true }
func (f *Constant) CastFiniteElement() (ParameterStore, bool)      { return nil, false }

func (f *Constant) EvaluateAtNode(*Node) ([]float64, error) {
	return append([]float64{}, f.values...), nil
}

// Group is a named set of elements, used to pick anatomical parts of a
// scaffold. It evaluates to 1 inside the group and 0 elsewhere.
type Group struct {
	name     string
	module   *Module
	elements map[*Element]bool
}

var _ Field = (*Group)(nil)

func (g *Group) Name() string            { return g.name }
func (g *Group) Module() *Module         { return g.module }
func (g *Group) NumberOfComponents() int { return 1 }
func (g *Group) CoordinateSystemType() CoordinateSystemType {
	return CoordinateSystemRectangularCartesian
}
func (g *Group) IsTypeCoordinate() bool                    { return false }
func (g *Group) IsDefinedAtNode(*Node) bool                { return true }
func (g *Group) IsDefinedAtElement(*Element) bool          { return true }
func (g *Group) CastFiniteElement() (ParameterStore, bool) { return nil, false }

func (g *Group) EvaluateAtNode(n *Node) ([]float64, error) {
	for e := range g.elements {
		for _, en := range e.nodes {
			if en == n {
				return []float64{1}, nil
			}
		}
	}
	return []float64{0}, nil
}

// AddElement puts e in the group.
func (g *Group) AddElement(e *Element) {
	g.elements[e] = true
}

// ContainsElement reports whether e is in the group.
func (g *Group) ContainsElement(e *Element) bool {
	return g.elements[e]
}

// Size returns the number of elements in the group.
func (g *Group) Size() int {
	return len(g.elements)
}

// Elements returns the group's elements ordered by dimension, then identifier.
func (g *Group) Elements() []*Element {
	out := make([]*Element, 0, len(g.elements))
	for e := range g.elements {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].mesh.dimension != out[j].mesh.dimension {
			return out[i].mesh.dimension < out[j].mesh.dimension
		}
		return out[i].id < out[j].id
	})
	return out
}
