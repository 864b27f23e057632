package field

import (
	"github.com/pkg/errors"
)

var (
	// ErrNoMesh is returned when no mesh has elements.
	ErrNoMesh = errors.New("model contains no mesh")
	// ErrNoCoordinateField is returned when no field qualifies as coordinates.
	ErrNoCoordinateField = errors.New("could not determine coordinate field")
	// ErrEmptyData is returned when the datapoint nodeset is empty.
	ErrEmptyData = errors.New("data cloud is empty")
)

// maxCoordinateComponents bounds the components of a coordinate field.
const maxCoordinateComponents = 3

// CoordinateFieldFinder locates the coordinate field a model edits.
type CoordinateFieldFinder func(m *Module) (Field, error)

// HighestDimensionMesh returns the first non-empty mesh trying dimensions
// 3, 2 and 1.
func HighestDimensionMesh(m *Module) (*Mesh, error) {
	for dim := 3; dim > 0; dim-- {
		if mesh := m.FindMeshByDimension(dim); mesh.Size() > 0 {
			return mesh, nil
		}
	}
	return nil, ErrNoMesh
}

// FindMeshCoordinateField returns the first field, in module iteration
// order, that is a coordinate field with at most 3 components and is defined
// on the first element of the highest dimension mesh. First match wins even
// if a later field would fit better.
func FindMeshCoordinateField(m *Module) (Field, error) {
	mesh, err := HighestDimensionMesh(m)
	if err != nil {
		return nil, err
	}
	e := mesh.elements[0]
	return firstCoordinateField(m, func(f Field) bool {
		return f.IsDefinedAtElement(e)
	})
}

// FindDataCoordinateField is FindMeshCoordinateField for the first
// datapoint.
func FindDataCoordinateField(m *Module) (Field, error) {
	it := m.FindNodesetByDomainType(DomainDataPoints).NodeIterator()
	if !it.IsValid() {
		return nil, ErrEmptyData
	}
	n := it.Node()
	return firstCoordinateField(m, func(f Field) bool {
		return f.IsDefinedAtNode(n)
	})
}

func firstCoordinateField(m *Module, definedAt func(Field) bool) (Field, error) {
	for _, f := range m.fields {
		if f.IsTypeCoordinate() && f.NumberOfComponents() <= maxCoordinateComponents && definedAt(f) {
			return f, nil
		}
	}
	return nil, ErrNoCoordinateField
}
