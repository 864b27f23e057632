// Package fieldtest builds small field modules for tests.
package fieldtest

import (
	"github.com/seqsense/scaffoldmapper/field"
)

// CubeCorners are the node positions of the unit cube, node i+1 at index i,
// in xi1-fastest order.
var CubeCorners = [8][3]float64{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// NewCube returns a module with one trilinear hexahedron over 8 nodes and a
// 3 component rectangular Cartesian coordinate field named "coordinates".
// versions gives the parameter versions stored per label at every node; nil
// means a single VALUE version. VALUE version 1 holds the cube corner, the
// other slots are filled by fill, or left zero if fill is nil.
func NewCube(versions map[field.ValueLabel]int, fill func(node int, label field.ValueLabel, version int) []float64) (*field.Module, *field.FiniteElement) {
	if versions == nil {
		versions = map[field.ValueLabel]int{field.ValueLabelValue: 1}
	}
	fm := field.NewModule()
	coords, err := fm.CreateFieldFiniteElement("coordinates", 3)
	must(err)
	coords.SetTypeCoordinate(true)

	nodeset := fm.FindNodesetByDomainType(field.DomainNodes)
	nodes := make([]*field.Node, 0, len(CubeCorners))
	for i, c := range CubeCorners {
		n, err := nodeset.CreateNode(i + 1)
		must(err)
		must(coords.DefineAtNode(n, versions))
		for _, l := range field.ValueLabels {
			for v := 1; v <= versions[l]; v++ {
				var values []float64
				switch {
				case l == field.ValueLabelValue && v == 1:
					values = c[:]
				case fill != nil:
					values = fill(i+1, l, v)
				}
				if values != nil {
					must(coords.SetNodeParameters(n, l, v, values))
				}
			}
		}
		nodes = append(nodes, n)
	}
	_, err = fm.FindMeshByDimension(3).CreateElement(1, nodes)
	must(err)
	return fm, coords
}

// NewDataCloud returns a module whose datapoints carry a 3 component
// coordinate field named "data_coordinates" with the given positions.
func NewDataCloud(points [][3]float64) (*field.Module, *field.FiniteElement) {
	fm := field.NewModule()
	coords, err := fm.CreateFieldFiniteElement("data_coordinates", 3)
	must(err)
	coords.SetTypeCoordinate(true)
	dp := fm.FindNodesetByDomainType(field.DomainDataPoints)
	for i, p := range points {
		n, err := dp.CreateNode(i + 1)
		must(err)
		must(coords.DefineAtNode(n, map[field.ValueLabel]int{field.ValueLabelValue: 1}))
		must(coords.SetNodeParameters(n, field.ValueLabelValue, 1, p[:]))
	}
	return fm, coords
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
