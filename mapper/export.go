package mapper

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/meshio"
	"github.com/seqsense/scaffoldmapper/scene"
)

// ExportGLTF writes the scene as binary glTF. Scaffold graphics are exported
// as element edges, data as points.
func (m *Mapper) ExportGLTF(w io.Writer) error {
	if m.scaffold == nil && m.data == nil {
		return errors.Wrap(ErrNotLoaded, "scaffold and data")
	}
	s, err := m.Scene()
	if err != nil {
		return err
	}

	var prims []meshio.Primitive
	for _, g := range s.Graphics {
		material, _ := s.Material(g.Material)
		p := meshio.Primitive{
			Name:  g.Name,
			Color: material.BaseColor(),
		}
		switch g.Kind {
		case scene.KindPoints:
			p.Mode = gltf.PrimitivePoints
			p.Positions, err = meshio.NodesetPositions(
				m.data.CoordinateField(),
				m.data.Module().FindNodesetByDomainType(field.DomainDataPoints),
			)
		default:
			p.Mode = gltf.PrimitiveLines
			p.Positions, p.Indices, err = m.scaffoldEdges(g.Subgroup)
		}
		if err != nil {
			return errors.Wrapf(err, "exporting %s", g.Name)
		}
		prims = append(prims, p)
	}
	return meshio.WriteGLTF(w, prims)
}

func (m *Mapper) scaffoldEdges(subgroup string) ([][3]float32, []uint32, error) {
	fm := m.scaffold.Module()
	var elements []*field.Element
	if subgroup != "" {
		g, ok := fm.FindFieldByName(subgroup).(*field.Group)
		if !ok {
			return nil, nil, errors.Errorf("group %q not found", subgroup)
		}
		elements = g.Elements()
	} else {
		mesh, err := field.HighestDimensionMesh(fm)
		if err != nil {
			return nil, nil, err
		}
		elements = mesh.Elements()
	}
	return meshio.ElementEdges(m.scaffold.CoordinateField(), elements)
}
