package meshio

import (
	"bytes"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/field/fieldtest"
)

func TestElementEdges(t *testing.T) {
	t.Run("Hexahedron", func(t *testing.T) {
		fm, coords := fieldtest.NewCube(nil, nil)
		positions, indices, err := ElementEdges(coords, fm.FindMeshByDimension(3).Elements())
		require.NoError(t, err)
		assert.Len(t, positions, 8)
		assert.Len(t, indices, 24)
		for i := 0; i < len(indices); i += 2 {
			a, b := positions[indices[i]], positions[indices[i+1]]
			var diff int
			for k := range a {
				if a[k] != b[k] {
					diff++
				}
			}
			assert.Equal(t, 1, diff, "edge %v-%v must be parallel to an axis", a, b)
		}
	})
	t.Run("SharedEdges", func(t *testing.T) {
		fm, coords := fieldtest.NewCube(nil, nil)
		nodes := fm.FindNodesetByDomainType(field.DomainNodes)
		mesh := fm.FindMeshByDimension(2)
		n := func(id int) *field.Node { return nodes.FindNodeByIdentifier(id) }
		_, err := mesh.CreateElement(1, []*field.Node{n(1), n(2), n(3), n(4)})
		require.NoError(t, err)
		_, err = mesh.CreateElement(2, []*field.Node{n(3), n(4), n(7), n(8)})
		require.NoError(t, err)

		positions, indices, err := ElementEdges(coords, mesh.Elements())
		require.NoError(t, err)
		assert.Len(t, positions, 6)
		assert.Len(t, indices, 2*7)
	})
	t.Run("Triangle", func(t *testing.T) {
		fm, coords := fieldtest.NewCube(nil, nil)
		nodes := fm.FindNodesetByDomainType(field.DomainNodes)
		mesh := fm.FindMeshByDimension(2)
		_, err := mesh.CreateElement(1, []*field.Node{
			nodes.FindNodeByIdentifier(1), nodes.FindNodeByIdentifier(2), nodes.FindNodeByIdentifier(3),
		})
		require.NoError(t, err)
		_, indices, err := ElementEdges(coords, mesh.Elements())
		require.NoError(t, err)
		assert.Equal(t, []uint32{0, 1, 1, 2, 0, 2}, indices)
	})
}

func TestWriteGLTF(t *testing.T) {
	fm, coords := fieldtest.NewCube(nil, nil)
	positions, indices, err := ElementEdges(coords, fm.FindMeshByDimension(3).Elements())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGLTF(&buf, []Primitive{
		{Name: "scaffold", Mode: gltf.PrimitiveLines, Positions: positions, Indices: indices, Color: [4]float32{0, 0.7, 1, 0.3}},
		{Name: "empty", Mode: gltf.PrimitivePoints},
		{Name: "data", Mode: gltf.PrimitivePoints, Positions: [][3]float32{{1, 2, 3}}, Color: [4]float32{0.7, 0, 1, 1}},
	}))

	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(&buf).Decode(doc))
	require.Len(t, doc.Meshes, 2)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, []uint32{0, 1}, doc.Scenes[0].Nodes)
	assert.Equal(t, "scaffold", doc.Meshes[0].Name)
	assert.Equal(t, "data", doc.Meshes[1].Name)
	assert.Equal(t, gltf.AlphaBlend, doc.Materials[0].AlphaMode)
	assert.Equal(t, gltf.AlphaOpaque, doc.Materials[1].AlphaMode)

	lines := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.PrimitiveLines, lines.Mode)
	got, err := modeler.ReadPosition(doc, doc.Accessors[lines.Attributes["POSITION"]], nil)
	require.NoError(t, err)
	assert.Equal(t, positions, got)
	gotIndices, err := modeler.ReadIndices(doc, doc.Accessors[*lines.Indices], nil)
	require.NoError(t, err)
	assert.Equal(t, indices, gotIndices)

	points := doc.Meshes[1].Primitives[0]
	assert.Nil(t, points.Indices)
	assert.Equal(t, gltf.PrimitivePoints, points.Mode)
}
