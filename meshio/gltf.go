package meshio

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/seqsense/scaffoldmapper/field"
)

// Primitive is one coloured glTF mesh.
type Primitive struct {
	Name      string
	Mode      gltf.PrimitiveMode
	Positions [][3]float32
	// Indices may be nil for point primitives.
	Indices []uint32
	Color   [4]float32
}

// WriteGLTF writes prims as a binary glTF scene with one node per
// primitive. Empty primitives are skipped.
func WriteGLTF(w io.Writer, prims []Primitive) error {
	doc := gltf.NewDocument()
	for _, p := range prims {
		if len(p.Positions) == 0 {
			continue
		}
		color := new([4]float32)
		*color = p.Color
		material := &gltf.Material{
			Name:        p.Name,
			DoubleSided: true,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: color,
			},
		}
		if p.Color[3] < 1 {
			material.AlphaMode = gltf.AlphaBlend
		}
		doc.Materials = append(doc.Materials, material)

		primitive := &gltf.Primitive{
			Attributes: map[string]uint32{
				"POSITION": modeler.WritePosition(doc, p.Positions),
			},
			Mode:     p.Mode,
			Material: gltf.Index(uint32(len(doc.Materials) - 1)),
		}
		if len(p.Indices) > 0 {
			indices := modeler.WriteIndices(doc, p.Indices)
			primitive.Indices = &indices
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name:       p.Name,
			Primitives: []*gltf.Primitive{primitive},
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: p.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return errors.Wrap(enc.Encode(doc), "encoding gltf")
}

// ElementEdges returns the positions of the nodes used by elements and line
// indices for the element edges. Elements with 2^dimension nodes are treated
// as Lagrange linear, xi1 varying fastest; other elements are outlined node
// to node.
func ElementEdges(coords field.Field, elements []*field.Element) ([][3]float32, []uint32, error) {
	var positions [][3]float32
	index := make(map[*field.Node]uint32)
	vertex := func(n *field.Node) (uint32, error) {
		if i, ok := index[n]; ok {
			return i, nil
		}
		v, err := coords.EvaluateAtNode(n)
		if err != nil {
			return 0, errors.Wrapf(err, "node %d", n.ID())
		}
		i := uint32(len(positions))
		positions = append(positions, toFloat32(v))
		index[n] = i
		return i, nil
	}

	type edge struct{ a, b uint32 }
	seen := make(map[edge]bool)
	var indices []uint32
	for _, e := range elements {
		nodes := e.Nodes()
		for _, pair := range edgePairs(len(nodes), e.Mesh().Dimension()) {
			a, err := vertex(nodes[pair[0]])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "element %d", e.ID())
			}
			b, err := vertex(nodes[pair[1]])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "element %d", e.ID())
			}
			if a > b {
				a, b = b, a
			}
			if a == b || seen[edge{a, b}] {
				continue
			}
			seen[edge{a, b}] = true
			indices = append(indices, a, b)
		}
	}
	return positions, indices, nil
}

func edgePairs(n, dim int) [][2]int {
	var out [][2]int
	if n == 1<<dim {
		for i := 0; i < n; i++ {
			for b := 0; b < dim; b++ {
				if i&(1<<b) == 0 {
					out = append(out, [2]int{i, i | 1<<b})
				}
			}
		}
		return out
	}
	for i := 0; i+1 < n; i++ {
		out = append(out, [2]int{i, i + 1})
	}
	if n > 2 {
		out = append(out, [2]int{n - 1, 0})
	}
	return out
}

// NodesetPositions evaluates coords at every node of s it is defined at.
func NodesetPositions(coords field.Field, s *field.Nodeset) ([][3]float32, error) {
	var out [][3]float32
	for it := s.NodeIterator(); it.IsValid(); it.Incr() {
		n := it.Node()
		if !coords.IsDefinedAtNode(n) {
			continue
		}
		v, err := coords.EvaluateAtNode(n)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", n.ID())
		}
		out = append(out, toFloat32(v))
	}
	return out, nil
}

func toFloat32(v []float64) [3]float32 {
	var p [3]float32
	for i := 0; i < len(v) && i < 3; i++ {
		p[i] = float32(v[i])
	}
	return p
}
