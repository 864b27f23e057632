package meshio

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/field/fieldtest"
)

func heartCube(t *testing.T) *field.Module {
	t.Helper()
	versions := map[field.ValueLabel]int{
		field.ValueLabelValue: 2,
		field.ValueLabelDDS1:  1,
		field.ValueLabelDDS3:  1,
	}
	fm, _ := fieldtest.NewCube(versions, func(node int, l field.ValueLabel, v int) []float64 {
		return []float64{float64(node), float64(l), 0.125 * float64(v)}
	})
	e := fm.FindMeshByDimension(3).FindElementByIdentifier(1)
	g, err := fm.CreateFieldGroup("left ventricle")
	require.NoError(t, err)
	g.AddElement(e)
	return fm
}

func TestDocumentRoundTrip(t *testing.T) {
	fm := heartCube(t)
	doc, err := NewDocument(fm)
	require.NoError(t, err)

	require.Len(t, doc.Fields, 1)
	assert.Equal(t, FieldDoc{
		Name:             "coordinates",
		Components:       3,
		Coordinate:       true,
		CoordinateSystem: "rectangular_cartesian",
	}, doc.Fields[0])
	assert.Len(t, doc.Nodes, 8)
	assert.Equal(t, []ElementDoc{{ID: 1, Dimension: 3, Nodes: []int{1, 2, 3, 4, 5, 6, 7, 8}}}, doc.Elements)
	assert.Equal(t, []GroupDoc{{Name: "left ventricle", Dimension: 3, Elements: []int{1}}}, doc.Groups)
	assert.Equal(t, [][]float64{{1, 0, 0}, {2, 1, 0.25}}, doc.Nodes[1].Fields["coordinates"]["value"])

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)

	fm2, err := decoded.Module()
	require.NoError(t, err)
	doc2, err := NewDocument(fm2)
	require.NoError(t, err)
	assert.Equal(t, doc, doc2)

	coords, err := field.FindMeshCoordinateField(fm2)
	require.NoError(t, err)
	assert.Equal(t, "coordinates", coords.Name())
	g, ok := fm2.FindFieldByName("left ventricle").(*field.Group)
	require.True(t, ok)
	assert.Equal(t, 1, g.Size())
}

func TestDecodeDataPoints(t *testing.T) {
	const src = `
fields:
  - name: marker
    components: 3
    coordinate: true
datapoints:
  - id: 4
    fields:
      marker:
        VALUE: [[1, 2, 3]]
  - id: 9
    fields:
      marker:
        value: [[4, 5, 6]]
`
	doc, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	fm, err := doc.Module()
	require.NoError(t, err)

	f, err := field.FindDataCoordinateField(fm)
	require.NoError(t, err)
	assert.Equal(t, "marker", f.Name())
	assert.Equal(t, field.CoordinateSystemRectangularCartesian, f.CoordinateSystemType())

	n := fm.FindNodesetByDomainType(field.DomainDataPoints).FindNodeByIdentifier(9)
	require.NotNil(t, n)
	v, err := f.EvaluateAtNode(n)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, v)
}

func TestDecodeErrors(t *testing.T) {
	const header = "fields:\n  - {name: coordinates, components: 3, coordinate: true}\n"
	const node1 = "nodes:\n  - {id: 1, fields: {coordinates: {value: [[0, 0, 0]]}}}\n"

	testCases := map[string]string{
		"Empty":             "",
		"DuplicateField":    header + "  - {name: coordinates, components: 2}\n",
		"CoordinateSystem":  "fields:\n  - {name: c, components: 3, coordinate_system: hyperbolic}\n",
		"UnknownField":      header + "nodes:\n  - {id: 1, fields: {other: {value: [[0, 0, 0]]}}}\n",
		"UnknownLabel":      header + "nodes:\n  - {id: 1, fields: {coordinates: {d_ds4: [[0, 0, 0]]}}}\n",
		"MissingValue":      header + "nodes:\n  - {id: 1, fields: {coordinates: {d_ds1: [[0, 0, 0]]}}}\n",
		"Components":        header + "nodes:\n  - {id: 1, fields: {coordinates: {value: [[0, 0]]}}}\n",
		"DuplicateNode":     header + node1 + "  - {id: 1}\n",
		"NodeID":            header + "nodes:\n  - {id: 0}\n",
		"UnknownNode":       header + node1 + "elements:\n  - {id: 1, dimension: 1, nodes: [1, 2]}\n",
		"ElementDimension":  header + node1 + "elements:\n  - {id: 1, dimension: 4, nodes: [1]}\n",
		"UnknownGroupElem":  header + node1 + "groups:\n  - {name: g, dimension: 3, elements: [7]}\n",
		"GroupDimension":    header + node1 + "groups:\n  - {name: g, dimension: 0, elements: [1]}\n",
		"GroupNameConflict": header + node1 + "groups:\n  - {name: coordinates, dimension: 3}\n",
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(src))
			if err == nil {
				_, err = doc.Module()
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}

	t.Run("Syntax", func(t *testing.T) {
		_, err := Decode(strings.NewReader("fields: [\n"))
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrFormat))
	})
}

func TestScaffoldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scaffold.yaml")

	fm := heartCube(t)
	require.NoError(t, WriteScaffold(path, fm))
	fm2, err := ReadScaffold(path)
	require.NoError(t, err)

	doc, err := NewDocument(fm)
	require.NoError(t, err)
	doc2, err := NewDocument(fm2)
	require.NoError(t, err)
	assert.Equal(t, doc, doc2)

	_, err = ReadScaffold(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "%v", err)
}
