package field_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/field/fieldtest"
)

func TestFindMeshCoordinateField(t *testing.T) {
	t.Run("NoMesh", func(t *testing.T) {
		fm := field.NewModule()
		if _, err := field.FindMeshCoordinateField(fm); !errors.Is(err, field.ErrNoMesh) {
			t.Errorf("expected ErrNoMesh, got %v", err)
		}
	})
	t.Run("Cube", func(t *testing.T) {
		fm, coords := fieldtest.NewCube(nil, nil)
		f, err := field.FindMeshCoordinateField(fm)
		if err != nil {
			t.Fatal(err)
		}
		if f != coords {
			t.Errorf("expected %q, got %q", coords.Name(), f.Name())
		}
	})
	t.Run("HighestDimension", func(t *testing.T) {
		fm, _ := fieldtest.NewCube(nil, nil)
		line, err := fm.CreateFieldFiniteElement("line_coordinates", 3)
		if err != nil {
			t.Fatal(err)
		}
		line.SetTypeCoordinate(true)
		n, _ := fm.FindNodesetByDomainType(field.DomainNodes).CreateNode(100)
		_ = line.DefineAtNode(n, map[field.ValueLabel]int{field.ValueLabelValue: 1})
		_, _ = fm.FindMeshByDimension(1).CreateElement(1, []*field.Node{n})

		mesh, err := field.HighestDimensionMesh(fm)
		if err != nil {
			t.Fatal(err)
		}
		if mesh.Dimension() != 3 {
			t.Errorf("expected 3D mesh, got %dD", mesh.Dimension())
		}
	})
	t.Run("NotCoordinate", func(t *testing.T) {
		fm, coords := fieldtest.NewCube(nil, nil)
		coords.SetTypeCoordinate(false)
		if _, err := field.FindMeshCoordinateField(fm); !errors.Is(err, field.ErrNoCoordinateField) {
			t.Errorf("expected ErrNoCoordinateField, got %v", err)
		}
	})
	t.Run("TooManyComponents", func(t *testing.T) {
		fm := field.NewModule()
		f4, _ := fm.CreateFieldFiniteElement("coordinates4", 4)
		f4.SetTypeCoordinate(true)
		n, _ := fm.FindNodesetByDomainType(field.DomainNodes).CreateNode(1)
		_ = f4.DefineAtNode(n, map[field.ValueLabel]int{field.ValueLabelValue: 1})
		_, _ = fm.FindMeshByDimension(1).CreateElement(1, []*field.Node{n})
		if _, err := field.FindMeshCoordinateField(fm); !errors.Is(err, field.ErrNoCoordinateField) {
			t.Errorf("expected ErrNoCoordinateField, got %v", err)
		}
	})
	t.Run("FirstMatchWins", func(t *testing.T) {
		// A constant coordinate field created after the cube coordinates is
		// also defined on the element, but is found later.
		fm, coords := fieldtest.NewCube(nil, nil)
		c, _ := fm.CreateFieldConstant("origin", []float64{0, 0, 0})
		c.SetTypeCoordinate(true)
		f, err := field.FindMeshCoordinateField(fm)
		if err != nil {
			t.Fatal(err)
		}
		if f != coords {
			t.Errorf("expected first field %q, got %q", coords.Name(), f.Name())
		}
	})
	t.Run("FirstMatchWinsOverBetterField", func(t *testing.T) {
		fm := field.NewModule()
		c, _ := fm.CreateFieldConstant("origin", []float64{0, 0, 0})
		c.SetTypeCoordinate(true)
		fe, _ := fm.CreateFieldFiniteElement("coordinates", 3)
		fe.SetTypeCoordinate(true)
		n, _ := fm.FindNodesetByDomainType(field.DomainNodes).CreateNode(1)
		_ = fe.DefineAtNode(n, map[field.ValueLabel]int{field.ValueLabelValue: 1})
		_, _ = fm.FindMeshByDimension(1).CreateElement(1, []*field.Node{n})

		f, err := field.FindMeshCoordinateField(fm)
		if err != nil {
			t.Fatal(err)
		}
		if f != c {
			t.Errorf("expected first field %q, got %q", c.Name(), f.Name())
		}
	})
}

func TestFindDataCoordinateField(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		fm, _ := fieldtest.NewDataCloud(nil)
		if _, err := field.FindDataCoordinateField(fm); !errors.Is(err, field.ErrEmptyData) {
			t.Errorf("expected ErrEmptyData, got %v", err)
		}
	})
	t.Run("Found", func(t *testing.T) {
		fm, coords := fieldtest.NewDataCloud([][3]float64{{1, 2, 3}})
		f, err := field.FindDataCoordinateField(fm)
		if err != nil {
			t.Fatal(err)
		}
		if f != coords {
			t.Errorf("expected %q, got %q", coords.Name(), f.Name())
		}
	})
	t.Run("NotDefinedAtFirstPoint", func(t *testing.T) {
		fm, coords := fieldtest.NewDataCloud(nil)
		dp := fm.FindNodesetByDomainType(field.DomainDataPoints)
		_, _ = dp.CreateNode(1)
		n2, _ := dp.CreateNode(2)
		_ = coords.DefineAtNode(n2, map[field.ValueLabel]int{field.ValueLabelValue: 1})
		if _, err := field.FindDataCoordinateField(fm); !errors.Is(err, field.ErrNoCoordinateField) {
			t.Errorf("expected ErrNoCoordinateField, got %v", err)
		}
	})
}
