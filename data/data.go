// Package data holds measured data points to which a scaffold is aligned.
package data

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/logx"
)

// DefaultPointSizeScale is the fraction of the data extent used as the
// rendered point size.
const DefaultPointSizeScale = 0.25

// Model is a read-only view of the datapoints of a module.
type Model struct {
	module         *field.Module
	coords         field.Field
	pointSizeScale float64
}

// New discovers the data coordinate field of fm. A non-positive
// pointSizeScale selects DefaultPointSizeScale.
func New(fm *field.Module, pointSizeScale float64) (*Model, error) {
	coords, err := field.FindDataCoordinateField(fm)
	if err != nil {
		return nil, err
	}
	if pointSizeScale <= 0 {
		pointSizeScale = DefaultPointSizeScale
	}
	logx.Logger().Info("data coordinate field", "field", coords.Name(), "points", datapoints(fm).Size())
	return &Model{
		module:         fm,
		coords:         coords,
		pointSizeScale: pointSizeScale,
	}, nil
}

func datapoints(fm *field.Module) *field.Nodeset {
	return fm.FindNodesetByDomainType(field.DomainDataPoints)
}

func (m *Model) Module() *field.Module {
	return m.module
}

func (m *Model) CoordinateField() field.Field {
	return m.coords
}

func (m *Model) Size() int {
	return datapoints(m.module).Size()
}

// Range returns the per component minimum and maximum over all datapoints.
func (m *Model) Range() ([]float64, []float64, error) {
	return field.NodesetMinMax(m.coords, datapoints(m.module))
}

// AutoPointSize returns the point size scale times the length of the
// diagonal of the data bounding box.
func (m *Model) AutoPointSize() (float64, error) {
	min, max, err := m.Range()
	if err != nil {
		return 0, errors.Wrap(err, "data range")
	}
	var lo, hi mgl64.Vec3
	copy(lo[:], min)
	copy(hi[:], max)
	return m.pointSizeScale * hi.Sub(lo).Len(), nil
}

// Locations evaluates the data coordinate field at every datapoint, in
// identifier order. Datapoints the field is not defined at are skipped.
func (m *Model) Locations() ([][]float64, error) {
	m.module.BeginChange()
	defer m.module.EndChange()

	var out [][]float64
	for it := datapoints(m.module).NodeIterator(); it.IsValid(); it.Incr() {
		n := it.Node()
		if !m.coords.IsDefinedAtNode(n) {
			continue
		}
		v, err := m.coords.EvaluateAtNode(n)
		if err != nil {
			return nil, errors.Wrapf(err, "datapoint %d", n.ID())
		}
		out = append(out, v)
	}
	return out, nil
}
