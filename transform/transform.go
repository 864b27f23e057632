// Package transform applies rigid transformations to the nodal parameters of
// a coordinate field.
//
// Each call updates every node, value label and version inside a single
// change batch on the owning module. The update is not atomic: read or write
// failures are logged, counted and skipped, and already written parameters
// stay written.
package transform

import (
	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/logx"
	"github.com/seqsense/scaffoldmapper/mat"
)

const (
	opRotate    = "transformCoordinates"
	opTranslate = "offsetCoordinates"
)

// Stats counts parameter slots visited by one engine call.
type Stats struct {
	Nodes   int
	Updated int
	Failed  int
}

// OK reports whether every read and write succeeded.
func (s Stats) OK() bool {
	return s.Failed == 0
}

// ApplyRotation replaces every stored parameter vector x of f, values and
// derivatives alike, with m·x. m must be a square matrix of the size of the
// field components.
func ApplyRotation(f field.Field, m mat.Matrix) bool {
	_, ok := Rotate(f, m)
	return ok
}

// ApplyTranslation adds offset to the VALUE parameters of every node of f.
// Derivative parameters are written back unchanged.
func ApplyTranslation(f field.Field, offset mat.Vector) bool {
	_, ok := Translate(f, offset)
	return ok
}

// Rotate is ApplyRotation also returning the per slot statistics.
func Rotate(f field.Field, m mat.Matrix) (Stats, bool) {
	store, ok := checkField(opRotate, f, len(m))
	if !ok {
		return Stats{}, false
	}
	if !m.IsSquare(f.NumberOfComponents()) {
		logx.Logger().Warn("rotation matrix is not square",
			"op", opRotate, "field", f.Name(), "rows", len(m))
		return Stats{}, false
	}
	s := update(opRotate, f, store, func(_ field.ValueLabel, v mat.Vector) mat.Vector {
		return m.MulVec(v)
	})
	return s, s.OK()
}

// Translate is ApplyTranslation also returning the per slot statistics.
func Translate(f field.Field, offset mat.Vector) (Stats, bool) {
	store, ok := checkField(opTranslate, f, len(offset))
	if !ok {
		return Stats{}, false
	}
	s := update(opTranslate, f, store, func(l field.ValueLabel, v mat.Vector) mat.Vector {
		if l != field.ValueLabelValue {
			return v
		}
		return v.Add(offset)
	})
	return s, s.OK()
}

func checkField(op string, f field.Field, size int) (field.ParameterStore, bool) {
	lg := logx.Logger().With("op", op, "field", f.Name())
	n := f.NumberOfComponents()
	if n != 2 && n != 3 {
		lg.Warn("field must have 2 or 3 components", "components", n)
		return nil, false
	}
	if size != n {
		lg.Warn("operand size does not match field components", "components", n, "size", size)
		return nil, false
	}
	if c := f.CoordinateSystemType(); c != field.CoordinateSystemRectangularCartesian {
		lg.Warn("field is not rectangular Cartesian", "coordinate_system", c.String())
		return nil, false
	}
	store, ok := f.CastFiniteElement()
	if !ok {
		lg.Warn("field is not finite element interpolated")
		return nil, false
	}
	return store, true
}

// update calls fn for every stored vector and writes back its result.
func update(op string, f field.Field, store field.ParameterStore, fn func(field.ValueLabel, mat.Vector) mat.Vector) Stats {
	components := f.NumberOfComponents()
	var s Stats

	store.BeginChange()
	defer store.EndChange()

	for it := store.NodeIterator(); it.IsValid(); it.Incr() {
		n := it.Node()
		s.Nodes++
		for _, l := range field.ValueLabels {
			versions := store.NumberOfVersions(n, l)
			for v := 1; v <= versions; v++ {
				old, err := store.NodeParameters(n, l, v, components)
				if err != nil {
					s.Failed++
					logx.Logger().Debug("failed to get node parameters",
						"op", op, "node", n.ID(), "label", l.String(), "version", v, "error", err)
					continue
				}
				if err := store.SetNodeParameters(n, l, v, fn(l, old)); err != nil {
					s.Failed++
					logx.Logger().Debug("failed to set node parameters",
						"op", op, "node", n.ID(), "label", l.String(), "version", v, "error", err)
					continue
				}
				s.Updated++
			}
		}
	}
	if s.Failed > 0 {
		logx.Logger().Warn("transform partially applied",
			"op", op, "field", f.Name(), "updated", s.Updated, "failed", s.Failed)
	}
	return s
}
