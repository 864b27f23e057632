// Package scene describes how an aligned scaffold and its data are drawn.
package scene

import (
	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/field"
)

// DefaultRefinement is the default tessellation refinement factor.
const DefaultRefinement = 12

// GraphicsKind is the primitive a Graphics is drawn with.
type GraphicsKind string

const (
	KindSurfaces GraphicsKind = "surfaces"
	KindLines    GraphicsKind = "lines"
	KindPoints   GraphicsKind = "points"
)

// Graphics describes one drawable of the scene.
type Graphics struct {
	Name            string       `json:"name"`
	Kind            GraphicsKind `json:"kind"`
	Domain          string       `json:"domain"`
	CoordinateField string       `json:"coordinate_field"`
	// Subgroup restricts the graphics to the elements of a group field.
	Subgroup  string  `json:"subgroup,omitempty"`
	Material  string  `json:"material"`
	Glyph     string  `json:"glyph,omitempty"`
	PointSize float64 `json:"point_size,omitempty"`
}

// Tessellation controls how finely curved elements are subdivided.
type Tessellation struct {
	RefinementFactors []int `json:"refinement_factors"`
}

// Scene is a complete presentation description.
type Scene struct {
	Materials    []Material   `json:"materials"`
	Graphics     []Graphics   `json:"graphics"`
	Tessellation Tessellation `json:"tessellation"`
}

// Options configures Build.
type Options struct {
	Palette    Palette
	Refinement int
}

// Source is a coordinate field together with its module.
type Source interface {
	Module() *field.Module
	CoordinateField() field.Field
}

// DataSource is a Source which can size its points.
type DataSource interface {
	Source
	AutoPointSize() (float64, error)
}

// Build describes scaffold and, if not nil, data.
func Build(scaffold Source, data DataSource, opts Options) (*Scene, error) {
	if opts.Refinement <= 0 {
		opts.Refinement = DefaultRefinement
	}
	s := &Scene{
		Materials:    Materials(opts.Palette),
		Tessellation: Tessellation{RefinementFactors: []int{opts.Refinement}},
	}
	if scaffold != nil {
		s.Graphics = append(s.Graphics, scaffoldGraphics(scaffold, opts.Palette)...)
	}
	if data != nil {
		size, err := data.AutoPointSize()
		if err != nil {
			return nil, errors.Wrap(err, "data point size")
		}
		s.Graphics = append(s.Graphics, Graphics{
			Name:            "display_points",
			Kind:            KindPoints,
			Domain:          field.DomainDataPoints.String(),
			CoordinateField: data.CoordinateField().Name(),
			Material:        MaterialCellPurple,
			Glyph:           "sphere",
			PointSize:       size,
		})
	}
	return s, nil
}

func scaffoldGraphics(src Source, p Palette) []Graphics {
	coords := src.CoordinateField().Name()
	if p == PalettePlain {
		return []Graphics{
			{
				Name:            "display_surfaces",
				Kind:            KindSurfaces,
				Domain:          field.DomainNodes.String(),
				CoordinateField: coords,
				Material:        MaterialTransBlue,
			},
			{
				Name:            "display_lines",
				Kind:            KindLines,
				Domain:          field.DomainNodes.String(),
				CoordinateField: coords,
				Material:        MaterialWhite,
			},
		}
	}

	var out []Graphics
	for _, name := range HeartGroups {
		g, ok := src.Module().FindFieldByName(name).(*field.Group)
		if !ok || g.Size() == 0 {
			continue
		}
		out = append(out, Graphics{
			Name:            "display_" + name,
			Kind:            KindSurfaces,
			Domain:          field.DomainNodes.String(),
			CoordinateField: coords,
			Subgroup:        name,
			Material:        name,
		})
	}
	if len(out) == 0 {
		out = append(out, Graphics{
			Name:            "display_lines",
			Kind:            KindLines,
			Domain:          field.DomainNodes.String(),
			CoordinateField: coords,
			Material:        MaterialWhite,
		})
	}
	return out
}

// Material returns the material named name.
func (s *Scene) Material(name string) (Material, bool) {
	for _, m := range s.Materials {
		if m.Name == name {
			return m, true
		}
	}
	return Material{}, false
}
