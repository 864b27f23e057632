package scene

import (
	"strings"

	"github.com/pkg/errors"
)

// Material is a Phong material. Colours are RGB in [0, 1].
type Material struct {
	Name      string     `json:"name"`
	Ambient   [3]float64 `json:"ambient"`
	Diffuse   [3]float64 `json:"diffuse"`
	Emission  [3]float64 `json:"emission"`
	Specular  [3]float64 `json:"specular"`
	Alpha     float64    `json:"alpha"`
	Shininess float64    `json:"shininess"`
}

// BaseColor returns the diffuse colour with alpha.
func (m Material) BaseColor() [4]float32 {
	return [4]float32{float32(m.Diffuse[0]), float32(m.Diffuse[1]), float32(m.Diffuse[2]), float32(m.Alpha)}
}

// Palette selects the set of materials used to draw a scaffold.
type Palette int

const (
	// PaletteHeart colours the anatomical groups of a heart scaffold.
	PaletteHeart Palette = iota
	// PalettePlain draws every scaffold as a translucent blue surface.
	PalettePlain
)

func (p Palette) String() string {
	switch p {
	case PaletteHeart:
		return "heart"
	case PalettePlain:
		return "plain"
	}
	return "invalid"
}

func ParsePalette(s string) (Palette, error) {
	switch strings.ToLower(s) {
	case "heart", "":
		return PaletteHeart, nil
	case "plain":
		return PalettePlain, nil
	}
	return 0, errors.Errorf("unknown material palette %q", s)
}

// Material names.
const (
	MaterialTransBlue      = "trans_blue"
	MaterialCellPurple     = "cell_purple"
	MaterialWhite          = "white"
	MaterialRightAtrium    = "right atrium"
	MaterialLeftAtrium     = "left atrium"
	MaterialRightVentricle = "right ventricle"
	MaterialLeftVentricle  = "left ventricle"
)

// HeartGroups are the scaffold groups drawn as separate surfaces by
// PaletteHeart. Each is drawn with the material of the same name.
var HeartGroups = []string{
	MaterialRightAtrium,
	MaterialLeftAtrium,
	MaterialRightVentricle,
	MaterialLeftVentricle,
}

var specular = [3]float64{0.1, 0.1, 0.1}

func tissue(name string, rgb [3]float64) Material {
	return Material{
		Name:      name,
		Ambient:   rgb,
		Diffuse:   rgb,
		Specular:  specular,
		Alpha:     0.7,
		Shininess: 0.2,
	}
}

var (
	transBlue = Material{
		Name:      MaterialTransBlue,
		Ambient:   [3]float64{0, 0.2, 0.6},
		Diffuse:   [3]float64{0, 0.7, 1},
		Specular:  specular,
		Alpha:     0.3,
		Shininess: 0.2,
	}
	cellPurple = Material{
		Name:      MaterialCellPurple,
		Ambient:   [3]float64{0.7, 0, 1},
		Diffuse:   [3]float64{0.7, 0, 1},
		Specular:  specular,
		Alpha:     1,
		Shininess: 0.2,
	}
	white = Material{
		Name:     MaterialWhite,
		Ambient:  [3]float64{1, 1, 1},
		Diffuse:  [3]float64{1, 1, 1},
		Specular: [3]float64{0, 0, 0},
		Alpha:    1,
	}
)

// Materials returns the materials of p in a stable order.
func Materials(p Palette) []Material {
	out := []Material{transBlue, cellPurple, white}
	if p == PaletteHeart {
		out = append(out,
			tissue(MaterialRightAtrium, [3]float64{0.82, 0.45, 0.35}),
			tissue(MaterialLeftAtrium, [3]float64{0.79, 0.42, 0.32}),
			tissue(MaterialRightVentricle, [3]float64{0.71, 0.33, 0.22}),
			tissue(MaterialLeftVentricle, [3]float64{0.59, 0.22, 0.05}),
		)
	}
	return out
}
