// Package config loads the mapper settings.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/scaffoldmapper/data"
	"github.com/seqsense/scaffoldmapper/logx"
	"github.com/seqsense/scaffoldmapper/scene"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	PointSizeScale         float64 `yaml:"point_size_scale"`
	MaterialPalette        string  `yaml:"material_palette"`
	TessellationRefinement int     `yaml:"tessellation_refinement"`
	DataVoxelSize          float64 `yaml:"data_voxel_size"`
	TranslationRate        float64 `yaml:"translation_rate"`
	MaxHistory             int     `yaml:"max_history"`
	LogLevel               string  `yaml:"log_level"`
	Server                 Server  `yaml:"server"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		PointSizeScale:         data.DefaultPointSizeScale,
		MaterialPalette:        scene.PaletteHeart.String(),
		TessellationRefinement: scene.DefaultRefinement,
		TranslationRate:        1,
		MaxHistory:             4,
		LogLevel:               "info",
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Parse reads YAML on top of Default and validates the result. Unknown keys
// are rejected.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load parses the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	c, err := Parse(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.PointSizeScale <= 0:
		return errors.Wrapf(ErrInvalid, "point_size_scale must be positive, got %g", c.PointSizeScale)
	case c.TessellationRefinement <= 0:
		return errors.Wrapf(ErrInvalid, "tessellation_refinement must be positive, got %d", c.TessellationRefinement)
	case c.DataVoxelSize < 0:
		return errors.Wrapf(ErrInvalid, "data_voxel_size must not be negative, got %g", c.DataVoxelSize)
	case c.TranslationRate <= 0:
		return errors.Wrapf(ErrInvalid, "translation_rate must be positive, got %g", c.TranslationRate)
	case c.MaxHistory < 0:
		return errors.Wrapf(ErrInvalid, "max_history must not be negative, got %d", c.MaxHistory)
	}
	if _, err := scene.ParsePalette(c.MaterialPalette); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Palette returns the parsed material palette.
func (c *Config) Palette() scene.Palette {
	p, _ := scene.ParsePalette(c.MaterialPalette)
	return p
}
