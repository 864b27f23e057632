// Package mapper is the session model of the scaffold data mapper. It owns
// the loaded scaffold and data and forwards user operations to them.
package mapper

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/config"
	"github.com/seqsense/scaffoldmapper/data"
	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/logx"
	"github.com/seqsense/scaffoldmapper/meshio"
	"github.com/seqsense/scaffoldmapper/scaffold"
	"github.com/seqsense/scaffoldmapper/scene"
)

// ErrNotLoaded is returned by operations which need a scaffold or data set
// that has not been loaded.
var ErrNotLoaded = errors.New("not loaded")

// ErrIncomplete is returned by Undo if the scaffold could not be fully
// transformed back. The settings are reverted regardless.
var ErrIncomplete = errors.New("undo was not fully applied")

// Options configures the models created by a Mapper.
type Options struct {
	PointSizeScale float64
	Palette        scene.Palette
	Refinement     int
	VoxelSize      float64
	MaxHistory     int
}

// OptionsFromConfig extracts the model options of c.
func OptionsFromConfig(c *config.Config) Options {
	return Options{
		PointSizeScale: c.PointSizeScale,
		Palette:        c.Palette(),
		Refinement:     c.TessellationRefinement,
		VoxelSize:      c.DataVoxelSize,
		MaxHistory:     c.MaxHistory,
	}
}

// Settings is a snapshot of the cumulative scaffold transform.
type Settings struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// Mapper is not safe for concurrent use.
type Mapper struct {
	opts     Options
	scaffold *scaffold.Model
	data     *data.Model
	listener scaffold.SettingsListener
	history  *history
}

// New returns a Mapper with nothing loaded.
func New(opts Options) *Mapper {
	return &Mapper{
		opts:    opts,
		history: newHistory(opts.MaxHistory),
	}
}

// LoadScaffold replaces the scaffold with the YAML document at path.
func (m *Mapper) LoadScaffold(path string) error {
	if !isYAML(path) {
		return errors.Wrapf(meshio.ErrFormat, "scaffold %s: unsupported file type", path)
	}
	fm, err := meshio.ReadScaffold(path)
	if err != nil {
		return err
	}
	sm, err := scaffold.New(fm)
	if err != nil {
		return errors.Wrapf(err, "scaffold %s", path)
	}
	sm.SetSettingsListener(m.listener)
	m.scaffold = sm
	m.history.clear()

	logx.Logger().Info("scaffold loaded",
		"file", path,
		"nodes", fm.FindNodesetByDomainType(field.DomainNodes).Size(),
		"field", sm.CoordinateField().Name(),
	)
	return nil
}

// LoadData replaces the data with the PCD or YAML document at path.
func (m *Mapper) LoadData(path string) error {
	var fm *field.Module
	var err error
	switch {
	case strings.EqualFold(filepath.Ext(path), ".pcd"):
		fm, err = meshio.ReadPointCloud(path, meshio.PointCloudOptions{VoxelSize: m.opts.VoxelSize})
	case isYAML(path):
		fm, err = meshio.ReadScaffold(path)
	default:
		return errors.Wrapf(meshio.ErrFormat, "data %s: unsupported file type", path)
	}
	if err != nil {
		return err
	}
	dm, err := data.New(fm, m.opts.PointSizeScale)
	if err != nil {
		return errors.Wrapf(err, "data %s", path)
	}
	m.data = dm

	logx.Logger().Info("data loaded", "file", path, "points", dm.Size())
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// SetSettingsListener registers l on the current and any later scaffold.
func (m *Mapper) SetSettingsListener(l scaffold.SettingsListener) {
	m.listener = l
	if m.scaffold != nil {
		m.scaffold.SetSettingsListener(l)
	}
}

// Scaffold returns nil before LoadScaffold succeeded.
func (m *Mapper) Scaffold() *scaffold.Model {
	return m.scaffold
}

// Data returns nil before LoadData succeeded.
func (m *Mapper) Data() *data.Model {
	return m.data
}

// Rotate records the current state for Undo and forwards to the scaffold.
func (m *Mapper) Rotate(axis scaffold.RotationAxis, degrees float64) (bool, error) {
	if m.scaffold == nil {
		return false, errors.Wrap(ErrNotLoaded, "scaffold")
	}
	m.history.push(m.scaffold.State())
	return m.scaffold.Rotate(axis, degrees), nil
}

// Translate records the current state for Undo and forwards to the scaffold.
func (m *Mapper) Translate(axis scaffold.TranslationAxis, value, rate float64) (bool, error) {
	if m.scaffold == nil {
		return false, errors.Wrap(ErrNotLoaded, "scaffold")
	}
	m.history.push(m.scaffold.State())
	return m.scaffold.Translate(axis, value, rate), nil
}

// Reset clears the settings and the undo history. Geometry is unchanged.
func (m *Mapper) Reset() error {
	if m.scaffold == nil {
		return errors.Wrap(ErrNotLoaded, "scaffold")
	}
	m.scaffold.Reset()
	m.history.clear()
	return nil
}

// Undo reverts the last rotate or translate by transforming the scaffold back
// to the previous settings. It returns false with a nil error if there is
// nothing to undo.
func (m *Mapper) Undo() (bool, error) {
	if m.scaffold == nil {
		return false, errors.Wrap(ErrNotLoaded, "scaffold")
	}
	prev, ok := m.history.undo()
	if !ok {
		return false, nil
	}
	cur := m.scaffold.State()
	ok = true
	for _, a := range []scaffold.RotationAxis{scaffold.Yaw, scaffold.Pitch, scaffold.Roll} {
		if prev.Rotation[a] != cur.Rotation[a] {
			ok = m.scaffold.Rotate(a, prev.Rotation[a]) && ok
		}
	}
	for _, a := range []scaffold.TranslationAxis{scaffold.X, scaffold.Y, scaffold.Z} {
		if prev.Translation[a] != cur.Translation[a] {
			ok = m.scaffold.Translate(a, prev.Translation[a], 1) && ok
		}
	}
	if !ok {
		return true, ErrIncomplete
	}
	return true, nil
}

// Settings returns zero values before a scaffold is loaded.
func (m *Mapper) Settings() Settings {
	if m.scaffold == nil {
		return Settings{}
	}
	return Settings{
		Yaw:   m.scaffold.Yaw(),
		Pitch: m.scaffold.Pitch(),
		Roll:  m.scaffold.Roll(),
		X:     m.scaffold.X(),
		Y:     m.scaffold.Y(),
		Z:     m.scaffold.Z(),
	}
}

// PointSize returns the automatic data point size.
func (m *Mapper) PointSize() (float64, error) {
	if m.data == nil {
		return 0, errors.Wrap(ErrNotLoaded, "data")
	}
	return m.data.AutoPointSize()
}

// Scene describes the loaded scaffold and data.
func (m *Mapper) Scene() (*scene.Scene, error) {
	var src scene.Source
	if m.scaffold != nil {
		src = m.scaffold
	}
	var ds scene.DataSource
	if m.data != nil {
		ds = m.data
	}
	return scene.Build(src, ds, scene.Options{
		Palette:    m.opts.Palette,
		Refinement: m.opts.Refinement,
	})
}

// Save writes the transformed scaffold as a YAML document.
func (m *Mapper) Save(path string) error {
	if m.scaffold == nil {
		return errors.Wrap(ErrNotLoaded, "scaffold")
	}
	if err := meshio.WriteScaffold(path, m.scaffold.Module()); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	logx.Logger().Info("scaffold saved", "file", path)
	return nil
}
