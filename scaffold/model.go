// Package scaffold aligns a scaffold mesh by incremental rigid transforms
// driven from absolute user settings.
package scaffold

import (
	"github.com/seqsense/scaffoldmapper/field"
	"github.com/seqsense/scaffoldmapper/logx"
	"github.com/seqsense/scaffoldmapper/mat"
	"github.com/seqsense/scaffoldmapper/transform"
)

// SettingsListener is notified after every rotate, translate and reset,
// whether or not the geometry update succeeded. Current values are read back
// through the Model accessors.
type SettingsListener interface {
	SettingsChanged()
}

// SettingsListenerFunc adapts a function to SettingsListener.
type SettingsListenerFunc func()

func (f SettingsListenerFunc) SettingsChanged() { f() }

// Model owns the coordinate field of a loaded scaffold and its State.
// Model is not safe for concurrent use.
type Model struct {
	module   *field.Module
	coords   field.Field
	state    State
	listener SettingsListener
}

// New discovers the coordinate field of the scaffold mesh in fm.
func New(fm *field.Module) (*Model, error) {
	return NewWithFinder(fm, field.FindMeshCoordinateField)
}

// NewWithFinder is New using an alternative coordinate field strategy.
func NewWithFinder(fm *field.Module, find field.CoordinateFieldFinder) (*Model, error) {
	coords, err := find(fm)
	if err != nil {
		return nil, err
	}
	logx.Logger().Info("scaffold coordinate field", "field", coords.Name())
	return &Model{module: fm, coords: coords}, nil
}

// SetSettingsListener replaces the listener. nil disables notification.
func (m *Model) SetSettingsListener(l SettingsListener) {
	m.listener = l
}

// Module returns the field module holding the scaffold.
func (m *Model) Module() *field.Module {
	return m.module
}

// CoordinateField returns the field found by the coordinate field discovery.
func (m *Model) CoordinateField() field.Field {
	return m.coords
}

// State returns a copy of the cumulative state.
func (m *Model) State() State {
	return m.state
}

// Rotate sets the absolute angle of axis in degrees and rotates the scaffold
// by the difference from the previous angle. The state is updated even if
// the geometry update fails.
func (m *Model) Rotate(axis RotationAxis, degrees float64) bool {
	delta := m.state.Rotate(axis, degrees)
	ok := transform.ApplyRotation(m.coords, mat.EulerDegreesToRotationMatrix(delta))
	m.notify()
	return ok
}

// Translate sets the absolute offset of axis to value*rate and moves the
// scaffold by the difference from the previous offset.
func (m *Model) Translate(axis TranslationAxis, value, rate float64) bool {
	delta := m.state.Translate(axis, value, rate)
	ok := transform.ApplyTranslation(m.coords, mat.Vector(delta[:]))
	m.notify()
	return ok
}

// Reset zeroes the settings. The geometry is left as it is.
func (m *Model) Reset() {
	m.state.Reset()
	m.notify()
}

func (m *Model) Yaw() float64   { return m.state.Rotation[Yaw] }
func (m *Model) Pitch() float64 { return m.state.Rotation[Pitch] }
func (m *Model) Roll() float64  { return m.state.Rotation[Roll] }
func (m *Model) X() float64     { return m.state.Translation[X] }
func (m *Model) Y() float64     { return m.state.Translation[Y] }
func (m *Model) Z() float64     { return m.state.Translation[Z] }

func (m *Model) notify() {
	if m.listener != nil {
		m.listener.SettingsChanged()
	}
}
