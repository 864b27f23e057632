package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/mapper"
	"github.com/seqsense/scaffoldmapper/scaffold"
)

var errTransformFailed = errors.New("transform was not fully applied")
var errNothingToUndo = errors.New("nothing to undo")

type commandContext struct {
	mapper          *mapper.Mapper
	translationRate float64

	settingsUpdated bool
}

func newCommandContext(m *mapper.Mapper, translationRate float64) *commandContext {
	c := &commandContext{
		mapper:          m,
		translationRate: translationRate,
	}
	m.SetSettingsListener(c)
	return c
}

// SettingsChanged implements scaffold.SettingsListener.
func (c *commandContext) SettingsChanged() {
	c.settingsUpdated = true
}

// Settings returns the current settings and whether they changed since the
// last call.
func (c *commandContext) Settings() (mapper.Settings, bool) {
	updated := c.settingsUpdated
	c.settingsUpdated = false
	return c.mapper.Settings(), updated
}

func (c *commandContext) LoadScaffold(path string) error {
	return c.mapper.LoadScaffold(path)
}

func (c *commandContext) LoadData(path string) error {
	return c.mapper.LoadData(path)
}

// Rotate returns errTransformFailed if the settings were stored but the
// geometry was not fully updated.
func (c *commandContext) Rotate(axisName string, degrees float64) error {
	axis, err := scaffold.ParseRotationAxis(axisName)
	if err != nil {
		return err
	}
	ok, err := c.mapper.Rotate(axis, degrees)
	if err != nil {
		return err
	}
	if !ok {
		return errTransformFailed
	}
	return nil
}

// Translate uses the default translation rate if rate is nil.
func (c *commandContext) Translate(axisName string, value float64, rate *float64) error {
	axis, err := scaffold.ParseTranslationAxis(axisName)
	if err != nil {
		return err
	}
	r := c.translationRate
	if rate != nil {
		r = *rate
	}
	ok, err := c.mapper.Translate(axis, value, r)
	if err != nil {
		return err
	}
	if !ok {
		return errTransformFailed
	}
	return nil
}

func (c *commandContext) Reset() error {
	return c.mapper.Reset()
}

func (c *commandContext) Undo() error {
	ok, err := c.mapper.Undo()
	if err != nil {
		return err
	}
	if !ok {
		return errNothingToUndo
	}
	return nil
}

func (c *commandContext) PointSize() (float64, error) {
	return c.mapper.PointSize()
}

func (c *commandContext) Save(path string) error {
	return c.mapper.Save(path)
}

func (c *commandContext) ExportGLTF(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating glTF")
	}
	if err := c.mapper.ExportGLTF(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing glTF")
}
