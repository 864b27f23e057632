package scaffold

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownAxis is returned when parsing an axis name fails.
var ErrUnknownAxis = errors.New("unknown axis")

// RotationAxis selects one of the Euler angles. The numeric value is the
// slot in the XYZ Euler triple.
type RotationAxis int

const (
	Yaw RotationAxis = iota
	Pitch
	Roll
)

var rotationAxisNames = [...]string{"yaw", "pitch", "roll"}

func (a RotationAxis) String() string {
	if a < 0 || int(a) >= len(rotationAxisNames) {
		return "invalid"
	}
	return rotationAxisNames[a]
}

// ParseRotationAxis accepts "yaw", "pitch" and "roll" in any case.
func ParseRotationAxis(s string) (RotationAxis, error) {
	for i, name := range rotationAxisNames {
		if strings.EqualFold(s, name) {
			return RotationAxis(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownAxis, "rotation axis %q", s)
}

// TranslationAxis selects one of the Cartesian offsets.
type TranslationAxis int

const (
	X TranslationAxis = iota
	Y
	Z
)

var translationAxisNames = [...]string{"X", "Y", "Z"}

func (a TranslationAxis) String() string {
	if a < 0 || int(a) >= len(translationAxisNames) {
		return "invalid"
	}
	return translationAxisNames[a]
}

// ParseTranslationAxis accepts "X", "Y" and "Z" in any case.
func ParseTranslationAxis(s string) (TranslationAxis, error) {
	for i, name := range translationAxisNames {
		if strings.EqualFold(s, name) {
			return TranslationAxis(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownAxis, "translation axis %q", s)
}
