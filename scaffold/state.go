package scaffold

// State holds the cumulative absolute transform last requested by the user:
// Euler angles in degrees, indexed by RotationAxis, and offsets, indexed by
// TranslationAxis.
type State struct {
	Rotation    [3]float64
	Translation [3]float64
}

// Rotate stores degrees as the absolute angle of axis and returns the change
// as an Euler triple with the other two slots zero.
func (s *State) Rotate(axis RotationAxis, degrees float64) [3]float64 {
	var delta [3]float64
	delta[axis] = degrees - s.Rotation[axis]
	s.Rotation[axis] = degrees
	return delta
}

// Translate stores value*rate as the absolute offset of axis and returns the
// change as an offset with the other two slots zero.
func (s *State) Translate(axis TranslationAxis, value, rate float64) [3]float64 {
	var delta [3]float64
	v := value * rate
	delta[axis] = v - s.Translation[axis]
	s.Translation[axis] = v
	return delta
}

// Reset zeroes all six values.
func (s *State) Reset() {
	*s = State{}
}
