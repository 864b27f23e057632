package mat

// Vector is a dense vector of field components.
type Vector []float64

// Add returns v+a. a must have the length of v.
func (v Vector) Add(a Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] + a[i]
	}
	return out
}

// Sub returns v-a. a must have the length of v.
func (v Vector) Sub(a Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i] - a[i]
	}
	return out
}

func (v Vector) Dot(a Vector) float64 {
	var sum float64
	for i := range v {
		sum += v[i] * a[i]
	}
	return sum
}

// Equal reports exact equality.
func (v Vector) Equal(a Vector) bool {
	if len(v) != len(a) {
		return false
	}
	for i := range v {
		if v[i] != a[i] {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every component differs by at most tol.
func (v Vector) ApproxEqual(a Vector, tol float64) bool {
	if len(v) != len(a) {
		return false
	}
	for i := range v {
		if d := v[i] - a[i]; d < -tol || tol < d {
			return false
		}
	}
	return true
}
