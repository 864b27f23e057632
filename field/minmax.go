package field

import (
	"math"

	"github.com/pkg/errors"
)

// NodesetMinMax returns the component-wise minimum and maximum of f over the
// nodes of s it is defined at.
func NodesetMinMax(f Field, s *Nodeset) ([]float64, []float64, error) {
	n := f.NumberOfComponents()
	min := make([]float64, n)
	max := make([]float64, n)
	for i := range min {
		min[i] = math.MaxFloat64
		max[i] = -math.MaxFloat64
	}
	var cnt int
	for it := s.NodeIterator(); it.IsValid(); it.Incr() {
		node := it.Node()
		if !f.IsDefinedAtNode(node) {
			continue
		}
		v, err := f.EvaluateAtNode(node)
		if err != nil {
			return nil, nil, err
		}
		for i := range v {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
		cnt++
	}
	if cnt == 0 {
		return nil, nil, errors.Errorf("field %q is not defined on any %s", f.Name(), s.domain)
	}
	return min, max, nil
}
