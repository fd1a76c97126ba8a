package vector

import (
	"fmt"
	"math"
)

// Norm selects the vector norm used for magnitudes and approximate equality.
type Norm int

const (
	// NormL1 is the sum of absolute values.
	NormL1 Norm = iota
	// NormL2 is the Euclidean length.
	NormL2
	// NormInf is the maximum absolute value.
	NormInf
)

func (n Norm) String() string {
	switch n {
	case NormL1:
		return "L1"
	case NormL2:
		return "L2"
	case NormInf:
		return "Inf"
	default:
		return fmt.Sprintf("Unknown(%d)", n)
	}
}

func l1(v []float64) float64 {
	var res float64
	for _, c := range v {
		res += math.Abs(c)
	}
	return res
}

func l2(v []float64) float64 {
	var res float64
	for _, c := range v {
		res += c * c
	}
	return math.Sqrt(res)
}

func linf(v []float64) float64 {
	var res float64
	for _, c := range v {
		if a := math.Abs(c); a > res {
			res = a
		}
	}
	return res
}
