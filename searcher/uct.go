package searcher

import "math"

type uct struct {
	numerator float64
}

// newUCT prepares the exploration term for a node visited N times.
func newUCT(exploration float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	// 2C*sqrt(2*ln(N)/n) == sqrt(8*C^2*ln(N)/n)
	return &uct{numerator: 8 * exploration * exploration * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + 2C*sqrt(2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
