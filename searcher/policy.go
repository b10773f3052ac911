package searcher

import "math"

type uct struct {
	numerator float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: c * c * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + c*sqrt(ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// pickChild returns the child with the highest UCT score, the first one on ties
func pickChild(parent *Node, c float64) *Node {
	policy := newUCT(c, float64(parent.Visits))

	var best *Node
	bestScore := math.Inf(-1)
	for _, child := range parent.Children {
		score := policy.evaluate(child.ValueSum, float64(child.Visits))
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}
