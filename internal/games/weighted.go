package games

import "errors"

// weightedPicker draws symbols with probability proportional to their
// configured weights, using a cumulative weight table.
type weightedPicker struct {
	names []string
	cum   []int
	total int
}

func newWeightedPicker(symbols []WeightedSymbol) (*weightedPicker, error) {
	if len(symbols) == 0 {
		return nil, errors.New("no symbols to pick from")
	}
	p := &weightedPicker{
		names: make([]string, 0, len(symbols)),
		cum:   make([]int, 0, len(symbols)),
	}
	for _, s := range symbols {
		if s.Weight <= 0 {
			return nil, errors.New("symbol weights must be positive")
		}
		p.total += s.Weight
		p.names = append(p.names, s.Name)
		p.cum = append(p.cum, p.total)
	}
	return p, nil
}

// pick draws one symbol. rng must return a uniform value in [0, n).
func (p *weightedPicker) pick(rng func(int) int) string {
	draw := rng(p.total)
	for i, c := range p.cum {
		if draw < c {
			return p.names[i]
		}
	}
	// Unreachable for a well-behaved rng; guard against out-of-range values.
	return p.names[len(p.names)-1]
}
