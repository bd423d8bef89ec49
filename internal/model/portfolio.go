package model

// Position is a single weighted holding in a generated or stored portfolio.
// Weight is a fraction in [0, 1]; the platform validates that weights sum to 1.
type Position struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

// GeneratedPortfolio is the transient result of one generation call.
// It is replaced wholesale on regeneration and discarded when the session closes.
type GeneratedPortfolio struct {
	Positions   []Position `json:"positions"`
	Explanation string     `json:"explanation"`
}

// Clone returns a deep copy so snapshots cannot alias the session's positions.
func (p *GeneratedPortfolio) Clone() *GeneratedPortfolio {
	if p == nil {
		return nil
	}
	out := &GeneratedPortfolio{
		Positions:   make([]Position, len(p.Positions)),
		Explanation: p.Explanation,
	}
	copy(out.Positions, p.Positions)
	return out
}
