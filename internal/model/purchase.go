package model

// OrderResult is the outcome of a single order line within a portfolio purchase.
// Notional is a whole-dollar string, as the trading engine reports it.
type OrderResult struct {
	Symbol   string `json:"symbol"`
	Notional string `json:"notional"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
}

// PurchaseResult is the terminal outcome of a portfolio purchase: one order
// result per position, plus aggregate counts and the buying power that was split.
type PurchaseResult struct {
	TotalBuyingPower string        `json:"total_buying_power"`
	OrderResults     []OrderResult `json:"order_results"`
	SuccessCount     int           `json:"success_count"`
	FailureCount     int           `json:"failure_count"`
}

// Clone returns a deep copy so snapshots cannot alias the session's results.
func (r *PurchaseResult) Clone() *PurchaseResult {
	if r == nil {
		return nil
	}
	out := &PurchaseResult{
		TotalBuyingPower: r.TotalBuyingPower,
		OrderResults:     make([]OrderResult, len(r.OrderResults)),
		SuccessCount:     r.SuccessCount,
		FailureCount:     r.FailureCount,
	}
	copy(out.OrderResults, r.OrderResults)
	return out
}
