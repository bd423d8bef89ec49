package platform

// Credentials carry the session context every protected platform call needs:
// the gateway bearer token and the brokerage account ID header.
type Credentials struct {
	AccountID string
	Token     string
}

// LoginResult is the outcome of a successful credential exchange. The token
// arrives as an auth_token cookie on the gateway response.
type LoginResult struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Token     string `json:"-"`
}

// PortfolioPosition is a live brokerage holding as the portfolio service
// reports it. Monetary fields are decimal strings, matching the brokerage API.
type PortfolioPosition struct {
	Symbol        string `json:"symbol"`
	Qty           string `json:"qty"`
	MarketValue   string `json:"market_value"`
	CostBasis     string `json:"cost_basis"`
	UnrealizedPL  string `json:"unrealized_pl"`
	CurrentPrice  string `json:"current_price"`
	AvgEntryPrice string `json:"avg_entry_price"`
	ChangeToday   string `json:"change_today"`
	AssetClass    string `json:"asset_class,omitempty"`
	ExchangeName  string `json:"exchange,omitempty"`
}

// Order is a brokerage order as the trading engine reports it.
type Order struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	Qty         string `json:"qty,omitempty"`
	Notional    string `json:"notional,omitempty"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	SubmittedAt string `json:"submitted_at"`
	FilledAt    string `json:"filled_at,omitempty"`
}

// Quote is a latest-quote snapshot from the market data service.
type Quote struct {
	Symbol   string  `json:"symbol"`
	AskPrice float64 `json:"ask_price"`
	BidPrice float64 `json:"bid_price"`
}

// accountValueResponse carries the cash balance from the portfolio value
// endpoint. The field name matches the platform's casing.
type accountValueResponse struct {
	Cash string `json:"Cash"`
}

// errorResponse is the error payload shape shared by all platform services.
// The message is surfaced to users verbatim.
type errorResponse struct {
	Error string `json:"error"`
}

// generateResponse is the portfolio generation service response.
type generateResponse struct {
	Portfolio   []generatedPosition `json:"portfolio"`
	Explanation string              `json:"explanation"`
	Status      string              `json:"status,omitempty"`
	Message     string              `json:"message,omitempty"`
}

type generatedPosition struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

// purchaseResponse wraps the purchase result the investment-strategy service
// returns alongside its status message.
type purchaseResponse struct {
	Message string `json:"message"`
	Result  struct {
		TotalBuyingPower string `json:"total_buying_power"`
		OrderResults     []struct {
			Symbol   string `json:"symbol"`
			Notional string `json:"notional"`
			Success  bool   `json:"success"`
			Error    string `json:"error,omitempty"`
			OrderID  string `json:"order_id,omitempty"`
		} `json:"order_results"`
		SuccessCount int `json:"success_count"`
		FailureCount int `json:"failure_count"`
	} `json:"result"`
}

// positionsPayload and portfolioPayload are the request bodies for the
// portfolio store endpoints.
type portfolioPayload struct {
	Positions []positionPayload `json:"positions"`
}

type positionPayload struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}
