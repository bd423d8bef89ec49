// Package platform is the HTTP client for the investing platform's API
// gateway. It covers the investment-strategy, generation, auth, portfolio,
// trading and market data surfaces the workflow and dashboard consume.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
)

// API defines the platform operations consumed by this service. The interface
// enables dependency injection and testing with mock implementations.
type API interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)

	GetRiskProfile(ctx context.Context, creds Credentials) (model.RiskProfile, error)
	CreateRiskProfile(ctx context.Context, creds Credentials, profile model.RiskProfile) error
	UpdateRiskProfile(ctx context.Context, creds Credentials, profile model.RiskProfile) error

	GeneratePortfolio(ctx context.Context, creds Credentials, profile model.RiskProfile) (model.GeneratedPortfolio, error)

	CreatePortfolio(ctx context.Context, creds Credentials, positions []model.Position) error
	UpdatePortfolio(ctx context.Context, creds Credentials, positions []model.Position) error
	PurchasePortfolio(ctx context.Context, creds Credentials) (model.PurchaseResult, error)

	GetPositions(ctx context.Context, creds Credentials) ([]PortfolioPosition, error)
	GetOrders(ctx context.Context, creds Credentials) ([]Order, error)
	GetQuotes(ctx context.Context, creds Credentials, symbols []string) ([]Quote, error)
	GetBuyingPower(ctx context.Context, creds Credentials) (string, error)
}

// Client calls the platform gateway over HTTP. It wraps a standard
// http.Client; per-call deadlines come from the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a platform client for the given gateway base URL,
// e.g. "http://localhost:3000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login exchanges email and password for the gateway session token. The
// gateway sets the token as an auth_token cookie; it is lifted into the
// result so callers can forward it as a bearer credential.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := json.Marshal(loginPayload{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return LoginResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", apperrors.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return LoginResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return LoginResult{}, platformError(resp.StatusCode, data)
	}

	var decoded loginResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return LoginResult{}, fmt.Errorf("failed to parse login response: %w", err)
	}

	result := LoginResult{AccountID: decoded.AccountID, Email: decoded.Email}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "auth_token" {
			result.Token = cookie.Value
		}
	}
	if result.Token == "" {
		return LoginResult{}, fmt.Errorf("login response missing auth_token cookie")
	}
	return result, nil
}

// GetRiskProfile fetches the stored risk profile. A 404 maps to
// apperrors.ErrProfileNotFound so callers can treat it as the normal
// empty state rather than a failure.
func (c *Client) GetRiskProfile(ctx context.Context, creds Credentials) (model.RiskProfile, error) {
	var profile model.RiskProfile
	status, data, err := c.doJSON(ctx, creds, http.MethodGet, "/api/v1/investment-strategy/risk-profile", nil)
	if err != nil {
		return profile, err
	}
	if status == http.StatusNotFound {
		return profile, apperrors.ErrProfileNotFound
	}
	if status != http.StatusOK {
		return profile, platformError(status, data)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse risk profile: %w", err)
	}
	return profile, nil
}

// CreateRiskProfile stores a new risk profile. A 409 maps to
// apperrors.ErrConflict.
func (c *Client) CreateRiskProfile(ctx context.Context, creds Credentials, profile model.RiskProfile) error {
	status, data, err := c.doJSON(ctx, creds, http.MethodPost, "/api/v1/investment-strategy/risk-profile", profile)
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return fmt.Errorf("%w: risk profile", apperrors.ErrConflict)
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return platformError(status, data)
	}
	return nil
}

// UpdateRiskProfile replaces the stored risk profile.
func (c *Client) UpdateRiskProfile(ctx context.Context, creds Credentials, profile model.RiskProfile) error {
	status, data, err := c.doJSON(ctx, creds, http.MethodPut, "/api/v1/investment-strategy/risk-profile", profile)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return platformError(status, data)
	}
	return nil
}

// GeneratePortfolio requests a weighted basket for the normalized profile.
func (c *Client) GeneratePortfolio(ctx context.Context, creds Credentials, profile model.RiskProfile) (model.GeneratedPortfolio, error) {
	var portfolio model.GeneratedPortfolio
	status, data, err := c.doJSON(ctx, creds, http.MethodPost, "/api/v1/crewai-portfolio/generate-portfolio", profile)
	if err != nil {
		return portfolio, err
	}
	if status != http.StatusOK {
		return portfolio, platformError(status, data)
	}

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return portfolio, fmt.Errorf("failed to parse generated portfolio: %w", err)
	}
	if len(decoded.Portfolio) == 0 {
		return portfolio, fmt.Errorf("%w: empty portfolio returned", apperrors.ErrFailedToGenerate)
	}

	portfolio.Explanation = decoded.Explanation
	portfolio.Positions = make([]model.Position, len(decoded.Portfolio))
	for i, p := range decoded.Portfolio {
		portfolio.Positions[i] = model.Position{Symbol: p.Symbol, Weight: p.Weight}
	}
	return portfolio, nil
}

// CreatePortfolio stores the positions as the account's canonical portfolio.
// A 409 maps to apperrors.ErrConflict; callers fall back to UpdatePortfolio.
func (c *Client) CreatePortfolio(ctx context.Context, creds Credentials, positions []model.Position) error {
	status, data, err := c.doJSON(ctx, creds, http.MethodPost, "/api/v1/investment-strategy/portfolio", buildPortfolioPayload(positions))
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return fmt.Errorf("%w: portfolio", apperrors.ErrConflict)
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return platformError(status, data)
	}
	return nil
}

// UpdatePortfolio replaces the account's canonical portfolio positions.
func (c *Client) UpdatePortfolio(ctx context.Context, creds Credentials, positions []model.Position) error {
	status, data, err := c.doJSON(ctx, creds, http.MethodPut, "/api/v1/investment-strategy/portfolio", buildPortfolioPayload(positions))
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return platformError(status, data)
	}
	return nil
}

// PurchasePortfolio converts the stored portfolio into orders, one per
// position. 206 is a valid outcome: some lines filled, some failed, all
// reported in the result.
func (c *Client) PurchasePortfolio(ctx context.Context, creds Credentials) (model.PurchaseResult, error) {
	var result model.PurchaseResult
	status, data, err := c.doJSON(ctx, creds, http.MethodPost, "/api/v1/investment-strategy/portfolio/purchase", nil)
	if err != nil {
		return result, err
	}
	if status != http.StatusOK && status != http.StatusPartialContent {
		return result, platformError(status, data)
	}

	var decoded purchaseResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return result, fmt.Errorf("failed to parse purchase result: %w", err)
	}

	result.TotalBuyingPower = decoded.Result.TotalBuyingPower
	result.SuccessCount = decoded.Result.SuccessCount
	result.FailureCount = decoded.Result.FailureCount
	result.OrderResults = make([]model.OrderResult, len(decoded.Result.OrderResults))
	for i, o := range decoded.Result.OrderResults {
		result.OrderResults[i] = model.OrderResult{
			Symbol:   o.Symbol,
			Notional: o.Notional,
			Success:  o.Success,
			Error:    o.Error,
			OrderID:  o.OrderID,
		}
	}
	return result, nil
}

// GetPositions fetches the account's live brokerage holdings.
func (c *Client) GetPositions(ctx context.Context, creds Credentials) ([]PortfolioPosition, error) {
	status, data, err := c.doJSON(ctx, creds, http.MethodGet, "/api/v1/portfolio/positions", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, platformError(status, data)
	}
	var positions []PortfolioPosition
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse positions: %w", err)
	}
	return positions, nil
}

// GetOrders fetches the account's recent orders.
func (c *Client) GetOrders(ctx context.Context, creds Credentials) ([]Order, error) {
	status, data, err := c.doJSON(ctx, creds, http.MethodGet, "/api/v1/trading/orders", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, platformError(status, data)
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to parse orders: %w", err)
	}
	return orders, nil
}

// GetQuotes fetches latest quotes for the given symbols.
func (c *Client) GetQuotes(ctx context.Context, creds Credentials, symbols []string) ([]Quote, error) {
	path := "/api/v1/market/quotes?symbols=" + url.QueryEscape(strings.Join(symbols, ","))
	status, data, err := c.doJSON(ctx, creds, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, platformError(status, data)
	}
	var quotes []Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse quotes: %w", err)
	}
	return quotes, nil
}

// GetBuyingPower fetches the account's available cash from the portfolio
// value endpoint. The value arrives as a decimal string and is passed
// through untouched.
func (c *Client) GetBuyingPower(ctx context.Context, creds Credentials) (string, error) {
	status, data, err := c.doJSON(ctx, creds, http.MethodGet, "/api/v1/portfolio/value", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", platformError(status, data)
	}
	var decoded accountValueResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("failed to parse account value: %w", err)
	}
	return decoded.Cash, nil
}

// doJSON executes one authenticated JSON request and returns the status code
// and raw body. Transport failures wrap apperrors.ErrPlatformUnavailable;
// non-2xx statuses are left to the caller, which knows which ones carry meaning.
func (c *Client) doJSON(ctx context.Context, creds Credentials, method, path string, payload interface{}) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	req.Header.Set("X-Account-ID", creds.AccountID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", apperrors.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// platformError surfaces the platform's human-readable message verbatim,
// falling back to the status code when the body carries none.
func platformError(status int, data []byte) error {
	var decoded errorResponse
	if err := json.Unmarshal(data, &decoded); err == nil && decoded.Error != "" {
		return fmt.Errorf("%s", decoded.Error)
	}
	return fmt.Errorf("platform returned status %d", status)
}

func buildPortfolioPayload(positions []model.Position) portfolioPayload {
	payload := portfolioPayload{Positions: make([]positionPayload, len(positions))}
	for i, p := range positions {
		payload.Positions[i] = positionPayload{Symbol: p.Symbol, Weight: p.Weight}
	}
	return payload
}
