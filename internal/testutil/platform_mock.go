package testutil

import (
	"context"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
)

// MockPlatform is a mock implementation of platform.API for testing.
// It returns predefined responses instead of calling the gateway and counts
// every call so tests can assert on traffic.
type MockPlatform struct {
	LoginResponse platform.LoginResult
	LoginErr      error

	ProfileResponse  model.RiskProfile
	ProfileErr       error
	CreateProfileErr error
	UpdateProfileErr error

	GenerateResponse model.GeneratedPortfolio
	GenerateErr      error

	CreatePortfolioErr error
	UpdatePortfolioErr error
	PurchaseResponse   model.PurchaseResult
	PurchaseErr        error

	PositionsResponse []platform.PortfolioPosition
	PositionsErr      error
	OrdersResponse    []platform.Order
	OrdersErr         error
	QuotesResponse    []platform.Quote
	QuotesErr         error

	BuyingPowerResponse string
	BuyingPowerErr      error

	LoginCount           int
	GetProfileCount      int
	CreateProfileCount   int
	UpdateProfileCount   int
	GenerateCount        int
	CreatePortfolioCount int
	UpdatePortfolioCount int
	PurchaseCount        int
	QuotesSymbols        []string
}

// NewMockPlatform creates a mock with a stored profile and a two-position
// generated portfolio, enough for the common happy path.
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{
		LoginResponse:       platform.LoginResult{AccountID: MakeID(), Email: "user@example.com", Token: "test-token"},
		ProfileResponse:     SampleProfile(),
		GenerateResponse:    SamplePortfolio(),
		PurchaseResponse:    SamplePurchaseResult(),
		BuyingPowerResponse: "1000.00",
	}
}

func (m *MockPlatform) Login(_ context.Context, _, _ string) (platform.LoginResult, error) {
	m.LoginCount++
	if m.LoginErr != nil {
		return platform.LoginResult{}, m.LoginErr
	}
	return m.LoginResponse, nil
}

func (m *MockPlatform) GetRiskProfile(_ context.Context, _ platform.Credentials) (model.RiskProfile, error) {
	m.GetProfileCount++
	if m.ProfileErr != nil {
		return model.RiskProfile{}, m.ProfileErr
	}
	return m.ProfileResponse, nil
}

func (m *MockPlatform) CreateRiskProfile(_ context.Context, _ platform.Credentials, _ model.RiskProfile) error {
	m.CreateProfileCount++
	return m.CreateProfileErr
}

func (m *MockPlatform) UpdateRiskProfile(_ context.Context, _ platform.Credentials, _ model.RiskProfile) error {
	m.UpdateProfileCount++
	return m.UpdateProfileErr
}

func (m *MockPlatform) GeneratePortfolio(_ context.Context, _ platform.Credentials, _ model.RiskProfile) (model.GeneratedPortfolio, error) {
	m.GenerateCount++
	if m.GenerateErr != nil {
		return model.GeneratedPortfolio{}, m.GenerateErr
	}
	return m.GenerateResponse, nil
}

func (m *MockPlatform) CreatePortfolio(_ context.Context, _ platform.Credentials, _ []model.Position) error {
	m.CreatePortfolioCount++
	return m.CreatePortfolioErr
}

func (m *MockPlatform) UpdatePortfolio(_ context.Context, _ platform.Credentials, _ []model.Position) error {
	m.UpdatePortfolioCount++
	return m.UpdatePortfolioErr
}

func (m *MockPlatform) PurchasePortfolio(_ context.Context, _ platform.Credentials) (model.PurchaseResult, error) {
	m.PurchaseCount++
	if m.PurchaseErr != nil {
		return model.PurchaseResult{}, m.PurchaseErr
	}
	return m.PurchaseResponse, nil
}

func (m *MockPlatform) GetPositions(_ context.Context, _ platform.Credentials) ([]platform.PortfolioPosition, error) {
	if m.PositionsErr != nil {
		return nil, m.PositionsErr
	}
	return m.PositionsResponse, nil
}

func (m *MockPlatform) GetOrders(_ context.Context, _ platform.Credentials) ([]platform.Order, error) {
	if m.OrdersErr != nil {
		return nil, m.OrdersErr
	}
	return m.OrdersResponse, nil
}

func (m *MockPlatform) GetQuotes(_ context.Context, _ platform.Credentials, symbols []string) ([]platform.Quote, error) {
	m.QuotesSymbols = symbols
	if m.QuotesErr != nil {
		return nil, m.QuotesErr
	}
	return m.QuotesResponse, nil
}

func (m *MockPlatform) GetBuyingPower(_ context.Context, _ platform.Credentials) (string, error) {
	if m.BuyingPowerErr != nil {
		return "", m.BuyingPowerErr
	}
	return m.BuyingPowerResponse, nil
}

// WithNoProfile configures the mock as an account without a stored profile.
func (m *MockPlatform) WithNoProfile(err error) *MockPlatform {
	m.ProfileErr = err
	return m
}

// WithGenerateError configures generation to fail.
func (m *MockPlatform) WithGenerateError(err error) *MockPlatform {
	m.GenerateErr = err
	return m
}
