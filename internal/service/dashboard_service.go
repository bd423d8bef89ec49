package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
)

// Dashboard aggregates the account views shown alongside the questionnaire.
// Sections fail independently; a broken section carries its error message and
// the rest still render.
type Dashboard struct {
	Positions []platform.PortfolioPosition `json:"positions"`
	Orders    []platform.Order             `json:"orders"`
	Quotes    []platform.Quote             `json:"quotes"`
	Errors    map[string]string            `json:"errors,omitempty"`
}

// DashboardService fans out the platform reads backing the dashboard view.
type DashboardService struct {
	platform platform.API
	timeout  time.Duration
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(api platform.API, timeout time.Duration) *DashboardService {
	return &DashboardService{platform: api, timeout: timeout}
}

// Load fetches positions, recent orders and quotes for the held symbols
// concurrently. Quotes depend on the position fetch and are skipped when it
// fails or holds nothing.
func (s *DashboardService) Load(ctx context.Context, creds platform.Credentials) Dashboard {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	dashboard := Dashboard{Errors: make(map[string]string)}

	var positionsErr, ordersErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		positions, err := s.platform.GetPositions(gctx, creds)
		if err != nil {
			positionsErr = err
			return nil
		}
		dashboard.Positions = positions
		return nil
	})
	g.Go(func() error {
		orders, err := s.platform.GetOrders(gctx, creds)
		if err != nil {
			ordersErr = err
			return nil
		}
		dashboard.Orders = orders
		return nil
	})
	_ = g.Wait()

	if positionsErr != nil {
		dashboard.Errors["positions"] = positionsErr.Error()
	}
	if ordersErr != nil {
		dashboard.Errors["orders"] = ordersErr.Error()
	}

	if positionsErr == nil && len(dashboard.Positions) > 0 {
		symbols := make([]string, 0, len(dashboard.Positions))
		for _, p := range dashboard.Positions {
			symbols = append(symbols, p.Symbol)
		}
		quotes, err := s.platform.GetQuotes(ctx, creds, symbols)
		if err != nil {
			dashboard.Errors["quotes"] = err.Error()
		} else {
			dashboard.Quotes = quotes
		}
	}

	if len(dashboard.Errors) == 0 {
		dashboard.Errors = nil
	}
	return dashboard
}
