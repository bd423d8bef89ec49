package service_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/service"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/testutil"
)

func TestDashboardLoad(t *testing.T) {
	t.Run("aggregates positions, orders and quotes", func(t *testing.T) {
		mock := testutil.NewMockPlatform()
		mock.PositionsResponse = []platform.PortfolioPosition{
			{Symbol: "VTI", Qty: "4", MarketValue: "1000.00"},
			{Symbol: "BND", Qty: "10", MarketValue: "700.00"},
		}
		mock.OrdersResponse = []platform.Order{{ID: "o1", Symbol: "VTI", Side: "buy", Status: "filled"}}
		mock.QuotesResponse = []platform.Quote{{Symbol: "VTI", AskPrice: 250.1, BidPrice: 250.0}}
		svc := service.NewDashboardService(mock, 5*time.Second)

		dashboard := svc.Load(context.Background(), platform.Credentials{AccountID: "acct-1", Token: "tok"})

		if len(dashboard.Positions) != 2 || len(dashboard.Orders) != 1 || len(dashboard.Quotes) != 1 {
			t.Errorf("Dashboard = %+v", dashboard)
		}
		if dashboard.Errors != nil {
			t.Errorf("Unexpected section errors: %v", dashboard.Errors)
		}
		if !reflect.DeepEqual(mock.QuotesSymbols, []string{"VTI", "BND"}) {
			t.Errorf("Quotes requested for %v, want the held symbols", mock.QuotesSymbols)
		}
	})

	t.Run("sections fail independently", func(t *testing.T) {
		mock := testutil.NewMockPlatform()
		mock.PositionsResponse = []platform.PortfolioPosition{{Symbol: "VTI"}}
		mock.OrdersErr = fmt.Errorf("orders service down")
		mock.QuotesResponse = []platform.Quote{{Symbol: "VTI"}}
		svc := service.NewDashboardService(mock, 5*time.Second)

		dashboard := svc.Load(context.Background(), platform.Credentials{AccountID: "acct-1", Token: "tok"})

		if len(dashboard.Positions) != 1 || len(dashboard.Quotes) != 1 {
			t.Errorf("Dashboard = %+v", dashboard)
		}
		if dashboard.Errors["orders"] != "orders service down" {
			t.Errorf("Errors = %v", dashboard.Errors)
		}
	})

	t.Run("skips quotes when positions fail", func(t *testing.T) {
		mock := testutil.NewMockPlatform()
		mock.PositionsErr = fmt.Errorf("positions service down")
		svc := service.NewDashboardService(mock, 5*time.Second)

		dashboard := svc.Load(context.Background(), platform.Credentials{AccountID: "acct-1", Token: "tok"})

		if dashboard.Errors["positions"] != "positions service down" {
			t.Errorf("Errors = %v", dashboard.Errors)
		}
		if mock.QuotesSymbols != nil {
			t.Error("Quotes must not be fetched when positions failed")
		}
	})
}
