package platform_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/apperrors"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/model"
	"github.com/seunghoon34/Pandora-Workflow-Backend/internal/platform"
)

func testCreds() platform.Credentials {
	return platform.Credentials{AccountID: "acct-1", Token: "tok-1"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *platform.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return platform.NewClient(server.URL, 0)
}

// TestLogin tests the credential exchange against a stubbed gateway.
func TestLogin(t *testing.T) {
	t.Run("lifts the auth_token cookie into the result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/auth/login" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "jwt-value"})
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"ok","account_id":"acct-1","email":"user@example.com"}`))
		})

		result, err := client.Login(context.Background(), "user@example.com", "secret")
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}
		if result.Token != "jwt-value" {
			t.Errorf("Token = %q, want jwt-value", result.Token)
		}
		if result.AccountID != "acct-1" {
			t.Errorf("AccountID = %q, want acct-1", result.AccountID)
		}
	})

	t.Run("fails when the cookie is missing", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"account_id":"acct-1","email":"user@example.com"}`))
		})

		if _, err := client.Login(context.Background(), "user@example.com", "secret"); err == nil {
			t.Fatal("Expected an error for a response without auth_token")
		}
	})

	t.Run("surfaces the gateway error message verbatim", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid email or password"}`))
		})

		_, err := client.Login(context.Background(), "user@example.com", "wrong")
		if err == nil || err.Error() != "Invalid email or password" {
			t.Fatalf("Login() error = %v, want the gateway message verbatim", err)
		}
	})
}

// TestGetRiskProfile tests the stored-profile fetch.
func TestGetRiskProfile(t *testing.T) {
	t.Run("forwards credentials and decodes the profile", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
			}
			if r.Header.Get("X-Account-ID") != "acct-1" {
				t.Errorf("X-Account-ID = %q", r.Header.Get("X-Account-ID"))
			}
			w.Write([]byte(`{"risk_tolerance":"moderate","investment_timeline":"medium_term","financial_goals":["retirement"],"age_bracket":"26-35","annual_income_bracket":"50000-75000","investment_experience":"intermediate","risk_capacity":"medium"}`))
		})

		profile, err := client.GetRiskProfile(context.Background(), testCreds())
		if err != nil {
			t.Fatalf("GetRiskProfile() returned unexpected error: %v", err)
		}
		if profile.RiskTolerance != "moderate" {
			t.Errorf("RiskTolerance = %q, want moderate", profile.RiskTolerance)
		}
	})

	t.Run("maps 404 to ErrProfileNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Risk profile not found"}`))
		})

		_, err := client.GetRiskProfile(context.Background(), testCreds())
		if !errors.Is(err, apperrors.ErrProfileNotFound) {
			t.Fatalf("GetRiskProfile() error = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("wraps transport failures as ErrPlatformUnavailable", func(t *testing.T) {
		client := platform.NewClient("http://127.0.0.1:1", 0)
		_, err := client.GetRiskProfile(context.Background(), testCreds())
		if !errors.Is(err, apperrors.ErrPlatformUnavailable) {
			t.Fatalf("GetRiskProfile() error = %v, want ErrPlatformUnavailable", err)
		}
	})
}

// TestCreateRiskProfile tests profile creation conflict handling.
func TestCreateRiskProfile(t *testing.T) {
	t.Run("maps 409 to ErrConflict", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"Risk profile already exists"}`))
		})

		err := client.CreateRiskProfile(context.Background(), testCreds(), model.RiskProfile{})
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Fatalf("CreateRiskProfile() error = %v, want ErrConflict", err)
		}
	})

	t.Run("accepts 201", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("Method = %s, want POST", r.Method)
			}
			w.WriteHeader(http.StatusCreated)
		})

		if err := client.CreateRiskProfile(context.Background(), testCreds(), model.RiskProfile{}); err != nil {
			t.Fatalf("CreateRiskProfile() returned unexpected error: %v", err)
		}
	})
}

// TestGeneratePortfolio tests basket generation decoding.
func TestGeneratePortfolio(t *testing.T) {
	t.Run("decodes positions and explanation", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/crewai-portfolio/generate-portfolio" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"portfolio":[{"symbol":"VTI","weight":0.6},{"symbol":"BND","weight":0.4}],"explanation":"Balanced mix."}`))
		})

		portfolio, err := client.GeneratePortfolio(context.Background(), testCreds(), model.RiskProfile{})
		if err != nil {
			t.Fatalf("GeneratePortfolio() returned unexpected error: %v", err)
		}
		if len(portfolio.Positions) != 2 || portfolio.Positions[0].Symbol != "VTI" {
			t.Errorf("Positions = %+v", portfolio.Positions)
		}
		if portfolio.Explanation != "Balanced mix." {
			t.Errorf("Explanation = %q", portfolio.Explanation)
		}
	})

	t.Run("treats an empty basket as a generation failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"portfolio":[],"explanation":""}`))
		})

		_, err := client.GeneratePortfolio(context.Background(), testCreds(), model.RiskProfile{})
		if !errors.Is(err, apperrors.ErrFailedToGenerate) {
			t.Fatalf("GeneratePortfolio() error = %v, want ErrFailedToGenerate", err)
		}
	})
}

// TestPurchasePortfolio tests purchase result decoding, including partial fills.
func TestPurchasePortfolio(t *testing.T) {
	purchaseBody := `{"message":"Portfolio purchase completed","result":{"total_buying_power":"1000.00","order_results":[{"symbol":"VTI","notional":"600","success":true,"order_id":"o1"},{"symbol":"BND","notional":"400","success":false,"error":"halted"}],"success_count":1,"failure_count":1}}`

	t.Run("accepts 206 partial success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPartialContent)
			w.Write([]byte(purchaseBody))
		})

		result, err := client.PurchasePortfolio(context.Background(), testCreds())
		if err != nil {
			t.Fatalf("PurchasePortfolio() returned unexpected error: %v", err)
		}
		if result.SuccessCount != 1 || result.FailureCount != 1 {
			t.Errorf("Counts = %d/%d, want 1/1", result.SuccessCount, result.FailureCount)
		}
		if result.OrderResults[1].Error != "halted" {
			t.Errorf("OrderResults[1].Error = %q, want halted", result.OrderResults[1].Error)
		}
	})

	t.Run("surfaces purchase failures verbatim", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Insufficient buying power"}`))
		})

		_, err := client.PurchasePortfolio(context.Background(), testCreds())
		if err == nil || err.Error() != "Insufficient buying power" {
			t.Fatalf("PurchasePortfolio() error = %v, want the gateway message verbatim", err)
		}
	})
}

// TestCreatePortfolio tests the create-then-update conflict signal.
func TestCreatePortfolio(t *testing.T) {
	t.Run("maps 409 to ErrConflict", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"Portfolio already exists"}`))
		})

		err := client.CreatePortfolio(context.Background(), testCreds(), []model.Position{{Symbol: "VTI", Weight: 1}})
		if !errors.Is(err, apperrors.ErrConflict) {
			t.Fatalf("CreatePortfolio() error = %v, want ErrConflict", err)
		}
	})
}

// TestGetQuotes tests symbol batching on the quotes endpoint.
func TestGetQuotes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "VTI,BND" {
			t.Errorf("symbols = %q, want VTI,BND", got)
		}
		w.Write([]byte(`[{"symbol":"VTI","ask_price":250.1,"bid_price":250.0}]`))
	})

	quotes, err := client.GetQuotes(context.Background(), testCreds(), []string{"VTI", "BND"})
	if err != nil {
		t.Fatalf("GetQuotes() returned unexpected error: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Symbol != "VTI" {
		t.Errorf("Quotes = %+v", quotes)
	}
}

// TestGetBuyingPower tests the cash balance lookup used by the allocation
// preview fallback.
func TestGetBuyingPower(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/portfolio/value" {
			t.Errorf("Path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"account_id":"acct-1","positions":[],"Cash":"2500.00"}`))
	})

	cash, err := client.GetBuyingPower(context.Background(), testCreds())
	if err != nil {
		t.Fatalf("GetBuyingPower() returned unexpected error: %v", err)
	}
	if cash != "2500.00" {
		t.Errorf("Cash = %q, want 2500.00", cash)
	}
}
