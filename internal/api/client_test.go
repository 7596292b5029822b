package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finzen/internal/core"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticToken("abc123"))
	if _, err := c.Goals.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("Authorization = %q, want Bearer abc123", gotAuth)
	}
}

func TestClientOmitsEmptyToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticToken(""))
	if _, err := c.Goals.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClientDecodesDetailError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"La meta ya fue alcanzada"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Goals.Achieve(context.Background(), 7)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Detail != "La meta ya fue alcanzada" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
	if got := UserMessage(err, "generic"); got != "La meta ya fue alcanzada" {
		t.Errorf("UserMessage = %q, want the detail verbatim", got)
	}
}

func TestClientFallsBackWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Goals.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := UserMessage(err, "Something went wrong"); got != "Something went wrong" {
		t.Fatalf("UserMessage = %q, want fallback", got)
	}
}

func TestClientWrapsTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Goals.List(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestClientMarks401AsNotAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token inválido o expirado"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticToken("expired"))
	_, err := c.Auth.Me(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestGoalsAddContributionReturnsServerGoal(t *testing.T) {
	// The server owns current_amount: the client must render whatever
	// comes back, not its own expectation.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/goals/3/contributions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var form core.ContributionForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			t.Errorf("decode form: %v", err)
		}
		if form.Amount.Cents != 5000000 {
			t.Errorf("amount cents = %d, want 5000000", form.Amount.Cents)
		}
		if form.Date.String() != "2025-01-15" {
			t.Errorf("date = %s", form.Date)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 3,
			"name": "Viaje",
			"target_amount": 1000000,
			"current_amount": 250000,
			"quota_amount": 0,
			"frequency": "monthly",
			"color": "#6366f1",
			"status": "active"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, staticToken("tok"))
	g, err := c.Goals.AddContribution(context.Background(), 3, core.ContributionForm{
		Amount: core.Money{Cents: 5000000},
		Date:   core.NewDate(2025, 1, 15),
		Notes:  "enero",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.CurrentAmount.Cents != 25000000 {
		t.Fatalf("current = %d cents, want the server's 25000000", g.CurrentAmount.Cents)
	}
	if g.Status != core.StatusActive {
		t.Fatalf("status = %s, want active", g.Status)
	}
}

func TestTransactionsListFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	_, err := c.Transactions.List(context.Background(), TransactionFilter{
		AccountID: 2,
		Type:      TransactionExpense,
		From:      core.NewDate(2025, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "account_id=2&date_from=2025-01-01&type=expense"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}
}
