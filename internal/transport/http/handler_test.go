package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"payhold/internal/model"
	"payhold/internal/store"
)

type stubLedger struct {
	balanceRes *model.BalanceResult
	balanceErr error
}

func (s *stubLedger) ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error) {
	return nil, nil
}

func (s *stubLedger) CommitReservation(ctx context.Context, rid uuid.UUID, key string) (*model.FinalizeResult, error) {
	return nil, nil
}

func (s *stubLedger) RollbackReservation(ctx context.Context, rid uuid.UUID, reason string) (*model.FinalizeResult, error) {
	return nil, nil
}

func (s *stubLedger) CheckBalance(ctx context.Context, accountID string, amount int64) (*model.BalanceResult, error) {
	return s.balanceRes, s.balanceErr
}

func newMux(ledger *stubLedger) *http.ServeMux {
	mux := http.NewServeMux()
	if ledger == nil {
		NewHandler(nil).Register(mux)
	} else {
		NewHandler(ledger).Register(mux)
	}
	return mux
}

func TestHealth(t *testing.T) {
	mux := newMux(nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
}

func TestBalance(t *testing.T) {
	mux := newMux(&stubLedger{balanceRes: &model.BalanceResult{CurrentBalance: 420}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance?account_id=acct-000001", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var body map[string]int64
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["balance"] != 420 {
		t.Fatalf("unexpected balance %d", body["balance"])
	}
}

func TestBalanceMissingAccountID(t *testing.T) {
	mux := newMux(&stubLedger{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
}

func TestBalanceUnknownAccount(t *testing.T) {
	mux := newMux(&stubLedger{balanceErr: store.ErrAccountNotFound})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance?account_id=acct-999999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
}

func TestBalanceRouteAbsentWithoutLedger(t *testing.T) {
	mux := newMux(nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/balance?account_id=x", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404 for unregistered route", rec.Code)
	}
}
