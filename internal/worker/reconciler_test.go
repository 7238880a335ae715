package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"payhold/internal/model"
)

type fakeLister struct {
	ids []string
	err error
}

func (f *fakeLister) StuckPending(ctx context.Context, maxAge time.Duration, limit int) ([]string, error) {
	return f.ids, f.err
}

type fakeLedger struct {
	rollbackRes *model.FinalizeResult
	rollbackErr error
	rolledBack  []uuid.UUID
	reasons     []string
}

func (f *fakeLedger) ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeLedger) CommitReservation(ctx context.Context, rid uuid.UUID, key string) (*model.FinalizeResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeLedger) RollbackReservation(ctx context.Context, rid uuid.UUID, reason string) (*model.FinalizeResult, error) {
	f.rolledBack = append(f.rolledBack, rid)
	f.reasons = append(f.reasons, reason)
	return f.rollbackRes, f.rollbackErr
}

func (f *fakeLedger) CheckBalance(ctx context.Context, accountID string, amount int64) (*model.BalanceResult, error) {
	return nil, errors.New("not used")
}

func TestReconcilerSweepRollsBackStuckReservations(t *testing.T) {
	rid1 := uuid.New()
	rid2 := uuid.New()
	lister := &fakeLister{ids: []string{rid1.String(), rid2.String()}}
	ledger := &fakeLedger{rollbackRes: &model.FinalizeResult{Status: model.FinalizeOK}}

	r := NewReconciler(lister, ledger, time.Minute, 15*time.Minute)
	r.sweep(context.Background())

	if len(ledger.rolledBack) != 2 {
		t.Fatalf("expected 2 rollbacks, got %d", len(ledger.rolledBack))
	}
	if ledger.rolledBack[0] != rid1 || ledger.rolledBack[1] != rid2 {
		t.Fatalf("unexpected rollback order %v", ledger.rolledBack)
	}
	for _, reason := range ledger.reasons {
		if reason != "reconciler_timeout" {
			t.Fatalf("unexpected reason %q", reason)
		}
	}
}

func TestReconcilerSkipsBadIDs(t *testing.T) {
	rid := uuid.New()
	lister := &fakeLister{ids: []string{"not-a-uuid", rid.String()}}
	ledger := &fakeLedger{rollbackRes: &model.FinalizeResult{Status: model.FinalizeOK}}

	r := NewReconciler(lister, ledger, time.Minute, 15*time.Minute)
	r.sweep(context.Background())

	if len(ledger.rolledBack) != 1 || ledger.rolledBack[0] != rid {
		t.Fatalf("unexpected rollbacks %v", ledger.rolledBack)
	}
}

func TestReconcilerToleratesRollbackRace(t *testing.T) {
	// A commit can land between listing and rollback; BAD_STATUS is the
	// expected answer and the sweep moves on.
	lister := &fakeLister{ids: []string{uuid.New().String(), uuid.New().String()}}
	ledger := &fakeLedger{rollbackRes: &model.FinalizeResult{Status: model.FinalizeBadStatus}}

	r := NewReconciler(lister, ledger, time.Minute, 15*time.Minute)
	r.sweep(context.Background())

	if len(ledger.rolledBack) != 2 {
		t.Fatalf("sweep stopped early: %d rollbacks", len(ledger.rolledBack))
	}
}

func TestReconcilerListerFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	ledger := &fakeLedger{}

	r := NewReconciler(lister, ledger, time.Minute, 15*time.Minute)
	r.sweep(context.Background())

	if len(ledger.rolledBack) != 0 {
		t.Fatalf("rollbacks issued after lister failure: %d", len(ledger.rolledBack))
	}
}
