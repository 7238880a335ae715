package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"payhold/internal/model"
)

type mockStore struct {
	reserveRes  *model.ReserveResult
	reserveErr  error
	commitRes   *model.FinalizeResult
	commitErr   error
	rollbackRes *model.FinalizeResult
	rollbackErr error
	balance     int64
	balanceErr  error

	reserveCalls  int
	commitCalls   int
	rollbackCalls int
}

func (m *mockStore) ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error) {
	m.reserveCalls++
	return m.reserveRes, m.reserveErr
}

func (m *mockStore) CommitReservation(ctx context.Context, rid uuid.UUID, key string) (*model.FinalizeResult, error) {
	m.commitCalls++
	return m.commitRes, m.commitErr
}

func (m *mockStore) RollbackReservation(ctx context.Context, rid uuid.UUID) (*model.FinalizeResult, error) {
	m.rollbackCalls++
	return m.rollbackRes, m.rollbackErr
}

func (m *mockStore) Balance(ctx context.Context, accountID string) (int64, error) {
	return m.balance, m.balanceErr
}

type mockBus struct {
	published [][]byte
	subjects  []string
	err       error
}

func (m *mockBus) Publish(subject string, data []byte) error {
	m.subjects = append(m.subjects, subject)
	m.published = append(m.published, data)
	return m.err
}

func TestReserveFundsValidatesBeforeStore(t *testing.T) {
	st := &mockStore{}
	svc := NewLedger(st, nil)

	_, err := svc.ReserveFunds(context.Background(), model.ReserveParams{
		IdempotencyKey: "",
		SenderID:       "a",
		ReceiverID:     "b",
		Amount:         100,
	})
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if st.reserveCalls != 0 {
		t.Fatalf("store called %d times for invalid input", st.reserveCalls)
	}
}

func TestReserveFundsDelegates(t *testing.T) {
	want := &model.ReserveResult{Status: model.ReserveOK, ReservationID: uuid.New(), CurrentBalance: 900}
	st := &mockStore{reserveRes: want}
	svc := NewLedger(st, nil)

	got, err := svc.ReserveFunds(context.Background(), model.ReserveParams{
		IdempotencyKey: "k", SenderID: "a", ReceiverID: "b", Amount: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCommitPublishesSettlementEvent(t *testing.T) {
	rid := uuid.New()
	st := &mockStore{commitRes: &model.FinalizeResult{
		Status:     model.FinalizeOK,
		SenderID:   "a",
		ReceiverID: "b",
		Amount:     250,
		Currency:   "EUR",
	}}
	bus := &mockBus{}
	svc := NewLedger(st, bus)

	res, err := svc.CommitReservation(context.Background(), rid, "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.FinalizeOK {
		t.Fatalf("unexpected status %s", res.Status)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	if bus.subjects[0] != SubjectSettlements {
		t.Fatalf("unexpected subject %s", bus.subjects[0])
	}

	var event model.SettlementEvent
	if err := json.Unmarshal(bus.published[0], &event); err != nil {
		t.Fatalf("bad event payload: %v", err)
	}
	if event.IdempotencyKey != "key-1" || event.ReservationID != rid.String() {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Outcome != model.OutcomeSuccess || event.Amount != 250 {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestCommitReplayDoesNotPublish(t *testing.T) {
	st := &mockStore{commitRes: &model.FinalizeResult{Status: model.FinalizeReplay}}
	bus := &mockBus{}
	svc := NewLedger(st, bus)

	res, err := svc.CommitReservation(context.Background(), uuid.New(), "key-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.FinalizeReplay {
		t.Fatalf("unexpected status %s", res.Status)
	}
	if len(bus.published) != 0 {
		t.Fatalf("replay published %d events", len(bus.published))
	}
}

func TestRollbackPublishesFailedOutcome(t *testing.T) {
	st := &mockStore{rollbackRes: &model.FinalizeResult{
		Status:         model.FinalizeOK,
		IdempotencyKey: "key-1",
		SenderID:       "a",
		ReceiverID:     "b",
		Amount:         100,
		Currency:       "EUR",
	}}
	bus := &mockBus{}
	svc := NewLedger(st, bus)

	res, err := svc.RollbackReservation(context.Background(), uuid.New(), "commit_failed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.FinalizeOK {
		t.Fatalf("unexpected status %s", res.Status)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}

	var event model.SettlementEvent
	if err := json.Unmarshal(bus.published[0], &event); err != nil {
		t.Fatalf("bad event payload: %v", err)
	}
	if event.Outcome != model.OutcomeFailed {
		t.Fatalf("unexpected outcome %s", event.Outcome)
	}
}

func TestRollbackNotFoundDoesNotPublish(t *testing.T) {
	st := &mockStore{rollbackRes: &model.FinalizeResult{Status: model.FinalizeNotFound}}
	bus := &mockBus{}
	svc := NewLedger(st, bus)

	res, err := svc.RollbackReservation(context.Background(), uuid.New(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.FinalizeNotFound {
		t.Fatalf("unexpected status %s", res.Status)
	}
	if len(bus.published) != 0 {
		t.Fatalf("not_found published %d events", len(bus.published))
	}
}

func TestCheckBalance(t *testing.T) {
	st := &mockStore{balance: 300}
	svc := NewLedger(st, nil)

	res, err := svc.CheckBalance(context.Background(), "acct-000001", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Sufficient || res.CurrentBalance != 300 {
		t.Fatalf("unexpected result %+v", res)
	}

	res, err = svc.CheckBalance(context.Background(), "acct-000001", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sufficient {
		t.Fatalf("300 reported sufficient for 500")
	}
}

func TestBusFailureDoesNotFailCommit(t *testing.T) {
	st := &mockStore{commitRes: &model.FinalizeResult{Status: model.FinalizeOK}}
	bus := &mockBus{err: errors.New("nats down")}
	svc := NewLedger(st, bus)

	res, err := svc.CommitReservation(context.Background(), uuid.New(), "key-1")
	if err != nil {
		t.Fatalf("bus failure surfaced as commit error: %v", err)
	}
	if res.Status != model.FinalizeOK {
		t.Fatalf("unexpected status %s", res.Status)
	}
}
