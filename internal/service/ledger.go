package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"payhold/internal/model"
)

// SubjectSettlements carries model.SettlementEvent payloads.
const SubjectSettlements = "settlements.recorded"

// Ledger defines the ledger-side business operations. Transports depend on
// this interface, not on the concrete store.
type Ledger interface {
	ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error)
	CommitReservation(ctx context.Context, reservationID uuid.UUID, idempotencyKey string) (*model.FinalizeResult, error)
	RollbackReservation(ctx context.Context, reservationID uuid.UUID, reason string) (*model.FinalizeResult, error)
	CheckBalance(ctx context.Context, accountID string, amount int64) (*model.BalanceResult, error)
}

// Store is the slice of the storage layer the ledger service needs.
type Store interface {
	ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error)
	CommitReservation(ctx context.Context, rid uuid.UUID, idemKey string) (*model.FinalizeResult, error)
	RollbackReservation(ctx context.Context, rid uuid.UUID) (*model.FinalizeResult, error)
	Balance(ctx context.Context, accountID string) (int64, error)
}

type ledger struct {
	store Store
	bus   MessageBus
}

func NewLedger(store Store, bus MessageBus) Ledger {
	if bus == nil {
		bus = NopBus{}
	}
	return &ledger{store: store, bus: bus}
}

func (l *ledger) ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error) {
	// Rejected before any transaction opens.
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return l.store.ReserveFunds(ctx, p)
}

func (l *ledger) CommitReservation(ctx context.Context, reservationID uuid.UUID, idempotencyKey string) (*model.FinalizeResult, error) {
	res, err := l.store.CommitReservation(ctx, reservationID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if res.Status == model.FinalizeOK {
		l.publishSettlement(idempotencyKey, reservationID, res, model.OutcomeSuccess)
	}
	return res, nil
}

func (l *ledger) RollbackReservation(ctx context.Context, reservationID uuid.UUID, reason string) (*model.FinalizeResult, error) {
	res, err := l.store.RollbackReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status == model.FinalizeOK {
		slog.Info("reservation rolled back",
			"reservation_id", reservationID,
			"reason", reason,
		)
		l.publishSettlement(res.IdempotencyKey, reservationID, res, model.OutcomeFailed)
	}
	return res, nil
}

func (l *ledger) CheckBalance(ctx context.Context, accountID string, amount int64) (*model.BalanceResult, error) {
	balance, err := l.store.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &model.BalanceResult{
		Sufficient:     balance >= amount,
		CurrentBalance: balance,
	}, nil
}

func (l *ledger) publishSettlement(key string, rid uuid.UUID, res *model.FinalizeResult, outcome model.Outcome) {
	event := model.SettlementEvent{
		IdempotencyKey: key,
		ReservationID:  rid.String(),
		SenderID:       res.SenderID,
		ReceiverID:     res.ReceiverID,
		Amount:         res.Amount,
		Currency:       res.Currency,
		Outcome:        outcome,
		RecordedAt:     time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshal settlement event", "error", err)
		return
	}
	if err := l.bus.Publish(SubjectSettlements, data); err != nil {
		slog.Error("publish settlement event",
			"reservation_id", rid,
			"error", err,
		)
	}
}
