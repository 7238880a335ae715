package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"payhold/internal/metrics"
	"payhold/internal/model"
	"payhold/internal/pb"
)

// Service drives the reserve -> commit saga against the ledger, with a
// compensating rollback when the commit leg fails. It never retries
// internally; all retry safety comes from the idempotency keys fenced at
// the ledger.
type Service struct {
	ledger pb.LedgerClient
	cache  Cache
}

func New(ledger pb.LedgerClient, cache Cache) *Service {
	return &Service{ledger: ledger, cache: cache}
}

// SettleRequest is a LogAndSettle call with the idempotency key already
// resolved through the body-over-metadata precedence. An empty key means
// neither was supplied.
type SettleRequest struct {
	IdempotencyKey string
	SenderID       string
	ReceiverID     string
	Amount         int64
	Currency       string
	TxDate         string
}

// SettleResult is the terminal outcome of one saga run.
type SettleResult struct {
	Status        model.SettleStatus
	Message       string
	ReservationID string
}

// Settle runs the saga: resolve key, consult the cache, reserve, commit,
// compensate on failure. Business failures come back as a FAILED result;
// only infrastructure trouble surfaces as an error.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (*SettleResult, error) {
	key := req.IdempotencyKey
	if key == "" {
		// A freshly minted key cannot collide with any prior request, so
		// this call is a first attempt by construction.
		key = uuid.New().String()
	}

	if entry, ok := s.cache.Get(ctx, key); ok {
		metrics.CacheHits.Inc()
		return &SettleResult{
			Status:        model.SettleReplay,
			Message:       entry.Message,
			ReservationID: entry.ReservationID,
		}, nil
	}

	reserve, err := s.ledger.ReserveFunds(ctx, &pb.ReserveFundsRequest{
		IdempotencyKey: key,
		SenderID:       req.SenderID,
		ReceiverID:     req.ReceiverID,
		Amount:         req.Amount,
		CurrencyInput:  req.Currency,
		CreatedAt:      req.TxDate,
	})
	if err != nil {
		return nil, fmt.Errorf("reserve funds: %w", err)
	}

	switch reserve.Status {
	case pb.TxStatusInsufficient:
		res := &SettleResult{Status: model.SettleFailed, Message: "insufficient_funds"}
		s.put(ctx, key, res)
		return res, nil
	case pb.TxStatusDuplicate:
		// The reservation already exists from a prior attempt; its fate
		// belongs to the saga that created it. No new hold to clean up.
		res := &SettleResult{
			Status:        model.SettleReplay,
			Message:       "duplicate_idempotency_key",
			ReservationID: reserve.ReservationID,
		}
		s.put(ctx, key, res)
		return res, nil
	case pb.TxStatusOK:
	default:
		return nil, fmt.Errorf("reserve funds: unexpected status %q", reserve.Status)
	}

	commit, err := s.ledger.CommitReservation(ctx, &pb.CommitReservationRequest{
		ReservationID:  reserve.ReservationID,
		IdempotencyKey: key,
	})
	if err != nil || commit.Status != pb.TxStatusOK {
		s.compensate(ctx, reserve.ReservationID)
		if err != nil {
			slog.Error("commit failed", "reservation_id", reserve.ReservationID, "error", err)
		} else {
			slog.Error("commit rejected", "reservation_id", reserve.ReservationID, "status", commit.Status)
		}
		return &SettleResult{
			Status:        model.SettleFailed,
			Message:       "commit_failed",
			ReservationID: reserve.ReservationID,
		}, nil
	}

	res := &SettleResult{
		Status:        model.SettleSuccess,
		Message:       "committed",
		ReservationID: reserve.ReservationID,
	}
	s.put(ctx, key, res)
	return res, nil
}

// compensate issues a best-effort rollback of a hold whose commit leg
// failed. If this call fails too the reservation stays PENDING for the
// reconciler to pick up.
func (s *Service) compensate(ctx context.Context, reservationID string) {
	// Detached from the caller's deadline so a client timeout does not
	// strand the hold.
	ctx = context.WithoutCancel(ctx)
	_, err := s.ledger.RollbackReservation(ctx, &pb.RollbackReservationRequest{
		ReservationID: reservationID,
		Reason:        "commit_failed",
	})
	if err != nil {
		slog.Error("compensating rollback failed; reservation left pending",
			"reservation_id", reservationID,
			"error", err,
		)
	}
}

func (s *Service) put(ctx context.Context, key string, res *SettleResult) {
	s.cache.Put(ctx, key, Entry{
		Status:        res.Status,
		Message:       res.Message,
		ReservationID: res.ReservationID,
	})
}
