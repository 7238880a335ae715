package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"payhold/internal/model"
)

// reservationRow mirrors one reservations record as read under lock.
type reservationRow struct {
	ID             uuid.UUID
	IdempotencyKey string
	SenderID       string
	ReceiverID     string
	Amount         int64
	Currency       string
	Status         model.ReservationStatus
}

// lockReservation reads a reservation by id under FOR UPDATE. The second
// return value is false when no row exists.
func lockReservation(ctx context.Context, tx pgx.Tx, rid uuid.UUID) (*reservationRow, bool, error) {
	r := reservationRow{ID: rid}
	err := tx.QueryRow(ctx,
		`SELECT idempotency_key, sender_id, receiver_id, amount, currency, status
		 FROM reservations WHERE reservation_id = $1 FOR UPDATE`,
		rid,
	).Scan(&r.IdempotencyKey, &r.SenderID, &r.ReceiverID, &r.Amount, &r.Currency, &r.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lock reservation %s: %w", rid, err)
	}
	return &r, true, nil
}

// ReserveFunds places a hold: it debits the sender and records a PENDING
// reservation atomically. A repeated call with the same idempotency key
// returns DUPLICATE and mutates nothing; an insufficient balance returns
// INSUFFICIENT and the transaction commits empty.
//
// Lock order is duplicate row, then sender row; commit and rollback follow
// the same reservation-before-account order.
func (s *Store) ReserveFunds(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error) {
	var res model.ReserveResult

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var existing uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT reservation_id FROM reservations WHERE idempotency_key = $1 FOR UPDATE`,
			p.IdempotencyKey,
		).Scan(&existing)
		switch {
		case err == nil:
			balance, err := lockBalance(ctx, tx, p.SenderID)
			if err != nil {
				return err
			}
			res = model.ReserveResult{
				Status:         model.ReserveDuplicate,
				ReservationID:  existing,
				CurrentBalance: balance,
			}
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("lookup reservation by key: %w", err)
		}

		balance, err := lockBalance(ctx, tx, p.SenderID)
		if err != nil {
			return err
		}
		if balance < p.Amount {
			res = model.ReserveResult{
				Status:         model.ReserveInsufficient,
				CurrentBalance: balance,
			}
			return nil
		}

		if err := adjustBalance(ctx, tx, p.SenderID, -p.Amount); err != nil {
			return err
		}

		rid := uuid.New()
		_, err = tx.Exec(ctx,
			`INSERT INTO reservations
			   (reservation_id, idempotency_key, sender_id, receiver_id, amount, currency, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, 'PENDING', now(), now())`,
			rid, p.IdempotencyKey, p.SenderID, p.ReceiverID, p.Amount, p.Currency,
		)
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}

		res = model.ReserveResult{
			Status:         model.ReserveOK,
			ReservationID:  rid,
			CurrentBalance: balance - p.Amount,
		}
		return nil
	})

	// Two first attempts can race past the duplicate lookup; the loser hits
	// the unique index on idempotency_key and its debit is discarded with
	// the transaction. Report it as the duplicate it is.
	if err != nil && isUniqueViolation(err) {
		return s.duplicateOf(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Store) duplicateOf(ctx context.Context, p model.ReserveParams) (*model.ReserveResult, error) {
	var rid uuid.UUID
	err := s.pool.QueryRow(ctx,
		`SELECT reservation_id FROM reservations WHERE idempotency_key = $1`,
		p.IdempotencyKey,
	).Scan(&rid)
	if err != nil {
		return nil, fmt.Errorf("resolve duplicate reservation: %w", err)
	}
	balance, err := s.Balance(ctx, p.SenderID)
	if err != nil {
		return nil, err
	}
	return &model.ReserveResult{
		Status:         model.ReserveDuplicate,
		ReservationID:  rid,
		CurrentBalance: balance,
	}, nil
}

// transition parameterizes the shared finalize sequence: lock the
// reservation, require PENDING, credit one side, flip the status, append
// the settlement record.
type transition struct {
	target   model.ReservationStatus
	outcome  model.Outcome
	creditTo func(r *reservationRow) string
	auditKey func(r *reservationRow) string
}

func finalizeReservation(ctx context.Context, tx pgx.Tx, rid uuid.UUID, t transition) (*model.FinalizeResult, error) {
	r, found, err := lockReservation(ctx, tx, rid)
	if err != nil {
		return nil, err
	}
	if !found {
		return &model.FinalizeResult{Status: model.FinalizeNotFound}, nil
	}
	if r.Status != model.ReservationPending {
		return &model.FinalizeResult{Status: model.FinalizeBadStatus}, nil
	}

	account := t.creditTo(r)
	if _, err := lockBalance(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := adjustBalance(ctx, tx, account, r.Amount); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE reservations SET status = $1, updated_at = now() WHERE reservation_id = $2`,
		t.target, rid,
	)
	if err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	// The unique key makes a retried finalize after a partial failure a
	// no-op on the audit trail.
	_, err = tx.Exec(ctx,
		`INSERT INTO payments
		   (payment_id, idempotency_key, sender_id, receiver_id, currency, amount, outcome, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (idempotency_key) DO NOTHING`,
		uuid.New(), t.auditKey(r), r.SenderID, r.ReceiverID, r.Currency, r.Amount, t.outcome,
	)
	if err != nil {
		return nil, fmt.Errorf("insert settlement record: %w", err)
	}

	return &model.FinalizeResult{
		Status:         model.FinalizeOK,
		IdempotencyKey: r.IdempotencyKey,
		SenderID:       r.SenderID,
		ReceiverID:     r.ReceiverID,
		Amount:         r.Amount,
		Currency:       r.Currency,
	}, nil
}

// CommitReservation credits the receiver and finalizes the reservation as
// COMMITTED. A settlement record under idemKey fences replays: if one
// already exists the call reports REPLAY_OK and mutates nothing.
func (s *Store) CommitReservation(ctx context.Context, rid uuid.UUID, idemKey string) (*model.FinalizeResult, error) {
	var res *model.FinalizeResult

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var pid uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT payment_id FROM payments WHERE idempotency_key = $1 FOR UPDATE`,
			idemKey,
		).Scan(&pid)
		switch {
		case err == nil:
			res = &model.FinalizeResult{Status: model.FinalizeReplay}
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("lookup settlement by key: %w", err)
		}

		res, err = finalizeReservation(ctx, tx, rid, transition{
			target:   model.ReservationCommitted,
			outcome:  model.OutcomeSuccess,
			creditTo: func(r *reservationRow) string { return r.ReceiverID },
			auditKey: func(*reservationRow) string { return idemKey },
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RollbackReservation reverses the hold: the sender is credited back and
// the reservation finalizes as ROLLEDBACK. Only PENDING reservations
// qualify; committed money never comes back through this path. The audit
// key derives from the reservation id so a retried rollback cannot write a
// second FAILED record. The caller's reason is carried in logs, not here.
func (s *Store) RollbackReservation(ctx context.Context, rid uuid.UUID) (*model.FinalizeResult, error) {
	var res *model.FinalizeResult

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		res, err = finalizeReservation(ctx, tx, rid, transition{
			target:   model.ReservationRolledBack,
			outcome:  model.OutcomeFailed,
			creditTo: func(r *reservationRow) string { return r.SenderID },
			auditKey: func(r *reservationRow) string { return "rb-" + r.ID.String() },
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
