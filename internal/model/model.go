package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle of a funds hold. PENDING is the only
// non-terminal state; COMMITTED and ROLLEDBACK admit no further transitions.
type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "PENDING"
	ReservationCommitted  ReservationStatus = "COMMITTED"
	ReservationRolledBack ReservationStatus = "ROLLEDBACK"
)

// Outcome is the terminal result recorded in the settlement log.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeFailed  Outcome = "FAILED"
)

// ReserveStatus is the closed set of results a ReserveFunds call can produce.
type ReserveStatus string

const (
	ReserveOK           ReserveStatus = "OK"
	ReserveInsufficient ReserveStatus = "INSUFFICIENT"
	ReserveDuplicate    ReserveStatus = "DUPLICATE"
)

// FinalizeStatus is the closed set of results for commit and rollback.
type FinalizeStatus string

const (
	FinalizeOK        FinalizeStatus = "OK"
	FinalizeReplay    FinalizeStatus = "REPLAY_OK"
	FinalizeNotFound  FinalizeStatus = "NOT_FOUND"
	FinalizeBadStatus FinalizeStatus = "BAD_STATUS"
)

// SettleStatus is the orchestrator-level outcome of a LogAndSettle saga.
type SettleStatus string

const (
	SettleSuccess SettleStatus = "SUCCESS"
	SettleReplay  SettleStatus = "SUCCESS_REPLAY"
	SettleFailed  SettleStatus = "FAILED"
)

var ErrInvalidInput = errors.New("invalid input")

// ReserveParams carries a validated ReserveFunds request into the store.
type ReserveParams struct {
	IdempotencyKey string
	SenderID       string
	ReceiverID     string
	Amount         int64
	Currency       string
	CreatedAt      string
}

// Validate rejects a request before any transaction is opened.
func (p ReserveParams) Validate() error {
	if p.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotency key is required", ErrInvalidInput)
	}
	if p.SenderID == "" || p.ReceiverID == "" {
		return fmt.Errorf("%w: sender and receiver are required", ErrInvalidInput)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	return nil
}

// ReserveResult is the tagged outcome of ReserveFunds. ReservationID is set
// for OK and DUPLICATE; CurrentBalance always reflects the sender's balance
// as observed inside the transaction.
type ReserveResult struct {
	Status         ReserveStatus
	ReservationID  uuid.UUID
	CurrentBalance int64
}

// FinalizeResult is the tagged outcome of CommitReservation and
// RollbackReservation. The reservation fields are populated on OK so the
// caller can emit a settlement event without a second read.
type FinalizeResult struct {
	Status         FinalizeStatus
	IdempotencyKey string
	SenderID       string
	ReceiverID     string
	Amount         int64
	Currency       string
}

// BalanceResult answers a CheckBalance query.
type BalanceResult struct {
	Sufficient     bool
	CurrentBalance int64
}

// SettlementEvent is published on the bus after a commit or rollback
// transaction lands. Consumers prime caches from it; losing one only costs
// a fast path, never correctness.
type SettlementEvent struct {
	IdempotencyKey string    `json:"idempotency_key"`
	ReservationID  string    `json:"reservation_id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	Outcome        Outcome   `json:"outcome"`
	RecordedAt     time.Time `json:"recorded_at"`
}
