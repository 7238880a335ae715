package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"payhold/internal/metrics"
	"payhold/internal/model"
	"payhold/internal/service"
)

// PendingLister finds reservations stuck in PENDING.
type PendingLister interface {
	StuckPending(ctx context.Context, maxAge time.Duration, limit int) ([]string, error)
}

// Reconciler sweeps reservations whose saga died between reserve and
// commit (orchestrator crash, failed compensation) and rolls them back
// through the ordinary transactional path. Racing a late commit is safe:
// whichever side loses sees BAD_STATUS and walks away.
type Reconciler struct {
	lister   PendingLister
	svc      service.Ledger
	interval time.Duration
	maxAge   time.Duration
	batch    int
}

func NewReconciler(lister PendingLister, svc service.Ledger, interval, maxAge time.Duration) *Reconciler {
	return &Reconciler{
		lister:   lister,
		svc:      svc,
		interval: interval,
		maxAge:   maxAge,
		batch:    100,
	}
}

// Start sweeps on a ticker until ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("reservation reconciler is running",
		"interval", r.interval,
		"max_age", r.maxAge,
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) Stop(ctx context.Context) error {
	return nil
}

func (r *Reconciler) sweep(ctx context.Context) {
	ids, err := r.lister.StuckPending(ctx, r.maxAge, r.batch)
	if err != nil {
		slog.Error("reconciler: list stuck reservations", "error", err)
		return
	}

	for _, id := range ids {
		rid, err := uuid.Parse(id)
		if err != nil {
			slog.Error("reconciler: bad reservation id", "reservation_id", id)
			continue
		}
		res, err := r.svc.RollbackReservation(ctx, rid, "reconciler_timeout")
		if err != nil {
			slog.Error("reconciler: rollback failed", "reservation_id", id, "error", err)
			continue
		}
		if res.Status == model.FinalizeOK {
			metrics.ReconciledTotal.Inc()
			slog.Info("reconciler: rolled back stuck reservation", "reservation_id", id)
		}
	}
}
