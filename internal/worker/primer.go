package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"payhold/internal/model"
	"payhold/internal/orchestrator"
	"payhold/internal/service"
)

// CachePrimer feeds settlement events into the idempotency cache so a
// retry landing on any orchestrator replica fast-paths without touching
// the ledger. Event loss is harmless; the ledger's durable fences stay
// authoritative.
type CachePrimer struct {
	cache    orchestrator.Cache
	natsConn *nats.Conn
}

func NewCachePrimer(cache orchestrator.Cache, nc *nats.Conn) *CachePrimer {
	return &CachePrimer{cache: cache, natsConn: nc}
}

// Start subscribes to settlement events and blocks until ctx is cancelled.
func (w *CachePrimer) Start(ctx context.Context) error {
	// QueueSubscribe spreads events across replicas; with a shared Redis
	// cache one delivery primes them all.
	sub, err := w.natsConn.QueueSubscribe(service.SubjectSettlements, "orchestrator_cache", func(m *nats.Msg) {
		w.handle(ctx, m.Data)
	})
	if err != nil {
		return err
	}

	slog.Info("settlement cache primer is running")

	<-ctx.Done()

	slog.Info("cache primer shutting down, draining subscription")
	return sub.Drain()
}

func (w *CachePrimer) Stop(ctx context.Context) error {
	return nil
}

func (w *CachePrimer) handle(ctx context.Context, data []byte) {
	var event model.SettlementEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("primer: failed to unmarshal settlement event", "error", err)
		return
	}
	if event.IdempotencyKey == "" {
		return
	}

	entry := orchestrator.Entry{ReservationID: event.ReservationID}
	switch event.Outcome {
	case model.OutcomeSuccess:
		entry.Status = model.SettleSuccess
		entry.Message = "committed"
	case model.OutcomeFailed:
		entry.Status = model.SettleFailed
		entry.Message = "rolled_back"
	default:
		return
	}

	w.cache.Put(ctx, event.IdempotencyKey, entry)
}
