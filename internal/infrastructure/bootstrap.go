package infrastructure

import (
	"context"

	"payhold/internal/config"
	"payhold/internal/orchestrator"
	"payhold/internal/service"
	"payhold/internal/store"
	transportGRPC "payhold/internal/transport/grpc"
	transportHTTP "payhold/internal/transport/http"
	transportNATS "payhold/internal/transport/nats"
	"payhold/internal/worker"
)

// BootstrapLedger wires the ledger binary: Postgres store, optional NATS
// bus, gRPC server, reconciler and ops sidecar. Returns the App and a
// cleanup function.
func BootstrapLedger(ctx context.Context) (*App, func(), error) {
	cfg, err := config.NewLedger()
	if err != nil {
		return nil, nil, err
	}

	pool, err := connectPostgres(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()
	cleanupFns = append(cleanupFns, pool.Close)

	var bus service.MessageBus = service.NopBus{}
	if cfg.BusProvider == "nats" {
		nc, err := connectNats(ctx, cfg.NatsAddr())
		if err != nil {
			return nil, runCleanup(cleanupFns), err
		}
		bus = transportNATS.NewBus(nc)
		cleanupFns = append(cleanupFns, nc.Close)
	}

	st := store.New(pool)
	svc := service.NewLedger(st, bus)

	servers := []Server{
		transportGRPC.NewLedgerServer(cfg.GRPCAddr(), svc),
		transportHTTP.NewServer(cfg.MetricsAddr(), svc),
		worker.NewReconciler(st, svc, cfg.ReconcilerInterval, cfg.ReconcilerMaxAge),
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// BootstrapOrchestrator wires the orchestrator binary: ledger client,
// idempotency cache provider, optional cache primer, gRPC server and ops
// sidecar.
func BootstrapOrchestrator(ctx context.Context) (*App, func(), error) {
	cfg, err := config.NewOrchestrator()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	ledger, closeConn, err := transportGRPC.DialLedger(cfg.LedgerAddr)
	if err != nil {
		return nil, nil, err
	}
	cleanupFns = append(cleanupFns, closeConn)

	var cache orchestrator.Cache
	switch cfg.CacheProvider {
	case "redis":
		rdb, err := connectRedis(ctx, cfg.RedisAddr())
		if err != nil {
			return nil, runCleanup(cleanupFns), err
		}
		cleanupFns = append(cleanupFns, func() { _ = rdb.Close() })
		cache = orchestrator.NewRedisCache(rdb, cfg.CacheTTL)
	default:
		cache = orchestrator.NewMemoryCache(cfg.CacheSize, cfg.CacheTTL)
	}

	orch := orchestrator.New(ledger, cache)

	servers := []Server{
		transportGRPC.NewPaymentsServer(cfg.GRPCAddr(), orch),
		transportHTTP.NewServer(cfg.MetricsAddr(), nil),
	}

	if cfg.BusProvider == "nats" {
		nc, err := connectNats(ctx, cfg.NatsAddr())
		if err != nil {
			return nil, runCleanup(cleanupFns), err
		}
		cleanupFns = append(cleanupFns, nc.Close)
		servers = append(servers, worker.NewCachePrimer(cache, nc))
	}

	return NewApp(servers), runCleanup(cleanupFns), nil
}

// runCleanup returns a single function that calls all cleanup functions in
// reverse order.
func runCleanup(fns []func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
	}
}
