package service

// MessageBus publishes settlement events to downstream consumers. The
// ledger treats publishing as fire-and-forget: the transactional tables are
// the source of truth and a lost event only costs someone a cache miss.
type MessageBus interface {
	Publish(subject string, data []byte) error
}

// NopBus is used when no broker is configured.
type NopBus struct{}

func (NopBus) Publish(string, []byte) error { return nil }
