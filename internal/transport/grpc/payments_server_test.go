package grpc

import (
	"context"
	"testing"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"payhold/internal/orchestrator"
	"payhold/internal/pb"
)

type mockLedgerClient struct {
	lastReserve *pb.ReserveFundsRequest
}

func (m *mockLedgerClient) ReserveFunds(ctx context.Context, in *pb.ReserveFundsRequest, opts ...grpclib.CallOption) (*pb.ReserveFundsResponse, error) {
	m.lastReserve = in
	return &pb.ReserveFundsResponse{Status: pb.TxStatusOK, ReservationID: "rid-1"}, nil
}

func (m *mockLedgerClient) CommitReservation(ctx context.Context, in *pb.CommitReservationRequest, opts ...grpclib.CallOption) (*pb.CommitReservationResponse, error) {
	return &pb.CommitReservationResponse{Status: pb.TxStatusOK}, nil
}

func (m *mockLedgerClient) RollbackReservation(ctx context.Context, in *pb.RollbackReservationRequest, opts ...grpclib.CallOption) (*pb.RollbackReservationResponse, error) {
	return &pb.RollbackReservationResponse{Status: pb.TxStatusOK}, nil
}

func (m *mockLedgerClient) CheckBalance(ctx context.Context, in *pb.CheckBalanceRequest, opts ...grpclib.CallOption) (*pb.CheckBalanceResponse, error) {
	return &pb.CheckBalanceResponse{}, nil
}

func newPaymentsServer(client *mockLedgerClient) *PaymentsServer {
	cache := orchestrator.NewMemoryCache(100, time.Minute)
	return NewPaymentsServer(":0", orchestrator.New(client, cache))
}

func TestLogAndSettleBodyKeyWins(t *testing.T) {
	client := &mockLedgerClient{}
	srv := newPaymentsServer(client)

	ctx := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(metadataKey, "meta-key"))

	resp, err := srv.LogAndSettle(ctx, &pb.LogAndSettleRequest{
		IdempotencyKey: "body-key",
		SenderID:       "acct-000001",
		ReceiverID:     "acct-000002",
		Amount:         100,
		Currency:       "EUR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != pb.SettleStatusSuccess {
		t.Fatalf("unexpected status %s", resp.Status)
	}
	if client.lastReserve.IdempotencyKey != "body-key" {
		t.Fatalf("body key lost, reserve used %q", client.lastReserve.IdempotencyKey)
	}
}

func TestLogAndSettleMetadataFallback(t *testing.T) {
	client := &mockLedgerClient{}
	srv := newPaymentsServer(client)

	ctx := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(metadataKey, "meta-key"))

	_, err := srv.LogAndSettle(ctx, &pb.LogAndSettleRequest{
		SenderID:   "acct-000001",
		ReceiverID: "acct-000002",
		Amount:     100,
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastReserve.IdempotencyKey != "meta-key" {
		t.Fatalf("metadata key not picked up, reserve used %q", client.lastReserve.IdempotencyKey)
	}
}

func TestLogAndSettleNoKeyMintsOne(t *testing.T) {
	client := &mockLedgerClient{}
	srv := newPaymentsServer(client)

	resp, err := srv.LogAndSettle(context.Background(), &pb.LogAndSettleRequest{
		SenderID:   "acct-000001",
		ReceiverID: "acct-000002",
		Amount:     100,
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != pb.SettleStatusSuccess {
		t.Fatalf("unexpected status %s", resp.Status)
	}
	if client.lastReserve.IdempotencyKey == "" {
		t.Fatal("no key minted for a keyless request")
	}
}
