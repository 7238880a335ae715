package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"payhold/internal/pb"
)

// DialLedger connects a ledger client to addr and returns it with a
// cleanup function.
func DialLedger(addr string) (pb.LedgerClient, func(), error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = conn.Close() }
	return pb.NewLedgerClient(conn), cleanup, nil
}
