package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"payhold/internal/metrics"
	"payhold/internal/orchestrator"
	"payhold/internal/pb"
)

// metadataKey is the transport-level fallback for the idempotency key; a
// non-empty body field takes precedence.
const metadataKey = "idempotency-key"

// PaymentsServer exposes LogAndSettle over gRPC and delegates the saga to
// the orchestrator service.
type PaymentsServer struct {
	pb.UnimplementedPaymentsServer
	orch *orchestrator.Service
	srv  *grpc.Server
	addr string
}

func NewPaymentsServer(addr string, orch *orchestrator.Service) *PaymentsServer {
	s := &PaymentsServer{orch: orch, addr: addr, srv: grpc.NewServer()}
	pb.RegisterPaymentsServer(s.srv, s)
	return s
}

func (s *PaymentsServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.srv.Serve(lis)
}

func (s *PaymentsServer) Stop(ctx context.Context) error {
	s.srv.GracefulStop()
	return nil
}

func (s *PaymentsServer) LogAndSettle(ctx context.Context, req *pb.LogAndSettleRequest) (*pb.LogAndSettleResponse, error) {
	start := time.Now()

	key := req.IdempotencyKey
	if key == "" {
		key = keyFromMetadata(ctx)
	}

	res, err := s.orch.Settle(ctx, orchestrator.SettleRequest{
		IdempotencyKey: key,
		SenderID:       req.SenderID,
		ReceiverID:     req.ReceiverID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		TxDate:         req.TxDate,
	})
	if err != nil {
		metrics.IncRequest("orchestrator", "LogAndSettle", "ERROR")
		return nil, status.Error(codes.Internal, "internal error")
	}

	metrics.IncRequest("orchestrator", "LogAndSettle", string(res.Status))
	metrics.ObserveDuration("orchestrator", "LogAndSettle", time.Since(start).Seconds())

	return &pb.LogAndSettleResponse{
		Status:        string(res.Status),
		Message:       res.Message,
		ReservationID: res.ReservationID,
	}, nil
}

func keyFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vals := md.Get(metadataKey); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
