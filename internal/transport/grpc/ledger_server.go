package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"payhold/internal/metrics"
	"payhold/internal/model"
	"payhold/internal/pb"
	"payhold/internal/service"
	"payhold/internal/store"
)

// LedgerServer exposes the ledger operations over gRPC. Business outcomes
// travel in the response status field; gRPC error codes are reserved for
// bad input and infrastructure failure, with storage details kept out of
// the wire message.
type LedgerServer struct {
	pb.UnimplementedLedgerServer
	svc  service.Ledger
	srv  *grpc.Server
	addr string
}

func NewLedgerServer(addr string, svc service.Ledger) *LedgerServer {
	s := &LedgerServer{svc: svc, addr: addr, srv: grpc.NewServer()}
	pb.RegisterLedgerServer(s.srv, s)
	return s
}

func (s *LedgerServer) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.srv.Serve(lis)
}

func (s *LedgerServer) Stop(ctx context.Context) error {
	s.srv.GracefulStop()
	return nil
}

func (s *LedgerServer) ReserveFunds(ctx context.Context, req *pb.ReserveFundsRequest) (*pb.ReserveFundsResponse, error) {
	start := time.Now()

	res, err := s.svc.ReserveFunds(ctx, model.ReserveParams{
		IdempotencyKey: req.IdempotencyKey,
		SenderID:       req.SenderID,
		ReceiverID:     req.ReceiverID,
		Amount:         req.Amount,
		Currency:       req.CurrencyInput,
		CreatedAt:      req.CreatedAt,
	})
	if err != nil {
		return nil, s.mapError("ReserveFunds", err)
	}

	resp := &pb.ReserveFundsResponse{
		CurrentBalance: res.CurrentBalance,
	}
	switch res.Status {
	case model.ReserveOK:
		resp.Status = pb.TxStatusOK
		resp.ReservationID = res.ReservationID.String()
		resp.Message = "ok"
	case model.ReserveInsufficient:
		resp.Status = pb.TxStatusInsufficient
		resp.Message = "insufficient"
	case model.ReserveDuplicate:
		resp.Status = pb.TxStatusDuplicate
		resp.ReservationID = res.ReservationID.String()
		resp.Message = "duplicate"
	}

	metrics.IncRequest("ledger", "ReserveFunds", resp.Status)
	metrics.ObserveDuration("ledger", "ReserveFunds", time.Since(start).Seconds())
	return resp, nil
}

func (s *LedgerServer) CommitReservation(ctx context.Context, req *pb.CommitReservationRequest) (*pb.CommitReservationResponse, error) {
	start := time.Now()

	rid, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad_reservation_id")
	}

	res, err := s.svc.CommitReservation(ctx, rid, req.IdempotencyKey)
	if err != nil {
		return nil, s.mapError("CommitReservation", err)
	}

	resp := &pb.CommitReservationResponse{}
	switch res.Status {
	case model.FinalizeOK:
		resp.Status = pb.TxStatusOK
		resp.Message = "ok"
	case model.FinalizeReplay:
		// The settlement already happened; report success without
		// re-crediting.
		resp.Status = pb.TxStatusOK
		resp.Message = "replay_ok"
	case model.FinalizeNotFound:
		resp.Status = pb.TxStatusNotFound
		resp.Message = "not_found"
	case model.FinalizeBadStatus:
		resp.Status = pb.TxStatusBadStatus
		resp.Message = "bad_status"
	}

	metrics.IncRequest("ledger", "CommitReservation", resp.Status)
	metrics.ObserveDuration("ledger", "CommitReservation", time.Since(start).Seconds())
	return resp, nil
}

func (s *LedgerServer) RollbackReservation(ctx context.Context, req *pb.RollbackReservationRequest) (*pb.RollbackReservationResponse, error) {
	start := time.Now()

	rid, err := uuid.Parse(req.ReservationID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "bad_reservation_id")
	}

	res, err := s.svc.RollbackReservation(ctx, rid, req.Reason)
	if err != nil {
		return nil, s.mapError("RollbackReservation", err)
	}

	resp := &pb.RollbackReservationResponse{}
	switch res.Status {
	case model.FinalizeOK:
		resp.Status = pb.TxStatusOK
		resp.Message = "ok"
	case model.FinalizeNotFound:
		resp.Status = pb.TxStatusNotFound
		resp.Message = "not_found"
	default:
		resp.Status = pb.TxStatusBadStatus
		resp.Message = "bad_status"
	}

	metrics.IncRequest("ledger", "RollbackReservation", resp.Status)
	metrics.ObserveDuration("ledger", "RollbackReservation", time.Since(start).Seconds())
	return resp, nil
}

func (s *LedgerServer) CheckBalance(ctx context.Context, req *pb.CheckBalanceRequest) (*pb.CheckBalanceResponse, error) {
	if req.AccountID == "" {
		return nil, status.Error(codes.InvalidArgument, "account_id is required")
	}
	res, err := s.svc.CheckBalance(ctx, req.AccountID, req.Amount)
	if err != nil {
		return nil, s.mapError("CheckBalance", err)
	}
	return &pb.CheckBalanceResponse{
		Sufficient:     res.Sufficient,
		CurrentBalance: res.CurrentBalance,
	}, nil
}

func (s *LedgerServer) mapError(method string, err error) error {
	metrics.IncRequest("ledger", method, "ERROR")
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, store.ErrAccountNotFound):
		return status.Error(codes.NotFound, "account_not_found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
