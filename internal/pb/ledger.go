package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status values returned by the ledger service. Business outcomes travel in
// this field; gRPC error codes are reserved for validation and
// infrastructure failures.
const (
	TxStatusOK           = "OK"
	TxStatusInsufficient = "INSUFFICIENT"
	TxStatusDuplicate    = "DUPLICATE"
	TxStatusNotFound     = "NOT_FOUND"
	TxStatusBadStatus    = "BAD_STATUS"
)

type ReserveFundsRequest struct {
	IdempotencyKey string `protobuf:"bytes,1,opt,name=idempotency_key" json:"idempotency_key"`
	SenderID       string `protobuf:"bytes,2,opt,name=sender_id" json:"sender_id"`
	ReceiverID     string `protobuf:"bytes,3,opt,name=receiver_id" json:"receiver_id"`
	Amount         int64  `protobuf:"varint,4,opt,name=amount" json:"amount"`
	CurrencyInput  string `protobuf:"bytes,5,opt,name=currency_input" json:"currency_input"`
	CreatedAt      string `protobuf:"bytes,6,opt,name=created_at" json:"created_at"`
}

type ReserveFundsResponse struct {
	Status         string `protobuf:"bytes,1,opt,name=status" json:"status"`
	ReservationID  string `protobuf:"bytes,2,opt,name=reservation_id" json:"reservation_id"`
	CurrentBalance int64  `protobuf:"varint,3,opt,name=current_balance" json:"current_balance"`
	Message        string `protobuf:"bytes,4,opt,name=message" json:"message"`
}

type CommitReservationRequest struct {
	ReservationID  string `protobuf:"bytes,1,opt,name=reservation_id" json:"reservation_id"`
	IdempotencyKey string `protobuf:"bytes,2,opt,name=idempotency_key" json:"idempotency_key"`
}

type CommitReservationResponse struct {
	Status  string `protobuf:"bytes,1,opt,name=status" json:"status"`
	Message string `protobuf:"bytes,2,opt,name=message" json:"message"`
}

type RollbackReservationRequest struct {
	ReservationID string `protobuf:"bytes,1,opt,name=reservation_id" json:"reservation_id"`
	Reason        string `protobuf:"bytes,2,opt,name=reason" json:"reason"`
}

type RollbackReservationResponse struct {
	Status  string `protobuf:"bytes,1,opt,name=status" json:"status"`
	Message string `protobuf:"bytes,2,opt,name=message" json:"message"`
}

type CheckBalanceRequest struct {
	AccountID string `protobuf:"bytes,1,opt,name=account_id" json:"account_id"`
	Amount    int64  `protobuf:"varint,2,opt,name=amount" json:"amount"`
}

type CheckBalanceResponse struct {
	Sufficient     bool  `protobuf:"varint,1,opt,name=sufficient" json:"sufficient"`
	CurrentBalance int64 `protobuf:"varint,2,opt,name=current_balance" json:"current_balance"`
}

const (
	Ledger_ReserveFunds_FullMethodName        = "/payhold.v1.Ledger/ReserveFunds"
	Ledger_CommitReservation_FullMethodName   = "/payhold.v1.Ledger/CommitReservation"
	Ledger_RollbackReservation_FullMethodName = "/payhold.v1.Ledger/RollbackReservation"
	Ledger_CheckBalance_FullMethodName        = "/payhold.v1.Ledger/CheckBalance"
)

// LedgerClient is the client API for the Ledger service.
type LedgerClient interface {
	ReserveFunds(ctx context.Context, in *ReserveFundsRequest, opts ...grpc.CallOption) (*ReserveFundsResponse, error)
	CommitReservation(ctx context.Context, in *CommitReservationRequest, opts ...grpc.CallOption) (*CommitReservationResponse, error)
	RollbackReservation(ctx context.Context, in *RollbackReservationRequest, opts ...grpc.CallOption) (*RollbackReservationResponse, error)
	CheckBalance(ctx context.Context, in *CheckBalanceRequest, opts ...grpc.CallOption) (*CheckBalanceResponse, error)
}

type ledgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient {
	return &ledgerClient{cc}
}

func (c *ledgerClient) ReserveFunds(ctx context.Context, in *ReserveFundsRequest, opts ...grpc.CallOption) (*ReserveFundsResponse, error) {
	out := new(ReserveFundsResponse)
	if err := c.cc.Invoke(ctx, Ledger_ReserveFunds_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) CommitReservation(ctx context.Context, in *CommitReservationRequest, opts ...grpc.CallOption) (*CommitReservationResponse, error) {
	out := new(CommitReservationResponse)
	if err := c.cc.Invoke(ctx, Ledger_CommitReservation_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) RollbackReservation(ctx context.Context, in *RollbackReservationRequest, opts ...grpc.CallOption) (*RollbackReservationResponse, error) {
	out := new(RollbackReservationResponse)
	if err := c.cc.Invoke(ctx, Ledger_RollbackReservation_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) CheckBalance(ctx context.Context, in *CheckBalanceRequest, opts ...grpc.CallOption) (*CheckBalanceResponse, error) {
	out := new(CheckBalanceResponse)
	if err := c.cc.Invoke(ctx, Ledger_CheckBalance_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// LedgerServer is the server API for the Ledger service. Implementations
// should embed UnimplementedLedgerServer for forward compatibility.
type LedgerServer interface {
	ReserveFunds(context.Context, *ReserveFundsRequest) (*ReserveFundsResponse, error)
	CommitReservation(context.Context, *CommitReservationRequest) (*CommitReservationResponse, error)
	RollbackReservation(context.Context, *RollbackReservationRequest) (*RollbackReservationResponse, error)
	CheckBalance(context.Context, *CheckBalanceRequest) (*CheckBalanceResponse, error)
}

type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) ReserveFunds(context.Context, *ReserveFundsRequest) (*ReserveFundsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReserveFunds not implemented")
}
func (UnimplementedLedgerServer) CommitReservation(context.Context, *CommitReservationRequest) (*CommitReservationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CommitReservation not implemented")
}
func (UnimplementedLedgerServer) RollbackReservation(context.Context, *RollbackReservationRequest) (*RollbackReservationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RollbackReservation not implemented")
}
func (UnimplementedLedgerServer) CheckBalance(context.Context, *CheckBalanceRequest) (*CheckBalanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckBalance not implemented")
}

func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

func _Ledger_ReserveFunds_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReserveFundsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).ReserveFunds(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_ReserveFunds_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).ReserveFunds(ctx, req.(*ReserveFundsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_CommitReservation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CommitReservationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).CommitReservation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_CommitReservation_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).CommitReservation(ctx, req.(*CommitReservationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_RollbackReservation_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RollbackReservationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).RollbackReservation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_RollbackReservation_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).RollbackReservation(ctx, req.(*RollbackReservationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_CheckBalance_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckBalanceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).CheckBalance(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_CheckBalance_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).CheckBalance(ctx, req.(*CheckBalanceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "payhold.v1.Ledger",
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ReserveFunds", Handler: _Ledger_ReserveFunds_Handler},
		{MethodName: "CommitReservation", Handler: _Ledger_CommitReservation_Handler},
		{MethodName: "RollbackReservation", Handler: _Ledger_RollbackReservation_Handler},
		{MethodName: "CheckBalance", Handler: _Ledger_CheckBalance_Handler},
	},
	Streams: []grpc.StreamDesc{},
}
