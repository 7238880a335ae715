package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Settlement status values returned by the payments orchestrator.
const (
	SettleStatusSuccess = "SUCCESS"
	SettleStatusReplay  = "SUCCESS_REPLAY"
	SettleStatusFailed  = "FAILED"
)

type LogAndSettleRequest struct {
	IdempotencyKey string `protobuf:"bytes,1,opt,name=idempotency_key" json:"idempotency_key"`
	SenderID       string `protobuf:"bytes,2,opt,name=sender_id" json:"sender_id"`
	ReceiverID     string `protobuf:"bytes,3,opt,name=receiver_id" json:"receiver_id"`
	Amount         int64  `protobuf:"varint,4,opt,name=amount" json:"amount"`
	Currency       string `protobuf:"bytes,5,opt,name=currency" json:"currency"`
	TxDate         string `protobuf:"bytes,6,opt,name=tx_date" json:"tx_date"`
}

type LogAndSettleResponse struct {
	Status        string `protobuf:"bytes,1,opt,name=status" json:"status"`
	Message       string `protobuf:"bytes,2,opt,name=message" json:"message"`
	ReservationID string `protobuf:"bytes,3,opt,name=reservation_id" json:"reservation_id"`
}

const Payments_LogAndSettle_FullMethodName = "/payhold.v1.Payments/LogAndSettle"

type PaymentsClient interface {
	LogAndSettle(ctx context.Context, in *LogAndSettleRequest, opts ...grpc.CallOption) (*LogAndSettleResponse, error)
}

type paymentsClient struct {
	cc grpc.ClientConnInterface
}

func NewPaymentsClient(cc grpc.ClientConnInterface) PaymentsClient {
	return &paymentsClient{cc}
}

func (c *paymentsClient) LogAndSettle(ctx context.Context, in *LogAndSettleRequest, opts ...grpc.CallOption) (*LogAndSettleResponse, error) {
	out := new(LogAndSettleResponse)
	if err := c.cc.Invoke(ctx, Payments_LogAndSettle_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

type PaymentsServer interface {
	LogAndSettle(context.Context, *LogAndSettleRequest) (*LogAndSettleResponse, error)
}

type UnimplementedPaymentsServer struct{}

func (UnimplementedPaymentsServer) LogAndSettle(context.Context, *LogAndSettleRequest) (*LogAndSettleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LogAndSettle not implemented")
}

func RegisterPaymentsServer(s grpc.ServiceRegistrar, srv PaymentsServer) {
	s.RegisterService(&Payments_ServiceDesc, srv)
}

func _Payments_LogAndSettle_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LogAndSettleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PaymentsServer).LogAndSettle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Payments_LogAndSettle_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PaymentsServer).LogAndSettle(ctx, req.(*LogAndSettleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var Payments_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "payhold.v1.Payments",
	HandlerType: (*PaymentsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "LogAndSettle", Handler: _Payments_LogAndSettle_Handler},
	},
	Streams: []grpc.StreamDesc{},
}
