package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/lignum-storefront/internal/cfg"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/jitter"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// InitiatePaymentMethod полный путь метода платёжного сервиса.
const InitiatePaymentMethod = "/payments.v1.PaymentService/InitiatePayment"

// Gateway gRPC-клиент внешнего платёжного сервиса.
// Запрос и ответ передаются как google.protobuf.Struct.
type Gateway struct {
	conn   *grpc.ClientConn
	cfg    *cfg.PaymentCfg
	logger logger.Logger
	policy jitter.Policy
}

func NewGateway(cfg *cfg.PaymentCfg, logger logger.Logger, opts ...grpc.DialOption) (*Gateway, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Gateway{
		conn:   conn,
		cfg:    cfg,
		logger: logger,
		policy: jitter.Policy{
			Attempts: max(1, cfg.MaxRetries+1),
			Base:     100 * time.Millisecond,
			Max:      2 * time.Second,
		},
	}, nil
}

// InitiatePayment создаёт платёжную сессию. Сумма уходит в шлюз без изменений.
// Ключ идемпотентности позволяет безопасно повторять вызов при недоступности шлюза.
func (g *Gateway) InitiatePayment(ctx context.Context, req *usecase.InitiatePaymentReq) (*usecase.PaymentSession, error) {
	const op = "Gateway.InitiatePayment"

	in, err := structpb.NewStruct(map[string]any{
		"order_id":        fmt.Sprintf("%d", req.OrderID),
		"amount":          req.Amount.String(),
		"currency":        req.Currency,
		"idempotency_key": req.IdempotencyKey,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	out := &structpb.Struct{}
	err = jitter.Retry(ctx, g.policy, isRetryable, func(attempt int) error {
		callCtx, cancel := g.callContext(ctx)
		defer cancel()

		if attempt > 0 {
			g.logger.Warnf("%s: retry %d for order %d", op, attempt, req.OrderID)
		}
		return g.conn.Invoke(callCtx, InitiatePaymentMethod, in, out)
	})
	if err != nil {
		if isRetryable(err) || ctx.Err() != nil {
			return nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrPaymentUnavailable, err))
		}
		return nil, e.Wrap(op, err)
	}

	fields := out.GetFields()
	session := &usecase.PaymentSession{
		ID:          fields["payment_session_id"].GetStringValue(),
		RedirectURL: fields["redirect_url"].GetStringValue(),
	}
	if session.ID == "" {
		return nil, e.Wrap(op, fmt.Errorf("%w: empty payment session id", e.ErrPaymentUnavailable))
	}

	return session, nil
}

func (g *Gateway) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.cfg.Timeout)
}

func (g *Gateway) Close() error {
	return g.conn.Close()
}

func isRetryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
		return true
	default:
		return false
	}
}
