package grpc

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/lignum-storefront/internal/domain"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const storefrontServiceName = "storefront.v1.StorefrontService"

// StorefrontServer описывает gRPC-API витрины для внутренних сервисов (чат-ассистент, поиск).
// Сообщения передаются как google.protobuf.Struct.
type StorefrontServer interface {
	ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetQuote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var StorefrontServiceDesc = grpc.ServiceDesc{
	ServiceName: storefrontServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListProducts",
			Handler:    unaryHandler("ListProducts", StorefrontServer.ListProducts),
		},
		{
			MethodName: "GetQuote",
			Handler:    unaryHandler("GetQuote", StorefrontServer.GetQuote),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}

func unaryHandler(
	method string,
	call func(StorefrontServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + storefrontServiceName + "/" + method

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &structpb.Struct{}
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StorefrontServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StorefrontServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type StorefrontService struct {
	catalogUC usecase.CatalogUC
	cartUC    usecase.CartUC
	logger    logger.Logger
}

func NewStorefrontService(catalogUC usecase.CatalogUC, cartUC usecase.CartUC, logger logger.Logger) *StorefrontService {
	return &StorefrontService{catalogUC: catalogUC, cartUC: cartUC, logger: logger}
}

func (s *StorefrontService) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.ListProducts"

	fields := req.GetFields()
	sort, ok := domain.ParseSortOption(fields["sort"].GetStringValue())
	if !ok {
		return nil, GRPCErrorResponse(e.Wrap(op, e.ErrInvalidSortOption))
	}

	products, err := s.catalogUC.ListProducts(ctx, domain.FilterState{
		Query:    fields["query"].GetStringValue(),
		Category: fields["category"].GetStringValue(),
		Sort:     sort,
	})
	if err != nil {
		s.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	list := make([]any, 0, len(products))
	for _, p := range products {
		list = append(list, toGRPCProduct(p))
	}

	return newStruct(op, map[string]any{"products": list})
}

func (s *StorefrontService) GetQuote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	const op = "grpc.GetQuote"

	fields := req.GetFields()
	res, err := s.cartUC.Quote(ctx, fields["session_id"].GetStringValue(), fields["b2b"].GetBoolValue())
	if err != nil {
		s.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return newStruct(op, map[string]any{
		"session_id":     res.SessionID,
		"b2b":            res.B2B,
		"currency":       res.Totals.Currency,
		"item_count":     res.Totals.ItemCount,
		"percentage":     res.Totals.Percentage,
		"subtotal":       res.Totals.Subtotal.String(),
		"amount_due_now": res.Totals.AmountDueNow.String(),
		"balance_due":    res.Totals.BalanceDue.String(),
	})
}

func toGRPCProduct(p domain.Product) map[string]any {
	return map[string]any{
		"id":          fmt.Sprintf("%d", p.ID),
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price.String(),
		"image_url":   p.ImageURL,
		"is_new":      p.IsNew,
	}
}

func newStruct(op string, m map[string]any) (*structpb.Struct, error) {
	res, err := structpb.NewStruct(m)
	if err != nil {
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}
	return res, nil
}
