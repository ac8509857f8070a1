package grpc

import (
	"errors"

	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrInvalidSessionID),
		errors.Is(err, e.ErrInvalidSortOption),
		errors.Is(err, e.ErrInvalidID),
		errors.Is(err, e.ErrStatusBadRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrProductNotFound),
		errors.Is(err, e.ErrCategoryNotFound),
		errors.Is(err, e.ErrOrderNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrEmptyCart), errors.Is(err, e.ErrOrderAlreadyPaid):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, e.ErrCartConflict):
		return status.Error(codes.Aborted, e.ErrCartConflict.Error())
	case errors.Is(err, e.ErrPaymentUnavailable):
		return status.Error(codes.Unavailable, e.ErrPaymentUnavailable.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}
