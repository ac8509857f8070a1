package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки хранилищ
	ErrCartConflict = fmt.Errorf("cart was modified concurrently")
	ErrCacheMiss    = fmt.Errorf("cache miss")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrCategoryNameRequired = fmt.Errorf("category name is required")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrInvalidSessionID     = fmt.Errorf("invalid cart session id")
	ErrInvalidSortOption    = fmt.Errorf("invalid sort option")
	ErrInvalidBody          = fmt.Errorf("invalid request body")

	// 404 Not Found
	ErrProductNotFound  = fmt.Errorf("product not found")
	ErrCategoryNotFound = fmt.Errorf("category not found")
	ErrOrderNotFound    = fmt.Errorf("order not found")
	ErrSettingsNotFound = fmt.Errorf("store settings not found")

	// 409 Conflict
	ErrEmptyCart        = fmt.Errorf("cart is empty")
	ErrOrderAlreadyPaid = fmt.Errorf("order is already paid")

	// 502 Bad Gateway
	ErrPaymentUnavailable = fmt.Errorf("payment gateway unavailable")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
