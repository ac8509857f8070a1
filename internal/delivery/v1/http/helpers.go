package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/lignum-storefront/internal/infrastructure"
	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ProductMetadata struct {
	Name          string
	Description   string
	CategoryName  string
	Price         decimal.Decimal
	IsNew         bool
	StockQuantity *int32
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

var (
	badRequestErrors = []error{
		e.ErrStatusBadRequest,
		e.ErrExpectedMultipart,
		e.ErrMissingFields,
		e.ErrInvalidPrice,
		e.ErrPricePrecision,
		e.ErrTooManyImages,
		e.ErrNoImages,
		e.ErrProductNameRequired,
		e.ErrCategoryNameRequired,
		e.ErrInvalidID,
		e.ErrInvalidSessionID,
		e.ErrInvalidSortOption,
		e.ErrInvalidBody,
	}
	notFoundErrors = []error{
		e.ErrProductNotFound,
		e.ErrCategoryNotFound,
		e.ErrOrderNotFound,
		e.ErrSettingsNotFound,
	}
	conflictErrors = []error{
		e.ErrEmptyCart,
		e.ErrOrderAlreadyPaid,
		e.ErrCartConflict,
	}
)

func ToHTTPResponse(err error) (int, string) {
	if target, ok := matchAny(err, badRequestErrors); ok {
		return http.StatusBadRequest, target.Error()
	}
	if target, ok := matchAny(err, notFoundErrors); ok {
		return http.StatusNotFound, target.Error()
	}
	if target, ok := matchAny(err, conflictErrors); ok {
		return http.StatusConflict, target.Error()
	}

	switch {
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrPaymentUnavailable):
		return http.StatusBadGateway, e.ErrPaymentUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func matchAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidBody)
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.Wrap(name, e.ErrInvalidID)
	}
	return id, nil
}

// parsePrice разбирает цену вида "599.99" или "600".
// Отклоняет отрицательные значения, больше двух знаков после точки и суммы выше 10^9.
func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, e.ErrMissingFields
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.GreaterThan(decimal.NewFromInt(1_000_000_000)) {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, e.ErrPricePrecision
	}

	return d, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseProductForm(r *http.Request) (*ProductMetadata, error) {
	name := r.FormValue("name")
	category := r.FormValue("category")
	priceStr := r.FormValue("price")

	if name == "" || category == "" || priceStr == "" {
		return nil, e.Wrap(fmt.Sprintf("name: %s, category: %s, price: %s", name, category, priceStr), e.ErrMissingFields)
	}

	price, err := parsePrice(priceStr)
	if err != nil {
		return nil, err
	}

	meta := &ProductMetadata{
		Name:         name,
		Description:  r.FormValue("description"),
		CategoryName: category,
		Price:        price,
		IsNew:        r.FormValue("is_new") == "true",
	}

	if stock := r.FormValue("stock_quantity"); stock != "" {
		v, err := strconv.ParseInt(stock, 10, 32)
		if err != nil || v < 0 {
			return nil, e.Wrap("stock_quantity", e.ErrStatusBadRequest)
		}
		q := int32(v)
		meta.StockQuantity = &q
	}

	return meta, nil
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	const (
		maxImageCount = 10
		maxFileSize   = 15 << 20
	)

	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	if _, err := infrastructure.GetExtensionFromMIME(mimeType); err != nil {
		return nil, "", e.Wrap(fh.Filename, err)
	}
	return data, mimeType, nil
}
