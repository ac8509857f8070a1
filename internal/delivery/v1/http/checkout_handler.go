package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	checkoutUsecase usecase.CheckoutUC
	logger          logger.Logger
}

func NewCheckoutHandler(checkoutUsecase usecase.CheckoutUC, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutUsecase: checkoutUsecase, logger: logger}
}

// checkout
//
//	@Summary		Оформление заказа
//	@Description	Создает заказ по корзине и платёжную сессию на сумму к оплате сейчас
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string			true	"ID сессии"
//	@Param			body		body		CheckoutRequest	true	"Данные покупателя"
//	@Success		201			{object}	CheckoutResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse	"Пустая корзина"
//	@Failure		502			{object}	ErrorResponse	"Платёжный шлюз недоступен"
//	@Router			/carts/{sessionID}/checkout [post]
func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.checkoutUsecase.Checkout(r.Context(), chi.URLParam(r, "sessionID"), &usecase.CheckoutReq{
		B2B:      req.B2B,
		Customer: toCustomer(req.Customer),
	})
	if err != nil {
		h.logger.Warnf("checkout failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CheckoutResponse{
		Order:            toOrderResponse(res.Order),
		PaymentSessionID: res.Payment.ID,
		RedirectURL:      res.Payment.RedirectURL,
	})
}

// confirmPayment
//
//	@Summary	Подтверждение оплаты
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		orderID	path		int						true	"ID заказа"
//	@Param		body	body		ConfirmPaymentRequest	true	"Платёж"
//	@Success	200		{object}	OrderResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse	"Заказ уже оплачен"
//	@Router		/orders/{orderID}/confirm-payment [post]
func (h *CheckoutHandler) confirmPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "orderID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req ConfirmPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.PaymentID == "" {
		WriteError(w, e.Wrap("payment_id", e.ErrMissingFields))
		return
	}

	order, err := h.checkoutUsecase.ConfirmPayment(r.Context(), &usecase.ConfirmPaymentReq{
		OrderID:   orderID,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		h.logger.Warnf("confirm payment failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order))
}

// listOrders
//
//	@Summary	Заказы
//	@Tags		admin
//	@Produce	json
//	@Param		limit	query		int	false	"Размер страницы, по умолчанию 50"
//	@Param		offset	query		int	false	"Смещение"
//	@Success	200		{array}		OrderResponse
//	@Router		/admin/orders [get]
func (h *CheckoutHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		WriteError(w, err)
		return
	}
	offset, err := intQuery(r, "offset")
	if err != nil {
		WriteError(w, err)
		return
	}

	orders, err := h.checkoutUsecase.ListOrders(r.Context(), &usecase.ListOrdersReq{Limit: limit, Offset: offset})
	if err != nil {
		h.logger.Errorf(err, "list orders failed")
		WriteError(w, err)
		return
	}

	res := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	WriteSuccess(w, http.StatusOK, res)
}

func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, e.Wrap(name, e.ErrStatusBadRequest)
	}
	return v, nil
}
