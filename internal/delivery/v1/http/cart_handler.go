package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/e"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// newSession
//
//	@Summary	Новая сессия корзины
//	@Tags		cart
//	@Produce	json
//	@Success	201	{object}	SessionResponse
//	@Router		/carts [post]
func (h *CartHandler) newSession(w http.ResponseWriter, r *http.Request) {
	sid, err := h.cartUsecase.NewSession(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, SessionResponse{SessionID: sid})
}

// getCart
//
//	@Summary	Содержимое корзины
//	@Tags		cart
//	@Produce	json
//	@Param		sessionID	path		string	true	"ID сессии"
//	@Success	200			{object}	CartResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/carts/{sessionID} [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartUsecase.GetCart(r.Context(), chi.URLParam(r, "sessionID"))
	h.writeCart(w, view, err)
}

// addItem
//
//	@Summary		Добавить товар в корзину
//	@Description	Повторное добавление увеличивает количество на 1
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string			true	"ID сессии"
//	@Param			body		body		AddItemRequest	true	"Товар"
//	@Success		200			{object}	CartResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		409			{object}	ErrorResponse
//	@Router			/carts/{sessionID}/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.ProductID <= 0 {
		WriteError(w, e.Wrap("product_id", e.ErrInvalidID))
		return
	}

	view, err := h.cartUsecase.AddItem(r.Context(), chi.URLParam(r, "sessionID"), req.ProductID)
	h.writeCart(w, view, err)
}

// updateQuantity
//
//	@Summary		Изменить количество
//	@Description	Количество не опускается ниже 1, верхней границы нет
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			sessionID	path		string					true	"ID сессии"
//	@Param			productID	path		int						true	"ID товара"
//	@Param			body		body		UpdateQuantityRequest	true	"Изменение"
//	@Success		200			{object}	CartResponse
//	@Router			/carts/{sessionID}/items/{productID} [patch]
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := idParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.cartUsecase.UpdateQuantity(r.Context(), chi.URLParam(r, "sessionID"), productID, req.Delta)
	h.writeCart(w, view, err)
}

// removeItem
//
//	@Summary	Удалить товар из корзины
//	@Tags		cart
//	@Produce	json
//	@Param		sessionID	path		string	true	"ID сессии"
//	@Param		productID	path		int		true	"ID товара"
//	@Success	200			{object}	CartResponse
//	@Router		/carts/{sessionID}/items/{productID} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	productID, err := idParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.cartUsecase.RemoveItem(r.Context(), chi.URLParam(r, "sessionID"), productID)
	h.writeCart(w, view, err)
}

// clearCart
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Param		sessionID	path	string	true	"ID сессии"
//	@Success	204
//	@Router		/carts/{sessionID} [delete]
func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUsecase.ClearCart(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// quote
//
//	@Summary		Итоги корзины
//	@Description	Для B2B сумма к оплате сейчас считается по проценту предоплаты, для розницы 100%
//	@Tags			cart
//	@Produce		json
//	@Param			sessionID	path		string	true	"ID сессии"
//	@Param			b2b			query		bool	false	"B2B-заказ"
//	@Success		200			{object}	QuoteResponse
//	@Router			/carts/{sessionID}/quote [get]
func (h *CartHandler) quote(w http.ResponseWriter, r *http.Request) {
	b2b := false
	if raw := r.URL.Query().Get("b2b"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, e.Wrap("b2b", e.ErrStatusBadRequest))
			return
		}
		b2b = v
	}

	res, err := h.cartUsecase.Quote(r.Context(), chi.URLParam(r, "sessionID"), b2b)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, QuoteResponse{
		SessionID: res.SessionID,
		B2B:       res.B2B,
		Totals:    toTotalsResponse(res.Totals),
	})
}

func (h *CartHandler) writeCart(w http.ResponseWriter, view *usecase.CartView, err error) {
	if err != nil {
		h.logger.Warnf("cart request failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(view))
}
