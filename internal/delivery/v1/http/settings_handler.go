package http

import (
	"net/http"

	"github.com/DRSN-tech/lignum-storefront/internal/usecase"
	"github.com/DRSN-tech/lignum-storefront/pkg/logger"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUC
	logger          logger.Logger
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUC, logger logger.Logger) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase, logger: logger}
}

// getSettings
//
//	@Summary	Настройки магазина
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	SettingsResponse
//	@Router		/admin/config [get]
func (h *SettingsHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.GetSettings(r.Context())
	if err != nil {
		h.logger.Errorf(err, "get settings failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSettingsResponse(settings))
}

// updateSettings
//
//	@Summary		Изменить настройки магазина
//	@Description	Процент предоплаты вне [1,100] сохраняется как есть, в лог пишется предупреждение
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		UpdateSettingsRequest	true	"Изменения"
//	@Success		200		{object}	SettingsResponse
//	@Router			/admin/config [put]
func (h *SettingsHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	settings, err := h.settingsUsecase.UpdateSettings(r.Context(), &usecase.UpdateSettingsReq{
		Currency:                    req.Currency,
		B2BPartialPaymentPercentage: req.B2BPartialPaymentPercentage,
	})
	if err != nil {
		h.logger.Errorf(err, "update settings failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSettingsResponse(settings))
}
