package http

import (
	"net/http"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	GetShiftSettings(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsHandler(settingsRepo settings.SettingsRepository) SettingsHandler {
	return &settingsHandlerImpl{
		settingsRepo: settingsRepo,
	}
}

// GetShiftSettings implements SettingsHandler.
func (h *settingsHandlerImpl) GetShiftSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsRepo.GetShiftSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings.MapSettingsToResponse(result))
}
