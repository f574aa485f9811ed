package http

import (
	"net/http"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/tour"
	"github.com/guardpost-hq/guardpost-backend-go/internal/handler/http/response"
)

type TourHandler interface {
	Gate(w http.ResponseWriter, r *http.Request)
}

type tourHandlerImpl struct {
	tourGate tour.TourGate
}

func NewTourHandler(tourGate tour.TourGate) TourHandler {
	return &tourHandlerImpl{
		tourGate: tourGate,
	}
}

// Gate implements TourHandler. Evaluated once per tour-page entry; a denial
// carries the attendance reason so the client can show it verbatim.
func (h *tourHandlerImpl) Gate(w http.ResponseWriter, r *http.Request) {
	siteID := r.URL.Query().Get("site_id")
	if siteID == "" {
		response.BadRequest(w, "site_id is required", nil)
		return
	}

	result, err := h.tourGate.Allowed(r.Context(), siteID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
