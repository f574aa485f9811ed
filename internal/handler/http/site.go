package http

import (
	"net/http"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/handler/http/response"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type SiteHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MyAssignments(w http.ResponseWriter, r *http.Request)
}

type siteHandlerImpl struct {
	siteRepo       site.SiteRepository
	assignmentRepo site.AssignmentRepository
}

func NewSiteHandler(siteRepo site.SiteRepository, assignmentRepo site.AssignmentRepository) SiteHandler {
	return &siteHandlerImpl{
		siteRepo:       siteRepo,
		assignmentRepo: assignmentRepo,
	}
}

// List implements SiteHandler.
func (h *siteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteRepo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]site.SiteResponse, 0, len(sites))
	for _, s := range sites {
		results = append(results, site.MapSiteToResponse(s))
	}

	response.Success(w, results)
}

// Get implements SiteHandler.
func (h *siteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "siteID")

	result, err := h.siteRepo.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, site.MapSiteToResponse(result))
}

// MyAssignments implements SiteHandler. Lists the authenticated worker's
// assignments for a date (today when omitted), optionally scoped to a site.
func (h *siteHandlerImpl) MyAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = clock.Today(time.Now())
	} else if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	siteID := r.URL.Query().Get("site_id")

	if siteID != "" {
		assignment, err := h.assignmentRepo.GetForWorker(ctx, userID, siteID, date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if assignment == nil {
			response.Success(w, []site.AssignmentResponse{})
			return
		}
		response.Success(w, []site.AssignmentResponse{site.MapAssignmentToResponse(*assignment)})
		return
	}

	assignments, err := h.assignmentRepo.ListForWorker(ctx, userID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]site.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		results = append(results, site.MapAssignmentToResponse(a))
	}

	response.Success(w, results)
}
