package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/settings"
	"github.com/guardpost-hq/guardpost-backend-go/internal/handler/http/response"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/validator"
	"github.com/guardpost-hq/guardpost-backend-go/internal/service/resolution"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	Resolve(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	resolutionService *resolution.Service
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, resolutionService *resolution.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		resolutionService: resolutionService,
	}
}

// Resolve implements AttendanceHandler. Runs one full resolution pass:
// position, site, shift, attendance snapshot.
func (h *attendanceHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolution.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.resolutionService.Resolve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Current implements AttendanceHandler. Returns the authenticated worker's
// most recently published resolution context without running a new pass.
func (h *attendanceHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "user_id claim is missing or invalid")
		return
	}

	current := h.resolutionService.Current(userID)
	if current == nil {
		response.NotFound(w, "No resolution pass has completed yet")
		return
	}

	response.Success(w, current)
}

// GetMyAttendance implements AttendanceHandler. Derives the attendance
// snapshot for one (site, shift, date) tuple for the authenticated worker.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
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

	siteID := r.URL.Query().Get("site_id")
	if siteID == "" {
		response.BadRequest(w, "site_id is required", nil)
		return
	}

	kind, ok := settings.ParseShiftKind(r.URL.Query().Get("shift"))
	if !ok {
		response.BadRequest(w, "shift must be one of day, night, relief-day, relief-night", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.Snapshot(ctx, siteID, userID, kind, date, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements AttendanceHandler. Paginated attendance records for the
// authenticated worker.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}
