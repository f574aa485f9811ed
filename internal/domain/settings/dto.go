package settings

import "github.com/guardpost-hq/guardpost-backend-go/internal/pkg/clock"

// WindowResponse is the wire shape for a shift window. Undefined windows
// serialize with empty boundaries so clients can grey the shift out.
type WindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftSettingsResponse is the wire shape for the configured shift windows.
type ShiftSettingsResponse struct {
	GracePeriodMinutes   int            `json:"grace_period_minutes"`
	GeofenceRadiusMeters int            `json:"geofence_radius_meters"`
	Day                  WindowResponse `json:"day"`
	Night                WindowResponse `json:"night"`
	ReliefDay            WindowResponse `json:"relief_day"`
	ReliefNight          WindowResponse `json:"relief_night"`
}

func mapWindow(w Window) WindowResponse {
	if !w.Defined {
		return WindowResponse{}
	}
	return WindowResponse{
		Start: clock.FormatHHMM(w.Start),
		End:   clock.FormatHHMM(w.End),
	}
}

func MapSettingsToResponse(s ShiftSettings) ShiftSettingsResponse {
	return ShiftSettingsResponse{
		GracePeriodMinutes:   s.GracePeriodMinutes,
		GeofenceRadiusMeters: s.GeofenceRadiusMeters,
		Day:                  mapWindow(s.Day),
		Night:                mapWindow(s.Night),
		ReliefDay:            mapWindow(s.ReliefDay),
		ReliefNight:          mapWindow(s.ReliefNight),
	}
}
