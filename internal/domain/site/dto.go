package site

// SiteResponse is the wire shape for a site.
type SiteResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolutionResponse is the wire shape for a resolved site.
type ResolutionResponse struct {
	Site           SiteResponse `json:"site"`
	Source         string       `json:"source"`
	DistanceMeters float64      `json:"distance_meters"`
}

// AssignmentResponse is the wire shape for a site-worker assignment.
type AssignmentResponse struct {
	ID     string `json:"id"`
	SiteID string `json:"site_id"`
	UserID string `json:"user_id"`
	Shift  string `json:"shift"`
	Date   string `json:"date"`
}

func MapSiteToResponse(s Site) SiteResponse {
	return SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}

func MapAssignmentToResponse(a Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:     a.ID,
		SiteID: a.SiteID,
		UserID: a.UserID,
		Shift:  a.Shift,
		Date:   a.Date,
	}
}
