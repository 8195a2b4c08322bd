package models

import "strings"

// FarFromClientThresholdKm is the distance above which a check-in carries a warning.
const FarFromClientThresholdKm = 0.5

// FarFromClientWarning is attached to check-ins farther than FarFromClientThresholdKm.
const FarFromClientWarning = "You are far from the client location"

// CheckInRequest carries check-in input. Nil fields were absent from the request.
type CheckInRequest struct {
	ClientID  *int64   `json:"client_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

// HasRequiredFields reports whether client id, latitude and longitude are
// present. A client id of zero or less counts as absent.
func (r CheckInRequest) HasRequiredFields() bool {
	return r.ClientID != nil && *r.ClientID > 0 && r.Latitude != nil && r.Longitude != nil
}

// NormalizeNotes trims notes; blank notes become nil.
func NormalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CheckInResult is returned by a successful check-in.
type CheckInResult struct {
	Session    *Session `json:"session"`
	DistanceKm float64  `json:"distance_from_client"`
	Warning    *string  `json:"warning"`
}

// HistoryFilter bounds a history query. Dates are YYYY-MM-DD and inclusive;
// empty means unbounded.
type HistoryFilter struct {
	StartDate string
	EndDate   string
}
