package handler

import (
	"fieldtrack/internal/attendance/models"
	dErrors "fieldtrack/pkg/domain-errors"
)

// CheckInRequest is the HTTP request body for POST /api/checkin.
type CheckInRequest struct {
	ClientID  *int64   `json:"client_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     *string  `json:"notes"`
}

func (r *CheckInRequest) Normalize() {
	r.Notes = models.NormalizeNotes(r.Notes)
}

// Validate checks presence only; range checks belong to the service.
func (r *CheckInRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if !r.toModel().HasRequiredFields() {
		return dErrors.New(dErrors.CodeValidation, "client_id, latitude and longitude are required")
	}
	return nil
}

func (r *CheckInRequest) toModel() models.CheckInRequest {
	return models.CheckInRequest{
		ClientID:  r.ClientID,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Notes:     r.Notes,
	}
}
