package models

import "time"

// Enrollment links one patient to one trip. A patient appears at most once
// per trip; an enrollment consumes one seat, or two when a companion rides
// along.
type Enrollment struct {
	ID               int64     `json:"id"`
	TripID           int64     `json:"trip_id"`
	PatientID        int64     `json:"patient_id"`
	PhysicianID      *int64    `json:"physician_id,omitempty"`
	Reason           string    `json:"reason"`
	ConsultationTime string    `json:"consultation_time,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Companion        bool      `json:"companion"`
	CompanionName    string    `json:"companion_name,omitempty"`
	HomePickup       bool      `json:"home_pickup"`
	PickupAddress    string    `json:"pickup_address,omitempty"`
	StopID           *int64    `json:"stop_id,omitempty"`
	PickupTime       string    `json:"pickup_time,omitempty"`
	PickupNotes      string    `json:"pickup_notes,omitempty"`
	Attended         *bool     `json:"attended"`
	CreatedAt        time.Time `json:"created_at"`
}

// SeatCost is the number of seats this enrollment consumes.
func (e Enrollment) SeatCost() int {
	return SeatCost(e.Companion)
}

// SeatCost returns 2 when a companion rides along, 1 otherwise.
func SeatCost(companion bool) int {
	if companion {
		return 2
	}
	return 1
}

// EnrollmentDetails carries the caller-supplied fields for a new enrollment.
type EnrollmentDetails struct {
	PhysicianID      *int64 `json:"physician_id"`
	Reason           string `json:"reason"`
	ConsultationTime string `json:"consultation_time"`
	Notes            string `json:"notes"`
	Companion        bool   `json:"companion"`
	CompanionName    string `json:"companion_name"`
	HomePickup       bool   `json:"home_pickup"`
	PickupAddress    string `json:"pickup_address"`
	StopID           *int64 `json:"stop_id"`
	PickupTime       string `json:"pickup_time"`
	PickupNotes      string `json:"pickup_notes"`
}
