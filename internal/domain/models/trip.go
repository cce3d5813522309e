package models

import "time"

// TripStatus is the lifecycle state of a transport trip.
type TripStatus string

const (
	TripStatusPending   TripStatus = "pending"
	TripStatusConfirmed TripStatus = "confirmed"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// ValidTripStatus reports whether s is one of the four known states.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusPending, TripStatusConfirmed, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the trip state machine:
// pending -> confirmed -> completed, and pending|confirmed -> cancelled.
// There is no edge out of completed or cancelled.
func (s TripStatus) CanTransition(to TripStatus) bool {
	switch s {
	case TripStatusPending:
		return to == TripStatusConfirmed || to == TripStatusCancelled
	case TripStatusConfirmed:
		return to == TripStatusCompleted || to == TripStatusCancelled
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transition.
func (s TripStatus) Terminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// Trip is a scheduled transport run with a destination, date and finite
// seat capacity. Code is the caller-facing identifier; ID stays internal
// for foreign keys.
type Trip struct {
	ID                 int64      `json:"id"`
	Code               string     `json:"code"`
	FacilityID         *int64     `json:"facility_id,omitempty"`
	Destination        string     `json:"destination"`
	DestinationAddress string     `json:"destination_address"`
	TravelDate         string     `json:"travel_date"`
	DepartureTime      string     `json:"departure_time"`
	ConsultationTime   string     `json:"consultation_time,omitempty"`
	SeatCount          int        `json:"seat_count"`
	DriverID           *int64     `json:"driver_id,omitempty"`
	VehicleID          *int64     `json:"vehicle_id,omitempty"`
	Status             TripStatus `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TripUpdate supports PATCH-style updates via key presence: only non-nil
// fields are written.
type TripUpdate struct {
	FacilityID         *int64  `json:"facility_id"`
	Destination        *string `json:"destination"`
	DestinationAddress *string `json:"destination_address"`
	TravelDate         *string `json:"travel_date"`
	DepartureTime      *string `json:"departure_time"`
	ConsultationTime   *string `json:"consultation_time"`
	DriverID           *int64  `json:"driver_id"`
	VehicleID          *int64  `json:"vehicle_id"`
	Notes              *string `json:"notes"`
}

// Empty reports whether no field was supplied at all.
func (u TripUpdate) Empty() bool {
	return u.FacilityID == nil &&
		u.Destination == nil &&
		u.DestinationAddress == nil &&
		u.TravelDate == nil &&
		u.DepartureTime == nil &&
		u.ConsultationTime == nil &&
		u.DriverID == nil &&
		u.VehicleID == nil &&
		u.Notes == nil
}

// TripSeats is the capacity snapshot for one trip.
type TripSeats struct {
	TripCode  string `json:"trip_code"`
	Total     int    `json:"total"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}
