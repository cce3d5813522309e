package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain"
	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"
	"medtransport/internal/utils"
)

// TripInput carries the caller-supplied fields for a new trip. Stops, when
// present, are created in the same transaction as the trip.
type TripInput struct {
	FacilityID         *int64      `json:"facility_id"`
	Destination        string      `json:"destination"`
	DestinationAddress string      `json:"destination_address"`
	TravelDate         string      `json:"travel_date"`
	DepartureTime      string      `json:"departure_time"`
	ConsultationTime   string      `json:"consultation_time"`
	SeatCount          int         `json:"seat_count"`
	DriverID           *int64      `json:"driver_id"`
	VehicleID          *int64      `json:"vehicle_id"`
	Notes              string      `json:"notes"`
	Stops              []StopInput `json:"stops"`
}

type StopInput struct {
	Order   int    `json:"order"`
	Name    string `json:"name"`
	Time    string `json:"time"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// TripDetail aggregates a trip with its route, roster and seat accounting.
type TripDetail struct {
	Trip        models.Trip         `json:"trip"`
	Stops       []models.Stop       `json:"stops"`
	Enrollments []models.Enrollment `json:"enrollments"`
	Seats       models.TripSeats    `json:"seats"`
}

// TripService creates trips, applies sparse updates and guards status
// transitions.
type TripService struct {
	TripRepo       repositories.TripRepository
	StopRepo       repositories.StopRepository
	EnrollmentRepo repositories.EnrollmentRepository
	FacilityRepo   repositories.FacilityRepository
	DriverRepo     repositories.DriverRepository
	VehicleRepo    repositories.VehicleRepository
	DB             *sql.DB
	RequestID      string
	Now            func() time.Time
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewTripCode derives the caller-facing code from the creation instant.
// Collisions within the same second are accepted as negligible.
func NewTripCode(t time.Time) string {
	return "TRP-" + t.Format("20060102150405")
}

// CreateTrip validates input, resolves referenced registry entities and
// persists the trip together with its initial stops in one transaction.
func (s TripService) CreateTrip(in TripInput) (models.Trip, error) {
	if strings.TrimSpace(in.Destination) == "" && in.FacilityID == nil {
		return models.Trip{}, domain.ValidationError{Field: "destination", Msg: "is required"}
	}
	if strings.TrimSpace(in.TravelDate) == "" {
		return models.Trip{}, domain.ValidationError{Field: "travel_date", Msg: "is required"}
	}
	if _, err := utils.ParseDate(in.TravelDate); err != nil {
		return models.Trip{}, domain.ValidationError{Field: "travel_date", Msg: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(in.DepartureTime) == "" {
		return models.Trip{}, domain.ValidationError{Field: "departure_time", Msg: "is required"}
	}

	destination := strings.TrimSpace(in.Destination)
	if in.FacilityID != nil {
		facility, err := s.FacilityRepo.GetByID(*in.FacilityID)
		if err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "facility"}
		}
		if err != nil {
			return models.Trip{}, domain.InternalError{Msg: "failed to load facility", Err: err}
		}
		if destination == "" {
			destination = facility.Name
		}
	}

	if in.DriverID != nil {
		if _, err := s.DriverRepo.GetByID(*in.DriverID); err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "driver"}
		} else if err != nil {
			return models.Trip{}, domain.InternalError{Msg: "failed to load driver", Err: err}
		}
	}

	seatCount := in.SeatCount
	if in.VehicleID != nil {
		vehicle, err := s.VehicleRepo.GetByID(*in.VehicleID)
		if err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "vehicle"}
		}
		if err != nil {
			return models.Trip{}, domain.InternalError{Msg: "failed to load vehicle", Err: err}
		}
		if seatCount == 0 {
			seatCount = vehicle.Seats
		}
	}
	if seatCount < 1 {
		return models.Trip{}, domain.ValidationError{Field: "seat_count", Msg: "seat count must be greater than zero"}
	}

	for _, st := range in.Stops {
		if st.Order < 1 || strings.TrimSpace(st.Name) == "" || strings.TrimSpace(st.Time) == "" {
			return models.Trip{}, domain.ValidationError{Field: "stops", Msg: "each stop needs order, name and time"}
		}
	}

	now := s.now()
	trip := models.Trip{
		Code:               NewTripCode(now),
		FacilityID:         in.FacilityID,
		Destination:        destination,
		DestinationAddress: strings.TrimSpace(in.DestinationAddress),
		TravelDate:         strings.TrimSpace(in.TravelDate),
		DepartureTime:      strings.TrimSpace(in.DepartureTime),
		ConsultationTime:   strings.TrimSpace(in.ConsultationTime),
		SeatCount:          seatCount,
		DriverID:           in.DriverID,
		VehicleID:          in.VehicleID,
		Status:             models.TripStatusPending,
		Notes:              strings.TrimSpace(in.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		id, err := s.TripRepo.Insert(tx, trip)
		if err != nil {
			return domain.InternalError{Msg: "failed to insert trip", Err: err}
		}
		trip.ID = id

		for _, st := range in.Stops {
			_, err := s.StopRepo.Insert(tx, models.Stop{
				TripID:    id,
				StopOrder: st.Order,
				Name:      strings.TrimSpace(st.Name),
				Address:   strings.TrimSpace(st.Address),
				Time:      strings.TrimSpace(st.Time),
				Notes:     strings.TrimSpace(st.Notes),
			})
			if err != nil {
				if intdb.IsDuplicateEntry(err) {
					return domain.ConflictError{Resource: "stop", Msg: "a stop with this order already exists for this trip"}
				}
				return domain.InternalError{Msg: "failed to insert stop", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	utils.LogEvent(s.RequestID, "trip", "create",
		fmt.Sprintf("code=%s date=%s seats=%d", trip.Code, trip.TravelDate, trip.SeatCount))
	return trip, nil
}

// UpdateTrip applies the sparse update to the trip addressed by code.
// Completed and cancelled trips no longer accept field updates.
func (s TripService) UpdateTrip(code string, u models.TripUpdate) (models.Trip, error) {
	if u.Empty() {
		return models.Trip{}, domain.ValidationError{Msg: "nothing to update"}
	}

	trip, err := s.TripRepo.GetByCode(code)
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}
	if trip.Status.Terminal() {
		return models.Trip{}, domain.ConflictError{Resource: "trip",
			Msg: fmt.Sprintf("trip is %s and can no longer be updated", trip.Status)}
	}

	if u.TravelDate != nil {
		if _, err := utils.ParseDate(*u.TravelDate); err != nil {
			return models.Trip{}, domain.ValidationError{Field: "travel_date", Msg: "must be YYYY-MM-DD"}
		}
	}
	if u.FacilityID != nil {
		if _, err := s.FacilityRepo.GetByID(*u.FacilityID); err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "facility"}
		} else if err != nil {
			return models.Trip{}, domain.InternalError{Msg: "failed to load facility", Err: err}
		}
	}
	if u.DriverID != nil {
		if _, err := s.DriverRepo.GetByID(*u.DriverID); err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "driver"}
		} else if err != nil {
			return models.Trip{}, domain.InternalError{Msg: "failed to load driver", Err: err}
		}
	}
	if u.VehicleID != nil {
		if _, err := s.VehicleRepo.GetByID(*u.VehicleID); err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "vehicle"}
		} else if err != nil {
			return models.Trip{}, domain.InternalError{Msg: "failed to load vehicle", Err: err}
		}
	}

	rows, err := s.TripRepo.UpdateByCode(code, u)
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to update trip", Err: err}
	}
	if rows == 0 {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}

	updated, err := s.TripRepo.GetByCode(code)
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to reload trip", Err: err}
	}

	utils.LogEvent(s.RequestID, "trip", "update", "code="+updated.Code)
	return updated, nil
}

// ChangeStatus moves the trip along its lifecycle. Only
// pending->confirmed->completed and pending|confirmed->cancelled are legal.
func (s TripService) ChangeStatus(code string, to models.TripStatus) (models.Trip, error) {
	if !models.ValidTripStatus(to) {
		return models.Trip{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}

	trip, err := s.TripRepo.GetByCode(code)
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	if !trip.Status.CanTransition(to) {
		return models.Trip{}, domain.ConflictError{Resource: "trip",
			Msg: fmt.Sprintf("cannot change status from %s to %s", trip.Status, to)}
	}

	if _, err := s.TripRepo.UpdateStatus(code, to); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to update status", Err: err}
	}

	updated, err := s.TripRepo.GetByCode(code)
	if err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to reload trip", Err: err}
	}

	utils.LogEvent(s.RequestID, "trip", "status",
		fmt.Sprintf("code=%s %s->%s", updated.Code, trip.Status, to))
	return updated, nil
}

// GetTrip loads the trip with its route, roster and seat accounting.
func (s TripService) GetTrip(code string) (TripDetail, error) {
	trip, err := s.TripRepo.GetByCode(code)
	if err == sql.ErrNoRows {
		return TripDetail{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return TripDetail{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	stops, err := s.StopRepo.ListByTrip(trip.ID)
	if err != nil {
		return TripDetail{}, domain.InternalError{Msg: "failed to list stops", Err: err}
	}
	enrollments, err := s.EnrollmentRepo.ListByTrip(trip.ID)
	if err != nil {
		return TripDetail{}, domain.InternalError{Msg: "failed to list enrollments", Err: err}
	}

	occupied := 0
	for _, e := range enrollments {
		occupied += e.SeatCost()
	}

	return TripDetail{
		Trip:        trip,
		Stops:       stops,
		Enrollments: enrollments,
		Seats: models.TripSeats{
			TripCode:  trip.Code,
			Total:     trip.SeatCount,
			Occupied:  occupied,
			Available: trip.SeatCount - occupied,
		},
	}, nil
}

// ListTrips returns trips filtered by optional date and status.
func (s TripService) ListTrips(date, status string) ([]models.Trip, error) {
	if strings.TrimSpace(status) != "" && !models.ValidTripStatus(models.TripStatus(status)) {
		return nil, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	trips, err := s.TripRepo.List(date, status)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list trips", Err: err}
	}
	return trips, nil
}
