package services

import (
	"database/sql"

	intconfig "medtransport/internal/config"
	"medtransport/internal/domain"
	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"
)

// CapacityService is the read-only seat accounting for trips. Occupied
// seats count each enrollment once, or twice when a companion rides along.
type CapacityService struct {
	TripRepo       repositories.TripRepository
	EnrollmentRepo repositories.EnrollmentRepository
	DB             *sql.DB
}

func (s CapacityService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// SeatsForTrip returns the capacity snapshot for the trip addressed by its
// code.
func (s CapacityService) SeatsForTrip(code string) (models.TripSeats, error) {
	trip, err := s.TripRepo.GetByCode(code)
	if err == sql.ErrNoRows {
		return models.TripSeats{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.TripSeats{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	occupied, err := s.EnrollmentRepo.CountSeats(s.db(), trip.ID)
	if err != nil {
		return models.TripSeats{}, domain.InternalError{Msg: "failed to count enrollments", Err: err}
	}

	return models.TripSeats{
		TripCode:  trip.Code,
		Total:     trip.SeatCount,
		Occupied:  occupied,
		Available: trip.SeatCount - occupied,
	}, nil
}
