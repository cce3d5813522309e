package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain"
	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"
	"medtransport/internal/utils"
)

// StopService manages the ordered pickup route of a trip.
type StopService struct {
	TripRepo  repositories.TripRepository
	StopRepo  repositories.StopRepository
	DB        *sql.DB
	RequestID string
}

func (s StopService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// AddStop appends a pickup stop to the trip route. The (trip, order) pair
// is unique; a duplicate order is a conflict, not a storage failure.
func (s StopService) AddStop(tripCode string, order int, name, stopTime, address, notes string) (models.Stop, error) {
	if order < 1 {
		return models.Stop{}, domain.ValidationError{Field: "order", Msg: "must be at least 1"}
	}
	if strings.TrimSpace(name) == "" {
		return models.Stop{}, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if strings.TrimSpace(stopTime) == "" {
		return models.Stop{}, domain.ValidationError{Field: "time", Msg: "is required"}
	}

	trip, err := s.TripRepo.GetByCode(tripCode)
	if err == sql.ErrNoRows {
		return models.Stop{}, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return models.Stop{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	stop := models.Stop{
		TripID:    trip.ID,
		StopOrder: order,
		Name:      strings.TrimSpace(name),
		Address:   strings.TrimSpace(address),
		Time:      strings.TrimSpace(stopTime),
		Notes:     strings.TrimSpace(notes),
	}

	id, err := s.StopRepo.Insert(s.db(), stop)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return models.Stop{}, domain.ConflictError{Resource: "stop", Msg: "a stop with this order already exists for this trip"}
		}
		return models.Stop{}, domain.InternalError{Msg: "failed to insert stop", Err: err}
	}
	stop.ID = id

	utils.LogEvent(s.RequestID, "stop", "add",
		fmt.Sprintf("trip=%s order=%d name=%s", trip.Code, order, stop.Name))
	return stop, nil
}

// ListStops returns the trip's stops in route order.
func (s StopService) ListStops(tripCode string) ([]models.Stop, error) {
	trip, err := s.TripRepo.GetByCode(tripCode)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	stops, err := s.StopRepo.ListByTrip(trip.ID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list stops", Err: err}
	}
	return stops, nil
}
