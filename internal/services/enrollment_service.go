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

// EnrollmentService performs patient-to-trip enrollment under capacity and
// duplication constraints. The capacity check and the insert run in one
// transaction anchored on a FOR UPDATE read of the trip row, so two
// concurrent enrollments for the same trip serialize instead of both
// observing free seats.
type EnrollmentService struct {
	TripRepo       repositories.TripRepository
	EnrollmentRepo repositories.EnrollmentRepository
	PatientRepo    repositories.PatientRepository
	DB             *sql.DB
	RequestID      string
}

func (s EnrollmentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Enroll adds a patient to a trip and returns the new enrollment id.
func (s EnrollmentService) Enroll(tripCode string, patientID int64, details models.EnrollmentDetails) (int64, error) {
	if strings.TrimSpace(details.Reason) == "" {
		return 0, domain.ValidationError{Field: "reason", Msg: "is required"}
	}
	if patientID <= 0 {
		return 0, domain.ValidationError{Field: "patient_id", Msg: "is required"}
	}

	trip, err := s.TripRepo.GetByCode(tripCode)
	if err == sql.ErrNoRows {
		return 0, domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	if _, err := s.PatientRepo.GetByID(patientID); err == sql.ErrNoRows {
		return 0, domain.NotFoundError{Resource: "patient"}
	} else if err != nil {
		return 0, domain.InternalError{Msg: "failed to load patient", Err: err}
	}

	seatsNeeded := models.SeatCost(details.Companion)

	var enrollmentID int64
	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		totalSeats, err := s.TripRepo.LockSeatCount(tx, trip.ID)
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "trip"}
		}
		if err != nil {
			return domain.InternalError{Msg: "failed to lock trip", Err: err}
		}

		exists, err := s.EnrollmentRepo.Exists(tx, trip.ID, patientID)
		if err != nil {
			return domain.InternalError{Msg: "failed to check enrollment", Err: err}
		}
		if exists {
			return domain.ConflictError{Resource: "enrollment", Msg: "patient already enrolled in this trip"}
		}

		occupied, err := s.EnrollmentRepo.CountSeats(tx, trip.ID)
		if err != nil {
			return domain.InternalError{Msg: "failed to count seats", Err: err}
		}
		available := totalSeats - occupied
		if available < seatsNeeded {
			return domain.CapacityError{TripCode: trip.Code, Needed: seatsNeeded, Available: available}
		}

		id, err := s.EnrollmentRepo.Insert(tx, models.Enrollment{
			TripID:           trip.ID,
			PatientID:        patientID,
			PhysicianID:      details.PhysicianID,
			Reason:           strings.TrimSpace(details.Reason),
			ConsultationTime: strings.TrimSpace(details.ConsultationTime),
			Notes:            strings.TrimSpace(details.Notes),
			Companion:        details.Companion,
			CompanionName:    strings.TrimSpace(details.CompanionName),
			HomePickup:       details.HomePickup,
			PickupAddress:    strings.TrimSpace(details.PickupAddress),
			StopID:           details.StopID,
			PickupTime:       strings.TrimSpace(details.PickupTime),
			PickupNotes:      strings.TrimSpace(details.PickupNotes),
			CreatedAt:        time.Now(),
		})
		if err != nil {
			// unique key (trip_id, patient_id) as defense-in-depth
			if intdb.IsDuplicateEntry(err) {
				return domain.ConflictError{Resource: "enrollment", Msg: "patient already enrolled in this trip"}
			}
			return domain.InternalError{Msg: "failed to insert enrollment", Err: err}
		}
		enrollmentID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "enrollment", "enroll",
		fmt.Sprintf("trip=%s patient=%d seats=%d", trip.Code, patientID, seatsNeeded))
	return enrollmentID, nil
}

// Remove deletes the enrollment for the pair. Removing an absent pair is
// not an error.
func (s EnrollmentService) Remove(tripCode string, patientID int64) error {
	trip, err := s.TripRepo.GetByCode(tripCode)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: "trip"}
	}
	if err != nil {
		return domain.InternalError{Msg: "failed to load trip", Err: err}
	}

	rows, err := s.EnrollmentRepo.Delete(trip.ID, patientID)
	if err != nil {
		return domain.InternalError{Msg: "failed to delete enrollment", Err: err}
	}

	utils.LogEvent(s.RequestID, "enrollment", "remove",
		fmt.Sprintf("trip=%s patient=%d removed=%d", trip.Code, patientID, rows))
	return nil
}

// MarkAttendance sets the tri-state attendance flag. Attendance does not
// affect seat accounting.
func (s EnrollmentService) MarkAttendance(enrollmentID int64, attended bool) error {
	rows, err := s.EnrollmentRepo.UpdateAttendance(enrollmentID, attended)
	if err != nil {
		return domain.InternalError{Msg: "failed to update attendance", Err: err}
	}
	if rows == 0 {
		return domain.NotFoundError{Resource: "enrollment"}
	}

	utils.LogEvent(s.RequestID, "enrollment", "mark_attendance",
		fmt.Sprintf("enrollment=%d attended=%t", enrollmentID, attended))
	return nil
}
