package services

import (
	"database/sql"
	"strings"
	"time"

	intdb "medtransport/internal/db"
	"medtransport/internal/domain"
	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"
	"medtransport/internal/utils"
)

// RegistryService covers the small entities trips and enrollments reference
// by id. Each entity keeps the uniqueness check it always had: patient
// document number, facility name, vehicle plate.
type RegistryService struct {
	PatientRepo  repositories.PatientRepository
	FacilityRepo repositories.FacilityRepository
	DriverRepo   repositories.DriverRepository
	VehicleRepo  repositories.VehicleRepository
	RequestID    string
}

func (s RegistryService) CreatePatient(p models.Patient) (int64, error) {
	if strings.TrimSpace(p.Name) == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	if strings.TrimSpace(p.Document) == "" {
		return 0, domain.ValidationError{Field: "document", Msg: "is required"}
	}

	p.Name = utils.NormalizeSpace(p.Name)
	p.Document = strings.TrimSpace(p.Document)
	p.CreatedAt = time.Now()

	id, err := s.PatientRepo.Insert(p)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return 0, domain.ConflictError{Resource: "patient", Msg: "a patient with this document already exists"}
		}
		return 0, domain.InternalError{Msg: "failed to insert patient", Err: err}
	}

	utils.LogEvent(s.RequestID, "registry", "create_patient", "id set")
	return id, nil
}

func (s RegistryService) UpdatePatient(id int64, p models.Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "is required"}
	}
	rows, err := s.PatientRepo.Update(id, p)
	if err != nil {
		return domain.InternalError{Msg: "failed to update patient", Err: err}
	}
	if rows == 0 {
		if _, err := s.PatientRepo.GetByID(id); err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "patient"}
		}
	}
	return nil
}

func (s RegistryService) CreateFacility(f models.Facility) (int64, error) {
	if strings.TrimSpace(f.Name) == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	f.Name = utils.NormalizeSpace(f.Name)

	id, err := s.FacilityRepo.Insert(f)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return 0, domain.ConflictError{Resource: "facility", Msg: "a facility with this name already exists"}
		}
		return 0, domain.InternalError{Msg: "failed to insert facility", Err: err}
	}
	return id, nil
}

func (s RegistryService) CreateDriver(d models.Driver) (int64, error) {
	if strings.TrimSpace(d.Name) == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "is required"}
	}
	d.Name = utils.NormalizeSpace(d.Name)

	id, err := s.DriverRepo.Insert(d)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to insert driver", Err: err}
	}
	return id, nil
}

func (s RegistryService) CreateVehicle(v models.Vehicle) (int64, error) {
	if strings.TrimSpace(v.Plate) == "" {
		return 0, domain.ValidationError{Field: "plate", Msg: "is required"}
	}
	if v.Seats < 1 {
		return 0, domain.ValidationError{Field: "seats", Msg: "must be at least 1"}
	}
	v.Plate = strings.ToUpper(strings.TrimSpace(v.Plate))

	id, err := s.VehicleRepo.Insert(v)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return 0, domain.ConflictError{Resource: "vehicle", Msg: "a vehicle with this plate already exists"}
		}
		return 0, domain.InternalError{Msg: "failed to insert vehicle", Err: err}
	}
	return id, nil
}
