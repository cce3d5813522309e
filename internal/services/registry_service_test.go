package services

import (
	"testing"

	"medtransport/internal/domain"
	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newRegistryService(t *testing.T) (RegistryService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := RegistryService{
		PatientRepo:  repositories.PatientRepository{DB: db},
		FacilityRepo: repositories.FacilityRepository{DB: db},
		DriverRepo:   repositories.DriverRepository{DB: db},
		VehicleRepo:  repositories.VehicleRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestCreatePatientDuplicateDocument(t *testing.T) {
	svc, mock, closeDB := newRegistryService(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO patients").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := svc.CreatePatient(models.Patient{Name: "Jo Doe", Document: "DOC-1"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVehicleValidation(t *testing.T) {
	svc, mock, closeDB := newRegistryService(t)
	defer closeDB()

	if _, err := svc.CreateVehicle(models.Vehicle{Plate: "", Seats: 10}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty plate, got %v", err)
	}
	if _, err := svc.CreateVehicle(models.Vehicle{Plate: "ABC-1234", Seats: 0}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero seats, got %v", err)
	}

	mock.ExpectExec("INSERT INTO vehicles").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if _, err := svc.CreateVehicle(models.Vehicle{Plate: "abc-1234", Seats: 10}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate plate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateFacilityDuplicateName(t *testing.T) {
	svc, mock, closeDB := newRegistryService(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO facilities").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := svc.CreateFacility(models.Facility{Name: "General Hospital"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
