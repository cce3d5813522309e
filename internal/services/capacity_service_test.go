package services

import (
	"testing"

	"medtransport/internal/domain"
	"medtransport/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSeatsForTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := CapacityService{
		TripRepo:       repositories.TripRepository{DB: db},
		EnrollmentRepo: repositories.EnrollmentRepository{DB: db},
		DB:             db,
	}

	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 10, "confirmed"))
	mock.ExpectQuery("SELECT COALESCE\\(SUM").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(7))

	seats, err := svc.SeatsForTrip("TRP-20250310073000")
	if err != nil {
		t.Fatalf("seats query failed: %v", err)
	}
	if seats.Total != 10 || seats.Occupied != 7 || seats.Available != 3 {
		t.Fatalf("unexpected snapshot %+v", seats)
	}

	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(sqlmock.NewRows(tripCols))
	if _, err := svc.SeatsForTrip("TRP-missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
