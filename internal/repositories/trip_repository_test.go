package repositories

import (
	"testing"

	"medtransport/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateByCodeTouchesOnlyPresentFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TripRepository{DB: db}

	dest := "Regional Clinic"
	date := "2025-04-01"
	mock.ExpectExec(`UPDATE trips SET destination=\?, travel_date=\?, updated_at=\? WHERE code=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.UpdateByCode("TRP-20250310073000", models.TripUpdate{
		Destination: &dest,
		TravelDate:  &date,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got %d", rows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateByCodeEmptySkipsSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := TripRepository{DB: db}

	rows, err := repo.UpdateByCode("TRP-20250310073000", models.TripUpdate{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows for empty update, got %d", rows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL should run for an empty update: %v", err)
	}
}

func TestCountSeatsDoublesCompanions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	repo := EnrollmentRepository{DB: db}

	// 3 solo + 2 companion rows -> 7 seats, computed by the SUM expression
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN companion=1 THEN 2 ELSE 1 END\),0\)`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(7))

	occupied, err := repo.CountSeats(db, 7)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if occupied != 7 {
		t.Fatalf("expected 7 occupied seats, got %d", occupied)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
