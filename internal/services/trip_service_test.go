package services

import (
	"testing"
	"time"

	"medtransport/internal/domain"
	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newTripService(t *testing.T) (TripService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := TripService{
		TripRepo:       repositories.TripRepository{DB: db},
		StopRepo:       repositories.StopRepository{DB: db},
		EnrollmentRepo: repositories.EnrollmentRepository{DB: db},
		FacilityRepo:   repositories.FacilityRepository{DB: db},
		DriverRepo:     repositories.DriverRepository{DB: db},
		VehicleRepo:    repositories.VehicleRepository{DB: db},
		DB:             db,
	}
	return svc, mock, func() { db.Close() }
}

func TestNewTripCodeFormat(t *testing.T) {
	at := time.Date(2025, 3, 10, 7, 30, 45, 0, time.Local)
	if got := NewTripCode(at); got != "TRP-20250310073045" {
		t.Fatalf("unexpected trip code %q", got)
	}
}

func TestCreateTripValidation(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	cases := []struct {
		name string
		in   TripInput
	}{
		{"missing destination", TripInput{TravelDate: "2025-03-10", DepartureTime: "07:30", SeatCount: 4}},
		{"missing date", TripInput{Destination: "General Hospital", DepartureTime: "07:30", SeatCount: 4}},
		{"bad date", TripInput{Destination: "General Hospital", TravelDate: "10/03/2025", DepartureTime: "07:30", SeatCount: 4}},
		{"missing departure time", TripInput{Destination: "General Hospital", TravelDate: "2025-03-10", SeatCount: 4}},
		{"zero seats", TripInput{Destination: "General Hospital", TravelDate: "2025-03-10", DepartureTime: "07:30", SeatCount: 0}},
	}

	for _, tc := range cases {
		if _, err := svc.CreateTrip(tc.in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}

	// nothing was persisted for any rejected input
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}

func TestCreateTripWithStopsIsAtomic(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()
	svc.Now = func() time.Time {
		return time.Date(2025, 3, 10, 6, 0, 0, 0, time.Local)
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO stops").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO stops").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	trip, err := svc.CreateTrip(TripInput{
		Destination:   "General Hospital",
		TravelDate:    "2025-03-10",
		DepartureTime: "07:30",
		SeatCount:     8,
		Stops: []StopInput{
			{Order: 1, Name: "Health Center", Time: "06:40"},
			{Order: 2, Name: "Main Square", Time: "06:55"},
		},
	})
	if err != nil {
		t.Fatalf("create trip failed: %v", err)
	}
	if trip.Code != "TRP-20250310060000" {
		t.Fatalf("unexpected code %q", trip.Code)
	}
	if trip.Status != models.TripStatusPending {
		t.Fatalf("new trip must be pending, got %s", trip.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripRollsBackOnDuplicateStopOrder(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO stops").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO stops").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err := svc.CreateTrip(TripInput{
		Destination:   "General Hospital",
		TravelDate:    "2025-03-10",
		DepartureTime: "07:30",
		SeatCount:     8,
		Stops: []StopInput{
			{Order: 1, Name: "Health Center", Time: "06:40"},
			{Order: 1, Name: "Main Square", Time: "06:55"},
		},
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateTripSeatCountDefaultsFromVehicle(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	mock.ExpectQuery("FROM vehicles WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate", "model", "seats"}).AddRow(3, "ABC-1234", "Van", 12))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	vehicleID := int64(3)
	trip, err := svc.CreateTrip(TripInput{
		Destination:   "General Hospital",
		TravelDate:    "2025-03-10",
		DepartureTime: "07:30",
		VehicleID:     &vehicleID,
	})
	if err != nil {
		t.Fatalf("create trip failed: %v", err)
	}
	if trip.SeatCount != 12 {
		t.Fatalf("seat count should come from vehicle, got %d", trip.SeatCount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateTripEmptyPayload(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	_, err := svc.UpdateTrip("TRP-20250310073000", models.TripUpdate{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "nothing to update" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	// the row was never touched
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}

func TestUpdateTripRejectedWhenTerminal(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "completed"))

	dest := "Regional Clinic"
	_, err := svc.UpdateTrip("TRP-20250310073000", models.TripUpdate{Destination: &dest})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for completed trip, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateTripWritesOnlySuppliedFields(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "pending"))
	mock.ExpectExec("UPDATE trips SET departure_time=(.+), updated_at=(.+) WHERE code=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "pending"))

	dep := "08:15"
	if _, err := svc.UpdateTrip("TRP-20250310073000", models.TripUpdate{DepartureTime: &dep}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeStatusGuardsTransitions(t *testing.T) {
	svc, mock, closeDB := newTripService(t)
	defer closeDB()

	// pending -> completed skips confirmation and is rejected
	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "pending"))
	if _, err := svc.ChangeStatus("TRP-20250310073000", models.TripStatusCompleted); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for pending->completed, got %v", err)
	}

	// cancelled is terminal
	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "cancelled"))
	if _, err := svc.ChangeStatus("TRP-20250310073000", models.TripStatusConfirmed); !domain.IsConflict(err) {
		t.Fatalf("expected conflict for cancelled->confirmed, got %v", err)
	}

	// unknown status value
	if _, err := svc.ChangeStatus("TRP-20250310073000", "boarding"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	// pending -> confirmed is legal and stamps confirmed_at
	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "pending"))
	mock.ExpectExec("UPDATE trips SET status=(.+), confirmed_at=").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM trips WHERE code=").WillReturnRows(tripRow(7, "TRP-20250310073000", 8, "confirmed"))

	trip, err := svc.ChangeStatus("TRP-20250310073000", models.TripStatusConfirmed)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if trip.Status != models.TripStatusConfirmed {
		t.Fatalf("status not updated, got %s", trip.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
