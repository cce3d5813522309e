package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain/models"
)

const tripColumns = `id, code, facility_id, destination, COALESCE(destination_address,''),
	travel_date, departure_time, COALESCE(consultation_time,''), seat_count,
	driver_id, vehicle_id, status, COALESCE(notes,''), created_at, confirmed_at, updated_at`

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.Code,
		&t.FacilityID,
		&t.Destination,
		&t.DestinationAddress,
		&t.TravelDate,
		&t.DepartureTime,
		&t.ConsultationTime,
		&t.SeatCount,
		&t.DriverID,
		&t.VehicleID,
		&t.Status,
		&t.Notes,
		&t.CreatedAt,
		&t.ConfirmedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Insert persists a new trip inside q (tx or plain connection).
func (r TripRepository) Insert(q Querier, t models.Trip) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO trips
			(code, facility_id, destination, destination_address, travel_date,
			 departure_time, consultation_time, seat_count, driver_id, vehicle_id,
			 status, notes, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.Code,
		t.FacilityID,
		t.Destination,
		intdb.NullIfEmpty(t.DestinationAddress),
		t.TravelDate,
		t.DepartureTime,
		intdb.NullIfEmpty(t.ConsultationTime),
		t.SeatCount,
		t.DriverID,
		t.VehicleID,
		string(t.Status),
		intdb.NullIfEmpty(t.Notes),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByCode loads a trip by its caller-facing code.
func (r TripRepository) GetByCode(code string) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE code=?`, strings.TrimSpace(code))
	return scanTrip(row)
}

// GetByID loads a trip by surrogate id (internal use only).
func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=?`, id)
	return scanTrip(row)
}

// LockSeatCount reads the trip's seat count under a row lock. Must run
// inside a transaction; it is the anchor that serializes concurrent
// enrollments for the same trip.
func (r TripRepository) LockSeatCount(tx *sql.Tx, tripID int64) (int, error) {
	var seats int
	err := tx.QueryRow(`SELECT seat_count FROM trips WHERE id=? FOR UPDATE`, tripID).Scan(&seats)
	return seats, err
}

// List returns trips filtered by optional travel date and status.
func (r TripRepository) List(date, status string) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}
	if strings.TrimSpace(date) != "" {
		where = append(where, "travel_date=?")
		args = append(args, strings.TrimSpace(date))
	}
	if strings.TrimSpace(status) != "" {
		where = append(where, "status=?")
		args = append(args, strings.TrimSpace(status))
	}

	rows, err := r.db().Query(`SELECT `+tripColumns+` FROM trips WHERE `+
		strings.Join(where, " AND ")+` ORDER BY travel_date ASC, departure_time ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateByCode writes only the fields present in u and refreshes
// updated_at. Returns the number of matched rows.
func (r TripRepository) UpdateByCode(code string, u models.TripUpdate) (int64, error) {
	sets := []string{}
	args := []any{}

	add := func(column string, val any) {
		sets = append(sets, column+"=?")
		args = append(args, val)
	}

	if u.FacilityID != nil {
		add("facility_id", *u.FacilityID)
	}
	if u.Destination != nil {
		add("destination", strings.TrimSpace(*u.Destination))
	}
	if u.DestinationAddress != nil {
		add("destination_address", intdb.NullIfEmpty(strings.TrimSpace(*u.DestinationAddress)))
	}
	if u.TravelDate != nil {
		add("travel_date", strings.TrimSpace(*u.TravelDate))
	}
	if u.DepartureTime != nil {
		add("departure_time", strings.TrimSpace(*u.DepartureTime))
	}
	if u.ConsultationTime != nil {
		add("consultation_time", intdb.NullIfEmpty(strings.TrimSpace(*u.ConsultationTime)))
	}
	if u.DriverID != nil {
		add("driver_id", *u.DriverID)
	}
	if u.VehicleID != nil {
		add("vehicle_id", *u.VehicleID)
	}
	if u.Notes != nil {
		add("notes", intdb.NullIfEmpty(strings.TrimSpace(*u.Notes)))
	}

	if len(sets) == 0 {
		return 0, nil
	}

	add("updated_at", time.Now())
	args = append(args, strings.TrimSpace(code))

	res, err := r.db().Exec(`UPDATE trips SET `+strings.Join(sets, ", ")+` WHERE code=?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateStatus writes the new status; confirmed_at is stamped when the trip
// enters confirmed.
func (r TripRepository) UpdateStatus(code string, status models.TripStatus) (int64, error) {
	now := time.Now()
	var res sql.Result
	var err error
	if status == models.TripStatusConfirmed {
		res, err = r.db().Exec(`UPDATE trips SET status=?, confirmed_at=?, updated_at=? WHERE code=?`,
			string(status), now, now, strings.TrimSpace(code))
	} else {
		res, err = r.db().Exec(`UPDATE trips SET status=?, updated_at=? WHERE code=?`,
			string(status), now, strings.TrimSpace(code))
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
