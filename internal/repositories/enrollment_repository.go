package repositories

import (
	"database/sql"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain/models"
)

type EnrollmentRepository struct {
	DB *sql.DB
}

func (r EnrollmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CountSeats returns the seats consumed by active enrollments of a trip,
// counting companion enrollments twice. Runs on q so the enrollment
// transaction sees a count consistent with its row lock.
func (r EnrollmentRepository) CountSeats(q Querier, tripID int64) (int, error) {
	var occupied int
	err := q.QueryRow(`
		SELECT COALESCE(SUM(CASE WHEN companion=1 THEN 2 ELSE 1 END),0)
		FROM enrollments WHERE trip_id=?`, tripID).Scan(&occupied)
	return occupied, err
}

// Exists reports whether the (trip, patient) pair is already enrolled.
func (r EnrollmentRepository) Exists(q Querier, tripID, patientID int64) (bool, error) {
	var id int64
	err := q.QueryRow(`SELECT id FROM enrollments WHERE trip_id=? AND patient_id=? LIMIT 1`,
		tripID, patientID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert persists a new enrollment with optional fields stored as NULL.
func (r EnrollmentRepository) Insert(q Querier, e models.Enrollment) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO enrollments
			(trip_id, patient_id, physician_id, reason, consultation_time, notes,
			 companion, companion_name, home_pickup, pickup_address, stop_id,
			 pickup_time, pickup_notes, attended, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,NULL,?)`,
		e.TripID,
		e.PatientID,
		e.PhysicianID,
		e.Reason,
		intdb.NullIfEmpty(e.ConsultationTime),
		intdb.NullIfEmpty(e.Notes),
		e.Companion,
		intdb.NullIfEmpty(e.CompanionName),
		e.HomePickup,
		intdb.NullIfEmpty(e.PickupAddress),
		e.StopID,
		intdb.NullIfEmpty(e.PickupTime),
		intdb.NullIfEmpty(e.PickupNotes),
		e.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes the enrollment for the pair. Zero rows affected is not an
// error; removal is idempotent by design.
func (r EnrollmentRepository) Delete(tripID, patientID int64) (int64, error) {
	res, err := r.db().Exec(`DELETE FROM enrollments WHERE trip_id=? AND patient_id=?`, tripID, patientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetByID loads one enrollment.
func (r EnrollmentRepository) GetByID(id int64) (models.Enrollment, error) {
	row := r.db().QueryRow(`
		SELECT id, trip_id, patient_id, physician_id, reason,
		       COALESCE(consultation_time,''), COALESCE(notes,''),
		       companion, COALESCE(companion_name,''), home_pickup,
		       COALESCE(pickup_address,''), stop_id, COALESCE(pickup_time,''),
		       COALESCE(pickup_notes,''), attended, created_at
		FROM enrollments WHERE id=?`, id)
	return scanEnrollment(row)
}

// ListByTrip returns the trip's enrollments ordered by creation.
func (r EnrollmentRepository) ListByTrip(tripID int64) ([]models.Enrollment, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, patient_id, physician_id, reason,
		       COALESCE(consultation_time,''), COALESCE(notes,''),
		       companion, COALESCE(companion_name,''), home_pickup,
		       COALESCE(pickup_address,''), stop_id, COALESCE(pickup_time,''),
		       COALESCE(pickup_notes,''), attended, created_at
		FROM enrollments WHERE trip_id=? ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateAttendance sets the tri-state attendance flag to true/false.
func (r EnrollmentRepository) UpdateAttendance(id int64, attended bool) (int64, error) {
	res, err := r.db().Exec(`UPDATE enrollments SET attended=? WHERE id=?`, attended, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanEnrollment(row interface{ Scan(...any) error }) (models.Enrollment, error) {
	var e models.Enrollment
	var attended sql.NullBool
	err := row.Scan(
		&e.ID,
		&e.TripID,
		&e.PatientID,
		&e.PhysicianID,
		&e.Reason,
		&e.ConsultationTime,
		&e.Notes,
		&e.Companion,
		&e.CompanionName,
		&e.HomePickup,
		&e.PickupAddress,
		&e.StopID,
		&e.PickupTime,
		&e.PickupNotes,
		&attended,
		&e.CreatedAt,
	)
	if err != nil {
		return e, err
	}
	if attended.Valid {
		v := attended.Bool
		e.Attended = &v
	}
	return e, nil
}
