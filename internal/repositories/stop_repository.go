package repositories

import (
	"database/sql"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain/models"
)

type StopRepository struct {
	DB *sql.DB
}

func (r StopRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert adds a pickup stop. The unique key on (trip_id, stop_order) makes
// a duplicate order surface as a duplicate-entry error, never a silent
// overwrite.
func (r StopRepository) Insert(q Querier, s models.Stop) (int64, error) {
	res, err := q.Exec(`
		INSERT INTO stops (trip_id, stop_order, name, address, time, notes)
		VALUES (?,?,?,?,?,?)`,
		s.TripID,
		s.StopOrder,
		s.Name,
		intdb.NullIfEmpty(s.Address),
		s.Time,
		intdb.NullIfEmpty(s.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByTrip returns the trip's stops in route order.
func (r StopRepository) ListByTrip(tripID int64) ([]models.Stop, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, stop_order, name, COALESCE(address,''), time, COALESCE(notes,'')
		FROM stops WHERE trip_id=? ORDER BY stop_order ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.ID, &s.TripID, &s.StopOrder, &s.Name, &s.Address, &s.Time, &s.Notes); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
