package repositories

import (
	"database/sql"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain/models"
)

// FacilityRepository, DriverRepository and VehicleRepository cover the
// small registries trips reference by id.

type FacilityRepository struct {
	DB *sql.DB
}

func (r FacilityRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FacilityRepository) Insert(f models.Facility) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO facilities (name, address, city, phone) VALUES (?,?,?,?)`,
		f.Name, intdb.NullIfEmpty(f.Address), intdb.NullIfEmpty(f.City), intdb.NullIfEmpty(f.Phone))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r FacilityRepository) GetByID(id int64) (models.Facility, error) {
	var f models.Facility
	err := r.db().QueryRow(`
		SELECT id, name, COALESCE(address,''), COALESCE(city,''), COALESCE(phone,'')
		FROM facilities WHERE id=?`, id).Scan(&f.ID, &f.Name, &f.Address, &f.City, &f.Phone)
	return f, err
}

func (r FacilityRepository) List() ([]models.Facility, error) {
	rows, err := r.db().Query(`
		SELECT id, name, COALESCE(address,''), COALESCE(city,''), COALESCE(phone,'')
		FROM facilities ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Facility{}
	for rows.Next() {
		var f models.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.City, &f.Phone); err != nil {
			return out, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DriverRepository) Insert(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO drivers (name, phone, license) VALUES (?,?,?)`,
		d.Name, intdb.NullIfEmpty(d.Phone), intdb.NullIfEmpty(d.License))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	var d models.Driver
	err := r.db().QueryRow(`
		SELECT id, name, COALESCE(phone,''), COALESCE(license,'') FROM drivers WHERE id=?`, id).
		Scan(&d.ID, &d.Name, &d.Phone, &d.License)
	return d, err
}

func (r DriverRepository) List() ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id, name, COALESCE(phone,''), COALESCE(license,'') FROM drivers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.License); err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r VehicleRepository) Insert(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO vehicles (plate, model, seats) VALUES (?,?,?)`,
		v.Plate, intdb.NullIfEmpty(v.Model), v.Seats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	var v models.Vehicle
	err := r.db().QueryRow(`
		SELECT id, plate, COALESCE(model,''), seats FROM vehicles WHERE id=?`, id).
		Scan(&v.ID, &v.Plate, &v.Model, &v.Seats)
	return v, err
}

func (r VehicleRepository) List() ([]models.Vehicle, error) {
	rows, err := r.db().Query(`
		SELECT id, plate, COALESCE(model,''), seats FROM vehicles ORDER BY plate ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Model, &v.Seats); err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
