package repositories

import (
	"database/sql"
	"strings"

	intconfig "medtransport/internal/config"
	intdb "medtransport/internal/db"
	"medtransport/internal/domain/models"
)

type PatientRepository struct {
	DB *sql.DB
}

func (r PatientRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PatientRepository) Insert(p models.Patient) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO patients (name, document, phone, birth_date, address, notes, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		p.Name,
		p.Document,
		intdb.NullIfEmpty(p.Phone),
		intdb.NullIfEmpty(p.BirthDate),
		intdb.NullIfEmpty(p.Address),
		intdb.NullIfEmpty(p.Notes),
		p.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PatientRepository) GetByID(id int64) (models.Patient, error) {
	var p models.Patient
	err := r.db().QueryRow(`
		SELECT id, name, document, COALESCE(phone,''), COALESCE(birth_date,''),
		       COALESCE(address,''), COALESCE(notes,''), created_at
		FROM patients WHERE id=?`, id).Scan(
		&p.ID, &p.Name, &p.Document, &p.Phone, &p.BirthDate, &p.Address, &p.Notes, &p.CreatedAt)
	return p, err
}

// Search lists patients, optionally filtered by a name fragment or exact
// document number.
func (r PatientRepository) Search(name, document string) ([]models.Patient, error) {
	where := []string{"1=1"}
	args := []any{}
	if strings.TrimSpace(name) != "" {
		where = append(where, "name LIKE ?")
		args = append(args, "%"+strings.TrimSpace(name)+"%")
	}
	if strings.TrimSpace(document) != "" {
		where = append(where, "document=?")
		args = append(args, strings.TrimSpace(document))
	}

	rows, err := r.db().Query(`
		SELECT id, name, document, COALESCE(phone,''), COALESCE(birth_date,''),
		       COALESCE(address,''), COALESCE(notes,''), created_at
		FROM patients WHERE `+strings.Join(where, " AND ")+` ORDER BY name ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Patient{}
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Document, &p.Phone, &p.BirthDate, &p.Address, &p.Notes, &p.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PatientRepository) Update(id int64, p models.Patient) (int64, error) {
	res, err := r.db().Exec(`
		UPDATE patients SET name=?, phone=?, birth_date=?, address=?, notes=? WHERE id=?`,
		p.Name,
		intdb.NullIfEmpty(p.Phone),
		intdb.NullIfEmpty(p.BirthDate),
		intdb.NullIfEmpty(p.Address),
		intdb.NullIfEmpty(p.Notes),
		id,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
