package repositories

import (
	"database/sql"
	"strings"

	intconfig "medtransport/internal/config"
	"medtransport/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) Insert(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role) VALUES (?,?,?,?)`,
		u.Name, strings.ToLower(strings.TrimSpace(u.Email)), passwordHash, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetByEmail returns the user and its stored password hash.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var u models.User
	var hash string
	err := r.db().QueryRow(`
		SELECT id, name, email, role, password_hash FROM users WHERE email=?`,
		strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &hash)
	return u, hash, err
}
