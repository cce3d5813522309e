package db

import (
	"database/sql"

	"medtransport/internal/utils"
)

// Migrate creates the tables the API needs when they do not exist yet.
// The unique keys on enrollments (trip_id, patient_id) and stops
// (trip_id, stop_order) back the duplicate checks done in the services.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			email VARCHAR(190) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'coordinator',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS patients (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(190) NOT NULL,
			document VARCHAR(60) NOT NULL,
			phone VARCHAR(40) NULL,
			birth_date VARCHAR(10) NULL,
			address VARCHAR(255) NULL,
			notes TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_patients_document (document)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS facilities (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(190) NOT NULL,
			address VARCHAR(255) NULL,
			city VARCHAR(120) NULL,
			phone VARCHAR(40) NULL,
			UNIQUE KEY uq_facilities_name (name)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS drivers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(190) NOT NULL,
			phone VARCHAR(40) NULL,
			license VARCHAR(40) NULL
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			plate VARCHAR(20) NOT NULL,
			model VARCHAR(120) NULL,
			seats INT NOT NULL DEFAULT 0,
			UNIQUE KEY uq_vehicles_plate (plate)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS trips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			code VARCHAR(40) NOT NULL,
			facility_id BIGINT NULL,
			destination VARCHAR(190) NOT NULL,
			destination_address VARCHAR(255) NULL,
			travel_date VARCHAR(10) NOT NULL,
			departure_time VARCHAR(5) NOT NULL,
			consultation_time VARCHAR(5) NULL,
			seat_count INT NOT NULL,
			driver_id BIGINT NULL,
			vehicle_id BIGINT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			notes TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			confirmed_at DATETIME NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_trips_code (code),
			KEY idx_trips_date (travel_date),
			CONSTRAINT fk_trips_facility FOREIGN KEY (facility_id) REFERENCES facilities(id),
			CONSTRAINT fk_trips_driver FOREIGN KEY (driver_id) REFERENCES drivers(id),
			CONSTRAINT fk_trips_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS stops (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_id BIGINT NOT NULL,
			stop_order INT NOT NULL,
			name VARCHAR(190) NOT NULL,
			address VARCHAR(255) NULL,
			time VARCHAR(5) NOT NULL,
			notes TEXT NULL,
			UNIQUE KEY uq_stops_trip_order (trip_id, stop_order),
			CONSTRAINT fk_stops_trip FOREIGN KEY (trip_id) REFERENCES trips(id)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_id BIGINT NOT NULL,
			patient_id BIGINT NOT NULL,
			physician_id BIGINT NULL,
			reason VARCHAR(255) NOT NULL,
			consultation_time VARCHAR(5) NULL,
			notes TEXT NULL,
			companion TINYINT(1) NOT NULL DEFAULT 0,
			companion_name VARCHAR(190) NULL,
			home_pickup TINYINT(1) NOT NULL DEFAULT 0,
			pickup_address VARCHAR(255) NULL,
			stop_id BIGINT NULL,
			pickup_time VARCHAR(5) NULL,
			pickup_notes TEXT NULL,
			attended TINYINT(1) NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_enrollments_trip_patient (trip_id, patient_id),
			CONSTRAINT fk_enrollments_trip FOREIGN KEY (trip_id) REFERENCES trips(id),
			CONSTRAINT fk_enrollments_patient FOREIGN KEY (patient_id) REFERENCES patients(id),
			CONSTRAINT fk_enrollments_stop FOREIGN KEY (stop_id) REFERENCES stops(id)
		) ENGINE=InnoDB`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	utils.Log().Info("database schema ready")
	return nil
}
