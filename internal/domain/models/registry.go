package models

import "time"

// Patient is referenced by enrollments; the trip core never owns it.
type Patient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone,omitempty"`
	BirthDate string    `json:"birth_date,omitempty"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Facility is a registered destination hospital or clinic.
type Facility struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Driver of a transport vehicle.
type Driver struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	License string `json:"license,omitempty"`
}

// Vehicle registered for transport runs. Seats is used as the default trip
// seat count when a trip is created with a vehicle and no explicit count.
type Vehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Model string `json:"model,omitempty"`
	Seats int    `json:"seats"`
}

// User is a staff account able to operate the coordination API.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"-"`
}
