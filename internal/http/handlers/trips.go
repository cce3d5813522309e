package handlers

import (
	"net/http"

	"medtransport/internal/domain/models"
	"medtransport/internal/http/middleware"
	"medtransport/internal/repositories"
	"medtransport/internal/services"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{
		TripRepo:       repositories.TripRepository{},
		StopRepo:       repositories.StopRepository{},
		EnrollmentRepo: repositories.EnrollmentRepository{},
		FacilityRepo:   repositories.FacilityRepository{},
		DriverRepo:     repositories.DriverRepository{},
		VehicleRepo:    repositories.VehicleRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}

	trip, err := tripService(c).CreateTrip(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": trip.ID, "code": trip.Code, "trip": trip})
}

// GET /api/trips
func ListTrips(c *gin.Context) {
	trips, err := tripService(c).ListTrips(c.Query("date"), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:code
func GetTrip(c *gin.Context) {
	detail, err := tripService(c).GetTrip(c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PUT /api/trips/:code
func UpdateTrip(c *gin.Context) {
	var u models.TripUpdate
	if !BindJSONOrError(c, &u) {
		return
	}

	trip, err := tripService(c).UpdateTrip(c.Param("code"), u)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/trips/:code/status
func ChangeTripStatus(c *gin.Context) {
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	trip, err := tripService(c).ChangeStatus(c.Param("code"), models.TripStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// GET /api/trips/:code/seats
func GetTripSeats(c *gin.Context) {
	svc := services.CapacityService{
		TripRepo:       repositories.TripRepository{},
		EnrollmentRepo: repositories.EnrollmentRepository{},
	}
	seats, err := svc.SeatsForTrip(c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}
