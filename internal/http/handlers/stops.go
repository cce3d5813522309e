package handlers

import (
	"net/http"

	"medtransport/internal/http/middleware"
	"medtransport/internal/repositories"
	"medtransport/internal/services"

	"github.com/gin-gonic/gin"
)

func stopService(c *gin.Context) services.StopService {
	return services.StopService{
		TripRepo:  repositories.TripRepository{},
		StopRepo:  repositories.StopRepository{},
		RequestID: middleware.GetRequestID(c),
	}
}

type stopRequest struct {
	Order   int    `json:"order"`
	Name    string `json:"name"`
	Time    string `json:"time"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// POST /api/trips/:code/stops
func AddStop(c *gin.Context) {
	var req stopRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	stop, err := stopService(c).AddStop(c.Param("code"), req.Order, req.Name, req.Time, req.Address, req.Notes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": stop.ID, "order": stop.StopOrder, "name": stop.Name})
}

// GET /api/trips/:code/stops
func ListStops(c *gin.Context) {
	stops, err := stopService(c).ListStops(c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops})
}
