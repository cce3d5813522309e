package api

import (
	stdhttp "net/http"

	intconfig "medtransport/internal/config"
	h "medtransport/internal/http/handlers"
	"medtransport/internal/http/middleware"
	"medtransport/internal/utils"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log().Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		protected := api.Group("")
		protected.Use(middleware.Auth(h.JWTSecret()))

		// Trips
		trips := protected.Group("/trips")
		trips.GET("", h.ListTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:code", h.GetTrip)
		trips.PUT("/:code", h.UpdateTrip)
		trips.PUT("/:code/status", h.ChangeTripStatus)
		trips.GET("/:code/seats", h.GetTripSeats)
		trips.GET("/:code/boarding-sheet", h.GetTripBoardingSheetPDF)

		// Route stops
		trips.GET("/:code/stops", h.ListStops)
		trips.POST("/:code/stops", h.AddStop)

		// Enrollments
		trips.POST("/:code/enrollments", h.EnrollPatient)
		trips.DELETE("/:code/enrollments/:patientID", h.RemoveEnrollment)
		enrollments := protected.Group("/enrollments")
		enrollments.PUT("/:id/attendance", h.MarkAttendance)
		enrollments.GET("/:id/ticket", h.GetEnrollmentTicketPDF)

		// Registries
		patients := protected.Group("/patients")
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)

		facilities := protected.Group("/facilities")
		facilities.GET("", h.ListFacilities)
		facilities.POST("", h.CreateFacility)

		drivers := protected.Group("/drivers")
		drivers.GET("", h.ListDrivers)
		drivers.POST("", h.CreateDriver)

		vehicles := protected.Group("/vehicles")
		vehicles.GET("", h.ListVehicles)
		vehicles.POST("", h.CreateVehicle)
	}

	return r
}
