package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"medtransport/internal/domain/models"
	"medtransport/internal/http/middleware"
	"medtransport/internal/repositories"
	"medtransport/internal/services"

	"github.com/gin-gonic/gin"
)

func registryService(c *gin.Context) services.RegistryService {
	return services.RegistryService{
		PatientRepo:  repositories.PatientRepository{},
		FacilityRepo: repositories.FacilityRepository{},
		DriverRepo:   repositories.DriverRepository{},
		VehicleRepo:  repositories.VehicleRepository{},
		RequestID:    middleware.GetRequestID(c),
	}
}

// POST /api/patients
func CreatePatient(c *gin.Context) {
	var p models.Patient
	if !BindJSONOrError(c, &p) {
		return
	}
	id, err := registryService(c).CreatePatient(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/patients
func ListPatients(c *gin.Context) {
	repo := repositories.PatientRepository{}
	patients, err := repo.Search(c.Query("name"), c.Query("document"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list patients", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// GET /api/patients/:id
func GetPatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid patient id", err)
		return
	}
	repo := repositories.PatientRepository{}
	p, err := repo.GetByID(id)
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "patient not found", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load patient", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/patients/:id
func UpdatePatient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid patient id", err)
		return
	}
	var p models.Patient
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := registryService(c).UpdatePatient(id, p); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "patient updated"})
}

// POST /api/facilities
func CreateFacility(c *gin.Context) {
	var f models.Facility
	if !BindJSONOrError(c, &f) {
		return
	}
	id, err := registryService(c).CreateFacility(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/facilities
func ListFacilities(c *gin.Context) {
	repo := repositories.FacilityRepository{}
	facilities, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list facilities", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facilities": facilities})
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var d models.Driver
	if !BindJSONOrError(c, &d) {
		return
	}
	id, err := registryService(c).CreateDriver(d)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/drivers
func ListDrivers(c *gin.Context) {
	repo := repositories.DriverRepository{}
	drivers, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list drivers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// POST /api/vehicles
func CreateVehicle(c *gin.Context) {
	var v models.Vehicle
	if !BindJSONOrError(c, &v) {
		return
	}
	id, err := registryService(c).CreateVehicle(v)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GET /api/vehicles
func ListVehicles(c *gin.Context) {
	repo := repositories.VehicleRepository{}
	vehicles, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list vehicles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}
