package handlers

import (
	"net/http"
	"strconv"

	"medtransport/internal/domain/models"
	"medtransport/internal/http/middleware"
	"medtransport/internal/repositories"
	"medtransport/internal/services"

	"github.com/gin-gonic/gin"
)

func enrollmentService(c *gin.Context) services.EnrollmentService {
	return services.EnrollmentService{
		TripRepo:       repositories.TripRepository{},
		EnrollmentRepo: repositories.EnrollmentRepository{},
		PatientRepo:    repositories.PatientRepository{},
		RequestID:      middleware.GetRequestID(c),
	}
}

type enrollRequest struct {
	PatientID int64 `json:"patient_id"`
	models.EnrollmentDetails
}

// POST /api/trips/:code/enrollments
func EnrollPatient(c *gin.Context) {
	var req enrollRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := enrollmentService(c).Enroll(c.Param("code"), req.PatientID, req.EnrollmentDetails)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DELETE /api/trips/:code/enrollments/:patientID
func RemoveEnrollment(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientID"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid patient id", err)
		return
	}

	if err := enrollmentService(c).Remove(c.Param("code"), patientID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "enrollment removed"})
}

type attendanceRequest struct {
	Attended *bool `json:"attended"`
}

// PUT /api/enrollments/:id/attendance
func MarkAttendance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid enrollment id", err)
		return
	}

	var req attendanceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Attended == nil {
		RespondError(c, http.StatusBadRequest, "attended is required", nil)
		return
	}

	if err := enrollmentService(c).MarkAttendance(id, *req.Attended); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance updated"})
}
