package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"medtransport/internal/domain/models"
	"medtransport/internal/repositories"
	"medtransport/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/phpdave11/gofpdf"
)

func safe(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// GET /api/enrollments/:id/ticket
func GetEnrollmentTicketPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid enrollment id", err)
		return
	}

	enrollmentRepo := repositories.EnrollmentRepository{}
	enrollment, err := enrollmentRepo.GetByID(id)
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "enrollment not found", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load enrollment", err)
		return
	}

	tripRepo := repositories.TripRepository{}
	trip, err := tripRepo.GetByID(enrollment.TripID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load trip", err)
		return
	}

	patientRepo := repositories.PatientRepository{}
	patient, err := patientRepo.GetByID(enrollment.PatientID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load patient", err)
		return
	}

	data, filename, err := buildTicketPDF(trip, enrollment, patient)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build ticket", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func buildTicketPDF(trip models.Trip, e models.Enrollment, patient models.Patient) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Transport Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRANSPORT TICKET")
	pdf.Ln(12)

	pickup := "meeting point"
	if e.HomePickup {
		pickup = safe(e.PickupAddress, "home pickup")
	}
	companion := "no"
	if e.Companion {
		companion = safe(e.CompanionName, "yes")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Patient        : %s", safe(patient.Name, "-")),
		fmt.Sprintf("Document       : %s", safe(patient.Document, "-")),
		fmt.Sprintf("Trip           : %s", trip.Code),
		fmt.Sprintf("Destination    : %s", safe(trip.Destination, "-")),
		fmt.Sprintf("Date / Time    : %s %s", safe(trip.TravelDate, "-"), safe(trip.DepartureTime, "-")),
		fmt.Sprintf("Consultation   : %s", safe(e.ConsultationTime, "-")),
		fmt.Sprintf("Pickup         : %s %s", pickup, safe(e.PickupTime, "")),
		fmt.Sprintf("Companion      : %s", companion),
		fmt.Sprintf("Reason         : %s", safe(e.Reason, "-")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := "This ticket covers one patient."
	if e.Companion {
		note = "This ticket covers one patient and one companion."
	}
	pdf.MultiCell(0, 6, note+" Please be at the pickup point 10 minutes early.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("TICKET_%s_%d.pdf", trip.Code, e.ID)
	return buf.Bytes(), filename, nil
}

// GET /api/trips/:code/boarding-sheet
func GetTripBoardingSheetPDF(c *gin.Context) {
	detail, err := tripService(c).GetTrip(c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	patientRepo := repositories.PatientRepository{}
	names := map[int64]string{}
	for _, e := range detail.Enrollments {
		p, err := patientRepo.GetByID(e.PatientID)
		if err == nil {
			names[e.PatientID] = p.Name
		}
	}

	data, filename, err := buildBoardingSheetPDF(detail, names)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build boarding sheet", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func buildBoardingSheetPDF(detail services.TripDetail, patientNames map[int64]string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Boarding Sheet", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "BOARDING SHEET "+detail.Trip.Code)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Destination: %s   Date: %s %s   Seats: %d/%d",
		safe(detail.Trip.Destination, "-"), detail.Trip.TravelDate, detail.Trip.DepartureTime,
		detail.Seats.Occupied, detail.Seats.Total))
	pdf.Ln(10)

	if len(detail.Stops) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Route")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, s := range detail.Stops {
			pdf.Cell(0, 6, fmt.Sprintf("%d. %s (%s) %s", s.StopOrder, s.Name, s.Time, s.Address))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	for i, e := range detail.Enrollments {
		name := safe(patientNames[e.PatientID], fmt.Sprintf("patient #%d", e.PatientID))
		extra := ""
		if e.Companion {
			extra = " (+1 companion)"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s%s - %s", i+1, name, extra, safe(e.Reason, "-")))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 5, "Printed "+time.Now().Format("2006-01-02 15:04"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "BOARDING_"+detail.Trip.Code+".pdf", nil
}
