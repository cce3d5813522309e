package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medtransport/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestRespondDomainErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.ValidationError{Msg: "nothing to update"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "trip"}, http.StatusNotFound},
		{"conflict", domain.ConflictError{Resource: "enrollment", Msg: "patient already enrolled in this trip"}, http.StatusConflict},
		{"capacity", domain.CapacityError{Needed: 2, Available: 1}, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		RespondDomainError(c, tc.err)
		if w.Code != tc.status {
			t.Fatalf("%s: got status %d want %d", tc.name, w.Code, tc.status)
		}
	}
}

func TestCapacityErrorCarriesCounts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	RespondDomainError(c, domain.CapacityError{TripCode: "TRP-1", Needed: 2, Available: 1})

	var body struct {
		Code    string `json:"code"`
		Details struct {
			Needed    int `json:"needed"`
			Available int `json:"available"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if body.Code != "capacity_exceeded" {
		t.Fatalf("unexpected code %q", body.Code)
	}
	if body.Details.Needed != 2 || body.Details.Available != 1 {
		t.Fatalf("counts not surfaced: %+v", body.Details)
	}
}
