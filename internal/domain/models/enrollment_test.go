package models

import "testing"

func TestSeatCost(t *testing.T) {
	if SeatCost(false) != 1 {
		t.Fatal("solo enrollment must cost 1 seat")
	}
	if SeatCost(true) != 2 {
		t.Fatal("companion enrollment must cost 2 seats")
	}
	if (Enrollment{Companion: true}).SeatCost() != 2 {
		t.Fatal("method form disagrees")
	}
}
