package models

import "testing"

func TestTripStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to TripStatus
		ok       bool
	}{
		{TripStatusPending, TripStatusConfirmed, true},
		{TripStatusPending, TripStatusCancelled, true},
		{TripStatusPending, TripStatusCompleted, false},
		{TripStatusConfirmed, TripStatusCompleted, true},
		{TripStatusConfirmed, TripStatusCancelled, true},
		{TripStatusConfirmed, TripStatusPending, false},
		{TripStatusCompleted, TripStatusCancelled, false},
		{TripStatusCompleted, TripStatusConfirmed, false},
		{TripStatusCancelled, TripStatusPending, false},
		{TripStatusCancelled, TripStatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: got %t want %t", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestValidTripStatus(t *testing.T) {
	for _, s := range []TripStatus{TripStatusPending, TripStatusConfirmed, TripStatusCompleted, TripStatusCancelled} {
		if !ValidTripStatus(s) {
			t.Fatalf("%s should be valid", s)
		}
	}
	if ValidTripStatus("boarding") {
		t.Fatal("unknown status accepted")
	}
}

func TestTripUpdateEmpty(t *testing.T) {
	if !(TripUpdate{}).Empty() {
		t.Fatal("zero update should be empty")
	}
	notes := "bring wheelchair ramp"
	if (TripUpdate{Notes: &notes}).Empty() {
		t.Fatal("update with a field should not be empty")
	}
}
