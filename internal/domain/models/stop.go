package models

// Stop is an ordered pickup point on a trip route. StopOrder is unique per
// trip; a duplicate insert is rejected, never overwritten.
type Stop struct {
	ID        int64  `json:"id"`
	TripID    int64  `json:"trip_id"`
	StopOrder int    `json:"stop_order"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
}
