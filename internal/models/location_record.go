package models

import "fmt"

// LocationRecord is a single captured coordinate pair as persisted in the record store.
// Records are append-only: the store assigns ID on insert and nothing mutates them afterwards.
type LocationRecord struct {
	ID        int64  `json:"id"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Title is the list heading shown for the record.
func (r LocationRecord) Title() string {
	return fmt.Sprintf("Location %d", r.ID)
}

// Description is the list subtitle shown for the record.
func (r LocationRecord) Description() string {
	return fmt.Sprintf("Latitude: %s | Longitude: %s", r.Latitude, r.Longitude)
}
