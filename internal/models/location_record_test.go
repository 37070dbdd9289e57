package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationRecord_DisplayStrings(t *testing.T) {
	r := LocationRecord{ID: 7, Latitude: "12.345678", Longitude: "-98.765432"}

	assert.Equal(t, "Location 7", r.Title())
	assert.Equal(t, "Latitude: 12.345678 | Longitude: -98.765432", r.Description())
}
