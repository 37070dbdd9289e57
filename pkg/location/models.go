package location

// Location is a single fix: the geographical coordinates of the device at one instant.
type Location struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // metres for network fixes, HDOP for sensor fixes, 0 when unknown
}
