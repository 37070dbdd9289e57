package services

import "errors"

var (
	// ErrPermissionDenied means the user refused access to the device location.
	ErrPermissionDenied = errors.New("permission denied to access location")
	// ErrSensorFailure means no fix could be obtained from the location source.
	ErrSensorFailure = errors.New("location sensor failure")
	// ErrStorageFailure means the record store could not be written or read.
	ErrStorageFailure = errors.New("location storage failure")
)

// Kind classifies a capture failure for presentation.
type Kind int

const (
	KindUnknown Kind = iota
	KindPermissionDenied
	KindSensorFailure
	KindStorageFailure
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission_denied"
	case KindSensorFailure:
		return "sensor_failure"
	case KindStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// ErrorKind reports which class of failure err belongs to.
func ErrorKind(err error) Kind {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrSensorFailure):
		return KindSensorFailure
	case errors.Is(err, ErrStorageFailure):
		return KindStorageFailure
	default:
		return KindUnknown
	}
}
