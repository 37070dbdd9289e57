package location

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"
	"github.com/tarm/serial"
)

// ErrNoFix is returned when the sensor stream ends without a usable position sentence.
var ErrNoFix = errors.New("no valid GPS data found")

// DeviceSensorProvider is responsible for retrieving location data from a GPS device connected via serial port.
type DeviceSensorProvider struct {
	port        string        // Serial port to which the GPS device is connected
	baudRate    int           // Baud rate for the serial communication
	readTimeout time.Duration // Per-read timeout on the port, 0 blocks

	openPort func(*serial.Config) (io.ReadCloser, error)
}

// NewDeviceSensorProvider creates a new instance of DeviceSensorProvider with the specified port and baud rate.
func NewDeviceSensorProvider(port string, baudRate int) *DeviceSensorProvider {
	return &DeviceSensorProvider{
		port:        port,
		baudRate:    baudRate,
		readTimeout: 5 * time.Second,
		openPort: func(c *serial.Config) (io.ReadCloser, error) {
			return serial.OpenPort(c)
		},
	}
}

// GetLocation reads GPS data from the device and returns the device's location.
// The port is closed when ctx is done, which unblocks a pending read.
func (d *DeviceSensorProvider) GetLocation(ctx context.Context) (Location, error) {
	if err := ctx.Err(); err != nil {
		return Location{}, err
	}

	s, err := d.openPort(&serial.Config{Name: d.port, Baud: d.baudRate, ReadTimeout: d.readTimeout})
	if err != nil {
		return Location{}, err
	}

	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer func() {
		if stop() {
			s.Close()
		}
	}()

	loc, err := ReadFix(s)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Location{}, ctxErr
	}
	return loc, err
}

// Close is a no-op: the port is opened per read.
func (d *DeviceSensorProvider) Close() error {
	return nil
}

// ReadFix scans an NMEA 0183 stream and returns the first valid GGA or RMC position.
// Sentences with a bad checksum or without a fix are skipped.
func ReadFix(r io.Reader) (Location, error) {
	var lastErr error

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			lastErr = err
			continue
		}

		switch s := sentence.(type) {
		case nmea.GGA:
			if s.FixQuality == "" || s.FixQuality == "0" {
				continue
			}
			// HDOP stands in for accuracy
			return Location{Latitude: s.Latitude, Longitude: s.Longitude, Accuracy: s.HDOP}, nil
		case nmea.RMC:
			if s.Validity != "A" {
				continue
			}
			return Location{Latitude: s.Latitude, Longitude: s.Longitude}, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return Location{}, err
	}
	if lastErr != nil {
		return Location{}, errors.Join(ErrNoFix, lastErr)
	}
	return Location{}, ErrNoFix
}
