package osmparser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrMissingSpeedLimit = errors.New("missing speed limit")
	ErrInvalidSpeedTag   = errors.New("invalid speed tag")
)

// ParseMaxSpeed converts an OSM maxspeed value to mph.
// "50" and "50 km/h" are km/h, "30 mph" is mph, "10 knots" is knots.
func ParseMaxSpeed(value string) (float64, error) {
	value = strings.TrimSpace(value)
	var (
		num    string
		factor float64
	)
	switch {
	case strings.HasSuffix(value, "mph"):
		num, factor = strings.TrimSuffix(value, "mph"), 1
	case strings.HasSuffix(value, "km/h"):
		num, factor = strings.TrimSuffix(value, "km/h"), 1/kmhPerMph
	case strings.HasSuffix(value, "knots"):
		num, factor = strings.TrimSuffix(value, "knots"), 1/knotsPerMph
	default:
		num, factor = value, 1/kmhPerMph
	}

	speed, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: maxspeed=%q", ErrInvalidSpeedTag, value)
	}
	if !(speed > 0) || math.IsInf(speed, 1) {
		return 0, fmt.Errorf("%w: maxspeed=%q must be positive", ErrInvalidSpeedTag, value)
	}
	return speed * factor, nil
}

func parseMaxSpeedMph(value string) (float64, error) {
	speed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidSpeedTag, TagMaxSpeedMph, value)
	}
	if !(speed > 0) || math.IsInf(speed, 1) {
		return 0, fmt.Errorf("%w: %s=%q must be positive", ErrInvalidSpeedTag, TagMaxSpeedMph, value)
	}
	return speed, nil
}

// ResolveSpeedLimit returns the way's speed in mph: the maxspeed_mph tag, then the OSM
// maxspeed tag, then the default for its road class. An explicit tag that cannot be used is
// passed to onInvalid (may be nil) and resolution falls through to the next source.
func ResolveSpeedLimit(way WayRecord, onInvalid func(error)) (float64, error) {
	if v, ok := way.Tag(TagMaxSpeedMph); ok {
		speed, err := parseMaxSpeedMph(v)
		if err == nil {
			return speed, nil
		}
		if onInvalid != nil {
			onInvalid(err)
		}
	}

	if v, ok := way.Tag(TagMaxSpeed); ok {
		speed, err := ParseMaxSpeed(v)
		if err == nil {
			return speed, nil
		}
		if onInvalid != nil {
			onInvalid(err)
		}
	}

	if speed, ok := DefaultSpeedLimitMph[way.RoadClass()]; ok {
		return speed, nil
	}
	return 0, fmt.Errorf("%w: way %d with highway=%q", ErrMissingSpeedLimit, way.ID, way.RoadClass())
}
