// Package reading turns raw submitted odometer and clock values into a
// validated distance and elapsed duration.
package reading

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Bearmun/vossenjacht/internal/common"
)

type Precision string

const (
	PrecisionIntegral   Precision = "integral"
	PrecisionFractional Precision = "fractional"
)

func ParsePrecision(s string) (Precision, error) {
	switch Precision(s) {
	case PrecisionIntegral, PrecisionFractional:
		return Precision(s), nil
	}
	return "", common.Errorf("unknown reading precision %q: %w", s, common.ErrBadRequest)
}

// Clock is a time of day with no date component.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict 24-hour "HH:MM" value.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return Clock{}, common.Errorf("%q: %w", s, common.ErrInvalidTimeFormat)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, common.Errorf("%q: %w", s, common.ErrInvalidTimeFormat)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return Clock{}, common.Errorf("%q: %w", s, common.ErrInvalidTimeFormat)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, common.Errorf("%q: %w", s, common.ErrInvalidTimeFormat)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Policy is the global normalization policy: the instrument modulus, the
// arithmetic precision, and the reference instant durations are measured
// from. There is exactly one policy per deployment.
type Policy struct {
	Modulus   float64
	Precision Precision
	Reference Clock
}

func NewPolicy(modulus float64, precision, reference string) (Policy, error) {
	if modulus <= 0 {
		return Policy{}, common.Errorf("odometer modulus must be positive, got %v: %w", modulus, common.ErrBadRequest)
	}
	p, err := ParsePrecision(precision)
	if err != nil {
		return Policy{}, err
	}
	ref, err := ParseClock(reference)
	if err != nil {
		return Policy{}, err
	}
	return Policy{Modulus: modulus, Precision: p, Reference: ref}, nil
}

// Reading is a normalized submission: the validated raw values plus the
// derived distance and duration.
type Reading struct {
	Start    float64
	End      float64
	Arrival  Clock
	Distance float64
	// Duration is minutes elapsed from the reference instant. Arrivals
	// before the reference yield a negative value; that is accepted.
	Duration int
}

// Normalize validates the raw form values and derives distance and duration.
//
// A single rollover of the odometer is corrected for: when the end reading is
// below the start reading the instrument is assumed to have wrapped exactly
// once. Two or more wraps within one leg are indistinguishable from bad data;
// a distance that stays negative after correction is rejected, never clamped.
func (p Policy) Normalize(startRaw, endRaw, arrivalRaw string) (Reading, error) {
	start, err := p.parseReading(startRaw)
	if err != nil {
		return Reading{}, err
	}
	end, err := p.parseReading(endRaw)
	if err != nil {
		return Reading{}, err
	}
	arrival, err := ParseClock(arrivalRaw)
	if err != nil {
		return Reading{}, err
	}

	distance := end - start
	if end < start {
		// Single rollover assumed.
		distance = end + p.Modulus - start
	}
	if distance < 0 {
		return Reading{}, common.Errorf("start %v, end %v, modulus %v: %w", start, end, p.Modulus, common.ErrInvalidReading)
	}
	if p.Precision == PrecisionFractional {
		distance = math.Round(distance*10) / 10
	}

	return Reading{
		Start:    start,
		End:      end,
		Arrival:  arrival,
		Distance: distance,
		Duration: arrival.Minutes() - p.Reference.Minutes(),
	}, nil
}

func (p Policy) parseReading(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, common.Errorf("%q is not a number: %w", raw, common.ErrInvalidReading)
	}
	if value < 0 || value >= p.Modulus {
		return 0, common.Errorf("%v outside [0, %v): %w", value, p.Modulus, common.ErrInvalidReading)
	}
	if p.Precision == PrecisionIntegral && value != math.Trunc(value) {
		return 0, common.Errorf("%v is not integral: %w", value, common.ErrInvalidReading)
	}
	return value, nil
}
