package commute

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/commute-analytics/commute-traffic/directions"
)

// SchemaVersion is written into every entry. Version 1 lines carry no
// version and no name; every field the analysis reads is present in both.
const SchemaVersion = 2

// RouteRecord is the part of a route that is kept in the log.
type RouteRecord struct {
	Duration        float64                 `json:"duration"`
	DurationTypical *float64                `json:"duration_typical"`
	Distance        float64                 `json:"distance"`
	Summary         string                  `json:"summary"`
	Incidents       []json.RawMessage       `json:"incidents"`
	Closures        []json.RawMessage       `json:"closures"`
	StepCoordinates []directions.Coordinate `json:"step_coordinates"`
	StepCongestion  []*int                  `json:"step_congestion"`
	StepDuration    []float64               `json:"step_duration"`
	StepDistance    []float64               `json:"step_distance"`
}

// SampleEntry is the observation of one location at one sampling instant.
type SampleEntry struct {
	Version    int          `json:"version,omitempty"`
	Name       string       `json:"name,omitempty"`
	Departure  time.Time    `json:"departure"`
	IsWeekend  *bool        `json:"is_weekend,omitempty"`
	IsMorning  bool         `json:"is_morning"`
	IsoWeekday int          `json:"isoweekday"`
	Hour       int          `json:"hour"`
	Minute     int          `json:"minute"`
	Route      RouteRecord  `json:"route"`
	RouteAlt   *RouteRecord `json:"route_alt"`
}

// Weekend reports whether the entry was taken on a Saturday or Sunday. Entries
// without the flag fall back to their weekday.
func (e SampleEntry) Weekend() bool {
	if e.IsWeekend != nil {
		return *e.IsWeekend
	}
	return e.IsoWeekday >= 6
}

// Sample holds one entry per configured location, in configuration order.
type Sample []SampleEntry

// EncodeSample renders a sample as a single log line including the trailing
// newline.
func EncodeSample(sample Sample) ([]byte, error) {
	if sample == nil {
		sample = Sample{}
	}

	line, err := json.Marshal(sample)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode sample")
	}

	return append(line, '\n'), nil
}

// IsoWeekday numbers Monday 1 through Sunday 7.
func IsoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}
