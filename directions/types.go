package directions

import (
	"encoding/json"
	"strconv"
)

// Coordinate is a longitude, latitude pair as used by the directions API and
// the locations file.
type Coordinate [2]float64

func (c Coordinate) Lon() float64 { return c[0] }
func (c Coordinate) Lat() float64 { return c[1] }

func (c Coordinate) String() string {
	return strconv.FormatFloat(c[0], 'f', -1, 64) + "," + strconv.FormatFloat(c[1], 'f', -1, 64)
}

type Annotation struct {
	CongestionNumeric []*int    `json:"congestion_numeric"`
	Duration          []float64 `json:"duration"`
	Distance          []float64 `json:"distance"`
}

type Leg struct {
	Summary    string            `json:"summary"`
	Incidents  []json.RawMessage `json:"incidents,omitempty"`
	Closures   []json.RawMessage `json:"closures,omitempty"`
	Annotation Annotation        `json:"annotation"`
}

type Geometry struct {
	Coordinates []Coordinate `json:"coordinates"`
}

// Route is a single candidate route as returned by the service. Only the
// fields recorded by the sampler are decoded.
type Route struct {
	Duration        float64  `json:"duration"`
	DurationTypical *float64 `json:"duration_typical"`
	Distance        float64  `json:"distance"`
	Legs            []Leg    `json:"legs"`
	Geometry        Geometry `json:"geometry"`
}

type routesResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Routes  []Route `json:"routes"`
}
