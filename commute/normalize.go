package commute

import (
	"encoding/json"
	"fmt"

	"github.com/commute-analytics/commute-traffic/directions"
)

// NormalizeRoute projects a service route into a RouteRecord. Routes with
// more than one leg, or whose geometry does not line up with the per step
// annotations, are rejected.
func NormalizeRoute(route directions.Route) (RouteRecord, error) {
	if len(route.Legs) != 1 {
		return RouteRecord{}, &DataIntegrityError{
			Reason: fmt.Sprintf("expected exactly 1 leg, got %d", len(route.Legs)),
		}
	}
	leg := route.Legs[0]

	if len(route.Geometry.Coordinates) != len(leg.Annotation.CongestionNumeric)+1 {
		return RouteRecord{}, &DataIntegrityError{
			Reason: fmt.Sprintf("%d coordinates for %d congestion annotations",
				len(route.Geometry.Coordinates), len(leg.Annotation.CongestionNumeric)),
		}
	}

	record := RouteRecord{
		Duration:        route.Duration,
		DurationTypical: route.DurationTypical,
		Distance:        route.Distance,
		Summary:         leg.Summary,
		Incidents:       leg.Incidents,
		Closures:        leg.Closures,
		StepCoordinates: route.Geometry.Coordinates,
		StepCongestion:  leg.Annotation.CongestionNumeric,
		StepDuration:    leg.Annotation.Duration,
		StepDistance:    leg.Annotation.Distance,
	}

	if record.Incidents == nil {
		record.Incidents = []json.RawMessage{}
	}
	if record.Closures == nil {
		record.Closures = []json.RawMessage{}
	}

	return record, nil
}
