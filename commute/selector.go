package commute

import "github.com/commute-analytics/commute-traffic/directions"

// SelectRoutes picks the faster of the first two candidates as primary and
// the other as alternate. Later candidates are ignored.
func SelectRoutes(candidates []directions.Route) (directions.Route, *directions.Route, error) {
	if len(candidates) == 0 {
		return directions.Route{}, nil, &DataIntegrityError{Reason: "no candidate routes"}
	}

	primary := candidates[0]
	if len(candidates) == 1 {
		return primary, nil, nil
	}

	alternate := candidates[1]
	if alternate.Duration < primary.Duration {
		primary, alternate = alternate, primary
	}

	return primary, &alternate, nil
}
