package commute

import (
	"time"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
)

type GateDecision struct {
	Proceed  bool
	IsReturn bool

	// Departure is the gated instant in the configured time zone.
	Departure time.Time
}

// Gate decides whether now is a sampling moment and which way the trips go.
// An hour listed both as departure and return hour is treated as a return
// hour.
func Gate(now time.Time, config commuteconfig.SamplingConfig, force bool) GateDecision {
	if config.Location != nil {
		now = now.In(config.Location)
	}

	hour := now.Hour()
	isReturn := config.IsReturnHour(hour)
	scheduled := config.HasDay(IsoWeekday(now)) && (config.IsDepartureHour(hour) || isReturn)

	return GateDecision{
		Proceed:   force || scheduled,
		IsReturn:  isReturn,
		Departure: now,
	}
}
