package ctparse

import (
	"math"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// boundsMargin pads the shared y axis, in seconds.
const boundsMargin = 30.0

// Point summarizes the durations observed at one time of day, in minutes.
type Point struct {
	Time    time.Time `json:"-"`
	Clock   string    `json:"time"`
	Samples int       `json:"samples"`
	Mean    float64   `json:"mean"`
	StdDev  float64   `json:"std"`

	// Recent is an exponentially weighted mean favouring the latest samples.
	Recent float64 `json:"recent"`

	// raw extremes in seconds, for the shared bounds
	shortest, longest float64
}

type PeriodSeries struct {
	Period Period  `json:"period"`
	Points []Point `json:"points"`
}

type LocationSeries struct {
	Name    string         `json:"name"`
	Periods []PeriodSeries `json:"periods"`
}

// Results is the aggregated log, ready to be rendered. YMin and YMax are
// shared bounds for all panels, in minutes.
type Results struct {
	Locations []LocationSeries `json:"locations"`
	YMin      float64          `json:"y_min"`
	YMax      float64          `json:"y_max"`
}

// Aggregate computes mean and population standard deviation for every
// bucket, ordered by time of day.
func Aggregate(buckets *Buckets) (*Results, error) {
	results := &Results{Locations: []LocationSeries{}}
	low, high := math.Inf(1), math.Inf(-1)

	for _, location := range buckets.Locations() {
		series := LocationSeries{Name: location.Name, Periods: []PeriodSeries{}}

		for _, period := range location.Periods() {
			periodSeries := PeriodSeries{Period: period.Period}

			for _, minute := range period.Minutes() {
				durations := period.Durations(minute)

				point, err := summarize(ClockTime(minute), durations)
				if err != nil {
					return nil, errors.Wrapf(err, "unable to summarize %s %s %s", location.Name, period.Period, point.Clock)
				}
				periodSeries.Points = append(periodSeries.Points, point)

				low = math.Min(low, point.shortest)
				high = math.Max(high, point.longest)
			}

			series.Periods = append(series.Periods, periodSeries)
		}

		results.Locations = append(results.Locations, series)
	}

	if !math.IsInf(low, 1) {
		results.YMin = (low - boundsMargin) / 60
		results.YMax = (high + boundsMargin) / 60
	}

	return results, nil
}

func summarize(clock time.Time, durations []float64) (Point, error) {
	point := Point{
		Time:    clock,
		Clock:   clock.Format("15:04"),
		Samples: len(durations),
	}

	mean, err := stats.Mean(durations)
	if err != nil {
		return point, err
	}
	stdDev, err := stats.StandardDeviationPopulation(durations)
	if err != nil {
		return point, err
	}
	if point.shortest, err = stats.Min(durations); err != nil {
		return point, err
	}
	if point.longest, err = stats.Max(durations); err != nil {
		return point, err
	}

	recent := ewma.NewMovingAverage()
	for _, duration := range durations {
		recent.Add(duration)
	}

	point.Mean = mean / 60
	point.StdDev = stdDev / 60
	point.Recent = recent.Value() / 60

	return point, nil
}
