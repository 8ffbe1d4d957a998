package commute

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
	"github.com/commute-analytics/commute-traffic/directions"
)

// RouteFetcher returns the candidate routes for a trip through the given
// coordinates, ranked by the service.
type RouteFetcher interface {
	FetchRoutes(ctx context.Context, coordinates []directions.Coordinate) ([]directions.Route, error)
}

// Recorder persists a complete sample.
type Recorder interface {
	Record(sample Sample) error
}

// SamplerConfig configures a Sampler. Fetcher is required, and so is
// Recorder for any run that is not forced.
type SamplerConfig struct {
	Sampling  commuteconfig.SamplingConfig
	Locations commuteconfig.Locations
	Fetcher   RouteFetcher
	Recorder  Recorder

	// TestOutput receives the sample instead of the Recorder on forced runs.
	TestOutput io.Writer
	Now        func() time.Time
	Logger     logrus.FieldLogger
}

type Sampler struct {
	config SamplerConfig
}

func NewSampler(config SamplerConfig) *Sampler {
	if config.TestOutput == nil {
		config.TestOutput = os.Stdout
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	return &Sampler{config: config}
}

// Run takes one sample of every configured location. Outside the schedule it
// returns a nil sample and does nothing, unless force is set, in which case
// the sample is written to the test output rather than recorded. Any failure
// aborts the whole run: a sample is recorded completely or not at all.
func (s *Sampler) Run(ctx context.Context, force bool) (Sample, error) {
	decision := Gate(s.config.Now(), s.config.Sampling, force)
	logger := s.config.Logger.WithFields(logrus.Fields{
		"departure": decision.Departure.Format(time.RFC3339),
		"is_return": decision.IsReturn,
		"forced":    force,
	})

	if !decision.Proceed {
		logger.Debug("not a sampling moment, skipping")
		return nil, nil
	}

	if s.config.Fetcher == nil {
		return nil, errors.New("no route fetcher configured")
	}
	if !force && s.config.Recorder == nil {
		return nil, errors.New("no recorder configured")
	}

	sample := make(Sample, 0, s.config.Locations.Len())
	for _, place := range s.config.Locations.Places {
		entry, err := s.sampleLocation(ctx, place, decision)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to sample %s", place.Name)
		}

		logger.WithFields(logrus.Fields{
			"location": place.Name,
			"duration": entry.Route.Duration,
			"summary":  entry.Route.Summary,
		}).Debug("sampled location")

		sample = append(sample, entry)
	}

	if force {
		line, err := EncodeSample(sample)
		if err != nil {
			return nil, err
		}
		if _, err := s.config.TestOutput.Write(line); err != nil {
			return nil, errors.Wrap(err, "unable to write test sample")
		}
		return sample, nil
	}

	if err := s.config.Recorder.Record(sample); err != nil {
		return nil, errors.Wrap(err, "unable to record sample")
	}

	logger.WithField("locations", len(sample)).Info("recorded sample")

	return sample, nil
}

func (s *Sampler) sampleLocation(ctx context.Context, place commuteconfig.Location, decision GateDecision) (SampleEntry, error) {
	trip := []directions.Coordinate{place.Coordinate, s.config.Locations.Work}
	if decision.IsReturn {
		trip[0], trip[1] = trip[1], trip[0]
	}

	candidates, err := s.config.Fetcher.FetchRoutes(ctx, trip)
	if err != nil {
		return SampleEntry{}, err
	}

	primary, alternate, err := SelectRoutes(candidates)
	if err != nil {
		return SampleEntry{}, err
	}

	entry := newEntry(place.Name, decision)

	if entry.Route, err = NormalizeRoute(primary); err != nil {
		return SampleEntry{}, err
	}

	if alternate != nil {
		record, err := NormalizeRoute(*alternate)
		if err != nil {
			return SampleEntry{}, errors.Wrap(err, "alternate route")
		}
		entry.RouteAlt = &record
	}

	return entry, nil
}

func newEntry(name string, decision GateDecision) SampleEntry {
	departure := decision.Departure
	weekday := IsoWeekday(departure)
	weekend := weekday >= 6

	return SampleEntry{
		Version:    SchemaVersion,
		Name:       name,
		Departure:  departure,
		IsWeekend:  &weekend,
		IsMorning:  !decision.IsReturn,
		IsoWeekday: weekday,
		Hour:       departure.Hour(),
		Minute:     departure.Minute(),
	}
}
