package ctparse

import (
	"sort"
	"time"
)

type Period string

const (
	PeriodAfternoon Period = "afternoon"
	PeriodMorning   Period = "morning"
)

func periodOf(isMorning bool) Period {
	if isMorning {
		return PeriodMorning
	}
	return PeriodAfternoon
}

// ClockTime places a time of day on 1970-01-01 UTC so that only the time of
// day matters for ordering and formatting.
func ClockTime(minuteOfDay int) time.Time {
	return time.Date(1970, time.January, 1, minuteOfDay/60, minuteOfDay%60, 0, 0, time.UTC)
}

// Buckets groups observed durations by location, period and minute of day.
// Locations keep the order in which they were first added.
type Buckets struct {
	locations []*LocationBuckets
	byName    map[string]*LocationBuckets
}

type LocationBuckets struct {
	Name    string
	periods map[Period]*PeriodBuckets
}

type PeriodBuckets struct {
	Period    Period
	durations map[int][]float64
}

func NewBuckets() *Buckets {
	return &Buckets{
		byName: make(map[string]*LocationBuckets),
	}
}

// Location returns the buckets of name, creating them if needed.
func (b *Buckets) Location(name string) *LocationBuckets {
	if location, ok := b.byName[name]; ok {
		return location
	}

	location := &LocationBuckets{
		Name:    name,
		periods: make(map[Period]*PeriodBuckets),
	}
	b.byName[name] = location
	b.locations = append(b.locations, location)

	return location
}

func (b *Buckets) Locations() []*LocationBuckets {
	return b.locations
}

// Add records one duration, in seconds, observed at hour:minute.
func (b *Buckets) Add(name string, period Period, hour, minute int, duration float64) {
	b.Location(name).Period(period).add(hour*60+minute, duration)
}

// Period returns the buckets of period, creating them if needed.
func (l *LocationBuckets) Period(period Period) *PeriodBuckets {
	if buckets, ok := l.periods[period]; ok {
		return buckets
	}

	buckets := &PeriodBuckets{
		Period:    period,
		durations: make(map[int][]float64),
	}
	l.periods[period] = buckets

	return buckets
}

// Periods returns the non-empty periods sorted by name.
func (l *LocationBuckets) Periods() []*PeriodBuckets {
	periods := make([]*PeriodBuckets, 0, len(l.periods))
	for _, buckets := range l.periods {
		if len(buckets.durations) > 0 {
			periods = append(periods, buckets)
		}
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period < periods[j].Period
	})

	return periods
}

func (p *PeriodBuckets) add(minuteOfDay int, duration float64) {
	p.durations[minuteOfDay] = append(p.durations[minuteOfDay], duration)
}

// Minutes returns the minutes of day with observations, ascending.
func (p *PeriodBuckets) Minutes() []int {
	minutes := make([]int, 0, len(p.durations))
	for minute := range p.durations {
		minutes = append(minutes, minute)
	}
	sort.Ints(minutes)

	return minutes
}

// Durations returns the durations observed at minuteOfDay in log order.
func (p *PeriodBuckets) Durations(minuteOfDay int) []float64 {
	return p.durations[minuteOfDay]
}
