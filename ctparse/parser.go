package ctparse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/commute-analytics/commute-traffic/commute"
	"github.com/commute-analytics/commute-traffic/commuteconfig"
)

// maxLineSize bounds a single log line. Full route geometries for a handful
// of locations stay well below it.
const maxLineSize = 64 * 1024 * 1024

// Parser buckets the samples of a commute log against the configured
// locations.
type Parser struct {
	names  []string
	logger logrus.FieldLogger
}

func NewParser(locations commuteconfig.Locations, logger logrus.FieldLogger) *Parser {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Parser{
		names:  locations.Names(),
		logger: logger,
	}
}

// Parse reads the log line by line. A line that is not JSON, or whose entries
// do not match the configured locations, aborts the parse.
func (p *Parser) Parse(input io.Reader) (*Buckets, error) {
	buckets := NewBuckets()
	for _, name := range p.names {
		buckets.Location(name)
	}

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)

	lineNumber, skipped := 0, 0
	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var sample commute.Sample
		if err := json.Unmarshal([]byte(line), &sample); err != nil {
			return nil, &ParseError{Line: lineNumber, Err: err}
		}
		var present []entryFields
		if err := json.Unmarshal([]byte(line), &present); err != nil {
			return nil, &ParseError{Line: lineNumber, Err: err}
		}

		if err := p.validate(sample, present, lineNumber); err != nil {
			return nil, err
		}

		for i, entry := range sample {
			if entry.Weekend() {
				skipped++
				continue
			}

			buckets.Add(p.names[i], periodOf(entry.IsMorning), entry.Hour, entry.Minute, entry.Route.Duration)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read log after line %d", lineNumber)
	}

	p.logger.WithFields(logrus.Fields{
		"lines":   lineNumber,
		"weekend": skipped,
	}).Debug("parsed commute log")

	return buckets, nil
}

// entryFields records which of the keys the parser depends on an entry
// actually carries. Decoding into commute.SampleEntry alone would turn a
// missing key into a zero value.
type entryFields struct {
	IsMorning  *bool `json:"is_morning"`
	IsoWeekday *int  `json:"isoweekday"`
	Hour       *int  `json:"hour"`
	Minute     *int  `json:"minute"`
	Route      *struct {
		Duration *float64 `json:"duration"`
	} `json:"route"`
}

func (f entryFields) missing() string {
	switch {
	case f.IsMorning == nil:
		return "is_morning"
	case f.IsoWeekday == nil:
		return "isoweekday"
	case f.Hour == nil:
		return "hour"
	case f.Minute == nil:
		return "minute"
	case f.Route == nil:
		return "route"
	case f.Route.Duration == nil:
		return "route.duration"
	}
	return ""
}

func (p *Parser) validate(sample commute.Sample, present []entryFields, lineNumber int) error {
	if len(sample) != len(p.names) {
		return &commute.DataIntegrityError{
			Line:   lineNumber,
			Reason: fmt.Sprintf("found %d entries, but %d locations are configured", len(sample), len(p.names)),
		}
	}

	for i, entry := range sample {
		if key := present[i].missing(); key != "" {
			return &commute.DataIntegrityError{
				Line:     lineNumber,
				Location: p.names[i],
				Reason:   fmt.Sprintf("entry %d has no %s", i+1, key),
			}
		}
		if entry.Name != "" && entry.Name != p.names[i] {
			return &commute.DataIntegrityError{
				Line:     lineNumber,
				Location: p.names[i],
				Reason:   fmt.Sprintf("entry %d was recorded for %q", i+1, entry.Name),
			}
		}
		if entry.Hour < 0 || entry.Hour > 23 || entry.Minute < 0 || entry.Minute > 59 {
			return &commute.DataIntegrityError{
				Line:     lineNumber,
				Location: p.names[i],
				Reason:   fmt.Sprintf("invalid time of day %d:%d", entry.Hour, entry.Minute),
			}
		}
	}

	return nil
}
