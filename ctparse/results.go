package ctparse

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
)

type ResultsConfig struct {
	Input     io.Reader
	Output    io.Writer
	Locations commuteconfig.Locations
	Display   string
	Logger    logrus.FieldLogger
}

// ParseResults parses the commute log, aggregates it and writes a report in
// the requested display format: text, markdown or json.
func ParseResults(config *ResultsConfig) error {
	buckets, err := NewParser(config.Locations, config.Logger).Parse(config.Input)
	if err != nil {
		return err
	}

	results, err := Aggregate(buckets)
	if err != nil {
		return errors.Wrap(err, "failed to aggregate samples")
	}

	switch config.Display {
	case "markdown":
		if err := dumpResultsMarkdown(results, config.Output); err != nil {
			return errors.Wrap(err, "failed to dump results")
		}
	case "json":
		encoder := json.NewEncoder(config.Output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return errors.Wrap(err, "failed to dump results")
		}
	case "text", "":
		if err := dumpResultsText(results, config.Output); err != nil {
			return errors.Wrap(err, "failed to dump results")
		}
	default:
		return fmt.Errorf("unexpected display: %s", config.Display)
	}

	return nil
}
