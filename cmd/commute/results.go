package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
	"github.com/commute-analytics/commute-traffic/ctparse"
)

var results = &cobra.Command{
	Use:   "results",
	Short: "Parses the sample log and reports travel times per location and time of day",
	RunE:  resultsCmd,
}

func resultsCmd(cmd *cobra.Command, args []string) error {
	display, _ := cmd.Flags().GetString("display")

	switch display {
	case "text":
	case "markdown":
	case "json":
	default:
		return fmt.Errorf("unexpected --display flag: %s", display)
	}

	cfg, err := commuteconfig.GetConfig()
	if err != nil {
		return err
	}

	locations, err := commuteconfig.LoadLocations(cfg.LocationsFile)
	if err != nil {
		return err
	}

	var input io.Reader
	if cfg.LogFile == "-" {
		input = os.Stdin
	} else {
		file, err := os.Open(cfg.LogFile)
		if err != nil {
			return errors.Wrap(err, "failed to open sample log")
		}
		defer file.Close()
		input = file
	}

	return ctparse.ParseResults(&ctparse.ResultsConfig{
		Input:     input,
		Output:    cmd.OutOrStdout(),
		Locations: locations,
		Display:   display,
		Logger:    logrus.WithField("log", cfg.LogFile),
	})
}

func init() {
	results.Flags().StringP("display", "d", "text", "one of 'text', 'markdown' or 'json'")

	rootCmd.AddCommand(results)
}
