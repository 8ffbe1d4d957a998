package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/commute-analytics/commute-traffic/commute"
	"github.com/commute-analytics/commute-traffic/commuteconfig"
	"github.com/commute-analytics/commute-traffic/directions"
)

var sample = &cobra.Command{
	Use:   "sample",
	Short: "Samples travel times for all locations if now is a sampling moment",
	RunE:  sampleCmd,
}

func sampleCmd(cmd *cobra.Command, args []string) error {
	test, _ := cmd.Flags().GetBool("test")

	cfg, err := commuteconfig.GetConfig()
	if err != nil {
		return err
	}

	locations, err := commuteconfig.LoadLocations(cfg.LocationsFile)
	if err != nil {
		return err
	}

	token, err := commuteconfig.NewFileCredentialProvider(cfg.TokenFile).Load()
	if err != nil {
		return err
	}

	logger := logrus.WithField("log", cfg.LogFile)

	client := directions.NewClient(directions.ClientConfig{
		BaseURL: cfg.Directions.BaseURL,
		Profile: cfg.Directions.Profile,
		Token:   token,
		Timeout: cfg.Directions.Timeout,
		Logger:  logger,
	})

	sampler := commute.NewSampler(commute.SamplerConfig{
		Sampling:   cfg.SamplingConfig,
		Locations:  locations,
		Fetcher:    client,
		Recorder:   commute.NewFileRecorder(cfg.LogFile),
		TestOutput: cmd.OutOrStdout(),
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = sampler.Run(ctx, test)

	pushMetrics(cfg.Metrics)

	return err
}

// pushMetrics hands the directions metrics of this run to a Pushgateway, the
// usual home of metrics from scheduled jobs.
func pushMetrics(settings commuteconfig.MetricsSettings) {
	if settings.PushGatewayURL == "" {
		return
	}

	if err := push.New(settings.PushGatewayURL, settings.Job).Gatherer(directions.Registry).Push(); err != nil {
		logrus.WithError(err).Warn("unable to push metrics")
	}
}

func init() {
	sample.Flags().BoolP("test", "t", false, "sample regardless of the schedule and print the result instead of logging it")

	rootCmd.AddCommand(sample)
}
