package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
)

var listLocations = &cobra.Command{
	Use:   "locations",
	Short: "Lists the configured locations in the order they are logged",
	RunE:  locationsCmd,
}

func locationsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := commuteconfig.GetConfig()
	if err != nil {
		return err
	}

	configured, err := commuteconfig.LoadLocations(cfg.LocationsFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "work: %s\n", configured.Work)
	for i, place := range configured.Places {
		fmt.Fprintf(out, "%d. %s: %s\n", i+1, place.Name, place.Coordinate)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(listLocations)
}
