package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
)

var rootCmd = &cobra.Command{
	Use:           os.Args[0],
	SilenceErrors: true,
	SilenceUsage:  true,
	Long:          "Use commute to sample travel times between your locations and work from a traffic aware directions service, and to analyze the collected samples per time of day. Run `sample` from a scheduler such as cron, then `results` to compare locations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		if err := commuteconfig.ReadConfig(configFile); err != nil {
			return err
		}

		cfg, err := commuteconfig.GetConfig()
		if err != nil {
			return err
		}

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.LogSettings.EnableConsole = true
			cfg.LogSettings.ConsoleLevel = logrus.DebugLevel.String()
		}

		if err := commuteconfig.ConfigureLogging(logrus.StandardLogger(), cfg.LogSettings); err != nil {
			return err
		}

		if used := commuteconfig.GetUsedConfigFile(); used != "" {
			logrus.Debugf("using configuration %s", used)
		}

		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "make output more verbose")
	flags.StringP("config", "c", "", "configuration file (default: commute.{json,yaml} in . or ./config/)")

	commuteconfig.SetStringFlag(flags, "log", "l", "file where samples are stored", "log_file", "out/out.log")
	commuteconfig.SetStringFlag(flags, "locations", "", "file containing the work and home locations", "locations_file", "locations.json")
	commuteconfig.SetStringFlag(flags, "token", "", "file containing the directions service access token", "token_file", "mapbox_token.txt")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
