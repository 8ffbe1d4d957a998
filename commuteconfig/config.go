package commuteconfig

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	SamplingConfig `mapstructure:",squash"`

	LocationsFile string `mapstructure:"locations_file"`
	TokenFile     string `mapstructure:"token_file"`
	LogFile       string `mapstructure:"log_file"`

	Directions  DirectionsSettings
	LogSettings LoggerSettings
	Metrics     MetricsSettings
}

// SamplingConfig decides when samples are taken and which direction they go.
type SamplingConfig struct {
	Timezone       string `mapstructure:"timezone"`
	Days           []int  `mapstructure:"days"`
	DepartureHours []int  `mapstructure:"departure_hours"`
	ReturnHours    []int  `mapstructure:"return_hours"`

	// Location is resolved from Timezone by Validate.
	Location *time.Location `mapstructure:"-"`
}

type DirectionsSettings struct {
	BaseURL string
	Profile string
	Timeout time.Duration
}

type LoggerSettings struct {
	EnableConsole bool
	ConsoleJson   bool
	ConsoleLevel  string
	EnableFile    bool
	FileJson      bool
	FileLevel     string
	FileLocation  string
}

type MetricsSettings struct {
	PushGatewayURL string
	Job            string
}

func SetDefaults() {
	viper.SetDefault("timezone", "Europe/Amsterdam")
	viper.SetDefault("days", []int{1, 2, 3, 4, 5, 6, 7})
	viper.SetDefault("departure_hours", []int{6, 7, 8, 9})
	viper.SetDefault("return_hours", []int{15, 16, 17, 18})
	viper.SetDefault("locations_file", "locations.json")
	viper.SetDefault("token_file", "mapbox_token.txt")
	viper.SetDefault("log_file", "out/out.log")

	viper.SetDefault("Directions.BaseURL", "https://api.mapbox.com/directions/v5/mapbox")
	viper.SetDefault("Directions.Profile", "driving-traffic")
	viper.SetDefault("Directions.Timeout", "30s")

	viper.SetDefault("LogSettings.EnableConsole", true)
	viper.SetDefault("LogSettings.ConsoleLevel", "INFO")
	viper.SetDefault("LogSettings.ConsoleJson", false)
	viper.SetDefault("LogSettings.EnableFile", false)
	viper.SetDefault("LogSettings.FileLevel", "INFO")
	viper.SetDefault("LogSettings.FileJson", true)
	viper.SetDefault("LogSettings.FileLocation", "out/commute.log")

	viper.SetDefault("Metrics.Job", "commute_sampler")
}

// ReadConfig loads commute.{json,yaml,toml} from the working directory or
// ./config/, or configFile when given. Without an explicit file a missing
// config is not an error and the defaults apply.
func ReadConfig(configFile string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("commute")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config/")
	}
	viper.SetEnvPrefix("commute")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && configFile == "" {
			return nil
		}
		return &ConfigError{Source: configSource(configFile), Err: errors.Wrap(err, "unable to read configuration file")}
	}

	return nil
}

func GetUsedConfigFile() string {
	return viper.ConfigFileUsed()
}

// GetConfig decodes and validates the configuration read by ReadConfig.
func GetConfig() (*Config, error) {
	var cfg Config

	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToIntRangesHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&cfg, hooks); err != nil {
		return nil, &ConfigError{Source: configSource(GetUsedConfigFile()), Err: errors.Wrap(err, "unable to decode configuration")}
	}

	if err := cfg.SamplingConfig.Validate(); err != nil {
		return nil, &ConfigError{Source: configSource(GetUsedConfigFile()), Err: err}
	}

	return &cfg, nil
}

func configSource(file string) string {
	if file == "" {
		return "defaults"
	}
	return file
}

// Validate checks the ranges of days and hours and resolves Timezone.
func (c *SamplingConfig) Validate() error {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return errors.Wrapf(err, "unknown timezone %q", c.Timezone)
	}
	c.Location = location

	if len(c.Days) == 0 {
		return errors.New("no sampling days configured")
	}
	for _, day := range c.Days {
		if day < 1 || day > 7 {
			return errors.Errorf("day %d is not an ISO weekday (1-7)", day)
		}
	}
	for _, hour := range append(append([]int{}, c.DepartureHours...), c.ReturnHours...) {
		if hour < 0 || hour > 23 {
			return errors.Errorf("hour %d is out of range (0-23)", hour)
		}
	}

	return nil
}

func (c SamplingConfig) HasDay(isoWeekday int) bool {
	return containsInt(c.Days, isoWeekday)
}

func (c SamplingConfig) IsDepartureHour(hour int) bool {
	return containsInt(c.DepartureHours, hour)
}

func (c SamplingConfig) IsReturnHour(hour int) bool {
	return containsInt(c.ReturnHours, hour)
}

func containsInt(values []int, value int) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// stringToIntRangesHookFunc lets days and hours be given as "1-5" or
// "6-9,15-18", which is how they usually arrive from the environment.
func stringToIntRangesHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf([]int{}) {
			return data, nil
		}

		return ParseIntRanges(data.(string))
	}
}

// ParseIntRanges parses a comma separated list of integers and inclusive
// ranges, e.g. "6-9,15,17-18".
func ParseIntRanges(value string) ([]int, error) {
	result := []int{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		bounds := strings.SplitN(part, "-", 2)
		low, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, errors.Errorf("invalid number %q", bounds[0])
		}
		high := low
		if len(bounds) == 2 {
			if high, err = strconv.Atoi(strings.TrimSpace(bounds[1])); err != nil {
				return nil, errors.Errorf("invalid number %q", bounds[1])
			}
		}
		if high < low {
			return nil, errors.Errorf("invalid range %q", part)
		}

		for i := low; i <= high; i++ {
			result = append(result, i)
		}
	}

	return result, nil
}

func SetStringFlag(flags *pflag.FlagSet, full, short, helpText, configFileSetting string, defaultValue string) {
	flags.StringP(full, short, defaultValue, helpText)
	viper.SetDefault(configFileSetting, defaultValue)
	viper.BindPFlag(configFileSetting, flags.Lookup(full))
}

func SetBoolFlag(flags *pflag.FlagSet, full, short, helpText, configFileSetting string, defaultValue bool) {
	flags.BoolP(full, short, defaultValue, helpText)
	viper.SetDefault(configFileSetting, defaultValue)
	viper.BindPFlag(configFileSetting, flags.Lookup(full))
}
