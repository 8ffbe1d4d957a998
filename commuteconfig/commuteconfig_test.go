package commuteconfig

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commute-analytics/commute-traffic/directions"
)

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestParseLocationsKeepsOrder(t *testing.T) {
	locations, err := ParseLocations([]byte(`{
	"work": [5.1214, 52.0907],
	"locations": {
		"Zandvoort": [4.5333, 52.3713],
		"Amsterdam": [4.8952, 52.3702],
		"Hilversum": [5.1768, 52.2292]
	}
}`))
	require.NoError(t, err)

	assert.Equal(t, directions.Coordinate{5.1214, 52.0907}, locations.Work)
	assert.Equal(t, []string{"Zandvoort", "Amsterdam", "Hilversum"}, locations.Names())
	assert.Equal(t, 3, locations.Len())
	assert.Equal(t, directions.Coordinate{4.8952, 52.3702}, locations.Places[1].Coordinate)
}

func TestParseLocationsErrors(t *testing.T) {
	testCases := []struct {
		Description string
		Input       string
	}{
		{"malformed", `{"work": [1, 1], "locations": {`},
		{"missing work", `{"locations": {"Home": [0, 0]}}`},
		{"no locations", `{"work": [1, 1], "locations": {}}`},
		{"duplicate name", "work: [1, 1]\nlocations:\n  Home: [0, 0]\n  Home: [2, 2]\n"},
		{"short coordinate", `{"work": [1, 1], "locations": {"Home": [0]}}`},
		{"non numeric coordinate", `{"work": [1, 1], "locations": {"Home": ["a", 0]}}`},
		{"out of range", `{"work": [1, 1], "locations": {"Home": [0, 120]}}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Description, func(t *testing.T) {
			_, err := ParseLocations([]byte(testCase.Input))
			assert.Error(t, err)
		})
	}
}

func TestLoadLocationsMissingFile(t *testing.T) {
	_, err := LoadLocations(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, ok := err.(*ConfigError)
	assert.True(t, ok)
}

func TestFileCredentialProvider(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		provider := &FileCredentialProvider{Path: writeFile(t, "token.txt", "  pk.abc123\n")}
		token, err := provider.Load()
		require.NoError(t, err)
		assert.Equal(t, "pk.abc123", token)
	})

	t.Run("missing file", func(t *testing.T) {
		provider := &FileCredentialProvider{Path: filepath.Join(t.TempDir(), "token.txt")}
		_, err := provider.Load()
		require.Error(t, err)
		_, ok := err.(*ConfigError)
		assert.True(t, ok)
	})

	t.Run("empty file", func(t *testing.T) {
		provider := &FileCredentialProvider{Path: writeFile(t, "token.txt", "\n\n")}
		_, err := provider.Load()
		assert.Error(t, err)
	})

	t.Run("environment wins", func(t *testing.T) {
		os.Setenv("COMMUTE_TEST_TOKEN", " pk.env ")
		defer os.Unsetenv("COMMUTE_TEST_TOKEN")

		provider := &FileCredentialProvider{Path: writeFile(t, "token.txt", "pk.file"), EnvVar: "COMMUTE_TEST_TOKEN"}
		token, err := provider.Load()
		require.NoError(t, err)
		assert.Equal(t, "pk.env", token)
	})
}

func TestParseIntRanges(t *testing.T) {
	values, err := ParseIntRanges("6-9, 15,17-18")
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 9, 15, 17, 18}, values)

	_, err = ParseIntRanges("9-6")
	assert.EqualError(t, err, `invalid range "9-6"`)

	_, err = ParseIntRanges("x")
	assert.EqualError(t, err, `invalid number "x"`)

	_, err = ParseIntRanges("6-y")
	assert.EqualError(t, err, `invalid number "y"`)
}

func TestGetConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		SetDefaults()
		cfg, err := GetConfig()
		require.NoError(t, err)

		assert.Equal(t, "Europe/Amsterdam", cfg.Location.String())
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, cfg.Days)
		assert.Equal(t, []int{6, 7, 8, 9}, cfg.DepartureHours)
		assert.Equal(t, []int{15, 16, 17, 18}, cfg.ReturnHours)
		assert.Equal(t, "out/out.log", cfg.LogFile)
		assert.Equal(t, "driving-traffic", cfg.Directions.Profile)
		assert.Equal(t, "30s", cfg.Directions.Timeout.String())
	})

	t.Run("config file", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		path := writeFile(t, "commute.yaml", `
timezone: America/New_York
days: "1-5"
departure_hours: [8]
return_hours: [17]
log_file: samples.log
LogSettings:
  ConsoleLevel: debug
`)
		require.NoError(t, ReadConfig(path))
		cfg, err := GetConfig()
		require.NoError(t, err)

		assert.Equal(t, "America/New_York", cfg.Location.String())
		assert.Equal(t, []int{1, 2, 3, 4, 5}, cfg.Days)
		assert.Equal(t, []int{8}, cfg.DepartureHours)
		assert.Equal(t, []int{17}, cfg.ReturnHours)
		assert.Equal(t, "samples.log", cfg.LogFile)
		assert.Equal(t, "debug", cfg.LogSettings.ConsoleLevel)
		assert.True(t, cfg.HasDay(3))
		assert.False(t, cfg.HasDay(6))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		err := ReadConfig(filepath.Join(t.TempDir(), "commute.yaml"))
		require.Error(t, err)
		_, ok := err.(*ConfigError)
		assert.True(t, ok)
	})

	t.Run("invalid timezone", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		SetDefaults()
		viper.Set("timezone", "Mars/Olympus_Mons")
		_, err := GetConfig()
		require.Error(t, err)
		_, ok := err.(*ConfigError)
		assert.True(t, ok)
	})

	t.Run("invalid hour", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()

		SetDefaults()
		viper.Set("return_hours", []int{24})
		_, err := GetConfig()
		assert.Error(t, err)
	})
}

func TestConfigureLogging(t *testing.T) {
	logger := logrus.New()
	path := filepath.Join(t.TempDir(), "commute.log")

	require.NoError(t, ConfigureLogging(logger, LoggerSettings{
		EnableConsole: false,
		EnableFile:    true,
		FileJson:      true,
		FileLevel:     "debug",
		FileLocation:  path,
	}))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("location", "Home").Debug("sampled")

	contents, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(contents, []byte(`"location":"Home"`)))

	assert.Error(t, ConfigureLogging(logger, LoggerSettings{EnableConsole: true, ConsoleLevel: "loud"}))
}
