package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commute-analytics/commute-traffic/commuteconfig"
)

const directionsResponse = `{"code":"Ok","routes":[
{"duration":500,"duration_typical":450,"distance":1200,"legs":[{"summary":"slow","annotation":{"congestion_numeric":[10],"duration":[500],"distance":[1200]}}],"geometry":{"coordinates":[[0,0],[1,1]]}},
{"duration":400,"duration_typical":420,"distance":1500,"legs":[{"summary":"fast","annotation":{"congestion_numeric":[3],"duration":[400],"distance":[1500]}}],"geometry":{"coordinates":[[0,0],[1,1]]}}]}`

func writeFile(t *testing.T, dir, name, contents string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	flags := rootCmd.PersistentFlags()
	flags.Set("config", "")
	viper.BindPFlag("log_file", flags.Lookup("log"))
	viper.BindPFlag("locations_file", flags.Lookup("locations"))
	viper.BindPFlag("token_file", flags.Lookup("token"))

	output := &bytes.Buffer{}
	rootCmd.SetOutput(output)
	rootCmd.SetArgs(args)

	// Flags keep their values between executions.
	for _, command := range rootCmd.Commands() {
		command.Flags().Set("test", "false")
		command.Flags().Set("display", "text")
	}

	err := rootCmd.Execute()
	return output.String(), err
}

func TestSampleAndResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, directionsResponse)
	}))
	defer server.Close()

	dir := t.TempDir()
	config := writeFile(t, dir, "commute.yaml", fmt.Sprintf(`
timezone: UTC
days: "1-5"
departure_hours: [8]
return_hours: [17]
Directions:
  BaseURL: %s
LogSettings:
  EnableConsole: false
`, server.URL))
	locations := writeFile(t, dir, "locations.json", `{"work": [1, 1], "locations": {"Home": [0, 0]}}`)
	token := writeFile(t, dir, "token.txt", "pk.test\n")
	log := filepath.Join(dir, "out", "out.log")

	common := []string{"--config", config, "--locations", locations, "--token", token, "--log", log}

	output, err := execute(t, append([]string{"sample", "--test"}, common...)...)
	require.NoError(t, err)

	var sample []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &sample))
	require.Len(t, sample, 1)
	assert.Equal(t, 400.0, sample[0]["route"].(map[string]interface{})["duration"])
	assert.Equal(t, 500.0, sample[0]["route_alt"].(map[string]interface{})["duration"])
	assert.Equal(t, "Home", sample[0]["name"])

	// Test mode never touches the log.
	_, err = ioutil.ReadFile(log)
	assert.Error(t, err)

	line := `[{"is_weekend":false,"is_morning":true,"isoweekday":1,"hour":8,"minute":0,"route":{"duration":300}}]` + "\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(log), 0755))
	require.NoError(t, ioutil.WriteFile(log, []byte(line+line), 0644))

	output, err = execute(t, append([]string{"results"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "Location: Home")
	assert.Contains(t, output, "mean:   5.00min")
}

func TestLocationsCommand(t *testing.T) {
	dir := t.TempDir()
	locations := writeFile(t, dir, "locations.json", `{"work": [5.12, 52.09], "locations": {"Utrecht": [5.1, 52.1], "Almere": [5.2, 52.35]}}`)

	output, err := execute(t, "locations", "--locations", locations)
	require.NoError(t, err)
	assert.Equal(t, "work: 5.12,52.09\n1. Utrecht: 5.1,52.1\n2. Almere: 5.2,52.35\n", output)
}

func TestPushMetrics(t *testing.T) {
	t.Run("pushes to the configured gateway", func(t *testing.T) {
		var method, path string
		gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method, path = r.Method, r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer gateway.Close()

		pushMetrics(commuteconfig.MetricsSettings{PushGatewayURL: gateway.URL, Job: "commute_sampler"})

		assert.Equal(t, http.MethodPut, method)
		assert.Equal(t, "/metrics/job/commute_sampler", path)
	})

	t.Run("no gateway configured", func(t *testing.T) {
		called := false
		gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer gateway.Close()

		pushMetrics(commuteconfig.MetricsSettings{Job: "commute_sampler"})

		assert.False(t, called)
	})

	t.Run("gateway failure is not fatal", func(t *testing.T) {
		gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer gateway.Close()

		assert.NotPanics(t, func() {
			pushMetrics(commuteconfig.MetricsSettings{PushGatewayURL: gateway.URL, Job: "commute_sampler"})
		})
	})
}
