package directions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds the collectors of this package. It is pushed to a
	// Pushgateway at the end of a sampling run.
	Registry = prometheus.NewRegistry()

	requestCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commute",
		Subsystem: "directions",
		Name:      "requests_total",
		Help:      "Number of directions requests by HTTP status code",
	}, []string{"code"})
	errorCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commute",
		Subsystem: "directions",
		Name:      "errors_total",
		Help:      "Number of directions requests that failed, by reason",
	}, []string{"reason"})
	requestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "commute",
		Subsystem: "directions",
		Name:      "request_duration_seconds",
		Help:      "Round trip time of directions requests",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	Registry.MustRegister(requestCount, errorCount, requestDuration)
}

// timedRoundTripper observes every request going to the directions service.
type timedRoundTripper struct {
	standardRoundTripper http.RoundTripper
	userAgent            string
}

func newTimedRoundTripper(rt http.RoundTripper) *timedRoundTripper {
	if rt == nil {
		rt = http.DefaultTransport
	}

	return &timedRoundTripper{
		standardRoundTripper: rt,
		userAgent:            "commute-traffic sampler (https://github.com/commute-analytics/commute-traffic)",
	}
}

func (trt *timedRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("User-Agent", trt.userAgent)

	requestStart := time.Now()
	resp, err := trt.standardRoundTripper.RoundTrip(r)
	requestDuration.Observe(time.Since(requestStart).Seconds())

	if err != nil {
		errorCount.WithLabelValues("transport").Inc()
		return resp, err
	}

	requestCount.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	return resp, nil
}
