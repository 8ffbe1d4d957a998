package directions

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://api.mapbox.com/directions/v5/mapbox"
	DefaultProfile = "driving-traffic"
	DefaultTimeout = 30 * time.Second

	// maxErrorBody bounds how much of a failed response is kept in an UpstreamError.
	maxErrorBody = 64 * 1024
)

type ClientConfig struct {
	BaseURL   string
	Profile   string
	Token     string
	Timeout   time.Duration
	Transport http.RoundTripper
	Logger    logrus.FieldLogger
}

// Client queries the directions service for traffic aware routes.
type Client struct {
	baseURL string
	profile string
	token   string
	client  *http.Client
	logger  logrus.FieldLogger
}

func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Profile == "" {
		config.Profile = DefaultProfile
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		profile: config.Profile,
		token:   config.Token,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: newTimedRoundTripper(config.Transport),
		},
		logger: config.Logger,
	}
}

// RequestURL builds the request for a trip through the given coordinates,
// in order. The access token is only included when withToken is set so the
// result can be logged.
func (c *Client) RequestURL(coordinates []Coordinate, withToken bool) string {
	points := make([]string, 0, len(coordinates))
	for _, coordinate := range coordinates {
		points = append(points, coordinate.String())
	}

	query := url.Values{}
	if withToken {
		query.Set("access_token", c.token)
	}
	query.Set("alternatives", "true")
	query.Set("annotations", "distance,duration,congestion_numeric,closure")
	query.Set("overview", "full")
	query.Set("geometries", "geojson")

	return c.baseURL + "/" + c.profile + "/" + strings.Join(points, ";") + "?" + query.Encode()
}

// FetchRoutes returns the candidate routes for a trip through coordinates, in
// the order ranked by the service.
func (c *Client) FetchRoutes(ctx context.Context, coordinates []Coordinate) ([]Route, error) {
	if len(coordinates) < 2 {
		return nil, errors.Errorf("a trip needs at least 2 coordinates, got %d", len(coordinates))
	}

	logger := c.logger.WithField("request", c.RequestURL(coordinates, false))
	logger.Debug("requesting directions")

	request, err := http.NewRequest(http.MethodGet, c.RequestURL(coordinates, true), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build directions request")
	}
	request = request.WithContext(ctx)

	response, err := c.client.Do(request)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok {
			urlErr.URL = c.RequestURL(coordinates, false)
		}
		return nil, errors.Wrap(err, "directions request failed")
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := ioutil.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		errorCount.WithLabelValues("status").Inc()
		return nil, &UpstreamError{
			StatusCode: response.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var decoded routesResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		errorCount.WithLabelValues("decode").Inc()
		return nil, errors.Wrap(err, "unable to decode directions response")
	}

	if len(decoded.Routes) == 0 {
		errorCount.WithLabelValues("no_routes").Inc()
		return nil, &UpstreamError{
			StatusCode: response.StatusCode,
			Body:       "no routes returned: " + decoded.Code + " " + decoded.Message,
		}
	}

	logger.WithField("candidates", len(decoded.Routes)).Debug("received directions")

	return decoded.Routes, nil
}
