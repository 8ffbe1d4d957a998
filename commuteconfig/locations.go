package commuteconfig

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/commute-analytics/commute-traffic/directions"
)

type Location struct {
	Name       string
	Coordinate directions.Coordinate
}

// Locations is the work coordinate, the fixed end of every trip, and the
// origins sampled against it in file order.
type Locations struct {
	Work   directions.Coordinate
	Places []Location
}

func (l Locations) Len() int {
	return len(l.Places)
}

func (l Locations) Names() []string {
	names := make([]string, 0, len(l.Places))
	for _, place := range l.Places {
		names = append(names, place.Name)
	}
	return names
}

type locationsFile struct {
	Work      interface{}   `yaml:"work"`
	Locations yaml.MapSlice `yaml:"locations"`
}

// LoadLocations reads a JSON (or YAML) locations file of the form
// {"work": [lon, lat], "locations": {"name": [lon, lat], ...}}.
func LoadLocations(path string) (Locations, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Locations{}, &ConfigError{Source: path, Err: errors.Wrap(err, "unable to read locations")}
	}

	locations, err := ParseLocations(data)
	if err != nil {
		return Locations{}, &ConfigError{Source: path, Err: err}
	}

	return locations, nil
}

// ParseLocations keeps the order of the locations mapping, which is also the
// order of the entries in every logged sample.
func ParseLocations(data []byte) (Locations, error) {
	var file locationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Locations{}, errors.Wrap(err, "unable to parse locations")
	}

	work, err := toCoordinate(file.Work)
	if err != nil {
		return Locations{}, errors.Wrap(err, "invalid work coordinate")
	}

	locations := Locations{Work: work}
	seen := map[string]bool{}
	for _, item := range file.Locations {
		name, ok := item.Key.(string)
		if !ok {
			name = fmt.Sprint(item.Key)
		}
		if seen[name] {
			return Locations{}, errors.Errorf("duplicate location %q", name)
		}
		seen[name] = true

		coordinate, err := toCoordinate(item.Value)
		if err != nil {
			return Locations{}, errors.Wrapf(err, "invalid coordinate for location %q", name)
		}

		locations.Places = append(locations.Places, Location{Name: name, Coordinate: coordinate})
	}

	if len(locations.Places) == 0 {
		return Locations{}, errors.New("no locations configured")
	}

	return locations, nil
}

func toCoordinate(value interface{}) (directions.Coordinate, error) {
	values, ok := value.([]interface{})
	if !ok || len(values) != 2 {
		return directions.Coordinate{}, errors.Errorf("expected [longitude, latitude], got %v", value)
	}

	var coordinate directions.Coordinate
	for i, v := range values {
		switch n := v.(type) {
		case int:
			coordinate[i] = float64(n)
		case float64:
			coordinate[i] = n
		default:
			return directions.Coordinate{}, errors.Errorf("expected a number, got %v", v)
		}
	}

	if coordinate.Lon() < -180 || coordinate.Lon() > 180 || coordinate.Lat() < -90 || coordinate.Lat() > 90 {
		return directions.Coordinate{}, errors.Errorf("coordinate %s is out of range", coordinate)
	}

	return coordinate, nil
}
