// Package places finds station names near the user to label nodes.
package places

import (
	"context"
	"errors"
	"strings"
)

// ErrNoLocation is returned when no position is available.
var ErrNoLocation = errors.New("location unavailable")

// FallbackName labels a new node when no station name is known.
const FallbackName = "New Node"

// DefaultLabels are used for the initial forest when the location is unknown.
var DefaultLabels = []string{"Main Station", "Child Station 1", "Child Station 2", "Child Station 3"}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Locator yields the user's position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Lookup lists place names around a position.
type Lookup interface {
	Stations(ctx context.Context, at Coordinates) ([]string, error)
}

// FixedLocator reports a configured position, or ErrNoLocation when either
// coordinate is missing.
type FixedLocator struct {
	Latitude  *float64
	Longitude *float64
}

// Locate returns the configured position.
func (l FixedLocator) Locate(context.Context) (Coordinates, error) {
	if l.Latitude == nil || l.Longitude == nil {
		return Coordinates{}, ErrNoLocation
	}
	return Coordinates{Latitude: *l.Latitude, Longitude: *l.Longitude}, nil
}

// ShortNames keeps the non-empty names of at most maxWords words.
func ShortNames(names []string, maxWords int) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || len(strings.Split(n, " ")) > maxWords {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Labels resolves the names used to seed a fresh forest. Without a position
// the DefaultLabels are returned; with one, whatever the lookup finds, which
// may be nothing. The second result reports whether a position was found.
func Labels(ctx context.Context, loc Locator, lookup Lookup) ([]string, bool) {
	at, err := loc.Locate(ctx)
	if err != nil {
		return append([]string(nil), DefaultLabels...), false
	}
	names, err := lookup.Stations(ctx, at)
	if err != nil {
		return nil, true
	}
	return names, true
}
