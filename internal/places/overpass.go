package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Overpass queries an Overpass API endpoint for public transport stations.
type Overpass struct {
	Endpoint string
	RadiusM  int
	MaxWords int
	Client   *http.Client
}

// NewOverpass returns a client with its own timeout.
func NewOverpass(endpoint string, radiusM, maxWords int, timeout time.Duration) *Overpass {
	return &Overpass{
		Endpoint: endpoint,
		RadiusM:  radiusM,
		MaxWords: maxWords,
		Client:   &http.Client{Timeout: timeout},
	}
}

type overpassResponse struct {
	Elements []struct {
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Query returns the Overpass QL for stations around at.
func (o *Overpass) Query(at Coordinates) string {
	return fmt.Sprintf("[out:json];node(around:%d,%s,%s)[public_transport=station];out;",
		o.RadiusM,
		strconv.FormatFloat(at.Latitude, 'f', -1, 64),
		strconv.FormatFloat(at.Longitude, 'f', -1, 64))
}

// Stations fetches station names around at, dropping names longer than
// MaxWords words.
func (o *Overpass) Stations(ctx context.Context, at Coordinates) ([]string, error) {
	u, err := url.Parse(o.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid overpass endpoint: %w", err)
	}
	q := u.Query()
	q.Set("data", o.Query(at))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned %s", resp.Status)
	}

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}
	names := make([]string, 0, len(body.Elements))
	for _, e := range body.Elements {
		names = append(names, e.Tags["name"])
	}
	return ShortNames(names, o.MaxWords), nil
}
