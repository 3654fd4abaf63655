package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"campdir/pkg/helpers"
)

// Location is a geocoded address: a map point plus the locality fields that
// replace the raw address on a stored bootcamp.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zipcode          string  `json:"zipcode"`
	Country          string  `json:"country"`
}

// Client resolves free-form addresses against a MapQuest-style geocoding
// endpoint. Results are cached in Redis for a day; the cache is best-effort
// and a miss or Redis outage just falls through to the provider.
type Client struct {
	BaseURL string
	Key     string
	HTTP    *http.Client
	Redis   *redis.Client
}

func New(baseURL, key string, rdb *redis.Client) *Client {
	return &Client{
		BaseURL: baseURL,
		Key:     key,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
		Redis:   rdb,
	}
}

func cacheKey(address string) string {
	return "geo:addr:" + strings.ToLower(strings.TrimSpace(address))
}

// Geocode resolves address (a street address or a bare zipcode) to a Location.
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}

	if c.Redis != nil {
		var cached Location
		if ok, err := helpers.RedisGetJSON(ctx, c.Redis, cacheKey(address), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	loc, err := c.lookup(ctx, address)
	if err != nil {
		return nil, err
	}

	if c.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, c.Redis, cacheKey(address), loc, 24*time.Hour)
	}
	return loc, nil
}

func (c *Client) lookup(ctx context.Context, address string) (*Location, error) {
	q := url.Values{}
	q.Set("key", c.Key)
	q.Set("location", address)
	q.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Locations []struct {
				Street     string `json:"street"`
				City       string `json:"adminArea5"`
				State      string `json:"adminArea3"`
				PostalCode string `json:"postalCode"`
				Country    string `json:"adminArea1"`
				LatLng     struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"latLng"`
			} `json:"locations"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", address)
	}

	l := body.Results[0].Locations[0]
	loc := &Location{
		Latitude:  l.LatLng.Lat,
		Longitude: l.LatLng.Lng,
		Street:    l.Street,
		City:      l.City,
		State:     l.State,
		Zipcode:   l.PostalCode,
		Country:   l.Country,
	}
	loc.FormattedAddress = formatAddress(l.Street, l.City, l.State, l.PostalCode, l.Country)
	return loc, nil
}

func formatAddress(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}
