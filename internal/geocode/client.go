// Package geocode wraps the Google Geocoding and Static Maps APIs with a
// Redis cache in front.
package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/baharkarakas/dormshop-backend/internal/cache"
)

// ErrNoMatch is returned when the API does not resolve the address.
var ErrNoMatch = errors.New("address could not be geocoded")

// mapZoom frames a single building.
const mapZoom = 16

type Client struct {
	maps  *maps.Client
	cache *cache.Cache
}

type Config struct {
	// BaseURL overrides the API host; empty means Google's.
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient builds a client; c may be nil.
func NewClient(cfg Config, c *cache.Cache) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	mc, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &Client{maps: mc, cache: c}, nil
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (Point, error) {
	key := "geocode:" + strings.ToLower(address)
	if b, ok, _ := c.cache.Get(ctx, key); ok {
		var p Point
		if json.Unmarshal(b, &p) == nil {
			return p, nil
		}
	}

	res, err := c.maps.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return Point{}, ErrNoMatch
		}
		return Point{}, fmt.Errorf("geocode: %w", err)
	}
	if len(res) == 0 {
		return Point{}, ErrNoMatch
	}

	loc := res[0].Geometry.Location
	p := Point{Lat: loc.Lat, Lng: loc.Lng}
	if b, err := json.Marshal(p); err == nil {
		_ = c.cache.Set(ctx, key, b)
	}
	return p, nil
}

// StaticMap renders a PNG centred on address. size is WIDTHxHEIGHT.
func (c *Client) StaticMap(ctx context.Context, address, size string) ([]byte, error) {
	key := "staticmap:" + size + ":" + strings.ToLower(address)
	if b, ok, _ := c.cache.Get(ctx, key); ok {
		return b, nil
	}

	img, err := c.maps.StaticMap(ctx, &maps.StaticMapRequest{
		Center: address,
		Zoom:   mapZoom,
		Size:   size,
		Format: maps.PNG8,
	})
	if err != nil {
		return nil, fmt.Errorf("static map: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode map: %w", err)
	}
	_ = c.cache.Set(ctx, key, buf.Bytes())
	return buf.Bytes(), nil
}
