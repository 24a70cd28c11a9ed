package geocode

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/dormshop-backend/internal/cache"
)

const testKey = "AIza-test-key"

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fakeMaps(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	pic := tinyPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, testKey, r.URL.Query().Get("key"))
		switch r.URL.Path {
		case "/maps/api/geocode/json":
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("address") == "nowhere" {
				_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
				return
			}
			_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":37.87,"lng":-122.26}}}]}`))
		case "/maps/api/staticmap":
			assert.Equal(t, "600x300", r.URL.Query().Get("size"))
			assert.Equal(t, "Main St, Davis, CA", r.URL.Query().Get("center"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(pic)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour, nil)
}

func newClient(t *testing.T, baseURL string, c *cache.Cache) *Client {
	t.Helper()
	cl, err := NewClient(Config{BaseURL: baseURL, APIKey: testKey}, c)
	require.NoError(t, err)
	return cl
}

func TestNewClientNeedsKey(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	assert.Error(t, err)
}

func TestGeocodeCachesResult(t *testing.T) {
	var calls atomic.Int32
	srv := fakeMaps(t, &calls)
	c := newClient(t, srv.URL, newCache(t))
	ctx := context.Background()

	p, err := c.Geocode(ctx, "2650 Durant Ave, Berkeley, CA 94720")
	require.NoError(t, err)
	assert.Equal(t, Point{Lat: 37.87, Lng: -122.26}, p)

	p, err = c.Geocode(ctx, "2650 Durant Ave, Berkeley, CA 94720")
	require.NoError(t, err)
	assert.Equal(t, 37.87, p.Lat)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeocodeNoMatch(t *testing.T) {
	var calls atomic.Int32
	srv := fakeMaps(t, &calls)
	c := newClient(t, srv.URL, nil)

	_, err := c.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestStaticMap(t *testing.T) {
	var calls atomic.Int32
	srv := fakeMaps(t, &calls)
	c := newClient(t, srv.URL+"/", newCache(t))

	for i := 0; i < 2; i++ {
		b, err := c.StaticMap(context.Background(), "Main St, Davis, CA", "600x300")
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(b))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c := newClient(t, srv.URL, nil)

	_, err := c.StaticMap(context.Background(), "x", "1x1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)

	_, err = c.Geocode(context.Background(), "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}
