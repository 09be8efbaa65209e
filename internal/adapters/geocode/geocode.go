// Package geocode resolves postal addresses to WGS84 coordinates.
//
// The primary backend is the French national geocoder (Géoplateforme); when
// it returns no feature for an address, the client falls back to the Google
// Address Validation API if a key is configured. Outbound calls are paced
// with a minimum inter-request delay so batch runs stay polite with both
// services.
package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	perr "fadet/internal/platform/errors"
	"fadet/internal/platform/logger"
)

const (
	baseURLDefault       = "https://data.geopf.fr/geocodage"
	googleBaseURLDefault = "https://addressvalidation.googleapis.com"
	defaultTimeout       = 10 * time.Second
	defaultUA            = "fadet-geocode"
	defaultMinInterval   = 200 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL       string
	GoogleBaseURL string

	// GoogleAPIKey enables the fallback backend; empty disables it
	GoogleAPIKey string

	UserAgent string
	Timeout   time.Duration

	// MinInterval is the floor between consecutive outbound requests
	MinInterval time.Duration
}

// Point is a resolved WGS84 coordinate pair, decimal degrees as strings
// so unresolved rows can carry their sentinel untouched
type Point struct {
	Lat string
	Lon string
}

// Client queries the geocoding backends. Safe for concurrent use
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.GoogleBaseURL == "" {
		o.GoogleBaseURL = googleBaseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MinInterval <= 0 {
		o.MinInterval = defaultMinInterval
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Every(o.MinInterval), 1),
		log:     *logger.Named("geocode"),
	}
}

// Resolve queries the primary backend, then the fallback.
// ok reports whether either backend produced a coordinate pair; a false
// with a nil error means both answered and neither knew the address
func (c *Client) Resolve(ctx context.Context, address string) (Point, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Point{}, false, err
	}

	p, ok, err := c.searchPrimary(ctx, address)
	if err != nil {
		return Point{}, false, err
	}
	if ok {
		return p, true, nil
	}
	if c.opts.GoogleAPIKey == "" {
		return Point{}, false, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Point{}, false, err
	}
	return c.validateFallback(ctx, address)
}

// geoplateforme returns GeoJSON; coordinates are [lon, lat]
type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func (c *Client) searchPrimary(ctx context.Context, address string) (Point, bool, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("limit", "1")
	u := c.opts.BaseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "geocode new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeExternalService, "geocoder unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.Debug().
		Str("backend", "geoplateforme").
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("geocode http response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Point{}, false, perr.ExternalServicef("geocoder status %d body %s", resp.StatusCode, string(body))
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeExternalService, "geocoder body decode failed")
	}
	if len(fc.Features) == 0 || len(fc.Features[0].Geometry.Coordinates) < 2 {
		return Point{}, false, nil
	}
	coords := fc.Features[0].Geometry.Coordinates
	return pointOf(coords[1], coords[0]), true, nil
}

type validateRequest struct {
	Address struct {
		RegionCode   string   `json:"regionCode"`
		AddressLines []string `json:"addressLines"`
	} `json:"address"`
}

type validateResponse struct {
	Result struct {
		Geocode struct {
			Location struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"location"`
		} `json:"geocode"`
	} `json:"result"`
}

func (c *Client) validateFallback(ctx context.Context, address string) (Point, bool, error) {
	var vr validateRequest
	vr.Address.RegionCode = "FR"
	vr.Address.AddressLines = []string{address}
	body, err := json.Marshal(vr)
	if err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "geocode fallback marshal failed")
	}

	u := c.opts.GoogleBaseURL + "/v1:validateAddress?key=" + url.QueryEscape(c.opts.GoogleAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "geocode fallback new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeExternalService, "address validation unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	c.log.Debug().
		Str("backend", "google").
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("geocode http response")

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Point{}, false, perr.ExternalServicef("address validation status %d body %s", resp.StatusCode, string(tail))
	}

	var out validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Point{}, false, perr.Wrapf(err, perr.ErrorCodeExternalService, "address validation decode failed")
	}
	loc := out.Result.Geocode.Location
	if loc.Latitude == 0 && loc.Longitude == 0 {
		return Point{}, false, nil
	}
	return pointOf(loc.Latitude, loc.Longitude), true, nil
}

func pointOf(lat, lon float64) Point {
	return Point{
		Lat: strconv.FormatFloat(lat, 'f', 6, 64),
		Lon: strconv.FormatFloat(lon, 'f', 6, 64),
	}
}
