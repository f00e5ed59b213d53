// Package meteostat is a client for the Meteostat bulk data endpoint. It
// resolves weather stations by id or coordinate, keeps the downloaded
// per-station files in a local cache and exposes them as lazily filtered
// datasets with typed row access.
package meteostat

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultBaseURL is the public Meteostat bulk endpoint.
const DefaultBaseURL = "https://bulk.meteostat.net/v2"

const defaultRefreshTTL = 24 * time.Hour

// Option configures a Client.
type Option func(*settings)

type settings struct {
	cacheDir   string
	baseURL    string
	httpClient *http.Client
	refreshTTL time.Duration
}

// WithCacheDir places the local cache under dir instead of the user cache
// directory.
func WithCacheDir(dir string) Option {
	return func(s *settings) { s.cacheDir = dir }
}

// WithBaseURL points the client at an alternative bulk endpoint.
func WithBaseURL(url string) Option {
	return func(s *settings) { s.baseURL = url }
}

// WithHTTPClient replaces the default HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) { s.httpClient = client }
}

// WithRefreshTTL sets how old a cached current-year weather file may get
// before a request refreshes it. Zero disables refreshing entirely.
func WithRefreshTTL(ttl time.Duration) Option {
	return func(s *settings) { s.refreshTTL = ttl }
}

// Client is the entry point of the library. It owns the cache manager and
// the station directory and hands out per-frequency clients.
type Client struct {
	baseURL    string
	refreshTTL time.Duration

	cache     *cacheManager
	directory *stationDirectory

	framesMu sync.Mutex
	frames   map[frameKey]lazyFrame
}

// New creates a Client and loads the station directory, downloading the
// station metadata on first use.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	s := settings{
		baseURL:    DefaultBaseURL,
		refreshTTL: defaultRefreshTTL,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.cacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user cache directory: %w", err)
		}
		s.cacheDir = filepath.Join(base, "meteostat")
	}
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", s.cacheDir, err)
	}

	cache := newCacheManager(s.cacheDir, newDownloader(s.httpClient))
	directory := newStationDirectory(cache, s.baseURL)
	if err := directory.load(ctx); err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    s.baseURL,
		refreshTTL: s.refreshTTL,
		cache:      cache,
		directory:  directory,
		frames:     make(map[frameKey]lazyFrame),
	}, nil
}

func (c *Client) weatherResource(freq Frequency, stationID string) Resource {
	return Resource{
		Path: freq.cachePath(stationID),
		URL:  fmt.Sprintf("%s/%s/%s.csv.gz", c.baseURL, freq.pathSegment(), stationID),
	}
}

// Hourly returns the client for hourly datasets.
func (c *Client) Hourly() *HourlyClient { return &HourlyClient{c: c} }

// Daily returns the client for daily datasets.
func (c *Client) Daily() *DailyClient { return &DailyClient{c: c} }

// Monthly returns the client for monthly datasets.
func (c *Client) Monthly() *MonthlyClient { return &MonthlyClient{c: c} }

// Climate returns the client for climate-normals datasets.
func (c *Client) Climate() *ClimateClient { return &ClimateClient{c: c} }

// FindStations searches the directory for stations near a location. The
// result is sorted ascending by distance; an empty result is not an error.
func (c *Client) FindStations(q FindQuery) ([]StationDistance, error) {
	return c.directory.find(q)
}

// StationByID returns the station with the exact id.
func (c *Client) StationByID(id string) (*Station, error) {
	return c.directory.byID(id)
}

// RefreshStations re-downloads the station metadata and rebuilds the
// directory index.
func (c *Client) RefreshStations(ctx context.Context) error {
	return c.directory.refresh(ctx)
}

// ClearStationCache removes the cached station metadata document. The
// in-memory directory keeps serving until the next RefreshStations.
func (c *Client) ClearStationCache() error {
	return c.cache.Remove(Resource{Path: metadataPath})
}

// ClearWeatherCache removes the cached file and memoized frame of one
// (station, frequency) pair.
func (c *Client) ClearWeatherCache(freq Frequency, stationID string) error {
	c.framesMu.Lock()
	delete(c.frames, frameKey{freq: freq, station: stationID})
	c.framesMu.Unlock()

	return c.cache.Remove(c.weatherResource(freq, stationID))
}

// ClearCache removes all cached weather files and the station metadata.
func (c *Client) ClearCache() error {
	c.framesMu.Lock()
	c.frames = make(map[frameKey]lazyFrame)
	c.framesMu.Unlock()

	for _, freq := range []Frequency{Hourly, Daily, Monthly, Climate} {
		dir := filepath.Join(c.cache.root, freq.pathSegment())
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clear %s cache: %w", freq, err)
		}
	}

	return c.ClearStationCache()
}
