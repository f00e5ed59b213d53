package meteostat

import (
	"context"
	"fmt"
	"os"
	"time"
)

// LocationQuery configures a by-location data request. Zero values fall
// back to the defaults: 50 km search radius, a single candidate station
// and no inventory requirement beyond "reports this frequency".
type LocationQuery struct {
	Location      LatLon
	MaxDistanceKm float64
	StationLimit  int
	Required      *RequiredData
}

const (
	defaultMaxDistanceKm = 50.0
	defaultStationLimit  = 1
)

func (q LocationQuery) validate() error {
	if q.Location.Lat < -90 || q.Location.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", q.Location.Lat)
	}
	if q.Location.Lon < -180 || q.Location.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", q.Location.Lon)
	}
	if q.MaxDistanceKm < 0 {
		return fmt.Errorf("max distance must not be negative, got %v", q.MaxDistanceKm)
	}
	if q.StationLimit < 0 {
		return fmt.Errorf("station limit must not be negative, got %d", q.StationLimit)
	}
	return nil
}

// resolveStation turns the query into the closest matching station id.
func (c *Client) resolveStation(freq Frequency, q LocationQuery) (string, error) {
	if err := q.validate(); err != nil {
		return "", fmt.Errorf("invalid location query: %w", err)
	}

	maxKm := q.MaxDistanceKm
	if maxKm == 0 {
		maxKm = defaultMaxDistanceKm
	}
	limit := q.StationLimit
	if limit == 0 {
		limit = defaultStationLimit
	}
	required := AnyData()
	if q.Required != nil {
		required = *q.Required
	}

	matches, err := c.directory.find(FindQuery{
		Location:      q.Location,
		MaxDistanceKm: maxKm,
		Limit:         limit,
		Inventory:     &InventoryRequirement{Frequency: freq, Required: required},
	})
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: within %.0f km of (%v, %v)",
			ErrNoStationFound, maxKm, q.Location.Lat, q.Location.Lon)
	}

	return matches[0].Station.ID, nil
}

// freshness picks the cache policy for a request. Only requirements that
// imply current-year data can make a cached weather file stale; everything
// historical is immutable once downloaded.
func (c *Client) freshness(required *RequiredData) FreshnessPolicy {
	if required != nil && required.impliesCurrentYear(time.Now()) && c.refreshTTL > 0 {
		return StaleAfter(c.refreshTTL)
	}
	return NeverStale
}

type frameKey struct {
	freq    Frequency
	station string
}

// frameFor resolves the station, obtains the cached raw file and parses it
// into the frequency's schema. Parsed frames are memoized per key until
// the underlying file is re-downloaded.
func (c *Client) frameFor(ctx context.Context, freq Frequency, stationID string, fresh FreshnessPolicy) (lazyFrame, error) {
	if _, err := c.directory.byID(stationID); err != nil {
		return lazyFrame{}, err
	}

	res := c.weatherResource(freq, stationID)
	path, refreshed, err := c.cache.Get(ctx, res, fresh)
	if err != nil {
		return lazyFrame{}, err
	}

	key := frameKey{freq: freq, station: stationID}
	if !refreshed {
		c.framesMu.Lock()
		memo, ok := c.frames[key]
		c.framesMu.Unlock()
		if ok {
			return memo, nil
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return lazyFrame{}, fmt.Errorf("failed to open cached file %s: %w", path, err)
	}
	defer file.Close()

	df, err := parseFrame(freq, stationID, file)
	if err != nil {
		return lazyFrame{}, err
	}

	frame := lazyFrame{df: df}
	c.framesMu.Lock()
	c.frames[key] = frame
	c.framesMu.Unlock()

	return frame, nil
}

// HourlyClient requests hourly datasets.
type HourlyClient struct{ c *Client }

// ByStation returns the station's hourly dataset as a lazy frame.
func (h *HourlyClient) ByStation(ctx context.Context, stationID string) (HourlyFrame, error) {
	lf, err := h.c.frameFor(ctx, Hourly, stationID, h.c.freshness(nil))
	return HourlyFrame{lf: lf}, err
}

// ByLocation resolves the closest matching station and returns its hourly
// dataset.
func (h *HourlyClient) ByLocation(ctx context.Context, q LocationQuery) (HourlyFrame, error) {
	stationID, err := h.c.resolveStation(Hourly, q)
	if err != nil {
		return HourlyFrame{}, err
	}
	lf, err := h.c.frameFor(ctx, Hourly, stationID, h.c.freshness(q.Required))
	return HourlyFrame{lf: lf}, err
}

// DailyClient requests daily datasets.
type DailyClient struct{ c *Client }

// ByStation returns the station's daily dataset as a lazy frame.
func (d *DailyClient) ByStation(ctx context.Context, stationID string) (DailyFrame, error) {
	lf, err := d.c.frameFor(ctx, Daily, stationID, d.c.freshness(nil))
	return DailyFrame{lf: lf}, err
}

// ByLocation resolves the closest matching station and returns its daily
// dataset.
func (d *DailyClient) ByLocation(ctx context.Context, q LocationQuery) (DailyFrame, error) {
	stationID, err := d.c.resolveStation(Daily, q)
	if err != nil {
		return DailyFrame{}, err
	}
	lf, err := d.c.frameFor(ctx, Daily, stationID, d.c.freshness(q.Required))
	return DailyFrame{lf: lf}, err
}

// MonthlyClient requests monthly datasets.
type MonthlyClient struct{ c *Client }

// ByStation returns the station's monthly dataset as a lazy frame.
func (m *MonthlyClient) ByStation(ctx context.Context, stationID string) (MonthlyFrame, error) {
	lf, err := m.c.frameFor(ctx, Monthly, stationID, m.c.freshness(nil))
	return MonthlyFrame{lf: lf}, err
}

// ByLocation resolves the closest matching station and returns its monthly
// dataset.
func (m *MonthlyClient) ByLocation(ctx context.Context, q LocationQuery) (MonthlyFrame, error) {
	stationID, err := m.c.resolveStation(Monthly, q)
	if err != nil {
		return MonthlyFrame{}, err
	}
	lf, err := m.c.frameFor(ctx, Monthly, stationID, m.c.freshness(q.Required))
	return MonthlyFrame{lf: lf}, err
}

// ClimateClient requests climate-normals datasets.
type ClimateClient struct{ c *Client }

// ByStation returns the station's climate normals as a lazy frame.
func (cc *ClimateClient) ByStation(ctx context.Context, stationID string) (ClimateFrame, error) {
	lf, err := cc.c.frameFor(ctx, Climate, stationID, cc.c.freshness(nil))
	return ClimateFrame{lf: lf}, err
}

// ByLocation resolves the closest matching station and returns its climate
// normals.
func (cc *ClimateClient) ByLocation(ctx context.Context, q LocationQuery) (ClimateFrame, error) {
	stationID, err := cc.c.resolveStation(Climate, q)
	if err != nil {
		return ClimateFrame{}, err
	}
	lf, err := cc.c.frameFor(ctx, Climate, stationID, cc.c.freshness(q.Required))
	return ClimateFrame{lf: lf}, err
}
