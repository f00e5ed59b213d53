package meteostat

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/katiamach/meteostat-client/internal/logger"
	"github.com/tidwall/rtree"
	"github.com/umahmood/haversine"
)

// metadataPath is the fixed cache key of the global station document.
const metadataPath = "stations.json"

// kmPerDegreeLat is the approximate surface distance of one degree of
// latitude, used only to size the bounding box of index queries.
const kmPerDegreeLat = 111.045

// FindQuery configures a nearest-station search. Zero values mean
// unbounded distance, unbounded result count and no inventory filter.
type FindQuery struct {
	Location      LatLon
	MaxDistanceKm float64
	Limit         int
	Inventory     *InventoryRequirement
}

// directorySnapshot is one immutable load of the station list. The index
// is built once and never mutated, so lookups need no locking.
type directorySnapshot struct {
	byID map[string]*Station
	tree rtree.RTreeG[*Station]
}

// stationDirectory supplies the canonical station list and answers
// nearest-neighbor queries with inventory filtering. Refreshing swaps the
// whole snapshot; callers never see a partially updated inventory.
type stationDirectory struct {
	cache    *cacheManager
	resource Resource

	mu       sync.RWMutex
	snapshot *directorySnapshot
}

func newStationDirectory(cache *cacheManager, baseURL string) *stationDirectory {
	return &stationDirectory{
		cache: cache,
		resource: Resource{
			Path: metadataPath,
			URL:  baseURL + "/stations/lite.json.gz",
		},
	}
}

// load obtains the station metadata through the cache manager, parses it
// and builds a fresh snapshot. Station metadata is considered fresh once
// present; use refresh to force a new download.
func (d *stationDirectory) load(ctx context.Context) error {
	path, _, err := d.cache.Get(ctx, d.resource, NeverStale)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return d.rebuild(path)
}

// refresh unconditionally re-downloads the station metadata and rebuilds
// the snapshot. The previous snapshot keeps serving reads on failure.
func (d *stationDirectory) refresh(ctx context.Context) error {
	path, err := d.cache.ForceRefresh(ctx, d.resource)
	if err != nil {
		return fmt.Errorf("failed to refresh station directory: %w", err)
	}
	return d.rebuild(path)
}

func (d *stationDirectory) rebuild(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read station metadata %s: %w", path, err)
	}

	var stations []*Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return &ParseError{Detail: "malformed station metadata document", Cause: err}
	}

	snapshot := &directorySnapshot{byID: make(map[string]*Station, len(stations))}
	for _, st := range stations {
		snapshot.byID[st.ID] = st
		point := [2]float64{st.Location.Longitude, st.Location.Latitude}
		snapshot.tree.Insert(point, point, st)
	}

	d.mu.Lock()
	d.snapshot = snapshot
	d.mu.Unlock()

	logger.Infof("station directory loaded with %d stations", len(stations))
	return nil
}

func (d *stationDirectory) current() *directorySnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// byID returns the station with the exact id.
func (d *stationDirectory) byID(id string) (*Station, error) {
	snapshot := d.current()
	if snapshot == nil {
		return nil, ErrDirectoryUnavailable
	}
	st, ok := snapshot.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStationNotFound, id)
	}
	return st, nil
}

// find returns the stations matching the query, sorted ascending by
// great-circle distance with station id as tie break. An empty result is
// not an error.
func (d *stationDirectory) find(q FindQuery) ([]StationDistance, error) {
	snapshot := d.current()
	if snapshot == nil {
		return nil, ErrDirectoryUnavailable
	}

	origin := haversine.Coord{Lat: q.Location.Lat, Lon: q.Location.Lon}

	var matches []StationDistance
	consider := func(st *Station) {
		_, km := haversine.Distance(origin, haversine.Coord{
			Lat: st.Location.Latitude,
			Lon: st.Location.Longitude,
		})
		if q.MaxDistanceKm > 0 && km > q.MaxDistanceKm {
			return
		}
		if q.Inventory != nil && !q.Inventory.matches(st) {
			return
		}
		matches = append(matches, StationDistance{Station: st, DistanceKm: km})
	}

	if q.MaxDistanceKm > 0 {
		// Bounding query on the spatial index first, exact haversine
		// distance only for the candidates inside the boxes.
		for _, box := range boundingBoxes(q.Location, q.MaxDistanceKm) {
			snapshot.tree.Search(box.min, box.max, func(_, _ [2]float64, st *Station) bool {
				consider(st)
				return true
			})
		}
	} else {
		snapshot.tree.Scan(func(_, _ [2]float64, st *Station) bool {
			consider(st)
			return true
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Station.ID < matches[j].Station.ID
	})
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}

	return matches, nil
}

// lonLatBox is an index query rectangle in [lon, lat] point order.
type lonLatBox struct {
	min, max [2]float64
}

// boundingBoxes widens the search location by the given radius. Longitude
// degrees shrink with latitude; near the poles the box covers all
// longitudes rather than dividing by a vanishing cosine. A box crossing
// the antimeridian is split into two, one on each side of the 180th
// meridian, so stations on the far side are not missed.
func boundingBoxes(loc LatLon, radiusKm float64) []lonLatBox {
	dLat := radiusKm / kmPerDegreeLat
	minLat, maxLat := loc.Lat-dLat, loc.Lat+dLat

	dLon := 180.0
	if cos := math.Cos(loc.Lat * math.Pi / 180); cos > 1e-4 {
		dLon = radiusKm / (kmPerDegreeLat * cos)
	}
	if dLon >= 180 {
		return []lonLatBox{{
			min: [2]float64{-180, minLat},
			max: [2]float64{180, maxLat},
		}}
	}

	minLon, maxLon := loc.Lon-dLon, loc.Lon+dLon
	switch {
	case minLon < -180:
		return []lonLatBox{
			{min: [2]float64{-180, minLat}, max: [2]float64{maxLon, maxLat}},
			{min: [2]float64{minLon + 360, minLat}, max: [2]float64{180, maxLat}},
		}
	case maxLon > 180:
		return []lonLatBox{
			{min: [2]float64{minLon, minLat}, max: [2]float64{180, maxLat}},
			{min: [2]float64{-180, minLat}, max: [2]float64{maxLon - 360, maxLat}},
		}
	default:
		return []lonLatBox{
			{min: [2]float64{minLon, minLat}, max: [2]float64{maxLon, maxLat}},
		}
	}
}
