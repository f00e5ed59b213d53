package meteostat

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tj/assert"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func datePtr(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func dateSpan(startYear int, startMonth time.Month, startDay, endYear int, endMonth time.Month, endDay int) DateSpan {
	return DateSpan{
		Start: datePtr(startYear, startMonth, startDay),
		End:   datePtr(endYear, endMonth, endDay),
	}
}

func fullInventory() Inventory {
	return Inventory{
		Hourly:  dateSpan(2018, time.January, 1, 2024, time.June, 30),
		Daily:   dateSpan(2018, time.January, 1, 2024, time.June, 30),
		Model:   dateSpan(2018, time.January, 1, 2024, time.June, 30),
		Monthly: YearSpan{Start: intPtr(2018), End: intPtr(2024)},
		Normals: YearSpan{Start: intPtr(1991), End: intPtr(2020)},
	}
}

func testStation(id, name string, lat, lon float64, inv Inventory) *Station {
	return &Station{
		ID:        id,
		Country:   "US",
		Timezone:  strPtr("America/New_York"),
		Name:      map[string]string{"en": name},
		Location:  Location{Latitude: lat, Longitude: lon, Elevation: floatPtr(10)},
		Inventory: inv,
	}
}

// testStations is the directory fixture shared by the tests: three
// daily-capable stations around New York City, one hourly-only station,
// one station outside the 100 km radius, one with inventory ending in
// 2020, one far away in Berlin used for data requests and a pair
// straddling the 180th meridian.
func testStations() []*Station {
	noDaily := fullInventory()
	noDaily.Daily = DateSpan{}

	oldInventory := fullInventory()
	oldInventory.Daily = dateSpan(2000, time.January, 1, 2020, time.December, 31)

	// Berlin reports data into the future so requirements touching the
	// current year can be satisfied regardless of when the tests run.
	berlinInventory := fullInventory()
	future := time.Now().UTC().AddDate(1, 0, 0)
	berlinInventory.Hourly.End = &Date{Time: future}
	berlinInventory.Daily.End = &Date{Time: future}
	berlin := testStation("10384", "Berlin Tempelhof", 52.4675, 13.4021, berlinInventory)
	berlin.Country = "DE"
	berlin.Timezone = strPtr("Europe/Berlin")

	return []*Station{
		testStation("NYC001", "Central Park", 40.7789, -73.9692, fullInventory()),
		testStation("NYC002", "Newark Liberty", 40.6895, -74.1745, fullInventory()),
		testStation("NYC003", "John F. Kennedy", 40.6413, -73.7781, fullInventory()),
		testStation("NYC004", "LaGuardia", 40.7769, -73.8740, noDaily),
		testStation("PHL001", "Philadelphia Intl", 39.8729, -75.2437, fullInventory()),
		testStation("HFD001", "Hartford Brainard", 41.7658, -72.6734, oldInventory),
		testStation("DTL001", "Dateline West", 0, 179.95, fullInventory()),
		testStation("DTL002", "Dateline East", 0, -179.95, fullInventory()),
		berlin,
	}
}

func stationsJSON(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(testStations())
	assert.Nil(t, err)
	return data
}

// dailyCSV produces one daily row per day of the year with the day number
// as average temperature and an empty snow column.
func dailyCSV(years ...int) []byte {
	var b strings.Builder
	for _, year := range years {
		for d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
			fmt.Fprintf(&b, "%s,%.1f,%.1f,%.1f,0.4,,180,12.3,21.0,1013.2,120\n",
				d.Format("2006-01-02"), float64(d.YearDay()), float64(d.YearDay())-5, float64(d.YearDay())+5)
		}
	}
	return []byte(b.String())
}

// hourlyCSV produces one row per hour of the given day with the hour as
// temperature and condition code 3 (cloudy).
func hourlyCSV(day time.Time) []byte {
	var b strings.Builder
	for hour := 0; hour < 24; hour++ {
		fmt.Fprintf(&b, "%s,%d,%.1f,4.2,75,0.0,,200,15.0,,1009.8,30,3\n",
			day.Format("2006-01-02"), hour, float64(hour))
	}
	return []byte(b.String())
}

// monthlyCSV produces one row per month of the given years.
func monthlyCSV(years ...int) []byte {
	var b strings.Builder
	for _, year := range years {
		for month := 1; month <= 12; month++ {
			fmt.Fprintf(&b, "%d,%d,%.1f,2.0,18.0,55.3,11.0,1014.0,4300\n", year, month, float64(month))
		}
	}
	return []byte(b.String())
}

// climateCSV produces one normals row per month for the 1991-2020 period.
func climateCSV() []byte {
	var b strings.Builder
	for month := 1; month <= 12; month++ {
		fmt.Fprintf(&b, "1991,2020,%d,1.5,9.5,45.0,12.0,1015.0,3600\n", month)
	}
	return []byte(b.String())
}

// fixtureServer serves gzip-compressed bulk files and counts requests per
// path so tests can assert on download behavior.
type fixtureServer struct {
	mu      sync.Mutex
	hits    map[string]int
	files   map[string][]byte
	failing bool
	delay   time.Duration

	srv *httptest.Server
}

func newFixtureServer(t *testing.T, files map[string][]byte) *fixtureServer {
	t.Helper()

	f := &fixtureServer{
		hits:  make(map[string]int),
		files: files,
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)

	return f
}

func (f *fixtureServer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	failing := f.failing
	delay := f.delay
	raw, ok := f.files[strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".gz")]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if failing {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	gz := gzip.NewWriter(w)
	defer gz.Close()
	_, _ = gz.Write(raw)
}

func (f *fixtureServer) url() string { return f.srv.URL }

func (f *fixtureServer) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fixtureServer) setFailing(failing bool) {
	f.mu.Lock()
	f.failing = failing
	f.mu.Unlock()
}

func (f *fixtureServer) setDelay(d time.Duration) {
	f.mu.Lock()
	f.delay = d
	f.mu.Unlock()
}

func (f *fixtureServer) setFile(path string, raw []byte) {
	f.mu.Lock()
	f.files[path] = raw
	f.mu.Unlock()
}

// defaultFixtureFiles bundles the station document plus data files for the
// fixture stations.
func defaultFixtureFiles(t *testing.T) map[string][]byte {
	day := time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC)
	return map[string][]byte{
		"stations/lite.json": stationsJSON(t),
		"daily/10384.csv":    dailyCSV(2022, 2023),
		"daily/NYC001.csv":   dailyCSV(2023),
		"daily/NYC002.csv":   dailyCSV(2023),
		"daily/NYC003.csv":   dailyCSV(2023),
		"hourly/10384.csv":   hourlyCSV(day),
		"monthly/10384.csv":  monthlyCSV(2022, 2023),
		"normals/10384.csv":  climateCSV(),
	}
}

func newTestClient(t *testing.T, f *fixtureServer, opts ...Option) *Client {
	t.Helper()
	client, _ := newTestClientWithDir(t, f, opts...)
	return client
}

func newTestClientWithDir(t *testing.T, f *fixtureServer, opts ...Option) (*Client, string) {
	t.Helper()

	dir := t.TempDir()
	opts = append([]Option{WithCacheDir(dir), WithBaseURL(f.url())}, opts...)

	client, err := New(context.Background(), opts...)
	assert.Nil(t, err)

	return client, dir
}
