package meteostat

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD" in the station
// metadata document.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// Station is one entry of the global station directory. Stations are
// immutable once loaded; the directory rebuilds the whole set on refresh.
type Station struct {
	ID          string            `json:"id"`
	Country     string            `json:"country"`
	Region      *string           `json:"region"`
	Timezone    *string           `json:"timezone"`
	Name        map[string]string `json:"name"`
	Identifiers Identifiers       `json:"identifiers"`
	Location    Location          `json:"location"`
	Inventory   Inventory         `json:"inventory"`
}

// Identifiers carries the alternative ids a station is known by.
type Identifiers struct {
	National *string `json:"national"`
	WMO      *string `json:"wmo"`
	ICAO     *string `json:"icao"`
}

// Location is the station position in degrees and meters.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Elevation *float64 `json:"elevation"`
}

// Inventory summarizes the known data coverage per frequency.
type Inventory struct {
	Hourly  DateSpan `json:"hourly"`
	Daily   DateSpan `json:"daily"`
	Model   DateSpan `json:"model"`
	Monthly YearSpan `json:"monthly"`
	Normals YearSpan `json:"normals"`
}

// DateSpan is a coverage interval with day resolution.
type DateSpan struct {
	Start *Date `json:"start"`
	End   *Date `json:"end"`
}

// YearSpan is a coverage interval with year resolution.
type YearSpan struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// coverage normalizes the inventory entry for the given frequency to an
// inclusive date interval. ok is false when the station reports no data.
func (inv Inventory) coverage(freq Frequency) (start, end time.Time, ok bool) {
	switch freq {
	case Hourly:
		return dateSpanCoverage(inv.Hourly)
	case Daily:
		return dateSpanCoverage(inv.Daily)
	case Monthly:
		return yearSpanCoverage(inv.Monthly)
	case Climate:
		return yearSpanCoverage(inv.Normals)
	default:
		return time.Time{}, time.Time{}, false
	}
}

func dateSpanCoverage(s DateSpan) (time.Time, time.Time, bool) {
	if s.Start == nil || s.End == nil || s.Start.IsZero() || s.End.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return s.Start.Time, s.End.Time, true
}

func yearSpanCoverage(s YearSpan) (time.Time, time.Time, bool) {
	if s.Start == nil || s.End == nil {
		return time.Time{}, time.Time{}, false
	}
	start := time.Date(*s.Start, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(*s.End, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end, true
}

// DisplayName returns the localized station name for the given language
// code, falling back to English and then to any available name.
func (s *Station) DisplayName(lang string) string {
	if name, ok := s.Name[lang]; ok {
		return name
	}
	if name, ok := s.Name["en"]; ok {
		return name
	}
	for _, name := range s.Name {
		return name
	}
	return s.ID
}

// LatLon is a geographical coordinate in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// StationDistance pairs a station with its great-circle distance from a
// search location.
type StationDistance struct {
	Station    *Station
	DistanceKm float64
}
