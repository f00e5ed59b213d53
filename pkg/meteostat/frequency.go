package meteostat

import "fmt"

// Frequency is the temporal resolution of a weather dataset.
type Frequency int

const (
	Hourly Frequency = iota
	Daily
	Monthly
	Climate
)

// pathSegment returns the bulk endpoint path element for the frequency.
func (f Frequency) pathSegment() string {
	switch f {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Climate:
		return "normals"
	default:
		return "unknown"
	}
}

func (f Frequency) String() string { return f.pathSegment() }

// cachePath returns the relative cache location of a station file,
// one per-frequency subdirectory holding one file per station id.
func (f Frequency) cachePath(stationID string) string {
	return fmt.Sprintf("%s/%s.csv", f.pathSegment(), stationID)
}

// rawColumn describes one column of the headerless source CSV.
type rawColumn struct {
	name    string
	numeric bool // parsed as float, otherwise integer
}

// measurementColumns lists the value columns of each frequency, in file
// order, after the leading time-key columns have been consumed.
func (f Frequency) measurementColumns() []rawColumn {
	switch f {
	case Hourly:
		return []rawColumn{
			{"temp", true}, {"dwpt", true}, {"rhum", false}, {"prcp", true},
			{"snow", false}, {"wdir", false}, {"wspd", true}, {"wpgt", true},
			{"pres", true}, {"tsun", false}, {"coco", false},
		}
	case Daily:
		return []rawColumn{
			{"tavg", true}, {"tmin", true}, {"tmax", true}, {"prcp", true},
			{"snow", false}, {"wdir", false}, {"wspd", true}, {"wpgt", true},
			{"pres", true}, {"tsun", false},
		}
	case Monthly:
		return []rawColumn{
			{"tavg", true}, {"tmin", true}, {"tmax", true}, {"prcp", true},
			{"wspd", true}, {"pres", true}, {"tsun", false},
		}
	case Climate:
		return []rawColumn{
			{"tmin", true}, {"tmax", true}, {"prcp", true},
			{"wspd", true}, {"pres", true}, {"tsun", false},
		}
	default:
		return nil
	}
}

// keyColumnCount is the number of leading CSV columns that form the time key.
func (f Frequency) keyColumnCount() int {
	switch f {
	case Hourly: // date, hour
		return 2
	case Daily: // date
		return 1
	case Monthly: // year, month
		return 2
	case Climate: // start_year, end_year, month
		return 3
	default:
		return 0
	}
}

// fieldsPerRecord is the expected CSV field count for the frequency.
func (f Frequency) fieldsPerRecord() int {
	return f.keyColumnCount() + len(f.measurementColumns())
}
