package meteostat

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	monthKeyLayout  = "2006-01"
)

// Key columns synthesized during parsing. They are zero-padded so that
// lexicographic comparison in the engine matches chronological order.
const (
	colTimestamp = "timestamp"
	colDate      = "date"
	colPeriod    = "period"
	colStartYear = "start_year"
	colEndYear   = "end_year"
	colMonth     = "month"
)

// parseFrame reads a headerless per-station CSV into a dataframe with the
// frequency's fixed schema. Any malformed row aborts the parse; no partial
// dataset is returned.
func parseFrame(freq Frequency, station string, r io.Reader) (dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = freq.fieldsPerRecord()

	rows, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, &ParseError{
			Station: station,
			Detail:  fmt.Sprintf("malformed %s csv", freq),
			Cause:   err,
		}
	}

	keys, err := buildKeyColumns(freq, station, rows)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	columns := keys
	offset := freq.keyColumnCount()
	for i, col := range freq.measurementColumns() {
		values := make([]string, len(rows))
		for r, row := range rows {
			values[r] = row[offset+i]
		}
		typ := series.Float
		if !col.numeric {
			typ = series.Int
		}
		columns = append(columns, series.New(values, typ, col.name))
	}

	df := dataframe.New(columns...)
	if df.Err != nil {
		return dataframe.DataFrame{}, &ParseError{
			Station: station,
			Detail:  fmt.Sprintf("failed to assemble %s dataframe", freq),
			Cause:   df.Err,
		}
	}

	return sortByKey(freq, df), nil
}

// buildKeyColumns validates the leading time-key fields of every row and
// synthesizes the frequency's sortable key columns.
func buildKeyColumns(freq Frequency, station string, rows [][]string) ([]series.Series, error) {
	switch freq {
	case Hourly:
		keys := make([]string, len(rows))
		for i, row := range rows {
			day, err := time.Parse(dateLayout, row[0])
			if err != nil {
				return nil, parseRowError(station, i, "invalid date", err)
			}
			hour, err := strconv.Atoi(row[1])
			if err != nil || hour < 0 || hour > 23 {
				return nil, parseRowError(station, i, fmt.Sprintf("invalid hour %q", row[1]), err)
			}
			keys[i] = day.Add(time.Duration(hour) * time.Hour).Format(timestampLayout)
		}
		return []series.Series{series.New(keys, series.String, colTimestamp)}, nil

	case Daily:
		keys := make([]string, len(rows))
		for i, row := range rows {
			if _, err := time.Parse(dateLayout, row[0]); err != nil {
				return nil, parseRowError(station, i, "invalid date", err)
			}
			keys[i] = row[0]
		}
		return []series.Series{series.New(keys, series.String, colDate)}, nil

	case Monthly:
		keys := make([]string, len(rows))
		for i, row := range rows {
			year, month, err := parseYearMonth(row[0], row[1])
			if err != nil {
				return nil, parseRowError(station, i, "invalid year/month", err)
			}
			keys[i] = fmt.Sprintf("%04d-%02d", year, month)
		}
		return []series.Series{series.New(keys, series.String, colPeriod)}, nil

	case Climate:
		starts := make([]string, len(rows))
		ends := make([]string, len(rows))
		months := make([]string, len(rows))
		for i, row := range rows {
			for _, field := range row[:3] {
				if _, err := strconv.Atoi(field); err != nil {
					return nil, parseRowError(station, i, fmt.Sprintf("invalid normals key %q", field), err)
				}
			}
			starts[i], ends[i], months[i] = row[0], row[1], row[2]
		}
		return []series.Series{
			series.New(starts, series.Int, colStartYear),
			series.New(ends, series.Int, colEndYear),
			series.New(months, series.Int, colMonth),
		}, nil

	default:
		return nil, &ParseError{Station: station, Detail: fmt.Sprintf("unknown frequency %d", freq)}
	}
}

func parseYearMonth(yearField, monthField string) (int, int, error) {
	year, err := strconv.Atoi(yearField)
	if err != nil {
		return 0, 0, err
	}
	month, err := strconv.Atoi(monthField)
	if err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	return year, month, nil
}

func parseRowError(station string, row int, detail string, cause error) error {
	return &ParseError{
		Station: station,
		Detail:  fmt.Sprintf("row %d: %s", row+1, detail),
		Cause:   cause,
	}
}

// sortByKey orders the dataframe ascending by its time key so collected
// records come back chronological.
func sortByKey(freq Frequency, df dataframe.DataFrame) dataframe.DataFrame {
	switch freq {
	case Hourly:
		return df.Arrange(dataframe.Sort(colTimestamp))
	case Daily:
		return df.Arrange(dataframe.Sort(colDate))
	case Monthly:
		return df.Arrange(dataframe.Sort(colPeriod))
	default:
		return df.Arrange(dataframe.Sort(colStartYear), dataframe.Sort(colEndYear), dataframe.Sort(colMonth))
	}
}
