package meteostat

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// HourlyRecord is one observation of an hourly dataset. Optional fields
// are nil where the source reports no value.
type HourlyRecord struct {
	Timestamp        time.Time         `json:"timestamp"`
	Temperature      *float64          `json:"temperature"`
	DewPoint         *float64          `json:"dewPoint"`
	RelativeHumidity *int              `json:"relativeHumidity"`
	Precipitation    *float64          `json:"precipitation"`
	Snow             *int              `json:"snow"`
	WindDirection    *int              `json:"windDirection"`
	WindSpeed        *float64          `json:"windSpeed"`
	PeakWindGust     *float64          `json:"peakWindGust"`
	Pressure         *float64          `json:"pressure"`
	SunshineMinutes  *int              `json:"sunshineMinutes"`
	Condition        *WeatherCondition `json:"condition"`
}

// DailyRecord is one day of a daily dataset.
type DailyRecord struct {
	Date            time.Time `json:"date"`
	TempAvg         *float64  `json:"tempAvg"`
	TempMin         *float64  `json:"tempMin"`
	TempMax         *float64  `json:"tempMax"`
	Precipitation   *float64  `json:"precipitation"`
	Snow            *int      `json:"snow"`
	WindDirection   *int      `json:"windDirection"`
	WindSpeed       *float64  `json:"windSpeed"`
	PeakWindGust    *float64  `json:"peakWindGust"`
	Pressure        *float64  `json:"pressure"`
	SunshineMinutes *int      `json:"sunshineMinutes"`
}

// MonthlyRecord is one month of a monthly dataset.
type MonthlyRecord struct {
	Year            int      `json:"year"`
	Month           int      `json:"month"`
	TempAvg         *float64 `json:"tempAvg"`
	TempMinAvg      *float64 `json:"tempMinAvg"`
	TempMaxAvg      *float64 `json:"tempMaxAvg"`
	Precipitation   *float64 `json:"precipitation"`
	WindSpeed       *float64 `json:"windSpeed"`
	Pressure        *float64 `json:"pressure"`
	SunshineMinutes *int     `json:"sunshineMinutes"`
}

// ClimateNormal is one month of long-term averaged statistics for a
// reference period.
type ClimateNormal struct {
	StartYear       int      `json:"startYear"`
	EndYear         int      `json:"endYear"`
	Month           int      `json:"month"`
	TempMinAvg      *float64 `json:"tempMinAvg"`
	TempMaxAvg      *float64 `json:"tempMaxAvg"`
	Precipitation   *float64 `json:"precipitation"`
	WindSpeed       *float64 `json:"windSpeed"`
	Pressure        *float64 `json:"pressure"`
	SunshineMinutes *int     `json:"sunshineMinutes"`
}

// rowReader addresses one materialized row by column name.
type rowReader struct {
	df   dataframe.DataFrame
	cols map[string]int
	row  int
}

func newRowReader(df dataframe.DataFrame) rowReader {
	cols := make(map[string]int, len(df.Names()))
	for i, name := range df.Names() {
		cols[name] = i
	}
	return rowReader{df: df, cols: cols}
}

func (r rowReader) stringAt(col string) string {
	return r.df.Elem(r.row, r.cols[col]).String()
}

func (r rowReader) floatAt(col string) *float64 {
	elem := r.df.Elem(r.row, r.cols[col])
	if elem.IsNA() {
		return nil
	}
	v := elem.Float()
	return &v
}

func (r rowReader) intAt(col string) *int {
	elem := r.df.Elem(r.row, r.cols[col])
	if elem.IsNA() {
		return nil
	}
	v, err := elem.Int()
	if err != nil {
		return nil
	}
	return &v
}

func (r rowReader) mustIntAt(col string) (int, error) {
	v := r.intAt(col)
	if v == nil {
		return 0, fmt.Errorf("column %q holds no value", col)
	}
	return *v, nil
}

func decodeRows[T any](df dataframe.DataFrame, decode func(rowReader) (T, error)) ([]T, error) {
	reader := newRowReader(df)
	records := make([]T, 0, df.Nrow())
	for row := 0; row < df.Nrow(); row++ {
		reader.row = row
		record, err := decode(reader)
		if err != nil {
			return nil, &EngineError{Cause: err}
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeHourly(r rowReader) (HourlyRecord, error) {
	ts, err := time.Parse(timestampLayout, r.stringAt(colTimestamp))
	if err != nil {
		return HourlyRecord{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	record := HourlyRecord{
		Timestamp:        ts,
		Temperature:      r.floatAt("temp"),
		DewPoint:         r.floatAt("dwpt"),
		RelativeHumidity: r.intAt("rhum"),
		Precipitation:    r.floatAt("prcp"),
		Snow:             r.intAt("snow"),
		WindDirection:    r.intAt("wdir"),
		WindSpeed:        r.floatAt("wspd"),
		PeakWindGust:     r.floatAt("wpgt"),
		Pressure:         r.floatAt("pres"),
		SunshineMinutes:  r.intAt("tsun"),
	}
	if code := r.intAt("coco"); code != nil {
		condition := WeatherCondition(*code)
		if condition.Valid() {
			record.Condition = &condition
		}
	}
	return record, nil
}

func decodeDaily(r rowReader) (DailyRecord, error) {
	date, err := time.Parse(dateLayout, r.stringAt(colDate))
	if err != nil {
		return DailyRecord{}, fmt.Errorf("invalid date: %w", err)
	}

	return DailyRecord{
		Date:            date,
		TempAvg:         r.floatAt("tavg"),
		TempMin:         r.floatAt("tmin"),
		TempMax:         r.floatAt("tmax"),
		Precipitation:   r.floatAt("prcp"),
		Snow:            r.intAt("snow"),
		WindDirection:   r.intAt("wdir"),
		WindSpeed:       r.floatAt("wspd"),
		PeakWindGust:    r.floatAt("wpgt"),
		Pressure:        r.floatAt("pres"),
		SunshineMinutes: r.intAt("tsun"),
	}, nil
}

func decodeMonthly(r rowReader) (MonthlyRecord, error) {
	period, err := time.Parse(monthKeyLayout, r.stringAt(colPeriod))
	if err != nil {
		return MonthlyRecord{}, fmt.Errorf("invalid period: %w", err)
	}

	return MonthlyRecord{
		Year:            period.Year(),
		Month:           int(period.Month()),
		TempAvg:         r.floatAt("tavg"),
		TempMinAvg:      r.floatAt("tmin"),
		TempMaxAvg:      r.floatAt("tmax"),
		Precipitation:   r.floatAt("prcp"),
		WindSpeed:       r.floatAt("wspd"),
		Pressure:        r.floatAt("pres"),
		SunshineMinutes: r.intAt("tsun"),
	}, nil
}

func decodeClimate(r rowReader) (ClimateNormal, error) {
	startYear, err := r.mustIntAt(colStartYear)
	if err != nil {
		return ClimateNormal{}, err
	}
	endYear, err := r.mustIntAt(colEndYear)
	if err != nil {
		return ClimateNormal{}, err
	}
	month, err := r.mustIntAt(colMonth)
	if err != nil {
		return ClimateNormal{}, err
	}

	return ClimateNormal{
		StartYear:       startYear,
		EndYear:         endYear,
		Month:           month,
		TempMinAvg:      r.floatAt("tmin"),
		TempMaxAvg:      r.floatAt("tmax"),
		Precipitation:   r.floatAt("prcp"),
		WindSpeed:       r.floatAt("wspd"),
		Pressure:        r.floatAt("pres"),
		SunshineMinutes: r.intAt("tsun"),
	}, nil
}
