package meteostat

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/tj/assert"
)

func testDailyFrame(t *testing.T, years ...int) DailyFrame {
	t.Helper()
	df, err := parseFrame(Daily, "10384", bytes.NewReader(dailyCSV(years...)))
	assert.Nil(t, err)
	return DailyFrame{lf: lazyFrame{df: df}}
}

func testHourlyFrame(t *testing.T, day time.Time) HourlyFrame {
	t.Helper()
	df, err := parseFrame(Hourly, "10384", bytes.NewReader(hourlyCSV(day)))
	assert.Nil(t, err)
	return HourlyFrame{lf: lazyFrame{df: df}}
}

func testMonthlyFrame(t *testing.T, years ...int) MonthlyFrame {
	t.Helper()
	df, err := parseFrame(Monthly, "10384", bytes.NewReader(monthlyCSV(years...)))
	assert.Nil(t, err)
	return MonthlyFrame{lf: lazyFrame{df: df}}
}

func testClimateFrame(t *testing.T) ClimateFrame {
	t.Helper()
	df, err := parseFrame(Climate, "10384", bytes.NewReader(climateCSV()))
	assert.Nil(t, err)
	return ClimateFrame{lf: lazyFrame{df: df}}
}

func TestDailyFrameForPeriodYear(t *testing.T) {
	frame := testDailyFrame(t, 2022, 2023)

	records, err := frame.ForPeriod(Year(2023)).Collect()
	assert.Nil(t, err)

	assert.Len(t, records, 365)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), records[364].Date)
}

func TestDailyFrameFiltersDoNotMutateBase(t *testing.T) {
	frame := testDailyFrame(t, 2022, 2023)

	filtered, err := frame.ForPeriod(YearMonth(2023, time.March)).Collect()
	assert.Nil(t, err)
	assert.Len(t, filtered, 31)

	// The base frame still materializes every row.
	all, err := frame.Collect()
	assert.Nil(t, err)
	assert.Len(t, all, 730)
}

func TestDailyFrameForRangeIsInclusive(t *testing.T) {
	frame := testDailyFrame(t, 2023)

	records, err := frame.ForRange(
		time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.March, 3, 0, 0, 0, 0, time.UTC),
	).Collect()
	assert.Nil(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, time.Date(2023, time.March, 3, 0, 0, 0, 0, time.UTC), records[2].Date)
}

func TestDailyFrameAtCollectOne(t *testing.T) {
	frame := testDailyFrame(t, 2023)
	date := time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC)

	record, err := frame.At(date).CollectOne()
	assert.Nil(t, err)

	assert.Equal(t, date, record.Date)
	assert.Equal(t, float64(date.YearDay()), *record.TempAvg)
	assert.Equal(t, float64(date.YearDay())-5, *record.TempMin)
	assert.Equal(t, float64(date.YearDay())+5, *record.TempMax)
	assert.Equal(t, 180, *record.WindDirection)
	assert.Equal(t, 1013.2, *record.Pressure)
	assert.Equal(t, 120, *record.SunshineMinutes)
	assert.Nil(t, record.Snow)
}

func TestDailyFrameCollectOneRequiresExactlyOneRow(t *testing.T) {
	frame := testDailyFrame(t, 2023)

	_, err := frame.At(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)).CollectOne()
	var single *SingleRowError
	assert.True(t, errors.As(err, &single))
	assert.Equal(t, 0, single.Actual)

	_, err = frame.ForRange(
		time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC),
	).CollectOne()
	assert.True(t, errors.As(err, &single))
	assert.Equal(t, 2, single.Actual)
}

func TestHourlyFrameForPeriodDay(t *testing.T) {
	day := time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC)
	frame := testHourlyFrame(t, day)

	records, err := frame.ForPeriod(CalendarDate(day)).Collect()
	assert.Nil(t, err)

	assert.Len(t, records, 24)
	assert.Equal(t, day, records[0].Timestamp)
	assert.Equal(t, day.Add(23*time.Hour), records[23].Timestamp)
}

func TestHourlyFrameAtRoundsToNearestHour(t *testing.T) {
	day := time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC)
	frame := testHourlyFrame(t, day)

	tests := []struct {
		name     string
		at       time.Time
		expected int
	}{
		{"rounds down before half past", day.Add(10*time.Hour + 20*time.Minute), 10},
		{"rounds up from half past", day.Add(10*time.Hour + 30*time.Minute), 11},
		{"exact hour unchanged", day.Add(5 * time.Hour), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := frame.At(tt.at).CollectOne()
			assert.Nil(t, err)
			assert.Equal(t, day.Add(time.Duration(tt.expected)*time.Hour), record.Timestamp)
			assert.Equal(t, float64(tt.expected), *record.Temperature)
		})
	}
}

func TestHourlyFrameDecodesCondition(t *testing.T) {
	day := time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC)
	frame := testHourlyFrame(t, day)

	record, err := frame.At(day).CollectOne()
	assert.Nil(t, err)

	assert.NotNil(t, record.Condition)
	assert.Equal(t, ConditionCloudy, *record.Condition)
	assert.Nil(t, record.PeakWindGust)
	assert.Nil(t, record.Snow)
}

func TestMonthlyFrameForPeriod(t *testing.T) {
	frame := testMonthlyFrame(t, 2022, 2023)

	year, err := frame.ForPeriod(Year(2023)).Collect()
	assert.Nil(t, err)
	assert.Len(t, year, 12)
	assert.Equal(t, 2023, year[0].Year)
	assert.Equal(t, 1, year[0].Month)

	record, err := frame.ForPeriod(YearMonth(2023, time.July)).CollectOne()
	assert.Nil(t, err)
	assert.Equal(t, 2023, record.Year)
	assert.Equal(t, 7, record.Month)
	assert.Equal(t, 7.0, *record.TempAvg)
}

func TestMonthlyFrameAt(t *testing.T) {
	frame := testMonthlyFrame(t, 2022, 2023)

	record, err := frame.At(2022, time.March).CollectOne()
	assert.Nil(t, err)
	assert.Equal(t, 2022, record.Year)
	assert.Equal(t, 3, record.Month)
}

func TestClimateFrameRejectsInstantFilters(t *testing.T) {
	frame := testClimateFrame(t)

	_, err := frame.ForPeriod(Year(2020))
	assert.True(t, errors.Is(err, ErrUnsupportedFilter))

	_, err = frame.ForRange(time.Now().AddDate(-1, 0, 0), time.Now())
	assert.True(t, errors.Is(err, ErrUnsupportedFilter))
}

func TestClimateFrameAt(t *testing.T) {
	frame := testClimateFrame(t)

	record, err := frame.At(1991, 2020, time.July).CollectOne()
	assert.Nil(t, err)
	assert.Equal(t, 1991, record.StartYear)
	assert.Equal(t, 2020, record.EndYear)
	assert.Equal(t, 7, record.Month)
	assert.Equal(t, 9.5, *record.TempMaxAvg)

	_, err = frame.At(1961, 1990, time.July).CollectOne()
	var single *SingleRowError
	assert.True(t, errors.As(err, &single))
	assert.Equal(t, 0, single.Actual)
}

func TestClimateFrameCollectAll(t *testing.T) {
	frame := testClimateFrame(t)

	records, err := frame.Collect()
	assert.Nil(t, err)

	assert.Len(t, records, 12)
	for i, record := range records {
		assert.Equal(t, i+1, record.Month)
	}
}
