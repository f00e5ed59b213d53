package meteostat

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestCollectReturnsOneRecordTypePerFrequency(t *testing.T) {
	day := time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC)

	var hourly []HourlyRecord
	hourly, err := testHourlyFrame(t, day).Collect()
	assert.Nil(t, err)
	assert.Len(t, hourly, 24)

	var daily []DailyRecord
	daily, err = testDailyFrame(t, 2023).ForPeriod(CalendarDate(day)).Collect()
	assert.Nil(t, err)
	assert.Len(t, daily, 1)

	var monthly []MonthlyRecord
	monthly, err = testMonthlyFrame(t, 2023).Collect()
	assert.Nil(t, err)
	assert.Len(t, monthly, 12)

	var normals []ClimateNormal
	normals, err = testClimateFrame(t).Collect()
	assert.Nil(t, err)
	assert.Len(t, normals, 12)
}

func TestDailyRecordJSON(t *testing.T) {
	record := DailyRecord{
		Date:    time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC),
		TempAvg: floatPtr(12.5),
	}

	raw, err := json.Marshal(record)
	assert.Nil(t, err)

	body := string(raw)
	assert.True(t, strings.Contains(body, `"date":"2023-10-26T00:00:00Z"`))
	assert.True(t, strings.Contains(body, `"tempAvg":12.5`))
	// Absent measurements serialize as explicit nulls.
	assert.True(t, strings.Contains(body, `"snow":null`))
}

func TestHourlyRecordJSON(t *testing.T) {
	condition := ConditionCloudy
	record := HourlyRecord{
		Timestamp: time.Date(2023, time.October, 26, 5, 0, 0, 0, time.UTC),
		Condition: &condition,
	}

	raw, err := json.Marshal(record)
	assert.Nil(t, err)

	body := string(raw)
	assert.True(t, strings.Contains(body, `"timestamp":"2023-10-26T05:00:00Z"`))
	assert.True(t, strings.Contains(body, `"condition":3`))
}
