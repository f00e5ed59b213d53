package meteostat

import (
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// lazyFrame is the shared core of the per-frequency frame wrappers: a
// parsed base dataframe plus composed-but-unapplied filters. Copies are
// cheap, they share the base and copy only the filter list. Nothing is
// evaluated until Materialize.
type lazyFrame struct {
	df      dataframe.DataFrame
	filters []dataframe.F
}

func (l lazyFrame) withFilters(fs ...dataframe.F) lazyFrame {
	next := make([]dataframe.F, len(l.filters), len(l.filters)+len(fs))
	copy(next, l.filters)
	return lazyFrame{df: l.df, filters: append(next, fs...)}
}

func (l lazyFrame) withKeyRange(column, startKey, endKey string) lazyFrame {
	return l.withFilters(
		dataframe.F{Colname: column, Comparator: series.GreaterEq, Comparando: startKey},
		dataframe.F{Colname: column, Comparator: series.LessEq, Comparando: endKey},
	)
}

// materialize executes the composed plan against the engine.
func (l lazyFrame) materialize() (dataframe.DataFrame, error) {
	out := l.df
	if len(l.filters) > 0 {
		out = out.FilterAggregation(dataframe.And, l.filters...)
	}
	if out.Err != nil {
		return dataframe.DataFrame{}, &EngineError{Cause: out.Err}
	}
	return out, nil
}

// HourlyFrame is a lazy hourly dataset keyed by UTC timestamp.
type HourlyFrame struct {
	lf lazyFrame
}

// ForPeriod keeps the rows whose timestamp falls within the period.
func (f HourlyFrame) ForPeriod(p Period) HourlyFrame {
	start, end := p.span()
	return f.ForRange(start, end.Add(23*time.Hour))
}

// ForRange keeps the rows between start and end, inclusive on both sides.
func (f HourlyFrame) ForRange(start, end time.Time) HourlyFrame {
	return HourlyFrame{lf: f.lf.withKeyRange(
		colTimestamp,
		start.UTC().Format(timestampLayout),
		end.UTC().Format(timestampLayout),
	)}
}

// At keeps the single row for the hour nearest to t (minutes round to the
// closest full hour).
func (f HourlyFrame) At(t time.Time) HourlyFrame {
	utc := t.UTC()
	if utc.Minute() >= 30 {
		utc = utc.Add(time.Hour)
	}
	hour := utc.Truncate(time.Hour)
	return HourlyFrame{lf: f.lf.withFilters(dataframe.F{
		Colname:    colTimestamp,
		Comparator: series.Eq,
		Comparando: hour.Format(timestampLayout),
	})}
}

// Materialize executes the composed plan and returns the realized table.
func (f HourlyFrame) Materialize() (dataframe.DataFrame, error) { return f.lf.materialize() }

// Collect materializes and converts every row into a typed record.
func (f HourlyFrame) Collect() ([]HourlyRecord, error) {
	df, err := f.Materialize()
	if err != nil {
		return nil, err
	}
	return decodeRows(df, decodeHourly)
}

// CollectOne materializes and requires exactly one matching row.
func (f HourlyFrame) CollectOne() (HourlyRecord, error) {
	records, err := f.Collect()
	if err != nil {
		return HourlyRecord{}, err
	}
	if len(records) != 1 {
		return HourlyRecord{}, &SingleRowError{Actual: len(records)}
	}
	return records[0], nil
}

// DailyFrame is a lazy daily dataset keyed by calendar date.
type DailyFrame struct {
	lf lazyFrame
}

// ForPeriod keeps the rows whose date falls within the period.
func (f DailyFrame) ForPeriod(p Period) DailyFrame {
	start, end := p.span()
	return f.ForRange(start, end)
}

// ForRange keeps the rows between the days of start and end, inclusive.
func (f DailyFrame) ForRange(start, end time.Time) DailyFrame {
	return DailyFrame{lf: f.lf.withKeyRange(
		colDate,
		start.UTC().Format(dateLayout),
		end.UTC().Format(dateLayout),
	)}
}

// At keeps the single row for the given calendar date.
func (f DailyFrame) At(date time.Time) DailyFrame {
	return DailyFrame{lf: f.lf.withFilters(dataframe.F{
		Colname:    colDate,
		Comparator: series.Eq,
		Comparando: date.UTC().Format(dateLayout),
	})}
}

// Materialize executes the composed plan and returns the realized table.
func (f DailyFrame) Materialize() (dataframe.DataFrame, error) { return f.lf.materialize() }

// Collect materializes and converts every row into a typed record.
func (f DailyFrame) Collect() ([]DailyRecord, error) {
	df, err := f.Materialize()
	if err != nil {
		return nil, err
	}
	return decodeRows(df, decodeDaily)
}

// CollectOne materializes and requires exactly one matching row.
func (f DailyFrame) CollectOne() (DailyRecord, error) {
	records, err := f.Collect()
	if err != nil {
		return DailyRecord{}, err
	}
	if len(records) != 1 {
		return DailyRecord{}, &SingleRowError{Actual: len(records)}
	}
	return records[0], nil
}

// MonthlyFrame is a lazy monthly dataset keyed by (year, month).
type MonthlyFrame struct {
	lf lazyFrame
}

// ForPeriod keeps the rows whose month falls within the period.
func (f MonthlyFrame) ForPeriod(p Period) MonthlyFrame {
	start, end := p.span()
	return MonthlyFrame{lf: f.lf.withKeyRange(
		colPeriod,
		start.Format(monthKeyLayout),
		end.Format(monthKeyLayout),
	)}
}

// ForRange keeps the rows between the months of start and end, inclusive.
func (f MonthlyFrame) ForRange(start, end time.Time) MonthlyFrame {
	return MonthlyFrame{lf: f.lf.withKeyRange(
		colPeriod,
		start.UTC().Format(monthKeyLayout),
		end.UTC().Format(monthKeyLayout),
	)}
}

// At keeps the single row for the given year and month.
func (f MonthlyFrame) At(year int, month time.Month) MonthlyFrame {
	key := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format(monthKeyLayout)
	return MonthlyFrame{lf: f.lf.withFilters(dataframe.F{
		Colname:    colPeriod,
		Comparator: series.Eq,
		Comparando: key,
	})}
}

// Materialize executes the composed plan and returns the realized table.
func (f MonthlyFrame) Materialize() (dataframe.DataFrame, error) { return f.lf.materialize() }

// Collect materializes and converts every row into a typed record.
func (f MonthlyFrame) Collect() ([]MonthlyRecord, error) {
	df, err := f.Materialize()
	if err != nil {
		return nil, err
	}
	return decodeRows(df, decodeMonthly)
}

// CollectOne materializes and requires exactly one matching row.
func (f MonthlyFrame) CollectOne() (MonthlyRecord, error) {
	records, err := f.Collect()
	if err != nil {
		return MonthlyRecord{}, err
	}
	if len(records) != 1 {
		return MonthlyRecord{}, &SingleRowError{Actual: len(records)}
	}
	return records[0], nil
}

// ClimateFrame is a lazy climate-normals dataset keyed by the normal
// period (start year, end year, month), not by an instant.
type ClimateFrame struct {
	lf lazyFrame
}

// ForPeriod is not defined for climate normals; the dataset has no
// instant-based time key.
func (f ClimateFrame) ForPeriod(Period) (ClimateFrame, error) {
	return f, ErrUnsupportedFilter
}

// ForRange is not defined for climate normals.
func (f ClimateFrame) ForRange(time.Time, time.Time) (ClimateFrame, error) {
	return f, ErrUnsupportedFilter
}

// At keeps the single row for the given normal period.
func (f ClimateFrame) At(startYear, endYear int, month time.Month) ClimateFrame {
	return ClimateFrame{lf: f.lf.withFilters(
		dataframe.F{Colname: colStartYear, Comparator: series.Eq, Comparando: startYear},
		dataframe.F{Colname: colEndYear, Comparator: series.Eq, Comparando: endYear},
		dataframe.F{Colname: colMonth, Comparator: series.Eq, Comparando: int(month)},
	)}
}

// Materialize executes the composed plan and returns the realized table.
func (f ClimateFrame) Materialize() (dataframe.DataFrame, error) { return f.lf.materialize() }

// Collect materializes and converts every row into a typed record.
func (f ClimateFrame) Collect() ([]ClimateNormal, error) {
	df, err := f.Materialize()
	if err != nil {
		return nil, err
	}
	return decodeRows(df, decodeClimate)
}

// CollectOne materializes and requires exactly one matching row.
func (f ClimateFrame) CollectOne() (ClimateNormal, error) {
	records, err := f.Collect()
	if err != nil {
		return ClimateNormal{}, err
	}
	if len(records) != 1 {
		return ClimateNormal{}, &SingleRowError{Actual: len(records)}
	}
	return records[0], nil
}
