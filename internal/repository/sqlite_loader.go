package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hashicorp/go-multierror"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
)

// LoadSQLite reads the daily and hourly tables from an SQLite database
func LoadSQLite(ctx context.Context, db *sql.DB, dailyTable, hourlyTable string) (*RideRepository, error) {
	var result *multierror.Error

	daily, err := readTable(ctx, db, dailyTable, models.DailyColumns, dailyTypes)
	result = multierror.Append(result, err)

	hourly, err := readTable(ctx, db, hourlyTable, models.HourlyColumns, hourlyTypes)
	result = multierror.Append(result, err)

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return NewRideRepository(daily, hourly)
}

func readTable(ctx context.Context, db *sql.DB, table string, columns []string, types map[string]series.Type) (dataframe.DataFrame, error) {
	if table == "" || strings.ContainsAny(table, "\"`;") {
		return dataframe.DataFrame{}, fmt.Errorf("invalid table name %q", table)
	}

	query := fmt.Sprintf(`SELECT %s FROM "%s"`, strings.Join(columns, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	records := [][]string{columns}
	for rows.Next() {
		cells := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("failed to scan %s: %w", table, err)
		}

		rec := make([]string, len(columns))
		for i, c := range cells {
			rec[i] = cellString(c)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to read %s: %w", table, err)
	}

	if len(records) == 1 {
		return dataframe.DataFrame{}, fmt.Errorf("%s: no rows", table)
	}

	df := dataframe.LoadRecords(records, dataframe.WithTypes(types))
	if df.Err != nil {
		return df, fmt.Errorf("failed to load %s: %w", table, df.Err)
	}
	return df, nil
}

// cellString renders a scanned SQLite value the way it would appear in CSV
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(dateLayout)
	default:
		return fmt.Sprint(t)
	}
}
