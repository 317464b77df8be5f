package repository

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/hashicorp/go-multierror"

	"github.com/jengzang/bikeshare-dashboard/internal/models"
)

// prepareTable checks that a loaded frame has the required columns and
// valid values, then narrows it to those columns.
func prepareTable(name string, df dataframe.DataFrame, columns []string, validate func(dataframe.DataFrame) error) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, fmt.Errorf("%s table: %w", name, df.Err)
	}

	present := make(map[string]bool)
	for _, n := range df.Names() {
		present[n] = true
	}
	var missing []string
	for _, c := range columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return df, fmt.Errorf("%s table: missing columns %v", name, missing)
	}

	if df.Nrow() == 0 {
		return df, fmt.Errorf("%s table: no rows", name)
	}

	narrowed := df.Select(columns)
	if narrowed.Err != nil {
		return df, fmt.Errorf("%s table: %w", name, narrowed.Err)
	}

	if err := validate(narrowed); err != nil {
		return df, fmt.Errorf("%s table: %w", name, err)
	}

	return narrowed, nil
}

func validateDaily(df dataframe.DataFrame) error {
	var result *multierror.Error
	result = multierror.Append(result,
		checkDates(df),
		checkInts(df, models.ColSeason, "a season code 1-4", func(v int) bool { return v >= 1 && v <= 4 }),
		checkInts(df, models.ColYear, "a year code 0 or 1", func(v int) bool { return v == 0 || v == 1 }),
		checkInts(df, models.ColCount, "a non-negative count", func(v int) bool { return v >= 0 }),
	)
	return result.ErrorOrNil()
}

func validateHourly(df dataframe.DataFrame) error {
	var result *multierror.Error
	result = multierror.Append(result,
		checkDates(df),
		checkInts(df, models.ColWeather, "a weather code", func(int) bool { return true }),
		checkInts(df, models.ColCount, "a non-negative count", func(v int) bool { return v >= 0 }),
	)
	return result.ErrorOrNil()
}

func checkDates(df dataframe.DataFrame) error {
	for i, rec := range df.Col(models.ColDate).Records() {
		if _, err := time.Parse(dateLayout, rec); err != nil {
			return fmt.Errorf("column %q row %d: %q is not a YYYY-MM-DD date", models.ColDate, i+1, rec)
		}
	}
	return nil
}

func checkInts(df dataframe.DataFrame, col, want string, valid func(int) bool) error {
	s := df.Col(col)
	if s.HasNaN() {
		return fmt.Errorf("column %q: non-integer value", col)
	}

	vals, err := s.Int()
	if err != nil {
		return fmt.Errorf("column %q: %w", col, err)
	}
	for i, v := range vals {
		if !valid(v) {
			return fmt.Errorf("column %q row %d: %d is not %s", col, i+1, v, want)
		}
	}
	return nil
}
