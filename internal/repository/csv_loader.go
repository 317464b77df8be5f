package repository

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hashicorp/go-multierror"
)

// LoadCSV reads the daily and hourly tables from CSV files.
// Both files are read before reporting, so one run shows every problem.
func LoadCSV(dailyPath, hourlyPath string) (*RideRepository, error) {
	var result *multierror.Error

	daily, err := readCSVFile(dailyPath, dailyTypes)
	result = multierror.Append(result, err)

	hourly, err := readCSVFile(hourlyPath, hourlyTypes)
	result = multierror.Append(result, err)

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return NewRideRepository(daily, hourly)
}

// LoadCSVReaders reads both tables from already opened CSV streams
func LoadCSVReaders(daily, hourly io.Reader) (*RideRepository, error) {
	var result *multierror.Error

	dailyDF := readCSV(daily, dailyTypes)
	if dailyDF.Err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to parse daily table: %w", dailyDF.Err))
	}

	hourlyDF := readCSV(hourly, hourlyTypes)
	if hourlyDF.Err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to parse hourly table: %w", hourlyDF.Err))
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return NewRideRepository(dailyDF, hourlyDF)
}

func readCSVFile(path string, types map[string]series.Type) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	df := readCSV(f, types)
	if df.Err != nil {
		return df, fmt.Errorf("failed to parse %s: %w", path, df.Err)
	}
	return df, nil
}

func readCSV(r io.Reader, types map[string]series.Type) dataframe.DataFrame {
	return dataframe.ReadCSV(r, dataframe.WithTypes(types))
}
