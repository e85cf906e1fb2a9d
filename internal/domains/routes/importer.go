package routes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/sangkips/flight-notify-service/internal/render"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")
	ErrNoRoutes          = errors.New("file contains no routes")
	ErrInvalidFile       = errors.New("invalid route file")
)

// RowError reports the first invalid row of an upload. Rows are 1-based as
// shown in a spreadsheet.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ParseRouteFile reads every route from a .csv or .xlsx upload. The whole
// file is parsed before anything is returned; one bad row fails the upload.
func ParseRouteFile(filename string, r io.Reader) ([]FlightRoute, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRoutes
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func parseRows(rows [][]string) ([]FlightRoute, error) {
	var out []FlightRoute
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if i == 0 && isHeader(row) {
			continue
		}
		route, err := parseRow(row)
		if err != nil {
			return nil, &RowError{Row: i + 1, Err: err}
		}
		out = append(out, route)
	}
	if len(out) == 0 {
		return nil, ErrNoRoutes
	}
	return out, nil
}

// parseRow maps the 8 ordered columns: flight number, departure code,
// departure Hebrew, departure English, arrival code, arrival Hebrew,
// arrival English, airline.
func parseRow(row []string) (FlightRoute, error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	number := render.NormalizeFlightNumber(col(0))
	if number == "" {
		return FlightRoute{}, fmt.Errorf("invalid flight number %q", col(0))
	}
	dep := strings.ToUpper(col(1))
	arr := strings.ToUpper(col(4))
	if dep == "" || arr == "" {
		return FlightRoute{}, errors.New("departure and arrival codes are required")
	}
	airline, ok := NormalizeAirline(col(7))
	if !ok {
		return FlightRoute{}, fmt.Errorf("unknown airline %q", col(7))
	}

	return FlightRoute{
		FlightNumber:         number,
		DepartureCity:        dep,
		DepartureCityHebrew:  col(2),
		DepartureCityEnglish: col(3),
		ArrivalCity:          arr,
		ArrivalCityHebrew:    col(5),
		ArrivalCityEnglish:   col(6),
		Airline:              airline,
	}, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// A header row has no digit in its flight number cell.
func isHeader(row []string) bool {
	return !strings.ContainsFunc(strings.TrimPrefix(row[0], "\ufeff"), unicode.IsDigit)
}
