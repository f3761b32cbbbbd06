package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fuelstation/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ShiftRow is one historical shift from a legacy register workbook.
type ShiftRow struct {
	Row            int
	StaffName      string
	PumpID         string
	ShiftType      domain.ShiftType
	Date           time.Time
	StartTime      time.Time
	EndTime        time.Time
	OpeningReading float64
	ClosingReading float64
	CashGiven      float64
	CashRemaining  float64
	CardSales      float64
	UPISales       float64
	CashSales      float64
	TestingFuel    float64
	IndentSales    *float64
	Expenses       *float64
}

var headerAliases = map[string]string{
	"staff":           "staff",
	"staff name":      "staff",
	"attendant":       "staff",
	"employee":        "staff",
	"pump":            "pump",
	"pump id":         "pump",
	"nozzle":          "pump",
	"shift":           "shift_type",
	"shift type":      "shift_type",
	"date":            "date",
	"shift date":      "date",
	"start":           "start_time",
	"start time":      "start_time",
	"end":             "end_time",
	"end time":        "end_time",
	"opening":         "opening_reading",
	"opening reading": "opening_reading",
	"opening meter":   "opening_reading",
	"closing":         "closing_reading",
	"closing reading": "closing_reading",
	"closing meter":   "closing_reading",
	"cash given":      "cash_given",
	"float":           "cash_given",
	"cash remaining":  "cash_remaining",
	"cash in hand":    "cash_remaining",
	"card":            "card_sales",
	"card sales":      "card_sales",
	"upi":             "upi_sales",
	"upi sales":       "upi_sales",
	"cash sales":      "cash_sales",
	"testing":         "testing_fuel",
	"testing fuel":    "testing_fuel",
	"indent":          "indent_sales",
	"indent sales":    "indent_sales",
	"credit sales":    "indent_sales",
	"expenses":        "expenses",
}

var requiredColumns = []string{
	"staff",
	"date",
	"start_time",
	"end_time",
	"opening_reading",
	"closing_reading",
}

var amountColumns = []string{
	"cash_given",
	"cash_remaining",
	"card_sales",
	"upi_sales",
	"cash_sales",
	"testing_fuel",
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006", "2/1/2006"}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// ParseShiftRows reads the first sheet of a legacy shift register. Rows
// without a staff name are skipped. An end time earlier than the start time
// is taken to fall on the following day.
func ParseShiftRows(reader io.Reader) ([]ShiftRow, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	colMap := mapColumns(rows[0])
	for _, name := range requiredColumns {
		if _, ok := colMap[name]; !ok {
			return nil, fmt.Errorf("missing required column: %s", name)
		}
	}

	result := make([]ShiftRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		staff := strings.TrimSpace(readCell(cells, colMap["staff"]))
		if staff == "" {
			continue
		}
		row, err := parseShiftRow(cells, colMap)
		if err != nil {
			return nil, fmt.Errorf("row %d %w", index+1, err)
		}
		row.Row = index + 1
		row.StaffName = staff
		result = append(result, row)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("excel file has no valid data rows")
	}
	return result, nil
}

func parseShiftRow(cells []string, colMap map[string]int) (ShiftRow, error) {
	var row ShiftRow

	if idx, ok := colMap["pump"]; ok {
		row.PumpID = strings.TrimSpace(readCell(cells, idx))
	}
	if idx, ok := colMap["shift_type"]; ok {
		raw := strings.ToLower(strings.TrimSpace(readCell(cells, idx)))
		if raw != "" {
			row.ShiftType = domain.ShiftType(raw)
			if !row.ShiftType.Valid() {
				return ShiftRow{}, fmt.Errorf("invalid shift_type: %q", raw)
			}
		}
	}

	date, err := parseDate(readCell(cells, colMap["date"]))
	if err != nil {
		return ShiftRow{}, fmt.Errorf("invalid date: %w", err)
	}
	row.Date = date

	start, err := parseClock(date, readCell(cells, colMap["start_time"]))
	if err != nil {
		return ShiftRow{}, fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := parseClock(date, readCell(cells, colMap["end_time"]))
	if err != nil {
		return ShiftRow{}, fmt.Errorf("invalid end_time: %w", err)
	}
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	row.StartTime, row.EndTime = start, end

	if row.OpeningReading, err = parseFloat(readCell(cells, colMap["opening_reading"])); err != nil {
		return ShiftRow{}, fmt.Errorf("invalid opening_reading: %w", err)
	}
	if row.ClosingReading, err = parseFloat(readCell(cells, colMap["closing_reading"])); err != nil {
		return ShiftRow{}, fmt.Errorf("invalid closing_reading: %w", err)
	}

	amounts := make(map[string]float64, len(amountColumns))
	for _, name := range amountColumns {
		value, err := optionalFloat(cells, colMap, name)
		if err != nil {
			return ShiftRow{}, err
		}
		if value != nil {
			amounts[name] = *value
		}
	}
	row.CashGiven = amounts["cash_given"]
	row.CashRemaining = amounts["cash_remaining"]
	row.CardSales = amounts["card_sales"]
	row.UPISales = amounts["upi_sales"]
	row.CashSales = amounts["cash_sales"]
	row.TestingFuel = amounts["testing_fuel"]

	if row.IndentSales, err = optionalFloat(cells, colMap, "indent_sales"); err != nil {
		return ShiftRow{}, err
	}
	if row.Expenses, err = optionalFloat(cells, colMap, "expenses"); err != nil {
		return ShiftRow{}, err
	}
	return row, nil
}

// optionalFloat returns nil when the column is absent or the cell is blank.
func optionalFloat(cells []string, colMap map[string]int, name string) (*float64, error) {
	idx, ok := colMap[name]
	if !ok {
		return nil, nil
	}
	raw := strings.TrimSpace(readCell(cells, idx))
	if raw == "" {
		return nil, nil
	}
	value, err := parseFloat(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &value, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("value is empty")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// parseClock places a wall-clock cell on date.
func parseClock(date time.Time, raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("value is empty")
	}
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, strings.ToUpper(value)); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", value)
}

func parseFloat(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return parsed, nil
}
