package workbook

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

// Read loads the derived tables from a workbook written by Write.
func Read(path string) (domain.DerivedTables, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.DerivedTables{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var tables domain.DerivedTables

	err = eachRow(f, SheetCleaned, func(line int, c []string) error {
		year, month, err := ints(line, c[0], c[1])
		if err != nil {
			return err
		}
		a, err := anomaly(line, c[2])
		if err != nil {
			return err
		}
		tables.Cleaned = append(tables.Cleaned, domain.CleanedObservation{Year: year, Month: month, MonthlyAnomaly: a})
		return nil
	})
	if err != nil {
		return domain.DerivedTables{}, err
	}

	err = eachRow(f, SheetYearly, func(line int, c []string) error {
		year, _, err := ints(line, c[0], "0")
		if err != nil {
			return err
		}
		avg, err := strconv.ParseFloat(c[1], 64)
		if err != nil {
			return fmt.Errorf("%w: %s line %d: average %q", domain.ErrParse, SheetYearly, line, c[1])
		}
		tables.Yearly = append(tables.Yearly, domain.YearlyAverage{Year: year, AvgAnomaly: avg})
		return nil
	})
	if err != nil {
		return domain.DerivedTables{}, err
	}

	err = eachRow(f, SheetWrapped, func(line int, c []string) error {
		year, num, err := ints(line, c[0], c[3])
		if err != nil {
			return err
		}
		a, err := anomaly(line, c[2])
		if err != nil {
			return err
		}
		current, err := strconv.ParseBool(c[4])
		if err != nil {
			return fmt.Errorf("%w: %s line %d: is_current_year %q", domain.ErrParse, SheetWrapped, line, c[4])
		}
		tables.Wrapped = append(tables.Wrapped, domain.WrappedRow{
			Year:           year,
			Label:          domain.MonthLabel(c[1]),
			MonthlyAnomaly: a,
			MonthNumber:    num,
			IsCurrentYear:  current,
		})
		return nil
	})
	if err != nil {
		return domain.DerivedTables{}, err
	}

	err = eachRow(f, SheetFrames, func(line int, c []string) error {
		year, num, err := ints(line, c[0], c[1])
		if err != nil {
			return err
		}
		step, _, err := ints(line, c[3], "0")
		if err != nil {
			return err
		}
		a, err := anomaly(line, c[2])
		if err != nil {
			return err
		}
		tables.Frames = append(tables.Frames, domain.FrameRow{Year: year, MonthNumber: num, MonthlyAnomaly: a, Step: step})
		return nil
	})
	if err != nil {
		return domain.DerivedTables{}, err
	}

	return tables, nil
}

// eachRow calls fn for every data row of sheet, padded to the header width
// since trailing empty cells are not returned.
func eachRow(f *excelize.File, sheet string, fn func(line int, cells []string) error) error {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	width := len(headers[sheet])
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := make([]string, width)
		copy(cells, row)
		if err := fn(i+1, cells); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func ints(line int, a, b string) (int, int, error) {
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: line %d: integer %q", domain.ErrParse, line, a)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: line %d: integer %q", domain.ErrParse, line, b)
	}
	return x, y, nil
}

func anomaly(line int, s string) (domain.Anomaly, error) {
	a, ok := domain.ParseAnomaly(s)
	if !ok {
		return domain.Anomaly{}, fmt.Errorf("%w: line %d: anomaly %q", domain.ErrParse, line, s)
	}
	return a, nil
}
