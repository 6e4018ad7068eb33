// Package frame loads delimited anomaly files into gota data frames and
// projects them onto domain observations.
package frame

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

// Table is a loaded input file with its original headers.
type Table struct {
	path string
	df   dataframe.DataFrame
}

// Load reads the whole file at path. Every column is kept as text so that
// number parsing and missing-value rules stay in the domain package.
func Load(path string, delimiter rune) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.WithDelimiter(delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// gota rejects a header without rows; that is a valid, empty table.
		header, ok := headerOnly(data, delimiter)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrParse, path, df.Err)
		}
		df = emptyFrame(header)
	}
	return &Table{path: path, df: df}, nil
}

// headerOnly reports whether data holds exactly one delimited record.
func headerOnly(data []byte, delimiter rune) ([]string, bool) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	records, err := r.ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

// Rows returns the number of data rows.
func (t *Table) Rows() int { return t.df.Nrow() }

// Columns returns the headers as they appear in the file.
func (t *Table) Columns() []string { return t.df.Names() }

// Normalize returns a copy of the table with every header passed through
// domain.NormalizeColumnName.
func (t *Table) Normalize() (*Table, error) {
	df := t.df
	seen := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		norm := domain.NormalizeColumnName(name)
		if prev, dup := seen[norm]; dup {
			return nil, fmt.Errorf("%w: %s: columns %q and %q both normalize to %q", domain.ErrParse, t.path, prev, name, norm)
		}
		seen[norm] = name
		if norm != name {
			df = df.Rename(norm, name)
		}
	}
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: rename columns: %v", domain.ErrParse, t.path, df.Err)
	}
	return &Table{path: t.path, df: df}, nil
}

// Project keeps only the named columns, in order.
func (t *Table) Project(columns []string) (*Table, error) {
	present := make(map[string]bool, t.df.Ncol())
	for _, name := range t.df.Names() {
		present[name] = true
	}
	for _, c := range columns {
		if !present[c] {
			return nil, fmt.Errorf("%w: %q in %s", domain.ErrMissingColumn, c, t.path)
		}
	}
	df := t.df.Select(columns)
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %s: select: %v", domain.ErrParse, t.path, df.Err)
	}
	return &Table{path: t.path, df: df}, nil
}

// Observations normalizes headers, projects the required columns, and
// parses every row. Parse errors report the file line (header is line 1).
func (t *Table) Observations() ([]domain.Observation, error) {
	norm, err := t.Normalize()
	if err != nil {
		return nil, err
	}
	proj, err := norm.Project(domain.RequiredColumns)
	if err != nil {
		return nil, err
	}

	years := proj.df.Col(domain.ColYear).Records()
	months := proj.df.Col(domain.ColMonth).Records()
	monthly := proj.df.Col(domain.ColMonthlyAnomaly).Records()
	annual := proj.df.Col(domain.ColAnnualAnomaly).Records()

	out := make([]domain.Observation, 0, len(years))
	for i := range years {
		obs, err := domain.ParseObservation(i+2, years[i], months[i], monthly[i], annual[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.path, err)
		}
		out = append(out, obs)
	}
	return out, nil
}

// Extractor loads observations from a file. It implements
// pipeline.Extractor.
type Extractor struct {
	path      string
	delimiter rune
	logger    *slog.Logger
}

// NewExtractor creates an Extractor for the file at path.
func NewExtractor(path string, delimiter rune, logger *slog.Logger) *Extractor {
	return &Extractor{path: path, delimiter: delimiter, logger: logger}
}

// Path returns the input file path.
func (e *Extractor) Path() string { return e.path }

// Extract loads and parses the input file.
func (e *Extractor) Extract(ctx context.Context) ([]domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tbl, err := Load(e.path, e.delimiter)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("input loaded", "path", e.path, "rows", tbl.Rows(), "columns", tbl.Columns())

	obs, err := tbl.Observations()
	if err != nil {
		return nil, err
	}
	return obs, nil
}
