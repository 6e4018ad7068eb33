package pipeline

import (
	"fmt"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/domain"
)

// Derive cleans the observations and computes every derived table. It is a
// pure function of its input.
func Derive(obs []domain.Observation) (domain.DerivedTables, error) {
	for i, o := range obs {
		if !o.MonthlyAnomaly.Finite() || !o.AnnualAnomaly.Finite() {
			return domain.DerivedTables{}, fmt.Errorf("%w: observation %d (%d-%02d) is infinite",
				domain.ErrNonNumeric, i, o.Year, o.Month)
		}
	}

	cleaned := domain.Clean(obs)
	return domain.DerivedTables{
		Cleaned: cleaned,
		Yearly:  domain.YearlyAverages(cleaned),
		Wrapped: domain.SeasonalWrap(cleaned),
		Frames:  domain.AnimationSeries(cleaned),
	}, nil
}
