// Command genmock writes a deterministic synthetic monthly anomaly dataset in
// the Berkeley Earth layout, for demos and test fixtures. The annual column
// is the centred 12-month moving average of the monthly series and is NaN
// where the window runs off either end or covers a missing month.
//
// Usage:
//
//	go run ./cmd/genmock -out data/global_temperature_anomaly.csv -from 1850 -to 2023
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var header = []string{"Year", "Month", "Monthly Anomaly", "Monthly Unc.", "Annual Anomaly", "Annual Unc."}

// Every gapEvery-th month is written without a monthly reading.
const gapEvery = 97

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/global_temperature_anomaly.csv", "output CSV path")
	from := flag.Int("from", 1850, "first year")
	to := flag.Int("to", 2023, "last year")
	seed := flag.Uint64("seed", 1850, "noise seed")
	flag.Parse()

	if *to < *from {
		flag.Usage()
		return fmt.Errorf("-to %d is before -from %d", *to, *from)
	}

	records := synthesize(*from, *to, *seed)
	if err := writeCSV(*out, records); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d rows (%d-%d) to %s", len(records)-1, *from, *to, *out)
	return nil
}

// synthesize returns the header and one record per month between from and
// to inclusive.
func synthesize(from, to int, seed uint64) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n := (to - from + 1) * 12

	monthly := make([]float64, n)
	for i := range monthly {
		if i%gapEvery == gapEvery-1 {
			monthly[i] = math.NaN()
			continue
		}
		years := float64(i) / 12
		warming := 1.3 * math.Pow(years/float64(to-from+1), 3)
		season := 0.08 * math.Cos(2*math.Pi*float64(i%12)/12)
		monthly[i] = -0.35 + warming + season + rng.NormFloat64()*0.12
	}
	annual := movingAverage(monthly, 12)

	records := make([][]string, 0, n+1)
	records = append(records, header)
	for i := range monthly {
		unc := 0.4 * math.Exp(-float64(i)/float64(n)*3)
		records = append(records, []string{
			strconv.Itoa(from + i/12),
			strconv.Itoa(i%12 + 1),
			format(monthly[i]),
			format(unc + 0.03),
			format(annual[i]),
			format(unc/3 + 0.01),
		})
	}
	return records
}

// movingAverage returns the centred window mean for every index, averaging
// positions i-window/2+1 .. i+window/2. Windows that leave the series or
// contain NaN yield NaN.
func movingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		lo, hi := i-window/2+1, i+window/2
		if lo < 0 || hi >= len(values) {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for _, v := range values[lo : hi+1] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}

func format(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func writeCSV(path string, records [][]string) error {
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return df.Err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
