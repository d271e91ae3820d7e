package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"edustats/internal/clean"
)

// Artifact timestamps share one format so a run's files sort together.
const artifactStamp = "20060102_150405"

// writeArtifacts saves the cleaned datasets as timestamped CSV files plus a
// run-metadata JSON document under the configured output directory.
func (p *Pipeline) writeArtifacts(enroll []clean.Enrollment, grad []clean.Graduation, spend []clean.Spending, sum *Summary) error {
	dir := p.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	stamp := p.now().Format(artifactStamp)

	if err := writeCSV(
		filepath.Join(dir, "enrollment_"+stamp+".csv"),
		[]string{"country_code", "country_name", "year", "enrollment_rate", "data_source", "extraction_date"},
		len(enroll),
		func(i int) []string {
			r := enroll[i]
			return []string{
				r.CountryCode, r.CountryName, strconv.Itoa(r.Year),
				formatFloat(r.EnrollmentRate), r.DataSource, r.ExtractionDate.Format("2006-01-02"),
			}
		},
	); err != nil {
		return err
	}

	if err := writeCSV(
		filepath.Join(dir, "graduation_"+stamp+".csv"),
		[]string{"country_code", "country_name", "year", "graduation_rate", "completion_rate", "data_source", "extraction_date"},
		len(grad),
		func(i int) []string {
			r := grad[i]
			return []string{
				r.CountryCode, r.CountryName, strconv.Itoa(r.Year),
				formatFloat(r.GraduationRate), formatFloat(r.CompletionRate),
				r.DataSource, r.ExtractionDate.Format("2006-01-02"),
			}
		},
	); err != nil {
		return err
	}

	if err := writeCSV(
		filepath.Join(dir, "spending_"+stamp+".csv"),
		[]string{"country_code", "country_name", "year", "spending_usd", "spending_per_capita", "currency", "data_source", "extraction_date"},
		len(spend),
		func(i int) []string {
			r := spend[i]
			return []string{
				r.CountryCode, r.CountryName, strconv.Itoa(r.Year),
				formatFloat(r.SpendingUSD), formatFloat(r.SpendingPerCapita),
				r.Currency, r.DataSource, r.ExtractionDate.Format("2006-01-02"),
			}
		},
	); err != nil {
		return err
	}

	return writeRunMetadata(filepath.Join(dir, "run_"+stamp+".json"), p.cfg.Job, sum)
}

func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// runMetadata is the JSON shape of the per-run provenance document.
type runMetadata struct {
	Job       string                        `json:"job"`
	Timestamp time.Time                     `json:"timestamp"`
	Decoded   map[clean.Kind]int            `json:"decoded"`
	Cleaned   map[clean.Kind]int            `json:"cleaned"`
	Dropped   map[clean.Kind]map[string]int `json:"dropped,omitempty"`
}

func writeRunMetadata(path, job string, sum *Summary) error {
	doc := runMetadata{
		Job:       job,
		Timestamp: sum.Started,
		Decoded:   sum.Decoded,
		Cleaned:   sum.Cleaned,
		Dropped:   sum.Dropped,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
