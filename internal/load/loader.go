// Package load writes cleaned records and country metadata into the
// destination tables. Fact tables are append-only; the country reference
// table is upserted keyed by country_code so reruns refresh rather than
// duplicate.
package load

import (
	"context"
	"time"

	"edustats/internal/clean"
	"edustats/internal/country"
	"edustats/internal/schema"
	"edustats/internal/storage"
)

// dateLayout is the wire format for date columns; every backend accepts it.
const dateLayout = "2006-01-02"

// Demographic defaults for columns the upstream datasets do not break out.
const (
	defaultEducationLevel = "Not Specified"
	defaultGender         = "Total"
	graduationLevel       = "All Levels"
)

// Loader writes batches into one configured repository.
type Loader struct {
	repo   storage.Repository
	tables schema.Tables

	// Now supplies the created_at timestamp; defaults to time.Now.
	Now func() time.Time
}

// NewLoader returns a Loader writing to the given tables.
func NewLoader(repo storage.Repository, tables schema.Tables) *Loader {
	return &Loader{repo: repo, tables: tables}
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// AppendEnrollment appends cleaned enrollment records. Rows already written
// stay written when a later row fails.
func (l *Loader) AppendEnrollment(ctx context.Context, recs []clean.Enrollment) (int64, error) {
	columns := []string{
		"country_code", "country_name", "year", "enrollment_rate",
		"education_level", "gender", "data_source", "extraction_date", "created_at",
	}
	created := l.now().Format(dateLayout)
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{
			r.CountryCode, r.CountryName, r.Year, r.EnrollmentRate,
			defaultEducationLevel, defaultGender, r.DataSource,
			r.ExtractionDate.Format(dateLayout), created,
		}
	}
	return l.repo.Insert(ctx, l.tables.Enrollment, columns, rows)
}

// AppendGraduation appends cleaned graduation records.
func (l *Loader) AppendGraduation(ctx context.Context, recs []clean.Graduation) (int64, error) {
	columns := []string{
		"country_code", "country_name", "year", "graduation_rate", "completion_rate",
		"education_level", "data_source", "extraction_date", "created_at",
	}
	created := l.now().Format(dateLayout)
	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = []any{
			r.CountryCode, r.CountryName, r.Year, r.GraduationRate, r.CompletionRate,
			graduationLevel, r.DataSource,
			r.ExtractionDate.Format(dateLayout), created,
		}
	}
	return l.repo.Insert(ctx, l.tables.Graduation, columns, rows)
}

// AppendSpending appends cleaned spending records. spending_percent_gdp is
// NULL until a GDP source is ingested.
func (l *Loader) AppendSpending(ctx context.Context, recs []clean.Spending) (int64, error) {
	columns := []string{
		"country_code", "country_name", "year", "spending_usd", "spending_per_capita",
		"spending_percent_gdp", "currency", "data_source", "extraction_date", "created_at",
	}
	created := l.now().Format(dateLayout)
	rows := make([][]any, len(recs))
	for i, r := range recs {
		var pctGDP any
		if r.SpendingPercentGDP != nil {
			pctGDP = *r.SpendingPercentGDP
		}
		rows[i] = []any{
			r.CountryCode, r.CountryName, r.Year, r.SpendingUSD, r.SpendingPerCapita,
			pctGDP, r.Currency, r.DataSource,
			r.ExtractionDate.Format(dateLayout), created,
		}
	}
	return l.repo.Insert(ctx, l.tables.Spending, columns, rows)
}

// UpsertCountries writes country metadata keyed by country_code: new codes
// insert, existing codes have their non-key columns refreshed.
func (l *Loader) UpsertCountries(ctx context.Context, metas []country.Metadata) (int64, error) {
	columns := []string{
		"country_code", "country_name", "region", "income_group",
		"population", "gdp_per_capita", "data_available", "last_updated", "created_at",
	}
	created := l.now().Format(dateLayout)
	rows := make([][]any, len(metas))
	for i, m := range metas {
		var population any
		if m.Population != nil {
			population = *m.Population
		}
		var gdp any
		if m.GDPPerCapita != nil {
			gdp = *m.GDPPerCapita
		}
		rows[i] = []any{
			m.CountryCode, m.CountryName, m.Region, m.IncomeGroup,
			population, gdp, m.DataAvailable,
			m.LastUpdated.Format(dateLayout), created,
		}
	}
	return l.repo.Upsert(ctx, l.tables.Countries, columns, []string{"country_code"}, rows)
}
