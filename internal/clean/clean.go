package clean

import (
	"math"
	"strconv"
	"strings"
	"time"

	"edustats/internal/country"
	"edustats/pkg/records"
)

// YearWindow is the inclusive valid reporting window for the year field.
type YearWindow struct {
	Min int
	Max int
}

// Drop describes one rejected row. Drops are row-level and silent: they are
// reported to the optional Reject sink for counting but never abort a batch.
type Drop struct {
	Kind   Kind
	Reason string
}

// Drop reasons reported to the Reject sink.
const (
	DropIndicatorMismatch = "indicator_mismatch"
	DropMissingLocation   = "missing_location"
	DropBadYear           = "bad_year"
	DropYearOutOfWindow   = "year_out_of_window"
	DropBadValue          = "bad_value"
	DropOutOfRange        = "out_of_range"
)

// Cleaner converts decoded flat records into typed clean records, one method
// per dataset kind. All methods are total over their input: invalid rows are
// excluded from the output, never mutated in place or raised as errors, and
// the relative order of survivors is preserved.
type Cleaner struct {
	Years    YearWindow
	Resolver *country.Resolver

	// Now supplies the extraction timestamp; defaults to time.Now. It is
	// evaluated once per Clean* call so a whole batch shares one provenance
	// timestamp.
	Now func() time.Time

	// Reject, when set, receives one Drop per rejected row.
	Reject func(Drop)
}

// NewCleaner returns a Cleaner over the given window and resolver.
func NewCleaner(years YearWindow, r *country.Resolver) *Cleaner {
	return &Cleaner{Years: years, Resolver: r}
}

func (c *Cleaner) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Cleaner) drop(kind Kind, reason string) {
	if c.Reject != nil {
		c.Reject(Drop{Kind: kind, Reason: reason})
	}
}

// core holds the fields shared by every dataset kind after the common
// cleaning steps (normalization, kind filter, country resolution, year and
// value coercion) have passed.
type core struct {
	code  string
	name  string
	year  int
	value float64
}

// coreFields runs the kind-independent steps over one record. It returns
// ok=false after reporting the drop when any step rejects the row.
func (c *Cleaner) coreFields(kind Kind, rec records.Record) (core, bool) {
	nrec := NormalizeRecord(rec)

	// Kind filter: only applied when the indicator dimension is present.
	if nrec.Has("indicator") {
		if !strings.Contains(nrec.String("indicator"), kind.Marker()) {
			c.drop(kind, DropIndicatorMismatch)
			return core{}, false
		}
	}

	raw := firstNonEmpty(
		nrec.String("country_code"),
		nrec.String("country"),
		nrec.String("location"),
	)
	if raw == "" {
		c.drop(kind, DropMissingLocation)
		return core{}, false
	}
	res := c.Resolver.Resolve(raw)

	year, ok := parseYear(firstNonEmpty(nrec.String("year"), nrec.String("time")))
	if !ok {
		c.drop(kind, DropBadYear)
		return core{}, false
	}
	if year < c.Years.Min || year > c.Years.Max {
		c.drop(kind, DropYearOutOfWindow)
		return core{}, false
	}

	value, ok := nrec.Float("value")
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		c.drop(kind, DropBadValue)
		return core{}, false
	}

	return core{code: res.Code, name: res.Name, year: year, value: value}, true
}

// CleanEnrollment cleans one decoded enrollment batch. Survivors carry an
// enrollment rate in [0, 200].
func (c *Cleaner) CleanEnrollment(raw []records.Record) []Enrollment {
	now := c.now()
	out := make([]Enrollment, 0, len(raw))
	for _, rec := range raw {
		f, ok := c.coreFields(KindEnrollment, rec)
		if !ok {
			continue
		}
		if f.value < 0 || f.value > 200 {
			c.drop(KindEnrollment, DropOutOfRange)
			continue
		}
		out = append(out, Enrollment{
			CountryCode:    f.code,
			CountryName:    f.name,
			Year:           f.year,
			EnrollmentRate: f.value,
			DataSource:     DataSource,
			ExtractionDate: now,
		})
	}
	return out
}

// CleanGraduation cleans one decoded graduation batch. Survivors carry a
// graduation rate in [0, 120] and a derived completion rate of exactly
// graduation rate / 100.
func (c *Cleaner) CleanGraduation(raw []records.Record) []Graduation {
	now := c.now()
	out := make([]Graduation, 0, len(raw))
	for _, rec := range raw {
		f, ok := c.coreFields(KindGraduation, rec)
		if !ok {
			continue
		}
		if f.value < 0 || f.value > 120 {
			c.drop(KindGraduation, DropOutOfRange)
			continue
		}
		out = append(out, Graduation{
			CountryCode:    f.code,
			CountryName:    f.name,
			Year:           f.year,
			GraduationRate: f.value,
			CompletionRate: f.value / 100,
			DataSource:     DataSource,
			ExtractionDate: now,
		})
	}
	return out
}

// CleanSpending cleans one decoded spending batch. The value bound is
// data-dependent: rows outside the batch's empirical [p1, p99] band are
// dropped, which makes outlier rejection sensitive to batch composition.
func (c *Cleaner) CleanSpending(raw []records.Record) []Spending {
	now := c.now()

	// First pass: common steps only; range filtering needs the whole batch.
	cands := make([]core, 0, len(raw))
	for _, rec := range raw {
		f, ok := c.coreFields(KindSpending, rec)
		if !ok {
			continue
		}
		cands = append(cands, f)
	}
	if len(cands) == 0 {
		return nil
	}

	values := make([]float64, len(cands))
	for i, f := range cands {
		values[i] = f.value
	}
	lo := Percentile(values, 0.01)
	hi := Percentile(values, 0.99)

	out := make([]Spending, 0, len(cands))
	for _, f := range cands {
		if f.value < lo || f.value > hi {
			c.drop(KindSpending, DropOutOfRange)
			continue
		}
		out = append(out, Spending{
			CountryCode:       f.code,
			CountryName:       f.name,
			Year:              f.year,
			SpendingUSD:       f.value,
			SpendingPerCapita: f.value, // placeholder until population data is ingested
			Currency:          "USD",
			DataSource:        DataSource,
			ExtractionDate:    now,
		})
	}
	return out
}

// parseYear coerces a year token to an integer. Fractional values are
// rejected rather than truncated.
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
