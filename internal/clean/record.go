// Package clean converts decoded flat records into typed, validated,
// per-dataset clean records. The open map shape produced by the decoder does
// not escape this package: every survivor comes out as a typed record with
// explicit fields, and every rejection is a silent row-level drop.
package clean

import "time"

// Kind identifies a dataset kind.
type Kind string

const (
	KindEnrollment Kind = "enrollment"
	KindGraduation Kind = "graduation"
	KindSpending   Kind = "spending"
)

// Marker returns the indicator substring that selects rows of this kind when
// the decoded records carry an indicator dimension.
func (k Kind) Marker() string {
	switch k {
	case KindEnrollment:
		return "ENRL"
	case KindGraduation:
		return "GRAD"
	case KindSpending:
		return "FIN"
	}
	return ""
}

// DataSource is the provenance tag attached to every clean record.
const DataSource = "OECD"

// Enrollment is one cleaned enrollment-rate observation.
// EnrollmentRate is guaranteed in [0, 200].
type Enrollment struct {
	CountryCode    string
	CountryName    string
	Year           int
	EnrollmentRate float64
	DataSource     string
	ExtractionDate time.Time
}

// Country returns the code and name tokens of the record.
func (r Enrollment) Country() (code, name string) { return r.CountryCode, r.CountryName }

// Graduation is one cleaned graduation-rate observation.
// GraduationRate is guaranteed in [0, 120]; CompletionRate is always
// GraduationRate / 100.
type Graduation struct {
	CountryCode    string
	CountryName    string
	Year           int
	GraduationRate float64
	CompletionRate float64
	DataSource     string
	ExtractionDate time.Time
}

// Country returns the code and name tokens of the record.
func (r Graduation) Country() (code, name string) { return r.CountryCode, r.CountryName }

// Spending is one cleaned education-spending observation. SpendingUSD is
// guaranteed inside the batch's empirical [p1, p99] band.
//
// SpendingPerCapita currently equals SpendingUSD: real per-capita
// normalization needs a population source that is not ingested yet.
// SpendingPercentGDP likewise has no source and stays nil.
type Spending struct {
	CountryCode        string
	CountryName        string
	Year               int
	SpendingUSD        float64
	SpendingPerCapita  float64
	SpendingPercentGDP *float64
	Currency           string
	DataSource         string
	ExtractionDate     time.Time
}

// Country returns the code and name tokens of the record.
func (r Spending) Country() (code, name string) { return r.CountryCode, r.CountryName }

// CountryCarrier is any cleaned record exposing its country tokens.
type CountryCarrier interface {
	Country() (code, name string)
}

// Countries collects the code and name values of one cleaned dataset, in
// record order. The result feeds metadata synthesis.
func Countries[T CountryCarrier](recs []T) []string {
	out := make([]string, 0, 2*len(recs))
	for _, r := range recs {
		code, name := r.Country()
		out = append(out, code, name)
	}
	return out
}
