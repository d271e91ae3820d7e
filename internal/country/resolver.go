// Package country maps raw location tokens to canonical country descriptors
// and synthesizes the country reference table from observed values.
//
// The resolver is a static finite lookup, not a geocoding service:
// correctness is bounded by the completeness of the fixed tables. Unknown
// tokens never fail resolution; they fall back to identity naming and the
// "Other" / "Not Specified" buckets.
package country

import "strings"

// Resolution is the canonical descriptor for one raw location token.
type Resolution struct {
	Code        string // 3-letter, upper-case
	Name        string // display name; the raw token itself when unknown
	Region      string
	IncomeGroup string
}

// Fallback buckets for tokens absent from the fixed tables.
const (
	RegionOther        = "Other"
	IncomeNotSpecified = "Not Specified"
)

// countryNames maps upstream location codes to display names.
var countryNames = map[string]string{
	"USA":  "United States",
	"GBR":  "United Kingdom",
	"DEU":  "Germany",
	"FRA":  "France",
	"JPN":  "Japan",
	"CAN":  "Canada",
	"AUS":  "Australia",
	"OECD": "OECD Average",
	"EU":   "European Union",
}

// regions assigns a coarse region per code. Codes absent here fall back to
// RegionOther.
var regions = map[string]string{
	"USA": "North America",
	"CAN": "North America",
	"GBR": "Europe",
	"DEU": "Europe",
	"FRA": "Europe",
	"ITA": "Europe",
	"ESP": "Europe",
	"JPN": "Asia",
	"AUS": "Oceania",
}

// highIncome lists the codes classified as high income.
var highIncome = map[string]struct{}{
	"USA":  {},
	"GBR":  {},
	"DEU":  {},
	"FRA":  {},
	"JPN":  {},
	"CAN":  {},
	"AUS":  {},
	"OECD": {},
}

// Resolver resolves raw location tokens against the fixed tables.
//
// It is stateless; the zero value is usable. It exists as a type (rather than
// package functions) so components receive it explicitly instead of reaching
// for package state.
type Resolver struct{}

// NewResolver returns a ready Resolver.
func NewResolver() *Resolver { return &Resolver{} }

// Resolve maps one raw location token to its canonical descriptor.
//
// Code is the first 3 characters of the token, upper-cased. Name is looked up
// by the full token; unknown tokens pass through unchanged as their own name.
// Region and income group fall back to RegionOther / IncomeNotSpecified.
func (r *Resolver) Resolve(raw string) Resolution {
	return Resolution{
		Code:        CodeOf(raw),
		Name:        r.NameOf(raw),
		Region:      r.RegionOf(raw),
		IncomeGroup: r.IncomeGroupOf(raw),
	}
}

// CodeOf derives the 3-letter country code from a raw token.
func CodeOf(raw string) string {
	code := raw
	if len(code) > 3 {
		code = code[:3]
	}
	return strings.ToUpper(code)
}

// NameOf returns the display name for a token, or the token itself when it is
// not in the fixed table.
func (r *Resolver) NameOf(raw string) string {
	if name, ok := countryNames[raw]; ok {
		return name
	}
	return raw
}

// RegionOf returns the region for a token, or RegionOther.
func (r *Resolver) RegionOf(raw string) string {
	if region, ok := regions[raw]; ok {
		return region
	}
	return RegionOther
}

// IncomeGroupOf returns the income classification for a token, or
// IncomeNotSpecified.
func (r *Resolver) IncomeGroupOf(raw string) string {
	if _, ok := highIncome[raw]; ok {
		return "High Income"
	}
	return IncomeNotSpecified
}
