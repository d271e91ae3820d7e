package country

import (
	"sort"
	"strings"
	"time"
)

// Metadata is one row of the country reference table. It is synthesized from
// the values observed across the cleaned datasets, never fetched. Population
// and GDPPerCapita have no upstream source yet and load as NULL.
type Metadata struct {
	CountryCode   string // unique key; empty for name-only entries
	CountryName   string
	Region        string
	IncomeGroup   string
	Population    *int64
	GDPPerCapita  *float64
	DataAvailable bool
	LastUpdated   time.Time
}

// Synthesize derives reference rows from the union of country codes and
// names seen across the cleaned datasets. Each tokens slice is the
// code+name values of one dataset; duplicates across datasets collapse.
//
// Codes and names share one set and are told apart only by length: an
// element of length <= 3 is treated as the code (and its own name), anything
// longer becomes a name-only entry with an empty code. This conflates two
// identity spaces and can misclassify a 3-character name as a code; the
// behavior is retained as-is for compatibility with existing stored data.
func Synthesize(r *Resolver, now time.Time, tokenSets ...[]string) []Metadata {
	seen := map[string]struct{}{}
	for _, tokens := range tokenSets {
		for _, t := range tokens {
			if strings.TrimSpace(t) == "" {
				continue
			}
			seen[t] = struct{}{}
		}
	}

	elems := make([]string, 0, len(seen))
	for t := range seen {
		elems = append(elems, t)
	}
	sort.Strings(elems)

	out := make([]Metadata, 0, len(elems))
	for _, e := range elems {
		code := ""
		if len(e) <= 3 {
			code = e
		}
		out = append(out, Metadata{
			CountryCode:   code,
			CountryName:   e,
			Region:        r.RegionOf(e),
			IncomeGroup:   r.IncomeGroupOf(e),
			DataAvailable: true,
			LastUpdated:   now,
		})
	}
	return out
}
