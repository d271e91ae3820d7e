package clean

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"edustats/pkg/records"
)

// Dimension names arriving from the API are free-form ("TIME_PERIOD",
// "Pays déclarant", "OBS_VALUE"); they are folded to canonical snake_case
// keys before any cleaning step looks at them.

var (
	nonWordRe    = regexp.MustCompile(`[^\w]`)
	underscoreRe = regexp.MustCompile(`_+`)

	// NFD + strip combining marks + NFC: folds "é" to "e" and similar.
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// columnSynonyms maps normalized upstream column names onto the canonical
// names the cleaning steps use.
var columnSynonyms = map[string]string{
	"time_period": "year",
	"ref_area":    "country",
	"obs_value":   "value",
	"location":    "country_code",
}

// NormalizeColumn folds one column name to its canonical form: diacritics
// removed, lower-cased, trimmed, non-word runs replaced by single
// underscores, then mapped through the synonym table.
func NormalizeColumn(name string) string {
	if folded, _, err := transform.String(deaccent, name); err == nil {
		name = folded
	}
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonWordRe.ReplaceAllString(name, "_")
	name = underscoreRe.ReplaceAllString(name, "_")

	if canonical, ok := columnSynonyms[name]; ok {
		return canonical
	}
	return name
}

// NormalizeRecord returns a new record whose keys have been passed through
// NormalizeColumn. Source keys are visited in sorted order so that a key
// collision after normalization resolves the same way on every run.
func NormalizeRecord(rec records.Record) records.Record {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(records.Record, len(rec))
	for _, k := range keys {
		out[NormalizeColumn(k)] = rec[k]
	}
	return out
}
