package country

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	r := NewResolver()

	tests := []struct {
		raw  string
		want Resolution
	}{
		{"USA", Resolution{Code: "USA", Name: "United States", Region: "North America", IncomeGroup: "High Income"}},
		{"JPN", Resolution{Code: "JPN", Name: "Japan", Region: "Asia", IncomeGroup: "High Income"}},
		{"OECD", Resolution{Code: "OEC", Name: "OECD Average", Region: RegionOther, IncomeGroup: "High Income"}},
		{"ZZZ", Resolution{Code: "ZZZ", Name: "ZZZ", Region: RegionOther, IncomeGroup: IncomeNotSpecified}},
		{"Portugal", Resolution{Code: "POR", Name: "Portugal", Region: RegionOther, IncomeGroup: IncomeNotSpecified}},
		{"fr", Resolution{Code: "FR", Name: "fr", Region: RegionOther, IncomeGroup: IncomeNotSpecified}},
	}

	for _, tt := range tests {
		if got := r.Resolve(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Resolve(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"usa", "USA"},
		{"Germany", "GER"},
		{"DE", "DE"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CodeOf(tt.in); got != tt.want {
			t.Errorf("CodeOf(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
