package oecd

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"edustats/pkg/records"
)

/*
TestParsePayloadObservationOrder verifies that the sparse observation map
comes out in document order, not Go map order. The decoder's output ordering
is defined by the payload, so the order has to survive JSON decoding.
*/
func TestParsePayloadObservationOrder(t *testing.T) {
	t.Parallel()

	body := `{
		"dataSets": [{"observations": {
			"2:0": [10],
			"0:1": [20],
			"1:0": [30]
		}}],
		"structure": {"dimensions": {"observation": []}}
	}`

	p, err := ParsePayload(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}

	var keys []string
	for _, ob := range p.DataSets[0].Observations {
		keys = append(keys, ob.Key)
	}
	want := []string{"2:0", "0:1", "1:0"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("observation keys = %v, want %v", keys, want)
	}
}

/*
TestDecode exercises the index-tuple flattening: in-range indices become
dimension-named fields, the first value element becomes "value".
*/
func TestDecode(t *testing.T) {
	t.Parallel()

	p := &Payload{
		DataSets: []DataSet{{
			Observations: ObservationList{
				{Key: "0:0", Values: []any{json.Number("95.5")}},
				{Key: "1:1", Values: []any{json.Number("88.2")}},
			},
		}},
		Structure: Structure{Dimensions: DimensionSet{Observation: []Dimension{
			{Name: "LOCATION", Values: []DimensionValue{{Name: "USA"}, {Name: "DEU"}}},
			{Name: "TIME", Values: []DimensionValue{{Name: "2019"}, {Name: "2020"}}},
		}}},
	}

	got, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []records.Record{
		{"LOCATION": "USA", "TIME": "2019", "value": json.Number("95.5")},
		{"LOCATION": "DEU", "TIME": "2020", "value": json.Number("88.2")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestDecodeMalformedKey(t *testing.T) {
	t.Parallel()

	p := &Payload{
		DataSets: []DataSet{{
			Observations: ObservationList{
				{Key: "0:0", Values: []any{json.Number("1")}},
				{Key: "0:x", Values: []any{json.Number("2")}},
			},
		}},
		Structure: Structure{Dimensions: DimensionSet{Observation: []Dimension{
			{Name: "LOCATION", Values: []DimensionValue{{Name: "USA"}}},
			{Name: "TIME", Values: []DimensionValue{{Name: "2020"}}},
		}}},
	}

	got, err := Decode(p)
	if got != nil {
		t.Errorf("Decode returned %d records, want none on malformed key", len(got))
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("Decode error = %v, want *DecodeError", err)
	}
	if de.Key != "0:x" {
		t.Errorf("DecodeError.Key = %q, want %q", de.Key, "0:x")
	}
}

func TestDecodeEdgeCases(t *testing.T) {
	t.Parallel()

	dims := []Dimension{
		{Name: "LOCATION", Values: []DimensionValue{{Name: "USA"}}},
		{Name: "TIME", Values: []DimensionValue{{Name: "2020"}}},
	}

	tests := []struct {
		name string
		obs  Observation
		want records.Record
	}{
		{
			name: "out of range index skips the field",
			obs:  Observation{Key: "0:7", Values: []any{json.Number("5")}},
			want: records.Record{"LOCATION": "USA", "value": json.Number("5")},
		},
		{
			name: "negative index skips the field",
			obs:  Observation{Key: "-1:0", Values: []any{json.Number("5")}},
			want: records.Record{"TIME": "2020", "value": json.Number("5")},
		},
		{
			name: "empty value list leaves value absent",
			obs:  Observation{Key: "0:0", Values: nil},
			want: records.Record{"LOCATION": "USA", "TIME": "2020"},
		},
		{
			name: "null first element is kept as nil value",
			obs:  Observation{Key: "0:0", Values: []any{nil}},
			want: records.Record{"LOCATION": "USA", "TIME": "2020", "value": nil},
		},
		{
			name: "short key only fills leading dimensions",
			obs:  Observation{Key: "0", Values: []any{json.Number("5")}},
			want: records.Record{"LOCATION": "USA", "value": json.Number("5")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &Payload{
				DataSets:  []DataSet{{Observations: ObservationList{tt.obs}}},
				Structure: Structure{Dimensions: DimensionSet{Observation: dims}},
			}
			got, err := Decode(p)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(got) != 1 || !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("Decode = %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestDecodeUnnamedDimension(t *testing.T) {
	t.Parallel()

	p := &Payload{
		DataSets: []DataSet{{
			Observations: ObservationList{{Key: "0", Values: []any{json.Number("1")}}},
		}},
		Structure: Structure{Dimensions: DimensionSet{Observation: []Dimension{
			{Name: "", Values: []DimensionValue{{Name: "USA"}}},
		}}},
	}

	got, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0]["dim_0"] != "USA" {
		t.Errorf("unnamed dimension field = %v, want USA under dim_0", got[0])
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	t.Parallel()

	for _, p := range []*Payload{nil, {}} {
		got, err := Decode(p)
		if err != nil {
			t.Fatalf("Decode(%v): %v", p, err)
		}
		if got != nil {
			t.Errorf("Decode(%v) = %v, want nil", p, got)
		}
	}
}
