// Package oecd implements the upstream statistical API client and the
// dimension decoder that turns sparse, dimension-indexed observations into
// flat records.
//
// The upstream payload is SDMX-JSON shaped:
//
//	{
//	  "dataSets": [ { "observations": { "0:0:1": [95.5, ...], ... } } ],
//	  "structure": { "dimensions": { "observation": [
//	    { "name": "LOCATION", "values": [ {"name": "USA"}, ... ] },
//	    ...
//	  ] } }
//	}
//
// Each observation key is a colon-joined tuple of integer indices aligned
// positionally with the dimension list.
package oecd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Payload is the decoded upstream response body.
type Payload struct {
	DataSets  []DataSet `json:"dataSets"`
	Structure Structure `json:"structure"`
}

// DataSet carries the sparse observation map of one dataset.
type DataSet struct {
	Observations ObservationList `json:"observations"`
}

// Structure describes the dimensions of the observations.
type Structure struct {
	Dimensions DimensionSet `json:"dimensions"`
}

// DimensionSet holds the per-observation dimension list.
type DimensionSet struct {
	Observation []Dimension `json:"observation"`
}

// Dimension is one named axis with its ordered value list.
type Dimension struct {
	Name   string           `json:"name"`
	Values []DimensionValue `json:"values"`
}

// DimensionValue is a single possible value of a dimension.
type DimensionValue struct {
	Name string `json:"name"`
}

// Observation is one entry of the sparse observation map: the colon-joined
// index key plus the associated value list (first element is the measure).
type Observation struct {
	Key    string
	Values []any
}

// ObservationList decodes a JSON object while preserving the document order
// of its keys. encoding/json decodes objects into unordered maps, which would
// make decode output order vary run to run; downstream output ordering is
// defined as the payload's own ordering, so the order has to survive decoding.
type ObservationList []Observation

// UnmarshalJSON implements json.Unmarshaler using a token stream so the key
// order of the source object is retained. Numbers inside value arrays are
// decoded as json.Number.
func (l *ObservationList) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("observations: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("observations: expected object, got %v", tok)
	}

	var out ObservationList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("observations: key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("observations: non-string key %v", keyTok)
		}

		var vals []any
		if err := dec.Decode(&vals); err != nil {
			return fmt.Errorf("observations: values for %q: %w", key, err)
		}
		out = append(out, Observation{Key: key, Values: vals})
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return fmt.Errorf("observations: close: %w", err)
	}

	*l = out
	return nil
}

// ParsePayload decodes an upstream response body into a Payload.
func ParsePayload(r io.Reader) (*Payload, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("oecd: parse payload: %w", err)
	}
	return &p, nil
}
