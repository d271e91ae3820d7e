package oecd

import (
	"fmt"
	"strconv"
	"strings"

	"edustats/pkg/records"
)

// DecodeError reports a malformed observation key (a non-integer index
// token). It fails the whole dataset decode: a payload with corrupt keys is
// not trusted to produce partial output.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("oecd: decode observation key %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode flattens the payload's sparse observation map into records.
//
// For each observation, the colon-joined key is split into integer indices
// aligned positionally with the dimension list; in-range indices contribute
// record[dimension.Name] = dimension.Values[index].Name. Indices out of range
// for their dimension are skipped for that field, leaving the key absent (the
// cleaner treats it as a missing required dimension). The first element of the
// observation's value list, when present, becomes record["value"].
//
// Output order follows the payload's own observation order and is
// deterministic for a given payload.
func Decode(p *Payload) ([]records.Record, error) {
	if p == nil || len(p.DataSets) == 0 {
		return nil, nil
	}
	dims := p.Structure.Dimensions.Observation
	obs := p.DataSets[0].Observations

	out := make([]records.Record, 0, len(obs))
	for _, ob := range obs {
		indices, err := splitIndices(ob.Key)
		if err != nil {
			return nil, &DecodeError{Key: ob.Key, Err: err}
		}

		rec := records.Record{}
		for i, dim := range dims {
			if i >= len(indices) {
				break
			}
			idx := indices[i]
			if idx < 0 || idx >= len(dim.Values) {
				continue
			}
			name := dim.Name
			if name == "" {
				name = fmt.Sprintf("dim_%d", i)
			}
			rec[name] = dim.Values[idx].Name
		}

		if len(ob.Values) > 0 {
			rec["value"] = ob.Values[0]
		}

		out = append(out, rec)
	}
	return out, nil
}

// splitIndices parses a colon-joined index key like "0:3:12" into ints.
func splitIndices(key string) ([]int, error) {
	parts := strings.Split(key, ":")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("index token %q: %w", p, err)
		}
		out[i] = n
	}
	return out, nil
}
