package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFeatureShape is returned for payloads that are neither a sequence nor a mapping.
	ErrInvalidFeatureShape = errors.New("features must be list or dict")
	// ErrInvalidFeatureValue is wrapped by ValueError.
	ErrInvalidFeatureValue = errors.New("could not convert feature to float")
)

// ValueError names the entry that could not be coerced to a number.
type ValueError struct {
	Key   string
	Index int
	Raw   string
}

func (e *ValueError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("could not convert feature %q to float: %s", e.Key, e.Raw)
	}
	return fmt.Sprintf("could not convert feature at index %d to float: %s", e.Index, e.Raw)
}

func (e *ValueError) Unwrap() error { return ErrInvalidFeatureValue }

// BuildRow converts a payload into a numeric row.
//
// A sequence is copied in order and columns are ignored. A mapping follows
// its own key order when columns is nil, and otherwise yields one value per
// column in column order, with 0 for columns the mapping lacks.
func BuildRow(p Payload, columns []string) ([]float64, error) {
	switch p.shape {
	case shapeSequence:
		row := make([]float64, len(p.values))
		for i, raw := range p.values {
			v, err := coerce(raw)
			if err != nil {
				return nil, &ValueError{Index: i, Raw: string(raw)}
			}
			row[i] = v
		}
		return row, nil
	case shapeMapping:
		if columns == nil {
			row := make([]float64, len(p.values))
			for i, raw := range p.values {
				v, err := coerce(raw)
				if err != nil {
					return nil, &ValueError{Key: p.keys[i], Raw: string(raw)}
				}
				row[i] = v
			}
			return row, nil
		}
		pos := make(map[string]int, len(p.keys))
		for i, k := range p.keys {
			pos[k] = i
		}
		row := make([]float64, len(columns))
		for i, col := range columns {
			j, ok := pos[col]
			if !ok {
				continue
			}
			v, err := coerce(p.values[j])
			if err != nil {
				return nil, &ValueError{Key: col, Raw: string(p.values[j])}
			}
			row[i] = v
		}
		return row, nil
	default:
		return nil, ErrInvalidFeatureShape
	}
}

// coerce accepts numbers, numeric strings and booleans. NaN and infinities
// are rejected so that every row a model sees is finite.
func coerce(raw json.RawMessage) (float64, error) {
	v, err := coerceAny(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidFeatureValue
	}
	return v, nil
}

func coerceAny(raw json.RawMessage) (float64, error) {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return 0, ErrInvalidFeatureValue
	}
	switch t[0] {
	case '"':
		var s string
		if err := json.Unmarshal(t, &s); err != nil {
			return 0, err
		}
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	case 't':
		if string(t) == "true" {
			return 1, nil
		}
	case 'f':
		if string(t) == "false" {
			return 0, nil
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := json.Unmarshal(t, &f); err != nil {
			return 0, err
		}
		return f, nil
	}
	return 0, ErrInvalidFeatureValue
}
