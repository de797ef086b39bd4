// Package features shapes request feature payloads into model-ready rows.
package features

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"custintel/internal/common/jsonutil"
)

var errInvalidJSON = errors.New("invalid JSON")

type shape int

const (
	shapeAbsent shape = iota
	shapeSequence
	shapeMapping
	shapeOther
)

// Payload is a feature document as the client sent it: an ordered sequence
// of values, or a keyed mapping that keeps the client's key order.
type Payload struct {
	shape  shape
	keys   []string
	values []json.RawMessage
}

// ParsePayload classifies raw JSON. Malformed JSON is an error; a well-formed
// document of the wrong shape is not, BuildRow reports that.
func ParsePayload(raw json.RawMessage) (Payload, error) {
	var p Payload
	if err := p.UnmarshalJSON(raw); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Payload) UnmarshalJSON(b []byte) error {
	t := bytes.TrimSpace(b)
	*p = Payload{}
	switch {
	case jsonutil.IsNull(t):
		return nil
	case t[0] == '[':
		var vals []json.RawMessage
		if err := json.Unmarshal(t, &vals); err != nil {
			return err
		}
		p.shape, p.values = shapeSequence, vals
	case t[0] == '{':
		var obj jsonutil.Object
		if err := json.Unmarshal(t, &obj); err != nil {
			return err
		}
		p.shape, p.keys = shapeMapping, obj.Keys()
		p.values = make([]json.RawMessage, len(p.keys))
		for i, k := range p.keys {
			p.values[i], _ = obj.Get(k)
		}
	default:
		if !json.Valid(t) {
			return errInvalidJSON
		}
		p.shape = shapeOther
	}
	return nil
}

// IsNull reports whether the payload was absent or null.
func (p Payload) IsNull() bool { return p.shape == shapeAbsent }

// IsMapping reports whether the payload is a keyed mapping.
func (p Payload) IsMapping() bool { return p.shape == shapeMapping }

// Len is the number of entries in a sequence or mapping.
func (p Payload) Len() int { return len(p.values) }

// Sequence builds a sequence payload, mostly for tests and programmatic callers.
func Sequence(vals ...float64) Payload {
	p := Payload{shape: shapeSequence, values: make([]json.RawMessage, len(vals))}
	for i, v := range vals {
		p.values[i] = json.RawMessage(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return p
}

// Mapping builds a mapping payload with keys in the given order.
func Mapping(keys []string, vals []float64) Payload {
	p := Payload{shape: shapeMapping, keys: append([]string(nil), keys...), values: make([]json.RawMessage, len(vals))}
	for i, v := range vals {
		p.values[i] = json.RawMessage(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return p
}
