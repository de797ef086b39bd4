package estimator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Label is a class label exactly as the artifact recorded it: a JSON number
// or a JSON string.
type Label struct {
	num    json.Number
	text   string
	isText bool
}

// IntLabel returns an integer-like label.
func IntLabel(n int64) Label { return Label{num: json.Number(strconv.FormatInt(n, 10))} }

// FloatLabel returns a label that is never integer-like.
func FloatLabel(f float64) Label {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return Label{num: json.Number(s)}
}

// TextLabel returns a string label.
func TextLabel(s string) Label { return Label{text: s, isText: true} }

// UnmarshalJSON accepts a JSON number or string.
func (l *Label) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = TextLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("class label must be a number or string: %w", err)
	}
	*l = Label{num: n}
	return nil
}

// MarshalJSON writes the label back in its original form.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.isText {
		return json.Marshal(l.text)
	}
	if l.num == "" {
		return []byte("null"), nil
	}
	return []byte(l.num), nil
}

// IsText reports whether the label is a string.
func (l Label) IsText() bool { return l.isText }

// IsInteger reports whether the label is a number written without fraction or exponent.
func (l Label) IsInteger() bool {
	if l.isText || l.num == "" {
		return false
	}
	if strings.ContainsAny(string(l.num), ".eE") {
		return false
	}
	_, err := l.num.Int64()
	return err == nil
}

// Int returns the label as an integer when it is integer-like.
func (l Label) Int() (int64, bool) {
	if !l.IsInteger() {
		return 0, false
	}
	n, _ := l.num.Int64()
	return n, true
}

// Float returns the label as a float. String labels are parsed.
func (l Label) Float() (float64, error) {
	if l.isText {
		f, err := strconv.ParseFloat(strings.TrimSpace(l.text), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert label %q to float", l.text)
		}
		return f, nil
	}
	return l.num.Float64()
}

// String returns the label's text form.
func (l Label) String() string {
	if l.isText {
		return l.text
	}
	return string(l.num)
}

// Equal reports whether two labels have the same form and text.
func (l Label) Equal(o Label) bool {
	return l.isText == o.isText && l.String() == o.String()
}
