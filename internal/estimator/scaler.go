package estimator

import (
	"errors"
	"fmt"
)

// StandardScaler computes (x - mean) / scale. A missing mean or scale means
// the scaler was fit without centring or without scaling.
type StandardScaler struct {
	Mean  []float64 `json:"mean,omitempty"`
	Scale []float64 `json:"scale,omitempty"`
}

func (*StandardScaler) Kind() Kind { return KindStandardScaler }

func (s *StandardScaler) Validate() error {
	switch {
	case s.Mean == nil && s.Scale == nil:
		return errors.New("mean and scale are both missing")
	case s.Mean != nil && s.Scale != nil && len(s.Mean) != len(s.Scale):
		return fmt.Errorf("mean has %d entries, scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

func (s *StandardScaler) width() int {
	if s.Mean != nil {
		return len(s.Mean)
	}
	return len(s.Scale)
}

// Transform scales a copy of x. Zero scale entries are treated as one.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(KindStandardScaler, s.width(), x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if s.Mean != nil {
			v -= s.Mean[i]
		}
		if s.Scale != nil && s.Scale[i] != 0 {
			v /= s.Scale[i]
		}
		out[i] = v
	}
	return out, nil
}

// MinMaxScaler computes x*scale + min, the fitted form of min-max scaling.
type MinMaxScaler struct {
	Min   []float64 `json:"min"`
	Scale []float64 `json:"scale"`
}

func (*MinMaxScaler) Kind() Kind { return KindMinMaxScaler }

func (s *MinMaxScaler) Validate() error {
	if len(s.Min) == 0 {
		return errors.New("min is empty")
	}
	if len(s.Min) != len(s.Scale) {
		return fmt.Errorf("min has %d entries, scale has %d", len(s.Min), len(s.Scale))
	}
	return nil
}

func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(KindMinMaxScaler, len(s.Min), x); err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v*s.Scale[i] + s.Min[i]
	}
	return out, nil
}
