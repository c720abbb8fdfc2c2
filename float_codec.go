package classresult

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Float is a float64 whose JSON form also carries NaN and ±Inf, written as the
// strings "NaN", "+Inf" and "-Inf". Finite values are plain JSON numbers.
type Float float64

// MarshalJSON implements json.Marshaler interface
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(FormatFloat(v))
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler interface
func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseFloat(s)
		if err != nil {
			return err
		}
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return fmt.Errorf("finite value %q must be a JSON number", s)
		}
		*f = Float(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Floats is a []float64 encoded element by element as Float
type Floats []float64

// MarshalJSON implements json.Marshaler interface. A nil slice encodes as [].
func (v Floats) MarshalJSON() ([]byte, error) {
	out := make([]Float, len(v))
	for i, x := range v {
		out[i] = Float(x)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler interface
func (v *Floats) UnmarshalJSON(data []byte) error {
	var in []Float
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in == nil {
		*v = nil
		return nil
	}

	out := make(Floats, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	*v = out
	return nil
}

// FormatFloat renders v so that ParseFloat returns exactly v, NaN and ±Inf included
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseFloat is the inverse of FormatFloat
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// sameFloat reports whether a and b hold the same value, treating every NaN as equal
func sameFloat(a float64, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
