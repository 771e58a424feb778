package measurement

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSON has no literal for non-finite numbers. Exports can still contain
// them (a "NaN" cell, an overflowing exponent), so entries spell them as
// these strings and read them back.
const (
	jsonNaN    = "NaN"
	jsonPosInf = "Infinity"
	jsonNegInf = "-Infinity"
)

func appendNumber(dst []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		return strconv.AppendQuote(dst, jsonNaN)
	case math.IsInf(v, 1):
		return strconv.AppendQuote(dst, jsonPosInf)
	case math.IsInf(v, -1):
		return strconv.AppendQuote(dst, jsonNegInf)
	}
	return strconv.AppendFloat(dst, v, 'g', -1, 64)
}

func parseNumber(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		switch s {
		case jsonNaN:
			return math.NaN(), nil
		case jsonPosInf:
			return math.Inf(1), nil
		case jsonNegInf:
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("invalid number %q", s)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// MarshalJSON writes non-finite values as "NaN", "Infinity" or "-Infinity".
func (q Quantity) MarshalJSON() ([]byte, error) {
	buf := []byte(`{"value":`)
	buf = appendNumber(buf, q.Value)
	if q.Unit != "" {
		buf = append(buf, `,"unit":`...)
		buf = strconv.AppendQuote(buf, q.Unit)
	}
	return append(buf, '}'), nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var doc struct {
		Value json.RawMessage `json:"value"`
		Unit  string          `json:"unit"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	q.Unit = doc.Unit
	q.Value = 0
	if len(doc.Value) == 0 {
		return nil
	}
	v, err := parseNumber(doc.Value)
	if err != nil {
		return fmt.Errorf("quantity value: %w", err)
	}
	q.Value = v
	return nil
}

// Series is one spectral column. It encodes like []float64 except that
// non-finite samples use the same strings as Quantity.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+len(s)*8)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendNumber(buf, v)
	}
	return append(buf, ']'), nil
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = nil
		return nil
	}
	out := make(Series, len(raw))
	for i, item := range raw {
		v, err := parseNumber(item)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = v
	}
	*s = out
	return nil
}
