package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FlexValue guarda un campo que los clientes mandan como número o como string (price, age).
// Se re-serializa en el mismo tipo JSON en que llegó.
type FlexValue struct {
	text    string
	numeric bool
	set     bool
}

func Number(f float64) FlexValue {
	return FlexValue{text: strconv.FormatFloat(f, 'f', -1, 64), numeric: true, set: true}
}

func Text(s string) FlexValue {
	return FlexValue{text: s, set: true}
}

func (v FlexValue) IsZero() bool    { return !v.set }
func (v FlexValue) IsNumeric() bool { return v.numeric }
func (v FlexValue) String() string  { return v.text }

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// Float64 interpreta el valor de forma permisiva: toma el número inicial ("1500 ZAR" => 1500).
// Vacío, no numérico o no finito => 0.
func (v FlexValue) Float64() float64 {
	s := strings.TrimSpace(v.text)
	if s == "" {
		return 0
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	if v.numeric {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

var errFlexValue = errors.New("must be a number or a string")

func (v *FlexValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*v = FlexValue{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return errFlexValue
		}
		*v = FlexValue{text: n.String(), numeric: true, set: true}
		return nil
	}
}
