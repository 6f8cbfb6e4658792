package apitypes

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"math/big"
)

// BigIntStr carries a *big.Int through JSON and sql as a decimal string.
// Watcher responses serialize amounts either as JSON numbers or as strings
// depending on the endpoint, so unmarshalling accepts both forms.
type BigIntStr string

// NewBigIntStr creates a *BigIntStr from a *big.Int.
// If the provided bigInt is nil the returned *BigIntStr will also be nil
func NewBigIntStr(bigInt *big.Int) *BigIntStr {
	if bigInt == nil {
		return nil
	}
	bigIntStr := BigIntStr(bigInt.String())
	return &bigIntStr
}

// ToBigInt returns the *big.Int the string represents.
func (b BigIntStr) ToBigInt() (*big.Int, error) {
	bigInt, ok := new(big.Int).SetString(string(b), 10)
	if !ok {
		return nil, fmt.Errorf("invalid representation of a *big.Int: %q", string(b))
	}
	return bigInt, nil
}

// UnmarshalJSON implements json.Unmarshaler accepting both a JSON number
// and a quoted decimal string.
func (b *BigIntStr) UnmarshalJSON(text []byte) error {
	text = bytes.Trim(text, `"`)
	bigInt, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return fmt.Errorf("invalid representation of a *big.Int: %q", string(text))
	}
	*b = BigIntStr(bigInt.String())
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting a quoted decimal
// string so values beyond the float64 safe range survive the round trip.
func (b BigIntStr) MarshalJSON() ([]byte, error) {
	if _, err := b.ToBigInt(); err != nil {
		return nil, err
	}
	return []byte(`"` + string(b) + `"`), nil
}

// Scan implements Scanner for database/sql
func (b *BigIntStr) Scan(src interface{}) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("can't scan %T into apitypes.BigIntStr", src)
	}
	bigInt, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return fmt.Errorf("invalid representation of a *big.Int: %q", str)
	}
	*b = BigIntStr(bigInt.String())
	return nil
}

// Value implements valuer for database/sql
func (b BigIntStr) Value() (driver.Value, error) {
	bigInt, ok := new(big.Int).SetString(string(b), 10)
	if !ok || bigInt == nil {
		return nil, errors.New("invalid representation of a *big.Int")
	}
	return bigInt.String(), nil
}
