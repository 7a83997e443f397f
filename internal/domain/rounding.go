package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how half-way values are resolved.
type RoundingMode string

const (
	RoundHalfUp   RoundingMode = "half_up"
	RoundHalfEven RoundingMode = "half_even"
)

// ParseRoundingMode maps a configuration value to a mode. Empty means half_up.
func ParseRoundingMode(value string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", RoundHalfUp:
		return RoundHalfUp, nil
	case RoundHalfEven:
		return RoundHalfEven, nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q", value)
	}
}

//nolint:gochecknoglobals // ISO 4217 minor units that differ from the default of 2
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

const defaultCurrencyExponent int32 = 2

// CurrencyExponent returns the number of minor-unit digits of currency.
func CurrencyExponent(currency string) int32 {
	if exp, ok := currencyExponents[strings.ToUpper(currency)]; ok {
		return exp
	}
	return defaultCurrencyExponent
}

// RoundingPolicy converts major-unit amounts into integer minor units.
type RoundingPolicy struct {
	Mode RoundingMode
}

// NewRoundingPolicy creates a policy; an empty mode means half_up.
func NewRoundingPolicy(mode RoundingMode) RoundingPolicy {
	if mode == "" {
		mode = RoundHalfUp
	}
	return RoundingPolicy{Mode: mode}
}

// ToMinorUnits rounds amount once into the smallest unit of currency.
func (p RoundingPolicy) ToMinorUnits(amount float64, currency string) Result[int64] {
	failure := &ValidationFailure{}
	if currency == "" {
		failure.Add("currency", ReasonMandatory)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		failure.Add("amount", ReasonOutOfRange)
	}
	if !failure.Empty() {
		return Fail[int64](failure)
	}

	exp := CurrencyExponent(currency)
	scaled := decimal.NewFromFloat(amount).Shift(exp)

	var rounded decimal.Decimal
	switch p.Mode {
	case RoundHalfEven:
		rounded = scaled.RoundBank(0)
	default:
		rounded = scaled.Round(0)
	}

	return Success(rounded.IntPart())
}

// FromMinorUnits converts integer minor units back into a major-unit amount.
func FromMinorUnits(cents int64, currency string) float64 {
	return decimal.New(cents, -CurrencyExponent(currency)).InexactFloat64()
}
