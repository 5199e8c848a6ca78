package market

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// weiDecimals is the shift between the human decimal unit and wei.
const weiDecimals = 18

// ParsePriceWei converts a human decimal price ("1.5") to wei. The integer
// form is the only representation stored internally; the decimal form exists
// solely at the orchestration boundary.
func ParsePriceWei(price string) (*big.Int, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", price, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("invalid price %q: must not be negative", price)
	}

	wei := d.Shift(weiDecimals)
	if !wei.IsInteger() {
		return nil, fmt.Errorf("invalid price %q: more than %d decimal places", price, weiDecimals)
	}
	return wei.BigInt(), nil
}

// FormatPriceWei converts wei back to the human decimal unit for display.
// Round-trips with ParsePriceWei for any valid input.
func FormatPriceWei(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -weiDecimals).String()
}
