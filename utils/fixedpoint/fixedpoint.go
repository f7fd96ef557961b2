// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

// Package fixedpoint holds the integer arithmetic used by the simulation:
// basis-point multiplication, decimal rescaling and unit formatting.
// No value ever passes through a float.
package fixedpoint

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// BasisPoints is a fraction expressed in units of 1/10000.
type BasisPoints uint64

// PercentageFactor is 100% in basis points.
const PercentageFactor BasisPoints = 10000

// WadDecimals is the scale of quote-currency values and ratios.
const WadDecimals = 18

// 10^77 is the largest power of ten below 2^256.
const maxPow10 = 77

var ErrOverflow = errors.New("fixed-point overflow")

var (
	// MaxUint256 is the unlimited allowance and the health factor of a debt-free account.
	MaxUint256 = new(uint256.Int).SetAllOne()

	maxUint256Big = MaxUint256.ToBig()
	percentage    = uint256.NewInt(uint64(PercentageFactor))
)

// PercentMul returns floor(value * bps / 10000).
func PercentMul(value *uint256.Int, bps BasisPoints) (*uint256.Int, error) {
	result, overflow := new(uint256.Int).MulDivOverflow(value, uint256.NewInt(uint64(bps)), percentage)
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%v * %v bps", value, uint64(bps))
	}
	return result, nil
}

// Pow10 returns 10^decimals.
func Pow10(decimals uint8) (*uint256.Int, error) {
	if decimals > maxPow10 {
		return nil, errors.Wrapf(ErrOverflow, "10^%d", decimals)
	}
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals))), nil
}

// ParseUnits rescales a whole-unit amount into the native precision of a token
// with the given decimals.
func ParseUnits(units *uint256.Int, decimals uint8) (*uint256.Int, error) {
	scale, err := Pow10(decimals)
	if err != nil {
		return nil, err
	}
	result, overflow := new(uint256.Int).MulOverflow(units, scale)
	if overflow {
		return nil, errors.Wrapf(ErrOverflow, "%v units with %d decimals", units, decimals)
	}
	return result, nil
}

// FormatUnits renders value / 10^decimals as a decimal string. The fractional
// part is trimmed of trailing zeros but always keeps one digit, so whole values
// print as "2.0".
func FormatUnits(value *big.Int, decimals uint8) string {
	negative := value.Sign() < 0
	digits := new(big.Int).Abs(value).String()

	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}
	whole := digits[:len(digits)-d]
	fraction := strings.TrimRight(digits[len(digits)-d:], "0")
	if fraction == "" {
		fraction = "0"
	}

	if negative {
		whole = "-" + whole
	}
	return whole + "." + fraction
}

// IsMaxUint256 reports whether value is exactly 2^256-1.
func IsMaxUint256(value *big.Int) bool {
	return value.Cmp(maxUint256Big) == 0
}

// CompareMaxUint256 compares value against 2^256-1.
func CompareMaxUint256(value *big.Int) int {
	return value.Cmp(maxUint256Big)
}
