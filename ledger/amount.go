// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var maxUint64 = decimal.NewFromUint64(math.MaxUint64)

// ParseAmount converts a human readable amount, e.g. "1.5", into smallest units.
func ParseAmount(s string, scale uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrap(err, "parse amount")
	}
	if d.Sign() < 0 {
		return 0, errors.New("negative amount")
	}
	units := d.Shift(int32(scale))
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Errorf("amount %s has more than %d decimals", s, scale)
	}
	if units.GreaterThan(maxUint64) {
		return 0, errors.Errorf("amount %s out of range", s)
	}
	return units.BigInt().Uint64(), nil
}

// FormatAmount renders smallest units as a human readable amount.
func FormatAmount(units uint64, scale uint8) string {
	return decimal.NewFromUint64(units).Shift(-int32(scale)).StringFixed(int32(scale))
}
