package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for currency values.
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds half away from zero to two places. Currency values in this
// system are non-negative, so this behaves as round-half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Percent returns pct percent of total, rounded to currency scale.
func Percent(total decimal.Decimal, pct int) decimal.Decimal {
	return RoundMoney(total.Mul(decimal.NewFromInt(int64(pct))).Div(hundred))
}

// SplitInstallments divides total into n shares. Every share but the last is
// total/n rounded to currency scale; the last one absorbs the rounding
// remainder so the shares always add up to total.
func SplitInstallments(total decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, &ConsistencyError{Reason: fmt.Sprintf("installment count must be positive, got %d", n)}
	}
	total = RoundMoney(total)
	share := RoundMoney(total.Div(decimal.NewFromInt(int64(n))))
	shares := make([]decimal.Decimal, n)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[n-1] = total.Sub(allocated)
	return shares, nil
}
