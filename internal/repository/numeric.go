package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// numericToDecimal converts a scanned NUMERIC column into a decimal. A value
// that cannot be converted is a scan error, never a zero amount.
func numericToDecimal(numeric pgtype.Numeric) (decimal.Decimal, error) {
	if !numeric.Valid {
		return decimal.Decimal{}, fmt.Errorf("cannot convert NULL numeric to decimal")
	}

	value, err := numeric.Value()
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to read numeric value: %w", err)
	}

	str, ok := value.(string)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("unexpected numeric driver value %T", value)
	}

	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse numeric %q: %w", str, err)
	}

	return d, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var numeric pgtype.Numeric

	// Scan on a decimal string cannot fail.
	_ = numeric.Scan(d.String())

	return numeric
}
