// Package validate holds the stateless input checks shared by the
// catalog and sales services, so every entry point enforces identical
// constraints.
package validate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
)

// RequiredText rejects empty or whitespace-only values.
func RequiredText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validationf("%s is required", field)
	}
	return nil
}

// Quantity rejects negative stock counts.
func Quantity(field string, q int) error {
	if q < 0 {
		return apperr.Validationf("%s cannot be negative", field)
	}
	return nil
}

// SaleQuantity rejects non-positive sale quantities.
func SaleQuantity(field string, q int) error {
	if q <= 0 {
		return apperr.Validationf("%s must be greater than zero", field)
	}
	return nil
}

// Price rejects negative prices.
func Price(field string, p decimal.Decimal) error {
	if p.IsNegative() {
		return apperr.Validationf("%s cannot be negative", field)
	}
	return nil
}

// SameGame reports whether two (title, developer) pairs identify the
// same game. Comparison is case-insensitive exact match on the full
// strings.
func SameGame(titleA, devA, titleB, devB string) bool {
	return strings.EqualFold(titleA, titleB) && strings.EqualFold(devA, devB)
}
