package normalize

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseMoney converts a decimal string into an exact Decimal128. The input
// digits and scale are preserved, so "1500.50" stays "1500.50".
func ParseMoney(s string) (primitive.Decimal128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return primitive.Decimal128{}, errors.New("empty amount")
	}
	d, err := primitive.ParseDecimal128(s)
	if err != nil {
		return primitive.Decimal128{}, err
	}
	if d.IsNaN() || d.IsInf() != 0 {
		return primitive.Decimal128{}, errors.New("amount is not a finite number")
	}
	return d, nil
}
