package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for amounts that are not strictly positive decimals.
var ErrInvalidAmount = NewValidationError("amount must be a positive decimal with at most two significant decimals")

// ParseAmount converts a decimal string to cents. Both "12.34" and "12,34" are accepted;
// a third decimal rounds half-up and further digits are ignored.
func ParseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrInvalidAmount
	}
	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units > (1<<63-1)/100-1 {
		return 0, ErrInvalidAmount
	}
	var frac int64
	for i := 0; i < 2; i++ {
		frac *= 10
		if i < len(fracPart) {
			frac += int64(fracPart[i] - '0')
		}
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}
	cents := units*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// FormatAmount renders cents as a plain decimal string ("1234" -> "12.34").
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
