// Package validation contains pure card-input predicates. No network, no state.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var cvvPattern = regexp.MustCompile(`^\d{3,4}$`)

// ValidateCardNumber strips spaces and dashes and applies the Luhn checksum.
func ValidateCardNumber(number string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(number)
	if cleaned == "" {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		c := cleaned[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// ValidateExpiry checks an MM/YY expiry against the current month. The
// two-digit year is compared mod 100, so dates are ambiguous across century
// boundaries; callers get the same answer the card networks' own forms give.
func ValidateExpiry(expiry string) bool {
	return validateExpiryAt(expiry, time.Now())
}

func validateExpiryAt(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 0 {
		return false
	}

	currentYear := now.Year() % 100
	if year < currentYear {
		return false
	}
	if year == currentYear && month < int(now.Month()) {
		return false
	}
	return true
}

// ValidateCVV accepts three or four digits.
func ValidateCVV(cvv string) bool {
	return cvvPattern.MatchString(cvv)
}
