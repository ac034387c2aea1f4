package validation

import (
	"testing"
	"time"
)

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{
			name:   "Valid Visa",
			number: "4242424242424242",
			want:   true,
		},
		{
			name:   "Checksum off by one",
			number: "4242424242424241",
			want:   false,
		},
		{
			name:   "Valid Mastercard",
			number: "5555555555554444",
			want:   true,
		},
		{
			name:   "Valid Amex",
			number: "378282246310005",
			want:   true,
		},
		{
			name:   "Spaces stripped",
			number: "4242 4242 4242 4242",
			want:   true,
		},
		{
			name:   "Dashes stripped",
			number: "4242-4242-4242-4242",
			want:   true,
		},
		{
			name:   "Letters rejected",
			number: "4242abcd42424242",
			want:   false,
		},
		{
			name:   "Empty string",
			number: "",
			want:   false,
		},
		{
			name:   "Only separators",
			number: " - ",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCardNumber(tt.number)
			if got != tt.want {
				t.Errorf("ValidateCardNumber(%q) = %v, want %v", tt.number, got, tt.want)
			}
		})
	}
}

func TestValidateExpiry(t *testing.T) {
	// Fixed reference point: June 2024.
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry string
		want   bool
	}{
		{
			name:   "Past year",
			expiry: "12/20",
			want:   false,
		},
		{
			name:   "Future year",
			expiry: "12/30",
			want:   true,
		},
		{
			name:   "Current month still valid",
			expiry: "06/24",
			want:   true,
		},
		{
			name:   "Previous month expired",
			expiry: "05/24",
			want:   false,
		},
		{
			name:   "Month out of range",
			expiry: "13/25",
			want:   false,
		},
		{
			name:   "Month zero",
			expiry: "00/25",
			want:   false,
		},
		{
			name:   "Single digit month",
			expiry: "1/25",
			want:   false,
		},
		{
			name:   "Wrong separator",
			expiry: "12-25",
			want:   false,
		},
		{
			name:   "Garbage",
			expiry: "aa/bb",
			want:   false,
		},
		{
			name:   "Empty string",
			expiry: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateExpiryAt(tt.expiry, now)
			if got != tt.want {
				t.Errorf("validateExpiryAt(%q) = %v, want %v", tt.expiry, got, tt.want)
			}
		})
	}
}

func TestValidateCVV(t *testing.T) {
	tests := []struct {
		name string
		cvv  string
		want bool
	}{
		{"Too short", "12", false},
		{"Three digits", "123", true},
		{"Four digits", "1234", true},
		{"Five digits", "12345", false},
		{"Letters", "12a", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCVV(tt.cvv)
			if got != tt.want {
				t.Errorf("ValidateCVV(%q) = %v, want %v", tt.cvv, got, tt.want)
			}
		})
	}
}
