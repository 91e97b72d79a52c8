package domain

import (
	"regexp"
	"strings"
)

// LoginCredentials carries the identification the app collects at sign-in.
// Exactly one identification method must be provided: email, or phone
// together with a country code. Password passes through unvalidated.
type LoginCredentials struct {
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Password    string `json:"password,omitempty"`
}

// ValidationResult is the outcome of ValidateCredentials. Errors preserves
// the order in which the rules fired.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

var (
	emailPattern       = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern       = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	countryCodePattern = regexp.MustCompile(`^\+[1-9]\d{0,3}$`)
)

// ValidateCredentials checks the shape of login input. All rules are applied
// and every violation is collected; nothing short-circuits. The function is
// pure and touches no store or network.
func ValidateCredentials(c LoginCredentials) ValidationResult {
	email := strings.TrimSpace(c.Email)
	phone := strings.TrimSpace(c.Phone)
	countryCode := strings.TrimSpace(c.CountryCode)

	hasEmail := email != ""
	hasPhone := phone != "" && countryCode != ""

	var errs []string

	if !hasEmail && !hasPhone {
		errs = append(errs, "Either email or phone number with country code is required")
	}
	if hasEmail && !emailPattern.MatchString(email) {
		errs = append(errs, "Please enter a valid email address")
	}
	if phone != "" && countryCode == "" {
		errs = append(errs, "Country code is required when using phone number")
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		errs = append(errs, "Please enter a valid phone number")
	}
	if countryCode != "" && !countryCodePattern.MatchString(countryCode) {
		errs = append(errs, "Please enter a valid country code (e.g., +1, +44)")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
