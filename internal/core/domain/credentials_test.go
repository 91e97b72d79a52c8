package domain

import (
	"reflect"
	"testing"
)

func TestValidateCredentials_EmailOnly(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{Email: "a@b.co"})
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
}

func TestValidateCredentials_PhoneWithCountryCode(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{Phone: "12345", CountryCode: "+44"})
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
}

func TestValidateCredentials_Empty(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{})
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	if !contains(res.Errors, "Either email or phone number with country code is required") {
		t.Fatalf("missing required-method error, got: %v", res.Errors)
	}
}

func TestValidateCredentials_BlankAfterTrim(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{Email: "   "})
	if res.Valid {
		t.Fatalf("expected invalid for whitespace-only email")
	}
	if !contains(res.Errors, "Either email or phone number with country code is required") {
		t.Fatalf("missing required-method error, got: %v", res.Errors)
	}
}

func TestValidateCredentials_InvalidEmail(t *testing.T) {
	for _, email := range []string{"plainaddress", "missing@tld", "two words@x.co", "@no-local.co"} {
		res := ValidateCredentials(LoginCredentials{Email: email})
		if res.Valid {
			t.Fatalf("expected %q to be invalid", email)
		}
		if !contains(res.Errors, "Please enter a valid email address") {
			t.Fatalf("missing email error for %q, got: %v", email, res.Errors)
		}
	}
}

func TestValidateCredentials_PhoneWithoutCountryCode(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{Phone: "12345"})
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	if !contains(res.Errors, "Country code is required when using phone number") {
		t.Fatalf("missing country code error, got: %v", res.Errors)
	}
}

func TestValidateCredentials_InvalidCountryCode(t *testing.T) {
	for _, cc := range []string{"44", "+0", "+12345", "++1", "+1a"} {
		res := ValidateCredentials(LoginCredentials{Phone: "12345", CountryCode: cc})
		if res.Valid {
			t.Fatalf("expected country code %q to be invalid", cc)
		}
		if !contains(res.Errors, "Please enter a valid country code (e.g., +1, +44)") {
			t.Fatalf("missing country code format error for %q, got: %v", cc, res.Errors)
		}
	}
}

func TestValidateCredentials_InvalidPhoneCharacters(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{Phone: "12345x", CountryCode: "+1"})
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	if !contains(res.Errors, "Please enter a valid phone number") {
		t.Fatalf("missing phone format error, got: %v", res.Errors)
	}
}

func TestValidateCredentials_PhoneFormattingAllowed(t *testing.T) {
	res := ValidateCredentials(LoginCredentials{Phone: "(555) 123-4567", CountryCode: "+1"})
	if !res.Valid {
		t.Fatalf("expected formatted phone to be valid, got: %v", res.Errors)
	}
}

func TestValidateCredentials_CollectsAllViolations(t *testing.T) {
	// Bad email and a phone missing its country code: both rules fire, in order.
	res := ValidateCredentials(LoginCredentials{Email: "nope", Phone: "abc"})
	want := []string{
		"Please enter a valid email address",
		"Country code is required when using phone number",
		"Please enter a valid phone number",
	}
	if res.Valid {
		t.Fatalf("expected invalid")
	}
	if !reflect.DeepEqual(res.Errors, want) {
		t.Fatalf("expected %v, got %v", want, res.Errors)
	}
}

func TestValidateCredentials_Pure(t *testing.T) {
	creds := LoginCredentials{Phone: "12345", CountryCode: "+44"}
	first := ValidateCredentials(creds)
	second := ValidateCredentials(creds)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic result, got %v then %v", first, second)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
