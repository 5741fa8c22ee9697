package signup

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldAcceptTerms     = "acceptTerms"

	MinUsernameLength = 3
	MinPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

// Fields returns the failing field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Validate applies the signup rules. An empty result means the form may be submitted.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(f.FirstName) == "" {
		errs[FieldFirstName] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs[FieldLastName] = "Last name is required"
	}

	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		errs[FieldUsername] = "Username is required"
	case utf8.RuneCountInString(username) < MinUsernameLength:
		errs[FieldUsername] = "Username must be at least 3 characters"
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Please enter a valid email address"
	}

	switch {
	case f.Password == "":
		errs[FieldPassword] = "Password is required"
	case utf8.RuneCountInString(f.Password) < MinPasswordLength:
		errs[FieldPassword] = "Password must be at least 6 characters"
	}

	if f.Password != f.ConfirmPassword {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}

	if !f.AcceptTerms {
		errs[FieldAcceptTerms] = "You must accept the terms and conditions"
	}

	return errs
}
