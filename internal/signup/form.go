package signup

import (
	"strings"
	"time"
)

// Form holds the raw values of the signup page.
type Form struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Organization    string `json:"organization"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// Request is the body posted to the authentication service.
type Request struct {
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	FullName     string  `json:"full_name"`
	Phone        *string `json:"phone"`
	Organization *string `json:"organization"`
}

// User is the account returned by a successful signup.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FullName     *string   `json:"full_name,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Result is what a caller needs after a successful submission.
type Result struct {
	Redirect string `json:"redirect"`
	User     *User  `json:"user,omitempty"`
}

func (f Form) Request() Request {
	return Request{
		Email:        strings.TrimSpace(f.Email),
		Username:     strings.TrimSpace(f.Username),
		Password:     f.Password,
		FullName:     strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName)),
		Phone:        optional(f.Phone),
		Organization: optional(f.Organization),
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
