package apisdk

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	reasonRequired = "required"

	maxEmailLength    = 254
	maxUsernameLength = 150
	maxPasswordLength = 1024
)

// Validate checks the fields of a signup request. It returns nil when the
// request is acceptable, otherwise a map of field name to reason.
func (r CreateUserRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	validateUsername(errs, r.Username)

	switch {
	case r.Password == "":
		errs["password"] = reasonRequired
	case len(r.Password) > maxPasswordLength:
		errs["password"] = "too long (max 1024 bytes)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks an admin console create request. The password may be left
// empty, which creates an account that cannot log in.
func (r AdminCreateUserRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	validateUsername(errs, r.Username)
	if len(r.Password) > maxPasswordLength {
		errs["password"] = "too long (max 1024 bytes)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs["email"] = reasonRequired
	case len(email) > maxEmailLength:
		errs["email"] = "too long (max 254)"
	default:
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			errs["email"] = "must be a valid email address"
		}
	}
}

func validateUsername(errs map[string]string, username string) {
	if utf8.RuneCountInString(username) > maxUsernameLength {
		errs["username"] = "too long (max 150)"
	}
}
