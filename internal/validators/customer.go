package validators

import (
	"strings"
	"unicode"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const minPhoneDigits = 8

// CustomerOptions tunes ValidateCustomer.
type CustomerOptions struct {
	CheckEmailDomain bool
}

// ValidateCustomer checks the details the booking needs before any
// provider call and returns them trimmed.
func ValidateCustomer(in booking.CustomerInput, opts CustomerOptions) (booking.CustomerInput, error) {
	out := booking.CustomerInput{
		GivenName:  strings.TrimSpace(in.GivenName),
		FamilyName: strings.TrimSpace(in.FamilyName),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      strings.TrimSpace(in.Phone),
	}

	switch {
	case out.GivenName == "":
		return out, httperr.ErrBusiness("missing_given_name")
	case out.FamilyName == "":
		return out, httperr.ErrBusiness("missing_family_name")
	case out.Email == "":
		return out, httperr.ErrBusiness("missing_email")
	case out.Phone == "":
		return out, httperr.ErrBusiness("missing_phone")
	}

	if !IsEmailFormatValid(out.Email) {
		return out, httperr.ErrBusiness("invalid_email")
	}
	if opts.CheckEmailDomain && !IsEmailDomainValid(out.Email) {
		return out, httperr.ErrBusiness("invalid_email_domain")
	}
	if countDigits(out.Phone) < minPhoneDigits {
		return out, httperr.ErrBusiness("invalid_phone")
	}

	return out, nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
