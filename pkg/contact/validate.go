package contact

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	PhoneNumberMin = 6000000000
	PhoneNumberMax = 9999999999
)

var emailRule = regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func SanitizeEmail(email string) string {
	email = strings.ToLower(email)
	email = strings.Trim(email, " \n\r")
	return email
}

// CheckEmailFormat to check if input string is a correct email address
func CheckEmailFormat(email string) bool {
	if len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// additional regex check for correct email format
	return emailRule.MatchString(email)
}

// CheckSubmission validates a contact-form submission against the submission
// schema. Pure function, no side effects.
func CheckSubmission(sub Submission) bool {
	if strings.TrimSpace(sub.Name) == "" {
		return false
	}
	if !CheckEmailFormat(sub.Email) {
		return false
	}
	if sub.PhoneNumber < PhoneNumberMin || sub.PhoneNumber > PhoneNumberMax {
		return false
	}
	if strings.TrimSpace(sub.Message) == "" {
		return false
	}
	return true
}

// CheckVerification validates an OTP verification request against the
// verification schema.
func CheckVerification(email string, otp int64) bool {
	if !CheckEmailFormat(email) {
		return false
	}
	if otp < OtpMin || otp > OtpMax {
		return false
	}
	return true
}
