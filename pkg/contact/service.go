package contact

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownEmail = errors.New("no pending submission for this email")
	ErrOtpMismatch  = errors.New("submitted otp does not match")
)

// OTPEmailSender delivers the verification code to the submitter.
type OTPEmailSender func(toEmail string, name string, code int64) error

// QueryForwarder delivers the verified submission to the operator mailbox.
type QueryForwarder func(pending PendingSubmission) error

// Service implements the OTP issue and verify operations on top of a pending
// store. Mail side effects are injected so the service stays independent of
// the SMTP layer.
type Service struct {
	store        *PendingStore
	sendOTPEmail OTPEmailSender
	forwardQuery QueryForwarder
}

func NewService(
	store *PendingStore,
	sendOTPEmail OTPEmailSender,
	forwardQuery QueryForwarder,
) *Service {
	return &Service{
		store:        store,
		sendOTPEmail: sendOTPEmail,
		forwardQuery: forwardQuery,
	}
}

// Issue generates a fresh OTP for the submission, stores the pending record
// under the submitter's email (replacing any previous entry for that address)
// and sends the code by email. The send is awaited; if it fails the operation
// fails, but the stored record is intentionally not rolled back so a later
// resubmission simply overwrites it.
func (s *Service) Issue(sub Submission) error {
	code, err := GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("could not generate otp code: %w", err)
	}

	pending := PendingSubmission{
		Name:        sub.Name,
		Email:       SanitizeEmail(sub.Email),
		PhoneNumber: sub.PhoneNumber,
		Message:     sub.Message,
		OTP:         code,
		CreatedAt:   time.Now(),
	}
	s.store.Upsert(pending)

	if err := s.sendOTPEmail(pending.Email, pending.Name, pending.OTP); err != nil {
		return fmt.Errorf("could not send otp email: %w", err)
	}
	return nil
}

// Verify checks the submitted code against the pending record for the email.
// On a match the original submission is forwarded to the operator mailbox and
// the record is removed; a failed forward keeps the record so the client can
// retry. Mismatched codes leave the record untouched.
func (s *Service) Verify(email string, code int64) error {
	email = SanitizeEmail(email)

	pending, ok := s.store.Get(email)
	if !ok {
		return ErrUnknownEmail
	}
	if pending.OTP != code {
		return ErrOtpMismatch
	}

	if err := s.forwardQuery(pending); err != nil {
		return fmt.Errorf("could not forward query to operator: %w", err)
	}

	// code compared again on delete so a concurrent re-issue is not lost
	s.store.DeleteWithCode(email, code)
	return nil
}
