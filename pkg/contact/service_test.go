package contact

import (
	"errors"
	"testing"
)

type fakeMailer struct {
	otpRecipients []string
	otpCodes      []int64
	otpErr        error

	forwarded  []PendingSubmission
	forwardErr error
}

func (f *fakeMailer) sendOTP(toEmail string, name string, code int64) error {
	if f.otpErr != nil {
		return f.otpErr
	}
	f.otpRecipients = append(f.otpRecipients, toEmail)
	f.otpCodes = append(f.otpCodes, code)
	return nil
}

func (f *fakeMailer) forward(pending PendingSubmission) error {
	if f.forwardErr != nil {
		return f.forwardErr
	}
	f.forwarded = append(f.forwarded, pending)
	return nil
}

func newTestService() (*Service, *PendingStore, *fakeMailer) {
	store := NewPendingStore(0)
	mailer := &fakeMailer{}
	service := NewService(store, mailer.sendOTP, mailer.forward)
	return service, store, mailer
}

func TestIssueStoresAndSends(t *testing.T) {
	service, store, mailer := newTestService()

	sub := Submission{Name: "A", Email: "a@x.com", PhoneNumber: 6000000001, Message: "hi"}
	if err := service.Issue(sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, ok := store.Get("a@x.com")
	if !ok {
		t.Fatal("expected pending submission in store")
	}
	if pending.OTP < OtpMin || pending.OTP > OtpMax {
		t.Errorf("stored otp %d out of range", pending.OTP)
	}
	if pending.Name != sub.Name || pending.Email != sub.Email ||
		pending.PhoneNumber != sub.PhoneNumber || pending.Message != sub.Message {
		t.Errorf("stored record does not match input: %+v", pending)
	}

	if len(mailer.otpRecipients) != 1 || mailer.otpRecipients[0] != "a@x.com" {
		t.Errorf("expected one otp email to a@x.com, got %v", mailer.otpRecipients)
	}
	if mailer.otpCodes[0] != pending.OTP {
		t.Errorf("emailed code %d differs from stored code %d", mailer.otpCodes[0], pending.OTP)
	}
}

func TestIssueSanitizesEmail(t *testing.T) {
	service, store, _ := newTestService()

	if err := service.Issue(Submission{Name: "A", Email: " A@X.com ", PhoneNumber: 6000000001, Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Get("a@x.com"); !ok {
		t.Error("expected record stored under sanitized email")
	}
}

func TestIssueMailFailureKeepsRecord(t *testing.T) {
	service, store, mailer := newTestService()
	mailer.otpErr = errors.New("smtp down")

	err := service.Issue(Submission{Name: "A", Email: "a@x.com", PhoneNumber: 6000000001, Message: "hi"})
	if err == nil {
		t.Fatal("expected error when otp email fails")
	}
	// no rollback on mail failure
	if _, ok := store.Get("a@x.com"); !ok {
		t.Error("record should remain stored after failed send")
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Verify("nobody@x.com", 123456)
	if !errors.Is(err, ErrUnknownEmail) {
		t.Errorf("expected ErrUnknownEmail, got %v", err)
	}
}

func TestVerifySuccessExactlyOnce(t *testing.T) {
	service, store, mailer := newTestService()

	sub := Submission{Name: "A", Email: "a@x.com", PhoneNumber: 6000000001, Message: "hi"}
	if err := service.Issue(sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pending, _ := store.Get("a@x.com")

	if err := service.Verify("a@x.com", pending.OTP); err != nil {
		t.Fatalf("expected successful verification, got %v", err)
	}
	if len(mailer.forwarded) != 1 {
		t.Fatalf("expected one forwarded query, got %d", len(mailer.forwarded))
	}
	forwarded := mailer.forwarded[0]
	if forwarded.Name != sub.Name || forwarded.Email != sub.Email ||
		forwarded.PhoneNumber != sub.PhoneNumber || forwarded.Message != sub.Message {
		t.Errorf("forwarded record does not match submission: %+v", forwarded)
	}

	if _, ok := store.Get("a@x.com"); ok {
		t.Error("record should be removed after successful verification")
	}
	if err := service.Verify("a@x.com", pending.OTP); !errors.Is(err, ErrUnknownEmail) {
		t.Errorf("second verify with same code should return ErrUnknownEmail, got %v", err)
	}
}

func TestVerifyMismatchKeepsRecord(t *testing.T) {
	service, store, mailer := newTestService()

	if err := service.Issue(Submission{Name: "A", Email: "a@x.com", PhoneNumber: 6000000001, Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pending, _ := store.Get("a@x.com")

	wrong := pending.OTP + 1
	if wrong > OtpMax {
		wrong = OtpMin
	}
	if err := service.Verify("a@x.com", wrong); !errors.Is(err, ErrOtpMismatch) {
		t.Fatalf("expected ErrOtpMismatch, got %v", err)
	}
	if len(mailer.forwarded) != 0 {
		t.Error("mismatch must not forward the query")
	}

	// a subsequent correct-code verify still succeeds
	if err := service.Verify("a@x.com", pending.OTP); err != nil {
		t.Errorf("correct code after mismatch should succeed, got %v", err)
	}
}

func TestReissueInvalidatesOldCode(t *testing.T) {
	service, store, _ := newTestService()

	sub := Submission{Name: "A", Email: "a@x.com", PhoneNumber: 6000000001, Message: "hi"}
	if err := service.Issue(sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, _ := store.Get("a@x.com")

	// re-issue until the code changes; collisions are possible but not a
	// thousand times in a row
	var second PendingSubmission
	for i := 0; i < 1000; i++ {
		if err := service.Issue(sub); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, _ = store.Get("a@x.com")
		if second.OTP != first.OTP {
			break
		}
	}
	if second.OTP == first.OTP {
		t.Fatal("otp never changed across re-issues")
	}

	if err := service.Verify("a@x.com", first.OTP); !errors.Is(err, ErrOtpMismatch) {
		t.Errorf("old code should mismatch after re-issue, got %v", err)
	}
	if err := service.Verify("a@x.com", second.OTP); err != nil {
		t.Errorf("new code should verify, got %v", err)
	}
}

func TestVerifyForwardFailureKeepsRecord(t *testing.T) {
	service, store, mailer := newTestService()

	if err := service.Issue(Submission{Name: "A", Email: "a@x.com", PhoneNumber: 6000000001, Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pending, _ := store.Get("a@x.com")

	mailer.forwardErr = errors.New("smtp down")
	err := service.Verify("a@x.com", pending.OTP)
	if err == nil || errors.Is(err, ErrUnknownEmail) || errors.Is(err, ErrOtpMismatch) {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if _, ok := store.Get("a@x.com"); !ok {
		t.Error("record should be retained when forwarding fails")
	}

	mailer.forwardErr = nil
	if err := service.Verify("a@x.com", pending.OTP); err != nil {
		t.Errorf("retry after failed forward should succeed, got %v", err)
	}
}
