package contact

import "time"

// Submission is a validated contact-form request.
type Submission struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber int64  `json:"phoneNumber"`
	Message     string `json:"message"`
}

// PendingSubmission is a submission awaiting OTP confirmation. At most one
// exists per email address; a newer submission for the same email overwrites
// the older one.
type PendingSubmission struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber int64     `json:"phoneNumber"`
	Message     string    `json:"message"`
	OTP         int64     `json:"otp"`
	CreatedAt   time.Time `json:"createdAt"`
}
