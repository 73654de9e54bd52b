package types

const (
	EMAIL_TYPE_CONTACT_OTP   = "contact-otp"
	EMAIL_TYPE_CONTACT_QUERY = "contact-query"
)

type HeaderOverrides struct {
	From      string   `json:"from" yaml:"from"`
	Sender    string   `json:"sender" yaml:"sender"`
	ReplyTo   []string `json:"replyTo" yaml:"replyTo"`
	NoReplyTo bool     `json:"noReplyTo" yaml:"noReplyTo"`
}

// EmailTemplate holds the subject and body definitions for one message type.
// Subject and body are both parsed as templates.
type EmailTemplate struct {
	MessageType     string `json:"messageType" yaml:"messageType"`
	SubjectTemplate string `json:"subjectTemplate" yaml:"subjectTemplate"`
	BodyTemplate    string `json:"bodyTemplate" yaml:"bodyTemplate"`
}
