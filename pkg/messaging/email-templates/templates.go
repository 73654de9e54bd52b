package emailtemplates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	messagingTypes "github.com/contactform/contact-backend/pkg/messaging/types"
)

//go:embed defaults/*.html
var defaultTemplates embed.FS

var registry = map[string]messagingTypes.EmailTemplate{}

func init() {
	defaults := []struct {
		messageType string
		subject     string
		filename    string
	}{
		{messagingTypes.EMAIL_TYPE_CONTACT_OTP, "Your verification code", "defaults/contact-otp.html"},
		{messagingTypes.EMAIL_TYPE_CONTACT_QUERY, "New contact form query from {{.name}}", "defaults/contact-query.html"},
	}

	for _, d := range defaults {
		body, err := defaultTemplates.ReadFile(d.filename)
		if err != nil {
			panic("missing embedded email template: " + d.filename)
		}
		registry[d.messageType] = messagingTypes.EmailTemplate{
			MessageType:     d.messageType,
			SubjectTemplate: d.subject,
			BodyTemplate:    string(body),
		}
	}
}

func GetTemplateByMessageType(messageType string) (*messagingTypes.EmailTemplate, error) {
	t, ok := registry[messageType]
	if !ok {
		return nil, fmt.Errorf("no email template for message type %s", messageType)
	}
	return &t, nil
}

// LoadTemplateOverrides replaces the body of registered templates with files
// named <messageType>.html from the given directory. Message types without an
// override file keep their embedded default.
func LoadTemplateOverrides(dir string) error {
	for messageType, t := range registry {
		fname := filepath.Join(dir, messageType+".html")
		body, err := os.ReadFile(fname)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("could not read template override %s: %w", fname, err)
		}
		t.BodyTemplate = string(body)
		registry[messageType] = t
	}
	return nil
}
