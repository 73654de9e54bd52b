package emailtemplates

import (
	"strings"
	"testing"

	"github.com/contactform/contact-backend/pkg/messaging/templates"
	messagingTypes "github.com/contactform/contact-backend/pkg/messaging/types"
)

func TestDefaultTemplatesResolvable(t *testing.T) {
	tests := []struct {
		messageType string
		payload     map[string]string
		mustContain string
	}{
		{
			messageType: messagingTypes.EMAIL_TYPE_CONTACT_OTP,
			payload:     map[string]string{"name": "A", "verificationCode": "123456"},
			mustContain: "123456",
		},
		{
			messageType: messagingTypes.EMAIL_TYPE_CONTACT_QUERY,
			payload:     map[string]string{"name": "A", "email": "a@x.com", "phoneNumber": "6000000001", "message": "hi"},
			mustContain: "a@x.com",
		},
	}

	for _, test := range tests {
		t.Run(test.messageType, func(t *testing.T) {
			templateDef, err := GetTemplateByMessageType(test.messageType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			content, err := templates.ResolveTemplate(test.messageType, templateDef.BodyTemplate, test.payload)
			if err != nil {
				t.Fatalf("could not resolve template: %v", err)
			}
			if !strings.Contains(content, test.mustContain) {
				t.Errorf("rendered template does not contain %q", test.mustContain)
			}
			if _, err := templates.ResolveTemplate(test.messageType+"-subject", templateDef.SubjectTemplate, test.payload); err != nil {
				t.Errorf("could not resolve subject template: %v", err)
			}
		})
	}
}

func TestGetTemplateByMessageTypeUnknown(t *testing.T) {
	if _, err := GetTemplateByMessageType("no-such-type"); err == nil {
		t.Error("expected error for unknown message type")
	}
}
