package emailsending

import (
	"errors"
	"log/slog"

	emailtemplates "github.com/contactform/contact-backend/pkg/messaging/email-templates"
	"github.com/contactform/contact-backend/pkg/messaging/templates"
	messagingTypes "github.com/contactform/contact-backend/pkg/messaging/types"
	smtpclient "github.com/contactform/contact-backend/pkg/smtp-client"
)

var (
	smtpClients *smtpclient.SmtpClients

	GlobalTemplateInfos = map[string]string{}
)

func InitMessageSendingVariables(
	clients *smtpclient.SmtpClients,
	globalTemplateInfos map[string]string,
) {
	smtpClients = clients
	GlobalTemplateInfos = globalTemplateInfos
}

// SendInstantEmailByTemplate resolves the subject and body templates for the
// given message type and dispatches the email through the SMTP pool. The call
// is synchronous; a returned error means the message was not accepted by any
// SMTP server.
func SendInstantEmailByTemplate(
	to []string,
	messageType string,
	payload map[string]string,
	overrides *messagingTypes.HeaderOverrides,
) error {
	if smtpClients == nil {
		return errors.New("smtp clients not initialized")
	}

	templateDef, err := emailtemplates.GetTemplateByMessageType(messageType)
	if err != nil {
		return err
	}

	if payload == nil {
		payload = map[string]string{}
	}
	for k, v := range GlobalTemplateInfos {
		payload[k] = v
	}

	subject, err := templates.ResolveTemplate(messageType+"-subject", templateDef.SubjectTemplate, payload)
	if err != nil {
		return err
	}
	content, err := templates.ResolveTemplate(messageType, templateDef.BodyTemplate, payload)
	if err != nil {
		return err
	}

	err = smtpClients.SendMail(to, subject, content, overrides)
	if err != nil {
		slog.Debug("error while sending email", slog.String("error", err.Error()), slog.String("messageType", messageType))
		return err
	}
	return nil
}
