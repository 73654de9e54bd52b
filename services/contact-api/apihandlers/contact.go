package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/contactform/contact-backend/pkg/apihelpers/middlewares"
	"github.com/contactform/contact-backend/pkg/contact"
	emailtemplates "github.com/contactform/contact-backend/pkg/messaging/email-templates"
	"github.com/contactform/contact-backend/pkg/messaging/templates"
	messagingTypes "github.com/contactform/contact-backend/pkg/messaging/types"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddContactFormAPI(rg *gin.RouterGroup) {
	rg.POST("/sendmail", mw.RequirePayload(), h.sendMail)
	rg.POST("/verifyotp", mw.RequirePayload(), h.verifyOtp)

	// dev endpoints to preview the email templates in a browser
	rg.GET("/otp", h.previewOtpTemplate)
	rg.GET("/query", h.previewQueryTemplate)
}

type SendMailReq struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber int64  `json:"phoneNumber"`
	Message     string `json:"message"`
}

type VerifyOtpReq struct {
	Email string `json:"email"`
	Otp   int64  `json:"otp"`
}

func (h *HttpEndpoints) sendMail(c *gin.Context) {
	var req SendMailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	sub := contact.Submission{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Message:     req.Message,
	}
	if !contact.CheckSubmission(sub) {
		slog.Error("invalid contact form submission", slog.String("email", req.Email))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if err := h.contactService.Issue(sub); err != nil {
		slog.Error("failed to issue otp", slog.String("email", sub.Email), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
}

func (h *HttpEndpoints) verifyOtp(c *gin.Context) {
	var req VerifyOtpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	if !contact.CheckVerification(req.Email, req.Otp) {
		slog.Error("invalid otp verification request", slog.String("email", req.Email))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input"})
		return
	}

	err := h.contactService.Verify(req.Email, req.Otp)
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrUnknownEmail):
			slog.Warn("otp verification for unknown email", slog.String("email", req.Email))
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid email"})
		case errors.Is(err, contact.ErrOtpMismatch):
			slog.Warn("otp mismatch", slog.String("email", req.Email))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP"})
		default:
			slog.Error("failed to verify otp", slog.String("email", req.Email), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "We successfully received your query, our team will contact you soon"})
}

func (h *HttpEndpoints) previewOtpTemplate(c *gin.Context) {
	h.renderTemplatePreview(c, messagingTypes.EMAIL_TYPE_CONTACT_OTP, map[string]string{
		"name":             "John Doe",
		"verificationCode": "123456",
	})
}

func (h *HttpEndpoints) previewQueryTemplate(c *gin.Context) {
	h.renderTemplatePreview(c, messagingTypes.EMAIL_TYPE_CONTACT_QUERY, map[string]string{
		"name":        "John Doe",
		"email":       "john.doe@example.com",
		"phoneNumber": "6000000001",
		"message":     "I would like to know more about your courses.",
	})
}

func (h *HttpEndpoints) renderTemplatePreview(c *gin.Context, messageType string, payload map[string]string) {
	templateDef, err := emailtemplates.GetTemplateByMessageType(messageType)
	if err != nil {
		slog.Error("template not found", slog.String("messageType", messageType), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	content, err := templates.ResolveTemplate(messageType, templateDef.BodyTemplate, payload)
	if err != nil {
		slog.Error("failed to resolve template", slog.String("messageType", messageType), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal Server Error"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(content))
}
