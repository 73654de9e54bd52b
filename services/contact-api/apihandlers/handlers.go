package apihandlers

import (
	"net/http"

	"github.com/contactform/contact-backend/pkg/contact"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	contactService *contact.Service
}

func NewHTTPHandler(
	contactService *contact.Service,
) *HttpEndpoints {
	return &HttpEndpoints{
		contactService: contactService,
	}
}
