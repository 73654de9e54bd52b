package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/contactform/contact-backend/pkg/apihelpers"
	"github.com/contactform/contact-backend/pkg/contact"
	emailsending "github.com/contactform/contact-backend/pkg/messaging/email-sending"
	messagingTypes "github.com/contactform/contact-backend/pkg/messaging/types"
	"github.com/contactform/contact-backend/services/contact-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var conf ContactApiConfig

func main() {
	pendingStore := contact.NewPendingStore(pendingTTL)
	if pendingTTL > 0 {
		go runStoreCleanup(pendingStore)
	}

	contactService := contact.NewService(
		pendingStore,
		sendOtpEmail,
		forwardQueryToOperator,
	)

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)

	apiHandlers := apihandlers.NewHTTPHandler(contactService)
	apiHandlers.AddContactFormAPI(&router.RouterGroup)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "contact-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Contact API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Contact API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Contact API", slog.String("error", err.Error()))
			return
		}
	}
}

func sendOtpEmail(toEmail string, name string, code int64) error {
	return emailsending.SendInstantEmailByTemplate(
		[]string{toEmail},
		messagingTypes.EMAIL_TYPE_CONTACT_OTP,
		map[string]string{
			"name":             name,
			"verificationCode": strconv.FormatInt(code, 10),
		},
		nil,
	)
}

func forwardQueryToOperator(pending contact.PendingSubmission) error {
	return emailsending.SendInstantEmailByTemplate(
		[]string{conf.ContactConfig.OperatorEmail},
		messagingTypes.EMAIL_TYPE_CONTACT_QUERY,
		map[string]string{
			"name":        pending.Name,
			"email":       pending.Email,
			"phoneNumber": strconv.FormatInt(pending.PhoneNumber, 10),
			"message":     pending.Message,
		},
		// let the operator reply to the submitter directly
		&messagingTypes.HeaderOverrides{ReplyTo: []string{pending.Email}},
	)
}

func runStoreCleanup(store *contact.PendingStore) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		if removed := store.CleanupExpired(); removed > 0 {
			slog.Debug("removed expired pending submissions", slog.Int("count", removed))
		}
	}
}
