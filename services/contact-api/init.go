package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/contactform/contact-backend/pkg/apihelpers"
	emailsending "github.com/contactform/contact-backend/pkg/messaging/email-sending"
	emailtemplates "github.com/contactform/contact-backend/pkg/messaging/email-templates"
	smtpclient "github.com/contactform/contact-backend/pkg/smtp-client"
	"github.com/contactform/contact-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_SMTP_USERNAME  = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD  = "SMTP_PASSWORD"
	ENV_OPERATOR_EMAIL = "OPERATOR_EMAIL"
	ENV_PORT           = "PORT"

	// Allowed frontend origins, appended to the configured list
	ENV_FRONTEND_URI_1 = "FRONTEND_URI_1"
	ENV_FRONTEND_URI_2 = "FRONTEND_URI_2"
	ENV_FRONTEND_URI_3 = "FRONTEND_URI_3"
)

type ContactApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// Contact form configs
	ContactConfig struct {
		OperatorEmail   string `json:"operator_email" yaml:"operator_email"`
		PendingTTL      string `json:"pending_ttl" yaml:"pending_ttl"`
		CleanupInterval string `json:"cleanup_interval" yaml:"cleanup_interval"`
	} `json:"contact_config" yaml:"contact_config"`

	// SMTP configs, inline or from a separate file
	SmtpConfig           smtpclient.SmtpServerList `json:"smtp_config" yaml:"smtp_config"`
	SmtpServerConfigPath string                    `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`

	TemplateOverrideDir string `json:"template_override_dir" yaml:"template_override_dir"`
}

var (
	pendingTTL      time.Duration
	cleanupInterval = time.Minute
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	parseContactDurations()

	if conf.ContactConfig.OperatorEmail == "" {
		panic("no operator email configured")
	}

	initMessageSending()
}

func secretsOverride() {
	if username := os.Getenv(ENV_SMTP_USERNAME); username != "" {
		for i := range conf.SmtpConfig.Servers {
			conf.SmtpConfig.Servers[i].SetUsername(username)
		}
	}

	if password := os.Getenv(ENV_SMTP_PASSWORD); password != "" {
		for i := range conf.SmtpConfig.Servers {
			conf.SmtpConfig.Servers[i].SetPassword(password)
		}
	}

	if operatorEmail := os.Getenv(ENV_OPERATOR_EMAIL); operatorEmail != "" {
		conf.ContactConfig.OperatorEmail = operatorEmail
	}

	if port := os.Getenv(ENV_PORT); port != "" {
		conf.GinConfig.Port = port
	}

	for _, envVar := range []string{ENV_FRONTEND_URI_1, ENV_FRONTEND_URI_2, ENV_FRONTEND_URI_3} {
		if uri := os.Getenv(envVar); uri != "" {
			conf.GinConfig.AllowOrigins = append(conf.GinConfig.AllowOrigins, uri)
		}
	}
}

func parseContactDurations() {
	if conf.ContactConfig.PendingTTL != "" {
		ttl, err := utils.ParseDurationString(conf.ContactConfig.PendingTTL)
		if err != nil {
			panic(err)
		}
		pendingTTL = ttl
	}

	if conf.ContactConfig.CleanupInterval != "" {
		interval, err := utils.ParseDurationString(conf.ContactConfig.CleanupInterval)
		if err != nil {
			panic(err)
		}
		cleanupInterval = interval
	}
}

func initMessageSending() {
	smtpConfig := conf.SmtpConfig
	if conf.SmtpServerConfigPath != "" {
		if err := smtpConfig.ReadFromFile(conf.SmtpServerConfigPath); err != nil {
			panic(err)
		}
		if username := os.Getenv(ENV_SMTP_USERNAME); username != "" {
			for i := range smtpConfig.Servers {
				smtpConfig.Servers[i].SetUsername(username)
			}
		}
		if password := os.Getenv(ENV_SMTP_PASSWORD); password != "" {
			for i := range smtpConfig.Servers {
				smtpConfig.Servers[i].SetPassword(password)
			}
		}
	}

	smtpClients, err := smtpclient.NewSmtpClients(smtpConfig)
	if err != nil {
		slog.Error("failed to init smtp clients", slog.String("error", err.Error()))
		panic(err)
	}

	if conf.TemplateOverrideDir != "" {
		if err := emailtemplates.LoadTemplateOverrides(conf.TemplateOverrideDir); err != nil {
			panic(err)
		}
	}

	emailsending.InitMessageSendingVariables(smtpClients, map[string]string{})
}
