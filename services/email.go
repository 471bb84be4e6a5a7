package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

type EmailService struct {
	context.DefaultService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	baseURL      string

	templates map[string]*template.Template
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")
	svc.baseURL = os.Getenv("BASE_URL")

	// Set defaults if not provided
	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "SafeSteps"
	}
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	svc.templates = make(map[string]*template.Template)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	err := svc.loadTemplates()
	if err != nil {
		log.WithError(err).Error("Failed to load email templates")
		// Don't fail startup, just log the error
	}

	return nil
}

const safetyAlertEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.AlertType}} Alert - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: {{.HeaderColor}}; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .alert-box { background-color: white; border-left: 4px solid {{.HeaderColor}}; padding: 15px; margin: 20px 0; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.AlertType}} Alert</h1>
        </div>
        <div class="content">
            <h2>Hi {{.Username}},</h2>
            <p>A new safety alert has been issued{{if .Region}} for your region ({{.Region}}){{end}}:</p>
            <div class="alert-box">
                <strong>Severity:</strong> {{.Severity}}<br>
                <strong>Message:</strong> {{.Message}}
            </div>
            <p>Open your {{.AppName}} dashboard for the latest updates and preparedness resources.</p>
            <p><a href="{{.DashboardURL}}">View Dashboard</a></p>
        </div>
        <div class="footer">
            <p>You are receiving this because email alerts are enabled in your settings.</p>
            <p>&copy; 2026 {{.AppName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

type SafetyAlertEmailData struct {
	AppName      string
	Username     string
	AlertType    string
	Severity     string
	Message      string
	Region       string
	HeaderColor  string
	DashboardURL string
}

func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["safety_alert"], err = template.New("safety_alert").Parse(safetyAlertEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse safety alert email template: %v", err)
	}

	return nil
}

// SendSafetyAlertEmail notifies a single recipient about a broadcast alert.
func (svc *EmailService) SendSafetyAlertEmail(email, username, alertType, severity, message, region string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping safety alert email")
		return nil
	}

	headerColor := "#2563EB"
	switch severity {
	case "warning":
		headerColor = "#D97706"
	case "critical":
		headerColor = "#DC2626"
	}

	data := SafetyAlertEmailData{
		AppName:      "SafeSteps",
		Username:     username,
		AlertType:    alertType,
		Severity:     severity,
		Message:      message,
		Region:       region,
		HeaderColor:  headerColor,
		DashboardURL: fmt.Sprintf("%s/dashboard", svc.baseURL),
	}

	subject := fmt.Sprintf("Safety Alert: %s - SafeSteps", alertType)
	return svc.sendTemplateEmail(email, subject, "safety_alert", data)
}

func (svc *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	err := tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %v", err)
	}

	return svc.sendEmail(to, subject, body.String())
}

func (svc *EmailService) sendEmail(to, subject, body string) error {
	if svc.smtpHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.fromName, svc.fromEmail, to, subject, body))

	err := smtp.SendMail(
		svc.smtpHost+":"+svc.smtpPort,
		auth,
		svc.fromEmail,
		[]string{to},
		msg,
	)

	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent successfully")
	return nil
}

// SendPlainEmail sends a simple text notification.
func (svc *EmailService) SendPlainEmail(to, subject, body string) error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.fromName, svc.fromEmail, to, subject, body))

	err := smtp.SendMail(
		svc.smtpHost+":"+svc.smtpPort,
		auth,
		svc.fromEmail,
		[]string{to},
		msg,
	)

	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
