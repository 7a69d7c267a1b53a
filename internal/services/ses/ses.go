// Package ses provides email notification services via AWS SES.
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"scheme-recommendation-engine/internal/models"
	"scheme-recommendation-engine/internal/utils"
)

// Service handles SES email operations.
type Service struct {
	client    *ses.Client
	fromEmail string
}

// EmailParams represents parameters for sending an email.
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// NotificationParams contains data for a recommendation email.
type NotificationParams struct {
	UserName  string
	UserEmail string
	Schemes   []models.ScoredRecord
}

// SendEmailResult contains the result of sending an email.
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service sending from the given address.
func NewService(ctx context.Context, fromEmail string) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:    ses.NewFromConfig(cfg),
		fromEmail: fromEmail,
	}, nil
}

// SendEmail sends a basic email.
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}

	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		utils.GetLogger().Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	utils.GetLogger().Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", *result.MessageId),
	)

	return &SendEmailResult{
		MessageID: *result.MessageId,
		SentAt:    time.Now(),
	}, nil
}

// SendRecommendationNotification emails a user their top scheme matches.
func (s *Service) SendRecommendationNotification(ctx context.Context, params NotificationParams) (*SendEmailResult, error) {
	htmlBody, err := renderNotificationHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("%s, we found %d government schemes for you", params.UserName, len(params.Schemes))

	return s.SendEmail(ctx, EmailParams{
		To:       params.UserEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: renderNotificationText(params),
	})
}

var notificationTemplate = template.Must(template.New("scheme_notification").Parse(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Hi {{.UserName}},</h2>
  <p>Based on your profile we found {{len .Schemes}} schemes you may be eligible for:</p>
  {{range .Schemes}}
  <div style="border: 1px solid #ddd; border-radius: 8px; padding: 14px; margin: 10px 0;">
    <h3 style="margin: 0 0 6px 0;">{{.DisplayName}}</h3>
    <p style="color: #666; margin: 0 0 6px 0;">{{.CategoryTag}} &middot; {{.LevelTag}}{{if .StateTag}} &middot; {{.StateTag}}{{end}}</p>
    <p style="margin: 0 0 6px 0;">{{.Description}}</p>
    {{if .EligibilityText}}<p style="margin: 0 0 6px 0;"><b>Eligibility:</b> {{.EligibilityText}}</p>{{end}}
    {{if .BenefitsText}}<p style="margin: 0;"><b>Benefits:</b> {{.BenefitsText}}</p>{{end}}
  </div>
  {{end}}
  <p style="color: #999; font-size: 12px;">You received this because you saved your details with SchemeSarthi.</p>
</body>
</html>`))

// renderNotificationHTML renders the HTML email body.
func renderNotificationHTML(params NotificationParams) (string, error) {
	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderNotificationText renders the plain text fallback.
func renderNotificationText(params NotificationParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Hi %s,\n\n", params.UserName))
	buf.WriteString(fmt.Sprintf("We found %d government schemes matching your profile:\n\n", len(params.Schemes)))

	for i, rec := range params.Schemes {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec.DisplayName))
		buf.WriteString(fmt.Sprintf("   %s\n", rec.Description))
		if rec.EligibilityText != "" {
			buf.WriteString(fmt.Sprintf("   Eligibility: %s\n", rec.EligibilityText))
		}
		if rec.BenefitsText != "" {
			buf.WriteString(fmt.Sprintf("   Benefits: %s\n", rec.BenefitsText))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("Best regards,\nSchemeSarthi\n")

	return buf.String()
}
