package service

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"stickermissions/internal/models"
	"stickermissions/internal/validation"
)

// sesSender is the part of the SES client the mailer uses
type sesSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService mails the parent a report for every archived month via Amazon SES.
// It implements MonthlyReporter.
type EmailService struct {
	client    sesSender
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
	debug     bool
}

// NewEmailService creates a new email service. It is disabled when either the
// sender or the parent address is missing.
func NewEmailService(awsRegion, fromEmail, fromName, parentEmail string, debug bool) (*EmailService, error) {
	if fromEmail == "" || parentEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or PARENT_EMAIL not configured")
		if debug {
			log.Println("[DEBUG] Email service will skip sending all monthly reports")
		}
		return &EmailService{enabled: false, debug: debug}, nil
	}
	if err := validation.ValidateEmail(parentEmail); err != nil {
		return nil, fmt.Errorf("invalid parent email: %w", err)
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service with AWS SES")
		log.Printf("[DEBUG] AWS Region: %s", awsRegion)
		log.Printf("[DEBUG] From Email: %s", fromEmail)
		log.Printf("[DEBUG] Parent Email: %s", parentEmail)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   parentEmail,
		enabled:   true,
		debug:     debug,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendMonthlyReport mails the parent a summary of an archived month
func (s *EmailService) SendMonthlyReport(ctx context.Context, childName string, entry models.ArchiveEntry, missionCounts map[string]int) error {
	if !s.enabled {
		if s.debug {
			log.Printf("[DEBUG] Email service is disabled, skipping report for %s", entry.MonthID)
		}
		return nil
	}

	subject, htmlBody, textBody := buildMonthlyReport(childName, entry, missionCounts)
	return s.sendEmail(ctx, subject, htmlBody, textBody)
}

func buildMonthlyReport(childName string, entry models.ArchiveEntry, missionCounts map[string]int) (subject, htmlBody, textBody string) {
	name := strings.TrimSpace(childName)
	if name == "" {
		name = "Your child"
	}

	titles := make([]string, 0, len(missionCounts))
	for title := range missionCounts {
		titles = append(titles, title)
	}
	sort.Slice(titles, func(i, j int) bool {
		if missionCounts[titles[i]] != missionCounts[titles[j]] {
			return missionCounts[titles[i]] > missionCounts[titles[j]]
		}
		return titles[i] < titles[j]
	})

	subject = fmt.Sprintf("%s's sticker report for %s", name, entry.MonthID)

	var text, rows strings.Builder
	fmt.Fprintf(&text, "%s collected %d stickers in %s.\n\n", name, entry.TotalStickers, entry.MonthID)
	if len(titles) > 0 {
		text.WriteString("Missions completed:\n")
	}
	for _, title := range titles {
		fmt.Fprintf(&text, "- %s: %d\n", title, missionCounts[title])
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td></tr>", html.EscapeString(title), missionCounts[title])
	}
	text.WriteString("\n---\nThis is an automated email from Sticker Missions. Please do not reply.\n")

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h1>%s</h1>
	<p>%s collected <strong>%d</strong> stickers in %s.</p>
	<table>%s</table>
	<p style="font-size: 12px; color: #666;">This is an automated email from Sticker Missions. Please do not reply.</p>
</body>
</html>
`, html.EscapeString(subject), html.EscapeString(name), entry.TotalStickers, entry.MonthID, rows.String())

	return subject, htmlBody, text.String()
}

// sendEmail sends an email to the parent using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] Sending email: from=%s, to=%s, subject=%s", fromAddress, s.toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", s.toEmail, err)
	}

	if s.debug && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", s.toEmail, subject)
	return nil
}
