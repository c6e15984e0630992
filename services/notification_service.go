package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"dental-chatbot-backend/models"
)

const sendEmailTimeout = 10 * time.Second

// SESAPI is the subset of the SES client the notifier uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// EmailNotifier sends appointment confirmations through Amazon SES.
type EmailNotifier struct {
	client   SESAPI
	from     string
	fromName string
}

func NewEmailNotifier(client SESAPI, from, fromName string) *EmailNotifier {
	return &EmailNotifier{client: client, from: from, fromName: fromName}
}

// NewSESNotifier loads the default AWS credential chain for region.
func NewSESNotifier(ctx context.Context, region, from, fromName string) (*EmailNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewEmailNotifier(ses.NewFromConfig(cfg), from, fromName), nil
}

func (n *EmailNotifier) SendConfirmation(ctx context.Context, appt *models.Appointment, message string) error {
	ctx, cancel := context.WithTimeout(ctx, sendEmailTimeout)
	defer cancel()

	source := n.from
	if n.fromName != "" {
		source = fmt.Sprintf("%s <%s>", n.fromName, n.from)
	}

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{appt.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(fmt.Sprintf("Your appointment with %s on %s", appt.Dentist, formatDisplayDate(appt.Date))),
			},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(message)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}
