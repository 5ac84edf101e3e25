package auth

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer delivers the post-registration verification email. Failures are
// logged by the caller and never fail the registration itself.
type Mailer interface {
	SendVerification(ctx context.Context, toEmail, name string) error
}

type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (m *SESMailer) SendVerification(ctx context.Context, toEmail, name string) error {
	subject := "Verify your CareerConnect account"
	body := fmt.Sprintf("Hi %s,\n\nWelcome to CareerConnect. Your account %s is registered.\n", name, toEmail)
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      &m.from,
		Destination: &types.Destination{ToAddresses: []string{toEmail}},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body:    &types.Body{Text: &types.Content{Data: &body}},
		},
	})
	return err
}

// NopMailer is used when no mail region is configured.
type NopMailer struct{}

func (NopMailer) SendVerification(context.Context, string, string) error { return nil }
