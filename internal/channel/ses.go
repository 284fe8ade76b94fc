package channel

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"github.com/NordCoder/Expirus/internal/domain/notification"
	"go.uber.org/zap"
)

type SESAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer uses Amazon SES as the mail relay. Credentials come from the default AWS chain.
type SESMailer struct {
	api        SESAPI
	from       string
	subjPrefix string

	log *zap.Logger
}

func NewSESMailer(ctx context.Context, cfg config.SES, mail config.Mail) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSESMailerWithAPI(ses.NewFromConfig(awsCfg), mail), nil
}

func NewSESMailerWithAPI(api SESAPI, mail config.Mail) *SESMailer {
	return &SESMailer{
		api:        api,
		from:       mail.From,
		subjPrefix: mail.SubjPrefix,
		log:        zap.L().With(zap.String("component", "channel.ses")),
	}
}

func (m *SESMailer) WithLogger(l *zap.Logger) *SESMailer {
	if l == nil {
		return m
	}
	cp := *m
	cp.log = l.With(zap.String("component", "channel.ses"))
	return &cp
}

func (m *SESMailer) Deliver(ctx context.Context, to string, msg notification.Message) error {
	if to == "" {
		return ErrNoRecipient
	}
	subj := strings.TrimSpace(m.subjPrefix + " " + msg.Subject)
	out, err := m.api.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.from),
		Destination: &sestypes.Destination{ToAddresses: []string{to}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subj), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	m.log.Debug("email accepted by ses", zap.String("to", to), zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}
