package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	config "github.com/NordCoder/Expirus/internal/config/notifier"
	"github.com/NordCoder/Expirus/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	in  *ses.SendEmailInput
	err error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_BuildsInput(t *testing.T) {
	api := &fakeSES{}
	m := NewSESMailerWithAPI(api, config.Mail{From: "noreply@expirus.dev", SubjPrefix: "[Expirus]"})

	err := m.Deliver(context.Background(), "user@example.com", notification.Message{Subject: "Reminder", Body: "text"})
	require.NoError(t, err)

	require.NotNil(t, api.in)
	assert.Equal(t, "noreply@expirus.dev", aws.ToString(api.in.Source))
	assert.Equal(t, []string{"user@example.com"}, api.in.Destination.ToAddresses)
	assert.Equal(t, "[Expirus] Reminder", aws.ToString(api.in.Message.Subject.Data))
	assert.Equal(t, "text", aws.ToString(api.in.Message.Body.Text.Data))
}

func TestSESMailer_APIError(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	m := NewSESMailerWithAPI(api, config.Mail{From: "noreply@expirus.dev"})

	err := m.Deliver(context.Background(), "user@example.com", notification.Message{Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ses send: throttled")
}
