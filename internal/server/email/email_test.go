package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPasswordReset(t *testing.T) {
	t.Parallel()

	msg, err := RenderPasswordReset("a@x.com", "https://example.com", "tok-123", 20*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, passwordResetSubject, msg.Subject)
	assert.Contains(t, msg.HTML, "https://example.com/reset-password/tok-123")
	assert.Contains(t, msg.HTML, "20 minutes")
}

func TestRenderPasswordReset_TrailingSlashBase(t *testing.T) {
	t.Parallel()

	msg, err := RenderPasswordReset("a@x.com", "https://example.com/", "tok", 20*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "https://example.com/reset-password/tok")
	assert.NotContains(t, msg.HTML, "com//reset-password")
}

func TestRenderPasswordReset_EscapesRecipient(t *testing.T) {
	t.Parallel()

	msg, err := RenderPasswordReset("<script>@x.com", "https://example.com", "tok", time.Minute)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>@x.com")
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{}, nil
}

func TestSESSender_Send(t *testing.T) {
	t.Parallel()

	fake := &fakeSES{}
	s := NewSESSender(fake, "identity@example.com")

	err := s.Send(context.Background(), Message{To: "a@x.com", Subject: "subj", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "identity@example.com", *fake.input.FromEmailAddress)
	assert.Equal(t, []string{"a@x.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "subj", *fake.input.Content.Simple.Subject.Data)
	assert.Equal(t, "<p>hi</p>", *fake.input.Content.Simple.Body.Html.Data)
}

func TestSESSender_SendError(t *testing.T) {
	t.Parallel()

	s := NewSESSender(&fakeSES{err: errors.New("rejected")}, "identity@example.com")
	assert.Error(t, s.Send(context.Background(), Message{To: "a@x.com"}))
}

func TestMemorySender_Records(t *testing.T) {
	t.Parallel()

	s := NewMemorySender()
	require.NoError(t, s.Send(context.Background(), Message{To: "a@x.com", Subject: "one"}))
	require.NoError(t, s.Send(context.Background(), Message{To: "b@x.com", Subject: "two"}))

	sent := s.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@x.com", sent[0].To)
	assert.Equal(t, "two", sent[1].Subject)
}
