package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"coparent/internal/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSender struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSMTPMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without host", func(t *testing.T) {
		m := NewSMTPMailer(config.MailConfig{Sender: "noreply@example.com"})
		assert.ErrorIs(t, m.Send(ctx, Email{To: []string{"a@example.com"}}), ErrDisabled)
	})

	t.Run("renders headers", func(t *testing.T) {
		fs := &fakeSender{}
		m := &SMTPMailer{dialer: fs, from: "noreply@example.com"}

		err := m.Send(ctx, Email{To: []string{"a@example.com", "b@example.com"}, Subject: "Reminder: Dentist", HTML: "<p>hi</p>"})
		require.NoError(t, err)
		require.Len(t, fs.sent, 1)

		assert.Equal(t, []string{"noreply@example.com"}, fs.sent[0].GetHeader("From"))
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, fs.sent[0].GetHeader("To"))
		assert.Equal(t, []string{"Reminder: Dentist"}, fs.sent[0].GetHeader("Subject"))

		var buf bytes.Buffer
		_, err = fs.sent[0].WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "<p>hi</p>")
	})

	t.Run("no recipients", func(t *testing.T) {
		m := &SMTPMailer{dialer: &fakeSender{}, from: "noreply@example.com"}
		assert.Error(t, m.Send(ctx, Email{Subject: "x"}))
	})

	t.Run("cancelled context", func(t *testing.T) {
		fs := &fakeSender{}
		m := &SMTPMailer{dialer: fs, from: "noreply@example.com"}
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, m.Send(cctx, Email{To: []string{"a@example.com"}}), context.Canceled)
		assert.Empty(t, fs.sent)
	})
}

type mockSNS struct {
	mock.Mock
}

func (m *mockSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	return &sns.PublishOutput{}, args.Error(0)
}

func (m *mockSNS) CreatePlatformEndpoint(ctx context.Context, in *sns.CreatePlatformEndpointInput, _ ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sns.CreatePlatformEndpointOutput), args.Error(1)
}

func (m *mockSNS) SetEndpointAttributes(ctx context.Context, in *sns.SetEndpointAttributesInput, _ ...func(*sns.Options)) (*sns.SetEndpointAttributesOutput, error) {
	args := m.Called(ctx, in)
	return &sns.SetEndpointAttributesOutput{}, args.Error(0)
}

func TestSNS_Disabled(t *testing.T) {
	s, err := NewSNS(context.Background(), config.SNSConfig{Enabled: false}, discard)
	require.NoError(t, err)

	assert.ErrorIs(t, s.SendSMS(context.Background(), "+15550100", "hi"), ErrDisabled)
	assert.ErrorIs(t, s.Push(context.Background(), "arn", Push{}), ErrDisabled)
	_, err = s.RegisterDevice(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestSNS_SendSMS(t *testing.T) {
	api := new(mockSNS)
	s := newSNS(api, config.SNSConfig{SMSPerSecond: 100}, discard)

	api.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return aws.ToString(in.PhoneNumber) == "+15550100" && aws.ToString(in.Message) == "Dentist at 09:30"
	})).Return(nil).Once()

	require.NoError(t, s.SendSMS(context.Background(), "+15550100", "Dentist at 09:30"))
	api.AssertExpectations(t)
}

func TestSNS_SendSMSRespectsContext(t *testing.T) {
	api := new(mockSNS)
	s := newSNS(api, config.SNSConfig{SMSPerSecond: 0.001}, discard)
	api.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, s.SendSMS(context.Background(), "+15550100", "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, s.SendSMS(ctx, "+15550100", "second"))
	api.AssertNumberOfCalls(t, "Publish", 1)
}

func TestSNS_Push(t *testing.T) {
	api := new(mockSNS)
	s := newSNS(api, config.SNSConfig{}, discard)

	var captured *sns.PublishInput
	api.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*sns.PublishInput)
	}).Return(nil)

	err := s.Push(context.Background(), "arn:aws:sns:us-east-1:1:endpoint/APNS/app/x", Push{
		Title:    "Schedule Updated",
		Subtitle: "Sam now has custody",
		Body:     "Alex changed the schedule for Friday, March 8.",
		Category: "CUSTODY_CHANGE",
		Data:     map[string]string{"type": "custody_change", "date": "2024-03-08"},
	})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "json", aws.ToString(captured.MessageStructure))

	var envelope map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(captured.Message)), &envelope))
	assert.Equal(t, "Alex changed the schedule for Friday, March 8.", envelope["default"])

	var apns map[string]any
	require.NoError(t, json.Unmarshal([]byte(envelope["APNS"]), &apns))
	assert.Equal(t, "custody_change", apns["type"])
	aps := apns["aps"].(map[string]any)
	assert.Equal(t, "CUSTODY_CHANGE", aps["category"])
	assert.Equal(t, "Sam now has custody", aps["alert"].(map[string]any)["subtitle"])
}

func TestSNS_RegisterDevice(t *testing.T) {
	cfg := config.SNSConfig{PlatformApplicationARN: "arn:aws:sns:us-east-1:1:app/APNS/calndr"}

	t.Run("new endpoint", func(t *testing.T) {
		api := new(mockSNS)
		api.On("CreatePlatformEndpoint", mock.Anything, mock.Anything).
			Return(&sns.CreatePlatformEndpointOutput{EndpointArn: aws.String("arn:aws:sns:us-east-1:1:endpoint/APNS/calndr/new")}, nil)

		arn, err := newSNS(api, cfg, discard).RegisterDevice(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:sns:us-east-1:1:endpoint/APNS/calndr/new", arn)
	})

	t.Run("existing endpoint is reused", func(t *testing.T) {
		api := new(mockSNS)
		existing := "arn:aws:sns:us-east-1:1:endpoint/APNS/calndr/old"
		api.On("CreatePlatformEndpoint", mock.Anything, mock.Anything).
			Return(nil, &types.InvalidParameterException{
				Message: aws.String("Invalid parameter: Token Reason: Endpoint " + existing + " already exists with the same Token, but different attributes."),
			})
		api.On("SetEndpointAttributes", mock.Anything, mock.MatchedBy(func(in *sns.SetEndpointAttributesInput) bool {
			return aws.ToString(in.EndpointArn) == existing && in.Attributes["Enabled"] == "true"
		})).Return(nil)

		arn, err := newSNS(api, cfg, discard).RegisterDevice(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, existing, arn)
		api.AssertExpectations(t)
	})

	t.Run("other failures surface", func(t *testing.T) {
		api := new(mockSNS)
		api.On("CreatePlatformEndpoint", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		_, err := newSNS(api, cfg, discard).RegisterDevice(context.Background(), "tok")
		assert.ErrorContains(t, err, "throttled")
	})
}

func TestChatClient_RegisterGroup(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		c := NewChatClient(config.ChatConfig{})
		assert.ErrorIs(t, c.RegisterGroup(context.Background(), ChatGroup{}), ErrDisabled)
	})

	t.Run("posts group", func(t *testing.T) {
		var got ChatGroup
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/groups", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		c := NewChatClient(config.ChatConfig{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: time.Second})
		g := ChatGroup{Identifier: "0123456789abcdef", FamilyID: "fam-1", ContactType: "babysitter", ContactID: 4}
		require.NoError(t, c.RegisterGroup(context.Background(), g))
		assert.Equal(t, g, got)
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewChatClient(config.ChatConfig{BaseURL: srv.URL, Timeout: time.Second})
		err := c.RegisterGroup(context.Background(), ChatGroup{Identifier: "x"})
		assert.ErrorContains(t, err, "status 401: bad key")
	})
}
