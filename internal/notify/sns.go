package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"golang.org/x/time/rate"

	"coparent/internal/config"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	CreatePlatformEndpoint(ctx context.Context, params *sns.CreatePlatformEndpointInput, optFns ...func(*sns.Options)) (*sns.CreatePlatformEndpointOutput, error)
	SetEndpointAttributes(ctx context.Context, params *sns.SetEndpointAttributesInput, optFns ...func(*sns.Options)) (*sns.SetEndpointAttributesOutput, error)
}

// SNS implements Messenger on Amazon SNS. SMS publishes share one rate limiter.
type SNS struct {
	client      snsAPI
	platformARN string
	limiter     *rate.Limiter
	log         *slog.Logger
}

// NewSNS builds the client from the default AWS credential chain. A disabled
// config yields a Messenger whose calls return ErrDisabled.
func NewSNS(ctx context.Context, cfg config.SNSConfig, log *slog.Logger) (*SNS, error) {
	if !cfg.Enabled {
		log.Info("sns disabled")
		return &SNS{log: log}, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSNS(sns.NewFromConfig(awsCfg), cfg, log), nil
}

func newSNS(client snsAPI, cfg config.SNSConfig, log *slog.Logger) *SNS {
	perSecond := cfg.SMSPerSecond
	if perSecond <= 0 {
		perSecond = 1
	}
	return &SNS{
		client:      client,
		platformARN: cfg.PlatformApplicationARN,
		limiter:     rate.NewLimiter(rate.Limit(perSecond), 1),
		log:         log,
	}
}

func (s *SNS) SendSMS(ctx context.Context, phone, text string) error {
	if s.client == nil {
		return ErrDisabled
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(text),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish sms: %w", err)
	}
	return nil
}

func (s *SNS) Push(ctx context.Context, endpointARN string, p Push) error {
	if s.client == nil {
		return ErrDisabled
	}
	msg, err := apnsMessage(p)
	if err != nil {
		return err
	}
	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TargetArn:        aws.String(endpointARN),
		Message:          aws.String(msg),
		MessageStructure: aws.String("json"),
	})
	if err != nil {
		return fmt.Errorf("publish push: %w", err)
	}
	return nil
}

// apnsMessage renders the SNS json envelope. The generic APNS key covers
// sandbox and production endpoints alike.
func apnsMessage(p Push) (string, error) {
	payload := map[string]any{
		"aps": map[string]any{
			"alert": map[string]string{
				"title":    p.Title,
				"subtitle": p.Subtitle,
				"body":     p.Body,
			},
			"sound":    "default",
			"badge":    1,
			"category": p.Category,
		},
	}
	for k, v := range p.Data {
		payload[k] = v
	}
	apns, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode apns payload: %w", err)
	}
	envelope, err := json.Marshal(map[string]string{
		"default": p.Body,
		"APNS":    string(apns),
	})
	if err != nil {
		return "", fmt.Errorf("encode sns message: %w", err)
	}
	return string(envelope), nil
}

var endpointARNPattern = regexp.MustCompile(`arn:aws:sns:\S+`)

// RegisterDevice creates a platform endpoint for the token. When SNS reports
// the token is already registered, the existing endpoint is re-enabled and reused.
func (s *SNS) RegisterDevice(ctx context.Context, token string) (string, error) {
	if s.client == nil || s.platformARN == "" {
		return "", ErrDisabled
	}

	out, err := s.client.CreatePlatformEndpoint(ctx, &sns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(s.platformARN),
		Token:                  aws.String(token),
	})
	if err == nil {
		return aws.ToString(out.EndpointArn), nil
	}

	var invalid *types.InvalidParameterException
	if !errors.As(err, &invalid) {
		return "", fmt.Errorf("create platform endpoint: %w", err)
	}
	arn := endpointARNPattern.FindString(invalid.ErrorMessage())
	if arn == "" {
		return "", fmt.Errorf("create platform endpoint: %w", err)
	}

	s.log.Info("sns endpoint exists, re-enabling", slog.String("endpoint_arn", arn))
	_, err = s.client.SetEndpointAttributes(ctx, &sns.SetEndpointAttributesInput{
		EndpointArn: aws.String(arn),
		Attributes: map[string]string{
			"Token":   token,
			"Enabled": "true",
		},
	})
	if err != nil {
		return "", fmt.Errorf("update platform endpoint: %w", err)
	}
	return arn, nil
}
