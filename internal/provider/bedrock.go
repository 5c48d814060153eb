package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
)

const anthropicVersion = "bedrock-2023-05-31"

// BedrockRunner calls the AWS Bedrock runtime with the anthropic messages
// body. Retries are handled here rather than by the SDK so the attempt
// budget is exact and auth failures are never retried.
type BedrockRunner struct {
	client         *bedrockruntime.Client
	modelID        string
	profileARN     string
	profileID      string
	attemptTimeout time.Duration
	maxAttempts    int
}

type BedrockOptions struct {
	Region              string
	ModelID             string
	InferenceProfileARN string
	InferenceProfileID  string
	AttemptTimeout      time.Duration
	MaxAttempts         int
}

func NewBedrockRunner(ctx context.Context, opts BedrockOptions) (*BedrockRunner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	timeout := opts.AttemptTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 3
	}

	return &BedrockRunner{
		client:         bedrockruntime.NewFromConfig(cfg),
		modelID:        opts.ModelID,
		profileARN:     opts.InferenceProfileARN,
		profileID:      opts.InferenceProfileID,
		attemptTimeout: timeout,
		maxAttempts:    attempts,
	}, nil
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicBody struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

func (b *BedrockRunner) Analyze(ctx context.Context, req Request) (string, error) {
	return Retry(ctx, b.maxAttempts, func(ctx context.Context) (string, error) {
		return b.invoke(ctx, req)
	})
}

func (b *BedrockRunner) Ping(ctx context.Context) error {
	_, err := b.invoke(ctx, Request{
		Prompt:    "Reply with the single word OK.",
		ModelID:   b.modelID,
		MaxTokens: 16,
	})
	return err
}

func (b *BedrockRunner) invoke(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(anthropicBody{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        req.MaxTokens,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: []anthropicContent{{Type: "text", Text: req.Prompt}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.attemptTimeout)
	defer cancel()

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.targetModel(req)),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", classify(err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", &TransportError{Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if len(resp.Content) == 0 {
		return "", &TransportError{Err: fmt.Errorf("response contained no content blocks")}
	}
	return resp.Content[0].Text, nil
}

func (b *BedrockRunner) targetModel(req Request) string {
	if b.profileARN != "" {
		return b.profileARN
	}
	if b.profileID != "" {
		return b.profileID
	}
	return req.ModelID
}

// authErrorCodes are API error codes that mean the credentials, not the
// network, are the problem.
var authErrorCodes = map[string]struct{}{
	"UnrecognizedClientException":   {},
	"AccessDeniedException":         {},
	"ExpiredTokenException":         {},
	"InvalidSignatureException":     {},
	"IncompleteSignatureException":  {},
	"MissingAuthenticationTokenException": {},
}

func classify(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, auth := authErrorCodes[apiErr.ErrorCode()]; auth {
			return &AuthError{Err: err}
		}
	}
	return &TransportError{Err: err}
}
