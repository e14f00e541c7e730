package azure

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewOpenAIClient(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		endpoint   string
		apiKey     string
		deployment string
		wantErr    bool
	}{
		{"valid configuration", "https://test.openai.azure.com/", "test-key", "gpt-4o", false},
		{"missing endpoint", "", "test-key", "gpt-4o", true},
		{"missing api key", "https://test.openai.azure.com/", "", "gpt-4o", true},
		{"missing deployment", "https://test.openai.azure.com/", "test-key", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewOpenAIClient(tt.endpoint, tt.apiKey, tt.deployment, logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.deployment, client.deployment)
			assert.Equal(t, 3, client.maxRetries)
			assert.Equal(t, time.Second, client.baseDelay)
		})
	}
}

func TestOpenAIClient_isRetryable(t *testing.T) {
	client := &OpenAIClient{logger: zap.NewNop(), maxRetries: 3, baseDelay: time.Second}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"authentication error", errors.New("authentication failed"), false},
		{"unauthorized error", errors.New("unauthorized access"), false},
		{"401 error", errors.New("status code 401"), false},
		{"invalid request error", errors.New("invalid request format"), false},
		{"bad request error", errors.New("bad request"), false},
		{"400 error", errors.New("status code 400"), false},
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), false},
		{"rate limit error", errors.New("rate limit exceeded"), true},
		{"timeout error", errors.New("request timeout"), true},
		{"network error", errors.New("network connection failed"), true},
		{"500 error", errors.New("status code 500"), true},
		{"api 429", &openai.Error{StatusCode: 429}, true},
		{"api 503", &openai.Error{StatusCode: 503}, true},
		{"api 404", &openai.Error{StatusCode: 404}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.isRetryable(context.Background(), tt.err))
		})
	}
}

func TestOpenAIClient_isRetryable_CancelledContext(t *testing.T) {
	client := &OpenAIClient{logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, client.isRetryable(ctx, errors.New("network connection failed")))
}

func TestOpenAIClient_Complete_EmptyMessages(t *testing.T) {
	client, err := NewOpenAIClient("https://test.openai.azure.com/", "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []openai.ChatCompletionMessageParamUnion{})
	assert.ErrorContains(t, err, "at least one message")
}

func TestOpenAIClient_Complete_ContextCancellation(t *testing.T) {
	client, err := NewOpenAIClient("https://test.openai.azure.com/", "test-key", "gpt-4o", zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.CompleteJSON(ctx, "extract symptoms", "my head hurts")
	assert.Error(t, err)
}
