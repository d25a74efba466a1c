package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatCompleter struct {
	gotReq openai.ChatCompletionRequest
	resp   openai.ChatCompletionResponse
	err    error
}

func (f *fakeChatCompleter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = request
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return f.resp, nil
}

func newTestClient(fake *fakeChatCompleter) *OpenAIClient {
	return &OpenAIClient{client: fake, model: "gpt-4o-mini", timeout: time.Second}
}

func TestOpenAICompleteOrdersSystemMessagesFirst(t *testing.T) {
	fake := &fakeChatCompleter{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  hello there  "}},
			},
		},
	}
	client := newTestClient(fake)

	resp, err := client.Complete(context.Background(), Request{
		System:      []string{"persona", "instruction"},
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		Temperature: 0.6,
		MaxTokens:   400,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Text)

	require.Len(t, fake.gotReq.Messages, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.gotReq.Messages[0].Role)
	assert.Equal(t, "persona", fake.gotReq.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.gotReq.Messages[1].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, fake.gotReq.Messages[2].Role)
	assert.Equal(t, 400, fake.gotReq.MaxTokens)
	assert.Nil(t, fake.gotReq.ResponseFormat)
}

func TestOpenAICompleteForceJSON(t *testing.T) {
	fake := &fakeChatCompleter{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: `{"ok":true}`}},
			},
		},
	}
	client := newTestClient(fake)

	_, err := client.Complete(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "json please"}},
		ForceJSON: true,
	})
	require.NoError(t, err)
	require.NotNil(t, fake.gotReq.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, fake.gotReq.ResponseFormat.Type)
}

func TestOpenAICompleteErrors(t *testing.T) {
	t.Run("provider error is wrapped", func(t *testing.T) {
		fake := &fakeChatCompleter{err: errors.New("boom")}
		client := newTestClient(fake)

		_, err := client.Complete(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "hi"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "openai completion failed")
	})

	t.Run("no choices", func(t *testing.T) {
		fake := &fakeChatCompleter{resp: openai.ChatCompletionResponse{}}
		client := newTestClient(fake)

		_, err := client.Complete(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "hi"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient(OpenAIConfig{})
	require.Error(t, err)
}
