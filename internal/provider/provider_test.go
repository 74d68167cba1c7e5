package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func completionServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if seen != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

const okCompletion = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "llama3-70b-8192",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Try a stew."}, "finish_reason": "stop"}]
}`

func TestOpenAIClient(t *testing.T) {
	t.Run("should return the first choice", func(t *testing.T) {
		var seen map[string]any
		ts := completionServer(t, http.StatusOK, okCompletion, &seen)

		c := NewOpenAIClient("test-key", ts.URL, "llama3-70b-8192")
		reply, err := c.Complete(context.Background(), Request{
			System: "You are Sousie.",
			Messages: []Message{
				{Role: RoleUser, Content: "hello"},
				{Role: RoleAssistant, Content: "hi"},
				{Role: RoleUser, Content: "dinner?"},
			},
			Temperature: 0.7,
		})
		require.NoError(t, err)
		assert.Equal(t, "Try a stew.", reply)

		assert.Equal(t, "llama3-70b-8192", seen["model"])
		msgs, ok := seen["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 4)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "assistant", msgs[2].(map[string]any)["role"])
	})

	t.Run("should report an empty reply", func(t *testing.T) {
		ts := completionServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`, nil)

		c := NewOpenAIClient("test-key", ts.URL, "m")
		_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		assert.ErrorIs(t, err, ErrEmptyReply)
	})

	t.Run("should mark client errors as rejected", func(t *testing.T) {
		ts := completionServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, nil)

		c := NewOpenAIClient("test-key", ts.URL, "m")
		_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		assert.ErrorIs(t, err, ErrRejected)
	})

	t.Run("should leave server errors retryable", func(t *testing.T) {
		ts := completionServer(t, http.StatusBadGateway, `{"error":{"message":"upstream"}}`, nil)

		c := NewOpenAIClient("test-key", ts.URL, "m")
		_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrRejected)
	})
}

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(ctx context.Context, req Request) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok", nil
}

func TestWithRetry(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("should retry transient failures", func(t *testing.T) {
		next := &scriptedClient{errs: []error{errors.New("timeout"), errors.New("timeout"), errors.New("timeout")}}
		c := WithRetry(next, 3, time.Second, log)

		reply, err := c.Complete(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, "ok", reply)
		assert.Equal(t, 4, next.calls)
	})

	t.Run("should retry max retries times after the first attempt", func(t *testing.T) {
		next := &scriptedClient{errs: []error{errors.New("a"), errors.New("b"), errors.New("c"), errors.New("d")}}
		c := WithRetry(next, 2, 0, log)

		_, err := c.Complete(context.Background(), Request{})
		require.Error(t, err)
		assert.Equal(t, 3, next.calls)
	})

	t.Run("should try once without retries", func(t *testing.T) {
		next := &scriptedClient{errs: []error{errors.New("a"), errors.New("b")}}
		c := WithRetry(next, 0, 0, log)

		_, err := c.Complete(context.Background(), Request{})
		require.Error(t, err)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("should not retry rejected requests", func(t *testing.T) {
		next := &scriptedClient{errs: []error{ErrRejected}}
		c := WithRetry(next, 5, 0, log)

		_, err := c.Complete(context.Background(), Request{})
		assert.ErrorIs(t, err, ErrRejected)
		assert.Equal(t, 1, next.calls)
	})
}

func TestNew(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	t.Run("should reject unknown providers", func(t *testing.T) {
		_, err := New(context.Background(), Settings{Provider: "llamafarm", APIKey: "k"}, log)
		assert.Error(t, err)
	})

	t.Run("should require an API key", func(t *testing.T) {
		_, err := New(context.Background(), Settings{Provider: Groq}, log)
		assert.Error(t, err)
	})

	t.Run("should build an OpenAI compatible client", func(t *testing.T) {
		ts := completionServer(t, http.StatusOK, okCompletion, nil)

		c, err := New(context.Background(), Settings{Provider: "DeepSeek", APIKey: "test-key", BaseURL: ts.URL, MaxRetries: 1}, log)
		require.NoError(t, err)
		reply, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
		require.NoError(t, err)
		assert.Equal(t, "Try a stew.", reply)
	})
}

func TestGeminiContents(t *testing.T) {
	system, contents := geminiContents(Request{
		System: "base",
		Messages: []Message{
			{Role: RoleSystem, Content: "extra"},
			{Role: RoleUser, Content: "hello"},
			{Role: RoleAssistant, Content: "hi"},
		},
	})
	assert.Equal(t, "base\n\nextra", system)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", string(contents[0].Role))
	assert.Equal(t, "model", string(contents[1].Role))
}

func TestGeminiError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		rejected bool
	}{
		{"bad API key", genai.APIError{Code: http.StatusBadRequest, Message: "API key not valid"}, true},
		{"forbidden pointer", &genai.APIError{Code: http.StatusForbidden}, true},
		{"rate limited", genai.APIError{Code: http.StatusTooManyRequests}, false},
		{"request timeout", genai.APIError{Code: http.StatusRequestTimeout}, false},
		{"server error", genai.APIError{Code: http.StatusServiceUnavailable}, false},
		{"transport error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := geminiError(tt.err)
			assert.Equal(t, tt.rejected, errors.Is(err, ErrRejected))
		})
	}

	t.Run("should not retry a rejected Gemini call", func(t *testing.T) {
		log, _ := test.NewNullLogger()
		next := &scriptedClient{errs: []error{geminiError(genai.APIError{Code: http.StatusUnauthorized})}}
		c := WithRetry(next, 3, 0, log)

		_, err := c.Complete(context.Background(), Request{})
		assert.ErrorIs(t, err, ErrRejected)
		assert.Equal(t, 1, next.calls)
	})
}
