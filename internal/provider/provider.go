// Package provider talks to the hosted language models that write Sousie's
// replies. Every backend is reduced to ChatClient so the chat service never
// knows which one is configured.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    Role   `json:"role" binding:"required,oneof=system user assistant"`
	Content string `json:"content" binding:"required"`
}

// Request is a single completion request.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// ChatClient returns the model's reply text for a conversation.
type ChatClient interface {
	Complete(ctx context.Context, req Request) (string, error)
}

var (
	// ErrEmptyReply means the provider answered without any content.
	ErrEmptyReply = errors.New("no content from model")
	// ErrRejected marks provider errors that retrying cannot fix.
	ErrRejected = errors.New("request rejected by provider")
)

// Provider names a supported backend.
type Provider string

const (
	Groq     Provider = "groq"
	OpenAI   Provider = "openai"
	DeepSeek Provider = "deepseek"
	Gemini   Provider = "gemini"
)

// Settings selects and configures a backend.
type Settings struct {
	Provider   Provider
	Model      string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	// MaxRetries counts retries after the first attempt.
	MaxRetries uint
}

var defaults = map[Provider]struct {
	baseURL string
	model   string
}{
	Groq:     {baseURL: "https://api.groq.com/openai/v1/", model: "llama3-70b-8192"},
	OpenAI:   {baseURL: "https://api.openai.com/v1/", model: "gpt-3.5-turbo"},
	DeepSeek: {baseURL: "https://api.deepseek.com/v1/", model: "deepseek-chat"},
	Gemini:   {model: "gemini-2.5-flash"},
}

// New builds the configured client wrapped with retries.
func New(ctx context.Context, s Settings, log logrus.FieldLogger) (ChatClient, error) {
	p := Provider(strings.ToLower(string(s.Provider)))
	if p == "" {
		p = Groq
	}
	d, ok := defaults[p]
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider %q", s.Provider)
	}
	if s.APIKey == "" {
		return nil, fmt.Errorf("API key for provider %s is not set", p)
	}
	model := s.Model
	if model == "" {
		model = d.model
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = d.baseURL
	}

	var client ChatClient
	if p == Gemini {
		gc, err := NewGeminiClient(ctx, s.APIKey, model, s.BaseURL)
		if err != nil {
			return nil, err
		}
		client = gc
	} else {
		client = NewOpenAIClient(s.APIKey, baseURL, model)
	}

	log.WithFields(logrus.Fields{
		"provider": p,
		"model":    model,
	}).Info("LLM provider configured")

	return WithRetry(client, s.MaxRetries, s.Timeout, log), nil
}
