package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/set-night/tnguide/internal/config"
)

// BackendError describes a failed generation call. StatusCode is zero when
// the request never got an HTTP response.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

type OpenAIService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	return &OpenAIService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends one chat completion request and returns the first choice.
func (s *OpenAIService) Complete(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	chatReq := ChatRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return "", &BackendError{Message: fmt.Sprintf("marshal request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &BackendError{Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &BackendError{Message: fmt.Sprintf("chat request: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err)}
	}

	var chatResp ChatResponse
	decodeErr := json.Unmarshal(body, &chatResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && chatResp.Error != nil && chatResp.Error.Message != "" {
			msg = chatResp.Error.Message
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			msg = "authentication with the generation service failed: " + msg
		case http.StatusTooManyRequests:
			msg = "rate limited by the generation service: " + msg
		case http.StatusServiceUnavailable:
			msg = "generation service unavailable: " + msg
		}
		return "", &BackendError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return "", &BackendError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("parse response: %v", decodeErr)}
	}
	if chatResp.Error != nil {
		return "", &BackendError{StatusCode: resp.StatusCode, Message: chatResp.Error.Message}
	}
	if len(chatResp.Choices) == 0 {
		return "", &BackendError{StatusCode: resp.StatusCode, Message: "empty response from generation service"}
	}

	return chatResp.Choices[0].Message.Content, nil
}
