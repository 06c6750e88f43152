package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNoProvider means no AI API key is configured at all; the chat
// usecase answers with its offline template instead.
var ErrNoProvider = errors.New("no chat provider configured")

// ProviderError carries the upstream HTTP status so the usecase can
// pick a matching user-facing message (quota, bad key, missing model).
type ProviderError struct {
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("chat provider returned %d", e.StatusCode)
}

// ChatService forwards a finished prompt to one configured text
// generation provider, Gemini first, then OpenAI.
type ChatService struct {
	GeminiKey string
	OpenAIKey string

	geminiBase string
	openaiBase string
	client     *http.Client
}

func NewChatService(geminiKey, openaiKey string) *ChatService {
	return &ChatService{
		GeminiKey:  geminiKey,
		OpenAIKey:  openaiKey,
		geminiBase: "https://generativelanguage.googleapis.com",
		openaiBase: "https://api.openai.com",
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Generate returns the provider's reply for the prompt, or ErrNoProvider
// when no key is configured.
func (s *ChatService) Generate(prompt string) (string, error) {
	if s.GeminiKey != "" {
		return s.askGemini(prompt)
	}
	if s.OpenAIKey != "" {
		return s.askOpenAI(prompt)
	}
	return "", ErrNoProvider
}

func (s *ChatService) askGemini(prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	body, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/v1beta/models/gemini-1.5-flash:generateContent?key=%s", s.geminiBase, s.GeminiKey)
	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{StatusCode: resp.StatusCode}
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (s *ChatService) askOpenAI(prompt string) (string, error) {
	payload := map[string]any{
		"model": "gpt-3.5-turbo",
		"messages": []map[string]string{
			{"role": "system", "content": "You are a helpful finance buddy."},
			{"role": "user", "content": prompt},
		},
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, s.openaiBase+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.OpenAIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{StatusCode: resp.StatusCode}
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty openai response")
	}
	return out.Choices[0].Message.Content, nil
}
