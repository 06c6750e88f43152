package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNoProvider(t *testing.T) {
	svc := NewChatService("", "")
	_, err := svc.Generate("hello")
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestGenerateViaGemini(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]string{{"text": "Spend less on takeout."}},
				}},
			},
		})
	}))
	defer srv.Close()

	svc := NewChatService("test-key", "")
	svc.geminiBase = srv.URL

	reply, err := svc.Generate("how do I save?")
	require.NoError(t, err)
	assert.Equal(t, "Spend less on takeout.", reply)
}

func TestGenerateViaOpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer oai-key", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Track every expense."}},
			},
		})
	}))
	defer srv.Close()

	svc := NewChatService("", "oai-key")
	svc.openaiBase = srv.URL

	reply, err := svc.Generate("tips?")
	require.NoError(t, err)
	assert.Equal(t, "Track every expense.", reply)
}

func TestGenerateQuotaErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewChatService("test-key", "")
	svc.geminiBase = srv.URL

	_, err := svc.Generate("hello")
	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, http.StatusTooManyRequests, provErr.StatusCode)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	svc := NewChatService("test-key", "")
	svc.geminiBase = srv.URL

	_, err := svc.Generate("hello")
	assert.Error(t, err)
}
