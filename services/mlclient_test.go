package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictNextMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict_next_month", r.URL.Path)

		var req map[string][]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []float64{1000, 1200, 900}, req["monthly_totals"])

		json.NewEncoder(w).Encode(map[string]float64{"predicted_expense": 1050.5})
	}))
	defer srv.Close()

	client := NewMLClient(srv.URL)
	got, err := client.PredictNextMonth([]float64{1000, 1200, 900})
	require.NoError(t, err)
	assert.Equal(t, 1050.5, got)
}

func TestPredictCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict_category", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"category": "Food"})
	}))
	defer srv.Close()

	client := NewMLClient(srv.URL)
	got, err := client.PredictCategory("swiggy dinner")
	require.NoError(t, err)
	assert.Equal(t, "Food", got)
}

func TestAnalyzeBehavior(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"behavior":   "Impulsive Spender",
			"tags":       []string{"foodie"},
			"stable_p":   40.0,
			"variable_p": 60.0,
		})
	}))
	defer srv.Close()

	client := NewMLClient(srv.URL)
	got, err := client.AnalyzeBehavior(map[string]float64{"Food": 60, "Bills": 40})
	require.NoError(t, err)
	assert.Equal(t, "Impulsive Spender", got.Behavior)
	assert.Equal(t, []string{"foodie"}, got.Tags)
	assert.Equal(t, 40.0, got.StableP)
	assert.Equal(t, 60.0, got.VariableP)
}

func TestMLClientNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewMLClient(srv.URL)
	_, err := client.PredictNextMonth([]float64{100})
	assert.Error(t, err)
}

func TestMLClientUnreachableIsError(t *testing.T) {
	client := NewMLClient("http://127.0.0.1:1")
	_, err := client.PredictPrice([]float64{10, 20})
	assert.Error(t, err)
}
