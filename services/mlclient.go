package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MLClient talks to the external forecasting microservice. Callers are
// expected to treat any error as "service offline" and degrade, never
// to surface it to the user as a failure.
type MLClient struct {
	BaseURL string
	client  *http.Client
}

func NewMLClient(baseURL string) *MLClient {
	return &MLClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// BehaviorAnalysis classifies the spending pattern of one month.
type BehaviorAnalysis struct {
	Behavior  string   `json:"behavior"`
	Tags      []string `json:"tags"`
	StableP   float64  `json:"stable_p"`
	VariableP float64  `json:"variable_p"`
}

// PersonalityAnalysis is the playful spender-personality label.
type PersonalityAnalysis struct {
	Personality string `json:"personality"`
	Description string `json:"description"`
	Advice      string `json:"advice"`
}

// PricePrediction is the forecast for one commodity.
type PricePrediction struct {
	PredictedPrice float64 `json:"predicted_price"`
	Trend          string  `json:"trend"`
}

func (c *MLClient) post(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.BaseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml service returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// PredictCategory classifies a free-text expense title into a category.
func (c *MLClient) PredictCategory(description string) (string, error) {
	var out struct {
		Category string `json:"category"`
	}
	err := c.post("/predict_category", map[string]string{"description": description}, &out)
	if err != nil {
		return "", err
	}
	return out.Category, nil
}

// PredictNextMonth forecasts the next monthly total from the series so far.
func (c *MLClient) PredictNextMonth(monthlyTotals []float64) (float64, error) {
	var out struct {
		PredictedExpense float64 `json:"predicted_expense"`
	}
	err := c.post("/predict_next_month", map[string]any{"monthly_totals": monthlyTotals}, &out)
	if err != nil {
		return 0, err
	}
	return out.PredictedExpense, nil
}

func (c *MLClient) AnalyzeBehavior(distribution map[string]float64) (*BehaviorAnalysis, error) {
	var out BehaviorAnalysis
	err := c.post("/analyze_behavior", map[string]any{"category_distribution": distribution}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MLClient) AnalyzePersonality(distribution map[string]float64, totalSpend float64, monthCount int) (*PersonalityAnalysis, error) {
	var out PersonalityAnalysis
	err := c.post("/analyze_personality", map[string]any{
		"category_distribution": distribution,
		"total_spend":           totalSpend,
		"month_count":           monthCount,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MLClient) PredictPrice(prices []float64) (*PricePrediction, error) {
	var out PricePrediction
	err := c.post("/predict_price", map[string]any{"prices": prices}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
