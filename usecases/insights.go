package usecases

import (
	"time"

	"expenseml-server/repositories"
	"expenseml-server/services"
)

type InsightsUseCase struct {
	ExpenseRepo  repositories.ExpenseRepository
	BudgetRepo   repositories.BudgetRepository
	ReminderRepo repositories.ReminderRepository
	ML           *services.MLClient
}

func NewInsightsUseCase(expenseRepo repositories.ExpenseRepository, budgetRepo repositories.BudgetRepository, reminderRepo repositories.ReminderRepository, ml *services.MLClient) *InsightsUseCase {
	return &InsightsUseCase{
		ExpenseRepo:  expenseRepo,
		BudgetRepo:   budgetRepo,
		ReminderRepo: reminderRepo,
		ML:           ml,
	}
}

// Insights is the advanced financial report: forecast, behavior
// classification, risk and suggestions. When the ML service is down
// the same shape is filled from local arithmetic and flagged offline.
type Insights struct {
	Prediction        float64                       `json:"prediction"`
	Behavior          string                        `json:"behavior"`
	BehaviorTags      []string                      `json:"behavior_tags"`
	StableP           float64                       `json:"stable_p"`
	VariableP         float64                       `json:"variable_p"`
	EMIImpact         float64                       `json:"emi_impact"`
	TotalUpcomingEMIs float64                       `json:"total_upcoming_emis"`
	RiskLevel         string                        `json:"risk_level"`
	RiskScore         float64                       `json:"risk_score"`
	BudgetUtilization float64                       `json:"budget_utilization"`
	Personality       *services.PersonalityAnalysis `json:"personality"`
	MicroHabits       []string                      `json:"micro_habits"`
	OfflineMode       bool                          `json:"offline_mode,omitempty"`
	Error             string                        `json:"error,omitempty"`
}

// RiskLevel applies the fixed thresholds to a projected spend against
// the budget. Score is the utilization percentage. With no budget set
// but spending projected, the level warns at Medium.
func RiskLevel(projectedSpend, totalBudget float64) (string, float64) {
	if totalBudget > 0 {
		score := projectedSpend / totalBudget * 100
		switch {
		case score > 90:
			return "High", score
		case score > 70:
			return "Medium", score
		default:
			return "Low", score
		}
	}
	if projectedSpend > 0 {
		return "Medium", 0
	}
	return "Low", 0
}

// MicroHabits returns rule-based saving suggestions keyed on fixed
// category thresholds.
func MicroHabits(categorySpend map[string]float64, totalBudget float64) []string {
	var habits []string
	if totalBudget > 0 && categorySpend["Food"] > totalBudget*0.4 {
		habits = append(habits, "Cook twice this week instead of ordering in.")
	}
	if categorySpend["Entertainment"] > 1000 {
		habits = append(habits, "Review your OTT subscriptions. Do you really need all of them?")
	}
	if categorySpend["Shopping"] > 2000 {
		habits = append(habits, "Try a no-spend weekend before the next shopping run.")
	}
	if len(habits) == 0 {
		habits = append(habits, "You're a master of micro-habits! Try setting a small savings goal.")
	}
	return habits
}

// GetInsights gathers the user's financial context, asks the ML
// service for the advanced analysis and degrades to local arithmetic
// when any call fails.
func (uc *InsightsUseCase) GetInsights(userID string) (*Insights, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	categoryTotals, err := uc.ExpenseRepo.CategoryTotals(userID, month, year)
	if err != nil {
		return nil, err
	}
	distribution := make(map[string]float64, len(categoryTotals))
	for _, t := range categoryTotals {
		distribution[t.Category] = t.Total
	}

	upcoming, err := uc.ReminderRepo.GetUnpaidByCategories(userID, []string{"EMI", "Bill"})
	if err != nil {
		return nil, err
	}
	totalUpcoming := 0.0
	for _, r := range upcoming {
		totalUpcoming += r.Amount
	}

	monthlyTotals, err := uc.ExpenseRepo.MonthlyTotals(userID)
	if err != nil {
		return nil, err
	}
	series := make([]float64, len(monthlyTotals))
	for i, t := range monthlyTotals {
		series[i] = t.Total
	}

	budgets, err := uc.BudgetRepo.GetForMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	totalBudget := 0.0
	for _, b := range budgets {
		totalBudget += b.Amount
	}

	// currentMonthSpend only counts the series tail when it actually
	// belongs to this month.
	currentMonthSpend := 0.0
	if n := len(monthlyTotals); n > 0 {
		last := monthlyTotals[n-1]
		if last.Month == month && last.Year == year {
			currentMonthSpend = last.Total
		}
	}

	predicted, perr := uc.ML.PredictNextMonth(series)
	behavior, berr := uc.ML.AnalyzeBehavior(distribution)
	lastTotal := 0.0
	if len(series) > 0 {
		lastTotal = series[len(series)-1]
	}
	personality, serr := uc.ML.AnalyzePersonality(distribution, lastTotal, len(series))

	if perr != nil || berr != nil || serr != nil {
		return uc.offlineInsights(currentMonthSpend, totalUpcoming, totalBudget, distribution), nil
	}

	riskLevel, riskScore := RiskLevel(predicted+totalUpcoming, totalBudget)

	emiImpact := 0.0
	if predicted > 0 {
		emiImpact = totalUpcoming / (predicted + totalUpcoming) * 100
	}

	utilization := 0.0
	if totalBudget > 0 {
		utilization = currentMonthSpend / totalBudget * 100
	}

	return &Insights{
		Prediction:        predicted,
		Behavior:          behavior.Behavior,
		BehaviorTags:      behavior.Tags,
		StableP:           behavior.StableP,
		VariableP:         behavior.VariableP,
		EMIImpact:         emiImpact,
		TotalUpcomingEMIs: totalUpcoming,
		RiskLevel:         riskLevel,
		RiskScore:         riskScore,
		BudgetUtilization: utilization,
		Personality:       personality,
		MicroHabits:       MicroHabits(distribution, totalBudget),
	}, nil
}

// offlineInsights fills the report from what is known locally.
func (uc *InsightsUseCase) offlineInsights(currentMonthSpend, totalUpcoming, totalBudget float64, distribution map[string]float64) *Insights {
	projected := currentMonthSpend + totalUpcoming
	riskLevel, riskScore := RiskLevel(projected, totalBudget)

	emiImpact := 0.0
	if currentMonthSpend > 0 {
		emiImpact = totalUpcoming / (currentMonthSpend + totalUpcoming) * 100
	}

	utilization := 0.0
	if totalBudget > 0 {
		utilization = currentMonthSpend / totalBudget * 100
	}

	return &Insights{
		Prediction:        currentMonthSpend,
		Behavior:          "Analysis Unavailable",
		BehaviorTags:      []string{"Service Offline"},
		EMIImpact:         emiImpact,
		TotalUpcomingEMIs: totalUpcoming,
		RiskLevel:         riskLevel,
		RiskScore:         riskScore,
		BudgetUtilization: utilization,
		Personality: &services.PersonalityAnalysis{
			Personality: "Offline",
			Description: "AI is unavailable, but your manual tracking is solid.",
			Advice:      "Keep an eye on that budget!",
		},
		MicroHabits: MicroHabits(distribution, totalBudget),
		OfflineMode: true,
		Error:       "ML Service Unavailable",
	}
}
