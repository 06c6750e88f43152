package usecases

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"expenseml-server/entities"
	"expenseml-server/repositories"
	"expenseml-server/services"
)

// TextGenerator is the slice of the chat service this usecase needs.
type TextGenerator interface {
	Generate(prompt string) (string, error)
}

type ChatUseCase struct {
	ExpenseRepo  repositories.ExpenseRepository
	BudgetRepo   repositories.BudgetRepository
	ReminderRepo repositories.ReminderRepository
	Chat         TextGenerator
}

func NewChatUseCase(expenseRepo repositories.ExpenseRepository, budgetRepo repositories.BudgetRepository, reminderRepo repositories.ReminderRepository, chat TextGenerator) *ChatUseCase {
	return &ChatUseCase{
		ExpenseRepo:  expenseRepo,
		BudgetRepo:   budgetRepo,
		ReminderRepo: reminderRepo,
		Chat:         chat,
	}
}

// ChatReply is the assistant's answer; Info is set when the reply was
// produced locally instead of by a provider.
type ChatReply struct {
	Reply string `json:"reply"`
	Info  string `json:"info,omitempty"`
}

// financialContext is the numeric snapshot handed to the provider.
type financialContext struct {
	TotalBudget float64
	TotalSpent  float64
	DaysLeft    int
	Breakdown   map[string]float64
	UpcomingDue []string
}

// Respond builds the user's financial context into a prompt and asks
// the configured provider. Provider failures never fail the request;
// they pick a matching canned reply.
func (uc *ChatUseCase) Respond(user *entities.User, message string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("message is required")
	}

	ctx, err := uc.gatherContext(user.ID)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(user.Name, message, ctx)

	reply, err := uc.Chat.Generate(prompt)
	if err == nil {
		return &ChatReply{Reply: reply}, nil
	}

	if errors.Is(err, services.ErrNoProvider) {
		return &ChatReply{Reply: offlineReply(ctx)}, nil
	}

	var provErr *services.ProviderError
	userMessage := "Sorry, the network looks a bit down. Try again later?"
	if errors.As(err, &provErr) {
		switch provErr.StatusCode {
		case 429:
			userMessage = "The AI service hit its monthly quota. Check the balance or switch the API key."
		case 401:
			userMessage = "The configured API key looks wrong. Check the .env file."
		case 404:
			userMessage = "The AI model could not be found. Check the model name."
		}
	}
	return &ChatReply{Reply: userMessage, Info: "Handled by ExpenseML Buddy"}, nil
}

func (uc *ChatUseCase) gatherContext(userID string) (*financialContext, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	expenses, err := uc.ExpenseRepo.GetByUserIDForMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	budgets, err := uc.BudgetRepo.GetForMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	reminders, err := uc.ReminderRepo.GetUnpaid(userID)
	if err != nil {
		return nil, err
	}

	ctx := &financialContext{Breakdown: make(map[string]float64)}
	for _, e := range expenses {
		ctx.TotalSpent += e.Amount
		ctx.Breakdown[e.Category] += e.Amount
	}
	for _, b := range budgets {
		ctx.TotalBudget += b.Amount
	}
	for _, r := range reminders {
		if !r.DueDate.Before(now) {
			ctx.UpcomingDue = append(ctx.UpcomingDue,
				fmt.Sprintf("%s: %.0f on %s", r.Title, r.Amount, r.DueDate.Format("02 Jan 2006")))
		}
	}

	endOfMonth := time.Date(year, now.Month()+1, 0, 0, 0, 0, 0, now.Location())
	ctx.DaysLeft = endOfMonth.Day() - now.Day()
	return ctx, nil
}

func buildPrompt(name, message string, ctx *financialContext) string {
	categories := make([]string, 0, len(ctx.Breakdown))
	for c := range ctx.Breakdown {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var breakdown strings.Builder
	for i, c := range categories {
		if i > 0 {
			breakdown.WriteString(", ")
		}
		fmt.Fprintf(&breakdown, "%s: %.0f", c, ctx.Breakdown[c])
	}

	upcoming := "None"
	if len(ctx.UpcomingDue) > 0 {
		upcoming = strings.Join(ctx.UpcomingDue, ", ")
	}

	return fmt.Sprintf(`You are a friendly, smart and proactive personal finance assistant named "ExpenseML Buddy".
Your goal is to help %s manage their money with practical advice.

CURRENT FINANCIAL CONTEXT:
- Monthly Budget: %.0f
- Total Spent so far: %.0f
- Budget Remaining: %.0f
- Days left in month: %d
- Top Expense Categories: %s
- Upcoming EMIs/Bills: %s

GUIDELINES:
1. Speak in a friendly, informal tone.
2. Be honest but encouraging. If they are overspending, say so clearly and suggest a fix.
3. Keep replies concise and actionable.
4. For generic questions, always relate the answer back to the real numbers above.

User says: "%s"
Response:`,
		name, ctx.TotalBudget, ctx.TotalSpent, ctx.TotalBudget-ctx.TotalSpent,
		ctx.DaysLeft, breakdown.String(), upcoming, message)
}

// offlineReply templates the same numbers when no provider is configured.
func offlineReply(ctx *financialContext) string {
	budgetLine := "No budget set for this month yet."
	if ctx.TotalBudget > 0 {
		budgetLine = fmt.Sprintf("Your budget is %.0f.", ctx.TotalBudget)
	}
	return fmt.Sprintf(
		"I'm in offline mode right now (no AI API key configured), but your data is here:\n- Spent so far: %.0f\n- %s\n- Days left in the month: %d\n\nAdd an API key and I can give sharper advice!",
		ctx.TotalSpent, budgetLine, ctx.DaysLeft)
}
