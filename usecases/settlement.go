package usecases

import (
	"fmt"
	"sort"

	"expenseml-server/entities"

	"github.com/shopspring/decimal"
)

// settleTolerance is one currency unit; balances within it are treated
// as already settled.
var settleTolerance = decimal.NewFromInt(1)

// MemberBalance is how far a member is from even: amount paid minus
// their equal share of the room total. Negative means they owe.
type MemberBalance struct {
	UserID  string
	Name    string
	Paid    decimal.Decimal
	Balance decimal.Decimal
}

// Transfer is one suggested payer→payee settlement instruction.
type Transfer struct {
	FromID   string  `json:"from_id"`
	FromName string  `json:"from_name"`
	ToID     string  `json:"to_id"`
	ToName   string  `json:"to_name"`
	Amount   float64 `json:"amount"`
}

// ComputeBalances derives per-member balances from a room's member set
// and shared expenses, splitting the total equally.
func ComputeBalances(members []entities.User, expenses []entities.SharedExpense) []MemberBalance {
	total := decimal.Zero
	paidBy := make(map[string]decimal.Decimal, len(members))
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		total = total.Add(amount)
		paidBy[e.PaidByID] = paidBy[e.PaidByID].Add(amount)
	}

	share := decimal.Zero
	if len(members) > 0 {
		share = total.Div(decimal.NewFromInt(int64(len(members))))
	}

	balances := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		paid := paidBy[m.ID]
		balances = append(balances, MemberBalance{
			UserID:  m.ID,
			Name:    m.Name,
			Paid:    paid,
			Balance: paid.Sub(share),
		})
	}
	return balances
}

// SettleBalances greedily matches the largest debtor against the
// largest creditor until one side is exhausted. The result is a local
// approximation, not a guaranteed minimum transaction count.
func SettleBalances(balances []MemberBalance) []Transfer {
	var debtors, creditors []MemberBalance
	for _, b := range balances {
		switch {
		case b.Balance.LessThan(settleTolerance.Neg()):
			debtors = append(debtors, b)
		case b.Balance.GreaterThan(settleTolerance):
			creditors = append(creditors, b)
		}
	}

	// Most negative debtor first, most positive creditor first.
	sort.Slice(debtors, func(i, j int) bool { return debtors[i].Balance.LessThan(debtors[j].Balance) })
	sort.Slice(creditors, func(i, j int) bool { return creditors[i].Balance.GreaterThan(creditors[j].Balance) })

	var transfers []Transfer
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		amount := decimal.Min(debtors[d].Balance.Abs(), creditors[c].Balance)
		transfers = append(transfers, Transfer{
			FromID:   debtors[d].UserID,
			FromName: debtors[d].Name,
			ToID:     creditors[c].UserID,
			ToName:   creditors[c].Name,
			Amount:   amount.InexactFloat64(),
		})
		debtors[d].Balance = debtors[d].Balance.Add(amount)
		creditors[c].Balance = creditors[c].Balance.Sub(amount)
		if debtors[d].Balance.Abs().LessThan(settleTolerance) {
			d++
		}
		if creditors[c].Balance.LessThan(settleTolerance) {
			c++
		}
	}
	return transfers
}

// FairnessScore maps a member's paid-vs-share delta into a 0-100
// presentational score; 50 is perfectly balanced.
func FairnessScore(paid, share decimal.Decimal) int64 {
	divisor := share
	if divisor.IsZero() {
		divisor = decimal.NewFromInt(1)
	}
	fifty := decimal.NewFromInt(50)
	score := fifty.Add(paid.Sub(share).Div(divisor).Mul(fifty))
	if score.LessThan(decimal.Zero) {
		return 0
	}
	hundred := decimal.NewFromInt(100)
	if score.GreaterThan(hundred) {
		return 100
	}
	return score.Round(0).IntPart()
}

// FormatTransfer renders one instruction the way the dashboard shows it.
func FormatTransfer(t Transfer) string {
	return fmt.Sprintf("%s pays %.0f to %s", t.FromName, t.Amount, t.ToName)
}
