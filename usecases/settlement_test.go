package usecases

import (
	"testing"

	"expenseml-server/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBalancesSplitsEqually(t *testing.T) {
	members := []entities.User{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
		{ID: "c", Name: "Carol"},
	}
	expenses := []entities.SharedExpense{
		{PaidByID: "a", Amount: 900},
		{PaidByID: "b", Amount: 300},
	}

	balances := ComputeBalances(members, expenses)
	require.Len(t, balances, 3)

	byID := map[string]MemberBalance{}
	for _, b := range balances {
		byID[b.UserID] = b
	}

	// Total 1200, share 400 each.
	assert.True(t, byID["a"].Balance.Equal(decimal.NewFromInt(500)))
	assert.True(t, byID["b"].Balance.Equal(decimal.NewFromInt(-100)))
	assert.True(t, byID["c"].Balance.Equal(decimal.NewFromInt(-400)))

	// Balances always sum to zero.
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	assert.True(t, sum.IsZero())
}

func TestSettleBalancesGreedyMatching(t *testing.T) {
	balances := []MemberBalance{
		{UserID: "d1", Name: "Dana", Balance: decimal.NewFromInt(-300)},
		{UserID: "d2", Name: "Dev", Balance: decimal.NewFromInt(-100)},
		{UserID: "c1", Name: "Cora", Balance: decimal.NewFromInt(250)},
		{UserID: "c2", Name: "Cruz", Balance: decimal.NewFromInt(150)},
	}

	transfers := SettleBalances(balances)
	require.NotEmpty(t, transfers)

	// Every instruction flows from a debtor to a creditor.
	for _, tr := range transfers {
		assert.Contains(t, []string{"d1", "d2"}, tr.FromID)
		assert.Contains(t, []string{"c1", "c2"}, tr.ToID)
		assert.Greater(t, tr.Amount, 0.0)
	}

	// The transfers move exactly the owed total.
	total := 0.0
	for _, tr := range transfers {
		total += tr.Amount
	}
	assert.InDelta(t, 400.0, total, 1.0)

	// Largest debtor pays the largest creditor first.
	assert.Equal(t, "d1", transfers[0].FromID)
	assert.Equal(t, "c1", transfers[0].ToID)
	assert.InDelta(t, 250.0, transfers[0].Amount, 0.001)
}

func TestSettleBalancesIgnoresSettledMembers(t *testing.T) {
	balances := []MemberBalance{
		{UserID: "a", Balance: decimal.RequireFromString("0.5")},
		{UserID: "b", Balance: decimal.RequireFromString("-0.5")},
	}
	assert.Empty(t, SettleBalances(balances))
}

func TestSettleBalancesNoCreditors(t *testing.T) {
	balances := []MemberBalance{
		{UserID: "a", Balance: decimal.Zero},
		{UserID: "b", Balance: decimal.Zero},
	}
	assert.Empty(t, SettleBalances(balances))
}

func TestFairnessScore(t *testing.T) {
	share := decimal.NewFromInt(400)

	// Paid exactly the share.
	assert.Equal(t, int64(50), FairnessScore(decimal.NewFromInt(400), share))
	// Paid double the share.
	assert.Equal(t, int64(100), FairnessScore(decimal.NewFromInt(800), share))
	// Paid nothing.
	assert.Equal(t, int64(0), FairnessScore(decimal.Zero, share))
	// Overpayment clamps at 100.
	assert.Equal(t, int64(100), FairnessScore(decimal.NewFromInt(5000), share))
	// Zero share never divides by zero.
	assert.Equal(t, int64(100), FairnessScore(decimal.NewFromInt(10), decimal.Zero))
}

func TestFormatTransfer(t *testing.T) {
	got := FormatTransfer(Transfer{FromName: "Bob", ToName: "Alice", Amount: 150})
	assert.Equal(t, "Bob pays 150 to Alice", got)
}
