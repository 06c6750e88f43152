package usecases

import (
	"testing"
	"time"

	"expenseml-server/entities"
	"expenseml-server/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory market store recording every bulk insert.
type fakeMarketRepo struct {
	products     []entities.MarketProduct
	prices       map[string][]entities.MarketPrice
	priceBatches [][]entities.MarketPrice
}

func (r *fakeMarketRepo) CountProducts() (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeMarketRepo) CreateProducts(products []entities.MarketProduct) error {
	r.products = append(r.products, products...)
	return nil
}

func (r *fakeMarketRepo) GetAllProducts() ([]entities.MarketProduct, error) {
	return r.products, nil
}

func (r *fakeMarketRepo) GetProductByID(id string) (*entities.MarketProduct, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMarketRepo) CreatePrices(prices []entities.MarketPrice) error {
	if r.prices == nil {
		r.prices = map[string][]entities.MarketPrice{}
	}
	r.priceBatches = append(r.priceBatches, prices)
	for _, p := range prices {
		r.prices[p.ProductID] = append(r.prices[p.ProductID], p)
	}
	return nil
}

func (r *fakeMarketRepo) LatestPrices(productID string, limit int) ([]entities.MarketPrice, error) {
	history := r.prices[productID]
	var out []entities.MarketPrice
	for i := len(history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, history[i])
	}
	return out, nil
}

func (r *fakeMarketRepo) PriceHistory(productID string) ([]entities.MarketPrice, error) {
	return r.prices[productID], nil
}

func newTestMarket(repo *fakeMarketRepo) *MarketUseCase {
	return NewMarketUseCase(
		repo,
		services.NewGovMarketClient(""),
		services.NewMLClient("http://127.0.0.1:1"),
		services.NewPriceProcessor(repo),
	)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		latest []entities.MarketPrice
		want   string
	}{
		{"no prices", nil, "Stable"},
		{"single price", []entities.MarketPrice{{Price: 50}}, "Stable"},
		{"rising", []entities.MarketPrice{{Price: 55}, {Price: 50}}, "Increasing"},
		{"falling", []entities.MarketPrice{{Price: 45}, {Price: 50}}, "Decreasing"},
		{"flat", []entities.MarketPrice{{Price: 50}, {Price: 50}}, "Stable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(tt.latest))
		})
	}
}

func TestPriceHistoryUnknownProduct(t *testing.T) {
	uc := newTestMarket(&fakeMarketRepo{})

	_, err := uc.PriceHistory("no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSyncLivePricesBuffersMatches(t *testing.T) {
	repo := &fakeMarketRepo{products: []entities.MarketProduct{
		{ID: "p-rice", Name: "Rice"},
		{ID: "p-onion", Name: "Onion"},
		{ID: "p-soap", Name: "Soap"}, // no feed mapping
	}}
	uc := newTestMarket(repo)

	result, err := uc.SyncLivePrices()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, "Mandi Simulation Engine (Live Mode)", result.Source)

	require.Len(t, repo.priceBatches, 1)
	assert.Len(t, repo.priceBatches[0], 2)
}

func TestSyncLivePricesSkipsUnchangedReadings(t *testing.T) {
	repo := &fakeMarketRepo{products: []entities.MarketProduct{
		{ID: "p-rice", Name: "Rice"},
	}}
	uc := newTestMarket(repo)

	first, err := uc.SyncLivePrices()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Synced)
	require.Len(t, repo.priceBatches, 1)

	// The simulated feed repeats the same prices; a second sync still
	// matches but writes nothing new.
	second, err := uc.SyncLivePrices()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Synced)
	assert.Len(t, repo.priceBatches, 1)
}

func TestSyncLivePricesNoMatches(t *testing.T) {
	repo := &fakeMarketRepo{products: []entities.MarketProduct{
		{ID: "p-soap", Name: "Soap"},
	}}
	uc := newTestMarket(repo)

	_, err := uc.SyncLivePrices()
	assert.Error(t, err)
}

func TestSynthesizeHistory(t *testing.T) {
	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	points := SynthesizeHistory("prod-1", 100, today)

	require.Len(t, points, 31)

	// Oldest point is 30 days back, newest is today.
	assert.Equal(t, today.AddDate(0, 0, -30), points[0].Date)
	assert.Equal(t, today, points[30].Date)

	for i, p := range points {
		assert.Equal(t, "prod-1", p.ProductID)
		// Noise is ±5% per point and the base drifts by at most 1% per
		// step, so prices stay well inside a generous envelope.
		assert.Greater(t, p.Price, 60.0, "point %d", i)
		assert.Less(t, p.Price, 160.0, "point %d", i)
		if i > 0 {
			assert.True(t, p.Date.After(points[i-1].Date))
		}
	}
}
