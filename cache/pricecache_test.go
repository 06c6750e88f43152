package cache

import (
	"sync"
	"testing"

	"expenseml-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPointAndLatest(t *testing.T) {
	pc := NewPriceCache()

	pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 50})
	pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 52})
	pc.AddPoint(entities.MarketPrice{ProductID: "p2", Price: 30})

	latest, ok := pc.Latest("p1")
	require.True(t, ok)
	assert.Equal(t, 52.0, latest.Price)

	_, ok = pc.Latest("missing")
	assert.False(t, ok)

	pending := pc.GetAllPending()
	assert.Len(t, pending["p1"], 2)
	assert.Len(t, pending["p2"], 1)
}

func TestGetAllPendingReturnsCopy(t *testing.T) {
	pc := NewPriceCache()
	pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 50})

	pending := pc.GetAllPending()
	pending["p1"][0].Price.Price = 999

	again := pc.GetAllPending()
	assert.Equal(t, 50.0, again["p1"][0].Price.Price)
}

func TestClearKeepsLatestIndex(t *testing.T) {
	pc := NewPriceCache()
	pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 50})

	pc.Clear()

	assert.Empty(t, pc.GetAllPending())
	latest, ok := pc.Latest("p1")
	require.True(t, ok)
	assert.Equal(t, 50.0, latest.Price)
}

func TestStats(t *testing.T) {
	pc := NewPriceCache()
	pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 50})
	pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 51})
	pc.AddPoint(entities.MarketPrice{ProductID: "p2", Price: 30})

	stats := pc.Stats()
	assert.Equal(t, 2, stats["buffered_products"])
	assert.Equal(t, 3, stats["buffered_points"])
}

func TestConcurrentAdds(t *testing.T) {
	pc := NewPriceCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pc.AddPoint(entities.MarketPrice{ProductID: "p1", Price: 10})
		}()
	}
	wg.Wait()

	assert.Len(t, pc.GetAllPending()["p1"], 50)
}
