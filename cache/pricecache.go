package cache

import (
	"sync"
	"time"

	"expenseml-server/entities"
)

type PricePoint struct {
	Price    entities.MarketPrice
	Received time.Time
}

// PriceCache buffers synced market price points in memory until the
// price processor bulk-inserts them into the database.
type PriceCache struct {
	mu      sync.RWMutex
	pending map[string][]PricePoint // map[productID][]points
	latest  map[string]entities.MarketPrice
}

func NewPriceCache() *PriceCache {
	return &PriceCache{
		pending: make(map[string][]PricePoint),
		latest:  make(map[string]entities.MarketPrice),
	}
}

// AddPoint adds a new price point to the buffer.
func (pc *PriceCache) AddPoint(price entities.MarketPrice) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	point := PricePoint{Price: price, Received: time.Now()}
	pc.pending[price.ProductID] = append(pc.pending[price.ProductID], point)
	pc.latest[price.ProductID] = price
}

// Latest returns the most recently buffered price for a product, if any.
func (pc *PriceCache) Latest(productID string) (entities.MarketPrice, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	price, ok := pc.latest[productID]
	return price, ok
}

// GetAllPending returns a copy of every buffered point.
func (pc *PriceCache) GetAllPending() map[string][]PricePoint {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	all := make(map[string][]PricePoint)
	for productID, points := range pc.pending {
		all[productID] = make([]PricePoint, len(points))
		copy(all[productID], points)
	}
	return all
}

// Stats returns counters about the current buffer.
func (pc *PriceCache) Stats() map[string]interface{} {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	totalPoints := 0
	for _, points := range pc.pending {
		totalPoints += len(points)
	}
	return map[string]interface{}{
		"buffered_products": len(pc.pending),
		"buffered_points":   totalPoints,
	}
}

// Clear drops the buffered points, keeping the latest-price index so
// trend lookups survive a flush.
func (pc *PriceCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.pending = make(map[string][]PricePoint)
}
