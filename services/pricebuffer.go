package services

import (
	"log"
	"time"

	"expenseml-server/cache"
	"expenseml-server/entities"
	"expenseml-server/repositories"
)

// PriceProcessor drains the in-memory price buffer into the database,
// either on its periodic tick or when a sync asks for an immediate flush.
type PriceProcessor struct {
	cache    *cache.PriceCache
	repo     repositories.MarketRepository
	interval time.Duration
}

func NewPriceProcessor(repo repositories.MarketRepository) *PriceProcessor {
	return &PriceProcessor{
		cache:    cache.NewPriceCache(),
		repo:     repo,
		interval: time.Minute,
	}
}

func (pp *PriceProcessor) Start() {
	ticker := time.NewTicker(pp.interval)
	go func() {
		for range ticker.C {
			pp.Flush()
		}
	}()
}

// Flush bulk-inserts all buffered price points and clears the buffer.
// Returns how many points were written.
func (pp *PriceProcessor) Flush() int {
	raw := pp.cache.GetAllPending()
	var all []entities.MarketPrice
	for _, points := range raw {
		for _, p := range points {
			all = append(all, p.Price)
		}
	}
	if len(all) == 0 {
		return 0
	}
	if err := pp.repo.CreatePrices(all); err != nil {
		log.Printf("Error bulk inserting %d price points: %v", len(all), err)
		return 0
	}
	pp.cache.Clear()
	log.Printf("Inserted %d synced price points", len(all))
	return len(all)
}

func (pp *PriceProcessor) AddPoint(price entities.MarketPrice) {
	pp.cache.AddPoint(price)
}

// Latest returns the most recently buffered price for a product. The
// index survives flushes, so it reflects the last synced reading even
// after the buffer drained.
func (pp *PriceProcessor) Latest(productID string) (entities.MarketPrice, bool) {
	return pp.cache.Latest(productID)
}

func (pp *PriceProcessor) Stats() map[string]interface{} {
	return pp.cache.Stats()
}
