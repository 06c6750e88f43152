package usecases

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"expenseml-server/entities"
	"expenseml-server/repositories"
	"expenseml-server/services"
)

// annualInflationRate feeds the fixed-rate inflation impact estimate.
const annualInflationRate = 0.05

// seedProducts are the nine commodities bootstrapped on first seed,
// with their base prices for the synthetic history.
var seedProducts = []struct {
	Name      string
	Category  string
	Unit      string
	BasePrice float64
}{
	{"Rice", "Kitchen Essentials", "kg", 50},
	{"Wheat Flour", "Kitchen Essentials", "kg", 40},
	{"Cooking Oil", "Kitchen Essentials", "L", 160},
	{"Milk", "Kitchen Essentials", "L", 60},
	{"Onion", "Vegetables", "kg", 30},
	{"Potato", "Vegetables", "kg", 25},
	{"Tomato", "Vegetables", "kg", 40},
	{"Soap", "Bathroom / Daily Care", "piece", 35},
	{"Detergent", "Bathroom / Daily Care", "kg", 120},
}

// govCommodityNames maps local product names onto the government
// feed's commodity names; unmapped products are skipped on sync.
var govCommodityNames = map[string]string{
	"Rice":        "Rice",
	"Wheat Flour": "Wheat",
	"Onion":       "Onion",
	"Potato":      "Potato",
	"Tomato":      "Tomato",
	"Milk":        "Milk",
}

var ErrAlreadySeeded = errors.New("market data already seeded")

type MarketUseCase struct {
	MarketRepo repositories.MarketRepository
	Gov        *services.GovMarketClient
	ML         *services.MLClient
	Prices     *services.PriceProcessor
}

func NewMarketUseCase(marketRepo repositories.MarketRepository, gov *services.GovMarketClient, ml *services.MLClient, prices *services.PriceProcessor) *MarketUseCase {
	return &MarketUseCase{MarketRepo: marketRepo, Gov: gov, ML: ml, Prices: prices}
}

// ProductView is a product annotated with its latest price and trend.
type ProductView struct {
	entities.MarketProduct
	CurrentPrice float64 `json:"current_price"`
	Trend        string  `json:"trend"`
}

// Trend derives the three-state trend from the two most recent price
// points. A single reading (or none) is Stable.
func Trend(latest []entities.MarketPrice) string {
	if len(latest) < 2 {
		return "Stable"
	}
	switch {
	case latest[0].Price > latest[1].Price:
		return "Increasing"
	case latest[0].Price < latest[1].Price:
		return "Decreasing"
	default:
		return "Stable"
	}
}

// ListProducts returns every tracked commodity with price and trend.
func (uc *MarketUseCase) ListProducts() ([]ProductView, error) {
	products, err := uc.MarketRepo.GetAllProducts()
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		latest, err := uc.MarketRepo.LatestPrices(p.ID, 2)
		if err != nil {
			return nil, err
		}
		current := 0.0
		if len(latest) > 0 {
			current = latest[0].Price
		}
		views = append(views, ProductView{
			MarketProduct: p,
			CurrentPrice:  current,
			Trend:         Trend(latest),
		})
	}
	return views, nil
}

// PriceHistory returns a product's recorded prices, oldest first.
func (uc *MarketUseCase) PriceHistory(productID string) ([]entities.MarketPrice, error) {
	if _, err := uc.MarketRepo.GetProductByID(productID); err != nil {
		return nil, ErrNotFound
	}
	return uc.MarketRepo.PriceHistory(productID)
}

// PriceForecast is the commodity prediction with its inflation note.
type PriceForecast struct {
	Product       string  `json:"product"`
	Prediction    float64 `json:"prediction"`
	Trend         string  `json:"trend"`
	MonthlyImpact float64 `json:"monthly_impact,omitempty"`
	Advice        string  `json:"advice,omitempty"`
	Error         string  `json:"error,omitempty"`
	OfflineMode   bool    `json:"offline_mode,omitempty"`
}

// PredictPrice forwards the full price history to the ML service and
// adds the fixed-rate inflation impact; offline it falls back to the
// last known price.
func (uc *MarketUseCase) PredictPrice(productID string) (*PriceForecast, error) {
	product, err := uc.MarketRepo.GetProductByID(productID)
	if err != nil {
		return nil, ErrNotFound
	}
	history, err := uc.MarketRepo.PriceHistory(productID)
	if err != nil {
		return nil, err
	}
	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}

	lastPrice := 0.0
	if len(prices) > 0 {
		lastPrice = prices[len(prices)-1]
	}

	prediction, err := uc.ML.PredictPrice(prices)
	if err != nil {
		return &PriceForecast{
			Product:     product.Name,
			Prediction:  lastPrice,
			Trend:       "Stable",
			Error:       "ML Service Unavailable",
			OfflineMode: true,
		}, nil
	}

	predicted := prediction.PredictedPrice
	if predicted == 0 {
		predicted = lastPrice
	}
	monthlyImpact := math.Round(predicted*(annualInflationRate/12)*100) / 100

	return &PriceForecast{
		Product:       product.Name,
		Prediction:    predicted,
		Trend:         prediction.Trend,
		MonthlyImpact: monthlyImpact,
		Advice:        "Inflation is pushing prices up. Bulk buy recommended.",
	}, nil
}

// Seed bootstraps the nine fixed products with 31 days of randomly
// perturbed history. Runs only against an empty product table.
func (uc *MarketUseCase) Seed() error {
	count, err := uc.MarketRepo.CountProducts()
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadySeeded
	}

	products := make([]entities.MarketProduct, len(seedProducts))
	for i, sp := range seedProducts {
		products[i] = entities.MarketProduct{Name: sp.Name, Category: sp.Category, Unit: sp.Unit}
	}
	if err := uc.MarketRepo.CreateProducts(products); err != nil {
		return err
	}

	var prices []entities.MarketPrice
	today := time.Now()
	for i, product := range products {
		prices = append(prices, SynthesizeHistory(product.ID, seedProducts[i].BasePrice, today)...)
	}
	return uc.MarketRepo.CreatePrices(prices)
}

// SynthesizeHistory builds 31 daily price points ending today: uniform
// ±5% noise around a base that drifts slightly upward each step.
func SynthesizeHistory(productID string, basePrice float64, today time.Time) []entities.MarketPrice {
	points := make([]entities.MarketPrice, 0, 31)
	base := basePrice
	for i := 30; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		fluctuation := rand.Float64()*0.1 - 0.05
		price := base * (1 + fluctuation)
		points = append(points, entities.MarketPrice{
			ProductID: productID,
			Price:     math.Round(price*100) / 100,
			Date:      date,
		})
		base *= 1 + (rand.Float64()*0.01 - 0.002)
	}
	return points
}

// SyncResult reports what a live-price sync did.
type SyncResult struct {
	Synced int    `json:"synced"`
	Source string `json:"source"`
}

// SyncLivePrices maps tracked products onto the government commodity
// feed, buffers matched price points and flushes them to the database.
func (uc *MarketUseCase) SyncLivePrices() (*SyncResult, error) {
	records, source, err := uc.Gov.FetchCommodities()
	if err != nil {
		return nil, err
	}

	products, err := uc.MarketRepo.GetAllProducts()
	if err != nil {
		return nil, err
	}

	matched := 0
	for _, product := range products {
		govName, ok := govCommodityNames[product.Name]
		if !ok {
			continue
		}
		for _, record := range records {
			if !strings.Contains(strings.ToLower(record.Commodity), strings.ToLower(govName)) {
				continue
			}
			price, err := strconv.ParseFloat(record.ModalPrice, 64)
			if err != nil {
				continue
			}
			// An unchanged reading counts as matched but is not
			// buffered again.
			if last, ok := uc.Prices.Latest(product.ID); ok && last.Price == price {
				matched++
				break
			}
			uc.Prices.AddPoint(entities.MarketPrice{
				ProductID: product.ID,
				Price:     price,
				Date:      time.Now(),
			})
			matched++
			break
		}
	}

	if matched == 0 {
		return nil, errors.New("no matching commodity records found in current feed")
	}
	uc.Prices.Flush()
	return &SyncResult{Synced: matched, Source: source}, nil
}

// BufferStats exposes the price buffer counters for the ops endpoint.
func (uc *MarketUseCase) BufferStats() map[string]interface{} {
	return uc.Prices.Stats()
}
