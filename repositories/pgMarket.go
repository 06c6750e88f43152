package repositories

import (
	"expenseml-server/db"
	"expenseml-server/entities"
)

type marketPgRepository struct {
	db db.Database
}

func NewMarketPgRepository(database db.Database) MarketRepository {
	return &marketPgRepository{db: database}
}

func (r *marketPgRepository) CountProducts() (int64, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.MarketProduct{}).Count(&count).Error
	return count, err
}

func (r *marketPgRepository) CreateProducts(products []entities.MarketProduct) error {
	return r.db.GetDB().Create(&products).Error
}

func (r *marketPgRepository) GetAllProducts() ([]entities.MarketProduct, error) {
	var products []entities.MarketProduct
	err := r.db.GetDB().Order("name ASC").Find(&products).Error
	return products, err
}

func (r *marketPgRepository) GetProductByID(id string) (*entities.MarketProduct, error) {
	var product entities.MarketProduct
	err := r.db.GetDB().Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *marketPgRepository) CreatePrices(prices []entities.MarketPrice) error {
	return r.db.GetDB().Create(&prices).Error
}

// LatestPrices returns up to limit price points, most recent first.
func (r *marketPgRepository) LatestPrices(productID string, limit int) ([]entities.MarketPrice, error) {
	var prices []entities.MarketPrice
	err := r.db.GetDB().
		Where("product_id = ?", productID).
		Order("date DESC").Limit(limit).Find(&prices).Error
	return prices, err
}

// PriceHistory returns all price points for a product, oldest first.
func (r *marketPgRepository) PriceHistory(productID string) ([]entities.MarketPrice, error) {
	var prices []entities.MarketPrice
	err := r.db.GetDB().
		Where("product_id = ?", productID).
		Order("date ASC").Find(&prices).Error
	return prices, err
}
