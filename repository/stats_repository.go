package repository

import (
	"Marketplace/models"
	"context"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// 統計查詢，只讀
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type sellerSales struct {
	TotalOrders  int64
	TotalRevenue models.Money
	ItemsSold    int64
}

const sellerSalesQuery = `
SELECT COUNT(DISTINCT oi.order_id) AS total_orders,
       COALESCE(SUM(oi.quantity * oi.price), 0) AS total_revenue,
       COALESCE(SUM(oi.quantity), 0) AS items_sold
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE p.seller_id = ?`

func (r *StatsRepository) SellerStats(ctx context.Context, sellerID uint) (*models.SellerStats, error) {
	db := r.db.WithContext(ctx)
	var stats models.SellerStats

	err := db.Model(&models.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&stats.ActiveProducts).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "count seller products")
	}

	var sales sellerSales
	if err := db.Raw(sellerSalesQuery, sellerID).Scan(&sales).Error; err != nil {
		return nil, errors.Wrap(err, "aggregate seller sales")
	}

	stats.TotalOrders = sales.TotalOrders
	stats.TotalRevenue = sales.TotalRevenue
	stats.ItemsSold = sales.ItemsSold
	return &stats, nil
}

type storeSales struct {
	TotalRevenue models.Money
	TotalOrders  int64
}

const storeSalesQuery = `
SELECT COALESCE(SUM(total_amount), 0) AS total_revenue,
       COUNT(*) AS total_orders
FROM orders`

// 全站統計，各查詢獨立執行，任一失敗即回傳錯誤
func (r *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	db := r.db.WithContext(ctx)
	var stats models.AdminStats

	var sales storeSales
	if err := db.Raw(storeSalesQuery).Scan(&sales).Error; err != nil {
		return nil, errors.Wrap(err, "aggregate store sales")
	}
	stats.TotalRevenue = sales.TotalRevenue
	stats.TotalOrders = sales.TotalOrders

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, errors.Wrap(err, "count users")
	}

	if err := db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, errors.Wrap(err, "count products")
	}

	err := db.Model(&models.Product{}).
		Distinct("seller_id").
		Count(&stats.ActiveSellers).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "count active sellers")
	}

	return &stats, nil
}
