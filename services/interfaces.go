package services

import (
	"Marketplace/events"
	"Marketplace/models"
	"context"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem, guardStock bool) (uint, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Order, error)
	FindByIDForUser(ctx context.Context, orderID, userID uint) (*models.Order, error)
	ItemsForOrders(ctx context.Context, orderIDs []uint) ([]models.OrderItemView, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]models.SellerOrderRow, error)
	SellerItemsForOrders(ctx context.Context, sellerID uint, orderIDs []uint) ([]models.OrderItemView, error)
	SellerIDsForProducts(ctx context.Context, productIDs []uint) ([]uint, error)
}

type StatsStore interface {
	SellerStats(ctx context.Context, sellerID uint) (*models.SellerStats, error)
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

type StatsCache interface {
	GetSellerStats(ctx context.Context, sellerID uint) (*models.SellerStats, bool, error)
	SetSellerStats(ctx context.Context, sellerID uint, stats *models.SellerStats) error
	GetAdminStats(ctx context.Context) (*models.AdminStats, bool, error)
	SetAdminStats(ctx context.Context, stats *models.AdminStats) error
	Invalidate(ctx context.Context, sellerIDs []uint) error
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event events.OrderCreated) error
}

type nopCache struct{}

func (nopCache) GetSellerStats(context.Context, uint) (*models.SellerStats, bool, error) {
	return nil, false, nil
}

func (nopCache) SetSellerStats(context.Context, uint, *models.SellerStats) error { return nil }

func (nopCache) GetAdminStats(context.Context) (*models.AdminStats, bool, error) {
	return nil, false, nil
}

func (nopCache) SetAdminStats(context.Context, *models.AdminStats) error { return nil }

func (nopCache) Invalidate(context.Context, []uint) error { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishOrderCreated(context.Context, events.OrderCreated) error { return nil }
