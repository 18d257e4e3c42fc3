package services

import (
	"Marketplace/events"
	"Marketplace/models"
	"context"
)

type fakeOrderStore struct {
	createCalls int
	createErr   error
	nextID      uint
	guardStock  bool
	created     *models.Order
	createdRows []models.OrderItem

	orders     []models.Order
	items      []models.OrderItemView
	sellerRows []models.SellerOrderRow
	sellerIDs  []uint
	findErr    error
	itemsErr   error
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *models.Order, items []models.OrderItem, guardStock bool) (uint, error) {
	f.createCalls++
	f.guardStock = guardStock
	if f.createErr != nil {
		return 0, f.createErr
	}
	order.ID = f.nextID
	f.created = order
	f.createdRows = items
	return f.nextID, nil
}

func (f *fakeOrderStore) FindByUser(_ context.Context, userID uint) ([]models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var result []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderStore) FindByIDForUser(_ context.Context, orderID, userID uint) (*models.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, o := range f.orders {
		if o.ID == orderID && o.UserID == userID {
			order := o
			return &order, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (f *fakeOrderStore) ItemsForOrders(_ context.Context, orderIDs []uint) ([]models.OrderItemView, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	wanted := make(map[uint]bool)
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var result []models.OrderItemView
	for _, item := range f.items {
		if wanted[item.OrderID] {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeOrderStore) FindBySeller(_ context.Context, _ uint) ([]models.SellerOrderRow, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.sellerRows, nil
}

func (f *fakeOrderStore) SellerItemsForOrders(_ context.Context, _ uint, orderIDs []uint) ([]models.OrderItemView, error) {
	//回傳所有賣家的商品，由service過濾
	return f.ItemsForOrders(context.Background(), orderIDs)
}

func (f *fakeOrderStore) SellerIDsForProducts(_ context.Context, _ []uint) ([]uint, error) {
	return f.sellerIDs, nil
}

type fakeStatsStore struct {
	seller      *models.SellerStats
	admin       *models.AdminStats
	err         error
	sellerCalls int
	adminCalls  int
}

func (f *fakeStatsStore) SellerStats(_ context.Context, _ uint) (*models.SellerStats, error) {
	f.sellerCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.seller, nil
}

func (f *fakeStatsStore) AdminStats(_ context.Context) (*models.AdminStats, error) {
	f.adminCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.admin, nil
}

type fakeCache struct {
	seller      map[uint]*models.SellerStats
	admin       *models.AdminStats
	invalidated [][]uint
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{seller: make(map[uint]*models.SellerStats)}
}

func (f *fakeCache) GetSellerStats(_ context.Context, sellerID uint) (*models.SellerStats, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	stats, ok := f.seller[sellerID]
	return stats, ok, nil
}

func (f *fakeCache) SetSellerStats(_ context.Context, sellerID uint, stats *models.SellerStats) error {
	f.seller[sellerID] = stats
	return nil
}

func (f *fakeCache) GetAdminStats(_ context.Context) (*models.AdminStats, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.admin, f.admin != nil, nil
}

func (f *fakeCache) SetAdminStats(_ context.Context, stats *models.AdminStats) error {
	f.admin = stats
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, sellerIDs []uint) error {
	f.invalidated = append(f.invalidated, sellerIDs)
	return f.err
}

type fakePublisher struct {
	published []events.OrderCreated
	err       error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, event events.OrderCreated) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}
