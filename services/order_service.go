package services

import (
	"Marketplace/events"
	"Marketplace/models"
	"context"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type OrderItemInput struct {
	ProductID uint
	Quantity  int
	Price     models.Money
}

type CreateOrderInput struct {
	UserID          uint
	Items           []OrderItemInput
	ShippingAddress string
	City            string
	State           string
	ZipCode         string
	Country         string
	Phone           string
	PaymentMethod   string
	TotalAmount     models.Money
}

type OrderService struct {
	store      OrderStore
	cache      StatsCache
	publisher  EventPublisher
	logger     *zap.Logger
	guardStock bool
}

// cache及publisher可為nil
func NewOrderService(store OrderStore, cache StatsCache, publisher EventPublisher, logger *zap.Logger, guardStock bool) *OrderService {
	if cache == nil {
		cache = nopCache{}
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		store:      store,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
		guardStock: guardStock,
	}
}

// 建立訂單並扣庫存，回傳新訂單ID
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (uint, error) {
	//檢查須在取得連線之前
	if len(in.Items) == 0 {
		return 0, ErrNoOrderItems
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return 0, ErrInvalidQuantity
		}
	}

	order := &models.Order{
		UserID:          in.UserID,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		City:            in.City,
		State:           in.State,
		ZipCode:         in.ZipCode,
		Country:         in.Country,
		Phone:           in.Phone,
		PaymentMethod:   in.PaymentMethod,
		Status:          models.StatusPending,
	}

	items := make([]models.OrderItem, len(in.Items))
	productIDs := make([]uint, 0, len(in.Items))
	for i, item := range in.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
		productIDs = append(productIDs, item.ProductID)
	}

	orderID, err := s.store.CreateOrder(ctx, order, items, s.guardStock)
	if err != nil {
		s.logger.Error("create order failed",
			zap.Uint("user_id", in.UserID),
			zap.Int("items", len(items)),
			zap.Error(err))
		return 0, &TransactionError{Err: err}
	}

	s.logger.Info("order created",
		zap.Uint("order_id", orderID),
		zap.Uint("user_id", in.UserID),
		zap.String("total_amount", in.TotalAmount.String()))

	s.afterCreate(ctx, order, items, productIDs)
	return orderID, nil
}

// 訂單已commit，後續動作失敗只記錄
func (s *OrderService) afterCreate(ctx context.Context, order *models.Order, items []models.OrderItem, productIDs []uint) {
	sellerIDs, err := s.store.SellerIDsForProducts(ctx, productIDs)
	if err != nil {
		s.logger.Warn("lookup sellers for cache invalidation failed", zap.Uint("order_id", order.ID), zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, sellerIDs); err != nil {
		s.logger.Warn("invalidate stats cache failed", zap.Uint("order_id", order.ID), zap.Error(err))
	}

	if err := s.publisher.PublishOrderCreated(ctx, events.NewOrderCreated(order, items)); err != nil {
		s.logger.Warn("publish order created failed", zap.Uint("order_id", order.ID), zap.Error(err))
	}
}

// 買家所有訂單，新到舊，附帶訂單商品
func (s *OrderService) MyOrders(ctx context.Context, userID uint) ([]models.OrderWithItems, error) {
	orders, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	items, err := s.store.ItemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	byOrder := groupItems(items)

	result := make([]models.OrderWithItems, len(orders))
	for i, order := range orders {
		result[i] = models.OrderWithItems{
			Order:    order,
			Products: itemsOrEmpty(byOrder[order.ID]),
		}
	}
	return result, nil
}

// 只有訂單擁有者可以查詢
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*models.OrderWithItems, error) {
	order, err := s.store.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	items, err := s.store.ItemsForOrders(ctx, []uint{order.ID})
	if err != nil {
		return nil, err
	}

	return &models.OrderWithItems{
		Order:    *order,
		Products: itemsOrEmpty(items),
	}, nil
}

// 含有該賣家商品的訂單，只回傳該賣家的訂單商品及小計
func (s *OrderService) SellerOrders(ctx context.Context, sellerID uint) ([]models.SellerOrder, error) {
	rows, err := s.store.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	items, err := s.store.SellerItemsForOrders(ctx, sellerID, ids)
	if err != nil {
		return nil, err
	}

	//其他賣家的商品不可出現在結果中
	var owned []models.OrderItemView
	for _, item := range items {
		if item.SellerID == sellerID {
			owned = append(owned, item)
		}
	}
	byOrder := groupItems(owned)

	result := make([]models.SellerOrder, len(rows))
	for i, row := range rows {
		products := itemsOrEmpty(byOrder[row.ID])
		total := models.Money{}
		for _, item := range products {
			total = total.Add(item.Subtotal())
		}

		result[i] = models.SellerOrder{
			Order:         row.Order,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			Products:      products,
			SellerTotal:   total,
		}
	}
	return result, nil
}

func groupItems(items []models.OrderItemView) map[uint][]models.OrderItemView {
	byOrder := make(map[uint][]models.OrderItemView)
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	return byOrder
}

func itemsOrEmpty(items []models.OrderItemView) []models.OrderItemView {
	if items == nil {
		return []models.OrderItemView{}
	}
	return items
}
