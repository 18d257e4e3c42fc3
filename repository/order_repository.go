package repository

import (
	"Marketplace/models"
	"context"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// 建立訂單、訂單商品並扣庫存，全部在同一個transaction內完成
// gorm.Transaction在回傳錯誤或panic時rollback，連線一律歸還連線池
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem, guardStock bool) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return errors.Wrap(classify(err), "insert order")
		}

		//依照傳入順序逐筆新增並扣庫存
		for i := range items {
			items[i].ID = 0
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return errors.Wrapf(classify(err), "insert order item %d", items[i].ProductID)
			}

			if err := decrementStock(tx, items[i].ProductID, items[i].Quantity, guardStock); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

func decrementStock(tx *gorm.DB, productID uint, quantity int, guard bool) error {
	query := tx.Model(&models.Product{}).Where("id = ?", productID)
	if guard {
		query = query.Where("stock >= ?", quantity)
	}

	result := query.UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return errors.Wrapf(result.Error, "decrement stock of product %d", productID)
	}
	if guard && result.RowsAffected == 0 {
		return errors.Wrapf(ErrInsufficientStock, "product %d", productID)
	}
	return nil
}

// 買家的所有訂單，新到舊
func (r *OrderRepository) FindByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "query orders by user")
	}
	return orders, nil
}

// 只回傳屬於該買家的訂單
func (r *OrderRepository) FindByIDForUser(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).
		Error
	if err != nil {
		return nil, classify(err)
	}
	return &order, nil
}

const orderItemsQuery = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
       COALESCE(p.name, '') AS name,
       COALESCE(p.image_url, '') AS image_url,
       COALESCE(p.seller_id, 0) AS seller_id
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id AND p.deleted_at IS NULL
WHERE oi.order_id IN ?
ORDER BY oi.id`

// 訂單商品，商品已刪除時仍保留訂單商品，名稱及圖片為空
func (r *OrderRepository) ItemsForOrders(ctx context.Context, orderIDs []uint) ([]models.OrderItemView, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var items []models.OrderItemView
	if err := r.db.WithContext(ctx).Raw(orderItemsQuery, orderIDs).Scan(&items).Error; err != nil {
		return nil, errors.Wrap(err, "query order items")
	}
	return items, nil
}

const sellerOrdersQuery = `
SELECT DISTINCT o.id, o.user_id, o.total_amount, o.shipping_address, o.city, o.state,
       o.zip_code, o.country, o.phone, o.payment_method, o.status, o.created_at,
       COALESCE(u.name, '') AS customer_name,
       COALESCE(u.email, '') AS customer_email
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
JOIN products p ON p.id = oi.product_id
LEFT JOIN users u ON u.id = o.user_id
WHERE p.seller_id = ?
ORDER BY o.created_at DESC, o.id DESC`

// 含有該賣家商品的訂單，新到舊
func (r *OrderRepository) FindBySeller(ctx context.Context, sellerID uint) ([]models.SellerOrderRow, error) {
	var rows []models.SellerOrderRow
	if err := r.db.WithContext(ctx).Raw(sellerOrdersQuery, sellerID).Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query seller orders")
	}
	return rows, nil
}

const sellerItemsQuery = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
       p.name, COALESCE(p.image_url, '') AS image_url, p.seller_id
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE p.seller_id = ? AND oi.order_id IN ?
ORDER BY oi.id`

// 只取該賣家的訂單商品
func (r *OrderRepository) SellerItemsForOrders(ctx context.Context, sellerID uint, orderIDs []uint) ([]models.OrderItemView, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var items []models.OrderItemView
	if err := r.db.WithContext(ctx).Raw(sellerItemsQuery, sellerID, orderIDs).Scan(&items).Error; err != nil {
		return nil, errors.Wrap(err, "query seller order items")
	}
	return items, nil
}

// 查詢商品所屬賣家，用於清除統計快取
func (r *OrderRepository) SellerIDsForProducts(ctx context.Context, productIDs []uint) ([]uint, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var sellerIDs []uint
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Product{}).
		Where("id IN ?", productIDs).
		Distinct().
		Pluck("seller_id", &sellerIDs).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "query product sellers")
	}
	return sellerIDs, nil
}
