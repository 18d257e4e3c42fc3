package models

type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"not null;index" json:"order_id"`
	ProductID uint  `gorm:"not null;index" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     Money `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// 小計 = 數量 x 下單時單價
func (i OrderItem) Subtotal() Money {
	return i.Price.Times(i.Quantity)
}

// 訂單商品加上商品名稱及圖片，商品已刪除時為空字串
type OrderItemView struct {
	OrderItem
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	SellerID uint   `json:"-"`
}
