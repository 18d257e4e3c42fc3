package models

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	TotalAmount     Money       `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	City            string      `gorm:"not null" json:"city"`
	State           string      `gorm:"not null" json:"state"`
	ZipCode         string      `gorm:"not null" json:"zip_code"`
	Country         string      `gorm:"not null" json:"country"`
	Phone           string      `gorm:"not null" json:"phone"`
	PaymentMethod   string      `gorm:"not null" json:"payment_method"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// 買家查詢用，附帶訂單商品
type OrderWithItems struct {
	Order
	Products []OrderItemView `json:"products"`
}

// 賣家查詢用，只包含該賣家的商品及小計
type SellerOrder struct {
	Order
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Products      []OrderItemView `json:"products"`
	SellerTotal   Money           `json:"sellerTotal"`
}

// 賣家訂單查詢結果列
type SellerOrderRow struct {
	Order
	CustomerName  string
	CustomerEmail string
}
