package models

import "gorm.io/gorm"

// 商品由商品目錄模組維護，訂單模組只讀取及扣庫存
type Product struct {
	gorm.Model
	SellerID uint   `gorm:"not null;index"`
	Name     string `gorm:"not null"`
	Price    Money  `gorm:"type:decimal(10,2);not null"`
	Stock    int    `gorm:"not null"`
	ImageURL string
}
