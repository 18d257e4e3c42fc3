package models

import "time"

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// 使用者由會員模組維護
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"unique;not null"`
	Role      string `gorm:"type:varchar(20);not null;default:'buyer'"`
	CreatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
