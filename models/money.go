package models

import (
	"database/sql/driver"
	"github.com/shopspring/decimal"
	"strconv"
)

// 金額，資料庫為DECIMAL(10,2)，JSON固定輸出兩位小數字串
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// 解析字串金額，例如"10.00"
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

func (m Money) Add(o Money) Money {
	return Money{Decimal: m.Decimal.Add(o.Decimal)}
}

// 單價乘以數量
func (m Money) Times(quantity int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(quantity)))}
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(2))), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// SUM()沒有資料時為NULL，視為0
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.Scan(value)
}

func (m Money) Value() (driver.Value, error) {
	return m.StringFixed(2), nil
}
