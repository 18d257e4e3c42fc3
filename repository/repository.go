package repository

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownProduct    = errors.New("unknown product")
)

// MySQL外鍵約束失敗
const mysqlErrNoReferencedRow = 1452

// 資料存取入口，由main建立後注入各service
type Gateway struct {
	Orders *OrderRepository
	Stats  *StatsRepository
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{
		Orders: NewOrderRepository(db),
		Stats:  NewStatsRepository(db),
	}
}

// 將driver錯誤轉為可判斷的錯誤
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrNoReferencedRow {
		return errors.Wrap(ErrUnknownProduct, mysqlErr.Message)
	}
	return err
}
