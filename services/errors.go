package services

import "Marketplace/repository"

// 輸入資料錯誤，回應400
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoOrderItems    = &ValidationError{Message: "no order items"}
	ErrInvalidQuantity = &ValidationError{Message: "order item quantity must be at least 1"}
)

// 訂單不存在或不屬於該買家
var ErrOrderNotFound = repository.ErrNotFound

// 僅在開啟庫存檢查時出現
var ErrInsufficientStock = repository.ErrInsufficientStock

// 建立訂單的transaction失敗，所有寫入皆已rollback
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return "order creation failed: " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// 統計查詢失敗，不回傳部分結果
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return "stats aggregation failed: " + e.Err.Error()
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
