package events

import (
	"Marketplace/models"
	"encoding/json"
	"github.com/google/uuid"
	"strconv"
	"time"
)

const (
	EventOrderCreated = "OrderCreated"
	TopicOrderCreated = "marketplace.order.created"
)

type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderCreatedItem struct {
	ProductID uint         `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
}

type OrderCreated struct {
	OrderID     uint               `json:"order_id"`
	UserID      uint               `json:"user_id"`
	TotalAmount models.Money       `json:"total_amount"`
	Items       []OrderCreatedItem `json:"items"`
}

func NewOrderCreated(order *models.Order, items []models.OrderItem) OrderCreated {
	event := OrderCreated{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       make([]OrderCreatedItem, len(items)),
	}
	for i, item := range items {
		event.Items[i] = OrderCreatedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return event
}

// 以訂單ID作為partition key，同一訂單的事件維持順序
func (e OrderCreated) Key() []byte {
	return []byte(strconv.FormatUint(uint64(e.OrderID), 10))
}

func NewEnvelope(eventType, producer string, payload interface{}) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Producer:   producer,
		Payload:    data,
	}, nil
}
