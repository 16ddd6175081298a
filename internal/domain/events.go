package domain

import "time"

type OrderCreatedEvent struct {
	OrderID     string      `json:"order_id"`
	TableNumber int         `json:"table_number"`
	Items       []OrderItem `json:"items"`
	Timestamp   time.Time   `json:"timestamp"`
}
