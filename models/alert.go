package models

import "time"

// PriceAlert is a user-registered watch on an item's price. Either or both of
// TargetPrice and PercentDrop may be set; the alert fires when any set
// condition is met.
type PriceAlert struct {
	ID             string     `json:"id"`
	ItemID         string     `json:"itemId"`
	UserID         string     `json:"userId"`
	TargetPrice    *string    `json:"targetPrice,omitempty"` // same free-text format as Item.Price
	PercentDrop    *float64   `json:"percentDrop,omitempty"`
	IsActive       bool       `json:"isActive"`
	LastNotifiedAt *time.Time `json:"lastNotifiedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
