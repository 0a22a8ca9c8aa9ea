package alerts

import (
	"context"
	"log"

	"wishloop/models"
)

// Notifier delivers a fired price alert to the watching user. Actual
// delivery channels (email, push) live behind this interface.
type Notifier interface {
	Notify(ctx context.Context, alert *models.PriceAlert, item *models.Item, currentPrice float64)
}

// LogNotifier is the stub dispatcher: it records the event in the process log.
type LogNotifier struct{}

// NewLogNotifier creates the logging stub notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the fired alert.
func (n *LogNotifier) Notify(_ context.Context, alert *models.PriceAlert, item *models.Item, currentPrice float64) {
	log.Printf("[alerts] alert fired id=%s user=%s item=%s title=%q price=%.2f", alert.ID, alert.UserID, item.ID, item.Title, currentPrice)
}
