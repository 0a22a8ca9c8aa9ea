package alerts

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sourcegraph/conc"

	"wishloop/internal/database"
	"wishloop/internal/metrics"
	"wishloop/models"
)

// Evaluator checks an item's active price alerts after a price change and
// dispatches notifications for the ones that fire. It runs inline with the
// price update but its failures are isolated by the caller: evaluation is a
// derived side effect and must not fail the update itself.
type Evaluator struct {
	db       *database.DB
	notifier Notifier
	wg       conc.WaitGroup
}

// NewEvaluator creates a price alert evaluator.
func NewEvaluator(db *database.DB, notifier Notifier) *Evaluator {
	return &Evaluator{db: db, notifier: notifier}
}

// Wait blocks until all in-flight notification dispatches complete.
func (e *Evaluator) Wait() {
	e.wg.Wait()
}

// EvaluatePriceChange runs the alert check for an item whose price just
// changed. A price that does not parse means no check is possible and is
// skipped silently. Target-price and percent-drop conditions are evaluated
// independently with OR semantics; a fired alert gets its lastNotifiedAt
// stamped, with no cooldown against re-firing on the next matching update.
func (e *Evaluator) EvaluatePriceChange(ctx context.Context, item *models.Item) error {
	current, err := models.ParseAmount(item.Price)
	if err != nil {
		log.Printf("[alerts] skipping alert check for item %s: %v", item.ID, err)
		return nil
	}

	watching, err := e.db.Alerts.ListActiveByItem(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("load alerts: %w", err)
	}
	if len(watching) == 0 {
		return nil
	}

	// The new price is already the last history entry, so the previous price
	// is the second-to-last. With fewer than two points percent-drop alerts
	// cannot fire; target-price alerts still can.
	var previous *float64
	history, err := e.db.Items.PriceHistory(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("load price history: %w", err)
	}
	if len(history) >= 2 {
		if prev, perr := models.ParseAmount(history[len(history)-2].Price); perr == nil {
			previous = &prev
		}
	}

	var merr *multierror.Error
	for _, alert := range watching {
		if !e.shouldFire(alert, current, previous) {
			continue
		}

		now := time.Now().UTC()
		if err := e.db.Alerts.MarkNotified(ctx, alert.ID, now); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("mark alert %s notified: %w", alert.ID, err))
			continue
		}
		metrics.AlertsFired.Inc()

		a, it := alert, item
		e.wg.Go(func() {
			e.notifier.Notify(context.WithoutCancel(ctx), a, it, current)
		})
	}
	return merr.ErrorOrNil()
}

func (e *Evaluator) shouldFire(alert *models.PriceAlert, current float64, previous *float64) bool {
	if alert.TargetPrice != nil {
		if target, err := models.ParseAmount(*alert.TargetPrice); err == nil && current <= target {
			return true
		}
	}
	if alert.PercentDrop != nil && previous != nil && *previous > 0 {
		drop := (*previous - current) / *previous * 100
		if drop >= *alert.PercentDrop {
			return true
		}
	}
	return false
}
