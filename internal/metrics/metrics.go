package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClaimTransitions counts successful claim state-machine transitions by action.
var ClaimTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wishloop_claim_transitions_total",
	Help: "Successful claim/purchase state transitions by action.",
}, []string{"action"})

// AlertsFired counts price alerts that met their firing condition.
var AlertsFired = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wishloop_price_alerts_fired_total",
	Help: "Price alerts that fired on a price update.",
})

// ScrapeRequests counts product metadata fetches by outcome.
var ScrapeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wishloop_scrape_requests_total",
	Help: "Product page metadata fetches by outcome.",
}, []string{"outcome"})
