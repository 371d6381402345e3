// Package metrics defines and registers all custom Prometheus metrics for the
// secure vault lookup service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vault"

// ── Search metrics ────────────────────────────────────────────────────────────

// SearchesTotal counts secure-search requests that reached the service.
// Labels:
//   - field: "account_id", "customer_name", "name", or "other"
//   - role: the caller's claimed role after normalisation ("admin" / "user")
//   - result: "found", "not_found", "invalid", or "error"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of secure-search requests, by field, claimed role and result.",
	},
	[]string{"field", "role", "result"},
)

// DisclosuresTotal counts how found records were returned.
// Label:
//   - disclosure: "full" (data included) or "redacted" (data omitted)
var DisclosuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "disclosures_total",
		Help:      "Total number of found records returned, by claimed role and disclosure level.",
	},
	[]string{"role", "disclosure"},
)

// DecryptFailuresTotal counts records that could not be opened or parsed.
var DecryptFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "decrypt_failures_total",
		Help:      "Total number of sealed records that failed to decrypt or decode.",
	},
)

// RecordCacheTotal counts record cache lookups.
// Label:
//   - result: "hit", "miss", or "error"
var RecordCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_cache_total",
		Help:      "Total number of sealed record cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// SearchDuration measures a search from request to disclosure decision.
var SearchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of secure-search handling inside the service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Seeding metrics ───────────────────────────────────────────────────────────

// RecordsImportedTotal counts records sealed and stored by the seeder.
// Label:
//   - result: "ok", "invalid", or "error"
var RecordsImportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_imported_total",
		Help:      "Total number of plaintext records sealed and stored.",
	},
	[]string{"result"},
)

// ImportQueueDepth tracks records waiting in each seeding worker channel.
var ImportQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_queue_depth",
		Help:      "Current number of records pending in each seeding worker channel.",
	},
	[]string{"worker_id"},
)
