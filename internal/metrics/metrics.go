package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"linkledger/internal/db"
)

var (
	backlinksCategoryDesc = prometheus.NewDesc(
		"linkledger_backlinks_by_category",
		"Live global backlink count per category",
		[]string{"category"},
		nil,
	)
	backlinksStatusDesc = prometheus.NewDesc(
		"linkledger_backlinks_by_status",
		"Live global backlink count per workflow status",
		[]string{"status"},
		nil,
	)

	importRowsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkledger_import_rows_added_total",
		Help: "Total spreadsheet rows accepted by imports",
	})
	importRowsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkledger_import_rows_skipped_total",
		Help: "Total spreadsheet rows skipped by imports, by reason",
	}, []string{"reason"})
)

// BacklinkCollector is a custom Prometheus collector that reads backlink
// counts from the database on each scrape.
type BacklinkCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *BacklinkCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- backlinksCategoryDesc
	ch <- backlinksStatusDesc
}

// Collect queries the database for backlink counts and emits them as gauges.
func (c *BacklinkCollector) Collect(ch chan<- prometheus.Metric) {
	byCategory, err := c.db.CountBacklinksByCategory(context.Background())
	if err != nil {
		slog.Error("failed to collect backlink category metrics", "error", err)
		return
	}
	for category, count := range byCategory {
		ch <- prometheus.MustNewConstMetric(
			backlinksCategoryDesc,
			prometheus.GaugeValue,
			float64(count),
			category,
		)
	}

	byStatus, err := c.db.CountBacklinksByStatus(context.Background())
	if err != nil {
		slog.Error("failed to collect backlink status metrics", "error", err)
		return
	}
	for status, count := range byStatus {
		ch <- prometheus.MustNewConstMetric(
			backlinksStatusDesc,
			prometheus.GaugeValue,
			float64(count),
			status,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&BacklinkCollector{db: database})
		prometheus.MustRegister(importRowsAdded, importRowsSkipped)
	})
}

// RecordImportAdded counts rows accepted by an import batch.
func RecordImportAdded(n int) {
	importRowsAdded.Add(float64(n))
}

// RecordImportSkipped counts a skipped import row by reason.
func RecordImportSkipped(reason string) {
	importRowsSkipped.WithLabelValues(reason).Inc()
}
