package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics tracks ingestion outcomes and the metrics snapshot worker.
type PipelineMetrics struct {
	ingestRows       *prometheus.CounterVec
	ingestRuns       *prometheus.CounterVec
	mergeRecords     *prometheus.CounterVec
	datasetSize      prometheus.Gauge
	datasetRevenue   prometheus.Gauge
	snapshotRuns     *prometheus.CounterVec
	snapshotDuration prometheus.Histogram
}

var (
	pipelineMetricsOnce sync.Once
	pipelineMetrics     *PipelineMetrics
)

func Pipeline() *PipelineMetrics {
	return PipelineWithConfig(Config{})
}

func PipelineWithConfig(cfg Config) *PipelineMetrics {
	pipelineMetricsOnce.Do(func() {
		pipelineMetrics = newPipelineMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return pipelineMetrics
}

func ResetPipelineMetricsForTest() {
	pipelineMetricsOnce = sync.Once{}
	pipelineMetrics = nil
}

func newPipelineMetrics(registerer prometheus.Registerer, cfg Config) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "makeinspires-dashboard"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	ingestRows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "dashboard_ingest_rows_total",
			Help:        "Data rows processed by the ingestion pipeline, by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // accepted | missing_fields | duplicate | failed_payment | non_positive_amount
	)

	ingestRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "dashboard_ingest_runs_total",
			Help:        "Ingestion passes, by structural outcome.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | failed
	)

	mergeRecords := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "dashboard_merge_records_total",
			Help:        "Records merged into the transaction store, by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // inserted | duplicate
	)

	datasetSize := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "dashboard_dataset_transactions",
			Help:        "Transactions currently held in the store.",
			ConstLabels: constLabels,
		},
	)

	datasetRevenue := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "dashboard_dataset_revenue_units",
			Help:        "Total revenue of the stored dataset in whole currency units.",
			ConstLabels: constLabels,
		},
	)

	snapshotRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "dashboard_snapshot_runs_total",
			Help:        "Background metrics snapshot recomputations.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | failed
	)

	snapshotDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "dashboard_snapshot_duration_seconds",
			Help:        "Time spent recomputing the metrics snapshot.",
			Buckets:     []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(
		ingestRows,
		ingestRuns,
		mergeRecords,
		datasetSize,
		datasetRevenue,
		snapshotRuns,
		snapshotDuration,
	)

	return &PipelineMetrics{
		ingestRows:       ingestRows,
		ingestRuns:       ingestRuns,
		mergeRecords:     mergeRecords,
		datasetSize:      datasetSize,
		datasetRevenue:   datasetRevenue,
		snapshotRuns:     snapshotRuns,
		snapshotDuration: snapshotDuration,
	}
}

func (m *PipelineMetrics) AddIngestRows(result string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.ingestRows.WithLabelValues(result).Add(float64(count))
}

func (m *PipelineMetrics) IncIngestRun(result string) {
	if m == nil {
		return
	}
	m.ingestRuns.WithLabelValues(result).Inc()
}

func (m *PipelineMetrics) AddMergeRecords(result string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.mergeRecords.WithLabelValues(result).Add(float64(count))
}

func (m *PipelineMetrics) SetDatasetSize(count int) {
	if m == nil {
		return
	}
	m.datasetSize.Set(float64(count))
}

func (m *PipelineMetrics) SetDatasetRevenue(units int64) {
	if m == nil {
		return
	}
	m.datasetRevenue.Set(float64(units))
}

func (m *PipelineMetrics) IncSnapshotRun(result string) {
	if m == nil {
		return
	}
	m.snapshotRuns.WithLabelValues(result).Inc()
}

func (m *PipelineMetrics) ObserveSnapshotDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.snapshotDuration.Observe(d.Seconds())
}
