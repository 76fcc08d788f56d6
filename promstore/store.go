// Package promstore instruments a gofilter.RecordStore with Prometheus
// metrics.
package promstore

import (
	"context"
	"time"

	"github.com/Alp4ka/gofilter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Store wraps a RecordStore and records, per operation, the number of calls
// by outcome and their latency. Results and errors pass through untouched.
type Store struct {
	next     gofilter.RecordStore
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	returned *prometheus.HistogramVec
}

// New registers the metrics with reg. Use a dedicated registry per Store;
// registering twice with the same registry panics.
func New(next gofilter.RecordStore, reg prometheus.Registerer) *Store {
	factory := promauto.With(reg)

	return &Store{
		next: next,
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gofilter",
				Name:      "store_operations_total",
				Help:      "Total number of record store operations",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gofilter",
				Name:      "store_operation_duration_seconds",
				Help:      "Record store operation latency in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"operation"},
		),
		returned: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gofilter",
				Name:      "store_rows_returned",
				Help:      "Number of rows returned by record store reads",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"operation"},
		),
	}
}

// Find - implements gofilter.RecordStore.
func (s *Store) Find(ctx context.Context, q gofilter.Query) ([]gofilter.Record, error) {
	defer s.observe("find", time.Now())

	records, err := s.next.Find(ctx, q)
	s.count("find", err)
	if err == nil {
		s.returned.WithLabelValues("find").Observe(float64(len(records)))
	}

	return records, err
}

// FindIDs - implements gofilter.RecordStore.
func (s *Store) FindIDs(ctx context.Context, q gofilter.Query) ([]int64, error) {
	defer s.observe("find_ids", time.Now())

	ids, err := s.next.FindIDs(ctx, q)
	s.count("find_ids", err)
	if err == nil {
		s.returned.WithLabelValues("find_ids").Observe(float64(len(ids)))
	}

	return ids, err
}

// Count - implements gofilter.RecordStore.
func (s *Store) Count(ctx context.Context, filter gofilter.Predicates) (int64, error) {
	defer s.observe("count", time.Now())

	total, err := s.next.Count(ctx, filter)
	s.count("count", err)

	return total, err
}

// SumByGroup - implements gofilter.RecordStore.
func (s *Store) SumByGroup(ctx context.Context, filter gofilter.Predicates) ([]gofilter.GroupTotal, error) {
	defer s.observe("sum_by_group", time.Now())

	totals, err := s.next.SumByGroup(ctx, filter)
	s.count("sum_by_group", err)

	return totals, err
}

func (s *Store) count(operation string, err error) {
	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	s.calls.WithLabelValues(operation, outcome).Inc()
}

func (s *Store) observe(operation string, started time.Time) {
	s.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

var _ gofilter.RecordStore = (*Store)(nil)
