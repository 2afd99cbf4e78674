package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// maxDatumsPerPut is the PutMetricData batch ceiling
const maxDatumsPerPut = 1000

// MetricsClient is the subset of the CloudWatch API used for publishing
type MetricsClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics buffers custom metrics in memory and publishes them to CloudWatch
// on Flush. A Metrics without a client records nothing.
type Metrics struct {
	namespace string
	client    MetricsClient
	logger    *zap.Logger

	mu     sync.Mutex
	buffer []types.MetricDatum
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client MetricsClient, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// NewNoopMetrics returns a Metrics that discards everything
func NewNoopMetrics() *Metrics {
	return &Metrics{logger: zap.NewNop()}
}

// Increment records a count of one for metric, dimensioned by label
func (m *Metrics) Increment(metric, label string) {
	m.add(metric, 1, types.StandardUnitCount, map[string]string{"Operation": label})
}

// RecordDuration records a latency in milliseconds, dimensioned by label
func (m *Metrics) RecordDuration(metric, label string, d time.Duration) {
	m.add(metric, float64(d.Milliseconds()), types.StandardUnitMilliseconds, map[string]string{"Operation": label})
}

// RecordFeedComposition records how a served feed page was assembled
func (m *Metrics) RecordFeedComposition(source string, materializedCount, celebrityCount int) {
	dims := map[string]string{"FeedSource": source}
	m.add("FeedServed", 1, types.StandardUnitCount, dims)
	m.add("MaterializedItems", float64(materializedCount), types.StandardUnitCount, nil)
	m.add("CelebrityItems", float64(celebrityCount), types.StandardUnitCount, nil)
}

func (m *Metrics) add(name string, value float64, unit types.StandardUnit, dimensions map[string]string) {
	if m == nil || m.client == nil {
		return
	}

	var cwDimensions []types.Dimension
	for k, v := range dimensions {
		cwDimensions = append(cwDimensions, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	m.mu.Lock()
	m.buffer = append(m.buffer, types.MetricDatum{
		MetricName: aws.String(name),
		Dimensions: cwDimensions,
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	})
	m.mu.Unlock()
}

// Pending returns the number of buffered datums
func (m *Metrics) Pending() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffer)
}

// Flush publishes buffered metrics. Publishing failures are logged and the
// batch is dropped; metrics never fail a request.
func (m *Metrics) Flush(ctx context.Context) {
	if m == nil || m.client == nil {
		return
	}

	m.mu.Lock()
	pending := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	for start := 0; start < len(pending); start += maxDatumsPerPut {
		end := min(start+maxDatumsPerPut, len(pending))
		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: pending[start:end],
		})
		if err != nil {
			m.logger.Warn("Failed to publish metrics",
				zap.Error(err),
				zap.Int("datums", end-start),
			)
		}
	}
}
