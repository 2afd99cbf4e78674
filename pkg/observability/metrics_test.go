package observability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCloudWatch struct {
	mu     sync.Mutex
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func dimension(d types.MetricDatum, name string) string {
	for _, dim := range d.Dimensions {
		if aws.ToString(dim.Name) == name {
			return aws.ToString(dim.Value)
		}
	}
	return ""
}

func TestMetrics_RecordFeedCompositionAndFlush(t *testing.T) {
	// Arrange
	client := &fakeCloudWatch{}
	m := NewMetrics("SocialFeed", client, zap.NewNop())

	// Act
	m.RecordFeedComposition("hybrid", 12, 8)
	require.Equal(t, 3, m.Pending())
	m.Flush(context.Background())

	// Assert
	require.Len(t, client.inputs, 1)
	input := client.inputs[0]
	assert.Equal(t, "SocialFeed", aws.ToString(input.Namespace))
	require.Len(t, input.MetricData, 3)

	served := input.MetricData[0]
	assert.Equal(t, "FeedServed", aws.ToString(served.MetricName))
	assert.Equal(t, "hybrid", dimension(served, "FeedSource"))
	assert.Equal(t, 12.0, aws.ToFloat64(input.MetricData[1].Value))
	assert.Equal(t, 8.0, aws.ToFloat64(input.MetricData[2].Value))
	assert.Zero(t, m.Pending())
}

func TestMetrics_IncrementAndDuration(t *testing.T) {
	client := &fakeCloudWatch{}
	m := NewMetrics("SocialFeed", client, zap.NewNop())

	m.Increment("QueryCount", "GetFeedQuery")
	m.RecordDuration("QueryDuration", "GetFeedQuery", 1500*time.Millisecond)
	m.Flush(context.Background())

	require.Len(t, client.inputs, 1)
	data := client.inputs[0].MetricData
	require.Len(t, data, 2)
	assert.Equal(t, types.StandardUnitCount, data[0].Unit)
	assert.Equal(t, "GetFeedQuery", dimension(data[0], "Operation"))
	assert.Equal(t, types.StandardUnitMilliseconds, data[1].Unit)
	assert.Equal(t, 1500.0, aws.ToFloat64(data[1].Value))
}

func TestMetrics_FlushBatches(t *testing.T) {
	client := &fakeCloudWatch{}
	m := NewMetrics("SocialFeed", client, zap.NewNop())

	for i := 0; i < 2500; i++ {
		m.Increment("QueryCount", "GetFeedQuery")
	}
	m.Flush(context.Background())

	require.Len(t, client.inputs, 3)
	assert.Len(t, client.inputs[0].MetricData, 1000)
	assert.Len(t, client.inputs[1].MetricData, 1000)
	assert.Len(t, client.inputs[2].MetricData, 500)
}

func TestMetrics_FlushErrorDropsBatch(t *testing.T) {
	client := &fakeCloudWatch{err: errors.New("throttled")}
	m := NewMetrics("SocialFeed", client, zap.NewNop())

	m.Increment("QueryErrors", "GetFeedQuery")
	m.Flush(context.Background())

	assert.Len(t, client.inputs, 1)
	assert.Zero(t, m.Pending())
}

func TestMetrics_FlushWithNothingPending(t *testing.T) {
	client := &fakeCloudWatch{}
	m := NewMetrics("SocialFeed", client, zap.NewNop())

	m.Flush(context.Background())

	assert.Empty(t, client.inputs)
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()

	m.Increment("QueryCount", "GetFeedQuery")
	m.RecordFeedComposition("materialized", 1, 0)
	m.Flush(context.Background())

	assert.Zero(t, m.Pending())

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.Increment("QueryCount", "x")
		nilMetrics.Flush(context.Background())
	})
}

func TestNoopTracer_RunsFunction(t *testing.T) {
	tracer := NewNoopTracer()
	called := false

	err := tracer.TraceFunction(context.Background(), "work", func(context.Context) error {
		called = true
		return errors.New("failed")
	})

	assert.True(t, called)
	assert.EqualError(t, err, "failed")
	assert.False(t, tracer.Enabled())
	assert.NotPanics(t, func() {
		tracer.AddAnnotation(context.Background(), "k", "v")
		tracer.AddMetadata(context.Background(), "k", 1)
	})
}

func TestEnabledTracer_WithoutParentSegment(t *testing.T) {
	tracer := NewTracer("feed", true)

	ctx, seg := tracer.StartSubsegment(context.Background(), "orphan")

	assert.Nil(t, seg)
	assert.NotNil(t, ctx)
	assert.True(t, tracer.Enabled())
}
