package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestSummaryValuesRoundTrip(t *testing.T) {
	s := RunSummary{
		RunID:      12,
		Status:     "success",
		Categories: 17,
		Records:    4210,
		FinishedAt: time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC),
	}
	values, err := summaryValues(s)
	require.NoError(t, err)
	require.Equal(t, int64(12), values["run_id"])
	require.Equal(t, "success", values["status"])
	require.NotContains(t, values["data"], "error")

	got, err := decodeSummary(values)
	require.NoError(t, err)
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSummaryRejectsMissingData(t *testing.T) {
	_, err := decodeSummary(map[string]interface{}{"run_id": "3"})
	require.Error(t, err)

	_, err = decodeSummary(map[string]interface{}{"data": "{not json"})
	require.Error(t, err)
}

func TestPublishRunUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	p := NewStreamPublisher(client, "eliasstats:runs")
	err := p.PublishRun(context.Background(), RunSummary{RunID: 1, Status: "error"})
	require.Error(t, err)
}

func TestConnectBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url", "runs")
	require.Error(t, err)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	require.NoError(t, p.PublishRun(context.Background(), RunSummary{}))
}
