package reports

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/core/id"
	"stockroom/internal/core/transport"
	"stockroom/internal/core/types"
)

func distribution(counts ...int) []ActivityCount {
	out := make([]ActivityCount, len(ActivityTypes))
	for i, activityType := range ActivityTypes {
		out[i] = ActivityCount{ActivityType: activityType}
		if i < len(counts) {
			out[i].Count = counts[i]
		}
	}
	return out
}

func TestGetActivityReport_Aggregates(t *testing.T) {
	env := newTestEnv(t)
	env.mock.DoFunc = respondWith([]any{
		map[string]any{"_id": "a1", "date": "2024-03-01T10:00:00.000Z", "activityType": "Sale", "details": "Sold 2 widgets", "amount": 100.25, "status": "Completed"},
		map[string]any{"_id": "a2", "activityType": "Sale", "amount": "50.5"},
		map[string]any{"_id": "a3", "activityType": "Delivery", "amount": 999.0},
		map[string]any{"_id": "a4", "activityType": "Payment", "amount": 10.0},
		map[string]any{"_id": "a5", "activityType": "Refund"},
	})

	report := env.svc.GetActivityReport(context.Background(), "2024-03-01", "2024-03-31")
	require.NotNil(t, report)

	assert.Equal(t, 5, report.TotalActivities)
	assert.Equal(t, 150.75, report.TotalSales)
	assert.Equal(t, 1, report.TotalDeliveries)
	assert.Equal(t, distribution(2, 1, 0, 1, 0), report.ActivityDistribution)

	require.Len(t, report.Data, 5)
	assert.Equal(t, Activity{
		ID:           "a1",
		Date:         "2024-03-01T10:00:00.000Z",
		ActivityType: "Sale",
		Details:      "Sold 2 widgets",
		Amount:       100.25,
		Status:       "Completed",
	}, report.Data[0])
	assert.Equal(t, 50.5, report.Data[1].Amount)
	assert.Equal(t, "Refund", report.Data[4].ActivityType)

	reqs := env.mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/reports/activity", reqs[0].Path)
	assert.Equal(t, url.Values{
		"startDate": {"2024-03-01"},
		"endDate":   {"2024-03-31"},
	}, reqs[0].Query)
}

func TestGetActivityReport_SkipsMalformedEntries(t *testing.T) {
	env := newTestEnv(t)
	env.mock.DoFunc = respondWith([]any{
		"garbage",
		nil,
		42.0,
		[]any{"nested"},
		map[string]any{"activityType": "Sale", "amount": "12.5"},
	})

	report := env.svc.GetActivityReport(context.Background(), "", "")

	assert.Equal(t, 1, report.TotalActivities)
	assert.Equal(t, 12.5, report.TotalSales)
	assert.Equal(t, 0, report.TotalDeliveries)
	assert.Equal(t, distribution(1), report.ActivityDistribution)
	require.Len(t, report.Data, 1)

	assert.Empty(t, env.mock.Requests()[0].Query)
}

func TestGetActivityReport_FillsDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.mock.DoFunc = respondWith([]any{
		map[string]any{},
		map[string]any{"_id": "", "amount": "n/a", "status": nil},
	})

	report := env.svc.GetActivityReport(context.Background(), "", "")
	require.Len(t, report.Data, 2)

	wantDate := testNow.Format(types.ISOTimestamp)
	for _, a := range report.Data {
		assert.True(t, id.IsPlaceholder(a.ID), "id %q", a.ID)
		assert.Equal(t, wantDate, a.Date)
		assert.Equal(t, DefaultActivityType, a.ActivityType)
		assert.Equal(t, DefaultActivityDetails, a.Details)
		assert.Equal(t, 0.0, a.Amount)
		assert.Equal(t, DefaultActivityStatus, a.Status)
	}
	assert.NotEqual(t, report.Data[0].ID, report.Data[1].ID)
	assert.Equal(t, "2024-03-15T09:30:00.000Z", wantDate)

	// Defaulted types are not counted in the distribution.
	assert.Equal(t, distribution(), report.ActivityDistribution)
	assert.Equal(t, 2, report.TotalActivities)
}

func TestGetActivityReport_NonArrayPayload(t *testing.T) {
	for _, data := range []any{nil, map[string]any{"data": []any{}}, "oops"} {
		env := newTestEnv(t)
		env.mock.DoFunc = respondWith(data)

		report := env.svc.GetActivityReport(context.Background(), "", "")

		assert.Equal(t, 0, report.TotalActivities)
		assert.Equal(t, 0.0, report.TotalSales)
		assert.Equal(t, distribution(), report.ActivityDistribution)
		assert.NotNil(t, report.Data)
		assert.Empty(t, report.Data)
	}
}

func TestGetActivityReport_SwallowsFailures(t *testing.T) {
	env := newTestEnv(t)
	env.mock.DoFunc = failWith(&transport.Error{Kind: transport.KindNetworkUnreachable})

	report := env.svc.GetActivityReport(context.Background(), "2024-03-01", "2024-03-31")
	require.NotNil(t, report)

	assert.Equal(t, 0, report.TotalActivities)
	assert.Equal(t, 0.0, report.TotalSales)
	assert.Equal(t, 0, report.TotalDeliveries)
	assert.Equal(t, []ActivityCount{}, report.ActivityDistribution)
	assert.Equal(t, []Activity{}, report.Data)

	assert.Len(t, env.errorLogs("Error fetching activity report"), 1)

	b, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"totalActivities": 0,
		"totalSales": 0,
		"totalDeliveries": 0,
		"activityDistribution": [],
		"data": []
	}`, string(b))
}

func TestGetActivityReport_RecoversFromPanic(t *testing.T) {
	env := newTestEnv(t)
	env.mock.DoFunc = func(ctx context.Context, req transport.Request) (*transport.Response, error) {
		panic("decoder exploded")
	}

	report := env.svc.GetActivityReport(context.Background(), "", "")
	require.NotNil(t, report)
	assert.Equal(t, []Activity{}, report.Data)
	assert.Len(t, env.errorLogs("Error fetching activity report"), 1)
}
