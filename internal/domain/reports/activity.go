package reports

import (
	"context"
	"net/url"

	"stockroom/internal/core/id"
	"stockroom/internal/core/transport"
	"stockroom/internal/core/types"
)

// GetActivityReport fetches GET /api/reports/activity and aggregates it.
// It never fails: any error is logged and an empty report is returned.
func (s *Service) GetActivityReport(ctx context.Context, startDate, endDate string) (report *ActivityReport) {
	log := s.log.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Errorw("Error fetching activity report", "panic", r)
			report = emptyActivityReport()
		}
	}()

	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}

	resp, err := s.transport.Do(ctx, transport.Get(pathActivityReport, q))
	if err != nil {
		log.Errorw("Error fetching activity report", "error", err)
		return emptyActivityReport()
	}

	var data any
	if resp != nil {
		data = resp.Data
	}
	return s.buildActivityReport(data)
}

func (s *Service) buildActivityReport(data any) *ActivityReport {
	entries, _ := data.([]any)

	distribution := make([]ActivityCount, len(ActivityTypes))
	for i, activityType := range ActivityTypes {
		distribution[i] = ActivityCount{
			ActivityType: activityType,
			Count:        countByType(entries, activityType),
		}
	}

	activities := make([]Activity, 0, len(entries))
	var saleAmounts []float64
	deliveries := 0
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		a := s.normalizeActivity(obj)
		activities = append(activities, a)

		switch a.ActivityType {
		case ActivitySale:
			saleAmounts = append(saleAmounts, a.Amount)
		case ActivityDelivery:
			deliveries++
		}
	}

	return &ActivityReport{
		TotalActivities:      len(activities),
		TotalSales:           types.SumAmounts(saleAmounts...),
		TotalDeliveries:      deliveries,
		ActivityDistribution: distribution,
		Data:                 activities,
	}
}

// normalizeActivity fills every blank field with its default.
func (s *Service) normalizeActivity(obj map[string]any) Activity {
	activityID := types.StringOr(obj["_id"], "")
	if activityID == "" {
		activityID = id.Placeholder()
	}
	date := types.StringOr(obj["date"], "")
	if date == "" {
		date = s.clock.Now().UTC().Format(types.ISOTimestamp)
	}

	return Activity{
		ID:           activityID,
		Date:         date,
		ActivityType: types.StringOr(obj["activityType"], DefaultActivityType),
		Details:      types.StringOr(obj["details"], DefaultActivityDetails),
		Amount:       types.ParseAmount(obj["amount"]),
		Status:       types.StringOr(obj["status"], DefaultActivityStatus),
	}
}

// countByType counts raw entries whose activityType equals activityType.
func countByType(entries []any, activityType string) int {
	n := 0
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if t, _ := obj["activityType"].(string); t == activityType {
			n++
		}
	}
	return n
}
