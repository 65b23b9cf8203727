package services

import (
	"math"
	"testing"
	"time"

	"event-hub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestClassifyEvent(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	dayAfter := now.Add(48 * time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  eventBucket
	}{
		{"running now", datePtr(yesterday), datePtr(tomorrow), bucketLive},
		{"starts tomorrow", datePtr(tomorrow), datePtr(dayAfter), bucketUpcoming},
		{"ended yesterday", datePtr(yesterday.Add(-24 * time.Hour)), datePtr(yesterday), bucketPast},
		{"start only, future", datePtr(tomorrow), nil, bucketUpcoming},
		{"start only, passed", datePtr(yesterday), nil, bucketPast},
		{"end only, passed", nil, datePtr(yesterday), bucketPast},
		{"end only, future", nil, datePtr(tomorrow), bucketNone},
		{"no dates", nil, nil, bucketNone},
		{"starts exactly now", datePtr(now), datePtr(tomorrow), bucketLive},
		{"ends exactly now", datePtr(yesterday), datePtr(now), bucketLive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyEvent(now, tt.start, tt.end))
		})
	}
}

func TestBuildEventStats(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	dayAfter := now.Add(48 * time.Hour)

	events := []models.Event{
		{ID: "e1", StartDate: datePtr(yesterday), EndDate: datePtr(tomorrow), RegisteredCount: 5},
		{ID: "e2", StartDate: datePtr(tomorrow), EndDate: datePtr(dayAfter), RegisteredCount: 3},
		{ID: "e3", EndDate: datePtr(yesterday), RegisteredCount: 2},
		{ID: "e4"}, // no dates: counted in total only
	}

	stats := BuildEventStats(now, events)

	assert.Equal(t, 4, stats.TotalEvents)
	assert.Equal(t, 1, stats.LiveEvents)
	assert.Equal(t, 1, stats.UpcomingEvents)
	assert.Equal(t, 1, stats.PastEvents)
	assert.Equal(t, 10, stats.TotalRegistered)
}

func TestBuildRegistrationInfo_Full(t *testing.T) {
	info := BuildRegistrationInfo(models.Event{ID: "e1", Capacity: 10, RegisteredCount: 10})

	require.NotNil(t, info.AvailableSpots)
	assert.Equal(t, 0, *info.AvailableSpots)
	assert.True(t, info.IsFull)
}

func TestBuildRegistrationInfo_SpotsLeft(t *testing.T) {
	info := BuildRegistrationInfo(models.Event{ID: "e1", Capacity: 10, RegisteredCount: 4})

	require.NotNil(t, info.AvailableSpots)
	assert.Equal(t, 6, *info.AvailableSpots)
	assert.False(t, info.IsFull)
}

func TestBuildRegistrationInfo_NoCapacity(t *testing.T) {
	info := BuildRegistrationInfo(models.Event{ID: "e1", RegisteredCount: 250})

	assert.Nil(t, info.Capacity)
	assert.Nil(t, info.AvailableSpots)
	assert.False(t, info.IsFull)
}

func TestEventService_CreateCompletesSkeletonInPlace(t *testing.T) {
	app := newTestApp(t)
	service := NewEventService(app)

	skeleton := createEvent(t, app, "Tech Fest", nil)

	created, err := service.Create(EventInput{
		Name:        "Tech Fest",
		Description: "annual tech fest",
		StartDate:   "2026-09-01 09:00:00.000Z",
		EndDate:     "2026-09-02 18:00:00.000Z",
	})
	require.NoError(t, err)
	assert.Equal(t, skeleton.Id, created.ID)
	assert.Equal(t, "annual tech fest", created.Description)

	records, err := app.FindRecordsByFilter("events", "name = 'Tech Fest'", "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	other, err := service.Create(EventInput{
		Name:        "Robotics",
		Description: "robot wars",
		StartDate:   "2026-09-01 09:00:00.000Z",
		EndDate:     "2026-09-02 18:00:00.000Z",
	})
	require.NoError(t, err)
	assert.NotEqual(t, skeleton.Id, other.ID)
}

func TestEventService_MigratePastEventsIdempotent(t *testing.T) {
	app := newTestApp(t)
	service := NewEventService(app)

	createEvent(t, app, "Hack Night", map[string]any{
		"description": "already over",
		"start_date":  "2024-01-01 09:00:00.000Z",
		"end_date":    "2024-01-01 18:00:00.000Z",
	})
	createEvent(t, app, "Future Fest", map[string]any{
		"description": "not yet",
		"start_date":  "2099-01-01 09:00:00.000Z",
		"end_date":    "2099-01-02 18:00:00.000Z",
	})

	first, err := service.MigratePastEvents()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Scanned)
	assert.Equal(t, 1, first.Added)

	second, err := service.MigratePastEvents()
	require.NoError(t, err)
	assert.Equal(t, 1, second.Scanned)
	assert.Equal(t, 0, second.Added)

	records, err := app.FindRecordsByFilter("past_events", "", "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestNormalizeCount(t *testing.T) {
	ten := 10.0
	nan := math.NaN()
	inf := math.Inf(1)
	negative := -3.0

	require.NotNil(t, normalizeCount(&ten))
	assert.Equal(t, 10, *normalizeCount(&ten))

	assert.Nil(t, normalizeCount(nil))
	assert.Nil(t, normalizeCount(&nan))
	assert.Nil(t, normalizeCount(&inf))
	assert.Nil(t, normalizeCount(&negative))
}
