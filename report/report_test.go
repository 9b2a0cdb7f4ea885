package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrack/daytrack/analytics"
	"github.com/daytrack/daytrack/client"
)

type fakeStore struct {
	calls []client.CreateReportRequest
	err   error
}

func (f *fakeStore) CreateReport(_ context.Context, req client.CreateReportRequest) error {
	f.calls = append(f.calls, req)
	return f.err
}

func completed(name, date, timeOfDay string) client.Task {
	return client.Task{Name: name, Date: date, Time: timeOfDay, Status: client.TaskStatusCompleted}
}

func pending(name, date string) client.Task {
	return client.Task{Name: name, Date: date, Status: client.TaskStatusPending}
}

func TestSelectCompleted_PreservesOrder(t *testing.T) {
	t.Parallel()
	tasks := []client.Task{
		completed("Gym", "2025-01-06", "07:00"),
		pending("Read", "2025-01-07"),
		completed("Cook", "2025-01-08", "18:00"),
	}
	got := SelectCompleted(tasks)
	require.Len(t, got, 2)
	assert.Equal(t, "Gym", got[0].Name)
	assert.Equal(t, "Cook", got[1].Name)
}

func TestSummary_Tiers(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"This week had no completed activities. Consider organizing your time better next week to improve productivity and achieve your goals.",
		Summary(0))

	eleven := Summary(11)
	assert.Contains(t, eleven, "11")
	assert.True(t, strings.HasPrefix(eleven, "Excellent week!"), eleven)

	five := Summary(5)
	assert.Contains(t, five, "5")
	assert.True(t, strings.HasPrefix(five, "Good week!"), five)

	// The boundary sits at ten: ten is still the moderate tier.
	assert.True(t, strings.HasPrefix(Summary(10), "Good week!"))
	assert.True(t, strings.HasPrefix(Summary(1), "Good week!"))
}

func TestBuild_RowsAndSummary(t *testing.T) {
	t.Parallel()
	tasks := []client.Task{
		completed("Gym", "2025-01-06", "07:00"),
		completed("Gym", "2025-01-08", "07:00"),
		pending("Read", "2025-01-07"),
		completed("Gym", "2025-01-10", "07:00"),
	}

	rep := Build(tasks)
	require.Len(t, rep.Rows, 3)
	assert.Equal(t, 3, rep.CompletedCount)
	assert.Equal(t, Row{Name: "Gym", Date: "2025-01-06", Time: "07:00", Status: client.TaskStatusCompleted}, rep.Rows[0])
	assert.Contains(t, rep.Summary, "3")
	assert.Empty(t, rep.ID, "Build performs no I/O and stamps no identity")
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()
	rep := Build(nil)
	assert.Empty(t, rep.Rows)
	assert.Zero(t, rep.CompletedCount)
	assert.Equal(t, Summary(0), rep.Summary)
}

func TestGenerate_PersistsMetadataOnly(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	tasks := []client.Task{
		completed("Gym", "2025-01-06", "07:00"),
		completed("Cook", "2025-01-08", "18:00"),
	}

	rep, err := NewSynthesizer(store).Generate(context.Background(), tasks)
	require.NoError(t, err)
	require.NotEmpty(t, rep.ID)
	require.False(t, rep.GeneratedAt.IsZero())

	require.Len(t, store.calls, 1)
	assert.Equal(t, client.CreateReportRequest{Summary: rep.Summary, TaskCount: 2}, store.calls[0])
}

func TestGenerate_PersistFailureKeepsArtifact(t *testing.T) {
	t.Parallel()
	store := &fakeStore{err: errors.New("store unavailable")}
	tasks := []client.Task{completed("Gym", "2025-01-06", "07:00")}

	rep, err := NewSynthesizer(store).Generate(context.Background(), tasks)
	require.Error(t, err)
	require.Len(t, store.calls, 1, "persistence is attempted exactly once, never retried")

	// The built report still stands.
	assert.Len(t, rep.Rows, 1)
	assert.Equal(t, 1, rep.CompletedCount)
	assert.NotEmpty(t, rep.Summary)
	assert.NotEmpty(t, rep.ID)
}

// End-to-end over the derivation pipeline: three completed Gym sessions on a
// Monday plus one pending Tuesday read.
func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()
	tasks := []client.Task{
		completed("Gym", "2025-01-06", "07:00"),
		completed("Gym", "2025-01-06", "12:00"),
		completed("Gym", "2025-01-06", "19:00"),
		pending("Read", "2025-01-07"),
	}

	freq := analytics.RankByFrequency(tasks, 5)
	require.Equal(t, []analytics.FrequencyEntry{{Name: "Gym", Count: 3}, {Name: "Read", Count: 1}}, freq)

	buckets := analytics.BucketByWeekday(tasks)
	assert.Equal(t, 3, buckets[0].Count, "Monday")
	assert.Equal(t, 1, buckets[1].Count, "Tuesday")
	for i := 2; i < 7; i++ {
		assert.Zero(t, buckets[i].Count)
	}

	rep := Build(tasks)
	require.Len(t, rep.Rows, 3)
	assert.True(t, strings.HasPrefix(rep.Summary, "Good week!"))
	assert.Contains(t, rep.Summary, "3")
}
