// Package report turns a task snapshot into a human-facing weekly report
// and persists a lightweight metadata record of it.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/daytrack/daytrack/client"
)

// Title is the fixed heading of the rendered artifact.
const Title = "Weekly Activity Report"

// The three summary tiers are a product decision, not a tunable; the
// wording and the 0/10 thresholds are fixed.
const (
	summaryNone = "This week had no completed activities. Consider organizing your time better next week to improve productivity and achieve your goals."
	summaryHigh = "Excellent week! You completed %d activities, showing great dedication and time management. Keep up the fantastic work and maintain this momentum."
	summaryGood = "Good week! You completed %d activities. With a bit more planning, you could increase your productivity. Keep pushing forward!"
)

// Row is one line of the report table.
type Row struct {
	Name   string
	Date   string
	Time   string
	Status client.TaskStatus
}

// Report is the assembled artifact value. Only Summary and CompletedCount
// are ever persisted; the row table exists solely for the rendered
// document.
type Report struct {
	ID             string
	Rows           []Row
	Summary        string
	CompletedCount int
	GeneratedAt    time.Time
}

// SelectCompleted filters the snapshot to completed tasks, input order
// preserved.
func SelectCompleted(tasks []client.Task) []client.Task {
	var completed []client.Task
	for _, t := range tasks {
		if t.Status == client.TaskStatusCompleted {
			completed = append(completed, t)
		}
	}
	return completed
}

// Summary returns the narrative for a completed-task count: a fixed
// encouragement at zero, congratulations above ten, moderate encouragement
// in between.
func Summary(completedCount int) string {
	switch {
	case completedCount == 0:
		return summaryNone
	case completedCount > 10:
		return fmt.Sprintf(summaryHigh, completedCount)
	default:
		return fmt.Sprintf(summaryGood, completedCount)
	}
}

// Build assembles the report value from a snapshot. It performs no I/O and
// leaves ID and GeneratedAt zero; Synthesizer.Generate stamps those.
func Build(tasks []client.Task) Report {
	completed := SelectCompleted(tasks)
	rows := make([]Row, 0, len(completed))
	for _, t := range completed {
		rows = append(rows, Row{Name: t.Name, Date: t.Date, Time: t.Time, Status: t.Status})
	}
	return Report{
		Rows:           rows,
		Summary:        Summary(len(completed)),
		CompletedCount: len(completed),
	}
}

// Store is the slice of the activity store the synthesizer needs.
type Store interface {
	CreateReport(ctx context.Context, req client.CreateReportRequest) error
}

// Synthesizer builds reports and records their metadata in the store. It
// is stateless; each Generate call works from the snapshot it is given.
type Synthesizer struct {
	store Store
}

func NewSynthesizer(store Store) *Synthesizer {
	return &Synthesizer{store: store}
}

// Generate builds the report, stamps its identity, then issues a single
// persist call for {summary, completedCount}. A persist failure is
// returned alongside the report: the locally built artifact still stands.
func (s *Synthesizer) Generate(ctx context.Context, tasks []client.Task) (Report, error) {
	rep := Build(tasks)
	rep.ID = uuid.NewString()
	rep.GeneratedAt = time.Now()

	err := s.store.CreateReport(ctx, client.CreateReportRequest{
		Summary:   rep.Summary,
		TaskCount: rep.CompletedCount,
	})
	if err != nil {
		log.Warn().Err(err).Str("report_id", rep.ID).Msg("report: metadata persist failed")
		return rep, fmt.Errorf("report: persist metadata: %w", err)
	}
	log.Debug().Str("report_id", rep.ID).Int("completed", rep.CompletedCount).Msg("report: metadata persisted")
	return rep, nil
}
