package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/daytrack/daytrack/analytics"
	"github.com/daytrack/daytrack/client"
	"github.com/daytrack/daytrack/report"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(72)
)

func renderTasks(tasks []client.Task) string {
	if len(tasks) == 0 {
		return dimStyle.Render("no tasks")
	}
	var b strings.Builder
	b.WriteString(headRowStyle.Render(fmt.Sprintf("%-28s %-12s %-7s %s", "Activity", "Date", "Time", "Status")))
	b.WriteString("\n")
	for _, t := range tasks {
		line := fmt.Sprintf("%-28s %-12s %-7s %s", t.Name, t.Date, t.Time, t.Status)
		if t.Status == client.TaskStatusCompleted {
			line = doneStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReminders(reminders []client.Reminder) string {
	if len(reminders) == 0 {
		return dimStyle.Render("no reminders")
	}
	var b strings.Builder
	for _, r := range reminders {
		b.WriteString(fmt.Sprintf("%s  %s\n", r.Text, dimStyle.Render(r.Date+" at "+r.Time)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderFrequency(entries []analytics.FrequencyEntry) string {
	if len(entries) == 0 {
		return dimStyle.Render("no activities performed yet")
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%-28s %d times\n", e.Name, e.Count))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWeekdays(buckets []analytics.WeekdayCount) string {
	var b strings.Builder
	for _, wc := range buckets {
		bar := strings.Repeat("█", wc.Count)
		if bar == "" {
			bar = dimStyle.Render("·")
		}
		b.WriteString(fmt.Sprintf("%-4s %-3d %s\n", wc.Day, wc.Count, bar))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderReport produces the full textual artifact: fixed title, the
// completed-task table, and the narrative summary.
func renderReport(rep report.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(report.Title))
	b.WriteString("\n\n")
	if len(rep.Rows) == 0 {
		b.WriteString(dimStyle.Render("no completed activities"))
	} else {
		b.WriteString(headRowStyle.Render(fmt.Sprintf("%-28s %-12s %-7s %s", "Activity", "Date", "Time", "Status")))
		b.WriteString("\n")
		for _, row := range rep.Rows {
			b.WriteString(fmt.Sprintf("%-28s %-12s %-7s %s\n", row.Name, row.Date, row.Time, row.Status))
		}
	}
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render("Summary\n\n" + rep.Summary))
	b.WriteString("\n")
	return b.String()
}
