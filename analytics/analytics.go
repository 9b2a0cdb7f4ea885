// Package analytics derives frequency rankings and weekday distributions
// from a task snapshot. Both functions are pure: identical input yields
// identical output and nothing carries over between calls.
package analytics

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/daytrack/daytrack/client"
)

// DefaultTopN is the ranking size used when the caller passes topN <= 0.
const DefaultTopN = 5

// dateLayout is the backend's wire format for task dates.
const dateLayout = "2006-01-02"

// FrequencyEntry is one row of a frequency ranking.
type FrequencyEntry struct {
	Name  string
	Count int
}

// WeekdayCount is one bucket of a weekday distribution.
type WeekdayCount struct {
	Day   string
	Count int
}

// Weekdays fixes the bucket order: the week starts Monday and Sunday is
// bucketed last.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RankByFrequency groups tasks by exact name, counts occurrences and
// returns at most topN entries ordered by descending count. Names are
// compared case-sensitively with no normalization. Ties keep the order in
// which the names first appeared in the input.
func RankByFrequency(tasks []client.Task, topN int) []FrequencyEntry {
	if topN <= 0 {
		topN = DefaultTopN
	}

	counts := make(map[string]int, len(tasks))
	order := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if _, seen := counts[t.Name]; !seen {
			order = append(order, t.Name)
		}
		counts[t.Name]++
	}

	entries := make([]FrequencyEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, FrequencyEntry{Name: name, Count: counts[name]})
	}
	// Stable sort keeps first-appearance order among equal counts.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// BucketByWeekday counts tasks per weekday of their date. The result
// always has exactly seven buckets in Weekdays order, zero-filled. A task
// whose date does not parse is logged and excluded rather than failing
// the whole aggregation.
func BucketByWeekday(tasks []client.Task) []WeekdayCount {
	var counts [7]int
	for _, t := range tasks {
		d, err := time.Parse(dateLayout, t.Date)
		if err != nil {
			log.Warn().Str("task_id", t.ID).Str("date", t.Date).Msg("analytics: unparseable date excluded from weekday buckets")
			continue
		}
		// time.Weekday counts Sunday as 0; rotate so Monday is first.
		counts[(int(d.Weekday())+6)%7]++
	}

	out := make([]WeekdayCount, len(Weekdays))
	for i, day := range Weekdays {
		out[i] = WeekdayCount{Day: day, Count: counts[i]}
	}
	return out
}
