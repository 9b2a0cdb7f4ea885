package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// TaskStatus is the lifecycle state of a task as stored by the backend.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// IsValid reports whether s is one of the statuses the backend accepts.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// User identifies the authenticated account.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a dated activity record. Date and Time are kept as the backend's
// wire strings ("2006-01-02" and "15:04"); the client never rewrites them.
type Task struct {
	ID     string     `json:"_id"`
	Name   string     `json:"name"`
	Date   string     `json:"date"`
	Time   string     `json:"time"`
	Status TaskStatus `json:"status"`
}

// Reminder is an inert dated note. It is never aggregated.
type Reminder struct {
	ID   string `json:"_id"`
	Text string `json:"text"`
	Date string `json:"date"`
	Time string `json:"time"`
}
