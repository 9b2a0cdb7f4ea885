package types

// ------------------------------
// Request Types
// ------------------------------

// Credentials carries a name/password pair for login and registration.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateTaskRequest holds parameters for a new task.
type CreateTaskRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// UpdateTaskStatusRequest sets a task's status.
type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status"`
}

// CreateReminderRequest holds parameters for a new reminder.
type CreateReminderRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// CreateReportRequest is the persisted report metadata. Row-level detail is
// never sent; the backend keeps only the summary and the completed count
// (wire name taskCount, matching the service).
type CreateReportRequest struct {
	Summary   string `json:"summary"`
	TaskCount int    `json:"taskCount"`
}
