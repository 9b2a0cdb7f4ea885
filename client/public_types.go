package client

import "github.com/daytrack/daytrack/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	User     = types.User
	Task     = types.Task
	Reminder = types.Reminder

	TaskStatus = types.TaskStatus

	// Requests
	CreateTaskRequest     = types.CreateTaskRequest
	CreateReminderRequest = types.CreateReminderRequest
	CreateReportRequest   = types.CreateReportRequest
)

const (
	TaskStatusPending   = types.TaskStatusPending
	TaskStatusCompleted = types.TaskStatusCompleted
)
