package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/types"
)

// ListTasks retrieves the caller's full task snapshot, in backend order.
func ListTasks(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/tasks", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError("list tasks", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, failure(resp, "list tasks")
	}

	var tasks []types.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask records a new pending task.
func CreateTask(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateTaskRequest) (*types.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/tasks", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError("create task", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, failure(resp, "create task")
	}

	var task types.Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus sets the status of an existing task.
func UpdateTaskStatus(ctx context.Context, httpClient *http.Client, baseURL, taskID string, status types.TaskStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("update task: invalid status %q", status)
	}
	body, err := json.Marshal(types.UpdateTaskStatusRequest{Status: status})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/tasks/%s", baseURL, taskID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return xerrors.NewNetworkError("update task", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return failure(resp, "update task")
	}
	return nil
}

// DeleteTask removes a task by ID.
func DeleteTask(ctx context.Context, httpClient *http.Client, baseURL, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/tasks/%s", baseURL, taskID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return xerrors.NewNetworkError("delete task", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return failure(resp, "delete task")
	}
	return nil
}
