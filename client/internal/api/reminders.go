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

// ListReminders retrieves the caller's reminders in backend order.
func ListReminders(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/reminders", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError("list reminders", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, failure(resp, "list reminders")
	}

	var reminders []types.Reminder
	if err := json.NewDecoder(resp.Body).Decode(&reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// CreateReminder records a new reminder. Reminders are inert records; the
// client never schedules delivery for them.
func CreateReminder(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateReminderRequest) (*types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/reminders", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, xerrors.NewNetworkError("create reminder", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, failure(resp, "create reminder")
	}

	var reminder types.Reminder
	if err := json.NewDecoder(resp.Body).Decode(&reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

// DeleteReminder removes a reminder by ID.
func DeleteReminder(ctx context.Context, httpClient *http.Client, baseURL, reminderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/reminders/%s", baseURL, reminderID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return xerrors.NewNetworkError("delete reminder", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return failure(resp, "delete reminder")
	}
	return nil
}
