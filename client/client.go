package client

import (
	"context"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/daytrack/daytrack/client/internal/api"
	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/tokenstore"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the remote activity store. It owns the Session that
// authenticates every request; construct it with New, call
// Session().Restore once at startup, then use the resource operations.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session

	retry retryPolicy
}

// retryPolicy bounds the read-path retry loop. Mutating operations are
// never retried.
type retryPolicy struct {
	maxAttempts  int
	baseInterval time.Duration
	maxInterval  time.Duration
}

// New constructs a Client for the store at baseURL. Additional options can
// be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errEmptyBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   retryPolicy{maxAttempts: 3, baseInterval: 200 * time.Millisecond, maxInterval: 5 * time.Second},
	}
	c.session = newSession(c)

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.session.tokens == nil {
		path, err := tokenstore.DefaultPath()
		if err != nil {
			return nil, err
		}
		c.session.tokens = tokenstore.NewFileStore(path)
	}

	// Wrap the transport so every request carries the session's bearer
	// token once one is held.
	c.wrapTransportWithSessionToken()

	return c, nil
}

// Session returns the session lifecycle manager bound to this client.
func (c *Client) Session() *Session {
	return c.session
}

// wrapTransportWithSessionToken installs the token-injecting transport on
// top of whatever transport the options left in place.
func (c *Client) wrapTransportWithSessionToken() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &tokenTransport{
		base:  base,
		token: c.session.currentToken,
	}
}

// tokenTransport adds the Authorization header to outgoing requests. The
// token is read per request so a login mid-process takes effect
// immediately.
type tokenTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	tok := t.token()
	if tok == "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+tok)
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Task operations - delegated to internal/api
// --------------------------------------------------------------------

// ListTasks fetches the caller's task snapshot. Recoverable failures are
// retried with exponential backoff.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := c.withRetry(ctx, func() error {
		var err error
		tasks, err = api.ListTasks(ctx, c.http, c.baseURL)
		return err
	})
	observe("list_tasks", err)
	return tasks, err
}

// CreateTask records a new pending task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	t, err := api.CreateTask(ctx, c.http, c.baseURL, req)
	observe("create_task", err)
	return t, err
}

// CompleteTask marks the task as completed.
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	return c.UpdateTaskStatus(ctx, taskID, TaskStatusCompleted)
}

// UpdateTaskStatus sets the task's status.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus) error {
	err := api.UpdateTaskStatus(ctx, c.http, c.baseURL, taskID, status)
	observe("update_task", err)
	return err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	err := api.DeleteTask(ctx, c.http, c.baseURL, taskID)
	observe("delete_task", err)
	return err
}

// --------------------------------------------------------------------
// Reminder operations - delegated to internal/api
// --------------------------------------------------------------------

// ListReminders fetches the caller's reminders. Recoverable failures are
// retried with exponential backoff.
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	var reminders []Reminder
	err := c.withRetry(ctx, func() error {
		var err error
		reminders, err = api.ListReminders(ctx, c.http, c.baseURL)
		return err
	})
	observe("list_reminders", err)
	return reminders, err
}

// CreateReminder records a new reminder.
func (c *Client) CreateReminder(ctx context.Context, req CreateReminderRequest) (*Reminder, error) {
	r, err := api.CreateReminder(ctx, c.http, c.baseURL, req)
	observe("create_reminder", err)
	return r, err
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, reminderID string) error {
	err := api.DeleteReminder(ctx, c.http, c.baseURL, reminderID)
	observe("delete_reminder", err)
	return err
}

// --------------------------------------------------------------------
// Report operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateReport persists report metadata. It issues exactly one request; a
// failed persist is reported and never retried, since the locally built
// artifact stands on its own.
func (c *Client) CreateReport(ctx context.Context, req CreateReportRequest) error {
	err := api.CreateReport(ctx, c.http, c.baseURL, req)
	observe("create_report", err)
	return err
}

// --------------------------------------------------------------------
// Retry
// --------------------------------------------------------------------

// withRetry runs op, retrying Recoverable failures until the attempt
// budget or the context runs out. Irrecoverable failures return at once.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	if c.retry.maxAttempts <= 1 {
		return op()
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retry.baseInterval
	exp.MaxInterval = c.retry.maxInterval

	attempts := 0
	return backoff.Retry(func() error {
		attempts++
		err := op()
		if err == nil {
			return nil
		}
		if xerrors.IsIrrecoverable(err) || attempts >= c.retry.maxAttempts {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(exp, ctx))
}
