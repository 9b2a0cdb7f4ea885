package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daytrack/daytrack/client/internal/tokenstore"
	"github.com/daytrack/daytrack/client/internal/types"
)

func authOKHandler(t *testing.T, requests *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(requests, 1)
		switch r.URL.Path {
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer stored-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(types.User{ID: "u1", Name: "Ada"})
		case "/api/auth/login", "/api/auth/register":
			_ = json.NewEncoder(w).Encode(types.AuthResponse{Token: "fresh-token", User: types.User{ID: "u1", Name: "Ada"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestRestore_ValidToken(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(authOKHandler(t, &requests))
	defer srv.Close()

	store := tokenstore.NewMemStore("stored-token")
	c, err := New(srv.URL, WithTokenStore(store))
	require.NoError(t, err)

	c.Session().Restore(context.Background())

	require.Equal(t, StatusAuthenticated, c.Session().Status())
	require.NotNil(t, c.Session().User())
	require.Equal(t, "Ada", c.Session().User().Name)
	require.EqualValues(t, 1, atomic.LoadInt64(&requests), "restore issues exactly one network call")
}

func TestRestore_RejectedTokenIsDiscarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := tokenstore.NewMemStore("expired-token")
	c, err := New(srv.URL, WithTokenStore(store))
	require.NoError(t, err)

	c.Session().Restore(context.Background())

	require.Equal(t, StatusUnauthenticated, c.Session().Status())
	require.Nil(t, c.Session().User())
	tok, _ := store.Load()
	require.Empty(t, tok, "rejected token must be removed from durable storage")
}

func TestRestore_NoTokenNoNetworkCall(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(authOKHandler(t, &requests))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenStore(tokenstore.NewMemStore("")))
	require.NoError(t, err)

	c.Session().Restore(context.Background())

	require.Equal(t, StatusUnauthenticated, c.Session().Status())
	require.EqualValues(t, 0, atomic.LoadInt64(&requests))
}

func TestLogin_SuccessPersistsToken(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(authOKHandler(t, &requests))
	defer srv.Close()

	store := tokenstore.NewMemStore("")
	c, err := New(srv.URL, WithTokenStore(store))
	require.NoError(t, err)

	res := c.Session().Login(context.Background(), "ada", "pw")
	require.True(t, res.Success)
	require.Equal(t, StatusAuthenticated, c.Session().Status())

	tok, _ := store.Load()
	require.Equal(t, "fresh-token", tok)
}

func TestLogin_FailureLeavesStateAndCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenStore(tokenstore.NewMemStore("")))
	require.NoError(t, err)

	res := c.Session().Login(context.Background(), "ada", "bad")
	require.False(t, res.Success)
	require.Equal(t, "Invalid credentials", res.Message)
	require.Equal(t, StatusUnauthenticated, c.Session().Status())
	require.Nil(t, c.Session().User())
}

func TestLogin_FailureDefaultMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenStore(tokenstore.NewMemStore("")))
	require.NoError(t, err)

	res := c.Session().Login(context.Background(), "ada", "pw")
	require.False(t, res.Success)
	require.Equal(t, "Login failed", res.Message)
}

func TestRegister_DelayPrecedesRequest(t *testing.T) {
	var mu sync.Mutex
	var events []string
	record := func(ev string) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record("request")
		_ = json.NewEncoder(w).Encode(types.AuthResponse{Token: "fresh-token", User: types.User{ID: "u1", Name: "Ada"}})
	}))
	defer srv.Close()

	var slept time.Duration
	c, err := New(srv.URL,
		WithTokenStore(tokenstore.NewMemStore("")),
		withSleep(func(d time.Duration) {
			slept = d
			record("sleep")
		}),
	)
	require.NoError(t, err)

	res := c.Session().Register(context.Background(), "ada", "pw")
	require.True(t, res.Success)
	require.Equal(t, 3000*time.Millisecond, slept, "default floor is 3000ms")
	require.Equal(t, []string{"sleep", "request"}, events, "the wait happens before the request goes out")
	require.False(t, c.Session().Processing(), "processing flag returns to false on success")
}

func TestRegister_FailureClearsProcessing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	var sawProcessing bool
	var c *Client
	var err error
	c, err = New(srv.URL,
		WithTokenStore(tokenstore.NewMemStore("")),
		withSleep(func(time.Duration) {
			sawProcessing = c.Session().Processing()
		}),
	)
	require.NoError(t, err)

	res := c.Session().Register(context.Background(), "ada", "pw")
	require.False(t, res.Success)
	require.Equal(t, "Registration failed", res.Message)
	require.True(t, sawProcessing, "flag is raised for the duration of the floor")
	require.False(t, c.Session().Processing(), "processing flag returns to false on failure")
	require.Equal(t, StatusUnauthenticated, c.Session().Status())
}

func TestRegister_ZeroDelaySkipsFloor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(types.AuthResponse{Token: "fresh-token", User: types.User{ID: "u1", Name: "Ada"}})
	}))
	defer srv.Close()

	slept := false
	c, err := New(srv.URL,
		WithTokenStore(tokenstore.NewMemStore("")),
		WithRegisterDelay(0),
		withSleep(func(time.Duration) { slept = true }),
	)
	require.NoError(t, err)

	res := c.Session().Register(context.Background(), "ada", "pw")
	require.True(t, res.Success)
	require.False(t, slept)
}

func TestLogout_ThenRestoreMakesNoNetworkCall(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(authOKHandler(t, &requests))
	defer srv.Close()

	store := tokenstore.NewMemStore("")
	c, err := New(srv.URL, WithTokenStore(store))
	require.NoError(t, err)

	res := c.Session().Login(context.Background(), "ada", "pw")
	require.True(t, res.Success)
	before := atomic.LoadInt64(&requests)

	c.Session().Logout()
	c.Session().Logout() // idempotent
	require.Equal(t, StatusUnauthenticated, c.Session().Status())
	require.Nil(t, c.Session().User())

	c.Session().Restore(context.Background())
	require.Equal(t, StatusUnauthenticated, c.Session().Status())
	require.Equal(t, before, atomic.LoadInt64(&requests), "logout and restore with no token issue no requests")
}

func TestAuthenticatedRequestsCarryToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(types.AuthResponse{Token: "fresh-token", User: types.User{ID: "u1", Name: "Ada"}})
		case "/api/tasks":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode([]types.Task{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenStore(tokenstore.NewMemStore("")), WithRetry(1))
	require.NoError(t, err)

	res := c.Session().Login(context.Background(), "ada", "pw")
	require.True(t, res.Success)

	_, err = c.ListTasks(context.Background())
	require.NoError(t, err, "login token must flow into subsequent requests")
}
